package monitor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// reportFileName matches the alert file the monitoring collaborator
// consumes. The file holds the latest run only, never an accumulation.
const reportFileName = "price_alerts.json"

// Writer persists the change report of one run to the output
// directory, overwriting the previous run's file.
type Writer struct {
	outputDir string
}

func NewWriter(outputDir string) *Writer {
	return &Writer{outputDir: outputDir}
}

func (w *Writer) Run(report *Report) (string, error) {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode change report: %w", err)
	}

	path := filepath.Join(w.outputDir, reportFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write change report: %w", err)
	}

	return path, nil
}
