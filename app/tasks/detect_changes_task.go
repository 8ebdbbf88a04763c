package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/lphan/macwatch/app/catalog"
	"github.com/lphan/macwatch/app/database"
	"github.com/lphan/macwatch/app/monitor"
)

// DetectChangesTask runs once per collection cycle: it publishes the
// merged snapshot as the new catalog, diffs it against the price
// history and persists the change report.
type DetectChangesTask struct {
	Task
	listings []catalog.Listing
	store    *catalog.Store
	detector *monitor.Detector
	writer   *monitor.Writer
	runRepo  database.ChangeRunRepository
}

func NewDetectChangesTask(listings []catalog.Listing, store *catalog.Store,
	detector *monitor.Detector, writer *monitor.Writer,
	runRepo database.ChangeRunRepository) *DetectChangesTask {
	return &DetectChangesTask{
		Task:     NewTask(TaskTypeDetectChanges, ""),
		listings: listings,
		store:    store,
		detector: detector,
		writer:   writer,
		runRepo:  runRepo,
	}
}

func (t *DetectChangesTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	now := time.Now()

	// Shops complete in arbitrary order; sort the merged batch so
	// every cycle processes an identically ordered snapshot.
	sort.SliceStable(t.listings, func(i, j int) bool {
		if t.listings[i].Shop != t.listings[j].Shop {
			return t.listings[i].Shop < t.listings[j].Shop
		}
		return t.listings[i].RawTitle < t.listings[j].RawTitle
	})

	snapshot := catalog.Build(t.listings, now)
	t.store.Replace(snapshot)

	report, err := t.detector.Run(observationsFrom(t.listings), now)
	if err != nil {
		return fmt.Errorf("change detection failed: %w", err)
	}

	path, err := t.writer.Run(report)
	if err != nil {
		return fmt.Errorf("failed to write change report: %w", err)
	}

	if err := t.saveRun(report, now); err != nil {
		return err
	}

	slog.Info("Collection cycle completed",
		"listings", len(t.listings),
		"products", len(snapshot.Products),
		"report", path,
		"summary", monitor.Summary(report))

	return nil
}

func (t *DetectChangesTask) saveRun(report *monitor.Report, now time.Time) error {
	encoded, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode change report: %w", err)
	}

	_, err = t.runRepo.SaveRun(database.ChangeRun{
		CreatedAt:   now,
		Drops:       len(report.PriceDrops),
		Increases:   len(report.PriceIncreases),
		NewProducts: len(report.NewProducts),
		Skipped:     report.Skipped,
		Report:      string(encoded),
	})
	if err != nil {
		return fmt.Errorf("failed to persist change run: %w", err)
	}

	return nil
}

// observationsFrom converts normalized listings into detector
// observations. Listings without an identity fall back to the display
// name so distinct unmatched products can still be tracked per shop;
// fully unrecognized titles are untrackable and skipped.
func observationsFrom(listings []catalog.Listing) []monitor.Observation {
	observations := make([]monitor.Observation, 0, len(listings))

	for _, l := range listings {
		key := l.Spec.IdentityKey
		if key == "" {
			key = l.Spec.DisplayName
		}
		if key == "" {
			continue
		}

		observations = append(observations, monitor.Observation{
			CompositeKey: monitor.CompositeKey(l.Shop, key),
			IdentityKey:  l.Spec.IdentityKey,
			Shop:         l.Shop,
			DisplayName:  l.Spec.DisplayName,
			VNDPrice:     l.VNDPrice,
			HasPrice:     l.HasPrice,
			URL:          l.URL,
			ScrapedAt:    l.ScrapedAt,
		})
	}

	return observations
}
