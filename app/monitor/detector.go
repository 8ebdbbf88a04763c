package monitor

import (
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/lphan/macwatch/app/database"
)

// Detector diffs a collection snapshot against the persisted price
// history. One Run performs a single read-modify-write cycle over the
// whole snapshot: callers must merge concurrent shop pipelines into
// one batch before invoking it.
type Detector struct {
	historyRepo database.HistoryRepository
}

func NewDetector(historyRepo database.HistoryRepository) *Detector {
	return &Detector{historyRepo: historyRepo}
}

// Run classifies every observation against the previous run and
// overwrites the history with the current prices. Re-running with an
// unchanged batch yields an empty report: the history already
// reflects the prior run.
func (d *Detector) Run(observations []Observation, now time.Time) (*Report, error) {
	coldStart := false
	history, err := d.historyRepo.GetAll()
	if err != nil {
		// Availability over strict consistency: an unreadable history
		// degrades to a cold start, which misreports every current
		// observation as new. Operators need to see this.
		slog.Error("Price history unreadable, proceeding with empty history (cold start)",
			"error", err)
		history = make(map[string]database.HistoryEntry)
		coldStart = true
	}

	report := &Report{
		PriceDrops:     []Change{},
		PriceIncreases: []Change{},
		NewProducts:    []NewProduct{},
		Timestamp:      now.Format(time.RFC3339),
		ColdStart:      coldStart,
	}

	updates := make([]database.HistoryEntry, 0, len(observations))

	for _, obs := range observations {
		if !obs.HasPrice {
			report.Skipped++
			continue
		}

		if prev, ok := history[obs.CompositeKey]; ok {
			if prev.VNDPrice != obs.VNDPrice {
				change := Change{
					Shop:      obs.Shop,
					Model:     obs.DisplayName,
					OldPrice:  prev.VNDPrice,
					NewPrice:  obs.VNDPrice,
					ChangeVND: obs.VNDPrice - prev.VNDPrice,
					ChangePct: roundPct(obs.VNDPrice, prev.VNDPrice),
					URL:       obs.URL,
				}
				if obs.VNDPrice < prev.VNDPrice {
					report.PriceDrops = append(report.PriceDrops, change)
				} else {
					report.PriceIncreases = append(report.PriceIncreases, change)
				}
			}
		} else {
			report.NewProducts = append(report.NewProducts, NewProduct{
				Shop:  obs.Shop,
				Model: obs.DisplayName,
				Price: obs.VNDPrice,
				URL:   obs.URL,
			})
		}

		// History is overwritten for every observed key regardless of
		// classification.
		updates = append(updates, database.HistoryEntry{
			CompositeKey: obs.CompositeKey,
			IdentityKey:  obs.IdentityKey,
			Shop:         obs.Shop,
			DisplayName:  obs.DisplayName,
			VNDPrice:     obs.VNDPrice,
			URL:          obs.URL,
			LastUpdated:  now,
		})
	}

	sort.SliceStable(report.PriceDrops, func(i, j int) bool {
		return absInt(report.PriceDrops[i].ChangeVND) > absInt(report.PriceDrops[j].ChangeVND)
	})
	sort.SliceStable(report.PriceIncreases, func(i, j int) bool {
		return report.PriceIncreases[i].ChangeVND > report.PriceIncreases[j].ChangeVND
	})

	if err := d.historyRepo.UpsertAll(updates); err != nil {
		return nil, err
	}

	return report, nil
}

func roundPct(newPrice, oldPrice int) float64 {
	pct := float64(newPrice-oldPrice) / float64(oldPrice) * 100
	return math.Round(pct*100) / 100
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
