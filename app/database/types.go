package database

import (
	"time"
)

// HistoryEntry is the persisted last-seen price for one configuration
// at one shop. The composite key combines identity and shop so that
// price history is tracked per shop, never merged across shops.
type HistoryEntry struct {
	CompositeKey string
	IdentityKey  string
	Shop         string
	DisplayName  string
	VNDPrice     int
	URL          string
	LastUpdated  time.Time
}

// ChangeRun is one persisted change detection run: counts plus the
// full report JSON for the stats and changes endpoints.
type ChangeRun struct {
	ID          int64
	CreatedAt   time.Time
	Drops       int
	Increases   int
	NewProducts int
	Skipped     int
	Report      string
}
