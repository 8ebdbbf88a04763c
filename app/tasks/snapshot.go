package tasks

import (
	"log/slog"
	"sync"

	"github.com/lphan/macwatch/app/catalog"
)

// SnapshotAssembler merges the per-shop collection results of one
// cycle into a single ordered batch. The change detector must see the
// whole cycle at once, so it is invoked exactly once, through
// onComplete, after every shop has either delivered or failed.
type SnapshotAssembler struct {
	mu         sync.Mutex
	pending    int
	listings   []catalog.Listing
	done       bool
	onComplete func([]catalog.Listing)
}

func NewSnapshotAssembler(pending int, onComplete func([]catalog.Listing)) *SnapshotAssembler {
	return &SnapshotAssembler{
		pending:    pending,
		onComplete: onComplete,
	}
}

// Add delivers one shop's normalized listings.
func (a *SnapshotAssembler) Add(shopName string, listings []catalog.Listing) {
	a.mu.Lock()
	a.listings = append(a.listings, listings...)
	a.finishOne()
	a.mu.Unlock()
}

// Fail marks one shop as failed for this cycle. The snapshot still
// completes with the remaining shops.
func (a *SnapshotAssembler) Fail(shopName string, err error) {
	slog.Warn("Shop collection failed, continuing without it", "shop", shopName, "error", err)

	a.mu.Lock()
	a.finishOne()
	a.mu.Unlock()
}

// finishOne must be called with the mutex held.
func (a *SnapshotAssembler) finishOne() {
	if a.done {
		return
	}

	a.pending--
	if a.pending > 0 {
		return
	}

	a.done = true
	merged := a.listings

	// Release the lock before handing off: onComplete enqueues the
	// detection task and must not run under the assembler mutex.
	go a.onComplete(merged)
}
