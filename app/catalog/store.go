package catalog

import (
	"sync"
	"time"
)

// Store holds the catalog built by the most recent collection cycle.
// It is replaced wholesale once per cycle (snapshot-and-replace) and
// read concurrently by the HTTP handlers.
type Store struct {
	mu      sync.RWMutex
	catalog Catalog
	set     bool
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Replace(c Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = c
	s.set = true
}

// Get returns the latest catalog and whether a cycle has completed yet.
func (s *Store) Get() (Catalog, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog, s.set
}

func (s *Store) BuiltAt() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.BuiltAt, s.set
}
