package database

// HistoryRepository is the keyed store for last-seen prices. One
// collection run performs exactly one GetAll before the diff and one
// UpsertAll after it (single-writer discipline); concurrent runs
// against the same store are not supported.
type HistoryRepository interface {
	GetAll() (map[string]HistoryEntry, error)
	UpsertAll(entries []HistoryEntry) error
	GetCount() (int, error)
}

// ChangeRunRepository persists per-run change reports as an audit log.
type ChangeRunRepository interface {
	SaveRun(run ChangeRun) (int64, error)
	GetLatestRun() (*ChangeRun, error)
	GetRunCount() (int, error)
}
