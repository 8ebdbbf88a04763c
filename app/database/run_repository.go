package database

import (
	"database/sql"
	"fmt"
	"time"
)

var _ ChangeRunRepository = (*SQLChangeRunRepository)(nil)

// SQLChangeRunRepository persists change detection runs.
type SQLChangeRunRepository struct {
	db *DB
}

func NewChangeRunRepository(db *DB) *SQLChangeRunRepository {
	return &SQLChangeRunRepository{db: db}
}

func (r *SQLChangeRunRepository) SaveRun(run ChangeRun) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO change_runs (created_at, drops, increases, new_products, skipped, report)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.CreatedAt.UTC().Format(time.RFC3339), run.Drops, run.Increases,
		run.NewProducts, run.Skipped, run.Report)
	if err != nil {
		return 0, fmt.Errorf("failed to save change run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get change run id: %w", err)
	}

	return id, nil
}

func (r *SQLChangeRunRepository) GetLatestRun() (*ChangeRun, error) {
	var run ChangeRun
	var createdAt string

	err := r.db.QueryRow(`
		SELECT id, created_at, drops, increases, new_products, skipped, report
		FROM change_runs
		ORDER BY id DESC
		LIMIT 1
	`).Scan(&run.ID, &createdAt, &run.Drops, &run.Increases, &run.NewProducts,
		&run.Skipped, &run.Report)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest change run: %w", err)
	}

	run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("corrupt created_at for run %d: %w", run.ID, err)
	}

	return &run, nil
}

func (r *SQLChangeRunRepository) GetRunCount() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM change_runs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count change runs: %w", err)
	}
	return count, nil
}
