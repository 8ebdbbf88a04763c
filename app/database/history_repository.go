package database

import (
	"fmt"
	"time"
)

var _ HistoryRepository = (*SQLHistoryRepository)(nil)

// SQLHistoryRepository stores last-seen prices in the price_history
// table, keyed by composite key.
type SQLHistoryRepository struct {
	db *DB
}

func NewHistoryRepository(db *DB) *SQLHistoryRepository {
	return &SQLHistoryRepository{db: db}
}

// GetAll loads the entire history snapshot. The change detector reads
// it once per run so every key is compared against the same previous
// state.
func (r *SQLHistoryRepository) GetAll() (map[string]HistoryEntry, error) {
	rows, err := r.db.Query(`
		SELECT composite_key, identity_key, shop, display_name, vnd_price, url, last_updated
		FROM price_history
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load price history: %w", err)
	}
	defer rows.Close()

	history := make(map[string]HistoryEntry)
	for rows.Next() {
		var entry HistoryEntry
		var lastUpdated string

		if err := rows.Scan(&entry.CompositeKey, &entry.IdentityKey, &entry.Shop,
			&entry.DisplayName, &entry.VNDPrice, &entry.URL, &lastUpdated); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}

		entry.LastUpdated, err = time.Parse(time.RFC3339, lastUpdated)
		if err != nil {
			return nil, fmt.Errorf("corrupt last_updated for %s: %w", entry.CompositeKey, err)
		}

		history[entry.CompositeKey] = entry
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read price history: %w", err)
	}

	return history, nil
}

// UpsertAll overwrites the history for every given key in a single
// transaction. Keys absent from the batch are left untouched; history
// entries are never deleted.
func (r *SQLHistoryRepository) UpsertAll(entries []HistoryEntry) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin history update: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO price_history (composite_key, identity_key, shop, display_name, vnd_price, url, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (composite_key) DO UPDATE SET
			identity_key = excluded.identity_key,
			shop = excluded.shop,
			display_name = excluded.display_name,
			vnd_price = excluded.vnd_price,
			url = excluded.url,
			last_updated = excluded.last_updated
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare history upsert: %w", err)
	}
	defer stmt.Close()

	for _, entry := range entries {
		_, err := stmt.Exec(entry.CompositeKey, entry.IdentityKey, entry.Shop,
			entry.DisplayName, entry.VNDPrice, entry.URL,
			entry.LastUpdated.UTC().Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("failed to upsert history for %s: %w", entry.CompositeKey, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit history update: %w", err)
	}

	return nil
}

func (r *SQLHistoryRepository) GetCount() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM price_history`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count history entries: %w", err)
	}
	return count, nil
}
