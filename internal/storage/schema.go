package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate creates the task list table. One row per day key; the tasks column
// holds the whole JSON-encoded list, which keeps every persisted mutation an
// atomic whole-list overwrite.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS task_lists (
			day_key TEXT PRIMARY KEY,
			tasks TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
