package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// Roster cache: one row per restricted path recording when its roster
	// was last fetched, plus the associates attributed to it.
	`CREATE TABLE IF NOT EXISTS roster_paths (
		path      TEXT PRIMARY KEY,
		cached_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS roster_entries (
		path     TEXT NOT NULL REFERENCES roster_paths(path) ON DELETE CASCADE,
		badge_id TEXT NOT NULL,
		name     TEXT NOT NULL DEFAULT '',
		minutes  REAL NOT NULL DEFAULT 0,
		PRIMARY KEY (path, badge_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_roster_entries_badge ON roster_entries(badge_id)`,

	// Lookups awaiting an out-of-band portal result. Survive a process
	// restart so an in-flight verdict is not lost mid-scan.
	`CREATE TABLE IF NOT EXISTS pending_lookups (
		id        TEXT PRIMARY KEY,
		badge_id  TEXT NOT NULL,
		work_code TEXT NOT NULL DEFAULT '',
		seq       INTEGER NOT NULL,
		issued_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_pending_lookups_issued ON pending_lookups(issued_at)`,

	// Work codes recently submitted at this kiosk, kept for prefix
	// suggestions during entry.
	`CREATE TABLE IF NOT EXISTS recent_work_codes (
		code         TEXT PRIMARY KEY,
		last_used_at TEXT NOT NULL
	)`,

	// Add use_count so suggestions can rank frequently used codes first.
	`ALTER TABLE recent_work_codes ADD COLUMN use_count INTEGER NOT NULL DEFAULT 1`,
}
