package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// Running migrations a second time must succeed without error.
	err := Migrate(db)
	require.NoError(t, err)

	// Third time for good measure.
	err = Migrate(db)
	require.NoError(t, err)
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"roster_paths", "roster_entries", "pending_lookups", "recent_work_codes"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_roster_entries_badge",
		"idx_pending_lookups_issued",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	err := db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk)
	require.NoError(t, err)
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestMigrate_RosterEntriesCascadeOnPathDelete(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO roster_paths (path, cached_at) VALUES ('C-Returns_EndofLine', '2026-08-28T10:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO roster_entries (path, badge_id, name, minutes)
		VALUES ('C-Returns_EndofLine', '111983827', 'Doe, Jordan', 120)`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM roster_paths WHERE path = 'C-Returns_EndofLine'`)
	require.NoError(t, err)

	var count int
	err = db.QueryRow(`SELECT COUNT(*) FROM roster_entries`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "roster entries should cascade on path delete")
}

func TestMigrate_RosterEntriesUniquePerPath(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO roster_paths (path, cached_at) VALUES ('WHD Waterspider', '2026-08-28T10:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO roster_entries (path, badge_id) VALUES ('WHD Waterspider', '123456')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO roster_entries (path, badge_id) VALUES ('WHD Waterspider', '123456')`)
	assert.Error(t, err, "duplicate badge on the same path should violate the composite primary key")
}

func TestMigrate_RecentWorkCodesUseCountDefault(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO recent_work_codes (code, last_used_at) VALUES ('CREOL', '2026-08-28T10:00:00Z')`)
	require.NoError(t, err)

	var useCount int
	err = db.QueryRow(`SELECT use_count FROM recent_work_codes WHERE code = 'CREOL'`).Scan(&useCount)
	require.NoError(t, err)
	assert.Equal(t, 1, useCount)
}

func TestMigrate_WALModeRequested(t *testing.T) {
	// In-memory SQLite uses "memory" journal mode; WAL only applies to file DBs.
	// This test verifies OpenDB issues the PRAGMA (a no-op for :memory:).
	db := openTestDB(t)

	var mode string
	err := db.QueryRow(`PRAGMA journal_mode`).Scan(&mode)
	require.NoError(t, err)
	assert.Equal(t, "memory", mode)
}
