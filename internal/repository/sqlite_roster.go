package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/pathguard/internal/db"
	"github.com/alexanderramin/pathguard/internal/domain"
)

// SQLiteRosterRepo implements RosterRepo over a SQLite database or transaction.
type SQLiteRosterRepo struct {
	db db.DBTX
}

// NewSQLiteRosterRepo creates a new SQLiteRosterRepo.
func NewSQLiteRosterRepo(dbtx db.DBTX) *SQLiteRosterRepo {
	return &SQLiteRosterRepo{db: dbtx}
}

func (r *SQLiteRosterRepo) Replace(ctx context.Context, path string, entries []domain.RosterEntry, cachedAt time.Time) error {
	query := `INSERT INTO roster_paths (path, cached_at) VALUES (?, ?)
		ON CONFLICT(path) DO UPDATE SET cached_at = excluded.cached_at`
	if _, err := r.db.ExecContext(ctx, query, path, cachedAt.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("upserting roster path: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM roster_entries WHERE path = ?`, path); err != nil {
		return fmt.Errorf("clearing roster entries: %w", err)
	}

	insert := `INSERT INTO roster_entries (path, badge_id, name, minutes) VALUES (?, ?, ?, ?)
		ON CONFLICT(path, badge_id) DO UPDATE SET
			name = excluded.name,
			minutes = roster_entries.minutes + excluded.minutes`
	for _, e := range entries {
		badge := domain.NormalizeBadgeID(e.BadgeID)
		if badge == "" {
			continue
		}
		if _, err := r.db.ExecContext(ctx, insert, path, badge, e.Name, e.Minutes); err != nil {
			return fmt.Errorf("inserting roster entry: %w", err)
		}
	}
	return nil
}

func (r *SQLiteRosterRepo) Get(ctx context.Context, path string) (*RosterSnapshot, error) {
	var cachedAtStr string
	err := r.db.QueryRowContext(ctx,
		`SELECT cached_at FROM roster_paths WHERE path = ?`, path).Scan(&cachedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("roster for %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("loading roster path: %w", err)
	}
	cachedAt, err := time.Parse(time.RFC3339, cachedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing cached_at: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT badge_id, name, minutes FROM roster_entries WHERE path = ? ORDER BY minutes DESC, badge_id`, path)
	if err != nil {
		return nil, fmt.Errorf("listing roster entries: %w", err)
	}
	defer rows.Close()

	snap := &RosterSnapshot{Path: path, CachedAt: cachedAt}
	for rows.Next() {
		var e domain.RosterEntry
		if err := rows.Scan(&e.BadgeID, &e.Name, &e.Minutes); err != nil {
			return nil, fmt.Errorf("scanning roster entry: %w", err)
		}
		snap.Entries = append(snap.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating roster entries: %w", err)
	}
	return snap, nil
}

func (r *SQLiteRosterRepo) Paths(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT path FROM roster_paths ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("listing roster paths: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scanning roster path: %w", err)
		}
		paths = append(paths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating roster paths: %w", err)
	}
	return paths, nil
}

func (r *SQLiteRosterRepo) FindBadge(ctx context.Context, badgeID string) ([]RosterHit, error) {
	badge := domain.NormalizeBadgeID(badgeID)
	if badge == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT path, badge_id, name, minutes FROM roster_entries WHERE badge_id = ? ORDER BY path`, badge)
	if err != nil {
		return nil, fmt.Errorf("finding badge in roster: %w", err)
	}
	defer rows.Close()

	var hits []RosterHit
	for rows.Next() {
		var h RosterHit
		if err := rows.Scan(&h.Path, &h.Entry.BadgeID, &h.Entry.Name, &h.Entry.Minutes); err != nil {
			return nil, fmt.Errorf("scanning roster hit: %w", err)
		}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating roster hits: %w", err)
	}
	return hits, nil
}

func (r *SQLiteRosterRepo) PurgeStale(ctx context.Context, cutoff time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM roster_paths WHERE cached_at < ?`, cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("purging stale rosters: %w", err)
	}
	return nil
}
