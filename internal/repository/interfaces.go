// Package repository persists kiosk state that must outlive a single scan:
// the restricted-path roster cache, lookups still waiting on a portal
// result, and recently submitted work codes.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/pathguard/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// RosterSnapshot is one restricted path's cached roster with its fetch time.
type RosterSnapshot struct {
	Path     string
	CachedAt time.Time
	Entries  []domain.RosterEntry
}

// RosterHit is a roster entry found by badge id, with the path it belongs to.
type RosterHit struct {
	Path  string
	Entry domain.RosterEntry
}

type RosterRepo interface {
	// Replace swaps the cached roster for one path with a fresh fetch.
	Replace(ctx context.Context, path string, entries []domain.RosterEntry, cachedAt time.Time) error
	Get(ctx context.Context, path string) (*RosterSnapshot, error)
	Paths(ctx context.Context) ([]string, error)
	// FindBadge returns every cached path attributing time to the badge.
	// Badge ids are normalized before matching.
	FindBadge(ctx context.Context, badgeID string) ([]RosterHit, error)
	// PurgeStale drops rosters cached before the cutoff.
	PurgeStale(ctx context.Context, cutoff time.Time) error
}

type PendingLookupRepo interface {
	Save(ctx context.Context, l *domain.LookupRequest) error
	// Latest returns the pending lookup with the highest sequence number.
	Latest(ctx context.Context) (*domain.LookupRequest, error)
	Delete(ctx context.Context, id string) error
	// Prune drops lookups issued before the cutoff, returning how many.
	Prune(ctx context.Context, cutoff time.Time) (int, error)
}

type RecentCodeRepo interface {
	// Record upserts a submitted code and trims the table to the keep limit.
	Record(ctx context.Context, code string, usedAt time.Time) error
	// Suggest returns kept codes starting with prefix, most used first.
	Suggest(ctx context.Context, prefix string, limit int) ([]string, error)
	List(ctx context.Context) ([]string, error)
}
