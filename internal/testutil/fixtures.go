package testutil

import (
	"time"

	"github.com/alexanderramin/pathguard/internal/domain"
	"github.com/google/uuid"
)

// Session options
type SessionOption func(*domain.Session)

func WithEnd(label string) SessionOption {
	return func(s *domain.Session) {
		s.EndLabel = label
	}
}

func WithKind(k domain.SessionKind) SessionOption {
	return func(s *domain.Session) {
		s.Kind = k
	}
}

// NewTestSession builds a closed detail session. Pass WithEnd("") for an
// open one.
func NewTestSession(title string, minutes float64, opts ...SessionOption) domain.Session {
	s := domain.Session{
		Title:           title,
		StartLabel:      "08:00",
		EndLabel:        "10:00",
		DurationMinutes: minutes,
		Kind:            domain.KindDetail,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// NewTestLookup builds a lookup request with a fresh id.
func NewTestLookup(badgeID, workCode string, seq uint64, opts ...LookupOption) *domain.LookupRequest {
	l := &domain.LookupRequest{
		ID:             uuid.New().String(),
		BadgeID:        badgeID,
		WorkCode:       workCode,
		SequenceNumber: seq,
		IssuedAt:       time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Lookup options
type LookupOption func(*domain.LookupRequest)

func WithIssuedAt(t time.Time) LookupOption {
	return func(l *domain.LookupRequest) {
		l.IssuedAt = t
	}
}

// NewTestRosterEntry builds a roster entry.
func NewTestRosterEntry(badgeID, name string, minutes float64) domain.RosterEntry {
	return domain.RosterEntry{BadgeID: badgeID, Name: name, Minutes: minutes}
}
