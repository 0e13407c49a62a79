package coordinator

import (
	"io"
	"log/slog"

	"github.com/alexanderramin/pathguard/internal/domain"
)

// EventKind names a coordinator lifecycle event.
type EventKind string

const (
	EventLookupIssued     EventKind = "lookup_issued"
	EventLookupResolved   EventKind = "lookup_resolved"
	EventLookupSuperseded EventKind = "lookup_superseded"
	EventLookupFailed     EventKind = "lookup_failed"
	// EventLookupAwaiting marks a lookup whose result will arrive out of
	// band after a portal navigation.
	EventLookupAwaiting EventKind = "lookup_awaiting"
	// EventLookupResumed marks a pending lookup restored after a restart.
	EventLookupResumed EventKind = "lookup_resumed"
	EventStaleDropped  EventKind = "stale_dropped"
	EventSubmitBlocked EventKind = "submit_blocked"
	EventSubmitted     EventKind = "submitted"
)

// Event captures one coordinator state transition.
type Event struct {
	Kind     EventKind
	BadgeID  string
	Sequence uint64
	Risk     domain.RiskReason
	Err      error
}

// Observer receives coordinator events for logging and metrics.
type Observer interface {
	OnCoordinatorEvent(event Event)
}

// NoopObserver ignores all events.
type NoopObserver struct{}

func (NoopObserver) OnCoordinatorEvent(Event) {}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver writes coordinator events to the provided writer.
func NewLogObserver(w io.Writer) Observer {
	if w == nil {
		return NoopObserver{}
	}
	return &logObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logObserver) OnCoordinatorEvent(event Event) {
	attrs := []any{
		"kind", string(event.Kind),
		"badge", event.BadgeID,
		"seq", event.Sequence,
	}
	if event.Risk != "" {
		attrs = append(attrs, "risk", string(event.Risk))
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.Error("coordinator", attrs...)
		return
	}
	o.logger.Info("coordinator", attrs...)
}
