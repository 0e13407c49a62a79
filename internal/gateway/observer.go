package gateway

import (
	"io"
	"log/slog"
)

// CallEvent records metadata about a single portal call.
type CallEvent struct {
	Op        string
	Query     string
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about portal calls for logging and metrics.
type Observer interface {
	OnPortalCall(event CallEvent)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnPortalCall(CallEvent) {}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver writes portal call events to the provided writer.
func NewLogObserver(w io.Writer) Observer {
	if w == nil {
		return NoopObserver{}
	}
	return &logObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logObserver) OnPortalCall(event CallEvent) {
	attrs := []any{
		"op", event.Op,
		"query", event.Query,
		"latency_ms", event.LatencyMs,
		"success", event.Success,
	}
	if event.ErrorCode != "" {
		attrs = append(attrs, "error", event.ErrorCode)
		o.logger.Error("portal_call", attrs...)
		return
	}
	o.logger.Info("portal_call", attrs...)
}
