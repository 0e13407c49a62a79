package domain

// SessionKind distinguishes how a session row was observed in a time report.
type SessionKind string

const (
	// KindDetail is an individual job interval from the fine-grained report.
	KindDetail SessionKind = "detail"
	// KindAggregate is a roll-up row covering the same physical time as the
	// detail rows for its title. Excluded from time accounting.
	KindAggregate SessionKind = "aggregate"
	// KindCorrection is synthesized when an aggregate total exceeds the sum
	// of detail rows for the same title.
	KindCorrection SessionKind = "correction"
)

// RiskReason classifies the outcome of an MPV evaluation.
type RiskReason string

const (
	RiskNone         RiskReason = "none"
	RiskPathSwitch   RiskReason = "path_switch"
	RiskTimeExceeded RiskReason = "time_exceeded"
)

// LookupState tracks where a badge lookup is in its lifecycle.
type LookupState string

const (
	LookupIdle      LookupState = "idle"
	LookupInFlight  LookupState = "in_flight"
	LookupResolved  LookupState = "resolved"
	LookupFailed    LookupState = "failed"
)
