package domain

import "time"

// Verdict is the evaluator's risk decision for one proposed assignment.
// Produced fresh per lookup and never mutated; the coordinator owns the
// single current verdict used to gate submission.
type Verdict struct {
	Risk RiskReason
	// TargetPath is the canonical name of the restricted path the work code
	// resolved to, or empty when the code is unrestricted.
	TargetPath string
	// WorkedPaths lists restricted paths with nonzero accumulated minutes,
	// in first-encounter order.
	WorkedPaths []string
	// PathMinutes holds accumulated minutes per worked path.
	PathMinutes PathTimeTotals
	// CurrentMinutes is time already accumulated on TargetPath.
	CurrentMinutes float64
	// RemainingMinutes is headroom under the ceiling when the associate has
	// prior time on TargetPath and is still under it. Nil otherwise.
	RemainingMinutes *float64
	// FirstTime marks a clean first assignment to a restricted path.
	FirstTime bool
	Detail    string
	// CurrentActivity echoes the associate's open session, when one exists.
	CurrentActivity *Session
	EmployeeName    string
	FromCache       bool
}

// Blocked reports whether this verdict forbids submission.
func (v Verdict) Blocked() bool {
	return v.Risk != RiskNone
}

// LookupRequest identifies one badge lookup issued by the coordinator.
// SequenceNumber increases monotonically per badge input event; only the
// highest sequence for the currently displayed badge may set the gating
// verdict.
type LookupRequest struct {
	ID             string
	BadgeID        string
	WorkCode       string
	SequenceNumber uint64
	IssuedAt       time.Time
}

// RosterEntry is one associate currently attributed to a restricted path in
// the bulk portal roster. Minutes come from the portal's roll-up and are an
// optimization hint only: roster badge ids live in a different identifier
// space than scanned badge ids.
type RosterEntry struct {
	BadgeID string
	Name    string
	Minutes float64
}
