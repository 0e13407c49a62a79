package coordinator

import "errors"

var (
	// ErrSubmissionBlocked indicates the resolved verdict carries MPV risk.
	ErrSubmissionBlocked = errors.New("submission blocked")

	// ErrNoVerdict indicates submission was attempted without a resolved
	// verdict to gate on. Ambiguity blocks: absence of a favorable verdict
	// is never treated as "no risk".
	ErrNoVerdict = errors.New("no verdict for current badge")

	// ErrLookupFailed indicates the portal answered with a hard failure.
	ErrLookupFailed = errors.New("lookup failed")

	// ErrBadgeTooShort indicates the scanned badge is below the minimum
	// qualifying length.
	ErrBadgeTooShort = errors.New("badge id too short")

	// ErrSuperseded indicates a newer scan or a clear arrived while a
	// submission was awaiting its lookup.
	ErrSuperseded = errors.New("superseded by a newer scan")

	// ErrSubmitInProgress indicates another submission is already awaiting
	// the in-flight lookup.
	ErrSubmitInProgress = errors.New("submission already in progress")

	// ErrStopped indicates the coordinator is shut down.
	ErrStopped = errors.New("coordinator stopped")
)
