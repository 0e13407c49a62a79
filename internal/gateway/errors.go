package gateway

import "errors"

var (
	// ErrPortalUnavailable indicates the portal could not be reached or is
	// mid-navigation. Transient: callers retry before downgrading to a
	// hard failure.
	ErrPortalUnavailable = errors.New("portal unavailable")

	// ErrPending indicates the portal accepted the query but the result
	// will arrive later through an out-of-band callback, correlated by
	// employee id and issuance time.
	ErrPending = errors.New("portal result pending")

	// ErrNotFound indicates the portal answered and has no record for the
	// queried employee. Hard failure: any stale verdict must be cleared.
	ErrNotFound = errors.New("employee not found")

	// ErrTimeout indicates the portal request exceeded its deadline.
	ErrTimeout = errors.New("portal request timed out")
)
