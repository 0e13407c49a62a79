package domain

// Session is one observed span of work on a titled activity. Sessions are
// immutable once extracted; each extraction pass produces a fresh list.
type Session struct {
	Title           string
	StartLabel      string
	// EndLabel is empty for an ongoing session.
	EndLabel        string
	DurationMinutes float64
	Kind            SessionKind
}

// Open reports whether the session has no recorded end time.
func (s Session) Open() bool {
	return s.EndLabel == ""
}

// Report is the normalized result of extracting one time report.
type Report struct {
	EmployeeID string
	Sessions   []Session
	// CurrentActivity is the first open session in document order, if any.
	CurrentActivity *Session
	ClockedIn       bool
}
