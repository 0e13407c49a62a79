// Package mpv implements the multiple-path-violation risk evaluation: a
// pure decision over an associate's extracted sessions and the work code
// about to be assigned.
package mpv

import (
	"fmt"
	"math"

	"github.com/alexanderramin/pathguard/internal/classify"
	"github.com/alexanderramin/pathguard/internal/domain"
)

// DefaultMaxMinutes is the ceiling on one restricted path: 4h30m.
const DefaultMaxMinutes = 270

// Input carries everything one evaluation needs. No state persists between
// calls.
type Input struct {
	Sessions       []domain.Session
	TargetWorkCode string
	// Source names the report the sessions came from; consulted only for
	// generic-term title disambiguation.
	Source     string
	Classifier *classify.Classifier
	// MaxMinutes overrides the path time ceiling. Zero means default.
	MaxMinutes float64
}

// Evaluate resolves the target work code, accumulates per-path time from
// the sessions and applies the two MPV rules. Rule ordering is policy: any
// time on a foreign restricted path blocks (path switch) before the time
// ceiling on the target path is ever consulted.
func Evaluate(in Input) domain.Verdict {
	maxMinutes := in.MaxMinutes
	if maxMinutes <= 0 {
		maxMinutes = DefaultMaxMinutes
	}
	classifier := in.Classifier
	if classifier == nil {
		classifier = classify.Default()
	}

	verdict := domain.Verdict{
		Risk:        domain.RiskNone,
		PathMinutes: domain.PathTimeTotals{},
	}
	for i := range in.Sessions {
		if in.Sessions[i].Kind == domain.KindDetail && in.Sessions[i].Open() {
			verdict.CurrentActivity = &in.Sessions[i]
			break
		}
	}

	targetPath, restricted := classifier.WorkCode(in.TargetWorkCode)
	if !restricted {
		// Only restricted-path assignments are subject to MPV.
		return verdict
	}
	verdict.TargetPath = targetPath

	// Aggregate-kind sessions observe the same physical time as the detail
	// rows and are excluded; corrections carry the reconciled remainder.
	for _, s := range in.Sessions {
		if s.Kind == domain.KindAggregate {
			continue
		}
		path, ok := classifier.TitleFromReport(s.Title, in.Source)
		if !ok {
			continue
		}
		if _, seen := verdict.PathMinutes[path]; !seen {
			verdict.WorkedPaths = append(verdict.WorkedPaths, path)
		}
		verdict.PathMinutes[path] += s.DurationMinutes
	}

	// Rule A: any time on a different restricted path blocks the switch.
	for _, worked := range verdict.WorkedPaths {
		if worked != targetPath && verdict.PathMinutes[worked] > 0 {
			verdict.Risk = domain.RiskPathSwitch
			verdict.Detail = fmt.Sprintf("Already worked %s (%s). Cannot switch to %s.",
				worked, FormatMinutes(verdict.PathMinutes[worked]), targetPath)
			return verdict
		}
	}

	// Rule B: time ceiling on the target path.
	current := verdict.PathMinutes[targetPath]
	verdict.CurrentMinutes = current
	if current >= maxMinutes {
		verdict.Risk = domain.RiskTimeExceeded
		verdict.Detail = fmt.Sprintf("Already %s on %s. Max allowed is %s.",
			FormatMinutes(current), targetPath, FormatMinutes(maxMinutes))
		return verdict
	}

	if current > 0 {
		remaining := maxMinutes - current
		verdict.RemainingMinutes = &remaining
		verdict.Detail = fmt.Sprintf("Used %s on %s, %s remaining.",
			FormatMinutes(current), targetPath, FormatMinutes(remaining))
	} else {
		verdict.FirstTime = true
		verdict.Detail = fmt.Sprintf("First assignment to %s. Max allowed is %s.",
			targetPath, FormatMinutes(maxMinutes))
	}
	return verdict
}

// FormatMinutes renders minutes as "2h 30m", "2h" or "45m".
func FormatMinutes(minutes float64) string {
	total := int(math.Round(minutes))
	h := total / 60
	m := total % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}
