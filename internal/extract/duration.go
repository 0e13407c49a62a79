package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	hourTokenRe   = regexp.MustCompile(`(?i)(\d+)\s*h`)
	minuteTokenRe = regexp.MustCompile(`(?i)(\d+)\s*m`)
	clockRe       = regexp.MustCompile(`^(\d+):(\d{1,2})(?::(\d{1,2}))?$`)
)

// ParseDuration converts a report duration cell to minutes. Three formats
// appear across the portal reports:
//
//	"2h 30m" / "2h" / "45m"  component form
//	"1:30" / "1:30:15"       hours:minutes(:seconds)
//	"45:30"                  minutes:seconds
//
// The two-part colon form is ambiguous; a leading field of 24 or more cannot
// be an hour count within a single day, so it is read as minutes:seconds.
// Seconds contribute a fractional remainder.
func ParseDuration(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	hMatch := hourTokenRe.FindStringSubmatch(s)
	mMatch := minuteTokenRe.FindStringSubmatch(s)
	if hMatch != nil || mMatch != nil {
		var minutes float64
		if hMatch != nil {
			h, _ := strconv.Atoi(hMatch[1])
			minutes += float64(h) * 60
		}
		if mMatch != nil {
			m, _ := strconv.Atoi(mMatch[1])
			minutes += float64(m)
		}
		return minutes, true
	}

	clock := clockRe.FindStringSubmatch(s)
	if clock == nil {
		return 0, false
	}
	first, _ := strconv.Atoi(clock[1])
	second, _ := strconv.Atoi(clock[2])
	if clock[3] != "" {
		sec, _ := strconv.Atoi(clock[3])
		return float64(first)*60 + float64(second) + float64(sec)/60, true
	}
	if first >= 24 {
		// minutes:seconds
		return float64(first) + float64(second)/60, true
	}
	return float64(first)*60 + float64(second), true
}

// looksLikeDuration reports whether a cell plausibly holds a duration.
func looksLikeDuration(s string) bool {
	_, ok := ParseDuration(s)
	return ok
}
