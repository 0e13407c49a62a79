package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/alexanderramin/pathguard/internal/domain"
)

var badgeLikeRe = regexp.MustCompile(`^\d{5,}$`)

// ExtractRoster parses a function roll-up table into roster entries: one
// associate per row with an id, a display name and accumulated time. The
// time cell is either decimal hours ("4.25") or a duration string. Rows
// that fit no shape are skipped; an unrecognizable document yields nil.
func ExtractRoster(raw []byte) []domain.RosterEntry {
	tables, err := parseTables(raw)
	if err != nil {
		return nil
	}
	var entries []domain.RosterEntry
	for _, rows := range tables {
		entries = append(entries, rosterEntries(rows)...)
	}
	return entries
}

func rosterEntries(rows []row) []domain.RosterEntry {
	idCol, nameCol, timeCol := rosterHeader(rows)

	var entries []domain.RosterEntry
	for _, r := range rows {
		if skipRow(r) {
			continue
		}
		var e domain.RosterEntry
		var minutes float64
		var haveTime bool
		if idCol >= 0 {
			if len(r.cells) <= idCol || len(r.cells) <= nameCol || len(r.cells) <= timeCol {
				continue
			}
			e.BadgeID = r.cells[idCol].text
			e.Name = r.cells[nameCol].text
			minutes, haveTime = parseRosterTime(r.cells[timeCol].text)
		} else {
			for _, c := range r.cells {
				text := strings.TrimSpace(c.text)
				switch {
				case e.BadgeID == "" && badgeLikeRe.MatchString(text):
					e.BadgeID = text
				case !haveTime && rosterTimeShaped(text):
					minutes, haveTime = parseRosterTime(text)
				case e.Name == "" && text != "" && !badgeLikeRe.MatchString(text):
					e.Name = text
				}
			}
		}
		if e.BadgeID == "" || !badgeLikeRe.MatchString(e.BadgeID) || !haveTime {
			continue
		}
		e.Minutes = minutes
		entries = append(entries, e)
	}
	return entries
}

func rosterHeader(rows []row) (id, name, timeIdx int) {
	for _, r := range rows {
		id, name, timeIdx = -1, -1, -1
		pos := 0
		for _, c := range r.cells {
			lower := strings.ToLower(c.text)
			switch {
			case id < 0 && (strings.Contains(lower, "badge") || strings.Contains(lower, "employee") || strings.Contains(lower, "id")):
				id = pos
			case name < 0 && strings.Contains(lower, "name"):
				name = pos
			case timeIdx < 0 && (strings.Contains(lower, "hour") || strings.Contains(lower, "time") || strings.Contains(lower, "duration")):
				timeIdx = pos
			}
			pos += c.colspan
		}
		if id >= 0 && name >= 0 && timeIdx >= 0 {
			return id, name, timeIdx
		}
	}
	id, name, timeIdx = -1, -1, -1
	return id, name, timeIdx
}

func rosterTimeShaped(s string) bool {
	_, ok := parseRosterTime(s)
	return ok
}

// parseRosterTime reads the roll-up time cell: decimal hours or any of the
// duration formats.
func parseRosterTime(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if hours, err := strconv.ParseFloat(s, 64); err == nil {
		return hours * 60, true
	}
	return ParseDuration(s)
}
