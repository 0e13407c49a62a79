// Package extract turns raw portal time-report markup or CSV into a
// normalized session list. Extraction is deliberately forgiving: a document
// with no recognizable table shape produces an empty report, never an
// error, because the portal is frequently mid-navigation when queried.
package extract

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"github.com/alexanderramin/pathguard/internal/domain"
)

// columnLayout maps the semantic columns onto cell indexes for one table.
type columnLayout struct {
	title    int
	start    int
	end      int
	duration int
}

// width is the minimum cell count a row needs to satisfy the layout.
func (l columnLayout) width() int {
	w := l.title
	for _, i := range []int{l.start, l.end, l.duration} {
		if i > w {
			w = i
		}
	}
	return w + 1
}

var (
	detailLayout    = columnLayout{title: 1, start: 2, end: 3, duration: 4}
	aggregateLayout = columnLayout{title: 0, start: 1, end: 2, duration: 3}
)

// titleSeparators precede the true path name in some report titles; the
// separator and everything before it are stripped.
var titleSeparators = []string{"»", "›", "→"}

// Extract parses an HTML time report into a normalized Report. Aggregate
// rows are retained (kind Aggregate) but excluded from time accounting by
// consumers; when an aggregate total exceeds the summed detail rows for the
// same title, a synthetic Correction session carries the difference.
func Extract(raw []byte) *domain.Report {
	report := &domain.Report{}
	tables, err := parseTables(raw)
	if err != nil {
		return report
	}

	var sessions []domain.Session
	for _, rows := range tables {
		sessions = append(sessions, buildSessions(rows)...)
	}
	if len(sessions) == 0 {
		for _, rows := range tables {
			sessions = append(sessions, salvageSessions(rows)...)
		}
	}
	finishReport(report, sessions)
	return report
}

// ExtractCSV parses a CSV export of the same report. Aggregate rows are
// recognized by an empty leading index field, the CSV rendering of the
// colspan-joined title cell.
func ExtractCSV(raw []byte) *domain.Report {
	report := &domain.Report{}
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows []row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Tolerate ragged exports; keep whatever parsed so far.
			break
		}
		var r row
		for _, field := range record {
			r.cells = append(r.cells, cell{text: strings.TrimSpace(field), colspan: 1})
		}
		if len(r.cells) > 0 {
			rows = append(rows, r)
		}
	}

	sessions := buildSessions(rows)
	if len(sessions) == 0 {
		sessions = salvageSessions(rows)
	}
	finishReport(report, sessions)
	return report
}

func finishReport(report *domain.Report, sessions []domain.Session) {
	sessions = append(sessions, reconcile(sessions)...)
	report.Sessions = sessions
	for i := range sessions {
		if sessions[i].Kind == domain.KindDetail && sessions[i].Open() {
			report.CurrentActivity = &sessions[i]
			report.ClockedIn = true
			break
		}
	}
}

// buildSessions converts table rows into sessions. Column positions are
// resolved from a header row when one exists; otherwise each row is shape
// matched positionally.
func buildSessions(rows []row) []domain.Session {
	layout, headerIdx := resolveHeader(rows)

	var sessions []domain.Session
	for i, r := range rows {
		if i == headerIdx || skipRow(r) {
			continue
		}
		var s *domain.Session
		switch {
		case layout != nil:
			s = sessionFromLayout(r, *layout, aggregateRow(r))
		case aggregateRow(r):
			s = sessionFromLayout(r, aggregateLayout, true)
		case detailRow(r):
			s = sessionFromLayout(r, detailLayout, false)
		}
		if s != nil {
			sessions = append(sessions, *s)
		}
	}
	return sessions
}

// resolveHeader looks for a row whose cells name the semantic columns.
// Matching is a case-insensitive substring test so that e.g. "Job Title"
// and "Start Time" resolve.
func resolveHeader(rows []row) (*columnLayout, int) {
	for i, r := range rows {
		layout := columnLayout{title: -1, start: -1, end: -1, duration: -1}
		pos := 0
		for _, c := range r.cells {
			lower := strings.ToLower(c.text)
			switch {
			case layout.title < 0 && strings.Contains(lower, "title"):
				layout.title = pos
			case layout.start < 0 && strings.Contains(lower, "start"):
				layout.start = pos
			case layout.end < 0 && strings.Contains(lower, "end"):
				layout.end = pos
			case layout.duration < 0 && strings.Contains(lower, "duration"):
				layout.duration = pos
			}
			pos += c.colspan
		}
		if layout.title >= 0 && layout.start >= 0 && layout.end >= 0 && layout.duration >= 0 {
			return &layout, i
		}
	}
	return nil, -1
}

// detailRow matches the positional shape of an individual job interval: a
// short leading index cell followed by at least four more cells.
func detailRow(r row) bool {
	if len(r.cells) < 5 {
		return false
	}
	return len(r.cells[0].text) <= 2
}

// aggregateRow matches a roll-up row: the title cell spans two columns, or
// (in CSV) the leading index field is empty while a title follows.
func aggregateRow(r row) bool {
	if len(r.cells) == 0 {
		return false
	}
	if r.cells[0].colspan >= 2 {
		return len(r.cells) >= 4
	}
	return len(r.cells) >= 5 && r.cells[0].text == "" && r.cells[1].text != ""
}

func sessionFromLayout(r row, layout columnLayout, aggregate bool) *domain.Session {
	cells := r.cells
	if aggregate && cells[0].colspan < 2 && cells[0].text == "" {
		// CSV aggregate shape: drop the empty index field so the
		// aggregate layout lines up.
		cells = cells[1:]
	}
	if aggregate {
		layout = aggregateLayout
	}
	if len(cells) < layout.width() {
		return nil
	}

	title := cleanTitle(cells[layout.title].text)
	if title == "" {
		return nil
	}
	start := cells[layout.start].text
	end := cells[layout.end].text
	minutes, ok := ParseDuration(cells[layout.duration].text)
	if !ok && end != "" {
		// A closed interval without a parsable duration is not a data row.
		return nil
	}

	kind := domain.KindDetail
	if aggregate {
		kind = domain.KindAggregate
	}
	return &domain.Session{
		Title:           title,
		StartLabel:      start,
		EndLabel:        end,
		DurationMinutes: minutes,
		Kind:            kind,
	}
}

// skipRow filters non-data rows: headers, totals and on/off-clock markers.
func skipRow(r row) bool {
	if len(r.cells) == 0 {
		return true
	}
	allHeader := true
	for _, c := range r.cells {
		if !c.header {
			allHeader = false
		}
		lower := strings.ToLower(c.text)
		if strings.Contains(lower, "total") ||
			strings.Contains(lower, "on clock") ||
			strings.Contains(lower, "off clock") {
			return true
		}
	}
	return allHeader
}

// cleanTitle strips a separator glyph and everything before it, leaving the
// true path name.
func cleanTitle(title string) string {
	for _, sep := range titleSeparators {
		if idx := strings.LastIndex(title, sep); idx >= 0 {
			title = title[idx+len(sep):]
		}
	}
	return strings.TrimSpace(title)
}
