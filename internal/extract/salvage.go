package extract

import (
	"regexp"
	"strings"

	"github.com/alexanderramin/pathguard/internal/domain"
)

var (
	timeLabelRe = regexp.MustCompile(`^\d{1,2}:\d{2}(:\d{2})?\s*(?i:[AP]M)?$`)
	// pathTokenRe matches a path-name-shaped cell: a word of letters with
	// at least one more word or a joining underscore/hyphen.
	pathTokenRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*([ _-][A-Za-z0-9]+)+$`)
)

// salvageSessions is the best-effort pass over rows no shape matched:
// any row carrying a path-name-shaped token next to date/time-shaped cells
// is read as a detail interval. It recovers sessions from layouts the
// structured pass does not know, at the cost of looser field assignment.
func salvageSessions(rows []row) []domain.Session {
	var sessions []domain.Session
	for _, r := range rows {
		if skipRow(r) {
			continue
		}
		var title string
		var labels []string
		var minutes float64
		var haveDuration bool
		for _, c := range r.cells {
			text := strings.TrimSpace(c.text)
			if text == "" {
				continue
			}
			switch {
			case timeLabelRe.MatchString(text) && len(labels) < 2:
				labels = append(labels, text)
			case !haveDuration && looksLikeDuration(text) && !timeLabelRe.MatchString(text):
				minutes, _ = ParseDuration(text)
				haveDuration = true
			case title == "" && pathTokenRe.MatchString(text):
				title = cleanTitle(text)
			}
		}
		if title == "" || len(labels) == 0 {
			continue
		}
		s := domain.Session{
			Title:           title,
			StartLabel:      labels[0],
			DurationMinutes: minutes,
			Kind:            domain.KindDetail,
		}
		if len(labels) > 1 {
			s.EndLabel = labels[1]
		}
		sessions = append(sessions, s)
	}
	return sessions
}
