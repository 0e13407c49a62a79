package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pathguard/internal/mpv"
	"github.com/alexanderramin/pathguard/internal/repository"
)

// FormatRoster renders one path's cached roster. Entries at or above
// warnMinutes are flagged: they are close to, or past, the MPV ceiling.
func FormatRoster(snap *repository.RosterSnapshot, warnMinutes float64) string {
	var b strings.Builder
	b.WriteString(Header(snap.Path))
	b.WriteString("\n")
	if len(snap.Entries) == 0 {
		b.WriteString(Dim("nobody on this path"))
		b.WriteString("\n")
		return b.String()
	}

	for _, e := range snap.Entries {
		line := fmt.Sprintf("%-12s %-24s %8s", e.BadgeID, e.Name, mpv.FormatMinutes(e.Minutes))
		if warnMinutes > 0 && e.Minutes >= warnMinutes {
			b.WriteString(StyleYellow.Render(line + "  ⚠"))
		} else {
			b.WriteString(StyleFg.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString(Dim(fmt.Sprintf("cached %s", snap.CachedAt.Local().Format("15:04:05"))))
	b.WriteString("\n")
	return b.String()
}
