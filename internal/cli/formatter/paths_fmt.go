package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pathguard/internal/classify"
)

// FormatPaths renders the configured restricted path table.
func FormatPaths(paths []classify.Path) string {
	var b strings.Builder
	b.WriteString(Header("restricted paths"))
	b.WriteString("\n")
	for _, p := range paths {
		b.WriteString(Bold(p.Name))
		if p.ShortName != "" && p.ShortName != p.Name {
			b.WriteString(Dim(fmt.Sprintf(" (%s)", p.ShortName)))
		}
		b.WriteString("\n")
		if len(p.WorkCodeAliases) > 0 {
			b.WriteString(fmt.Sprintf("  %s %s\n",
				Dim("codes:"), StyleBlue.Render(strings.Join(p.WorkCodeAliases, ", "))))
		}
		if len(p.TitleAliases) > 0 {
			b.WriteString(fmt.Sprintf("  %s %s\n",
				Dim("titles:"), strings.Join(p.TitleAliases, ", ")))
		}
	}
	return b.String()
}
