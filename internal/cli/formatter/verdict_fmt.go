package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pathguard/internal/domain"
	"github.com/alexanderramin/pathguard/internal/mpv"
)

// FormatVerdict renders a verdict for the kiosk operator.
func FormatVerdict(v *domain.Verdict) string {
	if v == nil {
		return Dim("no verdict")
	}

	var b strings.Builder
	b.WriteString(RiskIndicator(v.Risk))
	b.WriteString("\n")

	if v.Detail != "" {
		b.WriteString(RiskColor(v.Risk).Render(v.Detail))
		b.WriteString("\n")
	}

	if v.TargetPath != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("target:"), Bold(v.TargetPath)))
	}
	if v.CurrentActivity != nil {
		b.WriteString(fmt.Sprintf("%s %s (started %s)\n",
			Dim("currently:"), v.CurrentActivity.Title, v.CurrentActivity.StartLabel))
	}
	for _, path := range v.WorkedPaths {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			StyleBlue.Render(path), mpv.FormatMinutes(v.PathMinutes[path])))
	}
	if v.RemainingMinutes != nil {
		b.WriteString(fmt.Sprintf("%s %s\n",
			Dim("remaining:"), StyleYellow.Render(mpv.FormatMinutes(*v.RemainingMinutes))))
	}
	return b.String()
}
