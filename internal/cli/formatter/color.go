package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pathguard/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// RiskColor returns the style for the given MPV risk reason.
func RiskColor(risk domain.RiskReason) lipgloss.Style {
	switch risk {
	case domain.RiskPathSwitch, domain.RiskTimeExceeded:
		return StyleRed
	case domain.RiskNone:
		return StyleGreen
	default:
		return StyleDim
	}
}

// RiskIndicator returns a colored indicator string such as "● MPV: PATH SWITCH".
func RiskIndicator(risk domain.RiskReason) string {
	switch risk {
	case domain.RiskPathSwitch:
		return StyleRed.Render("● MPV: PATH SWITCH")
	case domain.RiskTimeExceeded:
		return StyleRed.Render("● MPV: TIME EXCEEDED")
	case domain.RiskNone:
		return StyleGreen.Render("● CLEAR")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
