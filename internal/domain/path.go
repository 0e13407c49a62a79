package domain

import "strings"

// RestrictedPath is a work function subject to multiple-path-violation rules.
// The alias sets are static configuration loaded once at startup; declaration
// order is the tie-break when a code or title could match more than one path.
type RestrictedPath struct {
	// Name is the canonical path title as it appears in portal reports,
	// e.g. "C-Returns_EndofLine".
	Name string `yaml:"name"`
	// ShortName is the compact label used in roster displays, e.g. "CREOL".
	ShortName string `yaml:"short_name"`
	// WorkCodeAliases recognize the path from a kiosk work code.
	WorkCodeAliases []string `yaml:"work_codes"`
	// TitleAliases recognize the path from a free-text session title,
	// beyond containment of Name itself.
	TitleAliases []string `yaml:"title_aliases"`
}

// PathTimeTotals maps canonical path names to accumulated minutes. Derived
// per evaluation, never stored.
type PathTimeTotals map[string]float64

// NormalizeBadgeID canonicalizes a scanned badge id for comparison: trims
// whitespace and strips leading zeros. Scanners and the portal roster pad
// ids inconsistently.
func NormalizeBadgeID(badgeID string) string {
	return strings.TrimLeft(strings.TrimSpace(badgeID), "0")
}
