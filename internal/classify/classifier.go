// Package classify maps free-text work codes and session titles onto the
// canonical restricted path table used for MPV checks.
package classify

import (
	"strings"

	"github.com/alexanderramin/pathguard/internal/domain"
)

// Path is one restricted path plus the precomputed normalized forms of its
// aliases.
type Path struct {
	domain.RestrictedPath

	// Generic marks a path whose canonical name is an ambiguous bare term.
	Generic bool
	// SourceHints are normalized report-source fragments that claim a
	// generic-term match for this path.
	SourceHints []string

	normName    string
	normCodes   []string
	normAliases []string
}

// Classifier resolves work codes and session titles to restricted paths.
// Both resolution methods are total: unknown input yields (zero, false),
// never a guess. Declaration order of the path table breaks ties.
type Classifier struct {
	paths []Path
}

// New builds a Classifier over the given path table.
func New(paths []Path) *Classifier {
	return &Classifier{paths: paths}
}

// Default builds a Classifier over the built-in path table.
func Default() *Classifier {
	return New(DefaultPaths())
}

// Paths returns the path table in declaration order.
func (c *Classifier) Paths() []Path {
	return c.paths
}

// WorkCode resolves a kiosk work code to a restricted path name. Matching
// normalizes the code (upper-case, alphanumerics only) and tests each
// path's aliases with three predicates in preference order: exact match,
// code-starts-with-alias, alias-starts-with-code. The first path in
// declaration order satisfying any predicate wins.
func (c *Classifier) WorkCode(code string) (string, bool) {
	norm := normalizeWorkCode(code)
	if norm == "" {
		return "", false
	}
	for _, p := range c.paths {
		for _, alias := range p.normCodes {
			if norm == alias || strings.HasPrefix(norm, alias) || strings.HasPrefix(alias, norm) {
				return p.Name, true
			}
		}
	}
	return "", false
}

// Title resolves a session title with no report-source hint.
func (c *Classifier) Title(title string) (string, bool) {
	return c.TitleFromReport(title, "")
}

// TitleFromReport resolves a free-text session title to a restricted path
// name. source names the report or process the row came from and is only
// consulted to disambiguate generic terms such as a bare "water spider"
// mention.
//
// Resolution order: path-specific title aliases, then canonical name
// containment (raw and normalized), then source-hinted assignment of a
// generic-term match.
func (c *Classifier) TitleFromReport(title, source string) (string, bool) {
	if title == "" {
		return "", false
	}
	norm := normalizeTitle(title)

	for _, p := range c.paths {
		for _, alias := range p.normAliases {
			if strings.Contains(norm, alias) {
				return p.Name, true
			}
		}
	}

	genericHit := false
	for _, p := range c.paths {
		if strings.Contains(title, p.Name) || strings.Contains(norm, p.normName) {
			if p.Generic {
				genericHit = true
				continue
			}
			return p.Name, true
		}
	}
	if !genericHit {
		return "", false
	}

	// A bare generic term matched. Let the report source claim it for a
	// specific variant before falling back to the generic path itself.
	normSource := normalizeTitle(source)
	if normSource != "" {
		for _, p := range c.paths {
			for _, hint := range p.SourceHints {
				if strings.Contains(normSource, hint) {
					return p.Name, true
				}
			}
		}
	}
	for _, p := range c.paths {
		if p.Generic {
			return p.Name, true
		}
	}
	return "", false
}

// normalizeWorkCode upper-cases and strips everything but A-Z0-9.
func normalizeWorkCode(code string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(strings.TrimSpace(code)) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// normalizeTitle lower-cases and strips everything but a-z0-9.
func normalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
