package classify

import (
	"fmt"
	"os"

	"github.com/alexanderramin/pathguard/internal/domain"
	"gopkg.in/yaml.v3"
)

// pathEntry is the YAML shape of one restricted path. The generic flag marks
// a path whose canonical name is an ambiguous term (a bare "water spider"
// mention) that needs source-based disambiguation rather than a direct match.
type pathEntry struct {
	Name         string   `yaml:"name"`
	ShortName    string   `yaml:"short_name"`
	WorkCodes    []string `yaml:"work_codes"`
	TitleAliases []string `yaml:"title_aliases"`
	Generic      bool     `yaml:"generic"`
	// SourceHints map a report/process source onto this path when only a
	// generic term matched.
	SourceHints []string `yaml:"source_hints"`
}

type pathsFile struct {
	Paths []pathEntry `yaml:"paths"`
}

// DefaultPaths returns the built-in restricted path table. The alias lists
// were tuned against real FCLM reports; treat them as data, not rules to
// re-derive. Declaration order is the tie-break for ambiguous matches.
func DefaultPaths() []Path {
	entries := []pathEntry{
		{
			Name:         "C-Returns_StowSweep",
			ShortName:    "STWSWP",
			WorkCodes:    []string{"STWSWP", "STOWSWEEP", "SWEEP", "CRESW", "STOW_SWEEP", "STOWSW", "STSW"},
			TitleAliases: []string{"stowsweep", "sweepstow"},
		},
		{
			Name:         "Vreturns WaterSpider",
			ShortName:    "VRWS",
			WorkCodes:    []string{"VRWS", "VRETWS", "VRWATER"},
			TitleAliases: []string{"vreturnswaterspider"},
			SourceHints:  []string{"vret", "vreturns"},
		},
		{
			Name:         "C-Returns_EndofLine",
			ShortName:    "CREOL",
			WorkCodes:    []string{"CREOL", "EOL", "ENDOFLINE", "END_OF_LINE", "ENDLINE"},
			TitleAliases: []string{"endofline", "eol"},
		},
		{
			// Generic CRET water spider. The bare term also appears in the
			// WHD and Vreturns variants, so its name match is deferred to
			// source disambiguation.
			Name:         "Water Spider",
			ShortName:    "CRSDCNTF",
			WorkCodes:    []string{"CRSDCNTF"},
			TitleAliases: []string{"decanterflow", "creturnssupport"},
			Generic:      true,
		},
		{
			Name:         "WHD Waterspider",
			ShortName:    "WHDWTSP",
			WorkCodes:    []string{"WHDWTSP"},
			TitleAliases: []string{"whdwaterspider", "whdgrading"},
			SourceHints:  []string{"whd"},
		},
		{
			// Redundant spelled-out variant of the WHD path; some reports
			// title it with the space.
			Name:        "WHD Water Spider",
			ShortName:   "WHDWTSP",
			WorkCodes:   []string{"WHDWTSP"},
			SourceHints: []string{"whd"},
		},
		{
			Name:         "Team_Mech_Wspider",
			ShortName:    "TMWSP",
			WorkCodes:    []string{"TMWSP"},
			TitleAliases: []string{"teammechwspider"},
		},
	}
	paths, err := buildPaths(entries)
	if err != nil {
		// The built-in table is validated by tests; a bad entry is a
		// programming error.
		panic(err)
	}
	return paths
}

// LoadPaths reads a restricted path table from a YAML file. An empty path
// argument returns the built-in table.
func LoadPaths(path string) ([]Path, error) {
	if path == "" {
		return DefaultPaths(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading path config: %w", err)
	}
	var file pathsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing path config: %w", err)
	}
	if len(file.Paths) == 0 {
		return nil, fmt.Errorf("path config %s: no paths defined", path)
	}
	return buildPaths(file.Paths)
}

func buildPaths(entries []pathEntry) ([]Path, error) {
	paths := make([]Path, 0, len(entries))
	for i, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("path %d: missing name", i)
		}
		p := Path{
			RestrictedPath: domain.RestrictedPath{
				Name:            e.Name,
				ShortName:       e.ShortName,
				WorkCodeAliases: e.WorkCodes,
				TitleAliases:    e.TitleAliases,
			},
			Generic:     e.Generic,
			SourceHints: make([]string, 0, len(e.SourceHints)),
			normName:    normalizeTitle(e.Name),
		}
		for _, code := range e.WorkCodes {
			if n := normalizeWorkCode(code); n != "" {
				p.normCodes = append(p.normCodes, n)
			}
		}
		for _, alias := range e.TitleAliases {
			if n := normalizeTitle(alias); n != "" {
				p.normAliases = append(p.normAliases, n)
			}
		}
		for _, hint := range e.SourceHints {
			if n := normalizeTitle(hint); n != "" {
				p.SourceHints = append(p.SourceHints, n)
			}
		}
		paths = append(paths, p)
	}
	return paths, nil
}
