package classify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkCode_ExactAlias(t *testing.T) {
	c := Default()

	path, ok := c.WorkCode("CREOL")
	require.True(t, ok)
	assert.Equal(t, "C-Returns_EndofLine", path)
}

func TestWorkCode_Normalization(t *testing.T) {
	c := Default()

	path, ok := c.WorkCode("  cre-ol ")
	require.True(t, ok)
	assert.Equal(t, "C-Returns_EndofLine", path)

	path, ok = c.WorkCode("end_of_line")
	require.True(t, ok)
	assert.Equal(t, "C-Returns_EndofLine", path)
}

func TestWorkCode_PrefixBothDirections(t *testing.T) {
	c := Default()

	// Code extends an alias.
	path, ok := c.WorkCode("CREOL2")
	require.True(t, ok)
	assert.Equal(t, "C-Returns_EndofLine", path)

	// Code is a prefix of an alias.
	path, ok = c.WorkCode("STWS")
	require.True(t, ok)
	assert.Equal(t, "C-Returns_StowSweep", path)
}

func TestWorkCode_DeclarationOrderBreaksTies(t *testing.T) {
	c := Default()

	// "S" prefixes aliases of more than one path; the first declared wins.
	path, ok := c.WorkCode("S")
	require.True(t, ok)
	assert.Equal(t, "C-Returns_StowSweep", path)
}

func TestWorkCode_Unrestricted(t *testing.T) {
	c := Default()

	_, ok := c.WorkCode("PICK")
	assert.False(t, ok)
	_, ok = c.WorkCode("")
	assert.False(t, ok)
	_, ok = c.WorkCode("---")
	assert.False(t, ok)
}

func TestTitle_CanonicalNameContainment(t *testing.T) {
	c := Default()

	path, ok := c.Title("C-Returns_EndofLine")
	require.True(t, ok)
	assert.Equal(t, "C-Returns_EndofLine", path)

	path, ok = c.Title("Night shift C-Returns_StowSweep coverage")
	require.True(t, ok)
	assert.Equal(t, "C-Returns_StowSweep", path)
}

func TestTitle_KeywordAliases(t *testing.T) {
	c := Default()

	path, ok := c.Title("Returns end of line processing")
	require.True(t, ok)
	assert.Equal(t, "C-Returns_EndofLine", path)

	path, ok = c.Title("Sweep & Stow (sweep-stow rotation)")
	require.True(t, ok)
	assert.Equal(t, "C-Returns_StowSweep", path)

	path, ok = c.Title("Decanter Flow support")
	require.True(t, ok)
	assert.Equal(t, "Water Spider", path)

	path, ok = c.Title("WHD Grading Support Water Spider")
	require.True(t, ok)
	assert.Equal(t, "WHD Waterspider", path)
}

func TestTitle_GenericWaterSpiderFallsBackToCRET(t *testing.T) {
	c := Default()

	path, ok := c.Title("Water Spider AM")
	require.True(t, ok)
	assert.Equal(t, "Water Spider", path)
}

func TestTitleFromReport_SourceDisambiguatesGenericTerm(t *testing.T) {
	c := Default()

	path, ok := c.TitleFromReport("Water Spider AM", "WHD Grading")
	require.True(t, ok)
	assert.Equal(t, "WHD Waterspider", path)

	path, ok = c.TitleFromReport("Water Spider AM", "Vreturns Process")
	require.True(t, ok)
	assert.Equal(t, "Vreturns WaterSpider", path)

	path, ok = c.TitleFromReport("Water Spider AM", "C-Returns")
	require.True(t, ok)
	assert.Equal(t, "Water Spider", path)
}

func TestTitle_NoMatch(t *testing.T) {
	c := Default()

	_, ok := c.Title("Pick To Buffer")
	assert.False(t, ok)
	_, ok = c.Title("")
	assert.False(t, ok)
}

func TestLoadPaths_Default(t *testing.T) {
	paths, err := LoadPaths("")
	require.NoError(t, err)
	assert.Len(t, paths, 7)
	assert.Equal(t, "C-Returns_StowSweep", paths[0].Name)
}

func TestLoadPaths_YAMLOverride(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "paths.yaml")
	content := `paths:
  - name: Test_Path
    short_name: TP
    work_codes: [TPX]
    title_aliases: [testpath]
`
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))

	paths, err := LoadPaths(file)
	require.NoError(t, err)
	require.Len(t, paths, 1)

	c := New(paths)
	path, ok := c.WorkCode("TPX")
	require.True(t, ok)
	assert.Equal(t, "Test_Path", path)

	_, ok = c.WorkCode("CREOL")
	assert.False(t, ok)
}

func TestLoadPaths_Invalid(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("paths: []\n"), 0644))
	_, err := LoadPaths(empty)
	assert.Error(t, err)

	unnamed := filepath.Join(dir, "unnamed.yaml")
	require.NoError(t, os.WriteFile(unnamed, []byte("paths:\n  - short_name: X\n"), 0644))
	_, err = LoadPaths(unnamed)
	assert.Error(t, err)

	_, err = LoadPaths(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
