package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRoster_HeaderDriven(t *testing.T) {
	raw := `
<table>
<tr><th>Employee ID</th><th>Name</th><th>Hours</th></tr>
<tr><td>111983827</td><td>Doe, Jordan</td><td>4.25</td></tr>
<tr><td>111983828</td><td>Lee, Casey</td><td>1h 30m</td></tr>
<tr><td></td><td>Total</td><td>5.75</td></tr>
</table>`
	entries := ExtractRoster([]byte(raw))

	require.Len(t, entries, 2)
	assert.Equal(t, "111983827", entries[0].BadgeID)
	assert.Equal(t, "Doe, Jordan", entries[0].Name)
	assert.InDelta(t, 255.0, entries[0].Minutes, 0.001)
	assert.InDelta(t, 90.0, entries[1].Minutes, 0.001)
}

func TestExtractRoster_ShapeHeuristic(t *testing.T) {
	raw := `
<table>
<tr><td>Doe, Jordan</td><td>111983827</td><td>2.5</td></tr>
</table>`
	entries := ExtractRoster([]byte(raw))

	require.Len(t, entries, 1)
	assert.Equal(t, "111983827", entries[0].BadgeID)
	assert.Equal(t, "Doe, Jordan", entries[0].Name)
	assert.InDelta(t, 150.0, entries[0].Minutes, 0.001)
}

func TestExtractRoster_Unrecognized(t *testing.T) {
	assert.Empty(t, ExtractRoster([]byte("<p>loading</p>")))
	assert.Empty(t, ExtractRoster(nil))
}
