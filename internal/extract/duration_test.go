package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in      string
		minutes float64
		ok      bool
	}{
		{"2h 30m", 150, true},
		{"2h", 120, true},
		{"45m", 45, true},
		{"0m", 0, true},
		{"1:30", 90, true},
		{"0:45", 45, true},
		{"1:30:15", 90.25, true},
		{"45:30", 45.5, true},
		{"59:59", 59 + 59.0/60, true},
		{"12:05", 725, true},
		{"  1h 5m ", 65, true},
		{"", 0, false},
		{"ongoing", 0, false},
		{"--", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseDuration(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		if tc.ok {
			assert.InDelta(t, tc.minutes, got, 0.001, "input %q", tc.in)
		}
	}
}

func TestParseDuration_RoundTripCanonical(t *testing.T) {
	// The three accepted formats agree on canonical minutes.
	a, _ := ParseDuration("1h 30m")
	b, _ := ParseDuration("1:30")
	assert.Equal(t, a, b)
}
