package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/pathguard/internal/domain"
	"github.com/alexanderramin/pathguard/internal/repository"
	"github.com/stretchr/testify/assert"
)

func TestFormatVerdict_Blocked(t *testing.T) {
	v := &domain.Verdict{
		Risk:        domain.RiskPathSwitch,
		TargetPath:  "C-Returns_EndofLine",
		WorkedPaths: []string{"C-Returns_StowSweep"},
		PathMinutes: domain.PathTimeTotals{"C-Returns_StowSweep": 300},
		Detail:      "Already worked C-Returns_StowSweep (5h). Cannot switch to C-Returns_EndofLine.",
	}
	out := FormatVerdict(v)

	assert.Contains(t, out, "MPV: PATH SWITCH")
	assert.Contains(t, out, "Cannot switch")
	assert.Contains(t, out, "C-Returns_StowSweep")
	assert.Contains(t, out, "5h")
}

func TestFormatVerdict_ClearWithRemaining(t *testing.T) {
	remaining := 170.0
	v := &domain.Verdict{
		Risk:             domain.RiskNone,
		TargetPath:       "C-Returns_EndofLine",
		WorkedPaths:      []string{"C-Returns_EndofLine"},
		PathMinutes:      domain.PathTimeTotals{"C-Returns_EndofLine": 100},
		CurrentMinutes:   100,
		RemainingMinutes: &remaining,
	}
	out := FormatVerdict(v)

	assert.Contains(t, out, "CLEAR")
	assert.Contains(t, out, "2h 50m")
}

func TestFormatVerdict_CurrentActivity(t *testing.T) {
	open := domain.Session{Title: "C-Returns_StowSweep", StartLabel: "13:15", Kind: domain.KindDetail}
	v := &domain.Verdict{Risk: domain.RiskNone, CurrentActivity: &open}
	out := FormatVerdict(v)

	assert.Contains(t, out, "currently:")
	assert.Contains(t, out, "13:15")
}

func TestFormatVerdict_Nil(t *testing.T) {
	assert.Contains(t, FormatVerdict(nil), "no verdict")
}

func TestFormatRoster_WarnsNearCeiling(t *testing.T) {
	snap := &repository.RosterSnapshot{
		Path:     "WHD Waterspider",
		CachedAt: time.Date(2026, 8, 28, 9, 30, 0, 0, time.UTC),
		Entries: []domain.RosterEntry{
			{BadgeID: "111983827", Name: "Doe, Jordan", Minutes: 250},
			{BadgeID: "111983828", Name: "Lee, Casey", Minutes: 60},
		},
	}
	out := FormatRoster(snap, 240)

	assert.Contains(t, out, "WHD WATERSPIDER")
	assert.Contains(t, out, "Doe, Jordan")
	assert.Contains(t, out, "⚠")
	assert.Contains(t, out, "4h 10m")
	assert.Contains(t, out, "1h")
}

func TestFormatRoster_Empty(t *testing.T) {
	snap := &repository.RosterSnapshot{Path: "Team_Mech_Wspider", CachedAt: time.Now()}
	out := FormatRoster(snap, 240)

	assert.Contains(t, out, "nobody on this path")
}
