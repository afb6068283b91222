package threshold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbctxt/readycheck/internal/model"
)

func tankStats(stamina int) model.StatRecord {
	r := model.ZeroStats()
	r[model.StatDefense] = 490
	r[model.StatArmor] = 10000
	r[model.StatStamina] = stamina
	return r
}

func TestEvaluateTankReady(t *testing.T) {
	result := Evaluate(tankStats(120), model.RoleTank, "1")

	assert.Equal(t, "Karazhan", result.Label)
	assert.Empty(t, result.Failed)
	assert.Len(t, result.Passed, 3)
	assert.Equal(t, model.VerdictReady, result.Verdict)
}

func TestEvaluateTankOneFailure(t *testing.T) {
	result := Evaluate(tankStats(100), model.RoleTank, "1")

	require.Len(t, result.Failed, 1)
	failed := result.Failed[0]
	assert.Equal(t, model.StatStamina, failed.Stat)
	assert.Equal(t, 100, failed.Current)
	assert.Equal(t, 120, failed.Required)
	assert.Equal(t, -20, failed.Diff)
	assert.Equal(t, model.VerdictAlmostReady, result.Verdict)
}

func TestEvaluateTwoFailuresNotReady(t *testing.T) {
	stats := tankStats(100)
	stats[model.StatArmor] = 8000

	result := Evaluate(stats, model.RoleTank, "1")
	assert.Len(t, result.Failed, 2)
	assert.Equal(t, model.VerdictNotReady, result.Verdict)
}

func TestEvaluateMissingStatsCountAsZero(t *testing.T) {
	result := Evaluate(model.StatRecord{}, model.RoleHealer, "1")

	require.Len(t, result.Failed, 3)
	for _, entry := range result.Failed {
		assert.Equal(t, 0, entry.Current)
		assert.Equal(t, -entry.Required, entry.Diff)
	}
}

func TestEvaluateMonotonicity(t *testing.T) {
	// Raising a single stat can only move its entry from failed to passed
	failedAt := func(stamina int) bool {
		result := Evaluate(tankStats(stamina), model.RoleTank, "1")
		for _, e := range result.Failed {
			if e.Stat == model.StatStamina {
				return true
			}
		}
		return false
	}

	wasFailed := failedAt(0)
	for stamina := 20; stamina <= 200; stamina += 20 {
		nowFailed := failedAt(stamina)
		if wasFailed {
			wasFailed = nowFailed
			continue
		}
		assert.False(t, nowFailed, "stat regressed to failed at stamina %d", stamina)
	}
}

func TestEvaluateUnknownPhase(t *testing.T) {
	result := Evaluate(tankStats(120), model.RoleTank, "0")

	assert.Equal(t, "Unknown", result.Label)
	assert.Empty(t, result.Passed)
	assert.Empty(t, result.Failed)
	assert.Equal(t, model.VerdictReady, result.Verdict)
}

func TestEvaluateForSpec(t *testing.T) {
	result := EvaluateForSpec(tankStats(120), "protection", "1")
	assert.Equal(t, model.VerdictReady, result.Verdict)

	// Unmapped specs fall back to caster thresholds
	result = EvaluateForSpec(model.ZeroStats(), "unknown-spec", "1")
	assert.Len(t, result.Failed, 3)
}
