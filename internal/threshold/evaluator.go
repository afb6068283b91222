// Package threshold evaluates aggregated stats against role- and
// phase-specific raid-entry minimums.
package threshold

import (
	"github.com/tbctxt/readycheck/internal/model"
	"github.com/tbctxt/readycheck/internal/refdata"
)

// Evaluate compares a stat record against the minimums for a role and phase.
// Stats are visited in canonical order so the partitioned lists are stable.
// A phase with no threshold table yields an empty READY result.
func Evaluate(stats model.StatRecord, role model.Role, phase string) model.ThresholdResult {
	table, ok := refdata.ThresholdsFor(role, phase)
	if !ok {
		return model.ThresholdResult{Label: "Unknown", Verdict: model.VerdictReady}
	}

	result := model.ThresholdResult{Label: table.Label}
	for _, stat := range model.AllStats {
		required, tracked := table.Minimums[stat]
		if !tracked {
			continue
		}
		current := stats.Get(stat)
		entry := model.ThresholdEntry{
			Stat:     stat,
			Label:    stat.Label(),
			Current:  current,
			Required: required,
			Diff:     current - required,
		}
		if current >= required {
			result.Passed = append(result.Passed, entry)
		} else {
			result.Failed = append(result.Failed, entry)
		}
	}

	result.Verdict = model.VerdictForFailures(len(result.Failed))
	return result
}

// EvaluateForSpec derives the role from a spec name and evaluates against it.
func EvaluateForSpec(stats model.StatRecord, spec, phase string) model.ThresholdResult {
	return Evaluate(stats, refdata.RoleForSpec(spec), phase)
}
