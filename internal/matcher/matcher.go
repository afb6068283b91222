// Package matcher reconciles user-entered gear lists against best-in-slot
// reference tables.
package matcher

import (
	"regexp"
	"strings"

	"github.com/tbctxt/readycheck/internal/model"
)

// slotSuffixRe strips the trailing number that disambiguates duplicate slots
// ("RING 1" → "RING") for display only.
var slotSuffixRe = regexp.MustCompile(`\s+\d+$`)

type slotGroup struct {
	slot    string
	entries []model.BisEntry
}

// Match produces one result per distinct slot in the reference list, in
// first-occurrence order. Each user line is consumed by at most one slot.
// An empty reference list yields an empty result set.
func Match(userLines []string, bis []model.BisEntry) []model.SlotMatchResult {
	groups := groupBySlot(bis)
	results := make([]model.SlotMatchResult, 0, len(groups))

	consumed := make(map[string]bool, len(userLines))

	for _, g := range groups {
		best := bestEntry(g.entries)
		result := model.SlotMatchResult{
			Slot:        g.slot,
			DisplaySlot: slotSuffixRe.ReplaceAllString(g.slot, ""),
			BisItem:     best.Item,
			BisSource:   best.Source,
			Status:      model.MatchMissing,
		}

		for _, line := range userLines {
			key := strings.ToLower(strings.TrimSpace(line))
			if key == "" || consumed[key] {
				continue
			}
			entry, ok := matchLine(line, g.entries)
			if !ok {
				continue
			}
			consumed[key] = true
			result.UserItem = strings.TrimSpace(line)
			result.Status = statusForRating(entry.Rating())
			break
		}

		results = append(results, result)
	}

	return results
}

// BestPerSlot reduces a reference list to one entry per slot, in slot
// first-occurrence order, using the same best-entry pick as Match. The BiS
// stat aggregate is computed over exactly these entries.
func BestPerSlot(bis []model.BisEntry) []model.BisEntry {
	groups := groupBySlot(bis)
	out := make([]model.BisEntry, 0, len(groups))
	for _, g := range groups {
		out = append(out, bestEntry(g.entries))
	}
	return out
}

// groupBySlot groups reference entries by slot key, preserving both the
// first-occurrence order of slots and the per-slot alternative order.
func groupBySlot(bis []model.BisEntry) []slotGroup {
	index := make(map[string]int, len(bis))
	var groups []slotGroup
	for _, e := range bis {
		i, ok := index[e.Slot]
		if !ok {
			i = len(groups)
			index[e.Slot] = i
			groups = append(groups, slotGroup{slot: e.Slot})
		}
		groups[i].entries = append(groups[i].entries, e)
	}
	return groups
}

// bestEntry picks the slot's reference item: the first BEST-rated entry, else
// the first entry in data order.
func bestEntry(entries []model.BisEntry) model.BisEntry {
	for _, e := range entries {
		if e.Rating() >= 1.0 {
			return e
		}
	}
	return entries[0]
}

// matchLine returns the first alternative whose name relates to the user
// line by the fuzzy name-matching primitive.
func matchLine(line string, entries []model.BisEntry) (model.BisEntry, bool) {
	for _, e := range entries {
		if model.NamesMatch(line, e.Item) {
			return e, true
		}
	}
	return model.BisEntry{}, false
}

func statusForRating(rating float64) model.MatchStatus {
	switch {
	case rating >= 1.0:
		return model.MatchBiS
	case rating >= 0.7:
		return model.MatchGood
	default:
		return model.MatchOK
	}
}
