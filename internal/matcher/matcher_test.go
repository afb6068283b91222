package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbctxt/readycheck/internal/model"
)

func helmBis() []model.BisEntry {
	return []model.BisEntry{
		{Slot: "HELM", Item: "Crown of Destruction", Label: model.PriorityBest, Source: "Boss X"},
		{Slot: "HELM", Item: "Cowl of Nefarious Dealings", Label: model.PriorityOption, Source: "Vendor"},
	}
}

func TestMatchBestItem(t *testing.T) {
	results := Match([]string{"Crown of Destruction"}, helmBis())
	require.Len(t, results, 1)

	assert.Equal(t, "HELM", results[0].Slot)
	assert.Equal(t, model.MatchBiS, results[0].Status)
	assert.Equal(t, "Crown of Destruction", results[0].UserItem)
	assert.Equal(t, "Crown of Destruction", results[0].BisItem)
	assert.Equal(t, "Boss X", results[0].BisSource)
}

func TestMatchOptionItemIsGood(t *testing.T) {
	// OPTION carries rating 0.7, which lands exactly on the GOOD cutoff
	results := Match([]string{"Cowl of Nefarious Dealings"}, helmBis())
	require.Len(t, results, 1)
	assert.Equal(t, model.MatchGood, results[0].Status)
	assert.Equal(t, "Cowl of Nefarious Dealings", results[0].UserItem)
}

func TestMatchEmptyInputAllMissing(t *testing.T) {
	bis := append(helmBis(),
		model.BisEntry{Slot: "NECK", Item: "Pendant of Dawn", Label: model.PriorityBest})

	results := Match(nil, bis)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, model.MatchMissing, r.Status)
		assert.Empty(t, r.UserItem)
	}
}

func TestMatchEmptyBisList(t *testing.T) {
	assert.Empty(t, Match([]string{"Crown of Destruction"}, nil))
}

func TestMatchConsumedExclusivity(t *testing.T) {
	// Both rings match the same user line; only one slot may claim it
	bis := []model.BisEntry{
		{Slot: "RING 1", Item: "Band of Eternity", Label: model.PriorityBest},
		{Slot: "RING 2", Item: "Band of Eternity", Label: model.PriorityBest},
	}

	results := Match([]string{"Band of Eternity"}, bis)
	require.Len(t, results, 2)
	assert.Equal(t, model.MatchBiS, results[0].Status)
	assert.Equal(t, model.MatchMissing, results[1].Status)

	// Duplicate lines share one consumed key, so the second slot stays
	// unmatched even though a second copy was pasted
	results = Match([]string{"Band of Eternity", "Band of Eternity"}, bis)
	require.Len(t, results, 2)
	assert.Equal(t, model.MatchBiS, results[0].Status)
	assert.Equal(t, model.MatchMissing, results[1].Status)
}

func TestMatchDisplaySlotStripsSuffix(t *testing.T) {
	bis := []model.BisEntry{
		{Slot: "RING 1", Item: "Band of Eternity", Label: model.PriorityBest},
		{Slot: "TRINKET 2", Item: "Figurine of the Colossus", Label: model.PriorityBest},
		{Slot: "HELM", Item: "Crown of Destruction", Label: model.PriorityBest},
	}

	results := Match(nil, bis)
	require.Len(t, results, 3)
	assert.Equal(t, "RING", results[0].DisplaySlot)
	assert.Equal(t, "TRINKET", results[1].DisplaySlot)
	assert.Equal(t, "HELM", results[2].DisplaySlot)
	assert.Equal(t, "RING 1", results[0].Slot)
}

func TestMatchSubstringBothDirections(t *testing.T) {
	bis := helmBis()

	t.Run("partial paste", func(t *testing.T) {
		results := Match([]string{"Crown"}, bis)
		assert.Equal(t, model.MatchBiS, results[0].Status)
	})

	t.Run("paste longer than reference name", func(t *testing.T) {
		results := Match([]string{"Crown of Destruction of the Bear"}, bis)
		assert.Equal(t, model.MatchBiS, results[0].Status)
	})
}

func TestMatchUnlabeledFallbackEntry(t *testing.T) {
	// No BEST entry: the first alternative is the reference, rating 0.5 → OK
	bis := []model.BisEntry{
		{Slot: "CLOAK", Item: "Cloak of the Black Void", Label: model.PriorityNone, Source: "Tailoring"},
	}

	results := Match([]string{"Cloak of the Black Void"}, bis)
	require.Len(t, results, 1)
	assert.Equal(t, model.MatchOK, results[0].Status)
	assert.Equal(t, "Cloak of the Black Void", results[0].BisItem)
}

func TestMatchSlotOrderPreserved(t *testing.T) {
	bis := []model.BisEntry{
		{Slot: "WEAPON", Item: "Gorehowl", Label: model.PriorityBest},
		{Slot: "HELM", Item: "Crown of Destruction", Label: model.PriorityBest},
		{Slot: "WEAPON", Item: "King's Defender", Label: model.PriorityOption},
	}

	results := Match(nil, bis)
	require.Len(t, results, 2)
	assert.Equal(t, "WEAPON", results[0].Slot)
	assert.Equal(t, "HELM", results[1].Slot)
}
