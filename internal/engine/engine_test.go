package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbctxt/readycheck/internal/model"
	"github.com/tbctxt/readycheck/internal/refdata"
	"github.com/tbctxt/readycheck/internal/resolver"
)

func newTestEngine(t *testing.T, fetcher *MockFetcher) *Engine {
	t.Helper()
	store, err := refdata.Load("")
	require.NoError(t, err)
	return New(store, resolver.New(store, nil), fetcher, Config{})
}

func TestParseGearLines(t *testing.T) {
	text := "1. King's Defender\n\n  [Shield of Impenetrable Darkness]  \n2) Gorehowl\n   \n"
	lines := ParseGearLines(text)
	assert.Equal(t, []string{
		"King's Defender",
		"Shield of Impenetrable Darkness",
		"Gorehowl",
	}, lines)
}

func TestParseGearLinesEmpty(t *testing.T) {
	assert.Empty(t, ParseGearLines(""))
	assert.Empty(t, ParseGearLines("\n  \n"))
}

func TestPreview(t *testing.T) {
	e := newTestEngine(t, &MockFetcher{})

	lines, slots := e.Preview("warrior", "protection", "1", "King's Defender\nNot A Real Item")

	require.Len(t, lines, 2)
	assert.True(t, lines[0].Found)
	assert.Equal(t, 28749, lines[0].ItemID)
	assert.False(t, lines[1].Found)

	require.NotEmpty(t, slots)
	var weapon *model.SlotMatchResult
	for i := range slots {
		if slots[i].Slot == "WEAPON" {
			weapon = &slots[i]
		}
	}
	require.NotNil(t, weapon)
	assert.Equal(t, model.MatchBiS, weapon.Status)
	assert.Equal(t, "King's Defender", weapon.UserItem)
}

func TestPreviewInvalidSelectionFallsBack(t *testing.T) {
	e := newTestEngine(t, &MockFetcher{})

	_, slots := e.Preview("mage", "fire", "7", "")
	assert.NotEmpty(t, slots)
	for _, s := range slots {
		assert.Equal(t, model.MatchMissing, s.Status)
	}
}

func TestCheck(t *testing.T) {
	fetcher := &MockFetcher{Tooltips: map[int]string{
		// King's Defender
		28749: `<b>+39 Stamina</b><br>+17 Defense Rating`,
		// Shield of Impenetrable Darkness
		28606: `4872 Armor<br>+33 Stamina`,
	}}
	e := newTestEngine(t, fetcher)

	report, err := e.Check(context.Background(),
		"warrior", "protection", "1",
		"King's Defender\nShield of Impenetrable Darkness")
	require.NoError(t, err)

	assert.Equal(t, "warrior", report.Class)
	assert.Equal(t, model.RoleTank, report.Role)

	require.Len(t, report.Lines, 2)
	assert.True(t, report.Lines[0].Found)
	assert.False(t, report.Lines[0].Remote)

	assert.Equal(t, 72, report.Stats.Get(model.StatStamina))
	assert.Equal(t, 17, report.Stats.Get(model.StatDefense))
	assert.Equal(t, 4872, report.Stats.Get(model.StatArmor))

	assert.Equal(t, "Karazhan", report.Thresholds.Label)
	assert.Equal(t, model.VerdictNotReady, report.Thresholds.Verdict)

	var weapon, offhand *model.SlotMatchResult
	for i := range report.Slots {
		switch report.Slots[i].Slot {
		case "WEAPON":
			weapon = &report.Slots[i]
		case "OFF-HAND":
			offhand = &report.Slots[i]
		}
	}
	require.NotNil(t, weapon)
	require.NotNil(t, offhand)
	assert.Equal(t, model.MatchBiS, weapon.Status)
	assert.Equal(t, model.MatchBiS, offhand.Status)
}

func TestCheckUnresolvedLinesContributeNothing(t *testing.T) {
	e := newTestEngine(t, &MockFetcher{})

	report, err := e.Check(context.Background(),
		"warrior", "protection", "1", "Completely Unknown Item")
	require.NoError(t, err)

	require.Len(t, report.Lines, 1)
	assert.False(t, report.Lines[0].Found)
	assert.True(t, report.Stats.IsZero())
}

func TestCheckStatCachePersists(t *testing.T) {
	fetcher := &MockFetcher{Tooltips: map[int]string{
		28749: `+39 Stamina`,
	}}
	e := newTestEngine(t, fetcher)

	_, err := e.Check(context.Background(), "warrior", "protection", "1", "King's Defender")
	require.NoError(t, err)
	first := fetcher.FetchCount()

	_, err = e.Check(context.Background(), "warrior", "protection", "1", "King's Defender")
	require.NoError(t, err)
	assert.Equal(t, first, fetcher.FetchCount())
}

func TestInvalidateScope(t *testing.T) {
	e := newTestEngine(t, &MockFetcher{})

	_, err := e.Check(context.Background(), "warrior", "protection", "1", "")
	require.NoError(t, err)

	e.mu.Lock()
	_, ok := e.bisCache["warrior-protection-1"]
	e.mu.Unlock()
	require.True(t, ok)

	e.InvalidateScope("warrior", "protection", "1")

	e.mu.Lock()
	_, ok = e.bisCache["warrior-protection-1"]
	e.mu.Unlock()
	assert.False(t, ok)

	// Per-item stat caches survive scope invalidation
	e.mu.Lock()
	statCount := len(e.statCache)
	e.mu.Unlock()
	assert.Greater(t, statCount, 0)
}

func TestFetchStatsReentrancyGuard(t *testing.T) {
	e := newTestEngine(t, &MockFetcher{})

	e.mu.Lock()
	e.fetching = true
	e.mu.Unlock()

	err := e.fetchStats(context.Background(), []int{28749})
	assert.ErrorIs(t, err, ErrFetchInProgress)
}
