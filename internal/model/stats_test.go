package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZeroStats(t *testing.T) {
	r := ZeroStats()
	assert.Len(t, r, len(AllStats))
	assert.True(t, r.IsZero())
}

func TestStatRecordGet(t *testing.T) {
	var nilRec StatRecord
	assert.Equal(t, 0, nilRec.Get(StatStamina))

	sparse := StatRecord{StatStamina: 12}
	assert.Equal(t, 12, sparse.Get(StatStamina))
	assert.Equal(t, 0, sparse.Get(StatIntellect))
}

func TestStatRecordAdd(t *testing.T) {
	r := ZeroStats()
	r.Add(StatStamina, 12)
	r.Add(StatStamina, 12)
	assert.Equal(t, 24, r.Get(StatStamina))

	r.Add(StatIntellect, 0)
	r.Add(StatSpirit, -5)
	assert.Equal(t, 0, r.Get(StatIntellect))
	assert.Equal(t, 0, r.Get(StatSpirit))
}

func TestSumStats(t *testing.T) {
	tests := []struct {
		name    string
		records []StatRecord
		want    StatRecord
	}{
		{
			name:    "empty sequence is the zero record",
			records: nil,
			want:    ZeroStats(),
		},
		{
			name:    "zeros sum to zero",
			records: []StatRecord{ZeroStats(), ZeroStats()},
			want:    ZeroStats(),
		},
		{
			name: "sparse records treated as zero-filled",
			records: []StatRecord{
				{StatStamina: 10},
				{StatStamina: 5, StatIntellect: 7},
			},
			want: func() StatRecord {
				r := ZeroStats()
				r[StatStamina] = 15
				r[StatIntellect] = 7
				return r
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SumStats(tt.records))
		})
	}
}

func TestSumStatsCommutative(t *testing.T) {
	a := StatRecord{StatStamina: 10, StatHit: 3}
	b := StatRecord{StatStamina: 4, StatSpellDamage: 88}
	assert.Equal(t, SumStats([]StatRecord{a, b}), SumStats([]StatRecord{b, a}))
}

func TestStatRecordClone(t *testing.T) {
	orig := ZeroStats()
	orig[StatStamina] = 30
	clone := orig.Clone()
	clone[StatStamina] = 99
	assert.Equal(t, 30, orig.Get(StatStamina))
}

func TestStatLabel(t *testing.T) {
	assert.Equal(t, "Attack Power", StatAttackPower.Label())
	assert.Equal(t, "mystery", Stat("mystery").Label())
}
