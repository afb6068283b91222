// Package model defines the core domain types shared across the application.
package model

// Stat identifies a single tracked item statistic.
type Stat string

// The closed set of tracked stats. Every StatRecord carries a value for each
// of these keys, zero-filled when an item grants nothing for it.
const (
	StatStamina     Stat = "stamina"
	StatIntellect   Stat = "intellect"
	StatStrength    Stat = "strength"
	StatAgility     Stat = "agility"
	StatSpirit      Stat = "spirit"
	StatArmor       Stat = "armor"
	StatDefense     Stat = "defense"
	StatDodge       Stat = "dodge"
	StatParry       Stat = "parry"
	StatBlock       Stat = "block"
	StatHit         Stat = "hit"
	StatCrit        Stat = "crit"
	StatHaste       Stat = "haste"
	StatExpertise   Stat = "expertise"
	StatAttackPower Stat = "attackpower"
	StatArmorPen    Stat = "armorpen"
	StatSpellHit    Stat = "spellhit"
	StatSpellCrit   Stat = "spellcrit"
	StatSpellHaste  Stat = "spellhaste"
	StatSpellDamage Stat = "spelldamage"
	StatHealing     Stat = "healing"
	StatMP5         Stat = "mp5"
)

// AllStats lists every tracked stat in canonical display order.
var AllStats = []Stat{
	StatStamina, StatIntellect, StatStrength, StatAgility, StatSpirit,
	StatArmor, StatDefense, StatDodge, StatParry, StatBlock,
	StatHit, StatCrit, StatHaste, StatExpertise, StatAttackPower, StatArmorPen,
	StatSpellHit, StatSpellCrit, StatSpellHaste, StatSpellDamage, StatHealing, StatMP5,
}

// statLabels maps stat keys to human-readable names for report output.
var statLabels = map[Stat]string{
	StatStamina:     "Stamina",
	StatIntellect:   "Intellect",
	StatStrength:    "Strength",
	StatAgility:     "Agility",
	StatSpirit:      "Spirit",
	StatArmor:       "Armor",
	StatDefense:     "Defense",
	StatDodge:       "Dodge",
	StatParry:       "Parry",
	StatBlock:       "Block",
	StatHit:         "Hit Rating",
	StatCrit:        "Crit Rating",
	StatHaste:       "Haste Rating",
	StatExpertise:   "Expertise",
	StatAttackPower: "Attack Power",
	StatArmorPen:    "Armor Penetration",
	StatSpellHit:    "Spell Hit",
	StatSpellCrit:   "Spell Crit",
	StatSpellHaste:  "Spell Haste",
	StatSpellDamage: "Spell Damage",
	StatHealing:     "Healing",
	StatMP5:         "MP5",
}

// Label returns the display name for a stat, falling back to the raw key.
func (s Stat) Label() string {
	if label, ok := statLabels[s]; ok {
		return label
	}
	return string(s)
}

// StatRecord holds a value for every tracked stat. Values are never negative.
type StatRecord map[Stat]int

// ZeroStats returns a fully-populated record with every stat at zero.
func ZeroStats() StatRecord {
	r := make(StatRecord, len(AllStats))
	for _, s := range AllStats {
		r[s] = 0
	}
	return r
}

// Get returns the value for a stat, treating missing keys as zero so sparse
// records behave like fully-populated ones.
func (r StatRecord) Get(s Stat) int {
	if r == nil {
		return 0
	}
	return r[s]
}

// Add accumulates a value into a stat. Non-positive values are ignored so a
// matched-but-empty clause never pollutes "stat present" checks downstream.
func (r StatRecord) Add(s Stat, v int) {
	if v > 0 {
		r[s] += v
	}
}

// Plus returns a new record holding the pointwise sum of r and other.
func (r StatRecord) Plus(other StatRecord) StatRecord {
	out := ZeroStats()
	for _, s := range AllStats {
		out[s] = r.Get(s) + other.Get(s)
	}
	return out
}

// IsZero reports whether every tracked stat is zero.
func (r StatRecord) IsZero() bool {
	for _, s := range AllStats {
		if r.Get(s) != 0 {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the record.
func (r StatRecord) Clone() StatRecord {
	out := ZeroStats()
	for _, s := range AllStats {
		out[s] = r.Get(s)
	}
	return out
}

// SumStats combines a sequence of records by pointwise addition. An empty
// sequence yields the zero record; sparse records contribute zeros for any
// missing keys.
func SumStats(records []StatRecord) StatRecord {
	total := ZeroStats()
	for _, rec := range records {
		for _, s := range AllStats {
			total[s] += rec.Get(s)
		}
	}
	return total
}
