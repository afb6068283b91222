package refdata

import (
	"strings"

	"github.com/tbctxt/readycheck/internal/model"
)

// specRoles maps lowercased spec names to raid roles. Specs absent from the
// map default to caster_dps.
var specRoles = map[string]model.Role{
	"shadow":        model.RoleCasterDPS,
	"holy":          model.RoleHealer,
	"discipline":    model.RoleHealer,
	"fire":          model.RoleCasterDPS,
	"frost":         model.RoleCasterDPS,
	"arcane":        model.RoleCasterDPS,
	"affliction":    model.RoleCasterDPS,
	"demonology":    model.RoleCasterDPS,
	"destruction":   model.RoleCasterDPS,
	"balance":       model.RoleCasterDPS,
	"feral":         model.RoleMeleeDPS,
	"feral tank":    model.RoleTank,
	"restoration":   model.RoleHealer,
	"protection":    model.RoleTank,
	"retribution":   model.RoleMeleeDPS,
	"elemental":     model.RoleCasterDPS,
	"enhancement":   model.RoleMeleeDPS,
	"arms":          model.RoleMeleeDPS,
	"fury":          model.RoleMeleeDPS,
	"combat":        model.RoleMeleeDPS,
	"assassination": model.RoleMeleeDPS,
	"subtlety":      model.RoleMeleeDPS,
	"beast mastery": model.RoleMeleeDPS,
	"marksmanship":  model.RoleMeleeDPS,
	"survival":      model.RoleMeleeDPS,
}

// RoleForSpec derives the raid role from a spec name. Unknown specs fall back
// to caster_dps rather than erroring.
func RoleForSpec(spec string) model.Role {
	if role, ok := specRoles[strings.ToLower(strings.TrimSpace(spec))]; ok {
		return role
	}
	return model.RoleCasterDPS
}

// ThresholdTable holds the minimum stat values to be considered ready for one
// role in one phase, plus the tier's display label.
type ThresholdTable struct {
	Label    string
	Minimums map[model.Stat]int
}

// raidThresholds are realistic entry minimums per role and phase, not BiS
// targets. Phases are keyed "1" through "5".
var raidThresholds = map[model.Role]map[string]ThresholdTable{
	model.RoleCasterDPS: {
		"1": {Label: "Karazhan", Minimums: map[model.Stat]int{model.StatSpellHit: 50, model.StatSpellDamage: 500, model.StatStamina: 120}},
		"2": {Label: "SSC/TK", Minimums: map[model.Stat]int{model.StatSpellHit: 76, model.StatSpellDamage: 750, model.StatStamina: 160}},
		"3": {Label: "Hyjal/BT", Minimums: map[model.Stat]int{model.StatSpellHit: 101, model.StatSpellDamage: 1000, model.StatStamina: 200}},
		"4": {Label: "ZA", Minimums: map[model.Stat]int{model.StatSpellHit: 101, model.StatSpellDamage: 1100, model.StatStamina: 230}},
		"5": {Label: "Sunwell", Minimums: map[model.Stat]int{model.StatSpellHit: 126, model.StatSpellDamage: 1300, model.StatStamina: 280}},
	},
	model.RoleHealer: {
		"1": {Label: "Karazhan", Minimums: map[model.Stat]int{model.StatHealing: 1000, model.StatMP5: 40, model.StatStamina: 120}},
		"2": {Label: "SSC/TK", Minimums: map[model.Stat]int{model.StatHealing: 1400, model.StatMP5: 60, model.StatStamina: 160}},
		"3": {Label: "Hyjal/BT", Minimums: map[model.Stat]int{model.StatHealing: 1700, model.StatMP5: 80, model.StatStamina: 200}},
		"4": {Label: "ZA", Minimums: map[model.Stat]int{model.StatHealing: 1900, model.StatMP5: 90, model.StatStamina: 230}},
		"5": {Label: "Sunwell", Minimums: map[model.Stat]int{model.StatHealing: 2200, model.StatMP5: 110, model.StatStamina: 280}},
	},
	model.RoleMeleeDPS: {
		"1": {Label: "Karazhan", Minimums: map[model.Stat]int{model.StatHit: 50, model.StatAttackPower: 800, model.StatCrit: 40, model.StatStamina: 120}},
		"2": {Label: "SSC/TK", Minimums: map[model.Stat]int{model.StatHit: 75, model.StatAttackPower: 1100, model.StatCrit: 70, model.StatStamina: 160}},
		"3": {Label: "Hyjal/BT", Minimums: map[model.Stat]int{model.StatHit: 100, model.StatAttackPower: 1400, model.StatCrit: 100, model.StatStamina: 220}},
		"4": {Label: "ZA", Minimums: map[model.Stat]int{model.StatHit: 110, model.StatAttackPower: 1600, model.StatCrit: 120, model.StatStamina: 260}},
		"5": {Label: "Sunwell", Minimums: map[model.Stat]int{model.StatHit: 120, model.StatAttackPower: 1900, model.StatCrit: 150, model.StatStamina: 320}},
	},
	model.RoleTank: {
		"1": {Label: "Karazhan", Minimums: map[model.Stat]int{model.StatDefense: 490, model.StatArmor: 10000, model.StatStamina: 120}},
		"2": {Label: "SSC/TK", Minimums: map[model.Stat]int{model.StatDefense: 490, model.StatArmor: 13000, model.StatStamina: 280}},
		"3": {Label: "Hyjal/BT", Minimums: map[model.Stat]int{model.StatDefense: 490, model.StatArmor: 16000, model.StatStamina: 350}},
		"4": {Label: "ZA", Minimums: map[model.Stat]int{model.StatDefense: 490, model.StatArmor: 18000, model.StatStamina: 400}},
		"5": {Label: "Sunwell", Minimums: map[model.Stat]int{model.StatDefense: 490, model.StatArmor: 21000, model.StatStamina: 480}},
	},
}

// ThresholdsFor returns the minimum table for a role and phase. The second
// return is false when the phase has no raid tier (e.g. pre-raid phase "0").
func ThresholdsFor(role model.Role, phase string) (ThresholdTable, bool) {
	byPhase, ok := raidThresholds[role]
	if !ok {
		return ThresholdTable{}, false
	}
	table, ok := byPhase[phase]
	return table, ok
}
