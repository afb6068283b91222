package tooltip

import (
	"regexp"

	"github.com/tbctxt/readycheck/internal/model"
)

type statRule struct {
	re   *regexp.Regexp
	stat model.Stat
}

// statRules are applied in order, and each rule consumes the text it matches
// so a broader pattern later in the list cannot re-count the same clause
// (e.g. "hit rating by N" inside "spell hit rating by N").
var statRules = []statRule{
	// Flat "+N Stat" clauses
	{regexp.MustCompile(`(?i)\+(\d+)\s+Stamina`), model.StatStamina},
	{regexp.MustCompile(`(?i)\+(\d+)\s+Intellect`), model.StatIntellect},
	{regexp.MustCompile(`(?i)\+(\d+)\s+Strength`), model.StatStrength},
	{regexp.MustCompile(`(?i)\+(\d+)\s+Agility`), model.StatAgility},
	{regexp.MustCompile(`(?i)\+(\d+)\s+Spirit`), model.StatSpirit},
	{regexp.MustCompile(`(?i)\+(\d+)\s+Hit Rating`), model.StatHit},
	{regexp.MustCompile(`(?i)\+(\d+)\s+Critical Strike Rating`), model.StatCrit},
	{regexp.MustCompile(`(?i)\+(\d+)\s+Haste Rating`), model.StatHaste},
	{regexp.MustCompile(`(?i)\+(\d+)\s+Expertise Rating`), model.StatExpertise},
	{regexp.MustCompile(`(?i)\+(\d+)\s+Attack Power`), model.StatAttackPower},
	{regexp.MustCompile(`(?i)\+(\d+)\s+Armor Penetration`), model.StatArmorPen},
	{regexp.MustCompile(`(?i)\+(\d+)\s+Defense Rating`), model.StatDefense},
	{regexp.MustCompile(`(?i)\+(\d+)\s+Dodge Rating`), model.StatDodge},
	{regexp.MustCompile(`(?i)\+(\d+)\s+Parry Rating`), model.StatParry},
	{regexp.MustCompile(`(?i)\+(\d+)\s+Block Rating`), model.StatBlock},
	// Base armor has no leading plus
	{regexp.MustCompile(`(?i)(\d+)\s+Armor`), model.StatArmor},
	// Equip effect phrasings; spell variants must run before the generic ones
	{regexp.MustCompile(`(?i)spell hit rating by (\d+)`), model.StatSpellHit},
	{regexp.MustCompile(`(?i)spell critical strike rating by (\d+)`), model.StatSpellCrit},
	{regexp.MustCompile(`(?i)spell haste rating by (\d+)`), model.StatSpellHaste},
	{regexp.MustCompile(`(?i)damage and healing[^0-9]+by (?:up to )?(\d+)`), model.StatSpellDamage},
	{regexp.MustCompile(`(?i)spell power by (\d+)`), model.StatSpellDamage},
	{regexp.MustCompile(`(?i)healing done by[^0-9]*?up to (\d+)`), model.StatHealing},
	{regexp.MustCompile(`(?i)hit rating by (\d+)`), model.StatHit},
	{regexp.MustCompile(`(?i)critical strike rating by (\d+)`), model.StatCrit},
	{regexp.MustCompile(`(?i)haste rating by (\d+)`), model.StatHaste},
	{regexp.MustCompile(`(?i)attack power by (\d+)`), model.StatAttackPower},
	{regexp.MustCompile(`(?i)(\d+) mana per 5`), model.StatMP5},
}

// socketBonusRe removes "Socket Bonus: ..." clauses up to the next recognized
// section so socket bonuses are not counted as base stats. The boundary token
// is kept via the capture group.
var socketBonusRe = regexp.MustCompile(`(?i)Socket Bonus:.*?(Durability|Requires|Equip:|$)`)
