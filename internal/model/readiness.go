package model

// Role is the broad raid role a spec plays, used to select threshold tables.
type Role string

// The four tracked roles.
const (
	RoleCasterDPS Role = "caster_dps"
	RoleHealer    Role = "healer"
	RoleMeleeDPS  Role = "melee_dps"
	RoleTank      Role = "tank"
)

// MatchStatus classifies how well a user's item for a slot matches the
// reference list.
type MatchStatus string

// Slot match statuses.
const (
	MatchBiS     MatchStatus = "BiS"
	MatchGood    MatchStatus = "GOOD"
	MatchOK      MatchStatus = "OK"
	MatchMissing MatchStatus = "MISSING"
)

// SlotMatchResult is the per-slot outcome of reconciling a user's gear list
// against the best-in-slot table. UserItem is empty when the slot is MISSING.
type SlotMatchResult struct {
	Slot        string      `json:"slot"`
	DisplaySlot string      `json:"displaySlot"`
	UserItem    string      `json:"userItem,omitempty"`
	BisItem     string      `json:"bisItem"`
	BisSource   string      `json:"bisSource"`
	Status      MatchStatus `json:"status"`
}

// ThresholdEntry records one stat's standing against a raid-entry minimum.
// Diff is negative when the requirement is not met.
type ThresholdEntry struct {
	Stat     Stat   `json:"stat"`
	Label    string `json:"label"`
	Current  int    `json:"current"`
	Required int    `json:"required"`
	Diff     int    `json:"diff"`
}

// Verdict is the overall readiness call derived from failed threshold count.
type Verdict string

// Readiness verdicts. Zero failures is READY, exactly one is ALMOST READY,
// anything more is NOT READY.
const (
	VerdictReady       Verdict = "READY"
	VerdictAlmostReady Verdict = "ALMOST READY"
	VerdictNotReady    Verdict = "NOT READY"
)

// VerdictForFailures applies the fixed failed-count tie-break rule.
func VerdictForFailures(failed int) Verdict {
	switch {
	case failed == 0:
		return VerdictReady
	case failed == 1:
		return VerdictAlmostReady
	default:
		return VerdictNotReady
	}
}

// ThresholdResult partitions the evaluated stats into passed and failed sets.
type ThresholdResult struct {
	Label   string           `json:"label"`
	Passed  []ThresholdEntry `json:"passed"`
	Failed  []ThresholdEntry `json:"failed"`
	Verdict Verdict          `json:"verdict"`
}

// StatStatus buckets a user's stat value relative to the phase BiS aggregate.
type StatStatus string

// Stat comparison buckets. PREPARED means at least 80% of the previous
// phase's BiS value; NoData marks stats with no BiS reference.
const (
	StatStatusBiS      StatStatus = "BiS"
	StatStatusGood     StatStatus = "GOOD"
	StatStatusPrepared StatStatus = "PREPARED"
	StatStatusLow      StatStatus = "LOW"
	StatStatusNoData   StatStatus = "-"
)

// CompareStat buckets a user value against the current and previous phase BiS
// values: >=100% of BiS, >=90% of BiS, >=80% of the previous phase's BiS,
// else LOW.
func CompareStat(user, bis, prevBis int) StatStatus {
	if bis == 0 {
		return StatStatusNoData
	}
	percent := float64(user) / float64(bis) * 100
	switch {
	case percent >= 100:
		return StatStatusBiS
	case percent >= 90:
		return StatStatusGood
	case prevBis > 0 && float64(user) >= float64(prevBis)*0.8:
		return StatStatusPrepared
	default:
		return StatStatusLow
	}
}

// StatComparison is one row of the user-vs-BiS stat table.
type StatComparison struct {
	Stat    Stat       `json:"stat"`
	Label   string     `json:"label"`
	User    int        `json:"user"`
	Bis     int        `json:"bis"`
	PrevBis int        `json:"prevBis"`
	Status  StatStatus `json:"status"`
}

// GearStatus is the aggregate stat standing across all key stats.
type GearStatus string

// Aggregate gear statuses.
const (
	GearStatusBiS         GearStatus = "BiS"
	GearStatusGood        GearStatus = "GOOD"
	GearStatusPrepared    GearStatus = "PREPARED"
	GearStatusUndergeared GearStatus = "UNDERGEARED"
	GearStatusNoData      GearStatus = "NO DATA"
)

// keyStats are the stats considered for the aggregate gear status; only those
// with a non-zero BiS reference count toward it.
var keyStats = []Stat{
	StatStamina, StatHit, StatCrit, StatAttackPower,
	StatSpellDamage, StatSpellHit, StatSpellCrit,
	StatHealing, StatDefense, StatMP5,
}

// OverallGearStatus derives the aggregate standing: all key stats at BiS is
// BiS, 80% at BiS-or-GOOD is GOOD, 60% at BiS/GOOD/PREPARED is PREPARED.
func OverallGearStatus(user, bis, prevBis StatRecord) GearStatus {
	var bisCount, goodCount, preparedCount, relevant int
	for _, s := range keyStats {
		ref := bis.Get(s)
		if ref <= 0 {
			continue
		}
		relevant++
		switch CompareStat(user.Get(s), ref, prevBis.Get(s)) {
		case StatStatusBiS:
			bisCount++
		case StatStatusGood:
			goodCount++
		case StatStatusPrepared:
			preparedCount++
		}
	}
	switch {
	case relevant == 0:
		return GearStatusNoData
	case bisCount == relevant:
		return GearStatusBiS
	case float64(bisCount+goodCount) >= float64(relevant)*0.8:
		return GearStatusGood
	case float64(bisCount+goodCount+preparedCount) >= float64(relevant)*0.6:
		return GearStatusPrepared
	default:
		return GearStatusUndergeared
	}
}

// LineResolution is the per-line outcome of resolving a pasted gear list.
type LineResolution struct {
	Input  string `json:"input"`
	ItemID int    `json:"itemId,omitempty"`
	Found  bool   `json:"found"`
	Remote bool   `json:"remote,omitempty"`
}

// Report bundles everything the renderer needs for one readiness evaluation.
type Report struct {
	Class      string            `json:"class"`
	Spec       string            `json:"spec"`
	Phase      string            `json:"phase"`
	Role       Role              `json:"role"`
	Lines      []LineResolution  `json:"lines"`
	Slots      []SlotMatchResult `json:"slots"`
	Stats      StatRecord        `json:"stats"`
	BisStats   StatRecord        `json:"bisStats"`
	Comparison []StatComparison  `json:"comparison"`
	Thresholds ThresholdResult   `json:"thresholds"`
	GearStatus GearStatus        `json:"gearStatus"`
}
