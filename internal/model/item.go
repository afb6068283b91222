package model

import (
	"regexp"
	"strings"
)

// ItemRecord maps a canonical (lowercased) item name to its numeric id.
type ItemRecord struct {
	Name string
	ID   int
}

// PriorityLabel is the tag some reference lists embed in a trailing
// parenthetical on an item name, e.g. "Crown of Destruction (BEST)".
type PriorityLabel string

// Known priority labels.
const (
	PriorityNone        PriorityLabel = ""
	PriorityBest        PriorityLabel = "BEST"
	PriorityRecommended PriorityLabel = "RECOMMENDED"
	PriorityGood        PriorityLabel = "GOOD"
	PriorityOption      PriorityLabel = "OPTION"
	PriorityAlternative PriorityLabel = "ALTERNATIVE"
	PriorityEasy        PriorityLabel = "EASY"
	PriorityHard        PriorityLabel = "HARD"
)

var priorityRe = regexp.MustCompile(`(?i)\s*\((BEST|RECOMMENDED|GOOD|OPTION|ALTERNATIVE|EASY|HARD)\)\s*$`)

// ParseItemName splits a raw reference-list item name into its clean name and
// priority label. Names without a recognized trailing parenthetical come back
// unchanged with PriorityNone.
func ParseItemName(raw string) (string, PriorityLabel) {
	m := priorityRe.FindStringSubmatch(raw)
	if m == nil {
		return strings.TrimSpace(raw), PriorityNone
	}
	clean := strings.TrimSpace(priorityRe.ReplaceAllString(raw, ""))
	return clean, PriorityLabel(strings.ToUpper(m[1]))
}

// Rating maps a priority label to its numeric weight used for slot scoring.
func (l PriorityLabel) Rating() float64 {
	switch l {
	case PriorityBest:
		return 1.0
	case PriorityRecommended:
		return 0.85
	case PriorityOption, PriorityAlternative:
		return 0.7
	case PriorityEasy:
		return 0.6
	default:
		return 0.5
	}
}

// BisEntry is one row of a best-in-slot reference list. Item holds the clean
// name; the priority label is parsed out once at the data-loading boundary.
type BisEntry struct {
	Slot   string        `json:"slot"`
	Item   string        `json:"item"`
	Label  PriorityLabel `json:"label,omitempty"`
	Source string        `json:"source,omitempty"`
}

// Rating returns the entry's scoring weight.
func (e BisEntry) Rating() float64 {
	return e.Label.Rating()
}

// NamesMatch is the single fuzzy-matching primitive used for both item
// resolution and slot matching: case-insensitive equality or bidirectional
// substring containment. The looseness is deliberate; it tolerates partial
// pastes and reference-list naming variance.
func NamesMatch(a, b string) bool {
	la := strings.ToLower(strings.TrimSpace(a))
	lb := strings.ToLower(strings.TrimSpace(b))
	if la == "" || lb == "" {
		return false
	}
	return la == lb || strings.Contains(la, lb) || strings.Contains(lb, la)
}
