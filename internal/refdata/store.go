// Package refdata loads and serves the read-only reference tables: item
// name to id mappings, per-class/spec/phase best-in-slot lists, the spec
// to role mapping, and the raid-entry threshold tables.
package refdata

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tbctxt/readycheck/internal/common"
	"github.com/tbctxt/readycheck/internal/model"
)

//go:embed data/*.json
var defaultData embed.FS

const (
	itemIDsFile   = "itemIds.json"
	classDataFile = "classData.json"
)

type rawPhase struct {
	Name string     `json:"name"`
	Bis  [][]string `json:"bis"`
}

type rawSpec struct {
	Name   string              `json:"name"`
	Phases map[string]rawPhase `json:"phases"`
}

type rawClass struct {
	Name  string             `json:"name"`
	Specs map[string]rawSpec `json:"specs"`
}

type phaseEntry struct {
	name string
	bis  []model.BisEntry
}

type specEntry struct {
	name      string
	phases    map[string]phaseEntry
	phaseKeys []string
}

type classEntry struct {
	name     string
	specs    map[string]*specEntry
	specKeys []string
}

// Store is the immutable in-memory reference data set. All lookups iterate in
// sorted-key order so results are deterministic.
type Store struct {
	log       *slog.Logger
	items     map[string]int
	itemNames []string
	classes   map[string]*classEntry
	classKeys []string
}

// Load builds a Store from JSON data files in dir. Files missing from dir
// (or an empty dir) fall back to the embedded defaults shipped with the
// binary.
func Load(dir string) (*Store, error) {
	s := &Store{
		log:     common.ComponentLogger("refdata"),
		items:   make(map[string]int),
		classes: make(map[string]*classEntry),
	}

	raw, err := readDataFile(dir, itemIDsFile)
	if err != nil {
		return nil, err
	}
	var ids map[string]int
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", itemIDsFile, err)
	}
	for name, id := range ids {
		s.items[strings.ToLower(name)] = id
	}
	s.itemNames = make([]string, 0, len(s.items))
	for name := range s.items {
		s.itemNames = append(s.itemNames, name)
	}
	sort.Strings(s.itemNames)

	raw, err = readDataFile(dir, classDataFile)
	if err != nil {
		return nil, err
	}
	var classes map[string]rawClass
	if err := json.Unmarshal(raw, &classes); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", classDataFile, err)
	}
	for key, rc := range classes {
		s.classes[strings.ToLower(key)] = buildClass(s.log, key, rc)
	}
	s.classKeys = sortedKeys(s.classes)

	s.log.Debug("reference data loaded",
		"items", len(s.items),
		"classes", len(s.classKeys))
	return s, nil
}

func readDataFile(dir, name string) ([]byte, error) {
	if dir != "" {
		path := filepath.Join(dir, name)
		raw, err := os.ReadFile(path)
		if err == nil {
			return raw, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}
	raw, err := defaultData.ReadFile("data/" + name)
	if err != nil {
		return nil, fmt.Errorf("reading embedded %s: %w", name, err)
	}
	return raw, nil
}

func buildClass(log *slog.Logger, key string, rc rawClass) *classEntry {
	ce := &classEntry{name: rc.Name, specs: make(map[string]*specEntry)}
	for specKey, rs := range rc.Specs {
		se := &specEntry{name: rs.Name, phases: make(map[string]phaseEntry)}
		for phaseKey, rp := range rs.Phases {
			entries := make([]model.BisEntry, 0, len(rp.Bis))
			for _, row := range rp.Bis {
				if len(row) < 2 {
					log.Warn("skipping malformed bis row",
						"class", key, "spec", specKey, "phase", phaseKey)
					continue
				}
				name, label := model.ParseItemName(row[1])
				source := ""
				if len(row) > 2 {
					source = row[2]
				}
				entries = append(entries, model.BisEntry{
					Slot:   row[0],
					Item:   name,
					Label:  label,
					Source: source,
				})
			}
			se.phases[phaseKey] = phaseEntry{name: rp.Name, bis: entries}
		}
		se.phaseKeys = sortedKeys(se.phases)
		ce.specs[strings.ToLower(specKey)] = se
	}
	ce.specKeys = sortedKeys(ce.specs)
	return ce
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Classes returns the known class keys in sorted order.
func (s *Store) Classes() []string {
	return append([]string(nil), s.classKeys...)
}

// ClassName returns the display name for a class key.
func (s *Store) ClassName(class string) string {
	if ce, ok := s.classes[strings.ToLower(class)]; ok {
		return ce.name
	}
	return class
}

// Specs returns the spec keys for a class in sorted order.
func (s *Store) Specs(class string) []string {
	ce, ok := s.classes[strings.ToLower(class)]
	if !ok {
		return nil
	}
	return append([]string(nil), ce.specKeys...)
}

// Phases returns the phase keys for a class/spec in sorted order.
func (s *Store) Phases(class, spec string) []string {
	se := s.spec(class, spec)
	if se == nil {
		return nil
	}
	return append([]string(nil), se.phaseKeys...)
}

// PhaseName returns the display name for a phase of a class/spec.
func (s *Store) PhaseName(class, spec, phase string) string {
	se := s.spec(class, spec)
	if se == nil {
		return phase
	}
	if pe, ok := se.phases[phase]; ok && pe.name != "" {
		return pe.name
	}
	return phase
}

// BisList returns the best-in-slot entries for a class/spec/phase in data
// order. The returned slice is a copy; the store never mutates after Load.
func (s *Store) BisList(class, spec, phase string) []model.BisEntry {
	se := s.spec(class, spec)
	if se == nil {
		return nil
	}
	pe, ok := se.phases[phase]
	if !ok {
		return nil
	}
	return append([]model.BisEntry(nil), pe.bis...)
}

// PreviousPhase returns the phase key preceding the given one in sorted
// order, or false when the phase is first or unknown.
func (s *Store) PreviousPhase(class, spec, phase string) (string, bool) {
	se := s.spec(class, spec)
	if se == nil {
		return "", false
	}
	for i, key := range se.phaseKeys {
		if key == phase {
			if i == 0 {
				return "", false
			}
			return se.phaseKeys[i-1], true
		}
	}
	return "", false
}

// ResolveSelection validates a class/spec/phase triple, replacing any invalid
// part with the first available one in sorted order. A deliberate fallback,
// not an error.
func (s *Store) ResolveSelection(class, spec, phase string) (string, string, string) {
	class = strings.ToLower(class)
	if _, ok := s.classes[class]; !ok {
		if len(s.classKeys) == 0 {
			return "", "", ""
		}
		class = s.classKeys[0]
	}
	ce := s.classes[class]

	spec = strings.ToLower(spec)
	if _, ok := ce.specs[spec]; !ok {
		if len(ce.specKeys) == 0 {
			return class, "", ""
		}
		spec = ce.specKeys[0]
	}
	se := ce.specs[spec]

	if _, ok := se.phases[phase]; !ok {
		if len(se.phaseKeys) == 0 {
			return class, spec, ""
		}
		phase = se.phaseKeys[0]
	}
	return class, spec, phase
}

// LookupItem resolves a cleaned item name to its id: exact match on the
// lowercased name first, then bidirectional substring containment over the
// sorted name list so the first hit is deterministic.
func (s *Store) LookupItem(name string) (int, bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return 0, false
	}
	if id, ok := s.items[lower]; ok {
		return id, true
	}
	for _, stored := range s.itemNames {
		if strings.Contains(stored, lower) || strings.Contains(lower, stored) {
			return s.items[stored], true
		}
	}
	return 0, false
}

// ItemCount reports the number of known items.
func (s *Store) ItemCount() int {
	return len(s.items)
}

// ItemNames returns the known (lowercased) item names in sorted order.
func (s *Store) ItemNames() []string {
	return append([]string(nil), s.itemNames...)
}

func (s *Store) spec(class, spec string) *specEntry {
	ce, ok := s.classes[strings.ToLower(class)]
	if !ok {
		return nil
	}
	return ce.specs[strings.ToLower(spec)]
}
