// Package engine drives the full readiness pipeline: parse input, resolve
// identities, fetch and parse tooltips, aggregate stats, and compare against
// the best-in-slot tables and raid-entry thresholds.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tbctxt/readycheck/internal/common"
	"github.com/tbctxt/readycheck/internal/matcher"
	"github.com/tbctxt/readycheck/internal/model"
	"github.com/tbctxt/readycheck/internal/refdata"
	"github.com/tbctxt/readycheck/internal/resolver"
	"github.com/tbctxt/readycheck/internal/threshold"
	"github.com/tbctxt/readycheck/internal/tooltip"
)

// ErrFetchInProgress is returned when a batch stat fetch is already running.
var ErrFetchInProgress = errors.New("stat fetch already in progress")

// linePrefixRe strips list numbering like "1. " from pasted gear lines.
var linePrefixRe = regexp.MustCompile(`^\d+[.)]\s*`)

// Config holds engine tuning knobs.
type Config struct {
	// Concurrency bounds the tooltip-fetch fan-out.
	Concurrency int
	// Progress, when set, is called after each item of a batch fetch.
	Progress func(done, total int)
}

// Engine owns the per-item stat cache and the scope-keyed BiS aggregate
// cache, and exposes the readiness operations.
type Engine struct {
	store    *refdata.Store
	resolver *resolver.Resolver
	fetcher  TooltipFetcher
	cfg      Config
	log      *slog.Logger

	mu        sync.Mutex
	fetching  bool
	statCache map[int]model.StatRecord
	bisCache  map[string]model.StatRecord
}

// New creates an engine.
func New(store *refdata.Store, res *resolver.Resolver, fetcher TooltipFetcher, cfg Config) *Engine {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	return &Engine{
		store:     store,
		resolver:  res,
		fetcher:   fetcher,
		cfg:       cfg,
		log:       common.ComponentLogger("engine"),
		statCache: make(map[int]model.StatRecord),
		bisCache:  make(map[string]model.StatRecord),
	}
}

// ParseGearLines splits pasted gear text into cleaned item lines: list
// numbering and link brackets are stripped, blank lines dropped.
func ParseGearLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = linePrefixRe.ReplaceAllString(line, "")
		line = strings.Trim(line, "[]")
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Preview runs the cheap synchronous half of the pipeline: local-only line
// resolution plus slot matching. No network calls are made, so it is safe to
// call on every (debounced) input change.
func (e *Engine) Preview(class, spec, phase, gearText string) ([]model.LineResolution, []model.SlotMatchResult) {
	class, spec, phase = e.store.ResolveSelection(class, spec, phase)
	lines := ParseGearLines(gearText)

	resolutions := make([]model.LineResolution, 0, len(lines))
	for _, line := range lines {
		id, found := e.resolver.ResolveLocal(line)
		resolutions = append(resolutions, model.LineResolution{
			Input:  line,
			ItemID: id,
			Found:  found,
		})
	}

	slots := matcher.Match(lines, e.store.BisList(class, spec, phase))
	return resolutions, slots
}

// Check runs the full pipeline and produces the readiness report. Individual
// item failures degrade to zero stat contributions; the only error returned
// is the reentrancy guard on the batch fetch.
func (e *Engine) Check(ctx context.Context, class, spec, phase, gearText string) (*model.Report, error) {
	class, spec, phase = e.store.ResolveSelection(class, spec, phase)
	lines := ParseGearLines(gearText)
	role := refdata.RoleForSpec(spec)

	report := &model.Report{
		Class: class,
		Spec:  spec,
		Phase: phase,
		Role:  role,
	}

	var userIDs []int
	for _, line := range lines {
		localID, localFound := e.resolver.ResolveLocal(line)
		res := model.LineResolution{Input: line, ItemID: localID, Found: localFound}
		if !localFound {
			if id, found := e.resolver.Resolve(ctx, line); found {
				res.ItemID = id
				res.Found = true
				res.Remote = true
			}
		}
		if res.Found {
			userIDs = append(userIDs, res.ItemID)
		}
		report.Lines = append(report.Lines, res)
	}

	report.Slots = matcher.Match(lines, e.store.BisList(class, spec, phase))

	bestIDs := e.resolveBestItems(ctx, class, spec, phase)
	prevPhase, hasPrev := e.store.PreviousPhase(class, spec, phase)
	var prevBestIDs []int
	if hasPrev {
		prevBestIDs = e.resolveBestItems(ctx, class, spec, prevPhase)
	}

	all := make([]int, 0, len(userIDs)+len(bestIDs)+len(prevBestIDs))
	all = append(all, userIDs...)
	all = append(all, bestIDs...)
	all = append(all, prevBestIDs...)
	if err := e.fetchStats(ctx, all); err != nil {
		return nil, err
	}

	report.Stats = e.sumCached(userIDs)
	report.BisStats = e.bisAggregate(class, spec, phase, bestIDs)
	prevBis := model.ZeroStats()
	if hasPrev {
		prevBis = e.bisAggregate(class, spec, prevPhase, prevBestIDs)
	}

	report.Thresholds = threshold.Evaluate(report.Stats, role, phase)
	report.Comparison = buildComparison(report.Stats, report.BisStats, prevBis)
	report.GearStatus = model.OverallGearStatus(report.Stats, report.BisStats, prevBis)

	return report, nil
}

// InvalidateScope drops the cached BiS aggregate for one class/spec/phase.
// Per-item stat caches are untouched; item data does not change with the
// selection.
func (e *Engine) InvalidateScope(class, spec, phase string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.bisCache, scopeKey(class, spec, phase))
}

// resolveBestItems resolves the best reference item per slot to item ids.
func (e *Engine) resolveBestItems(ctx context.Context, class, spec, phase string) []int {
	best := matcher.BestPerSlot(e.store.BisList(class, spec, phase))
	ids := make([]int, 0, len(best))
	for _, entry := range best {
		if id, ok := e.resolver.Resolve(ctx, entry.Item); ok {
			ids = append(ids, id)
		} else {
			e.log.Debug("reference item not resolvable",
				"item", entry.Item, "slot", entry.Slot)
		}
	}
	return ids
}

// fetchStats populates the per-item stat cache for every id not already
// cached, with a bounded concurrent fan-out. A failed fetch caches the zero
// record so the batch never aborts. The in-progress guard rejects
// overlapping invocations racing on the cache.
func (e *Engine) fetchStats(ctx context.Context, ids []int) error {
	e.mu.Lock()
	if e.fetching {
		e.mu.Unlock()
		return ErrFetchInProgress
	}
	e.fetching = true

	seen := make(map[int]bool, len(ids))
	var toFetch []int
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, ok := e.statCache[id]; !ok {
			toFetch = append(toFetch, id)
		}
	}
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.fetching = false
		e.mu.Unlock()
	}()

	if len(toFetch) == 0 {
		return nil
	}

	e.log.Debug("fetching item stats", "count", len(toFetch))

	var done int
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Concurrency)
	for _, id := range toFetch {
		id := id
		g.Go(func() error {
			stats := model.ZeroStats()
			if markup, ok := e.fetcher.Fetch(gctx, id); ok {
				stats = tooltip.Parse(markup)
			}

			e.mu.Lock()
			e.statCache[id] = stats
			done++
			n := done
			e.mu.Unlock()

			if e.cfg.Progress != nil {
				e.cfg.Progress(n, len(toFetch))
			}
			return nil
		})
	}
	return g.Wait()
}

// sumCached aggregates the cached stat records for a set of item ids.
func (e *Engine) sumCached(ids []int) model.StatRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	records := make([]model.StatRecord, 0, len(ids))
	for _, id := range ids {
		if rec, ok := e.statCache[id]; ok {
			records = append(records, rec)
		}
	}
	return model.SumStats(records)
}

// bisAggregate returns the scope's BiS stat total, computing and caching it
// on first use.
func (e *Engine) bisAggregate(class, spec, phase string, bestIDs []int) model.StatRecord {
	key := scopeKey(class, spec, phase)

	e.mu.Lock()
	if cached, ok := e.bisCache[key]; ok {
		e.mu.Unlock()
		return cached.Clone()
	}
	e.mu.Unlock()

	total := e.sumCached(bestIDs)

	e.mu.Lock()
	e.bisCache[key] = total.Clone()
	e.mu.Unlock()
	return total
}

// buildComparison produces one row per stat with data on either side.
func buildComparison(user, bis, prevBis model.StatRecord) []model.StatComparison {
	var rows []model.StatComparison
	for _, stat := range model.AllStats {
		u, b, p := user.Get(stat), bis.Get(stat), prevBis.Get(stat)
		if u == 0 && b == 0 {
			continue
		}
		rows = append(rows, model.StatComparison{
			Stat:    stat,
			Label:   stat.Label(),
			User:    u,
			Bis:     b,
			PrevBis: p,
			Status:  model.CompareStat(u, b, p),
		})
	}
	return rows
}

func scopeKey(class, spec, phase string) string {
	return fmt.Sprintf("%s-%s-%s", class, spec, phase)
}
