// Package resolver maps free-text item names to canonical item ids, first
// against the local reference data, then through the remote search fallback.
package resolver

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tbctxt/readycheck/internal/common"
	"github.com/tbctxt/readycheck/internal/model"
	"github.com/tbctxt/readycheck/internal/refdata"
	"github.com/tbctxt/readycheck/internal/search"
)

// Resolver performs item identity resolution with a memoizing cache.
type Resolver struct {
	store    *refdata.Store
	searcher search.Searcher
	cache    *resolveCache
	log      *slog.Logger
}

// New creates a resolver. searcher may be nil, which disables the remote
// fallback.
func New(store *refdata.Store, searcher search.Searcher) *Resolver {
	return &Resolver{
		store:    store,
		searcher: searcher,
		cache:    newResolveCache(),
		log:      common.ComponentLogger("resolver"),
	}
}

// ResolveLocal resolves a raw item name against the reference data only.
// Successful lookups are memoized; local misses are not, so a later Resolve
// can still try the remote fallback.
func (r *Resolver) ResolveLocal(raw string) (int, bool) {
	key := cacheKey(raw)
	if key == "" {
		return 0, false
	}
	if e, ok := r.cache.get(key); ok {
		return e.id, e.found
	}

	clean, _ := model.ParseItemName(raw)
	id, ok := r.store.LookupItem(clean)
	if ok {
		r.cache.set(key, cacheEntry{id: id, found: true})
	}
	return id, ok
}

// Resolve resolves a raw item name, falling back to the remote search when
// the local lookup misses. Remote hits and definitive remote misses are
// memoized; transport failures are not, so the next call can retry.
func (r *Resolver) Resolve(ctx context.Context, raw string) (int, bool) {
	key := cacheKey(raw)
	if key == "" {
		return 0, false
	}
	if e, ok := r.cache.get(key); ok {
		return e.id, e.found
	}

	clean, _ := model.ParseItemName(raw)
	if id, ok := r.store.LookupItem(clean); ok {
		r.cache.set(key, cacheEntry{id: id, found: true})
		return id, true
	}

	if r.searcher == nil {
		return 0, false
	}

	candidates, err := r.searcher.Search(ctx, clean)
	if err != nil {
		r.log.Debug("remote search unreachable", "name", clean, "error", err)
		return 0, false
	}

	if c, ok := pickCandidate(clean, candidates); ok {
		r.log.Debug("resolved remotely", "name", clean, "id", c.ID)
		r.cache.set(key, cacheEntry{id: c.ID, found: true})
		return c.ID, true
	}

	r.cache.set(key, cacheEntry{found: false})
	return 0, false
}

// CachedCount reports the number of memoized resolutions.
func (r *Resolver) CachedCount() int {
	return r.cache.len()
}

// pickCandidate applies the resolution policy to remote results: an exact
// case-insensitive match wins, else the first bidirectional substring match.
func pickCandidate(clean string, candidates []search.Candidate) (search.Candidate, bool) {
	lower := strings.ToLower(clean)
	for _, c := range candidates {
		if strings.ToLower(c.Name) == lower {
			return c, true
		}
	}
	for _, c := range candidates {
		if model.NamesMatch(c.Name, clean) {
			return c, true
		}
	}
	return search.Candidate{}, false
}

func cacheKey(raw string) string {
	clean, _ := model.ParseItemName(raw)
	return strings.ToLower(clean)
}
