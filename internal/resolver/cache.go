package resolver

import "sync"

type cacheEntry struct {
	id    int
	found bool
}

// resolveCache memoizes resolution outcomes, including definitive misses.
// Item data is static for the expansion, so entries never expire.
type resolveCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

func newResolveCache() *resolveCache {
	return &resolveCache{entries: make(map[string]cacheEntry)}
}

func (c *resolveCache) get(key string) (cacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e, ok
}

func (c *resolveCache) set(key string, e cacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = e
}

func (c *resolveCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
