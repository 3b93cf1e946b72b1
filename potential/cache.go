package potential

import (
	"sync"

	"github.com/katalvlaran/torsionwell/geometry"
)

// cacheKey identifies one Weyl-scalar evaluation. C² depends on the
// family, scale and anisotropy only, never on the couplings, so the key
// carries nothing else and one cache serves every coupling set.
type cacheKey struct {
	family geometry.Family
	scale  float64
	eps    float64
}

// Cache memoizes the Weyl scalar C²(family, r, eps). It is safe for
// concurrent use; sweep workers share one instance via WithCache.
// Entries are never invalidated: the mapping is pure.
type Cache struct {
	mu      sync.RWMutex
	entries map[cacheKey]float64
}

// NewCache returns an empty Weyl-scalar cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]float64)}
}

// Len reports the number of memoized points.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// lookup returns the memoized value, if any.
func (c *Cache) lookup(k cacheKey) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[k]

	return v, ok
}

// store memoizes one evaluation.
func (c *Cache) store(k cacheKey, v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[k] = v
}
