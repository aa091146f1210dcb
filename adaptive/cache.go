package adaptive

import (
	"sort"
	"sync"

	"github.com/fwojciec/gleaner"
)

var _ gleaner.SelectorCache = (*Cache)(nil)

// Cache is the in-memory selector cache: domain to the most recently
// learned SelectorSet. Reads take a shared lock and return value copies,
// so a parse holding a snapshot is never invalidated by a concurrent
// Learn. Learning never happens implicitly; only explicit Learn calls
// mutate it.
type Cache struct {
	mu   sync.RWMutex
	sets map[string]gleaner.SelectorSet
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{sets: make(map[string]gleaner.SelectorSet)}
}

// Lookup returns a copy of the learned set for domain, if any.
func (c *Cache) Lookup(domain string) (gleaner.SelectorSet, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	set, ok := c.sets[domain]
	return set, ok
}

// Learn records the set for domain, replacing any previous set.
// Concurrent learns for the same domain are last-write-wins.
func (c *Cache) Learn(domain string, set gleaner.SelectorSet) error {
	if domain == "" {
		return gleaner.Errorf(gleaner.EINVALID, "selector cache: empty domain")
	}
	if err := set.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets[domain] = set
	return nil
}

// Clear discards all learned sets.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets = make(map[string]gleaner.SelectorSet)
}

// Domains returns the cached domains in sorted order.
func (c *Cache) Domains() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	domains := make([]string, 0, len(c.sets))
	for domain := range c.sets {
		domains = append(domains, domain)
	}
	sort.Strings(domains)
	return domains
}

// Snapshot copies the cache contents, for persisting at the process
// boundary.
func (c *Cache) Snapshot() map[string]gleaner.SelectorSet {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]gleaner.SelectorSet, len(c.sets))
	for domain, set := range c.sets {
		out[domain] = set
	}
	return out
}

// Restore replaces the cache contents with sets, skipping entries that
// fail validation. It is meant for loading persisted sets on startup.
func (c *Cache) Restore(sets map[string]gleaner.SelectorSet) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets = make(map[string]gleaner.SelectorSet, len(sets))
	for domain, set := range sets {
		if domain == "" || set.Validate() != nil {
			continue
		}
		c.sets[domain] = set
	}
}
