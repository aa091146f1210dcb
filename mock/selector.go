package mock

import "github.com/fwojciec/gleaner"

var _ gleaner.SelectorDiscoverer = (*SelectorDiscoverer)(nil)

// SelectorDiscoverer is a mock implementation of gleaner.SelectorDiscoverer.
type SelectorDiscoverer struct {
	DiscoverFn func(html string, category gleaner.ContentCategory) ([]gleaner.ScoredSelector, error)
}

func (d *SelectorDiscoverer) Discover(html string, category gleaner.ContentCategory) ([]gleaner.ScoredSelector, error) {
	return d.DiscoverFn(html, category)
}

var _ gleaner.SelectorCache = (*SelectorCache)(nil)

// SelectorCache is a mock implementation of gleaner.SelectorCache.
type SelectorCache struct {
	LookupFn func(domain string) (gleaner.SelectorSet, bool)
	LearnFn  func(domain string, set gleaner.SelectorSet) error
	ClearFn  func()
}

func (c *SelectorCache) Lookup(domain string) (gleaner.SelectorSet, bool) {
	return c.LookupFn(domain)
}

func (c *SelectorCache) Learn(domain string, set gleaner.SelectorSet) error {
	return c.LearnFn(domain, set)
}

func (c *SelectorCache) Clear() {
	c.ClearFn()
}
