package fetch

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/fwojciec/gleaner"
)

// Ensure CachingFetcher implements gleaner.Fetcher at compile time.
var _ gleaner.Fetcher = (*CachingFetcher)(nil)

// DefaultCacheTTL is how long fetched pages stay cached when no TTL is
// configured.
const DefaultCacheTTL = 15 * time.Minute

// CachingFetcher memoizes fetched pages for a TTL. Selector discovery,
// learning and extraction frequently hit the same URL back to back;
// caching keeps that to one network round trip. Errors are never
// cached.
type CachingFetcher struct {
	next  gleaner.Fetcher
	cache *gocache.Cache
}

// NewCachingFetcher wraps next with an in-memory page cache. A
// non-positive ttl falls back to DefaultCacheTTL.
func NewCachingFetcher(next gleaner.Fetcher, ttl time.Duration) *CachingFetcher {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachingFetcher{
		next:  next,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Fetch returns the cached page for the URL when present, otherwise
// delegates to the underlying fetcher and caches the result.
func (f *CachingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if cached, ok := f.cache.Get(url); ok {
		return cached.(string), nil
	}

	html, err := f.next.Fetch(ctx, url)
	if err != nil {
		return "", err
	}

	f.cache.Set(url, html, gocache.DefaultExpiration)
	return html, nil
}

// Close closes the underlying fetcher.
func (f *CachingFetcher) Close() error {
	return f.next.Close()
}
