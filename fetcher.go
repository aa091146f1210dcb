package gleaner

import "context"

// Fetcher retrieves HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered
// content, or plain HTTP for static pages.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its HTML.
	// The context controls timeout and cancellation; cancellation must
	// propagate into the outstanding network or render operation without
	// leaving orphaned work.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources (e.g. a browser instance).
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// DomainLimiter rate-limits requests per domain so that batch runs cannot
// hammer a single host however the input URLs are ordered.
type DomainLimiter interface {
	// Wait blocks until a request to domain is allowed or ctx is done.
	Wait(ctx context.Context, domain string) error
}

// SeenFilter remembers which URLs have been ingested so repeated batch
// runs skip them. Implementations may be probabilistic: Test can report
// false positives but never false negatives, which trades an occasional
// skipped URL for constant memory.
type SeenFilter interface {
	// Test reports whether url has (probably) been seen.
	Test(url string) bool

	// Add records url as seen.
	Add(url string)
}
