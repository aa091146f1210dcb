package fetch

import (
	"context"

	"github.com/fwojciec/gleaner"
)

// Ensure SanitizingFetcher implements gleaner.Fetcher at compile time.
var _ gleaner.Fetcher = (*SanitizingFetcher)(nil)

// SanitizingFetcher runs every fetched page through a sanitizer before
// returning it, so downstream parsing never sees scripts, styles or
// tracking markup.
type SanitizingFetcher struct {
	next      gleaner.Fetcher
	sanitizer gleaner.Sanitizer
}

// NewSanitizingFetcher wraps next so its output is sanitized.
func NewSanitizingFetcher(next gleaner.Fetcher, sanitizer gleaner.Sanitizer) *SanitizingFetcher {
	return &SanitizingFetcher{next: next, sanitizer: sanitizer}
}

// Fetch fetches the URL and sanitizes the response.
func (f *SanitizingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	html, err := f.next.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	return f.sanitizer.Sanitize(html)
}

// Close closes the underlying fetcher.
func (f *SanitizingFetcher) Close() error {
	return f.next.Close()
}
