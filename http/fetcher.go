// Package http provides an HTTP-based implementation of gleaner.Fetcher
// for fetching content from static sites that don't require JavaScript
// rendering, and a feed service for discovering article URLs.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/gleaner"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests. Static
// pages fetch fast; rendered fetches get a longer budget in the rod
// package.
const DefaultFetchTimeout = 10 * time.Second

// userAgent identifies the extractor to news servers.
const userAgent = "gleaner/1.0 (+https://github.com/fwojciec/gleaner)"

// Ensure Fetcher implements gleaner.Fetcher at compile time.
var _ gleaner.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript and is suitable
// for static pages only.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL. The body is
// decoded to UTF-8 based on the Content-Type charset; local news sites
// still serve ISO-8859-1 now and then.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", gleaner.Errorf(gleaner.EINVALID, "creating request for %s: %v", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", gleaner.Errorf(gleaner.EUNAVAILABLE, "fetching %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", gleaner.Errorf(gleaner.EUNAVAILABLE, "fetch failed with status %d for %s", resp.StatusCode, url)
	}

	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", gleaner.Errorf(gleaner.EINTERNAL, "decoding %s: %v", url, err)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return "", gleaner.Errorf(gleaner.EUNAVAILABLE, "reading %s: %v", url, err)
	}

	return string(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
