// Package fetch composes fetchers: routing between static HTTP and
// browser rendering, retries with backoff, per-domain rate limiting,
// response caching, and sanitize-on-fetch.
package fetch

import (
	"context"
	"errors"

	"github.com/fwojciec/gleaner"
)

// Ensure Switch implements gleaner.Fetcher at compile time.
var _ gleaner.Fetcher = (*Switch)(nil)

// Switch routes each fetch to a static HTTP fetcher or a rendering
// fetcher based on the URL's domain. Sites that hydrate client-side
// serve shell documents over plain HTTP, so their pages must be
// rendered to be worth extracting from.
type Switch struct {
	static    gleaner.Fetcher
	rendered  gleaner.Fetcher
	renderSet map[string]bool
}

// NewSwitch creates a Switch. Domains listed in renderDomains go to the
// rendered fetcher; everything else goes to the static one. A nil
// renderDomains falls back to DefaultRenderedDomains.
func NewSwitch(static, rendered gleaner.Fetcher, renderDomains []string) *Switch {
	if renderDomains == nil {
		renderDomains = DefaultRenderedDomains()
	}
	set := make(map[string]bool, len(renderDomains))
	for _, domain := range renderDomains {
		set[gleaner.Domain("https://"+domain)] = true
	}
	return &Switch{static: static, rendered: rendered, renderSet: set}
}

// DefaultRenderedDomains returns the domains known to require JavaScript
// rendering.
func DefaultRenderedDomains() []string {
	return []string{
		"sltrib.com",
		"ksl.com",
		"deseret.com",
		"fox13now.com",
		"kutv.com",
		"abc4.com",
	}
}

// NeedsRender reports whether the URL's domain is routed to the
// rendering fetcher.
func (s *Switch) NeedsRender(url string) bool {
	return s.renderSet[gleaner.Domain(url)]
}

// Fetch routes the URL to the appropriate fetcher. When no rendering
// fetcher is configured, everything goes to the static one.
func (s *Switch) Fetch(ctx context.Context, url string) (string, error) {
	if s.rendered != nil && s.NeedsRender(url) {
		return s.rendered.Fetch(ctx, url)
	}
	return s.static.Fetch(ctx, url)
}

// Close closes both underlying fetchers.
func (s *Switch) Close() error {
	errStatic := s.static.Close()
	var errRendered error
	if s.rendered != nil {
		errRendered = s.rendered.Close()
	}
	return errors.Join(errStatic, errRendered)
}
