package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/gleaner"
)

// Target is a parsed HTML document paired with its source URL. It is
// built once per extraction and shared read-only by every extractor and
// discovery strategy that inspects the same page.
type Target struct {
	doc       *goquery.Document
	sourceURL string
	learned   gleaner.SelectorSet
}

// TargetOption configures a Target.
type TargetOption func(*Target)

// WithSelectorSet primes the target with per-domain learned selectors.
// Extractors consult the learned slot for a field before their built-in
// candidate chains.
func WithSelectorSet(set gleaner.SelectorSet) TargetOption {
	return func(t *Target) {
		t.learned = set
	}
}

// NewTarget parses html into a Target. The sourceURL may be empty when
// extracting from raw HTML with no known origin.
func NewTarget(html string, sourceURL string, opts ...TargetOption) (*Target, error) {
	if strings.TrimSpace(html) == "" {
		return nil, gleaner.Errorf(gleaner.EINVALID, "empty HTML document")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, gleaner.Errorf(gleaner.EINVALID, "failed to parse HTML: %v", err)
	}

	t := &Target{doc: doc, sourceURL: sourceURL}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// URL returns the source URL the document came from, or "" for direct
// HTML extraction.
func (t *Target) URL() string {
	return t.sourceURL
}

// Domain returns the selector-cache key for the source URL, or "" when
// the target has no usable URL.
func (t *Target) Domain() string {
	return gleaner.Domain(t.sourceURL)
}

// Validate checks that the document has both a head and a body. The
// HTML parser synthesizes both for most inputs, so only degenerate
// documents fail here.
func (t *Target) Validate() error {
	if t.doc.Find("head").Length() == 0 || t.doc.Find("body").Length() == 0 {
		return gleaner.Errorf(gleaner.EINVALID, "document is missing a head or body")
	}
	return nil
}

// VisibleBodyText returns the body text a reader would see, with
// script, style, noscript, and template contents excluded.
func (t *Target) VisibleBodyText() string {
	body := t.doc.Find("body").Clone()
	body.Find("script, style, noscript, template").Remove()
	return strings.TrimSpace(body.Text())
}

// Find runs a CSS selector query against the document.
func (t *Target) Find(selector string) *goquery.Selection {
	return t.doc.Find(selector)
}
