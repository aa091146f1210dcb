package gleaner

import "context"

// FallbackRequest is one (html, category) pair for a batched fallback
// extraction.
type FallbackRequest struct {
	HTML     string
	Category ContentCategory
}

// FallbackExtractor recovers content from raw HTML via a text-completion
// service when structural parsing fails. It is consumed as an opaque
// boundary: the model is never trained or inspected here.
type FallbackExtractor interface {
	// ExtractContent asks the service for the given content category of
	// the page. A non-2xx response or malformed body is a hard failure
	// (EUNAVAILABLE).
	ExtractContent(ctx context.Context, html string, category ContentCategory) (string, error)

	// ExtractBatch runs the requests concurrently and returns one string
	// per request, in request order. Per-item failures are swallowed to
	// an empty string rather than failing the batch: callers must treat
	// "" as "no value extracted", not as a confirmed empty source field.
	ExtractBatch(ctx context.Context, reqs []FallbackRequest) []string
}

// FallbackInstruction returns the system instruction for extracting the
// given content category from a news page. All fallback services use the
// same instructions so that swapping providers does not change what
// "title" or "date" means.
func FallbackInstruction(category ContentCategory) string {
	rule, ok := fallbackRules[category]
	if !ok {
		rule = "Extract the " + string(category) + " of the page."
	}
	return rule + " Respond with the extracted text only, with no quotes, labels, or commentary. Respond with an empty string if the page does not contain it."
}

var fallbackRules = map[ContentCategory]string{
	CategoryTitle:   "Extract the headline of the news page. Prefer the main heading of the article body over the document title; strip site names and section suffixes.",
	CategoryContent: "Extract the full article body of the news page as plain text. Preserve paragraph breaks with blank lines. Exclude navigation, captions, bylines, related-story links, and advertising.",
	CategoryAuthor:  "Extract the author or byline of the news page. Respond with the name only, without prefixes such as 'By'.",
	CategoryDate:    "Extract the publication date of the news page. Prefer machine-readable values such as datetime attributes or metadata over dates written in prose. Respond in RFC 3339 format when possible.",
	CategoryImage:   "Extract the URL of the lead image of the news page. Respond with an absolute URL.",
	CategorySection: "Extract the section or category the news page belongs to, such as Politics or Sports.",
}
