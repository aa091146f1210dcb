package gleaner

// Sanitizer strips noise from fetched HTML before extraction: scripts,
// styles, navigation chrome, ad and tracking elements, inline event
// handlers, styling and data-* attributes. After stripping, the body is
// narrowed to the main content region while document metadata (head) is
// preserved for meta-tag fallbacks.
type Sanitizer interface {
	// Sanitize returns the cleaned HTML. The input is never mutated.
	Sanitize(html string) (string, error)
}

// Trimmer reduces HTML to its main content. It is used to shrink pages
// before embedding them in fallback-extractor prompts; unlike Sanitizer
// it may drop document structure entirely.
type Trimmer interface {
	// Trim returns the main-content HTML of the page.
	Trim(html string) (string, error)
}
