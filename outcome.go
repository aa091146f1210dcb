package gleaner

import "context"

// Provenance records which parse path produced an entity. Downstream
// consumers use it for trust scoring: a structurally parsed entity came
// straight out of the page markup, a fallback entity was inferred by a
// language model.
type Provenance string

// Provenance values.
const (
	ProvenanceStructural Provenance = "structural"
	ProvenanceFallback   Provenance = "fallback"
)

// Outcome is a successful extraction: the entity plus the provenance of
// the parse that produced it. Failure is reported through the error
// return of the producing call, never through a partial Outcome.
type Outcome struct {
	Entity     Entity     `json:"entity"`
	Provenance Provenance `json:"provenance"`
}

// EntityParser parses one entity of the requested type out of raw HTML.
// Implementations decide how: the adaptive parser tries a structural
// CSS-selector parse first and falls back to a language model.
type EntityParser interface {
	// ParseEntity extracts an entity of type typ from html. The sourceURL
	// is used for domain derivation (selector-cache lookups) and to fill
	// URL-shaped entity fields. The context bounds any fallback calls.
	ParseEntity(ctx context.Context, html, sourceURL string, typ EntityType) (*Outcome, error)
}

// StructuralParser extracts one entity from HTML using CSS selector chains
// alone, with no model fallback. Errors carry the code that tells the
// caller whether a fallback could recover: ENOTFOUND for a missing
// required field or an empty visible body, EINVALID for a document not
// worth retrying.
type StructuralParser interface {
	// ParseStructural extracts typ from html. A non-empty learned set is
	// consulted before the built-in selector chains.
	ParseStructural(html, sourceURL string, typ EntityType, learned SelectorSet) (Entity, error)
}

// BatchItem is the outcome-preserving result for one URL of a batch
// extraction. Exactly one of Outcome and Err is set.
type BatchItem struct {
	// Index is the position of the URL in the batch input.
	Index int

	// URL is the input URL.
	URL string

	// Outcome holds the extraction result on success.
	Outcome *Outcome

	// Err holds the per-item failure. A failed item never aborts its
	// sibling items.
	Err error
}
