package goquery

import "github.com/fwojciec/gleaner"

var _ gleaner.StructuralParser = (*Registry)(nil)

// Extractor extracts one entity type from a target document.
type Extractor interface {
	// EntityType returns the type this extractor produces.
	EntityType() gleaner.EntityType

	// Extract runs a structural parse of the target. A document without
	// a head or body fails EINVALID before any field work; a required
	// field with no matching candidate fails ENOTFOUND.
	Extract(target *Target) (gleaner.Entity, error)
}

// Registry maps entity types to their extractors. It replaces a
// monolithic type switch: the orchestrator looks extractors up by type
// tag and stays ignorant of the per-type selector chains.
type Registry struct {
	extractors map[gleaner.EntityType]Extractor
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{extractors: make(map[gleaner.EntityType]Extractor)}
}

// DefaultRegistry creates a Registry with every built-in extractor
// registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewArticleExtractor())
	r.Register(NewVideoExtractor())
	r.Register(NewAudioExtractor())
	r.Register(NewPersonExtractor())
	r.Register(NewOrganizationExtractor())
	r.Register(NewLocationExtractor())
	r.Register(NewPollExtractor())
	r.Register(NewFactExtractor())
	r.Register(NewNewsAlertExtractor())
	r.Register(NewLegalDocumentExtractor())
	r.Register(NewJurisdictionExtractor())
	r.Register(NewNewsEventExtractor())
	r.Register(NewNewsStoryExtractor())
	r.Register(NewSocialMediaPostExtractor())
	r.Register(NewSourceExtractor())
	return r
}

// Register adds an extractor, replacing any previous one for its type.
func (r *Registry) Register(e Extractor) {
	r.extractors[e.EntityType()] = e
}

// Get returns the extractor for typ, or nil when none is registered.
func (r *Registry) Get(typ gleaner.EntityType) Extractor {
	return r.extractors[typ]
}

// Types returns the registered entity types in the canonical order of
// gleaner.EntityTypes, skipping unregistered ones.
func (r *Registry) Types() []gleaner.EntityType {
	types := make([]gleaner.EntityType, 0, len(r.extractors))
	for _, typ := range gleaner.EntityTypes() {
		if _, ok := r.extractors[typ]; ok {
			types = append(types, typ)
		}
	}
	return types
}

// ParseStructural extracts typ from html through the registered
// extractor. A successful field parse of a page with no visible body
// text still fails ENOTFOUND: meta tags alone can satisfy the selector
// chains on pages whose real content never arrived, and those pages
// should go to the fallback, not into the corpus.
func (r *Registry) ParseStructural(html, sourceURL string, typ gleaner.EntityType, learned gleaner.SelectorSet) (gleaner.Entity, error) {
	extractor := r.Get(typ)
	if extractor == nil {
		return nil, gleaner.Errorf(gleaner.EUNSUPPORTED, "no extractor registered for entity type %q", typ)
	}
	target, err := NewTarget(html, sourceURL, WithSelectorSet(learned))
	if err != nil {
		return nil, err
	}
	entity, err := extractor.Extract(target)
	if err != nil {
		return nil, err
	}
	if target.VisibleBodyText() == "" {
		return nil, gleaner.Errorf(gleaner.ENOTFOUND, "document has no visible body text")
	}
	return entity, nil
}
