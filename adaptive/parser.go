// Package adaptive provides the extraction orchestrator. It tries a
// structural CSS-selector parse first, consults learned per-domain
// selectors, and escalates to a language-model fallback only when the
// structural path fails in a recoverable way.
package adaptive

import (
	"context"

	"github.com/fwojciec/gleaner"
	"golang.org/x/sync/errgroup"
)

var _ gleaner.EntityParser = (*Parser)(nil)

// Parser coordinates structural extraction with the fallback service.
// Structural is required; everything else is optional: a nil Fallback
// disables the fallback path, a nil Cache disables learned selectors,
// a nil Trimmer sends raw HTML to the fallback service.
type Parser struct {
	Structural   gleaner.StructuralParser
	Fallback     gleaner.FallbackExtractor
	Cache        gleaner.SelectorCache
	Trimmer      gleaner.Trimmer
	Constructors *ConstructorRegistry
}

// ParseEntity extracts typ from html. The outcome records which path
// produced the entity. Escalation rules: a structural ENOTFOUND goes to
// the fallback when one is configured; EINVALID never does, because a
// document that failed validation will not parse better as prompt text;
// fallback-service failures surface as EUNAVAILABLE.
func (p *Parser) ParseEntity(ctx context.Context, html, sourceURL string, typ gleaner.EntityType) (*gleaner.Outcome, error) {
	if !typ.Valid() {
		return nil, gleaner.Errorf(gleaner.EINVALID, "unknown entity type %q", typ)
	}

	var learned gleaner.SelectorSet
	if p.Cache != nil {
		if set, ok := p.Cache.Lookup(gleaner.Domain(sourceURL)); ok {
			learned = set
		}
	}

	entity, serr := p.Structural.ParseStructural(html, sourceURL, typ, learned)
	if serr == nil {
		return &gleaner.Outcome{Entity: entity, Provenance: gleaner.ProvenanceStructural}, nil
	}
	if p.Fallback == nil || gleaner.ErrorCode(serr) != gleaner.ENOTFOUND {
		return nil, serr
	}
	return p.parseFallback(ctx, html, sourceURL, typ, serr)
}

func (p *Parser) parseFallback(ctx context.Context, html, sourceURL string, typ gleaner.EntityType, cause error) (*gleaner.Outcome, error) {
	construct := p.constructors().Get(typ)
	if construct == nil {
		return nil, gleaner.Errorf(gleaner.EUNSUPPORTED,
			"no fallback construction for entity type %q (structural parse failed: %s)",
			typ, gleaner.ErrorMessage(cause))
	}

	prompt := html
	if p.Trimmer != nil {
		// Trimming only shrinks the prompt; on failure the raw page goes
		// out instead.
		if trimmed, err := p.Trimmer.Trim(html); err == nil && trimmed != "" {
			prompt = trimmed
		}
	}

	// Title and content are separate completions so a service failure
	// stays distinguishable from "the page has no such field".
	var title, content string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		title, err = p.Fallback.ExtractContent(gctx, prompt, gleaner.CategoryTitle)
		return err
	})
	g.Go(func() error {
		var err error
		content, err = p.Fallback.ExtractContent(gctx, prompt, gleaner.CategoryContent)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if title == "" && content == "" {
		return nil, gleaner.Errorf(gleaner.ENOTFOUND,
			"fallback recovered no content (structural parse failed: %s)",
			gleaner.ErrorMessage(cause))
	}

	entity, err := construct(title, content, sourceURL)
	if err != nil {
		return nil, err
	}
	return &gleaner.Outcome{Entity: entity, Provenance: gleaner.ProvenanceFallback}, nil
}

func (p *Parser) constructors() *ConstructorRegistry {
	if p.Constructors != nil {
		return p.Constructors
	}
	return defaultConstructors
}
