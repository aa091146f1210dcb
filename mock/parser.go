package mock

import (
	"context"

	"github.com/fwojciec/gleaner"
)

var _ gleaner.EntityParser = (*EntityParser)(nil)

// EntityParser is a mock implementation of gleaner.EntityParser.
type EntityParser struct {
	ParseEntityFn func(ctx context.Context, html, sourceURL string, typ gleaner.EntityType) (*gleaner.Outcome, error)
}

func (p *EntityParser) ParseEntity(ctx context.Context, html, sourceURL string, typ gleaner.EntityType) (*gleaner.Outcome, error) {
	return p.ParseEntityFn(ctx, html, sourceURL, typ)
}

var _ gleaner.StructuralParser = (*StructuralParser)(nil)

// StructuralParser is a mock implementation of gleaner.StructuralParser.
type StructuralParser struct {
	ParseStructuralFn func(html, sourceURL string, typ gleaner.EntityType, learned gleaner.SelectorSet) (gleaner.Entity, error)
}

func (p *StructuralParser) ParseStructural(html, sourceURL string, typ gleaner.EntityType, learned gleaner.SelectorSet) (gleaner.Entity, error) {
	return p.ParseStructuralFn(html, sourceURL, typ, learned)
}
