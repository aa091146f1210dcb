package goquery

import (
	"github.com/fwojciec/gleaner"
	"github.com/google/uuid"
)

var _ Extractor = (*SourceExtractor)(nil)

var (
	sourceNameChain = []fieldCandidate{
		{"meta[property='og:site_name']", "content"},
		{"[itemprop='publisher'] [itemprop='name']", ""},
		{"[itemprop='publisher'] [itemprop='name']", "content"},
		{".site-name", ""},
		{".source-name", ""},
		{"title", ""},
	}
	sourceDescriptionChain = []fieldCandidate{
		{".site-description", ""},
		{".tagline", ""},
		{"meta[name='description']", "content"},
		{"meta[property='og:description']", "content"},
	}
	sourceCategoryChain = []fieldCandidate{
		{".site-category", ""},
		{"meta[property='article:section']", "content"},
	}
	sourceLanguageChain = []fieldCandidate{
		{"html", "lang"},
		{"meta[property='og:locale']", "content"},
		{"meta[http-equiv='content-language']", "content"},
	}
)

// SourceExtractor extracts a news outlet profile from a page.
type SourceExtractor struct{}

// NewSourceExtractor creates a new SourceExtractor.
func NewSourceExtractor() *SourceExtractor {
	return &SourceExtractor{}
}

// EntityType returns the type this extractor produces.
func (e *SourceExtractor) EntityType() gleaner.EntityType {
	return gleaner.EntitySource
}

// Extract parses a Source from the target. The outlet name is required.
func (e *SourceExtractor) Extract(target *Target) (gleaner.Entity, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	name, ok := firstCategoryText(target, gleaner.CategoryTitle, sourceNameChain)
	if !ok {
		return nil, gleaner.Errorf(gleaner.ENOTFOUND, "source: no outlet name found")
	}

	source := &gleaner.Source{
		ID:   uuid.New().String(),
		Name: name,
		URL:  pageURL(target),
	}
	source.Description, _ = firstText(target, sourceDescriptionChain)
	source.Category, _ = firstCategoryText(target, gleaner.CategorySection, sourceCategoryChain)
	source.Language, _ = firstText(target, sourceLanguageChain)
	return source, nil
}
