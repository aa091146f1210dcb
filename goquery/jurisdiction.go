package goquery

import (
	"strings"

	"github.com/fwojciec/gleaner"
	"github.com/google/uuid"
)

var _ Extractor = (*JurisdictionExtractor)(nil)

var (
	jurisdictionNameChain = []fieldCandidate{
		{"[itemprop='name']", ""},
		{".jurisdiction-name", ""},
		{".gov-name", ""},
		{"h1", ""},
		{"meta[property='og:site_name']", "content"},
	}
	jurisdictionKindChain = []fieldCandidate{
		{".jurisdiction-type", ""},
		{".gov-type", ""},
	}
	jurisdictionWebsiteChain = []fieldCandidate{
		{"[itemprop='url']", "href"},
		{"[itemprop='url']", "content"},
		{"link[rel='canonical']", "href"},
		{"meta[property='og:url']", "content"},
	}
)

// JurisdictionExtractor extracts a governmental area (city, county, or
// state) from a page.
type JurisdictionExtractor struct{}

// NewJurisdictionExtractor creates a new JurisdictionExtractor.
func NewJurisdictionExtractor() *JurisdictionExtractor {
	return &JurisdictionExtractor{}
}

// EntityType returns the type this extractor produces.
func (e *JurisdictionExtractor) EntityType() gleaner.EntityType {
	return gleaner.EntityJurisdiction
}

// Extract parses a Jurisdiction from the target. The name is required.
// The kind comes from explicit markup when present, otherwise it is
// inferred from the name itself.
func (e *JurisdictionExtractor) Extract(target *Target) (gleaner.Entity, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	name, ok := firstCategoryText(target, gleaner.CategoryTitle, jurisdictionNameChain)
	if !ok {
		return nil, gleaner.Errorf(gleaner.ENOTFOUND, "jurisdiction: no name found")
	}

	j := &gleaner.Jurisdiction{
		ID:   uuid.New().String(),
		Name: name,
	}
	j.Website, _ = firstText(target, jurisdictionWebsiteChain)
	if kind, ok := firstText(target, jurisdictionKindChain); ok {
		j.Kind = normalizeJurisdictionKind(kind)
	} else {
		j.Kind = inferJurisdictionKind(name)
	}
	return j, nil
}

func normalizeJurisdictionKind(raw string) string {
	switch kind := strings.ToLower(strings.TrimSpace(raw)); kind {
	case "city", "county", "state":
		return kind
	default:
		return inferJurisdictionKind(kind)
	}
}

// inferJurisdictionKind guesses the kind from name wording, such as
// "Multnomah County" or "City of Portland". Unknown wording yields "".
func inferJurisdictionKind(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "county"):
		return "county"
	case strings.Contains(lower, "city"):
		return "city"
	case strings.Contains(lower, "state"):
		return "state"
	default:
		return ""
	}
}
