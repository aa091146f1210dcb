package goquery

import (
	"github.com/fwojciec/gleaner"
	"github.com/google/uuid"
)

var _ Extractor = (*OrganizationExtractor)(nil)

var (
	orgNameChain = []fieldCandidate{
		{"[itemprop='name']", ""},
		{".org-name", ""},
		{".organization-name", ""},
		{".company-name", ""},
		{"h1", ""},
		{"meta[property='og:site_name']", "content"},
	}
	orgDescriptionChain = []fieldCandidate{
		{"[itemprop='description']", ""},
		{".about", ""},
		{".description", ""},
		{"meta[name='description']", "content"},
	}
	orgWebsiteChain = []fieldCandidate{
		{"[itemprop='url']", "href"},
		{"[itemprop='url']", "content"},
		{".website a", "href"},
		{"link[rel='canonical']", "href"},
	}
	orgLogoChain = []fieldCandidate{
		{"[itemprop='logo']", "src"},
		{"[itemprop='logo']", "content"},
		{".logo img", "src"},
		{"img.logo", "src"},
	}
	orgLocationChain = []fieldCandidate{
		{"[itemprop='address']", ""},
		{".address", ""},
		{".location", ""},
		{".headquarters", ""},
	}
)

// OrganizationExtractor extracts an organization profile from a page.
type OrganizationExtractor struct{}

// NewOrganizationExtractor creates a new OrganizationExtractor.
func NewOrganizationExtractor() *OrganizationExtractor {
	return &OrganizationExtractor{}
}

// EntityType returns the type this extractor produces.
func (e *OrganizationExtractor) EntityType() gleaner.EntityType {
	return gleaner.EntityOrganization
}

// Extract parses an Organization from the target. The name is required.
func (e *OrganizationExtractor) Extract(target *Target) (gleaner.Entity, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	name, ok := firstCategoryText(target, gleaner.CategoryTitle, orgNameChain)
	if !ok {
		return nil, gleaner.Errorf(gleaner.ENOTFOUND, "organization: no name found")
	}

	org := &gleaner.Organization{
		ID:   uuid.New().String(),
		Name: name,
	}
	org.Description, _ = firstCategoryText(target, gleaner.CategoryContent, orgDescriptionChain)
	org.Website, _ = firstText(target, orgWebsiteChain)
	org.LogoURL, _ = firstCategoryText(target, gleaner.CategoryImage, orgLogoChain)
	org.Location, _ = firstText(target, orgLocationChain)
	return org, nil
}
