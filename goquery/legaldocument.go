package goquery

import (
	"github.com/fwojciec/gleaner"
	"github.com/google/uuid"
)

var _ Extractor = (*LegalDocumentExtractor)(nil)

var (
	legalTitleChain = []fieldCandidate{
		{"[itemprop='headline']", ""},
		{"[itemprop='name']", ""},
		{".document-title", ""},
		{".case-title", ""},
		{"h1", ""},
		{"title", ""},
	}
	legalTypeChain = []fieldCandidate{
		{"[itemprop='genre']", ""},
		{".document-type", ""},
		{".doc-type", ""},
	}
	legalDateChain = []fieldCandidate{
		{"[itemprop='datePublished']", "content"},
		{"[itemprop='datePublished']", ""},
		{"time[datetime]", "datetime"},
		{".date-issued", ""},
		{".filing-date", ""},
	}
	legalURLChain = []fieldCandidate{
		{"[itemprop='url']", "href"},
		{".document-link a", "href"},
		{"a[href$='.pdf']", "href"},
	}
	legalCaseNumberChain = []fieldCandidate{
		{"[itemprop='identifier']", ""},
		{".case-number", ""},
		{".docket-number", ""},
	}
	legalCourtChain = []fieldCandidate{
		{".court", ""},
		{".court-name", ""},
	}
)

// LegalDocumentExtractor extracts a court filing, ordinance, or similar
// document reference from a page.
type LegalDocumentExtractor struct{}

// NewLegalDocumentExtractor creates a new LegalDocumentExtractor.
func NewLegalDocumentExtractor() *LegalDocumentExtractor {
	return &LegalDocumentExtractor{}
}

// EntityType returns the type this extractor produces.
func (e *LegalDocumentExtractor) EntityType() gleaner.EntityType {
	return gleaner.EntityLegalDocument
}

// Extract parses a LegalDocument from the target. The title is required.
func (e *LegalDocumentExtractor) Extract(target *Target) (gleaner.Entity, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	title, ok := firstCategoryText(target, gleaner.CategoryTitle, legalTitleChain)
	if !ok {
		return nil, gleaner.Errorf(gleaner.ENOTFOUND, "legal document: no title found")
	}

	doc := &gleaner.LegalDocument{
		ID:         uuid.New().String(),
		Title:      title,
		DateIssued: firstDate(target, gleaner.CategoryDate, legalDateChain),
	}
	doc.DocumentType, _ = firstText(target, legalTypeChain)
	doc.DocumentURL, _ = firstText(target, legalURLChain)
	doc.CaseNumber, _ = firstText(target, legalCaseNumberChain)
	doc.Court, _ = firstText(target, legalCourtChain)
	return doc, nil
}
