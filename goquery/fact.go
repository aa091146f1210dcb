package goquery

import (
	"strings"

	"github.com/fwojciec/gleaner"
	"github.com/google/uuid"
)

var _ Extractor = (*FactExtractor)(nil)

var (
	factStatementChain = []fieldCandidate{
		{"[itemprop='claimReviewed']", ""},
		{".fact-statement", ""},
		{".claim", ""},
		{".statement", ""},
		{"blockquote", ""},
		{"article p", ""},
	}
	factSourceChain = []fieldCandidate{
		{"[itemprop='author']", ""},
		{".fact-source", ""},
		{".source", ""},
		{"cite", ""},
	}
	factDateChain = []fieldCandidate{
		{"[itemprop='datePublished']", "content"},
		{"[itemprop='datePublished']", ""},
		{"time[datetime]", "datetime"},
		{".fact-date", ""},
	}
)

// FactExtractor extracts a single checkable statement from a page.
type FactExtractor struct{}

// NewFactExtractor creates a new FactExtractor.
func NewFactExtractor() *FactExtractor {
	return &FactExtractor{}
}

// EntityType returns the type this extractor produces.
func (e *FactExtractor) EntityType() gleaner.EntityType {
	return gleaner.EntityFact
}

// Extract parses a Fact from the target. The statement is required.
// Facts start out unverified; verification happens downstream.
func (e *FactExtractor) Extract(target *Target) (gleaner.Entity, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	statement, ok := firstCategoryText(target, gleaner.CategoryContent, factStatementChain)
	if !ok {
		return nil, gleaner.Errorf(gleaner.ENOTFOUND, "fact: no statement found")
	}

	fact := &gleaner.Fact{
		ID:                 uuid.New().String(),
		Statement:          statement,
		Date:               firstDate(target, gleaner.CategoryDate, factDateChain),
		Topics:             extractTopics(target),
		VerificationStatus: "unverified",
	}
	fact.Source, _ = firstText(target, factSourceChain)
	return fact, nil
}

// extractTopics gathers topic tags from dedicated elements, falling back
// to the comma-separated keywords meta when the page has no tag markup.
func extractTopics(target *Target) []string {
	if topics := allTexts(target, ".topic, .tag"); len(topics) > 0 {
		return topics
	}

	keywords, _ := target.Find("meta[name='keywords']").First().Attr("content")
	var topics []string
	for _, part := range strings.Split(keywords, ",") {
		if part = strings.TrimSpace(part); part != "" {
			topics = append(topics, part)
		}
	}
	return topics
}
