package goquery

import (
	"github.com/fwojciec/gleaner"
	"github.com/google/uuid"
)

var _ Extractor = (*NewsEventExtractor)(nil)

var (
	eventTitleChain = []fieldCandidate{
		{"[itemprop='name']", ""},
		{"[itemprop='headline']", ""},
		{".event-title", ""},
		{"h1", ""},
		{"meta[property='og:title']", "content"},
		{"title", ""},
	}
	eventDescriptionChain = []fieldCandidate{
		{"[itemprop='description']", ""},
		{".event-description", ""},
		{".description", ""},
		{"meta[name='description']", "content"},
	}
	eventDateChain = []fieldCandidate{
		{"[itemprop='startDate']", "content"},
		{"[itemprop='startDate']", ""},
		{"time[datetime]", "datetime"},
		{".event-date", ""},
	}
	eventLocationChain = []fieldCandidate{
		{"[itemprop='location']", ""},
		{".event-location", ""},
		{".location", ""},
	}
)

// NewsEventExtractor extracts a discrete newsworthy happening from a page.
type NewsEventExtractor struct{}

// NewNewsEventExtractor creates a new NewsEventExtractor.
func NewNewsEventExtractor() *NewsEventExtractor {
	return &NewsEventExtractor{}
}

// EntityType returns the type this extractor produces.
func (e *NewsEventExtractor) EntityType() gleaner.EntityType {
	return gleaner.EntityNewsEvent
}

// Extract parses a NewsEvent from the target. The title is required.
// Quotes collect every blockquote and quote-classed element on the page
// in document order.
func (e *NewsEventExtractor) Extract(target *Target) (gleaner.Entity, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	title, ok := firstCategoryText(target, gleaner.CategoryTitle, eventTitleChain)
	if !ok {
		return nil, gleaner.Errorf(gleaner.ENOTFOUND, "news event: no title found")
	}

	event := &gleaner.NewsEvent{
		ID:     uuid.New().String(),
		Title:  title,
		Date:   firstDate(target, gleaner.CategoryDate, eventDateChain),
		Quotes: allTexts(target, "blockquote, .quote, q"),
	}
	event.Description, _ = firstCategoryText(target, gleaner.CategoryContent, eventDescriptionChain)
	event.Location, _ = firstText(target, eventLocationChain)
	return event, nil
}
