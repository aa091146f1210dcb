package goquery

import (
	"github.com/fwojciec/gleaner"
	"github.com/google/uuid"
)

var _ Extractor = (*NewsStoryExtractor)(nil)

var (
	storyHeadlineChain = []fieldCandidate{
		{"[itemprop='headline']", ""},
		{".story-headline", ""},
		{".headline", ""},
		{"article h1", ""},
		{"h1", ""},
		{"meta[property='og:title']", "content"},
		{"title", ""},
	}
	storyBylineChain = []fieldCandidate{
		{"[itemprop='author']", ""},
		{"[rel='author']", ""},
		{".byline", ""},
		{".author", ""},
		{"meta[name='author']", "content"},
	}
	storyDateChain = []fieldCandidate{
		{"[itemprop='datePublished']", "content"},
		{"[itemprop='datePublished']", "datetime"},
		{"time[datetime]", "datetime"},
		{".published-date", ""},
		{"meta[property='article:published_time']", "content"},
	}
	storySummaryChain = []fieldCandidate{
		{"[itemprop='description']", ""},
		{".story-summary", ""},
		{".summary", ""},
		{".standfirst", ""},
		{"meta[property='og:description']", "content"},
		{"meta[name='description']", "content"},
	}
)

// storyCategorySelectors match category labels, of which a story may
// carry several.
const storyCategorySelectors = "[itemprop='articleSection'], .category, .section-tag, .topic"

// NewsStoryExtractor extracts a developing-story summary from a page.
type NewsStoryExtractor struct{}

// NewNewsStoryExtractor creates a new NewsStoryExtractor.
func NewNewsStoryExtractor() *NewsStoryExtractor {
	return &NewsStoryExtractor{}
}

// EntityType returns the type this extractor produces.
func (e *NewsStoryExtractor) EntityType() gleaner.EntityType {
	return gleaner.EntityNewsStory
}

// Extract parses a NewsStory from the target. The headline is required.
func (e *NewsStoryExtractor) Extract(target *Target) (gleaner.Entity, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	headline, ok := firstCategoryText(target, gleaner.CategoryTitle, storyHeadlineChain)
	if !ok {
		return nil, gleaner.Errorf(gleaner.ENOTFOUND, "news story: no headline found")
	}

	story := &gleaner.NewsStory{
		ID:          uuid.New().String(),
		Headline:    headline,
		URL:         pageURL(target),
		PublishedAt: firstDate(target, gleaner.CategoryDate, storyDateChain),
		Categories:  allTexts(target, storyCategorySelectors),
	}
	story.Byline, _ = firstCategoryText(target, gleaner.CategoryAuthor, storyBylineChain)
	story.Summary, _ = firstText(target, storySummaryChain)
	return story, nil
}
