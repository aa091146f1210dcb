package goquery

import (
	"github.com/fwojciec/gleaner"
	"github.com/google/uuid"
)

var _ Extractor = (*ArticleExtractor)(nil)

// Candidate chains run microdata first, then semantic class names, then
// generic tags, with <meta> as a last resort for title-shaped fields.
var (
	articleTitleChain = []fieldCandidate{
		{"[itemprop='headline']", ""},
		{".article-title", ""},
		{".entry-title", ""},
		{".post-title", ""},
		{".headline", ""},
		{"article h1", ""},
		{"h1", ""},
		{"meta[property='og:title']", "content"},
		{"title", ""},
	}
	articleBodyChain = []fieldCandidate{
		{"[itemprop='articleBody']", ""},
		{".article-body", ""},
		{".article-content", ""},
		{".post-content", ""},
		{".entry-content", ""},
		{".story-body", ""},
		{"article", ""},
		{"main", ""},
	}
	articleAuthorChain = []fieldCandidate{
		{"[itemprop='author']", ""},
		{"[rel='author']", ""},
		{".author-name", ""},
		{".byline", ""},
		{".author", ""},
		{"meta[name='author']", "content"},
	}
	articleDateChain = []fieldCandidate{
		{"[itemprop='datePublished']", "content"},
		{"[itemprop='datePublished']", "datetime"},
		{"[itemprop='datePublished']", ""},
		{"time[datetime]", "datetime"},
		{".published-date", ""},
		{".post-date", ""},
		{"meta[property='article:published_time']", "content"},
	}
	articleImageChain = []fieldCandidate{
		{"[itemprop='image']", "src"},
		{"[itemprop='image']", "content"},
		{".article-image img", "src"},
		{".featured-image img", "src"},
		{"article img", "src"},
		{"meta[property='og:image']", "content"},
	}
	articleSectionChain = []fieldCandidate{
		{"[itemprop='articleSection']", ""},
		{".article-section", ""},
		{".category", ""},
		{".section", ""},
		{"meta[property='article:section']", "content"},
	}
	canonicalURLChain = []fieldCandidate{
		{"link[rel='canonical']", "href"},
		{"meta[property='og:url']", "content"},
	}
)

// ArticleExtractor extracts a news article from a page.
type ArticleExtractor struct{}

// NewArticleExtractor creates a new ArticleExtractor.
func NewArticleExtractor() *ArticleExtractor {
	return &ArticleExtractor{}
}

// EntityType returns the type this extractor produces.
func (e *ArticleExtractor) EntityType() gleaner.EntityType {
	return gleaner.EntityArticle
}

// Extract parses an Article from the target. Title and body text are
// required; everything else resolves to its zero value when absent.
func (e *ArticleExtractor) Extract(target *Target) (gleaner.Entity, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	title, ok := firstCategoryText(target, gleaner.CategoryTitle, articleTitleChain)
	if !ok {
		return nil, gleaner.Errorf(gleaner.ENOTFOUND, "article: no title found")
	}

	body, ok := firstCategoryBlock(target, gleaner.CategoryContent, articleBodyChain)
	if !ok {
		return nil, gleaner.Errorf(gleaner.ENOTFOUND, "article: no body text found")
	}

	article := &gleaner.Article{
		ID:          uuid.New().String(),
		Title:       title,
		URL:         pageURL(target),
		TextContent: body,
		PublishedAt: firstDate(target, gleaner.CategoryDate, articleDateChain),
	}
	article.Author, _ = firstCategoryText(target, gleaner.CategoryAuthor, articleAuthorChain)
	article.ImageURL, _ = firstCategoryText(target, gleaner.CategoryImage, articleImageChain)
	article.Section, _ = firstCategoryText(target, gleaner.CategorySection, articleSectionChain)
	return article, nil
}

// pageURL prefers the fetch URL and falls back to the page's own
// canonical markers for direct HTML extraction.
func pageURL(t *Target) string {
	if t.URL() != "" {
		return t.URL()
	}
	url, _ := firstText(t, canonicalURLChain)
	return url
}
