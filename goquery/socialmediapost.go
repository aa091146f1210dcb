package goquery

import (
	"github.com/fwojciec/gleaner"
	"github.com/google/uuid"
)

var _ Extractor = (*SocialMediaPostExtractor)(nil)

var (
	postContentChain = []fieldCandidate{
		{"[itemprop='text']", ""},
		{"blockquote.twitter-tweet p", ""},
		{".tweet-text", ""},
		{".post-text", ""},
		{".post-content", ""},
		{"blockquote", ""},
	}
	postAuthorChain = []fieldCandidate{
		{"[itemprop='author']", ""},
		{".post-author", ""},
		{".username", ""},
		{".handle", ""},
	}
	postDateChain = []fieldCandidate{
		{"[itemprop='datePublished']", "content"},
		{"time[datetime]", "datetime"},
		{".post-date", ""},
	}
	postURLChain = []fieldCandidate{
		{"blockquote[cite]", "cite"},
		{"[itemprop='url']", "href"},
		{".post-link", "href"},
	}
	postLikesChain = []fieldCandidate{
		{"[itemprop='interactionCount']", ""},
		{".like-count", ""},
		{".likes", ""},
	}
	postSharesChain = []fieldCandidate{
		{".share-count", ""},
		{".shares", ""},
		{".retweet-count", ""},
	}
)

// platformMarkers map embed markup to the platform it comes from, checked
// in order.
var platformMarkers = []struct {
	Selector string
	Platform string
}{
	{"blockquote.twitter-tweet", "twitter"},
	{"blockquote.instagram-media", "instagram"},
	{".fb-post", "facebook"},
	{"blockquote.tiktok-embed", "tiktok"},
	{"blockquote.reddit-embed-bq", "reddit"},
}

// SocialMediaPostExtractor extracts an embedded or quoted social media
// post from a page.
type SocialMediaPostExtractor struct{}

// NewSocialMediaPostExtractor creates a new SocialMediaPostExtractor.
func NewSocialMediaPostExtractor() *SocialMediaPostExtractor {
	return &SocialMediaPostExtractor{}
}

// EntityType returns the type this extractor produces.
func (e *SocialMediaPostExtractor) EntityType() gleaner.EntityType {
	return gleaner.EntitySocialMediaPost
}

// Extract parses a SocialMediaPost from the target. The post content is
// required. Platform is inferred from the embed markup; like and share
// counts default to zero when unlabeled.
func (e *SocialMediaPostExtractor) Extract(target *Target) (gleaner.Entity, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	content, ok := firstCategoryText(target, gleaner.CategoryContent, postContentChain)
	if !ok {
		return nil, gleaner.Errorf(gleaner.ENOTFOUND, "social media post: no content found")
	}

	post := &gleaner.SocialMediaPost{
		ID:         uuid.New().String(),
		Content:    content,
		Platform:   detectPlatform(target),
		DatePosted: firstDate(target, gleaner.CategoryDate, postDateChain),
	}
	post.Author, _ = firstCategoryText(target, gleaner.CategoryAuthor, postAuthorChain)
	post.URL, _ = firstText(target, postURLChain)
	if raw, ok := firstText(target, postLikesChain); ok {
		post.Likes = parseCount(raw)
	}
	if raw, ok := firstText(target, postSharesChain); ok {
		post.Shares = parseCount(raw)
	}
	return post, nil
}

func detectPlatform(t *Target) string {
	for _, m := range platformMarkers {
		if t.Find(m.Selector).Length() > 0 {
			return m.Platform
		}
	}
	if platform, ok := firstText(t, []fieldCandidate{{"[data-platform]", "data-platform"}}); ok {
		return platform
	}
	return ""
}
