package goquery

import (
	"github.com/fwojciec/gleaner"
	"github.com/google/uuid"
)

var _ Extractor = (*VideoExtractor)(nil)

var (
	videoTitleChain = []fieldCandidate{
		{"[itemprop='name']", ""},
		{".video-title", ""},
		{"article h1", ""},
		{"h1", ""},
		{"meta[property='og:title']", "content"},
		{"title", ""},
	}
	videoURLChain = []fieldCandidate{
		{"[itemprop='contentUrl']", "content"},
		{"[itemprop='contentUrl']", "src"},
		{"video source", "src"},
		{"video", "src"},
		{"meta[property='og:video']", "content"},
		{"meta[property='og:video:url']", "content"},
	}
	videoDescriptionChain = []fieldCandidate{
		{"[itemprop='description']", ""},
		{"[itemprop='description']", "content"},
		{".video-description", ""},
		{"meta[property='og:description']", "content"},
		{"meta[name='description']", "content"},
	}
	videoAuthorChain = []fieldCandidate{
		{"[itemprop='author']", ""},
		{".video-author", ""},
		{".byline", ""},
		{"meta[name='author']", "content"},
	}
	videoDateChain = []fieldCandidate{
		{"[itemprop='uploadDate']", "content"},
		{"[itemprop='uploadDate']", "datetime"},
		{"[itemprop='uploadDate']", ""},
		{"time[datetime]", "datetime"},
		{"meta[property='article:published_time']", "content"},
	}
	videoImageChain = []fieldCandidate{
		{"[itemprop='thumbnailUrl']", "content"},
		{"[itemprop='thumbnailUrl']", "src"},
		{"video", "poster"},
		{"meta[property='og:image']", "content"},
	}
	videoDurationChain = []fieldCandidate{
		{"[itemprop='duration']", "content"},
		{"[itemprop='duration']", ""},
		{".video-duration", ""},
		{"meta[property='video:duration']", "content"},
	}
	videoResolutionChain = []fieldCandidate{
		{"[itemprop='videoQuality']", "content"},
		{"[itemprop='videoQuality']", ""},
		{".video-resolution", ""},
	}
)

// VideoExtractor extracts a video item from a page.
type VideoExtractor struct{}

// NewVideoExtractor creates a new VideoExtractor.
func NewVideoExtractor() *VideoExtractor {
	return &VideoExtractor{}
}

// EntityType returns the type this extractor produces.
func (e *VideoExtractor) EntityType() gleaner.EntityType {
	return gleaner.EntityVideo
}

// Extract parses a Video from the target. The title is required; the URL
// falls back to the page's own address when no media URL is marked up.
func (e *VideoExtractor) Extract(target *Target) (gleaner.Entity, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	title, ok := firstCategoryText(target, gleaner.CategoryTitle, videoTitleChain)
	if !ok {
		return nil, gleaner.Errorf(gleaner.ENOTFOUND, "video: no title found")
	}

	video := &gleaner.Video{
		ID:          uuid.New().String(),
		Title:       title,
		PublishedAt: firstDate(target, gleaner.CategoryDate, videoDateChain),
	}
	if url, ok := firstText(target, videoURLChain); ok {
		video.URL = url
	} else {
		video.URL = pageURL(target)
	}
	video.Description, _ = firstText(target, videoDescriptionChain)
	video.Author, _ = firstCategoryText(target, gleaner.CategoryAuthor, videoAuthorChain)
	video.ImageURL, _ = firstCategoryText(target, gleaner.CategoryImage, videoImageChain)
	if raw, ok := firstText(target, videoDurationChain); ok {
		video.Duration = parseDurationSeconds(raw)
	}
	video.Resolution, _ = firstText(target, videoResolutionChain)
	return video, nil
}
