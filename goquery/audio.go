package goquery

import (
	"github.com/fwojciec/gleaner"
	"github.com/google/uuid"
)

var _ Extractor = (*AudioExtractor)(nil)

var (
	audioTitleChain = []fieldCandidate{
		{"[itemprop='name']", ""},
		{".episode-title", ""},
		{".audio-title", ""},
		{"article h1", ""},
		{"h1", ""},
		{"meta[property='og:title']", "content"},
		{"title", ""},
	}
	audioURLChain = []fieldCandidate{
		{"[itemprop='contentUrl']", "content"},
		{"[itemprop='contentUrl']", "src"},
		{"audio source", "src"},
		{"audio", "src"},
		{"meta[property='og:audio']", "content"},
	}
	audioDescriptionChain = []fieldCandidate{
		{"[itemprop='description']", ""},
		{"[itemprop='description']", "content"},
		{".episode-description", ""},
		{"meta[property='og:description']", "content"},
		{"meta[name='description']", "content"},
	}
	audioAuthorChain = []fieldCandidate{
		{"[itemprop='author']", ""},
		{".podcast-host", ""},
		{".byline", ""},
		{"meta[name='author']", "content"},
	}
	audioDateChain = []fieldCandidate{
		{"[itemprop='uploadDate']", "content"},
		{"[itemprop='datePublished']", "content"},
		{"time[datetime]", "datetime"},
		{"meta[property='article:published_time']", "content"},
	}
	audioDurationChain = []fieldCandidate{
		{"[itemprop='duration']", "content"},
		{"[itemprop='duration']", ""},
		{".episode-duration", ""},
	}
	audioBitrateChain = []fieldCandidate{
		{"[itemprop='bitrate']", "content"},
		{"[itemprop='bitrate']", ""},
	}
)

// AudioExtractor extracts an audio item from a page.
type AudioExtractor struct{}

// NewAudioExtractor creates a new AudioExtractor.
func NewAudioExtractor() *AudioExtractor {
	return &AudioExtractor{}
}

// EntityType returns the type this extractor produces.
func (e *AudioExtractor) EntityType() gleaner.EntityType {
	return gleaner.EntityAudio
}

// Extract parses an Audio from the target. The title is required; the URL
// falls back to the page's own address when no media URL is marked up.
func (e *AudioExtractor) Extract(target *Target) (gleaner.Entity, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	title, ok := firstCategoryText(target, gleaner.CategoryTitle, audioTitleChain)
	if !ok {
		return nil, gleaner.Errorf(gleaner.ENOTFOUND, "audio: no title found")
	}

	audio := &gleaner.Audio{
		ID:          uuid.New().String(),
		Title:       title,
		PublishedAt: firstDate(target, gleaner.CategoryDate, audioDateChain),
	}
	if url, ok := firstText(target, audioURLChain); ok {
		audio.URL = url
	} else {
		audio.URL = pageURL(target)
	}
	audio.Description, _ = firstText(target, audioDescriptionChain)
	audio.Author, _ = firstCategoryText(target, gleaner.CategoryAuthor, audioAuthorChain)
	if raw, ok := firstText(target, audioDurationChain); ok {
		audio.Duration = parseDurationSeconds(raw)
	}
	if raw, ok := firstText(target, audioBitrateChain); ok {
		audio.Bitrate = parseCount(raw)
	}
	return audio, nil
}
