package goquery_test

import (
	"testing"
	"time"

	"github.com/fwojciec/gleaner"
	"github.com/fwojciec/gleaner/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonExtractor_Extract(t *testing.T) {
	t.Parallel()

	html := `<html><head></head><body>
<div class="profile">
<h1 itemprop="name">Dana Whitfield</h1>
<span itemprop="jobTitle">State Auditor</span>
<p class="bio">Dana Whitfield has served as state auditor since 2019.</p>
<a href="mailto:dana@example.gov">Contact</a>
<span itemprop="birthDate" content="1974-06-02">June 2, 1974</span>
</div>
</body></html>`

	extractor := goquery.NewPersonExtractor()
	entity, err := extractor.Extract(mustTarget(t, html, ""))

	require.NoError(t, err)
	person, ok := entity.(*gleaner.Person)
	require.True(t, ok)
	assert.Equal(t, "Dana Whitfield", person.Name)
	assert.Equal(t, "State Auditor", person.Occupation)
	assert.Equal(t, "dana@example.gov", person.Email)
	require.NotNil(t, person.BirthDate)
	assert.Equal(t, time.Date(1974, 6, 2, 0, 0, 0, 0, time.UTC), person.BirthDate.UTC())
}

func TestOrganizationExtractor_Extract(t *testing.T) {
	t.Parallel()

	html := `<html><head>
<meta name="description" content="A nonpartisan policy research group.">
</head><body>
<h1 itemprop="name">Mountain West Policy Center</h1>
<a itemprop="url" href="https://mwpc.example.org">site</a>
</body></html>`

	extractor := goquery.NewOrganizationExtractor()
	entity, err := extractor.Extract(mustTarget(t, html, ""))

	require.NoError(t, err)
	org, ok := entity.(*gleaner.Organization)
	require.True(t, ok)
	assert.Equal(t, "Mountain West Policy Center", org.Name)
	assert.Equal(t, "https://mwpc.example.org", org.Website)
	assert.Equal(t, "A nonpartisan policy research group.", org.Description)
}

func TestLocationExtractor_Extract(t *testing.T) {
	t.Parallel()

	html := `<html><head></head><body>
<div itemscope>
<h1 itemprop="name">Liberty Park</h1>
<span itemprop="streetAddress">600 E 900 S</span>
<span itemprop="addressLocality">Salt Lake City</span>
<span itemprop="addressRegion">UT</span>
<span itemprop="postalCode">84105</span>
<meta itemprop="latitude" content="40.7461">
<meta itemprop="longitude" content="-111.8746">
</div>
</body></html>`

	extractor := goquery.NewLocationExtractor()
	entity, err := extractor.Extract(mustTarget(t, html, ""))

	require.NoError(t, err)
	loc, ok := entity.(*gleaner.Location)
	require.True(t, ok)
	assert.Equal(t, "Liberty Park", loc.Name)
	assert.Equal(t, "Salt Lake City", loc.City)
	assert.Equal(t, "UT", loc.State)
	assert.Equal(t, "84105", loc.ZipCode)
	require.NotNil(t, loc.Latitude)
	assert.InDelta(t, 40.7461, *loc.Latitude, 0.0001)
	require.NotNil(t, loc.Longitude)
	assert.InDelta(t, -111.8746, *loc.Longitude, 0.0001)
}

func TestFactExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("marks new facts unverified and gathers topics", func(t *testing.T) {
		t.Parallel()

		html := `<html><head></head><body>
<p class="fact-statement">The state budget grew 4 percent year over year.</p>
<span class="topic">budget</span>
<span class="topic">economy</span>
</body></html>`

		extractor := goquery.NewFactExtractor()
		entity, err := extractor.Extract(mustTarget(t, html, ""))

		require.NoError(t, err)
		fact := entity.(*gleaner.Fact)
		assert.Equal(t, "The state budget grew 4 percent year over year.", fact.Statement)
		assert.Equal(t, "unverified", fact.VerificationStatus)
		assert.Equal(t, []string{"budget", "economy"}, fact.Topics)
	})

	t.Run("falls back to keywords meta for topics", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<meta name="keywords" content="water, drought , policy">
</head><body>
<blockquote>Reservoir levels hit a ten-year low in August.</blockquote>
</body></html>`

		extractor := goquery.NewFactExtractor()
		entity, err := extractor.Extract(mustTarget(t, html, ""))

		require.NoError(t, err)
		assert.Equal(t, []string{"water", "drought", "policy"}, entity.(*gleaner.Fact).Topics)
	})
}

func TestNewsEventExtractor_Extract(t *testing.T) {
	t.Parallel()

	html := `<html><head></head><body>
<h1 itemprop="name">Town Hall on Transit</h1>
<p itemprop="description">Residents questioned council members about the proposed bus routes.</p>
<span itemprop="location">Civic Center</span>
<time itemprop="startDate" datetime="2025-05-01T18:00:00Z">May 1</time>
<blockquote>We need service on the west side.</blockquote>
<blockquote>The current routes skip our neighborhood entirely.</blockquote>
</body></html>`

	extractor := goquery.NewNewsEventExtractor()
	entity, err := extractor.Extract(mustTarget(t, html, ""))

	require.NoError(t, err)
	event := entity.(*gleaner.NewsEvent)
	assert.Equal(t, "Town Hall on Transit", event.Title)
	assert.Equal(t, "Civic Center", event.Location)
	require.Len(t, event.Quotes, 2)
	assert.Equal(t, "We need service on the west side.", event.Quotes[0])
}

func TestJurisdictionExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("infers the kind from the name", func(t *testing.T) {
		t.Parallel()

		html := `<html><head></head><body><h1>Wasatch County</h1><p>Official site.</p></body></html>`

		extractor := goquery.NewJurisdictionExtractor()
		entity, err := extractor.Extract(mustTarget(t, html, ""))

		require.NoError(t, err)
		j := entity.(*gleaner.Jurisdiction)
		assert.Equal(t, "Wasatch County", j.Name)
		assert.Equal(t, "county", j.Kind)
	})

	t.Run("prefers explicit kind markup", func(t *testing.T) {
		t.Parallel()

		html := `<html><head></head><body>
<h1>Provo</h1>
<span class="jurisdiction-type">City</span>
</body></html>`

		extractor := goquery.NewJurisdictionExtractor()
		entity, err := extractor.Extract(mustTarget(t, html, ""))

		require.NoError(t, err)
		assert.Equal(t, "city", entity.(*gleaner.Jurisdiction).Kind)
	})
}

func TestLegalDocumentExtractor_Extract(t *testing.T) {
	t.Parallel()

	html := `<html><head></head><body>
<h1 class="document-title">Order Granting Motion to Dismiss</h1>
<span class="document-type">Court Order</span>
<span class="case-number">2:25-cv-00341</span>
<span class="court">U.S. District Court for the District of Utah</span>
<a class="document-link" href="https://example.com/order.pdf">Read the order</a>
</body></html>`

	extractor := goquery.NewLegalDocumentExtractor()
	entity, err := extractor.Extract(mustTarget(t, html, ""))

	require.NoError(t, err)
	doc := entity.(*gleaner.LegalDocument)
	assert.Equal(t, "Order Granting Motion to Dismiss", doc.Title)
	assert.Equal(t, "Court Order", doc.DocumentType)
	assert.Equal(t, "2:25-cv-00341", doc.CaseNumber)
	assert.Equal(t, "https://example.com/order.pdf", doc.DocumentURL)
}

func TestNewsStoryExtractor_Extract(t *testing.T) {
	t.Parallel()

	html := `<html><head>
<meta property="og:description" content="A developing look at the wildfire response.">
</head><body>
<article>
<h1 itemprop="headline">Crews Contain Canyon Fire</h1>
<span class="byline">By Alex Rivera</span>
<span class="category">Wildfires</span>
<span class="category">Public Safety</span>
<p>Containment reached 60 percent overnight.</p>
</article>
</body></html>`

	extractor := goquery.NewNewsStoryExtractor()
	entity, err := extractor.Extract(mustTarget(t, html, "https://example.com/fire"))

	require.NoError(t, err)
	story := entity.(*gleaner.NewsStory)
	assert.Equal(t, "Crews Contain Canyon Fire", story.Headline)
	assert.Equal(t, "By Alex Rivera", story.Byline)
	assert.Equal(t, []string{"Wildfires", "Public Safety"}, story.Categories)
	assert.Equal(t, "A developing look at the wildfire response.", story.Summary)
	assert.Equal(t, "https://example.com/fire", story.URL)
}

func TestVideoExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("reads media markup", func(t *testing.T) {
		t.Parallel()

		html := `<html><head></head><body>
<div itemscope>
<h1 itemprop="name">Press Conference Highlights</h1>
<meta itemprop="contentUrl" content="https://cdn.example.com/video.mp4">
<meta itemprop="thumbnailUrl" content="https://cdn.example.com/thumb.jpg">
<meta itemprop="duration" content="PT2M30S">
<p itemprop="description">Key moments from the afternoon briefing.</p>
</div>
</body></html>`

		extractor := goquery.NewVideoExtractor()
		entity, err := extractor.Extract(mustTarget(t, html, "https://example.com/watch"))

		require.NoError(t, err)
		video := entity.(*gleaner.Video)
		assert.Equal(t, "Press Conference Highlights", video.Title)
		assert.Equal(t, "https://cdn.example.com/video.mp4", video.URL)
		assert.Equal(t, "https://cdn.example.com/thumb.jpg", video.ImageURL)
		assert.Equal(t, 150, video.Duration)
	})

	t.Run("falls back to the page URL without media markup", func(t *testing.T) {
		t.Parallel()

		html := `<html><head></head><body><h1>Clip Title</h1><p>watch it</p></body></html>`

		extractor := goquery.NewVideoExtractor()
		entity, err := extractor.Extract(mustTarget(t, html, "https://example.com/clip"))

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/clip", entity.(*gleaner.Video).URL)
	})
}

func TestAudioExtractor_Extract(t *testing.T) {
	t.Parallel()

	html := `<html><head></head><body>
<h1 class="episode-title">Episode 42: Session Recap</h1>
<audio src="https://cdn.example.com/ep42.mp3"></audio>
<span class="episode-duration">PT1H2M30S</span>
<p class="episode-description">A review of the legislative session.</p>
</body></html>`

	extractor := goquery.NewAudioExtractor()
	entity, err := extractor.Extract(mustTarget(t, html, ""))

	require.NoError(t, err)
	audio := entity.(*gleaner.Audio)
	assert.Equal(t, "Episode 42: Session Recap", audio.Title)
	assert.Equal(t, "https://cdn.example.com/ep42.mp3", audio.URL)
	assert.Equal(t, 3750, audio.Duration)
	assert.Equal(t, "A review of the legislative session.", audio.Description)
}

func TestSocialMediaPostExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("reads an embedded tweet", func(t *testing.T) {
		t.Parallel()

		html := `<html><head></head><body>
<blockquote class="twitter-tweet" cite="https://twitter.com/mayor/status/1">
<p>Road closures downtown start Monday.</p>
</blockquote>
<span class="username">@mayor</span>
<span class="like-count">3,400</span>
<span class="retweet-count">512</span>
</body></html>`

		extractor := goquery.NewSocialMediaPostExtractor()
		entity, err := extractor.Extract(mustTarget(t, html, ""))

		require.NoError(t, err)
		post := entity.(*gleaner.SocialMediaPost)
		assert.Equal(t, "Road closures downtown start Monday.", post.Content)
		assert.Equal(t, "twitter", post.Platform)
		assert.Equal(t, "@mayor", post.Author)
		assert.Equal(t, "https://twitter.com/mayor/status/1", post.URL)
		assert.Equal(t, 3400, post.Likes)
		assert.Equal(t, 512, post.Shares)
	})

	t.Run("fails ENOTFOUND without content", func(t *testing.T) {
		t.Parallel()

		html := `<html><head></head><body><span class="username">@ghost</span></body></html>`

		extractor := goquery.NewSocialMediaPostExtractor()
		_, err := extractor.Extract(mustTarget(t, html, ""))

		require.Error(t, err)
		assert.Equal(t, gleaner.ENOTFOUND, gleaner.ErrorCode(err))
	})
}

func TestSourceExtractor_Extract(t *testing.T) {
	t.Parallel()

	html := `<html lang="en-US"><head>
<meta property="og:site_name" content="Canyon County Courier">
<meta name="description" content="Independent news for Canyon County.">
</head><body>
<p class="tagline">Independent news for Canyon County.</p>
</body></html>`

	extractor := goquery.NewSourceExtractor()
	entity, err := extractor.Extract(mustTarget(t, html, "https://courier.example.com"))

	require.NoError(t, err)
	source := entity.(*gleaner.Source)
	assert.Equal(t, "Canyon County Courier", source.Name)
	assert.Equal(t, "https://courier.example.com", source.URL)
	assert.Equal(t, "en-US", source.Language)
}
