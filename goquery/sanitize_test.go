package goquery_test

import (
	"testing"

	"github.com/fwojciec/gleaner"
	"github.com/fwojciec/gleaner/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizer_Sanitize(t *testing.T) {
	t.Parallel()

	t.Run("removes non-content elements", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Page</title></head><body>
<nav>Home | News | Sports</nav>
<script>trackPageView();</script>
<style>.x{}</style>
<article><p>The only real content on this page.</p></article>
<aside>You may also like</aside>
<footer>Copyright</footer>
</body></html>`

		s := goquery.NewSanitizer()
		out, err := s.Sanitize(html)

		require.NoError(t, err)
		assert.NotContains(t, out, "trackPageView")
		assert.NotContains(t, out, "Home | News | Sports")
		assert.NotContains(t, out, "You may also like")
		assert.NotContains(t, out, "Copyright")
		assert.Contains(t, out, "The only real content on this page.")
	})

	t.Run("removes ad and social containers by class", func(t *testing.T) {
		t.Parallel()

		html := `<html><head></head><body>
<article>
<p>Paragraph one of the story.</p>
<div class="ad">Buy things</div>
<div class="advertisement-slot">More ads</div>
<div class="social-share">Share on social</div>
<div class="newsletter-signup">Subscribe now</div>
<p>Paragraph two of the story.</p>
</article>
</body></html>`

		s := goquery.NewSanitizer()
		out, err := s.Sanitize(html)

		require.NoError(t, err)
		assert.NotContains(t, out, "Buy things")
		assert.NotContains(t, out, "More ads")
		assert.NotContains(t, out, "Share on social")
		assert.NotContains(t, out, "Subscribe now")
		assert.Contains(t, out, "Paragraph one of the story.")
		assert.Contains(t, out, "Paragraph two of the story.")
	})

	t.Run("does not let short junk words match real classes", func(t *testing.T) {
		t.Parallel()

		// "shadow" and "download" contain "ad" but are not ads.
		html := `<html><head></head><body>
<article>
<p class="shadow-box">Framed pull quote.</p>
<a class="download-link" href="/report.pdf">Download the report</a>
<p>Body text.</p>
</article>
</body></html>`

		s := goquery.NewSanitizer()
		out, err := s.Sanitize(html)

		require.NoError(t, err)
		assert.Contains(t, out, "Framed pull quote.")
		assert.Contains(t, out, "Download the report")
	})

	t.Run("strips event handlers, styles, and data attributes", func(t *testing.T) {
		t.Parallel()

		html := `<html><head></head><body>
<article>
<p onclick="steal()" style="color:red" data-track-id="x9" id="lede">Styled paragraph.</p>
<a href="https://example.com/more">more</a>
</article>
</body></html>`

		s := goquery.NewSanitizer()
		out, err := s.Sanitize(html)

		require.NoError(t, err)
		assert.NotContains(t, out, "onclick")
		assert.NotContains(t, out, "style=")
		assert.NotContains(t, out, "data-track-id")
		assert.Contains(t, out, `id="lede"`)
		assert.Contains(t, out, `href="https://example.com/more"`)
	})

	t.Run("narrows the body to the main content region", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><meta property="og:title" content="Kept Meta"></head><body>
<div class="masthead">Big site chrome</div>
<article><h1>Story</h1><p>Story body text.</p></article>
<div class="outside">Trailing junk</div>
</body></html>`

		s := goquery.NewSanitizer()
		out, err := s.Sanitize(html)

		require.NoError(t, err)
		assert.NotContains(t, out, "Big site chrome")
		assert.NotContains(t, out, "Trailing junk")
		assert.Contains(t, out, "Story body text.")
		assert.Contains(t, out, "Kept Meta")
	})

	t.Run("keeps article-level headers but drops page headers", func(t *testing.T) {
		t.Parallel()

		html := `<html><head></head><body>
<header class="site">Site-wide header</header>
<article>
<header><h1>Inside Headline</h1></header>
<p>Text.</p>
</article>
</body></html>`

		s := goquery.NewSanitizer()
		out, err := s.Sanitize(html)

		require.NoError(t, err)
		assert.NotContains(t, out, "Site-wide header")
		assert.Contains(t, out, "Inside Headline")
	})

	t.Run("keeps the full body when no main region exists", func(t *testing.T) {
		t.Parallel()

		html := `<html><head></head><body><p>Loose paragraph.</p></body></html>`

		s := goquery.NewSanitizer()
		out, err := s.Sanitize(html)

		require.NoError(t, err)
		assert.Contains(t, out, "Loose paragraph.")
	})

	t.Run("fails EINVALID on empty input", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewSanitizer()
		_, err := s.Sanitize("")

		require.Error(t, err)
		assert.Equal(t, gleaner.EINVALID, gleaner.ErrorCode(err))
	})

	t.Run("sanitized output still extracts structurally", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Raw</title></head><body>
<nav>chrome</nav>
<article>
<h1 itemprop="headline">Sanitize Then Extract</h1>
<div itemprop="articleBody"><p>Extraction should work on the sanitized rendering of this page.</p></div>
</article>
<footer>chrome</footer>
</body></html>`

		s := goquery.NewSanitizer()
		out, err := s.Sanitize(html)
		require.NoError(t, err)

		entity, err := goquery.DefaultRegistry().ParseStructural(out, "https://example.com/s", gleaner.EntityArticle, gleaner.SelectorSet{})

		require.NoError(t, err)
		assert.Equal(t, "Sanitize Then Extract", entity.(*gleaner.Article).Title)
	})
}
