package goquery_test

import (
	"testing"

	"github.com/fwojciec/gleaner"
	"github.com/fwojciec/gleaner/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTarget(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty HTML", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewTarget("", "https://example.com")

		require.Error(t, err)
		assert.Equal(t, gleaner.EINVALID, gleaner.ErrorCode(err))
	})

	t.Run("rejects whitespace-only HTML", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewTarget("   \n\t  ", "https://example.com")

		require.Error(t, err)
		assert.Equal(t, gleaner.EINVALID, gleaner.ErrorCode(err))
	})

	t.Run("parses a document and keeps the source URL", func(t *testing.T) {
		t.Parallel()

		target, err := goquery.NewTarget("<html><head></head><body><p>hi</p></body></html>", "https://example.com/story")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/story", target.URL())
		require.NoError(t, target.Validate())
	})
}

func TestTarget_Domain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{"plain host", "https://example.com/a", "example.com"},
		{"www stripped", "https://www.example.com/a", "example.com"},
		{"case folded", "https://NEWS.Example.COM/a", "news.example.com"},
		{"empty url", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			target, err := goquery.NewTarget("<html><body>x</body></html>", tt.url)

			require.NoError(t, err)
			assert.Equal(t, tt.want, target.Domain())
		})
	}
}

func TestTarget_VisibleBodyText(t *testing.T) {
	t.Parallel()

	t.Run("excludes script and style content", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>T</title></head><body>
<script>var hidden = "nope";</script>
<style>.x { color: red }</style>
<p>visible words</p>
</body></html>`

		target, err := goquery.NewTarget(html, "")

		require.NoError(t, err)
		assert.Equal(t, "visible words", target.VisibleBodyText())
	})

	t.Run("empty for a body holding only scripts", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><meta property="og:title" content="Ghost Page"></head><body>
<script>window.app = {};</script>
</body></html>`

		target, err := goquery.NewTarget(html, "")

		require.NoError(t, err)
		assert.Empty(t, target.VisibleBodyText())
	})
}
