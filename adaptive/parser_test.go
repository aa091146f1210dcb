package adaptive_test

import (
	"context"
	"testing"

	"github.com/fwojciec/gleaner"
	"github.com/fwojciec/gleaner/adaptive"
	"github.com/fwojciec/gleaner/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_ImplementsInterface(t *testing.T) {
	t.Parallel()

	var _ gleaner.EntityParser = (*adaptive.Parser)(nil)
}

func TestParser_StructuralSuccess(t *testing.T) {
	t.Parallel()

	fallbackCalled := false
	parser := &adaptive.Parser{
		Structural: &mock.StructuralParser{
			ParseStructuralFn: func(html, sourceURL string, typ gleaner.EntityType, learned gleaner.SelectorSet) (gleaner.Entity, error) {
				return &gleaner.Article{ID: "a1", Title: "City Council Passes Budget"}, nil
			},
		},
		Fallback: &mock.FallbackExtractor{
			ExtractContentFn: func(_ context.Context, _ string, _ gleaner.ContentCategory) (string, error) {
				fallbackCalled = true
				return "", nil
			},
		},
	}

	outcome, err := parser.ParseEntity(context.Background(), "<html></html>", "https://example.com/a", gleaner.EntityArticle)

	require.NoError(t, err)
	assert.Equal(t, gleaner.ProvenanceStructural, outcome.Provenance)
	assert.Equal(t, "a1", outcome.Entity.EntityID())
	assert.False(t, fallbackCalled, "fallback must not run when structural parsing succeeds")
}

func TestParser_FallbackRecovery(t *testing.T) {
	t.Parallel()

	parser := &adaptive.Parser{
		Structural: &mock.StructuralParser{
			ParseStructuralFn: func(_, _ string, _ gleaner.EntityType, _ gleaner.SelectorSet) (gleaner.Entity, error) {
				return nil, gleaner.Errorf(gleaner.ENOTFOUND, "article: no title found")
			},
		},
		Fallback: &mock.FallbackExtractor{
			ExtractContentFn: func(_ context.Context, _ string, category gleaner.ContentCategory) (string, error) {
				switch category {
				case gleaner.CategoryTitle:
					return "Recovered Headline", nil
				case gleaner.CategoryContent:
					return "Recovered body text.", nil
				}
				return "", nil
			},
		},
	}

	outcome, err := parser.ParseEntity(context.Background(), "<html></html>", "https://example.com/a", gleaner.EntityArticle)

	require.NoError(t, err)
	assert.Equal(t, gleaner.ProvenanceFallback, outcome.Provenance)
	article, ok := outcome.Entity.(*gleaner.Article)
	require.True(t, ok)
	assert.Equal(t, "Recovered Headline", article.Title)
	assert.Equal(t, "Recovered body text.", article.TextContent)
	assert.Equal(t, "https://example.com/a", article.URL)
	assert.NotEmpty(t, article.ID)
}

func TestParser_InvalidDocumentFailsFast(t *testing.T) {
	t.Parallel()

	fallbackCalled := false
	parser := &adaptive.Parser{
		Structural: &mock.StructuralParser{
			ParseStructuralFn: func(_, _ string, _ gleaner.EntityType, _ gleaner.SelectorSet) (gleaner.Entity, error) {
				return nil, gleaner.Errorf(gleaner.EINVALID, "document has no body element")
			},
		},
		Fallback: &mock.FallbackExtractor{
			ExtractContentFn: func(_ context.Context, _ string, _ gleaner.ContentCategory) (string, error) {
				fallbackCalled = true
				return "anything", nil
			},
		},
	}

	_, err := parser.ParseEntity(context.Background(), "not html", "https://example.com/a", gleaner.EntityArticle)

	require.Error(t, err)
	assert.Equal(t, gleaner.EINVALID, gleaner.ErrorCode(err))
	assert.False(t, fallbackCalled, "invalid documents must not be retried through the fallback")
}

func TestParser_NoFallbackConfigured(t *testing.T) {
	t.Parallel()

	parser := &adaptive.Parser{
		Structural: &mock.StructuralParser{
			ParseStructuralFn: func(_, _ string, _ gleaner.EntityType, _ gleaner.SelectorSet) (gleaner.Entity, error) {
				return nil, gleaner.Errorf(gleaner.ENOTFOUND, "article: no title found")
			},
		},
	}

	_, err := parser.ParseEntity(context.Background(), "<html></html>", "https://example.com/a", gleaner.EntityArticle)

	require.Error(t, err)
	assert.Equal(t, gleaner.ENOTFOUND, gleaner.ErrorCode(err))
}

func TestParser_UnknownType(t *testing.T) {
	t.Parallel()

	structuralCalled := false
	parser := &adaptive.Parser{
		Structural: &mock.StructuralParser{
			ParseStructuralFn: func(_, _ string, _ gleaner.EntityType, _ gleaner.SelectorSet) (gleaner.Entity, error) {
				structuralCalled = true
				return nil, nil
			},
		},
	}

	_, err := parser.ParseEntity(context.Background(), "<html></html>", "https://example.com/a", gleaner.EntityType("recipe"))

	require.Error(t, err)
	assert.Equal(t, gleaner.EINVALID, gleaner.ErrorCode(err))
	assert.False(t, structuralCalled)
}

func TestParser_UnsupportedFallbackType(t *testing.T) {
	t.Parallel()

	// A poll cannot be reconstructed from a title and a body string, so
	// the structural failure surfaces as EUNSUPPORTED instead of a made-up
	// entity.
	parser := &adaptive.Parser{
		Structural: &mock.StructuralParser{
			ParseStructuralFn: func(_, _ string, _ gleaner.EntityType, _ gleaner.SelectorSet) (gleaner.Entity, error) {
				return nil, gleaner.Errorf(gleaner.ENOTFOUND, "poll: no question found")
			},
		},
		Fallback: &mock.FallbackExtractor{
			ExtractContentFn: func(_ context.Context, _ string, _ gleaner.ContentCategory) (string, error) {
				return "anything", nil
			},
		},
	}

	_, err := parser.ParseEntity(context.Background(), "<html></html>", "https://example.com/a", gleaner.EntityPoll)

	require.Error(t, err)
	assert.Equal(t, gleaner.EUNSUPPORTED, gleaner.ErrorCode(err))
	assert.Contains(t, gleaner.ErrorMessage(err), "poll: no question found")
}

func TestParser_FallbackServiceUnavailable(t *testing.T) {
	t.Parallel()

	parser := &adaptive.Parser{
		Structural: &mock.StructuralParser{
			ParseStructuralFn: func(_, _ string, _ gleaner.EntityType, _ gleaner.SelectorSet) (gleaner.Entity, error) {
				return nil, gleaner.Errorf(gleaner.ENOTFOUND, "article: no title found")
			},
		},
		Fallback: &mock.FallbackExtractor{
			ExtractContentFn: func(_ context.Context, _ string, _ gleaner.ContentCategory) (string, error) {
				return "", gleaner.Errorf(gleaner.EUNAVAILABLE, "fallback service returned status 503")
			},
		},
	}

	_, err := parser.ParseEntity(context.Background(), "<html></html>", "https://example.com/a", gleaner.EntityArticle)

	require.Error(t, err)
	assert.Equal(t, gleaner.EUNAVAILABLE, gleaner.ErrorCode(err))
}

func TestParser_FallbackRecoversNothing(t *testing.T) {
	t.Parallel()

	parser := &adaptive.Parser{
		Structural: &mock.StructuralParser{
			ParseStructuralFn: func(_, _ string, _ gleaner.EntityType, _ gleaner.SelectorSet) (gleaner.Entity, error) {
				return nil, gleaner.Errorf(gleaner.ENOTFOUND, "document has no visible body text")
			},
		},
		Fallback: &mock.FallbackExtractor{
			ExtractContentFn: func(_ context.Context, _ string, _ gleaner.ContentCategory) (string, error) {
				return "", nil
			},
		},
	}

	_, err := parser.ParseEntity(context.Background(), "<html></html>", "https://example.com/a", gleaner.EntityArticle)

	require.Error(t, err)
	assert.Equal(t, gleaner.ENOTFOUND, gleaner.ErrorCode(err))
	assert.Contains(t, gleaner.ErrorMessage(err), "fallback recovered no content")
}

func TestParser_LearnedSelectorsConsulted(t *testing.T) {
	t.Parallel()

	learned := gleaner.SelectorSet{Title: ".headline", Content: ".story-body"}
	var gotDomain string
	var gotLearned gleaner.SelectorSet
	parser := &adaptive.Parser{
		Structural: &mock.StructuralParser{
			ParseStructuralFn: func(_, _ string, _ gleaner.EntityType, set gleaner.SelectorSet) (gleaner.Entity, error) {
				gotLearned = set
				return &gleaner.Article{ID: "a1", Title: "T"}, nil
			},
		},
		Cache: &mock.SelectorCache{
			LookupFn: func(domain string) (gleaner.SelectorSet, bool) {
				gotDomain = domain
				return learned, true
			},
		},
	}

	_, err := parser.ParseEntity(context.Background(), "<html></html>", "https://www.example.com/news/a", gleaner.EntityArticle)

	require.NoError(t, err)
	assert.Equal(t, "example.com", gotDomain)
	assert.Equal(t, learned, gotLearned)
}

func TestParser_TrimmerShrinksFallbackPrompt(t *testing.T) {
	t.Parallel()

	t.Run("trimmed html is sent to the fallback", func(t *testing.T) {
		t.Parallel()

		var promptSeen string
		parser := &adaptive.Parser{
			Structural: &mock.StructuralParser{
				ParseStructuralFn: func(_, _ string, _ gleaner.EntityType, _ gleaner.SelectorSet) (gleaner.Entity, error) {
					return nil, gleaner.Errorf(gleaner.ENOTFOUND, "article: no title found")
				},
			},
			Trimmer: &mock.Trimmer{
				TrimFn: func(html string) (string, error) {
					return "<article>trimmed</article>", nil
				},
			},
			Fallback: &mock.FallbackExtractor{
				ExtractContentFn: func(_ context.Context, html string, _ gleaner.ContentCategory) (string, error) {
					promptSeen = html
					return "value", nil
				},
			},
		}

		_, err := parser.ParseEntity(context.Background(), "<html>big page</html>", "https://example.com/a", gleaner.EntityArticle)

		require.NoError(t, err)
		assert.Equal(t, "<article>trimmed</article>", promptSeen)
	})

	t.Run("trim failure falls back to the raw page", func(t *testing.T) {
		t.Parallel()

		var promptSeen string
		parser := &adaptive.Parser{
			Structural: &mock.StructuralParser{
				ParseStructuralFn: func(_, _ string, _ gleaner.EntityType, _ gleaner.SelectorSet) (gleaner.Entity, error) {
					return nil, gleaner.Errorf(gleaner.ENOTFOUND, "article: no title found")
				},
			},
			Trimmer: &mock.Trimmer{
				TrimFn: func(html string) (string, error) {
					return "", gleaner.Errorf(gleaner.EINTERNAL, "trim failed")
				},
			},
			Fallback: &mock.FallbackExtractor{
				ExtractContentFn: func(_ context.Context, html string, _ gleaner.ContentCategory) (string, error) {
					promptSeen = html
					return "value", nil
				},
			},
		}

		_, err := parser.ParseEntity(context.Background(), "<html>big page</html>", "https://example.com/a", gleaner.EntityArticle)

		require.NoError(t, err)
		assert.Equal(t, "<html>big page</html>", promptSeen)
	})
}
