package main_test

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/gleaner"
	"github.com/fwojciec/gleaner/adaptive"
	main "github.com/fwojciec/gleaner/cmd/gleaner"
	"github.com/fwojciec/gleaner/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// batchDeps builds batch dependencies around a fetcher that serves a
// distinct page per URL and a parser that produces one article per page.
func batchDeps(saves *atomic.Int32, committed *atomic.Bool) *main.Dependencies {
	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return "<html><body>" + url + "</body></html>", nil
		},
	}
	parser := &mock.EntityParser{
		ParseEntityFn: func(ctx context.Context, html, sourceURL string, typ gleaner.EntityType) (*gleaner.Outcome, error) {
			return &gleaner.Outcome{
				Entity: &gleaner.Article{
					ID:          "id-" + sourceURL,
					Title:       "Title",
					URL:         sourceURL,
					TextContent: "ten bytes.",
				},
				Provenance: gleaner.ProvenanceStructural,
			}, nil
		},
	}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: &bytes.Buffer{},
		Stderr: &bytes.Buffer{},
		Batch:  &adaptive.Batch{Fetcher: fetcher, Parser: parser},
		Entities: &mock.EntityStore{
			SaveFn: func(ctx context.Context, outcome *gleaner.Outcome) error {
				saves.Add(1)
				return nil
			},
			CommitFn: func() error {
				committed.Store(true)
				return nil
			},
			AbortFn: func() error { return nil },
		},
		Tokens: &mock.TokenCounter{
			CountTokensFn: func(ctx context.Context, text string) (int, error) {
				return 2, nil
			},
		},
	}
}

func TestBatchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("saves all outcomes and prints a summary", func(t *testing.T) {
		t.Parallel()

		var saves atomic.Int32
		var committed atomic.Bool
		deps := batchDeps(&saves, &committed)
		stdout := deps.Stdout.(*bytes.Buffer)

		cmd := &main.BatchCmd{
			URLs: []string{"https://example.com/a", "https://example.com/b"},
			Type: "article",
		}
		err := cmd.Run(deps)
		require.NoError(t, err)

		assert.Equal(t, int32(2), saves.Load())
		assert.True(t, committed.Load())
		assert.Contains(t, stdout.String(), "Found 2 URLs")
		assert.Contains(t, stdout.String(), "Saved 2 entities")
		assert.Contains(t, stdout.String(), "20 B", "two ten-byte bodies")
		assert.Contains(t, stdout.String(), "~4 tokens")
	})

	t.Run("merges feed URLs with arguments and dedupes", func(t *testing.T) {
		t.Parallel()

		var saves atomic.Int32
		var committed atomic.Bool
		deps := batchDeps(&saves, &committed)
		deps.Feeds = &mock.FeedService{
			DiscoverURLsFn: func(ctx context.Context, feedURL string, filter *gleaner.URLFilter) ([]string, error) {
				return []string{"https://example.com/b", "https://example.com/c"}, nil
			},
		}
		stdout := deps.Stdout.(*bytes.Buffer)

		cmd := &main.BatchCmd{
			URLs: []string{"https://example.com/a", "https://example.com/b"},
			Feed: "https://example.com/feed.xml",
			Type: "article",
		}
		err := cmd.Run(deps)
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "Found 3 URLs")
		assert.Equal(t, int32(3), saves.Load())
	})

	t.Run("passes compiled filters to the feed service", func(t *testing.T) {
		t.Parallel()

		var saves atomic.Int32
		var committed atomic.Bool
		deps := batchDeps(&saves, &committed)
		var gotFilter *gleaner.URLFilter
		deps.Feeds = &mock.FeedService{
			DiscoverURLsFn: func(ctx context.Context, feedURL string, filter *gleaner.URLFilter) ([]string, error) {
				gotFilter = filter
				return []string{"https://example.com/news/a"}, nil
			},
		}

		cmd := &main.BatchCmd{
			Feed:   "https://example.com/feed.xml",
			Filter: []string{`/news/`},
			Type:   "article",
		}
		err := cmd.Run(deps)
		require.NoError(t, err)

		require.NotNil(t, gotFilter)
		require.Len(t, gotFilter.Include, 1)
		assert.True(t, gotFilter.Match("https://example.com/news/a"))
		assert.False(t, gotFilter.Match("https://example.com/sports/b"))
	})

	t.Run("rejects invalid filter patterns", func(t *testing.T) {
		t.Parallel()

		var saves atomic.Int32
		var committed atomic.Bool
		deps := batchDeps(&saves, &committed)
		stderr := deps.Stderr.(*bytes.Buffer)

		cmd := &main.BatchCmd{
			Feed:   "https://example.com/feed.xml",
			Filter: []string{`[`},
			Type:   "article",
		}
		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "invalid filter pattern")
	})

	t.Run("errors when there is nothing to extract", func(t *testing.T) {
		t.Parallel()

		var saves atomic.Int32
		var committed atomic.Bool
		deps := batchDeps(&saves, &committed)

		cmd := &main.BatchCmd{Type: "article"}
		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, gleaner.EINVALID, gleaner.ErrorCode(err))
	})

	t.Run("rejects unknown entity type", func(t *testing.T) {
		t.Parallel()

		var saves atomic.Int32
		var committed atomic.Bool
		deps := batchDeps(&saves, &committed)

		cmd := &main.BatchCmd{URLs: []string{"https://example.com/a"}, Type: "recipe"}
		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, gleaner.EINVALID, gleaner.ErrorCode(err))
	})

	t.Run("keeps going past failed items", func(t *testing.T) {
		t.Parallel()

		var saves atomic.Int32
		var committed atomic.Bool
		deps := batchDeps(&saves, &committed)
		deps.Batch.Fetcher = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				if url == "https://example.com/b" {
					return "", gleaner.Errorf(gleaner.EUNAVAILABLE, "fetch failed with status 500")
				}
				return "<html><body>" + url + "</body></html>", nil
			},
		}
		stdout := deps.Stdout.(*bytes.Buffer)
		stderr := deps.Stderr.(*bytes.Buffer)

		cmd := &main.BatchCmd{
			URLs: []string{"https://example.com/a", "https://example.com/b", "https://example.com/c"},
			Type: "article",
		}
		err := cmd.Run(deps)
		require.NoError(t, err, "per-item failures must not fail the batch")

		assert.Equal(t, int32(2), saves.Load())
		assert.Contains(t, stdout.String(), "Saved 2 entities")
		assert.Contains(t, stderr.String(), "skip")
		assert.Contains(t, stderr.String(), "status 500")
	})

	t.Run("aborts the store when a save fails", func(t *testing.T) {
		t.Parallel()

		var aborted atomic.Bool
		var saves atomic.Int32
		var committed atomic.Bool
		deps := batchDeps(&saves, &committed)
		deps.Entities = &mock.EntityStore{
			SaveFn: func(ctx context.Context, outcome *gleaner.Outcome) error {
				return gleaner.Errorf(gleaner.EINTERNAL, "disk full")
			},
			CommitFn: func() error {
				t.Error("commit should not run after a failed save")
				return nil
			},
			AbortFn: func() error {
				aborted.Store(true)
				return nil
			},
		}

		cmd := &main.BatchCmd{URLs: []string{"https://example.com/a"}, Type: "article"}
		err := cmd.Run(deps)
		require.Error(t, err)
		assert.True(t, aborted.Load())
		assert.False(t, committed.Load())
	})

	t.Run("seen file skips already ingested URLs across runs", func(t *testing.T) {
		t.Parallel()

		seenFile := filepath.Join(t.TempDir(), "seen.bloom")
		urls := []string{"https://example.com/a", "https://example.com/b"}

		var saves atomic.Int32
		var committed atomic.Bool
		deps := batchDeps(&saves, &committed)
		cmd := &main.BatchCmd{URLs: urls, Type: "article", SeenFile: seenFile}
		require.NoError(t, cmd.Run(deps))
		assert.Equal(t, int32(2), saves.Load())

		// Second run with a fresh batch skips everything.
		var saves2 atomic.Int32
		var committed2 atomic.Bool
		deps2 := batchDeps(&saves2, &committed2)
		stderr2 := deps2.Stderr.(*bytes.Buffer)
		cmd2 := &main.BatchCmd{URLs: urls, Type: "article", SeenFile: seenFile}
		require.NoError(t, cmd2.Run(deps2))

		assert.Equal(t, int32(0), saves2.Load())
		assert.Contains(t, deps2.Stdout.(*bytes.Buffer).String(), "Saved 0 entities")
		assert.Contains(t, stderr2.String(), "already ingested")

		// Force re-ingests while keeping the seen file current.
		var saves3 atomic.Int32
		var committed3 atomic.Bool
		deps3 := batchDeps(&saves3, &committed3)
		cmd3 := &main.BatchCmd{URLs: urls, Type: "article", SeenFile: seenFile, Force: true}
		require.NoError(t, cmd3.Run(deps3))
		assert.Equal(t, int32(2), saves3.Load())
	})

	t.Run("applies the concurrency flag", func(t *testing.T) {
		t.Parallel()

		var saves atomic.Int32
		var committed atomic.Bool
		deps := batchDeps(&saves, &committed)

		var urls []string
		for i := range 20 {
			urls = append(urls, fmt.Sprintf("https://example.com/%d", i))
		}
		cmd := &main.BatchCmd{URLs: urls, Type: "article", Concurrency: 3}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, 3, deps.Batch.Concurrency)
		assert.Equal(t, int32(20), saves.Load())
	})
}
