package adaptive_test

import (
	"sync"
	"testing"

	"github.com/fwojciec/gleaner"
	"github.com/fwojciec/gleaner/adaptive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_ImplementsInterface(t *testing.T) {
	t.Parallel()

	var _ gleaner.SelectorCache = adaptive.NewCache()
}

func TestCache_LearnAndLookup(t *testing.T) {
	t.Parallel()

	cache := adaptive.NewCache()
	set := gleaner.SelectorSet{Title: ".headline", Content: ".story-body"}

	require.NoError(t, cache.Learn("example.com", set))

	got, ok := cache.Lookup("example.com")
	require.True(t, ok)
	assert.Equal(t, set, got)

	_, ok = cache.Lookup("other.com")
	assert.False(t, ok)
}

func TestCache_LearnValidation(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty domain", func(t *testing.T) {
		t.Parallel()

		cache := adaptive.NewCache()
		err := cache.Learn("", gleaner.SelectorSet{Title: "h1"})
		require.Error(t, err)
		assert.Equal(t, gleaner.EINVALID, gleaner.ErrorCode(err))
	})

	t.Run("rejects empty set", func(t *testing.T) {
		t.Parallel()

		cache := adaptive.NewCache()
		err := cache.Learn("example.com", gleaner.SelectorSet{})
		require.Error(t, err)
		assert.Equal(t, gleaner.EINVALID, gleaner.ErrorCode(err))
	})
}

func TestCache_LearnReplaces(t *testing.T) {
	t.Parallel()

	cache := adaptive.NewCache()
	require.NoError(t, cache.Learn("example.com", gleaner.SelectorSet{Title: "h1"}))

	snapshot, ok := cache.Lookup("example.com")
	require.True(t, ok)

	require.NoError(t, cache.Learn("example.com", gleaner.SelectorSet{Title: ".headline"}))

	got, ok := cache.Lookup("example.com")
	require.True(t, ok)
	assert.Equal(t, ".headline", got.Title)
	// The earlier snapshot is a value copy and stays as it was.
	assert.Equal(t, "h1", snapshot.Title)
}

func TestCache_Clear(t *testing.T) {
	t.Parallel()

	cache := adaptive.NewCache()
	require.NoError(t, cache.Learn("example.com", gleaner.SelectorSet{Title: "h1"}))

	cache.Clear()

	_, ok := cache.Lookup("example.com")
	assert.False(t, ok)
	assert.Empty(t, cache.Domains())
}

func TestCache_DomainsSorted(t *testing.T) {
	t.Parallel()

	cache := adaptive.NewCache()
	require.NoError(t, cache.Learn("zeta.com", gleaner.SelectorSet{Title: "h1"}))
	require.NoError(t, cache.Learn("alpha.com", gleaner.SelectorSet{Title: "h1"}))
	require.NoError(t, cache.Learn("mid.com", gleaner.SelectorSet{Title: "h1"}))

	assert.Equal(t, []string{"alpha.com", "mid.com", "zeta.com"}, cache.Domains())
}

func TestCache_SnapshotRestore(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		src := adaptive.NewCache()
		require.NoError(t, src.Learn("a.com", gleaner.SelectorSet{Title: "h1"}))
		require.NoError(t, src.Learn("b.com", gleaner.SelectorSet{Content: ".body"}))

		dst := adaptive.NewCache()
		dst.Restore(src.Snapshot())

		assert.Equal(t, src.Domains(), dst.Domains())
		got, ok := dst.Lookup("b.com")
		require.True(t, ok)
		assert.Equal(t, ".body", got.Content)
	})

	t.Run("snapshot is detached from the cache", func(t *testing.T) {
		t.Parallel()

		cache := adaptive.NewCache()
		require.NoError(t, cache.Learn("a.com", gleaner.SelectorSet{Title: "h1"}))

		snap := cache.Snapshot()
		snap["a.com"] = gleaner.SelectorSet{Title: "mutated"}

		got, _ := cache.Lookup("a.com")
		assert.Equal(t, "h1", got.Title)
	})

	t.Run("restore skips invalid entries", func(t *testing.T) {
		t.Parallel()

		cache := adaptive.NewCache()
		cache.Restore(map[string]gleaner.SelectorSet{
			"good.com":  {Title: "h1"},
			"":          {Title: "h1"},
			"empty.com": {},
		})

		assert.Equal(t, []string{"good.com"}, cache.Domains())
	})
}

func TestCache_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	cache := adaptive.NewCache()
	require.NoError(t, cache.Learn("example.com", gleaner.SelectorSet{Title: "h1"}))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = cache.Learn("example.com", gleaner.SelectorSet{Title: ".headline"})
		}()
		go func() {
			defer wg.Done()
			if set, ok := cache.Lookup("example.com"); ok {
				assert.NotEmpty(t, set.Title)
			}
		}()
	}
	wg.Wait()

	got, ok := cache.Lookup("example.com")
	require.True(t, ok)
	assert.NotEmpty(t, got.Title)
}
