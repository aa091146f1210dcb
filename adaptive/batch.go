package adaptive

import (
	"context"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/gleaner"
	"golang.org/x/sync/errgroup"
)

// Batch extracts one entity per URL with bounded concurrency. Items are
// isolated: one bad URL never aborts its siblings, and results come back
// in input order regardless of completion order.
type Batch struct {
	Fetcher gleaner.Fetcher
	Parser  gleaner.EntityParser

	// Limiter, when set, throttles fetches per domain.
	Limiter gleaner.DomainLimiter

	// Seen, when set, skips URLs already ingested in previous runs and
	// records the URLs this run ingests.
	Seen gleaner.SeenFilter

	// Concurrency bounds the number of in-flight items. Zero or
	// negative means DefaultConcurrency.
	Concurrency int
}

// DefaultConcurrency bounds batch workers when Batch.Concurrency is
// unset.
const DefaultConcurrency = 8

// ProgressEvent reports progress during a batch extraction.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// ExtractAll extracts typ from every URL and returns the successful
// outcomes in input order. Failed items are silently dropped; use
// ExtractItems when per-item failures matter. The returned error is
// non-nil only when the batch as a whole could not run.
func (b *Batch) ExtractAll(ctx context.Context, urls []string, typ gleaner.EntityType, progress ProgressFunc) ([]*gleaner.Outcome, error) {
	items, err := b.ExtractItems(ctx, urls, typ, progress)
	if err != nil {
		return nil, err
	}
	outcomes := make([]*gleaner.Outcome, 0, len(items))
	for _, item := range items {
		if item.Err == nil {
			outcomes = append(outcomes, item.Outcome)
		}
	}
	return outcomes, nil
}

// ExtractItems extracts typ from every URL and returns one item per
// input URL, in input order, each holding either an outcome or that
// item's failure.
func (b *Batch) ExtractItems(ctx context.Context, urls []string, typ gleaner.EntityType, progress ProgressFunc) ([]gleaner.BatchItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	total := len(urls)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	items := make([]gleaner.BatchItem, total)
	itemCh := make(chan gleaner.BatchItem, total)

	// Identical pages reached through different URLs count once; the
	// first fetch to finish wins the hash.
	dedupe := newContentDeduper()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	go func() {
		for i, url := range urls {
			g.Go(func() error {
				itemCh <- b.processURL(gctx, i, url, typ, dedupe)
				return nil
			})
		}
		_ = g.Wait()
		close(itemCh)
	}()

	completed := 0
	for item := range itemCh {
		completed++
		items[item.Index] = item
		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Completed: completed,
			Total:     total,
			URL:       item.URL,
		}
		if item.Err != nil {
			event.Type = ProgressFailed
			event.Error = item.Err
		} else {
			event.Type = ProgressCompleted
		}
		progress(event)
	}

	if b.Seen != nil {
		for _, item := range items {
			if item.Err == nil {
				b.Seen.Add(item.URL)
			}
		}
	}
	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	return items, nil
}

func (b *Batch) processURL(ctx context.Context, index int, url string, typ gleaner.EntityType, dedupe *contentDeduper) gleaner.BatchItem {
	item := gleaner.BatchItem{Index: index, URL: url}

	if b.Seen != nil && b.Seen.Test(url) {
		item.Err = gleaner.Errorf(gleaner.ECONFLICT, "already ingested: %s", url)
		return item
	}
	if b.Limiter != nil {
		if err := b.Limiter.Wait(ctx, gleaner.Domain(url)); err != nil {
			item.Err = err
			return item
		}
	}

	html, err := b.Fetcher.Fetch(ctx, url)
	if err != nil {
		item.Err = err
		return item
	}
	if first := dedupe.claim(html, url); first != "" {
		item.Err = gleaner.Errorf(gleaner.ECONFLICT, "duplicate content: %s matches %s", url, first)
		return item
	}

	outcome, err := b.Parser.ParseEntity(ctx, html, url, typ)
	if err != nil {
		item.Err = err
		return item
	}
	item.Outcome = outcome
	return item
}

// contentDeduper tracks page-content hashes within one batch run.
type contentDeduper struct {
	mu   sync.Mutex
	seen map[uint64]string
}

func newContentDeduper() *contentDeduper {
	return &contentDeduper{seen: make(map[uint64]string)}
}

// claim registers the content hash for url. It returns "" when the
// content is new, or the URL that claimed the same content first.
func (d *contentDeduper) claim(content, url string) string {
	hash := xxhash.Sum64String(content)
	d.mu.Lock()
	defer d.mu.Unlock()
	if first, ok := d.seen[hash]; ok {
		return first
	}
	d.seen[hash] = url
	return ""
}
