package mock

import (
	"context"

	"github.com/fwojciec/gleaner"
)

var _ gleaner.FallbackExtractor = (*FallbackExtractor)(nil)

// FallbackExtractor is a mock implementation of gleaner.FallbackExtractor.
type FallbackExtractor struct {
	ExtractContentFn func(ctx context.Context, html string, category gleaner.ContentCategory) (string, error)
	ExtractBatchFn   func(ctx context.Context, reqs []gleaner.FallbackRequest) []string
}

func (e *FallbackExtractor) ExtractContent(ctx context.Context, html string, category gleaner.ContentCategory) (string, error) {
	return e.ExtractContentFn(ctx, html, category)
}

func (e *FallbackExtractor) ExtractBatch(ctx context.Context, reqs []gleaner.FallbackRequest) []string {
	return e.ExtractBatchFn(ctx, reqs)
}
