package mock

import (
	"context"

	"github.com/fwojciec/gleaner"
)

var _ gleaner.FeedService = (*FeedService)(nil)

// FeedService is a mock implementation of gleaner.FeedService.
type FeedService struct {
	DiscoverURLsFn func(ctx context.Context, feedURL string, filter *gleaner.URLFilter) ([]string, error)
}

func (s *FeedService) DiscoverURLs(ctx context.Context, feedURL string, filter *gleaner.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, feedURL, filter)
}
