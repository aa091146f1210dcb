package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/gleaner"
)

// Ensure LoggingFeedService implements gleaner.FeedService.
var _ gleaner.FeedService = (*LoggingFeedService)(nil)

// LoggingFeedService wraps a FeedService with debug logging.
type LoggingFeedService struct {
	next   gleaner.FeedService
	logger *slog.Logger
}

// NewLoggingFeedService creates a new LoggingFeedService.
func NewLoggingFeedService(next gleaner.FeedService, logger *slog.Logger) *LoggingFeedService {
	return &LoggingFeedService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service and logs the operation.
func (s *LoggingFeedService) DiscoverURLs(ctx context.Context, feedURL string, filter *gleaner.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("feed discovery",
			"url", feedURL,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, feedURL, filter)
}
