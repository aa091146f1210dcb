package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/gleaner"
)

// Ensure LoggingFallbackExtractor implements gleaner.FallbackExtractor.
var _ gleaner.FallbackExtractor = (*LoggingFallbackExtractor)(nil)

// LoggingFallbackExtractor wraps a FallbackExtractor with debug logging.
// Every call here is a model invocation, so the log doubles as a usage
// record.
type LoggingFallbackExtractor struct {
	next   gleaner.FallbackExtractor
	logger *slog.Logger
}

// NewLoggingFallbackExtractor creates a new LoggingFallbackExtractor.
func NewLoggingFallbackExtractor(next gleaner.FallbackExtractor, logger *slog.Logger) *LoggingFallbackExtractor {
	return &LoggingFallbackExtractor{next: next, logger: logger}
}

// ExtractContent delegates to the wrapped extractor and logs the operation.
func (e *LoggingFallbackExtractor) ExtractContent(ctx context.Context, html string, category gleaner.ContentCategory) (content string, err error) {
	defer func(begin time.Time) {
		e.logger.Info("fallback extraction",
			"category", string(category),
			"bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractContent(ctx, html, category)
}

// ExtractBatch delegates to the wrapped extractor and logs the batch.
func (e *LoggingFallbackExtractor) ExtractBatch(ctx context.Context, reqs []gleaner.FallbackRequest) (results []string) {
	defer func(begin time.Time) {
		recovered := 0
		for _, r := range results {
			if r != "" {
				recovered++
			}
		}
		e.logger.Info("fallback batch",
			"requests", len(reqs),
			"recovered", recovered,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.ExtractBatch(ctx, reqs)
}
