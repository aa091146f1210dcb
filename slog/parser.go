package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/gleaner"
)

// Ensure LoggingParser implements gleaner.EntityParser.
var _ gleaner.EntityParser = (*LoggingParser)(nil)

// LoggingParser wraps an EntityParser with debug logging. The logged
// provenance shows whether a page was parsed structurally or needed the
// model fallback, which is the number to watch when selector chains
// start going stale.
type LoggingParser struct {
	next   gleaner.EntityParser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next gleaner.EntityParser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// ParseEntity delegates to the wrapped parser and logs the operation.
func (p *LoggingParser) ParseEntity(ctx context.Context, html, sourceURL string, typ gleaner.EntityType) (outcome *gleaner.Outcome, err error) {
	defer func(begin time.Time) {
		provenance := ""
		if outcome != nil {
			provenance = string(outcome.Provenance)
		}
		p.logger.Info("parse",
			"url", sourceURL,
			"type", string(typ),
			"provenance", provenance,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.ParseEntity(ctx, html, sourceURL, typ)
}
