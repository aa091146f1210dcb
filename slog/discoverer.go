package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/gleaner"
)

// Ensure LoggingDiscoverer implements gleaner.SelectorDiscoverer.
var _ gleaner.SelectorDiscoverer = (*LoggingDiscoverer)(nil)

// LoggingDiscoverer wraps a SelectorDiscoverer with debug logging.
type LoggingDiscoverer struct {
	next   gleaner.SelectorDiscoverer
	logger *slog.Logger
}

// NewLoggingDiscoverer creates a new LoggingDiscoverer.
func NewLoggingDiscoverer(next gleaner.SelectorDiscoverer, logger *slog.Logger) *LoggingDiscoverer {
	return &LoggingDiscoverer{next: next, logger: logger}
}

// Discover delegates to the wrapped discoverer and logs the candidates
// found, with the top score when there is one.
func (d *LoggingDiscoverer) Discover(html string, category gleaner.ContentCategory) (candidates []gleaner.ScoredSelector, err error) {
	defer func(begin time.Time) {
		top := 0.0
		if len(candidates) > 0 {
			top = candidates[0].Score
		}
		d.logger.Info("selector discovery",
			"category", string(category),
			"candidates", len(candidates),
			"top_score", top,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Discover(html, category)
}
