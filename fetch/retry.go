package fetch

import (
	"context"
	"time"

	"github.com/fwojciec/gleaner"
)

// Ensure RetryFetcher implements gleaner.Fetcher at compile time.
var _ gleaner.Fetcher = (*RetryFetcher)(nil)

// DefaultRetryDelays returns the standard backoff schedule for fetch
// retries.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// RetryFetcher retries failed fetches with a fixed backoff schedule.
// The number of attempts is len(delays)+1. Invalid-input failures are
// not retried: a malformed URL does not improve with time.
type RetryFetcher struct {
	next   gleaner.Fetcher
	delays []time.Duration
}

// NewRetryFetcher wraps next with retries. An empty delays list falls
// back to DefaultRetryDelays.
func NewRetryFetcher(next gleaner.Fetcher, delays ...time.Duration) *RetryFetcher {
	if len(delays) == 0 {
		delays = DefaultRetryDelays()
	}
	return &RetryFetcher{next: next, delays: delays}
}

// Fetch attempts the fetch, sleeping between failures according to the
// backoff schedule. It returns the last error when all attempts fail.
func (f *RetryFetcher) Fetch(ctx context.Context, url string) (string, error) {
	maxAttempts := len(f.delays) + 1
	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(f.delays[attempt-1]):
			}
		}

		html, err := f.next.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		if gleaner.ErrorCode(err) == gleaner.EINVALID {
			return "", err
		}
		lastErr = err
	}

	return "", lastErr
}

// Close closes the underlying fetcher.
func (f *RetryFetcher) Close() error {
	return f.next.Close()
}
