package fetch

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/fwojciec/gleaner"
)

// Ensure DomainLimiter implements gleaner.DomainLimiter at compile time.
var _ gleaner.DomainLimiter = (*DomainLimiter)(nil)

// DefaultRequestsPerSecond is the per-domain request rate used when no
// rate is configured.
const DefaultRequestsPerSecond = 1.0

// DomainLimiter enforces a per-domain request rate. Each domain gets an
// independent token bucket so a slow site doesn't stall extraction from
// others.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per
// second per domain. A non-positive rps falls back to
// DefaultRequestsPerSecond.
func NewDomainLimiter(rps float64) *DomainLimiter {
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until a request to the given domain is allowed, or the
// context is cancelled.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()
	return limiter.Wait(ctx)
}
