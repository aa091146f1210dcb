package mock

import (
	"context"

	"github.com/fwojciec/gleaner"
)

var _ gleaner.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of gleaner.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ gleaner.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of gleaner.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

var _ gleaner.SeenFilter = (*SeenFilter)(nil)

// SeenFilter is a mock implementation of gleaner.SeenFilter.
type SeenFilter struct {
	TestFn func(url string) bool
	AddFn  func(url string)
}

func (f *SeenFilter) Test(url string) bool {
	return f.TestFn(url)
}

func (f *SeenFilter) Add(url string) {
	f.AddFn(url)
}
