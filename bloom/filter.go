// Package bloom provides URL deduplication using Bloom filters.
package bloom

import (
	"io"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/gleaner"
)

var _ gleaner.SeenFilter = (*Filter)(nil)

// Filter wraps a Bloom filter for tracking ingested URLs across batch
// runs. False positives skip a URL that was never ingested; false
// negatives never happen, so nothing is ingested twice.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a URL to the filter.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test returns true if the URL might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

// WriteTo serializes the filter, for persisting between runs.
func (f *Filter) WriteTo(w io.Writer) (int64, error) {
	return f.f.WriteTo(w)
}

// ReadFrom replaces the filter contents with a previously serialized
// filter.
func (f *Filter) ReadFrom(r io.Reader) (int64, error) {
	return f.f.ReadFrom(r)
}
