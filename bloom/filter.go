// Package bloom tracks content hashes already seen across jobs using a
// Bloom filter.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter records content hashes probabilistically. It is safe for
// concurrent use by the engine's workers.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Filter sized for n expected items with the
// given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Observe records a content hash and reports whether it was already
// present. False positives are possible; false negatives are not.
func (f *Filter) Observe(hash string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestAndAddString(hash)
}

// Seen reports whether a content hash might have been observed before.
func (f *Filter) Seen(hash string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestString(hash)
}

// Count returns the approximate number of distinct hashes observed.
func (f *Filter) Count() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint(f.f.ApproximatedSize())
}
