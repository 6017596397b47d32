package mock

import "github.com/pagelens/pagelens"

var _ pagelens.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of pagelens.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*pagelens.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*pagelens.ExtractResult, error) {
	return e.ExtractFn(html)
}
