package readability

import (
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/pagelens/pagelens"
)

// Ensure Extractor implements pagelens.Extractor at compile time.
var _ pagelens.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*pagelens.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, pagelens.Errorf(pagelens.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &pagelens.ExtractResult{
		Title:       article.Title,
		Description: article.Excerpt,
		ContentHTML: article.Content,
	}, nil
}
