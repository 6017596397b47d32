package mock

import (
	"context"

	"github.com/pagelens/pagelens"
)

var _ pagelens.Provider = (*Provider)(nil)

// Provider is a mock implementation of pagelens.Provider.
type Provider struct {
	SummarizeFn func(ctx context.Context, text string, maxTokens int) (string, error)
	RewriteFn   func(ctx context.Context, text string, instructions string) (string, error)
}

func (p *Provider) Summarize(ctx context.Context, text string, maxTokens int) (string, error) {
	return p.SummarizeFn(ctx, text, maxTokens)
}

func (p *Provider) Rewrite(ctx context.Context, text string, instructions string) (string, error) {
	return p.RewriteFn(ctx, text, instructions)
}
