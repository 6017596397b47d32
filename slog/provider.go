package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/pagelens/pagelens"
)

// Ensure LoggingProvider implements pagelens.Provider.
var _ pagelens.Provider = (*LoggingProvider)(nil)

// LoggingProvider wraps a Provider with logging of AI calls.
type LoggingProvider struct {
	next   pagelens.Provider
	logger *slog.Logger
}

// NewLoggingProvider creates a new LoggingProvider.
func NewLoggingProvider(next pagelens.Provider, logger *slog.Logger) *LoggingProvider {
	return &LoggingProvider{next: next, logger: logger}
}

// Summarize delegates to the wrapped provider and logs the call.
func (p *LoggingProvider) Summarize(ctx context.Context, text string, maxTokens int) (summary string, err error) {
	defer func(begin time.Time) {
		p.logger.Info("ai summarize",
			"chars", len(text),
			"maxTokens", maxTokens,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Summarize(ctx, text, maxTokens)
}

// Rewrite delegates to the wrapped provider and logs the call.
func (p *LoggingProvider) Rewrite(ctx context.Context, text string, instructions string) (rewritten string, err error) {
	defer func(begin time.Time) {
		p.logger.Info("ai rewrite",
			"chars", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Rewrite(ctx, text, instructions)
}
