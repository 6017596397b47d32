package engine

import (
	"context"
	"time"

	"github.com/pagelens/pagelens"
)

// summaryMaxTokens bounds AI summary responses.
const summaryMaxTokens = 256

// rewriteDescriptionInstructions is the fixed instruction set for SEO
// meta description rewrites.
const rewriteDescriptionInstructions = "Rewrite this meta description so it is compelling and between 150 and 160 characters long. Return only the rewritten description."

// DefaultRetryDelays returns the backoff delays applied between provider
// attempts. A single retry keeps job latency bounded.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second}
}

// summarize attaches an AI summary to the result when one was requested.
// Provider failures fall back to an extractive summary with a caveat; the
// job itself never fails because of summarization.
func (e *Engine) summarize(ctx context.Context, article *pagelens.ArticleData, aiRequested bool, result *pagelens.Result) {
	if !aiRequested {
		return
	}

	var keywords []pagelens.Keyword
	if result.SEO != nil {
		keywords = result.SEO.TopKeywords
	}

	if e.Provider == nil {
		if s := e.extractiveSummary(article, keywords); s != "" {
			result.AISummary = &s
		}
		result.AddCaveat("ai provider not configured: used extractive summary")
		return
	}

	summary, err := e.callProvider(ctx, func(ctx context.Context) (string, error) {
		return e.Provider.Summarize(ctx, article.Text(), summaryMaxTokens)
	})
	if err != nil {
		if s := e.extractiveSummary(article, keywords); s != "" {
			result.AISummary = &s
		}
		result.AddCaveat("ai summary failed: used extractive fallback")
		return
	}

	result.AISummary = &summary
}

// rewriteDescription asks the provider for an SEO-optimized meta
// description rewrite. Failures degrade to a caveat.
func (e *Engine) rewriteDescription(ctx context.Context, seoResult *pagelens.SEOResult, result *pagelens.Result) {
	if e.Provider == nil {
		result.AddCaveat("ai rewrite requested but no provider configured")
		return
	}
	if seoResult.MetaDescription == "" {
		return
	}

	rewritten, err := e.callProvider(ctx, func(ctx context.Context) (string, error) {
		return e.Provider.Rewrite(ctx, seoResult.MetaDescription, rewriteDescriptionInstructions)
	})
	if err != nil {
		result.AddCaveat("ai rewrite failed: " + pagelens.ErrorMessage(err))
		return
	}

	seoResult.AIRewrite = &rewritten
}

// Rewrite rewrites text following the given instructions using the
// configured provider. It applies the same timeout and retry policy as
// the job pipeline.
func (e *Engine) Rewrite(ctx context.Context, text, instructions string) (string, error) {
	if e.Provider == nil {
		return "", pagelens.Errorf(pagelens.EUNAVAILABLE, "no AI provider configured")
	}
	return e.callProvider(ctx, func(ctx context.Context) (string, error) {
		return e.Provider.Rewrite(ctx, text, instructions)
	})
}

func (e *Engine) extractiveSummary(article *pagelens.ArticleData, keywords []pagelens.Keyword) string {
	return pagelens.ExtractiveSummary(article.Text(), keywords,
		e.Config.SummarySentences, e.Config.SummaryMaxChars)
}

// callProvider invokes a provider call with a per-attempt timeout,
// retrying transient failures once per configured delay.
func (e *Engine) callProvider(ctx context.Context, call func(ctx context.Context) (string, error)) (string, error) {
	delays := e.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		callCtx := ctx
		cancel := context.CancelFunc(func() {})
		if e.Config.ProviderTimeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, e.Config.ProviderTimeout)
		}
		out, err := call(callCtx)
		cancel()
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !pagelens.IsTransient(err) || attempt >= len(delays) {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
