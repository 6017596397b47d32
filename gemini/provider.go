package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pagelens/pagelens"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// maxInputTokens caps the content sent with a single prompt. Longer
// inputs are truncated before the call.
const maxInputTokens = 30000

// requestsPerSecond throttles outbound Gemini calls.
const requestsPerSecond = 1

// Ensure Provider implements pagelens.Provider at compile time.
var _ pagelens.Provider = (*Provider)(nil)

// Provider implements pagelens.Provider using Google Gemini.
type Provider struct {
	client  *genai.Client
	limiter *rate.Limiter
	counter *TokenCounter
}

// NewProvider creates a new Provider. counter may be nil, in which case
// input truncation falls back to a byte estimate.
func NewProvider(client *genai.Client, counter *TokenCounter) *Provider {
	return &Provider{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 2),
		counter: counter,
	}
}

// Summarize produces a short bullet-point summary of text.
func (p *Provider) Summarize(ctx context.Context, text string, maxTokens int) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", pagelens.Errorf(pagelens.EINVALID, "text required")
	}

	text, err := p.bound(ctx, text)
	if err != nil {
		return "", err
	}

	return p.generate(ctx, BuildSummaryPrompt(text), BuildConfig(maxTokens))
}

// Rewrite rewrites text following the given instructions.
func (p *Provider) Rewrite(ctx context.Context, text string, instructions string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", pagelens.Errorf(pagelens.EINVALID, "text required")
	}
	if strings.TrimSpace(instructions) == "" {
		return "", pagelens.Errorf(pagelens.EINVALID, "instructions required")
	}

	text, err := p.bound(ctx, text)
	if err != nil {
		return "", err
	}

	return p.generate(ctx, BuildRewritePrompt(text, instructions), BuildConfig(0))
}

func (p *Provider) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", ClassifyError(err)
	}

	result, err := p.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", ClassifyError(err)
	}
	if result == nil {
		return "", pagelens.Errorf(pagelens.EINTERNAL, "gemini returned nil result")
	}

	return strings.TrimSpace(result.Text()), nil
}

// bound truncates text to maxInputTokens. Truncation length is derived
// from the measured token count; without a counter a four-bytes-per-token
// estimate applies.
func (p *Provider) bound(ctx context.Context, text string) (string, error) {
	if p.counter == nil {
		if len(text) > maxInputTokens*4 {
			return text[:maxInputTokens*4], nil
		}
		return text, nil
	}

	n, err := p.counter.CountTokens(ctx, text)
	if err != nil {
		return "", ClassifyError(err)
	}
	if n <= maxInputTokens {
		return text, nil
	}
	return text[:len(text)*maxInputTokens/n], nil
}

// ClassifyError maps transport failures onto application error codes so
// the caller can tell transient faults from permanent ones. Authentication,
// permission, and quota rejections are permanent: retrying them cannot
// succeed.
func ClassifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return pagelens.Errorf(pagelens.ETIMEOUT, "gemini call timed out: %v", err)
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests:
			return pagelens.Errorf(pagelens.EINVALID, "gemini rejected the request: %v", err)
		}
	}
	return pagelens.Errorf(pagelens.EUNAVAILABLE, "gemini call failed: %v", err)
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
// maxTokens bounds the response when positive.
func BuildConfig(maxTokens int) *genai.GenerateContentConfig {
	temp := float32(0.4)
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a content analyst. Summarize and rewrite the provided web page content faithfully. Never invent facts that are not in the source.",
			}},
		},
		Temperature: &temp,
	}
	if maxTokens > 0 {
		config.MaxOutputTokens = int32(maxTokens)
	}
	return config
}

// BuildSummaryPrompt builds the prompt for a bullet-point summary.
func BuildSummaryPrompt(text string) string {
	var sb strings.Builder
	sb.WriteString("Summarize the following content in 3-5 short bullet points:\n\n")
	sb.WriteString("<content>\n")
	sb.WriteString(text)
	sb.WriteString("\n</content>")
	return sb.String()
}

// BuildRewritePrompt builds the prompt for a rewrite with instructions.
func BuildRewritePrompt(text, instructions string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Rewrite the following content. Instructions: %s\n\n", instructions)
	sb.WriteString("<content>\n")
	sb.WriteString(text)
	sb.WriteString("\n</content>")
	return sb.String()
}
