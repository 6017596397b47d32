package engine_test

import (
	"context"
	"strings"
	"testing"

	"github.com/pagelens/pagelens"
	"github.com/pagelens/pagelens/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Summarize(t *testing.T) {
	t.Parallel()

	t.Run("attaches provider summary when requested", func(t *testing.T) {
		t.Parallel()

		e := newEngine(nil)
		e.Provider = &mock.Provider{
			SummarizeFn: func(ctx context.Context, text string, maxTokens int) (string, error) {
				assert.Equal(t, 256, maxTokens)
				assert.NotEmpty(t, text)
				return "- bullet one\n- bullet two", nil
			},
		}

		result, err := e.Analyze(context.Background(), pagelens.Request{
			URL:         "https://example.com/post",
			HTML:        articleHTML,
			Mode:        pagelens.ModeArticle,
			AIRequested: true,
		})
		require.NoError(t, err)

		require.NotNil(t, result.AISummary)
		assert.Equal(t, "- bullet one\n- bullet two", *result.AISummary)
	})

	t.Run("not requested leaves summary nil", func(t *testing.T) {
		t.Parallel()

		e := newEngine(nil)
		e.Provider = &mock.Provider{
			SummarizeFn: func(ctx context.Context, text string, maxTokens int) (string, error) {
				t.Fatal("provider must not be called")
				return "", nil
			},
		}

		result, err := e.Analyze(context.Background(), pagelens.Request{
			URL:  "https://example.com/post",
			HTML: articleHTML,
			Mode: pagelens.ModeArticle,
		})
		require.NoError(t, err)
		assert.Nil(t, result.AISummary)
	})

	t.Run("no provider falls back to extractive summary", func(t *testing.T) {
		t.Parallel()

		e := newEngine(nil)

		result, err := e.Analyze(context.Background(), pagelens.Request{
			URL:         "https://example.com/post",
			HTML:        articleHTML,
			Mode:        pagelens.ModeArticle,
			AIRequested: true,
		})
		require.NoError(t, err)

		assert.Contains(t, result.Caveats, "ai provider not configured: used extractive summary")
		require.NotNil(t, result.AISummary)
		assert.Contains(t, *result.AISummary, "Short sentence.")
	})

	t.Run("transient provider failure retries then falls back", func(t *testing.T) {
		t.Parallel()

		calls := 0
		e := newEngine(nil)
		e.Provider = &mock.Provider{
			SummarizeFn: func(ctx context.Context, text string, maxTokens int) (string, error) {
				calls++
				return "", pagelens.Errorf(pagelens.EUNAVAILABLE, "model overloaded")
			},
		}

		result, err := e.Analyze(context.Background(), pagelens.Request{
			URL:         "https://example.com/post",
			HTML:        articleHTML,
			Mode:        pagelens.ModeArticle,
			AIRequested: true,
		})
		require.NoError(t, err)

		assert.Equal(t, 2, calls)
		assert.Contains(t, result.Caveats, "ai summary failed: used extractive fallback")
		require.NotNil(t, result.AISummary)
		assert.NotEmpty(t, *result.AISummary)
	})

	t.Run("invalid input error is not retried", func(t *testing.T) {
		t.Parallel()

		calls := 0
		e := newEngine(nil)
		e.Provider = &mock.Provider{
			SummarizeFn: func(ctx context.Context, text string, maxTokens int) (string, error) {
				calls++
				return "", pagelens.Errorf(pagelens.EINVALID, "bad prompt")
			},
		}

		_, err := e.Analyze(context.Background(), pagelens.Request{
			URL:         "https://example.com/post",
			HTML:        articleHTML,
			Mode:        pagelens.ModeArticle,
			AIRequested: true,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})
}

func TestEngine_RewriteDescription(t *testing.T) {
	t.Parallel()

	t.Run("seo mode with ai attaches rewrite", func(t *testing.T) {
		t.Parallel()

		e := newEngine(nil)
		e.Provider = &mock.Provider{
			RewriteFn: func(ctx context.Context, text, instructions string) (string, error) {
				assert.Contains(t, instructions, "150 and 160 characters")
				return "A rewritten, more compelling description.", nil
			},
			SummarizeFn: func(ctx context.Context, text string, maxTokens int) (string, error) {
				return "summary", nil
			},
		}

		result, err := e.Analyze(context.Background(), pagelens.Request{
			URL:         "https://example.com/post",
			HTML:        articleHTML,
			Mode:        pagelens.ModeSEO,
			AIRequested: true,
		})
		require.NoError(t, err)

		require.NotNil(t, result.SEO)
		require.NotNil(t, result.SEO.AIRewrite)
		assert.Equal(t, "A rewritten, more compelling description.", *result.SEO.AIRewrite)
	})

	t.Run("rewrite failure degrades to caveat", func(t *testing.T) {
		t.Parallel()

		e := newEngine(nil)
		e.Provider = &mock.Provider{
			RewriteFn: func(ctx context.Context, text, instructions string) (string, error) {
				return "", pagelens.Errorf(pagelens.EINVALID, "refused")
			},
			SummarizeFn: func(ctx context.Context, text string, maxTokens int) (string, error) {
				return "summary", nil
			},
		}

		result, err := e.Analyze(context.Background(), pagelens.Request{
			URL:         "https://example.com/post",
			HTML:        articleHTML,
			Mode:        pagelens.ModeSEO,
			AIRequested: true,
		})
		require.NoError(t, err)

		require.NotNil(t, result.SEO)
		assert.Nil(t, result.SEO.AIRewrite)
		assert.Contains(t, result.Caveats, "ai rewrite failed: refused")
	})
}

func TestEngine_Rewrite(t *testing.T) {
	t.Parallel()

	t.Run("requires a provider", func(t *testing.T) {
		t.Parallel()

		e := newEngine(nil)
		_, err := e.Rewrite(context.Background(), "some text", "make it shorter")
		require.Error(t, err)
		assert.Equal(t, pagelens.EUNAVAILABLE, pagelens.ErrorCode(err))
	})

	t.Run("retries transient errors", func(t *testing.T) {
		t.Parallel()

		calls := 0
		e := newEngine(nil)
		e.Provider = &mock.Provider{
			RewriteFn: func(ctx context.Context, text, instructions string) (string, error) {
				calls++
				if calls == 1 {
					return "", pagelens.Errorf(pagelens.ETIMEOUT, "deadline exceeded")
				}
				return strings.ToUpper(text), nil
			},
		}

		out, err := e.Rewrite(context.Background(), "loud", "shout")
		require.NoError(t, err)
		assert.Equal(t, "LOUD", out)
		assert.Equal(t, 2, calls)
	})
}
