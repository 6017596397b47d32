package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/pagelens/pagelens"
	"github.com/pagelens/pagelens/mock"
	pageslog "github.com/pagelens/pagelens/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingProvider_Summarize(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.Provider{
		SummarizeFn: func(ctx context.Context, text string, maxTokens int) (string, error) {
			return "- a summary", nil
		},
	}

	provider := pageslog.NewLoggingProvider(inner, logger)
	summary, err := provider.Summarize(context.Background(), "some long text", 256)

	require.NoError(t, err)
	assert.Equal(t, "- a summary", summary)
	output := buf.String()
	assert.Contains(t, output, "ai summarize")
	assert.Contains(t, output, "chars=14")
	assert.Contains(t, output, "maxTokens=256")
}

func TestLoggingProvider_Rewrite(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.Provider{
		RewriteFn: func(ctx context.Context, text string, instructions string) (string, error) {
			return "", pagelens.Errorf(pagelens.EUNAVAILABLE, "gemini call failed")
		},
	}

	provider := pageslog.NewLoggingProvider(inner, logger)
	_, err := provider.Rewrite(context.Background(), "text", "formal tone")

	require.Error(t, err)
	output := buf.String()
	assert.Contains(t, output, "ai rewrite")
	assert.Contains(t, output, "gemini call failed")
}
