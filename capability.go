package pagelens

import "context"

// ExtractResult holds the main content recovered from an HTML page by a
// fallback content extractor.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// Description is the page description from metadata, if any.
	Description string

	// ContentHTML is the main content as clean HTML with boilerplate
	// (nav, footer, sidebar, ads) removed.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
// The engine uses an Extractor as a fallback when heuristic content
// selection yields no text.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter transforms HTML content into Markdown.
type Converter interface {
	Convert(html string) (string, error)
}

// Provider is an AI text provider used for summaries and rewrites.
// Implementations must honor context deadlines; the engine treats ETIMEOUT
// and EUNAVAILABLE as transient and degrades to a local fallback.
type Provider interface {
	// Summarize produces a short summary of text.
	Summarize(ctx context.Context, text string, maxTokens int) (string, error)

	// Rewrite rewrites text following the given instructions.
	Rewrite(ctx context.Context, text string, instructions string) (string, error)
}

// Fetcher retrieves raw HTML content from a URL. Fetching is outside the
// engine's pipeline; the CLI uses a Fetcher to obtain the HTML it submits.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
	Close() error
}
