// Package http provides an HTTP-based implementation of pagelens.Fetcher
// for retrieving pages from static sites that don't require JavaScript
// rendering.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pagelens/pagelens"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxBodySize caps how much of a response body is read.
const DefaultMaxBodySize = 10 << 20 // 10 MiB

// userAgent identifies the scraper to origin servers.
const userAgent = "Mozilla/5.0 (compatible; pagelens/1.0)"

// Ensure Fetcher implements pagelens.Fetcher at compile time.
var _ pagelens.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
// It does not execute JavaScript and is suitable for static pages only.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	maxBodySize int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxBodySize caps the number of response bytes read per fetch.
// Defaults to DefaultMaxBodySize if not specified.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", pagelens.Errorf(pagelens.EINVALID, "invalid URL %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", pagelens.Errorf(pagelens.EINVALID, "invalid request for %q: %v", rawURL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", pagelens.Errorf(pagelens.ETIMEOUT, "fetch timed out for %s", rawURL)
		}
		return "", pagelens.Errorf(pagelens.EUNAVAILABLE, "fetch failed for %s: %v", rawURL, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", pagelens.Errorf(pagelens.ENOTFOUND, "HTTP 404 for %s", rawURL)
	case resp.StatusCode != http.StatusOK:
		return "", pagelens.Errorf(pagelens.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return "", pagelens.Errorf(pagelens.EUNAVAILABLE, "reading body for %s: %v", rawURL, err)
	}

	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
