// Package fs provides file-based export of analysis results.
package fs

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pagelens/pagelens"
)

// URLToPath converts a page URL to a relative markdown file path.
// Example: https://example.com/blog/post → blog/post.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	path := u.Path

	// Handle root or trailing slash → index.md
	if path == "" || path == "/" {
		return "index.md", nil
	}

	// Remove leading slash
	path = strings.TrimPrefix(path, "/")

	// Trailing slash becomes index.md in that directory
	if strings.HasSuffix(path, "/") {
		return path + "index.md", nil
	}

	// Otherwise append .md
	return path + ".md", nil
}

// FormatJob formats a finished job's markdown content with YAML frontmatter.
func FormatJob(job *pagelens.Job) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(job.URL)
	b.WriteString("\ntitle: ")
	b.WriteString(resultTitle(job.Result))
	b.WriteString("\nmode: ")
	b.WriteString(string(job.Mode))
	if job.FinishedAt != nil {
		b.WriteString("\nanalyzed: ")
		b.WriteString(job.FinishedAt.Format("2006-01-02"))
	}
	b.WriteString("\n---\n\n")
	b.WriteString(job.Result.ContentMarkdown)
	b.WriteString("\n")
	return b.String()
}

func resultTitle(result *pagelens.Result) string {
	switch {
	case result.Article != nil:
		return result.Article.Title
	case result.SEO != nil:
		return result.SEO.Title
	case result.Product != nil:
		return result.Product.Name
	}
	return ""
}

// Writer writes finished jobs as markdown files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteJob writes a finished job to disk as a markdown file. The relative
// path is derived from the job's URL. Jobs without a result or without
// markdown content are rejected.
func (w *Writer) WriteJob(job *pagelens.Job) (string, error) {
	if job.Result == nil {
		return "", pagelens.Errorf(pagelens.EINVALID, "job %s has no result", job.ID)
	}
	if job.Result.ContentMarkdown == "" {
		return "", pagelens.Errorf(pagelens.EINVALID, "job %s has no markdown content", job.ID)
	}

	relPath, err := URLToPath(job.URL)
	if err != nil {
		return "", pagelens.Errorf(pagelens.EINVALID, "unparseable job URL %q: %v", job.URL, err)
	}

	fullPath := filepath.Join(w.baseDir, relPath)

	// Create parent directories
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	if err := os.WriteFile(fullPath, []byte(FormatJob(job)), 0644); err != nil {
		return "", err
	}
	return fullPath, nil
}
