package goquery_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/pagelens/pagelens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractArticle(t *testing.T) {
	t.Parallel()

	t.Run("end to end scenario", func(t *testing.T) {
		t.Parallel()

		art := extractArticleFrom(t,
			`<html><body><h1>Test</h1><p>Short sentence. Another one here.</p></body></html>`)

		assert.Equal(t, "Test", art.Title)
		assert.Equal(t, []string{"Short sentence. Another one here."}, art.Paragraphs)
		assert.Equal(t, 6, art.Stats.Words)
		assert.Equal(t, 2, art.Stats.Sentences)
	})

	t.Run("title falls back to document title", func(t *testing.T) {
		t.Parallel()

		art := extractArticleFrom(t,
			`<html><head><title>Doc Title</title></head><body><p>text here</p></body></html>`)

		assert.Equal(t, "Doc Title", art.Title)
	})

	t.Run("headings preserve document order", func(t *testing.T) {
		t.Parallel()

		art := extractArticleFrom(t, `<html><body>
			<h1>One</h1><h2>Two</h2><h3>Three</h3><h2>Four</h2>
			<p>enough prose to extract</p></body></html>`)

		require.Len(t, art.Headings, 4)
		assert.Equal(t, pagelens.Heading{Tag: "h1", Text: "One"}, art.Headings[0])
		assert.Equal(t, pagelens.Heading{Tag: "h2", Text: "Two"}, art.Headings[1])
		assert.Equal(t, pagelens.Heading{Tag: "h3", Text: "Three"}, art.Headings[2])
		assert.Equal(t, pagelens.Heading{Tag: "h2", Text: "Four"}, art.Headings[3])
	})

	t.Run("paragraphs are whitespace collapsed and deduplicated", func(t *testing.T) {
		t.Parallel()

		art := extractArticleFrom(t, `<html><body>
			<p>  spaced   out  </p>
			<p>spaced out</p>
			<p></p>
			<p>second</p></body></html>`)

		assert.Equal(t, []string{"spaced out", "second"}, art.Paragraphs)
	})

	t.Run("no text yields empty paragraphs not an error", func(t *testing.T) {
		t.Parallel()

		art := extractArticleFrom(t, `<html><body><div></div></body></html>`)

		assert.Empty(t, art.Paragraphs)
		assert.Equal(t, 0, art.Stats.Words)
	})

	t.Run("long paragraphs truncate on a character boundary", func(t *testing.T) {
		t.Parallel()

		// 2100 bytes of 3-byte runes; a byte cut at 2000 would land
		// mid-sequence
		long := strings.Repeat("日", 700)
		art := extractArticleFrom(t,
			`<html><body><p>`+long+`</p></body></html>`)

		require.Len(t, art.Paragraphs, 1)
		assert.LessOrEqual(t, len(art.Paragraphs[0]), 2000)
		assert.True(t, utf8.ValidString(art.Paragraphs[0]))
	})

	t.Run("meta description and links", func(t *testing.T) {
		t.Parallel()

		art := extractArticleFrom(t, `<html><head>
			<meta name="description" content="the description"></head>
			<body><p>text with a <a href="/next">link</a></p></body></html>`)

		assert.Equal(t, "the description", art.MetaDescription)
		assert.Equal(t, []string{"/next"}, art.Links)
	})
}
