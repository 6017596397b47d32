// Package goquery provides HTML normalization, content selection, and
// field extraction built on PuerkitoBio/goquery. It is the first half of
// the analysis pipeline: raw markup in, structured article or product
// data out.
package goquery

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagelens/pagelens"
	"golang.org/x/net/html"
)

// Document wraps a parsed, normalized HTML document. Script, style,
// noscript, and comment nodes have been removed; the remaining tree is
// treated as read-only by downstream stages.
type Document struct {
	doc *goquery.Document
}

// Normalize parses raw HTML into a Document. Malformed markup is repaired
// by the parser (unclosed tags auto-closed, unknown entities ignored);
// the only failure is empty input, reported as EEMPTYDOC.
func Normalize(rawHTML string) (*Document, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, pagelens.Errorf(pagelens.EEMPTYDOC, "empty document")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, pagelens.Errorf(pagelens.EEMPTYDOC, "unparseable document: %v", err)
	}

	doc.Find("script, style, noscript, template, iframe").Remove()
	for _, root := range doc.Nodes {
		removeComments(root)
	}

	return &Document{doc: doc}, nil
}

// Title returns the trimmed <title> text, or "".
func (d *Document) Title() string {
	return strings.TrimSpace(d.doc.Find("title").First().Text())
}

// Meta returns the content attribute of the first meta tag whose name or
// property matches one of keys, in key order.
func (d *Document) Meta(keys ...string) string {
	for _, key := range keys {
		sel := d.doc.Find(`meta[name="` + key + `"], meta[property="` + key + `"]`).First()
		if content, ok := sel.Attr("content"); ok {
			return strings.TrimSpace(content)
		}
	}
	return ""
}

// Body returns the document body, or the whole document when the parser
// produced no body element.
func (d *Document) Body() *goquery.Selection {
	body := d.doc.Find("body").First()
	if body.Length() == 0 {
		return d.doc.Selection
	}
	return body
}

// Find returns descendants of the document matching the selector.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// FindNodes returns a selection wrapping the given nodes.
func (d *Document) FindNodes(nodes ...*html.Node) *goquery.Selection {
	return d.doc.FindNodes(nodes...)
}

// Render returns the serialized HTML of a selection.
func Render(sel *goquery.Selection) string {
	var buf bytes.Buffer
	for _, n := range sel.Nodes {
		if err := html.Render(&buf, n); err != nil {
			return ""
		}
	}
	return buf.String()
}

// removeComments unlinks comment nodes below root, iteratively to stay
// safe on adversarially deep trees.
func removeComments(root *html.Node) {
	stack := []*html.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for c := n.FirstChild; c != nil; {
			next := c.NextSibling
			if c.Type == html.CommentNode {
				n.RemoveChild(c)
			} else {
				stack = append(stack, c)
			}
			c = next
		}
	}
}

// collapseWhitespace reduces runs of whitespace to single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
