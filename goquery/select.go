package goquery

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// candidateTags are block-level elements considered as main-content
// candidates during auto-detection.
var candidateTags = map[string]bool{
	"article": true,
	"main":    true,
	"section": true,
	"div":     true,
	"td":      true,
	"p":       true,
}

// boilerplateTags never contain main content.
var boilerplateTags = map[string]bool{
	"nav":    true,
	"footer": true,
	"aside":  true,
	"header": true,
	"form":   true,
}

var boilerplateHintRe = regexp.MustCompile(`(?i)\b(comments?|sidebar|menu|footer|header|nav|navbar|banner|ads?|advert|promo|cookie|share|social)\b`)

// boilerplatePenalty is subtracted from a candidate's score for each
// boilerplate-looking descendant.
const boilerplatePenalty = 25

// SelectContent locates the main content region of the document. With an
// explicit CSS selector it returns the first match; a selector that matches
// nothing (or fails to compile) falls back to the document body with a
// caveat, never an error. Without a selector it auto-detects the region by
// scoring candidate block-level nodes.
func SelectContent(doc *Document, selector string) (*goquery.Selection, []string) {
	if selector != "" {
		matcher, err := cascadia.Compile(selector)
		if err != nil {
			return doc.Body(), []string{fmt.Sprintf("invalid selector %q: falling back to document root", selector)}
		}
		match := doc.doc.FindMatcher(matcher).First()
		if match.Length() == 0 {
			return doc.Body(), []string{fmt.Sprintf("selector %q matched no elements: falling back to document root", selector)}
		}
		return match, nil
	}

	return autoDetect(doc), nil
}

// autoDetect scores candidate nodes by text length minus link-text length
// minus boilerplate markers and returns the highest-scoring one, preferring
// the earliest in document order on ties. Traversal is iterative with an
// explicit stack so adversarially deep trees cannot exhaust the call stack.
func autoDetect(doc *Document) *goquery.Selection {
	body := doc.Body()
	if len(body.Nodes) == 0 {
		return body
	}

	var best *html.Node
	bestScore := 0

	// preorder document-order walk: push children in reverse
	stack := make([]*html.Node, 0, 64)
	for i := len(body.Nodes) - 1; i >= 0; i-- {
		stack = append(stack, body.Nodes[i])
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.Type == html.ElementNode {
			if isBoilerplate(n) {
				continue
			}
			if candidateTags[n.Data] {
				if score := scoreNode(n); score > bestScore {
					best, bestScore = n, score
				}
			}
		}

		for c := n.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, c)
		}
	}

	if best == nil {
		return body
	}
	// a winning <p> is evidence for its enclosing block, not a region of
	// its own; sibling headings must stay in scope
	if best.Data == "p" && best.Parent != nil && best.Parent.Type == html.ElementNode {
		return doc.FindNodes(best.Parent)
	}
	return doc.FindNodes(best)
}

// scoreNode computes the content score of a single candidate subtree,
// skipping boilerplate descendants and penalizing each one it meets.
func scoreNode(root *html.Node) int {
	textLen := 0
	linkTextLen := 0
	markers := 0

	stack := []*html.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch n.Type {
		case html.TextNode:
			textLen += len(collapseWhitespace(n.Data))
			continue
		case html.ElementNode:
			if n != root && isBoilerplate(n) {
				markers++
				continue
			}
			if n.Data == "a" {
				linkTextLen += len(collapseWhitespace(elementText(n)))
				continue
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			stack = append(stack, c)
		}
	}

	return textLen - linkTextLen - markers*boilerplatePenalty
}

// elementText concatenates the text content of a subtree, iteratively.
func elementText(root *html.Node) string {
	var b strings.Builder
	stack := []*html.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
			continue
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			stack = append(stack, c)
		}
	}
	return b.String()
}

func isBoilerplate(n *html.Node) bool {
	if boilerplateTags[n.Data] {
		return true
	}
	for _, attr := range n.Attr {
		if attr.Key == "class" || attr.Key == "id" {
			if boilerplateHintRe.MatchString(attr.Val) {
				return true
			}
		}
	}
	return false
}
