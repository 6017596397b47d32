package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagelens/pagelens"
)

const (
	maxParagraphs    = 50
	maxParagraphLen  = 2000
	maxArticleLinks  = 200
	headingSelectors = "h1, h2, h3, h4, h5, h6"
)

// ExtractArticle pulls article fields from the selected content region.
// It never fails: a region with no text yields empty sequences.
func ExtractArticle(doc *Document, region *goquery.Selection) *pagelens.ArticleData {
	art := &pagelens.ArticleData{
		MetaDescription: doc.Meta("description", "og:description"),
		Paragraphs:      []string{},
	}

	art.Title = strings.TrimSpace(region.Find("h1").First().Text())
	if art.Title == "" {
		art.Title = doc.Title()
	}

	region.Find(headingSelectors).Each(func(_ int, s *goquery.Selection) {
		text := collapseWhitespace(s.Text())
		if text == "" {
			return
		}
		art.Headings = append(art.Headings, pagelens.Heading{
			Tag:  goquery.NodeName(s),
			Text: text,
		})
	})

	seen := make(map[string]bool)
	region.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := collapseWhitespace(s.Text())
		if text == "" {
			return true
		}
		text = truncateBytes(text, maxParagraphLen)
		if seen[text] {
			return true
		}
		seen[text] = true
		art.Paragraphs = append(art.Paragraphs, text)
		return len(art.Paragraphs) < maxParagraphs
	})

	// pages without <p> structure still carry text worth analyzing
	if len(art.Paragraphs) == 0 {
		if text := collapseWhitespace(region.Text()); text != "" {
			art.Paragraphs = append(art.Paragraphs, truncateBytes(text, maxParagraphLen))
		}
	}

	region.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if href == "" {
			return true
		}
		art.Links = append(art.Links, href)
		return len(art.Links) < maxArticleLinks
	})

	art.Stats = pagelens.AnalyzeText(art.AnalysisText())
	return art
}

// truncateBytes caps s at n bytes without splitting a UTF-8 sequence.
func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
