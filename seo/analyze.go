// Package seo scores extracted article content against a small set of
// on-page SEO heuristics: keyword density, Flesch readability, and
// actionable suggestions.
package seo

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pagelens/pagelens"
)

const (
	minTitleLen = 10
	maxTitleLen = 60

	minDescriptionLen = 50
	maxDescriptionLen = 160

	// synthesized descriptions target the 150-160 character window
	descriptionTarget = 160

	maxKeywordDensity  = 3.0
	maxAvgSentenceLen  = 25.0
	fleschBase         = 206.835
	fleschSentenceTerm = 1.015
	fleschSyllableTerm = 84.6
)

// Analyze computes the SEO view of an extracted article: top keywords by
// frequency, readability, and improvement suggestions. Degraded inputs
// (no meta description, nothing to score) produce caveats, never errors.
func Analyze(article *pagelens.ArticleData, cfg pagelens.Config) (*pagelens.SEOResult, []string) {
	var caveats []string

	result := &pagelens.SEOResult{
		Title:           article.Title,
		MetaDescription: article.MetaDescription,
		Headings:        article.Headings,
	}

	text := article.AnalysisText()

	if result.MetaDescription == "" {
		result.MetaDescription = synthesizeDescription(text)
		if result.MetaDescription != "" {
			caveats = append(caveats, "meta description missing: synthesized from content")
		}
	}

	result.TopKeywords = TopKeywords(text, cfg.StopWordSet(), cfg.TopKeywords)

	result.Readability = readability(article.Stats)
	if result.Readability.FleschReadingEase == nil {
		caveats = append(caveats, "document has no scorable text")
	}

	result.Suggestions = suggestions(article, result)

	return result, caveats
}

// TopKeywords counts non-stopword tokens in text and returns the top n by
// count. Ties are broken by first occurrence in the text. Density is the
// share of all tokens, in percent, rounded to two decimals.
func TopKeywords(text string, stopWords map[string]bool, n int) []pagelens.Keyword {
	tokens := pagelens.Tokenize(text)
	if len(tokens) == 0 || n <= 0 {
		return nil
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, tok := range tokens {
		if stopWords[tok] {
			continue
		}
		if _, ok := counts[tok]; !ok {
			firstSeen[tok] = i
		}
		counts[tok]++
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return firstSeen[words[i]] < firstSeen[words[j]]
	})

	if len(words) > n {
		words = words[:n]
	}

	total := float64(len(tokens))
	keywords := make([]pagelens.Keyword, len(words))
	for i, w := range words {
		keywords[i] = pagelens.Keyword{
			Keyword: w,
			Count:   counts[w],
			Density: math.Round(float64(counts[w])/total*10000) / 100,
		}
	}
	return keywords
}

// readability converts raw counts to a Flesch Reading Ease score. The
// score is nil when the text has no words or no sentences.
func readability(stats pagelens.TextStats) pagelens.Readability {
	r := pagelens.Readability{
		Sentences: stats.Sentences,
		Words:     stats.Words,
		Syllables: stats.Syllables,
	}
	if stats.Words == 0 || stats.Sentences == 0 {
		return r
	}
	score := fleschBase -
		fleschSentenceTerm*(float64(stats.Words)/float64(stats.Sentences)) -
		fleschSyllableTerm*(float64(stats.Syllables)/float64(stats.Words))
	r.FleschReadingEase = &score
	return r
}

func suggestions(article *pagelens.ArticleData, result *pagelens.SEOResult) []string {
	var out []string

	if n := utf8.RuneCountInString(result.Title); n < minTitleLen || n > maxTitleLen {
		out = append(out, fmt.Sprintf(
			"title length %d is outside the recommended %d-%d character range",
			n, minTitleLen, maxTitleLen))
	}

	switch n := utf8.RuneCountInString(article.MetaDescription); {
	case n == 0:
		out = append(out, "add a meta description")
	case n < minDescriptionLen:
		out = append(out, fmt.Sprintf(
			"meta description is %d characters: expand it to at least %d",
			n, minDescriptionLen))
	case n > maxDescriptionLen:
		out = append(out, fmt.Sprintf(
			"meta description is %d characters: shorten it to at most %d",
			n, maxDescriptionLen))
	}

	if len(result.TopKeywords) > 0 {
		if top := result.TopKeywords[0]; top.Density > maxKeywordDensity {
			out = append(out, fmt.Sprintf(
				"keyword %q density is %.2f%%: reduce repetition below %.0f%%",
				top.Keyword, top.Density, maxKeywordDensity))
		}
	}

	if !hasH1(article.Headings) {
		out = append(out, "add an h1 heading")
	}

	if stats := article.Stats; stats.Sentences > 0 {
		avg := float64(stats.Words) / float64(stats.Sentences)
		if avg > maxAvgSentenceLen {
			out = append(out, fmt.Sprintf(
				"average sentence length is %.1f words: break up long sentences",
				avg))
		}
	}

	return out
}

func hasH1(headings []pagelens.Heading) bool {
	for _, h := range headings {
		if h.Tag == "h1" {
			return true
		}
	}
	return false
}

// synthesizeDescription builds a meta description from the opening of the
// document text, cut at a word boundary near the target length.
func synthesizeDescription(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if len(text) <= descriptionTarget {
		return text
	}
	cut := text[:descriptionTarget]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " .,;:") + "…"
}
