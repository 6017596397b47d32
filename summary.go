package pagelens

import (
	"sort"
	"strings"
)

// ExtractiveSummary builds a summary from the text itself: sentences are
// scored by position weight plus overlap with the document's top keywords,
// the best maxSentences are kept, and the selection is reassembled in
// original order capped to maxChars at a word boundary. The result is ""
// when the text has no sentences.
func ExtractiveSummary(text string, keywords []Keyword, maxSentences, maxChars int) string {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return ""
	}
	if maxSentences <= 0 {
		maxSentences = 3
	}

	keywordSet := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		keywordSet[k.Keyword] = true
	}

	type scored struct {
		index int
		score float64
	}
	ranked := make([]scored, len(sentences))
	for i, s := range sentences {
		// earlier sentences weigh more; keyword hits add on top
		score := 1.0 / float64(1+i)
		for _, w := range Tokenize(s) {
			if keywordSet[w] {
				score += 0.25
			}
		}
		ranked[i] = scored{index: i, score: score}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].index < ranked[j].index
	})

	if maxSentences > len(ranked) {
		maxSentences = len(ranked)
	}
	picked := make([]int, maxSentences)
	for i := 0; i < maxSentences; i++ {
		picked[i] = ranked[i].index
	}
	sort.Ints(picked)

	parts := make([]string, len(picked))
	for i, idx := range picked {
		parts[i] = sentences[idx]
	}
	summary := strings.Join(parts, " ")

	if maxChars > 0 && len(summary) > maxChars {
		summary = truncateAtWord(summary, maxChars)
	}
	return summary
}

// truncateAtWord shortens s to at most limit bytes, cutting at the last
// space before the limit when one exists.
func truncateAtWord(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := s[:limit]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " .,;:") + "…"
}
