package pagelens

import (
	"regexp"
	"strings"
)

// TextStats holds word, sentence, and syllable counts for a text.
type TextStats struct {
	Words     int `json:"words"`
	Sentences int `json:"sentences"`
	Syllables int `json:"syllables"`
}

var (
	wordRe       = regexp.MustCompile(`[A-Za-z']{2,}`)
	vowelGroupRe = regexp.MustCompile(`[aeiouy]+`)
	nonLetterRe  = regexp.MustCompile(`[^a-z]`)
)

// abbreviations that a sentence terminator may legitimately follow
// without ending the sentence.
var abbreviations = map[string]bool{
	"mr": true, "mrs": true, "ms": true, "dr": true, "prof": true,
	"st": true, "vs": true, "etc": true, "no": true, "inc": true,
	"ltd": true, "jr": true, "sr": true, "e.g": true, "i.e": true,
	"eg": true, "ie": true, "fig": true, "al": true,
}

// Tokenize splits text into lowercase words of two or more letters.
func Tokenize(text string) []string {
	words := wordRe.FindAllString(strings.ToLower(text), -1)
	if words == nil {
		return []string{}
	}
	return words
}

// SplitSentences splits text on terminal punctuation (".", "!", "?") runs,
// ignoring terminators that directly follow a common abbreviation.
// Empty fragments are dropped; the result may be empty.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		current.WriteRune(r)

		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if r == '.' && isAbbreviation(current.String()) {
			continue
		}

		// consume the rest of the terminator run
		for i+1 < len(runes) && (runes[i+1] == '.' || runes[i+1] == '!' || runes[i+1] == '?') {
			i++
			current.WriteRune(runes[i])
		}

		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// isAbbreviation reports whether the text ends in a known abbreviation
// followed by the period that was just written.
func isAbbreviation(s string) bool {
	s = strings.TrimSuffix(s, ".")
	idx := strings.LastIndexFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '('
	})
	word := strings.ToLower(s[idx+1:])
	return abbreviations[word]
}

// CountSyllables estimates the syllable count of a single English word by
// counting vowel groups, subtracting a silent trailing "e", with a floor
// of one. Words of three letters or fewer count as one syllable.
func CountSyllables(word string) int {
	w := strings.ToLower(word)
	if len(w) <= 3 {
		return 1
	}
	w = nonLetterRe.ReplaceAllString(w, "")
	count := len(vowelGroupRe.FindAllString(w, -1))
	if strings.HasSuffix(w, "e") {
		count--
	}
	if count <= 0 {
		count = 1
	}
	return count
}

// AnalyzeText computes word, sentence, and syllable counts over text.
func AnalyzeText(text string) TextStats {
	words := Tokenize(text)
	syllables := 0
	for _, w := range words {
		syllables += CountSyllables(w)
	}
	return TextStats{
		Words:     len(words),
		Sentences: len(SplitSentences(text)),
		Syllables: syllables,
	}
}
