// Package similarity scores how alike two documents are. Texts are normalized
// first, then scored with embedding cosine similarity when a provider is
// available and Levenshtein edit distance otherwise.
package similarity

import (
	"regexp"
	"strings"
)

// DefaultMaxComparisonLength bounds the runes compared per document.
const DefaultMaxComparisonLength = 5000

// space is RE2 \s widened with \v, U+FEFF, and the Unicode separators.
const space = `\s\v\x{FEFF}\p{Z}`

var (
	nonWord    = regexp.MustCompile(`[^\w` + space + `]+`)
	whitespace = regexp.MustCompile(`[` + space + `]+`)
)

// Normalize lowercases text, drops every character that is not an ASCII word
// character or whitespace, collapses whitespace runs to one space, and trims.
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	s := strings.ToLower(text)
	s = nonWord.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// OptimizeForComparison normalizes text and keeps at most maxLen runes.
// A non-positive maxLen uses DefaultMaxComparisonLength.
func OptimizeForComparison(text string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxComparisonLength
	}
	return truncate(Normalize(text), maxLen)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
