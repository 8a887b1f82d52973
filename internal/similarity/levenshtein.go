package similarity

import (
	"math"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Distance returns the rune-level Levenshtein distance between a and b.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// LevenshteinSimilarity maps edit distance onto [0,100] relative to the longer
// string, rounded to two decimals. Two empty strings score 100; one empty
// string scores 0.
func LevenshteinSimilarity(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	switch {
	case la == 0 && lb == 0:
		return 100
	case la == 0 || lb == 0:
		return 0
	}

	maxLen := max(la, lb)
	d := Distance(a, b)
	return round2(float64(maxLen-d) / float64(maxLen) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
