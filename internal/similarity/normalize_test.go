package similarity_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/JaimeStill/docmatrix/internal/similarity"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"lowercase", "The Quick BROWN Fox", "the quick brown fox"},
		{"whitespace runs", "  hello \t\n  world  ", "hello world"},
		{"punctuation", "Hello, world! It's 2024.", "hello world its 2024"},
		{"punctuation between spaces", "a . b", "a b"},
		{"underscore kept", "snake_case", "snake_case"},
		{"non-ascii letters dropped", "café naïve", "caf nave"},
		{"unicode space", "a b c", "a b c"},
		{"vertical tab", "a\vb", "a b"},
		{"byte order mark", "a\ufeffb", "a b"},
		{"only symbols", "!!! ??? ...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, similarity.Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"The quick brown fox",
		"  Mixed\tCASE -- with ... punctuation!  ",
		"a . b , c",
		"tabs\t\tand\nnewlines\r\n",
		"ünïcödé ☃ text here",
		"",
	}

	for _, in := range inputs {
		once := similarity.Normalize(in)
		assert.Equal(t, once, similarity.Normalize(once), "input %q", in)
	}
}

func TestOptimizeForComparison(t *testing.T) {
	long := strings.Repeat("ab ", 3000)

	got := similarity.OptimizeForComparison(long, 0)
	assert.Equal(t, similarity.DefaultMaxComparisonLength, utf8.RuneCountInString(got))

	assert.Equal(t, "hello", similarity.OptimizeForComparison("Hello, World", 5))
	assert.Equal(t, "short", similarity.OptimizeForComparison("Short", 100))
	assert.Equal(t, "", similarity.OptimizeForComparison("", 10))
}
