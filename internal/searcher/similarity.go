package searcher

import (
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// Similarity returns a normalized edit-distance similarity in [0, 1].
// Equal strings score 1; a comparison against an empty string scores 0.
// The comparison is case-sensitive; callers lower-case both sides.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}

	distance := edlib.LevenshteinDistance(a, b)
	return 1 - float64(distance)/float64(maxLen)
}
