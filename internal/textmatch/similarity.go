package textmatch

import (
	"unicode/utf8"

	"github.com/adrg/strutil/metrics"
)

// levenshtein uses unit costs and compares case-sensitively; callers
// normalize first.
var levenshtein = metrics.NewLevenshtein()

// LevenshteinDistance returns the edit distance between a and b counted in
// runes, with insertions, deletions and substitutions each costing 1.
func LevenshteinDistance(a, b string) int {
	if a == "" {
		return utf8.RuneCountInString(b)
	}
	if b == "" {
		return utf8.RuneCountInString(a)
	}
	return levenshtein.Distance(a, b)
}

// LevenshteinSimilarity maps the edit distance onto [0, 1]:
// 1 - distance/max(len(a), len(b)). Two empty strings are identical.
func LevenshteinSimilarity(a, b string) float64 {
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(LevenshteinDistance(a, b))/float64(maxLen)
}
