package textmatch

import (
	"regexp"
	"strings"
)

const simplifiedShortCircuit = 0.8

var (
	usedToBasicRe = regexp.MustCompile(`\bused to (make|do|be|have)\b`)
	crudeSuffixRe = regexp.MustCompile(`(s|ed|ing|es|d)$`)
)

// phraseEquivalents maps a past-tense verb to multi-word phrasings that mean
// the same thing in casual speech.
var phraseEquivalents = map[string][][]string{
	"made": {{"used", "to", "make"}, {"would", "make"}},
	"did":  {{"used", "to", "do"}, {"would", "do"}},
	"had":  {{"used", "to", "have"}, {"would", "have"}},
	"got":  {{"used", "to", "get"}, {"would", "get"}},
	"took": {{"used", "to", "take"}, {"would", "take"}},
	"gave": {{"used", "to", "give"}, {"would", "give"}},
}

// WordLevelSimilarity is a forgiving token-alignment score in [0, 1]. Tokens
// match when identical, when one is "a" and the other "the", when their
// crude stems agree, or through a small phrase-equivalence table. It is a
// fallback signal, never the primary one.
func WordLevelSimilarity(a, b string) float64 {
	ta, tb := tokenize(a), tokenize(b)
	if len(ta) == 0 && len(tb) == 0 {
		return 1
	}
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	la, lb := strings.ToLower(a), strings.ToLower(b)
	sa, sb := usedToBasicRe.ReplaceAllString(la, "$1"), usedToBasicRe.ReplaceAllString(lb, "$1")
	if sa != la || sb != lb {
		if score := overlapScore(tokenize(sa), tokenize(sb)); score >= simplifiedShortCircuit {
			return score
		}
	}

	matches := alignTokens(ta, tb)
	return min(float64(matches)/(float64(len(ta)+len(tb))/2), 1)
}

func tokenize(s string) []string {
	return strings.Fields(strings.ToLower(s))
}

// overlapScore is the multiset intersection over the multiset union.
func overlapScore(ta, tb []string) float64 {
	counts := make(map[string]int, len(tb))
	for _, t := range tb {
		counts[t]++
	}
	matches := 0
	for _, t := range ta {
		if counts[t] > 0 {
			counts[t]--
			matches++
		}
	}
	union := len(ta) + len(tb) - matches
	if union == 0 {
		return 1
	}
	return float64(matches) / float64(union)
}

// alignTokens greedily pairs every token of ta with the first unused token
// of tb it matches and returns the number of pairs.
func alignTokens(ta, tb []string) int {
	used := make([]bool, len(tb))
	matches := 0
	for i := 0; i < len(ta); {
		if j := firstMatch(ta[i], tb, used); j >= 0 {
			used[j] = true
			matches++
			i++
			continue
		}
		if span, ok := matchEquivalentPhrase(ta[i:], tb, used); ok {
			matches++
			i += span
			continue
		}
		i++
	}
	return matches
}

func firstMatch(tok string, tb []string, used []bool) int {
	for j, cand := range tb {
		if !used[j] && tokensMatch(tok, cand) {
			return j
		}
	}
	return -1
}

// matchEquivalentPhrase tries the phrase table in both directions: the head
// of rest is a verb whose phrasing appears in tb, or the head of rest is a
// phrasing of a verb that appears in tb. It reports how many tokens of rest
// were consumed.
func matchEquivalentPhrase(rest, tb []string, used []bool) (int, bool) {
	if phrases, ok := phraseEquivalents[rest[0]]; ok {
		for _, p := range phrases {
			if j := findPhrase(tb, used, p); j >= 0 {
				for k := range p {
					used[j+k] = true
				}
				return 1, true
			}
		}
	}
	for verb, phrases := range phraseEquivalents {
		for _, p := range phrases {
			if !hasPrefix(rest, p) {
				continue
			}
			for j, cand := range tb {
				if !used[j] && cand == verb {
					used[j] = true
					return len(p), true
				}
			}
		}
	}
	return 0, false
}

func findPhrase(tb []string, used []bool, phrase []string) int {
	for j := 0; j+len(phrase) <= len(tb); j++ {
		ok := true
		for k, w := range phrase {
			if used[j+k] || tb[j+k] != w {
				ok = false
				break
			}
		}
		if ok {
			return j
		}
	}
	return -1
}

func hasPrefix(tokens, prefix []string) bool {
	if len(tokens) < len(prefix) {
		return false
	}
	for i, w := range prefix {
		if tokens[i] != w {
			return false
		}
	}
	return true
}

func tokensMatch(x, y string) bool {
	if x == y {
		return true
	}
	if (x == "a" && y == "the") || (x == "the" && y == "a") {
		return true
	}
	sx, sy := crudeStem(x), crudeStem(y)
	return sx == sy && len(sx) > 2
}

// crudeStem strips a single inflectional suffix. It is deliberately naive.
func crudeStem(w string) string {
	return crudeSuffixRe.ReplaceAllString(w, "")
}
