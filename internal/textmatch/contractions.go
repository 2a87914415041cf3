package textmatch

import (
	"regexp"
	"sort"
	"strings"
)

// apostrophe matches the straight, curly and backtick apostrophes that show
// up in typed and transcribed text.
const apostrophe = "['’‘`]"

// contractions is the closed set of contractions that ExpandContractions
// rewrites. Keys use a straight apostrophe.
var contractions = map[string]string{
	"i'm":       "i am",
	"i'll":      "i will",
	"i've":      "i have",
	"i'd":       "i would",
	"you're":    "you are",
	"you'll":    "you will",
	"you've":    "you have",
	"you'd":     "you would",
	"he's":      "he is",
	"he'll":     "he will",
	"he'd":      "he would",
	"she's":     "she is",
	"she'll":    "she will",
	"she'd":     "she would",
	"it's":      "it is",
	"it'll":     "it will",
	"we're":     "we are",
	"we'll":     "we will",
	"we've":     "we have",
	"we'd":      "we would",
	"they're":   "they are",
	"they'll":   "they will",
	"they've":   "they have",
	"they'd":    "they would",
	"that's":    "that is",
	"there's":   "there is",
	"here's":    "here is",
	"what's":    "what is",
	"who's":     "who is",
	"where's":   "where is",
	"how's":     "how is",
	"let's":     "let us",
	"won't":     "will not",
	"can't":     "cannot",
	"don't":     "do not",
	"doesn't":   "does not",
	"didn't":    "did not",
	"isn't":     "is not",
	"aren't":    "are not",
	"wasn't":    "was not",
	"weren't":   "were not",
	"haven't":   "have not",
	"hasn't":    "has not",
	"hadn't":    "had not",
	"wouldn't":  "would not",
	"shouldn't": "should not",
	"couldn't":  "could not",
	"mustn't":   "must not",
	"ain't":     "is not",
	"y'all":     "you all",
}

var (
	contractionRe = buildContractionRe()

	// 's followed by an article or one of a handful of adjectives reads as
	// "is"; at the very end of the string it does too.
	ambiguousSBeforeRe = regexp.MustCompile(`\b(\w+)` + apostrophe + `s\s+(a|an|the|menace|cool|awesome|great|bad|good|nice)\b`)
	ambiguousSEndRe    = regexp.MustCompile(`\b(\w+)` + apostrophe + `s$`)

	apostropheRe = regexp.MustCompile(apostrophe)
)

func buildContractionRe() *regexp.Regexp {
	alts := make([]string, 0, len(contractions))
	for k := range contractions {
		alts = append(alts, strings.ReplaceAll(regexp.QuoteMeta(k), "'", apostrophe))
	}
	// Longest first so that alternation never prefers a shorter key.
	sort.Slice(alts, func(i, j int) bool {
		if len(alts[i]) != len(alts[j]) {
			return len(alts[i]) > len(alts[j])
		}
		return alts[i] < alts[j]
	})
	return regexp.MustCompile(`\b(?:` + strings.Join(alts, "|") + `)\b`)
}

// ExpandContractions lowercases s and expands the known contractions, then
// applies ResolveAmbiguousS to the remaining 's forms.
func ExpandContractions(s string) string {
	s = strings.ToLower(s)
	s = contractionRe.ReplaceAllStringFunc(s, func(m string) string {
		if full, ok := contractions[apostropheRe.ReplaceAllString(m, "'")]; ok {
			return full
		}
		return m
	})
	return ResolveAmbiguousS(s)
}

// ResolveAmbiguousS decides whether a trailing 's means "is" or marks a
// possessive. It is a small word-list heuristic: "X's" becomes "X is" when
// followed by a, an, the, menace, cool, awesome, great, bad, good or nice, or
// when it ends the string. Everything else is treated as possessive and left
// untouched.
func ResolveAmbiguousS(s string) string {
	s = ambiguousSBeforeRe.ReplaceAllString(s, "${1} is ${2}")
	return ambiguousSEndRe.ReplaceAllString(s, "${1} is")
}
