package textmatch

import (
	"regexp"
	"strings"
)

// fillerWords are dropped before grading. Multi-word phrases come first so
// the alternation prefers them.
var fillerWords = []string{
	"you know", "i mean", "sort of", "kind of",
	"oh", "ah", "um", "uh", "er", "hmm", "well", "like",
	"actually", "basically", "hey", "okay", "ok", "alright", "right",
}

var (
	fillerAlt = strings.Join(fillerWords, "|")

	lineDashRe       = regexp.MustCompile(`(?m)^[ \t]*[-–—]+[ \t]*`)
	dialogueMarkerRe = regexp.MustCompile(`\s+[-–—]+\s*(\p{Lu})`)
	leadingFillerRe  = regexp.MustCompile(`^(?:(?:` + fillerAlt + `)\b[\s,.!?;:…]*)+`)
	fillerTokenRe    = regexp.MustCompile(`\b(?:` + fillerAlt + `)\b[,.!?;:…]?`)
)

// RemoveFillerWords strips subtitle dialogue dashes and casual filler words
// ("um", "you know", "basically", ...) so they don't count against an
// answer. The result is lowercased with whitespace collapsed.
func RemoveFillerWords(s string) string {
	s = lineDashRe.ReplaceAllString(s, "")
	s = dialogueMarkerRe.ReplaceAllString(s, " $1")
	s = strings.ToLower(strings.TrimSpace(s))
	s = leadingFillerRe.ReplaceAllString(s, "")
	s = fillerTokenRe.ReplaceAllString(s, "")
	return collapseSpaces(s)
}
