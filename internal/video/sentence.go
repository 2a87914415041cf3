package video

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

// cueRe matches non-speech caption cues such as [Music] or (applause).
var cueRe = regexp.MustCompile(`\[[^\]]*\]|\([^)]*\)|♪`)

// CleanLine strips caption cues and HTML entities from a transcript line and
// collapses whitespace.
func CleanLine(s string) string {
	s = html.UnescapeString(s)
	s = cueRe.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

func tokens(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\'' && r != '’'
	})
}

func containsSeq(haystack, needle []string) bool {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return false
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j, w := range needle {
			if haystack[i+j] != w {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// FindSentence returns the first transcript line that contains word (or
// every word of a phrase, in order) as whole tokens. Caption lines often
// break mid-phrase, so when no single line matches, adjacent pairs of lines
// are tried.
func FindSentence(lines []string, word string) (string, bool) {
	needle := tokens(word)
	if len(needle) == 0 {
		return "", false
	}

	cleaned := make([]string, 0, len(lines))
	for _, l := range lines {
		if c := CleanLine(l); c != "" {
			cleaned = append(cleaned, c)
		}
	}

	for _, line := range cleaned {
		if containsSeq(tokens(line), needle) {
			return line, true
		}
	}
	for i := 0; i+1 < len(cleaned); i++ {
		joined := cleaned[i] + " " + cleaned[i+1]
		if containsSeq(tokens(joined), needle) {
			return joined, true
		}
	}
	return "", false
}
