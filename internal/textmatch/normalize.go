// Package textmatch grades free-text and speech-transcribed answers against a
// reference sentence. It provides the normalization pipeline, edit-distance
// similarity, a token-level fallback matcher and the multi-strategy grader
// built on top of them.
//
// Every function in this package is pure and safe for concurrent use.
package textmatch

import (
	"regexp"
	"strings"
)

var (
	nonWordRe    = regexp.MustCompile(`[^\w\s]`)
	spaceRunRe   = regexp.MustCompile(`\s+`)
	misreadLLRe  = regexp.MustCompile("(['’‘`])II\\b")
	usedToVerbRe = regexp.MustCompile(`\bused to (make|do|have|be|get|take|give)\b`)
)

// NormalizeBasic lowercases s, strips everything that is not a word character
// or whitespace, collapses whitespace runs to a single space and trims.
func NormalizeBasic(s string) string {
	s = strings.ToLower(s)
	s = nonWordRe.ReplaceAllString(s, "")
	return collapseSpaces(s)
}

// NormalizeNoSpaces is NormalizeBasic with all whitespace removed. Comparing
// these forms ignores where word boundaries fall.
func NormalizeNoSpaces(s string) string {
	return strings.Join(strings.Fields(NormalizeBasic(s)), "")
}

// EnhancedNormalize is the normalization used by the primary grading
// strategy: mistyped contractions are repaired, contractions expanded,
// filler words dropped and the result passed through NormalizeBasic.
func EnhancedNormalize(s string) string {
	s = fixMistypedContractions(s)
	s = ExpandContractions(s)
	s = RemoveFillerWords(s)
	return NormalizeBasic(s)
}

// fixMistypedContractions repairs "I'II" style OCR/transcription errors where
// a capital I pair stands in for "ll".
func fixMistypedContractions(s string) string {
	return misreadLLRe.ReplaceAllString(s, "${1}ll")
}

// simplifyUsedTo rewrites "used to <verb>" to the bare verb.
func simplifyUsedTo(s string) string {
	return usedToVerbRe.ReplaceAllString(s, "$1")
}

func collapseSpaces(s string) string {
	return strings.TrimSpace(spaceRunRe.ReplaceAllString(s, " "))
}
