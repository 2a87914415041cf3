package textmatch

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// WordStatus classifies a word in answer feedback.
type WordStatus string

const (
	WordMatched     WordStatus = "matched"
	WordSoundsAlike WordStatus = "sounds-alike"
	WordMissing     WordStatus = "missing"
	WordExtra       WordStatus = "extra"
)

// WordDiff describes one word of the reference (or one extra word of the
// answer) and what the learner produced for it.
type WordDiff struct {
	Word   string     `json:"word"`
	Heard  string     `json:"heard,omitempty"`
	Status WordStatus `json:"status"`
}

// Feedback lines the answer up against the reference word by word for
// display. Words that were not matched but share a Double Metaphone code
// with an answer word are reported as sounds-alike, which usually points at
// a transcription slip rather than a wrong word. Feedback never affects a
// verdict.
func Feedback(user, ref string) []WordDiff {
	ut := strings.Fields(EnhancedNormalize(user))
	rt := strings.Fields(EnhancedNormalize(ref))

	used := make([]bool, len(ut))
	diffs := make([]WordDiff, 0, len(rt)+len(ut))
	for _, w := range rt {
		if j := firstMatch(w, ut, used); j >= 0 {
			used[j] = true
			diffs = append(diffs, WordDiff{Word: w, Heard: ut[j], Status: WordMatched})
			continue
		}
		if j := firstSoundAlike(w, ut, used); j >= 0 {
			used[j] = true
			diffs = append(diffs, WordDiff{Word: w, Heard: ut[j], Status: WordSoundsAlike})
			continue
		}
		diffs = append(diffs, WordDiff{Word: w, Status: WordMissing})
	}
	for j, w := range ut {
		if !used[j] {
			diffs = append(diffs, WordDiff{Word: w, Heard: w, Status: WordExtra})
		}
	}
	return diffs
}

func firstSoundAlike(w string, cands []string, used []bool) int {
	wp, ws := matchr.DoubleMetaphone(w)
	if wp == "" {
		return -1
	}
	for j, c := range cands {
		if used[j] {
			continue
		}
		cp, cs := matchr.DoubleMetaphone(c)
		if cp == wp || (ws != "" && cs == ws) || (cs != "" && cs == wp) {
			return j
		}
	}
	return -1
}
