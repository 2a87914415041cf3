package vocab

import (
	"regexp"
	"strings"
	"time"

	"github.com/kljensen/snowball"

	"github.com/abhisek/clipvocab/internal/spacedrep"
	"github.com/abhisek/clipvocab/internal/store"
)

// Entry is a captured word or phrase with the sentence it was heard in.
type Entry struct {
	ID          string                `json:"id"`
	Word        string                `json:"word"`
	Key         string                `json:"key"`
	Sentence    string                `json:"sentence"`
	Translation string                `json:"translation,omitempty"`
	VideoID     string                `json:"video_id,omitempty"`
	VideoTitle  string                `json:"video_title,omitempty"`
	CapturedAt  time.Time             `json:"captured_at"`
	Review      spacedrep.ReviewState `json:"review"`
}

// Reference is the text a review answer is graded against: the captured
// sentence, or the word itself when no sentence was captured.
func (e *Entry) Reference() string {
	if strings.TrimSpace(e.Sentence) != "" {
		return e.Sentence
	}
	return e.Word
}

// StageLabel returns the display name of the entry's review stage.
func (e *Entry) StageLabel() string {
	return spacedrep.StageLabel(e.Review.Stage)
}

var keySplitRe = regexp.MustCompile(`[^\p{L}\p{N}']+`)

// HeadwordKey folds word to the key used to detect duplicate captures:
// lowercased, split into tokens and each token stemmed in language. Tokens
// the stemmer rejects are kept as they are.
func HeadwordKey(word, language string) string {
	if language == "" {
		language = DefaultLanguage
	}
	var stems []string
	for _, tok := range keySplitRe.Split(strings.ToLower(word), -1) {
		tok = strings.Trim(tok, "'")
		if tok == "" {
			continue
		}
		stem, err := snowball.Stem(tok, language, false)
		if err != nil || stem == "" {
			stem = tok
		}
		stems = append(stems, stem)
	}
	return strings.Join(stems, " ")
}

func entryFromRecord(rec *store.VocabRecord) *Entry {
	return &Entry{
		ID:          rec.ID,
		Word:        rec.Word,
		Key:         rec.Key,
		Sentence:    rec.Sentence,
		Translation: rec.Translation,
		VideoID:     rec.VideoID,
		VideoTitle:  rec.VideoTitle,
		CapturedAt:  rec.CapturedAt,
		Review: spacedrep.ReviewState{
			Stage:          rec.Stage,
			ScheduledAt:    rec.ScheduledAt,
			LastReviewedAt: rec.LastReviewedAt,
			ReviewCount:    rec.ReviewCount,
			CorrectCount:   rec.CorrectCount,
		},
	}
}

func (e *Entry) record() *store.VocabRecord {
	return &store.VocabRecord{
		ID:             e.ID,
		Word:           e.Word,
		Key:            e.Key,
		Sentence:       e.Sentence,
		Translation:    e.Translation,
		VideoID:        e.VideoID,
		VideoTitle:     e.VideoTitle,
		CapturedAt:     e.CapturedAt,
		Stage:          e.Review.Stage,
		ScheduledAt:    e.Review.ScheduledAt,
		LastReviewedAt: e.Review.LastReviewedAt,
		ReviewCount:    e.Review.ReviewCount,
		CorrectCount:   e.Review.CorrectCount,
	}
}
