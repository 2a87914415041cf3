package vocab

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/clipvocab/internal/spacedrep"
	"github.com/abhisek/clipvocab/internal/store"
)

// DefaultLanguage is the stemming language for headword keys.
const DefaultLanguage = "english"

// Translator translates short text into a target language.
type Translator interface {
	Translate(ctx context.Context, text, target string) (string, error)
}

// VideoSource looks up the sentence a word was heard in.
type VideoSource interface {
	FindSentence(ctx context.Context, videoID, word string) (string, error)
	Title(ctx context.Context, videoID string) (string, error)
}

// Deps holds the collaborators of a Service. Vocab and Logs are required;
// the rest are optional.
type Deps struct {
	Vocab      store.VocabRepo
	Logs       store.ReviewLogRepo
	Translator Translator
	Videos     VideoSource
	Logger     *slog.Logger
}

// Service captures vocabulary and runs review attempts through the grader
// and the spaced repetition scheduler.
type Service struct {
	vocab      store.VocabRepo
	logs       store.ReviewLogRepo
	translator Translator
	videos     VideoSource
	logger     *slog.Logger
	cfg        Config
	newID      func() string
}

// NewService creates a vocabulary service.
func NewService(deps Deps, cfg Config) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		vocab:      deps.Vocab,
		logs:       deps.Logs,
		translator: deps.Translator,
		videos:     deps.Videos,
		logger:     logger.With("component", "vocab"),
		cfg:        cfg.withDefaults(),
		newID:      uuid.NewString,
	}
}

// CaptureInput describes a word the learner wants to keep.
type CaptureInput struct {
	Word        string `json:"word"`
	Sentence    string `json:"sentence"`
	Translation string `json:"translation"`
	VideoID     string `json:"video_id"`
}

// Capture stores a new entry scheduled for its first review one day after
// now. Missing sentence, video title and translation are filled in from the
// configured sources when available; lookup failures are logged and do not
// fail the capture.
func (s *Service) Capture(ctx context.Context, in CaptureInput, now time.Time) (*Entry, error) {
	word := strings.TrimSpace(in.Word)
	if word == "" {
		return nil, ErrBlankWord
	}

	key := HeadwordKey(word, s.cfg.Language)
	if key == "" {
		return nil, ErrBlankWord
	}
	if _, err := s.vocab.FindByKey(ctx, key); err == nil {
		return nil, fmt.Errorf("%q: %w", word, ErrDuplicate)
	} else if !store.IsNotFound(err) {
		return nil, fmt.Errorf("find headword: %w", err)
	}

	e := &Entry{
		ID:          s.newID(),
		Word:        word,
		Key:         key,
		Sentence:    strings.TrimSpace(in.Sentence),
		Translation: strings.TrimSpace(in.Translation),
		VideoID:     strings.TrimSpace(in.VideoID),
		CapturedAt:  now,
		Review:      spacedrep.NewReviewState(now),
	}

	if e.VideoID != "" && s.videos != nil {
		s.fillFromVideo(ctx, e)
	}
	if e.Translation == "" && s.translator != nil {
		tr, err := s.translator.Translate(ctx, word, s.cfg.TargetLanguage)
		if err != nil {
			s.logger.Warn("translation failed", "word", word, "error", err)
		} else {
			e.Translation = tr
		}
	}

	if err := s.vocab.Create(ctx, e.record()); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, fmt.Errorf("%q: %w", word, ErrDuplicate)
		}
		return nil, fmt.Errorf("create entry: %w", err)
	}

	s.logger.Info("captured", "id", e.ID, "word", e.Word, "key", e.Key, "scheduled_at", e.Review.ScheduledAt)
	return e, nil
}

func (s *Service) fillFromVideo(ctx context.Context, e *Entry) {
	if e.Sentence == "" {
		sentence, err := s.videos.FindSentence(ctx, e.VideoID, e.Word)
		if err != nil {
			s.logger.Warn("sentence lookup failed", "video_id", e.VideoID, "word", e.Word, "error", err)
		} else {
			e.Sentence = sentence
		}
	}
	title, err := s.videos.Title(ctx, e.VideoID)
	if err != nil {
		s.logger.Warn("video title lookup failed", "video_id", e.VideoID, "error", err)
		return
	}
	e.VideoTitle = title
}

// Get returns the entry with id.
func (s *Service) Get(ctx context.Context, id string) (*Entry, error) {
	rec, err := s.vocab.Get(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return entryFromRecord(rec), nil
}

// List returns entries newest first. A limit of zero lists everything.
func (s *Service) List(ctx context.Context, limit int) ([]*Entry, error) {
	recs, err := s.vocab.List(ctx, store.QueryOpts{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	entries := make([]*Entry, len(recs))
	for i := range recs {
		entries[i] = entryFromRecord(&recs[i])
	}
	return entries, nil
}

// Remove deletes an entry and its review history.
func (s *Service) Remove(ctx context.Context, id string) error {
	if err := s.vocab.Delete(ctx, id); err != nil {
		if store.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("remove entry: %w", err)
	}
	s.logger.Info("removed", "id", id)
	return nil
}

// History returns the review attempts recorded for an entry, oldest first.
func (s *Service) History(ctx context.Context, id string) ([]store.ReviewLogRecord, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	logs, err := s.logs.ListByEntry(ctx, id, store.QueryOpts{})
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return logs, nil
}

// TargetLanguage is the language captures are translated into.
func (s *Service) TargetLanguage() string {
	return s.cfg.TargetLanguage
}
