package vocab

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/clipvocab/internal/spacedrep"
	"github.com/abhisek/clipvocab/internal/store"
	"github.com/abhisek/clipvocab/internal/textmatch"
)

// strategyStrict names the verdict produced by ModeStrict grading.
const strategyStrict = "strict"

// Submission is one review answer.
type Submission struct {
	EntryID string `json:"entry_id"`
	Answer  string `json:"answer"`
}

// Result is the outcome of a review attempt.
type Result struct {
	EntryID       string                `json:"entry_id"`
	Correct       bool                  `json:"correct"`
	Late          bool                  `json:"late"`
	Verdict       textmatch.Verdict     `json:"verdict"`
	PreviousStage int                   `json:"previous_stage"`
	Stage         int                   `json:"stage"`
	StageLabel    string                `json:"stage_label"`
	ScheduledAt   time.Time             `json:"scheduled_at"`
	Reference     string                `json:"reference"`
	Feedback      []textmatch.WordDiff  `json:"feedback,omitempty"`
	Review        spacedrep.ReviewState `json:"review"`
}

// Submit grades an answer against the entry's reference sentence, advances
// or resets its schedule and records the attempt. A blank answer is
// incorrect without being graded.
func (s *Service) Submit(ctx context.Context, sub Submission, now time.Time) (*Result, error) {
	e, err := s.Get(ctx, sub.EntryID)
	if err != nil {
		return nil, err
	}

	ref := e.Reference()
	verdict := s.grade(sub.Answer, ref)
	late := spacedrep.IsReviewLate(e.Review.ScheduledAt, now)
	next := e.Review.Apply(spacedrep.ReviewOutcome{IsCorrect: verdict.Accepted}, now)

	err = s.vocab.RecordReview(ctx, e.ID, store.ReviewUpdate{
		FromStage:       e.Review.Stage,
		FromReviewCount: e.Review.ReviewCount,
		Stage:           next.Stage,
		ScheduledAt:     next.ScheduledAt,
		LastReviewedAt:  now,
		ReviewCount:     next.ReviewCount,
		CorrectCount:    next.CorrectCount,
	}, store.ReviewLogData{
		EntryID:    e.ID,
		Answer:     sub.Answer,
		Correct:    verdict.Accepted,
		Late:       late,
		Strategy:   verdict.Strategy,
		Score:      verdict.Score,
		FromStage:  e.Review.Stage,
		ToStage:    next.Stage,
		ReviewedAt: now,
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, ErrNotFound
	case errors.Is(err, store.ErrConflict):
		return nil, fmt.Errorf("%s: %w", e.ID, ErrConflict)
	case err != nil:
		return nil, fmt.Errorf("record review: %w", err)
	}

	s.logger.Info("review recorded",
		"id", e.ID,
		"correct", verdict.Accepted,
		"late", late,
		"strategy", verdict.Strategy,
		"from_stage", e.Review.Stage,
		"to_stage", next.Stage,
	)

	res := &Result{
		EntryID:       e.ID,
		Correct:       verdict.Accepted,
		Late:          late,
		Verdict:       verdict,
		PreviousStage: e.Review.Stage,
		Stage:         next.Stage,
		StageLabel:    spacedrep.StageLabel(next.Stage),
		ScheduledAt:   next.ScheduledAt,
		Reference:     ref,
		Review:        next,
	}
	if !verdict.Accepted {
		res.Feedback = textmatch.Feedback(sub.Answer, ref)
	}
	return res, nil
}

// SubmitBatch grades several answers concurrently. Results are returned in
// input order; the first error cancels the remaining work. An entry may
// appear only once per batch.
func (s *Service) SubmitBatch(ctx context.Context, subs []Submission, now time.Time) ([]*Result, error) {
	seen := make(map[string]int, len(subs))
	for i, sub := range subs {
		if j, ok := seen[sub.EntryID]; ok {
			return nil, fmt.Errorf("submissions %d and %d (%s): %w", j, i, sub.EntryID, ErrDuplicateSubmission)
		}
		seen[sub.EntryID] = i
	}

	results := make([]*Result, len(subs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.BatchConcurrency)
	for i, sub := range subs {
		g.Go(func() error {
			res, err := s.Submit(ctx, sub, now)
			if err != nil {
				return fmt.Errorf("submission %d (%s): %w", i, sub.EntryID, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Grade checks an answer against a reference without touching any entry.
func (s *Service) Grade(answer, reference string) textmatch.Verdict {
	return s.grade(answer, reference)
}

// GradeWithThreshold is Grade with a caller-chosen threshold. A threshold
// of zero or less uses the configured one.
func (s *Service) GradeWithThreshold(answer, reference string, threshold float64) textmatch.Verdict {
	if threshold <= 0 {
		threshold = s.cfg.Threshold
	}
	return s.gradeAt(answer, reference, threshold)
}

func (s *Service) grade(answer, ref string) textmatch.Verdict {
	return s.gradeAt(answer, ref, s.cfg.Threshold)
}

func (s *Service) gradeAt(answer, ref string, threshold float64) textmatch.Verdict {
	if strings.TrimSpace(answer) == "" {
		return textmatch.Verdict{}
	}
	if s.cfg.Mode == ModeStrict {
		score := textmatch.LevenshteinSimilarity(textmatch.NormalizeNoSpaces(answer), textmatch.NormalizeNoSpaces(ref))
		accepted := textmatch.AreStringsSimilar(answer, ref, threshold, true)
		v := textmatch.Verdict{
			Accepted: accepted,
			Score:    score,
			Attempts: []textmatch.Attempt{{Strategy: strategyStrict, Score: score, Passed: accepted}},
		}
		if accepted {
			v.Strategy = strategyStrict
		}
		return v
	}
	return textmatch.Grade(answer, ref, threshold)
}

// DueEntry is an entry waiting for review.
type DueEntry struct {
	*Entry
	Status      spacedrep.Status `json:"status"`
	OverdueDays float64          `json:"overdue_days"`
	Late        bool             `json:"late"`
}

// Due returns entries due at now, most overdue first. A limit of zero
// returns all of them.
func (s *Service) Due(ctx context.Context, now time.Time, limit int) ([]DueEntry, error) {
	recs, err := s.vocab.ListDue(ctx, now, spacedrep.StageMastered)
	if err != nil {
		return nil, fmt.Errorf("list due: %w", err)
	}

	byID := make(map[string]*Entry, len(recs))
	items := make([]spacedrep.DueItem, 0, len(recs))
	for i := range recs {
		e := entryFromRecord(&recs[i])
		byID[e.ID] = e
		items = append(items, spacedrep.DueItem{ID: e.ID, State: e.Review})
	}

	queue := spacedrep.DueQueue(items, now)
	if limit > 0 && len(queue) > limit {
		queue = queue[:limit]
	}

	due := make([]DueEntry, len(queue))
	for i, it := range queue {
		due[i] = DueEntry{
			Entry:       byID[it.ID],
			Status:      it.State.Status(now),
			OverdueDays: it.State.OverdueDays(now),
			Late:        spacedrep.IsReviewLate(it.State.ScheduledAt, now),
		}
	}
	return due, nil
}

// StageCount is the number of entries at one stage.
type StageCount struct {
	Stage int    `json:"stage"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Stats summarizes the collection.
type Stats struct {
	Total    int          `json:"total"`
	Stages   []StageCount `json:"stages"`
	Due      int          `json:"due"`
	Late     int          `json:"late"`
	Reviews  int          `json:"reviews"`
	Correct  int          `json:"correct"`
	Accuracy float64      `json:"accuracy"`
}

// Stats returns per-stage counts, how many entries are due and late at now,
// and lifetime accuracy.
func (s *Service) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	counts, err := s.vocab.StageCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("stage counts: %w", err)
	}
	totals, err := s.vocab.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("totals: %w", err)
	}
	due, err := s.Due(ctx, now, 0)
	if err != nil {
		return nil, err
	}

	st := &Stats{
		Total:   totals.Items,
		Stages:  make([]StageCount, 0, spacedrep.MaxStage+1),
		Due:     len(due),
		Reviews: totals.Reviews,
		Correct: totals.Correct,
	}
	for stage := spacedrep.StageNew; stage <= spacedrep.MaxStage; stage++ {
		st.Stages = append(st.Stages, StageCount{Stage: stage, Label: spacedrep.StageLabel(stage), Count: counts[stage]})
	}
	for _, d := range due {
		if d.Late {
			st.Late++
		}
	}
	if totals.Reviews > 0 {
		st.Accuracy = float64(totals.Correct) / float64(totals.Reviews)
	}
	return st, nil
}
