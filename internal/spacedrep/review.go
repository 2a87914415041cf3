package spacedrep

import "time"

// ReviewState holds the spaced repetition state for a single vocabulary
// item.
type ReviewState struct {
	Stage          int        `json:"stage"`
	ScheduledAt    time.Time  `json:"scheduled_at"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
	ReviewCount    int        `json:"review_count"`
	CorrectCount   int        `json:"correct_count"`
}

// ReviewOutcome is the graded result of one review attempt.
type ReviewOutcome struct {
	IsCorrect bool `json:"is_correct"`
}

// NewReviewState returns the state of a freshly captured item: stage 0, due
// one day after now.
func NewReviewState(now time.Time) ReviewState {
	return ReviewState{
		Stage:       StageNew,
		ScheduledAt: ComputeNextReviewDate(now, StageNew),
	}
}

// Apply returns the state after a review attempt at now. The receiver is
// not modified.
func (rs ReviewState) Apply(outcome ReviewOutcome, now time.Time) ReviewState {
	rs.Stage, rs.ScheduledAt = Transition(rs.Stage, rs.ScheduledAt, outcome.IsCorrect, now)
	reviewed := now
	rs.LastReviewedAt = &reviewed
	rs.ReviewCount++
	if outcome.IsCorrect {
		rs.CorrectCount++
	}
	return rs
}

// IsDue returns true if the item is due for review (at or past the scheduled
// date). Mastered items are never due.
func (rs ReviewState) IsDue(now time.Time) bool {
	return rs.Stage != StageMastered && !now.Before(rs.ScheduledAt)
}

// IsMastered reports whether the item reached the terminal stage.
func (rs ReviewState) IsMastered() bool {
	return rs.Stage == StageMastered
}

// OverdueDays returns how many days past due the item is. Returns 0 if not
// yet due.
func (rs ReviewState) OverdueDays(now time.Time) float64 {
	if now.Before(rs.ScheduledAt) {
		return 0
	}
	return now.Sub(rs.ScheduledAt).Hours() / 24.0
}

// Status returns the review status for display.
func (rs ReviewState) Status(now time.Time) Status {
	return ReviewStatus(rs.ScheduledAt, now)
}

// Accuracy is the lifetime share of correct answers, 0 before the first
// review.
func (rs ReviewState) Accuracy() float64 {
	if rs.ReviewCount == 0 {
		return 0
	}
	return float64(rs.CorrectCount) / float64(rs.ReviewCount)
}
