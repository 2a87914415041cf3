package spacedrep

import (
	"math"
	"sort"
	"time"
)

// Status describes when an item comes up for review relative to now.
type Status string

const (
	StatusLate     Status = "late"
	StatusDue      Status = "due"
	StatusUpcoming Status = "upcoming"
)

const day = 24 * time.Hour

// IsReviewLate reports whether a review attempted at now is more than
// LateAfterDays whole days past scheduledAt.
func IsReviewLate(scheduledAt, now time.Time) bool {
	return wholeDays(now.Sub(scheduledAt)) > LateAfterDays
}

// NextStage returns the stage after a review. A wrong answer or a late one
// resets to StageNew; otherwise the stage advances by one, capped at
// StageMastered. An out of range current stage is treated as StageNew.
func NextStage(current int, isCorrect, isLate bool) int {
	if !ValidStage(current) {
		current = StageNew
	}
	if !isCorrect || isLate {
		return StageNew
	}
	return min(current+1, MaxStage)
}

// ComputeNextReviewDate returns when an item at stage should next be
// reviewed, counting calendar days from from. Mastered items are pushed ten
// years out.
func ComputeNextReviewDate(from time.Time, stage int) time.Time {
	interval := IntervalDaysForStage(stage)
	if interval == MasteredInterval {
		return from.AddDate(masteredHorizonYears, 0, 0)
	}
	return from.AddDate(0, 0, interval)
}

// ReviewStatus classifies next against now by the floored day difference.
// An item overdue by even a few hours floors to -1 and is late.
func ReviewStatus(next, now time.Time) Status {
	switch diff := wholeDays(next.Sub(now)); {
	case diff < 0:
		return StatusLate
	case diff == 0:
		return StatusDue
	default:
		return StatusUpcoming
	}
}

// Transition runs one review through the stage machine and returns the new
// stage and the new scheduled time, both derived from now.
func Transition(stage int, scheduledAt time.Time, isCorrect bool, now time.Time) (int, time.Time) {
	late := IsReviewLate(scheduledAt, now)
	next := NextStage(stage, isCorrect, late)
	return next, ComputeNextReviewDate(now, next)
}

// DueItem pairs an item ID with its review state for queue ordering.
type DueItem struct {
	ID    string
	State ReviewState
}

// DueQueue returns the items that are due at now, sorted by most overdue
// first with ties broken by ID.
func DueQueue(items []DueItem, now time.Time) []DueItem {
	var due []DueItem
	for _, it := range items {
		if it.State.IsDue(now) {
			due = append(due, it)
		}
	}

	sort.Slice(due, func(i, j int) bool {
		oi, oj := due[i].State.OverdueDays(now), due[j].State.OverdueDays(now)
		if oi != oj {
			return oi > oj
		}
		return due[i].ID < due[j].ID
	})
	return due
}

func wholeDays(d time.Duration) int {
	return int(math.Floor(float64(d) / float64(day)))
}
