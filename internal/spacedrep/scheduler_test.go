package spacedrep

import (
	"testing"
	"time"
)

func TestIsReviewLate(t *testing.T) {
	scheduled := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before schedule", scheduled.Add(-48 * time.Hour), false},
		{"on schedule", scheduled, false},
		{"exactly three days", scheduled.Add(3 * day), false},
		{"three days and 23 hours", scheduled.Add(3*day + 23*time.Hour), false},
		{"exactly four days", scheduled.Add(4 * day), true},
		{"five days", scheduled.Add(5 * day), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsReviewLate(scheduled, tt.now); got != tt.want {
				t.Errorf("IsReviewLate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNextStage_ResetOnWrongOrLate(t *testing.T) {
	for s := StageNew; s <= MaxStage; s++ {
		if got := NextStage(s, false, false); got != 0 {
			t.Errorf("NextStage(%d, false, false) = %d, want 0", s, got)
		}
		if got := NextStage(s, false, true); got != 0 {
			t.Errorf("NextStage(%d, false, true) = %d, want 0", s, got)
		}
		if got := NextStage(s, true, true); got != 0 {
			t.Errorf("NextStage(%d, true, true) = %d, want 0", s, got)
		}
	}
}

func TestNextStage_Advance(t *testing.T) {
	for s := StageNew; s <= MaxStage; s++ {
		want := min(s+1, 5)
		if got := NextStage(s, true, false); got != want {
			t.Errorf("NextStage(%d, true, false) = %d, want %d", s, got, want)
		}
	}
}

func TestNextStage_OutOfRange(t *testing.T) {
	if got := NextStage(-3, true, false); got != 1 {
		t.Errorf("NextStage(-3, true, false) = %d, want 1", got)
	}
	if got := NextStage(9, true, false); got != 1 {
		t.Errorf("NextStage(9, true, false) = %d, want 1", got)
	}
	if got := NextStage(9, false, false); got != 0 {
		t.Errorf("NextStage(9, false, false) = %d, want 0", got)
	}
}

func TestComputeNextReviewDate(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		stage int
		want  time.Time
	}{
		{StageNew, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{StageLearning, time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)},
		{StageFamiliar, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)},
		{StageKnown, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{StageWellKnown, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)},
		{StageMastered, time.Date(2034, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		if got := ComputeNextReviewDate(from, tt.stage); !got.Equal(tt.want) {
			t.Errorf("ComputeNextReviewDate(%v, %d) = %v, want %v", from, tt.stage, got, tt.want)
		}
	}
}

func TestReviewStatus(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		next time.Time
		want Status
	}{
		{"one day ago", now.Add(-day), StatusLate},
		{"twelve hours ago", now.Add(-12 * time.Hour), StatusLate},
		{"now", now, StatusDue},
		{"in twelve hours", now.Add(12 * time.Hour), StatusDue},
		{"in a day", now.Add(day), StatusUpcoming},
		{"in a week", now.Add(7 * day), StatusUpcoming},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReviewStatus(tt.next, now); got != tt.want {
				t.Errorf("ReviewStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTransition(t *testing.T) {
	now := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		stage     int
		scheduled time.Time
		correct   bool
		wantStage int
		wantNext  time.Time
	}{
		{"correct on time", StageFamiliar, now.Add(-day), true, StageKnown, now.AddDate(0, 0, 14)},
		{"correct but late", StageFamiliar, now.Add(-5 * day), true, StageNew, now.AddDate(0, 0, 1)},
		{"wrong", StageWellKnown, now, false, StageNew, now.AddDate(0, 0, 1)},
		{"early review still advances", StageNew, now.Add(12 * time.Hour), true, StageLearning, now.AddDate(0, 0, 3)},
		{"reaching mastered", StageWellKnown, now, true, StageMastered, now.AddDate(10, 0, 0)},
		{"mastered stays mastered", StageMastered, now, true, StageMastered, now.AddDate(10, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stage, next := Transition(tt.stage, tt.scheduled, tt.correct, now)
			if stage != tt.wantStage {
				t.Errorf("stage = %d, want %d", stage, tt.wantStage)
			}
			if !next.Equal(tt.wantNext) {
				t.Errorf("next = %v, want %v", next, tt.wantNext)
			}
		})
	}
}

func TestDueQueue(t *testing.T) {
	now := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	items := []DueItem{
		{ID: "b", State: ReviewState{Stage: StageLearning, ScheduledAt: now.Add(-day)}},
		{ID: "future", State: ReviewState{Stage: StageLearning, ScheduledAt: now.Add(day)}},
		{ID: "a", State: ReviewState{Stage: StageNew, ScheduledAt: now.Add(-day)}},
		{ID: "oldest", State: ReviewState{Stage: StageKnown, ScheduledAt: now.Add(-10 * day)}},
		{ID: "mastered", State: ReviewState{Stage: StageMastered, ScheduledAt: now.Add(-30 * day)}},
		{ID: "now", State: ReviewState{Stage: StageNew, ScheduledAt: now}},
	}

	got := DueQueue(items, now)
	want := []string{"oldest", "a", "b", "now"}
	if len(got) != len(want) {
		t.Fatalf("DueQueue() returned %d items, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("DueQueue()[%d] = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestDueQueue_Empty(t *testing.T) {
	if got := DueQueue(nil, time.Now()); len(got) != 0 {
		t.Errorf("DueQueue(nil) = %v, want empty", got)
	}
}
