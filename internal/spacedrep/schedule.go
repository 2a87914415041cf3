package spacedrep

// Review stages. StageMastered is terminal.
const (
	StageNew = iota
	StageLearning
	StageFamiliar
	StageKnown
	StageWellKnown
	StageMastered
)

// MaxStage is the highest stage a vocabulary item can reach.
const MaxStage = StageMastered

// MasteredInterval is the interval sentinel for mastered items: no further
// review is scheduled.
const MasteredInterval = -1

// masteredHorizonYears pushes a mastered item's next review far enough out
// that it never comes due again.
const masteredHorizonYears = 10

// IntervalDays is the review interval in days for each stage.
var IntervalDays = [MaxStage + 1]int{1, 3, 7, 14, 30, MasteredInterval}

var stageLabels = [MaxStage + 1]string{"New", "Learning", "Familiar", "Known", "Well-known", "Mastered"}

// LateAfterDays is how many whole days past its scheduled date a review may
// be attempted before it counts as late.
const LateAfterDays = 3

// ValidStage reports whether stage is in [0, MaxStage].
func ValidStage(stage int) bool {
	return stage >= StageNew && stage <= MaxStage
}

// IntervalDaysForStage returns the review interval for stage, or
// MasteredInterval for StageMastered. Out of range stages are treated as
// StageNew.
func IntervalDaysForStage(stage int) int {
	if !ValidStage(stage) {
		stage = StageNew
	}
	return IntervalDays[stage]
}

// StageLabel returns the display name of stage.
func StageLabel(stage int) string {
	if !ValidStage(stage) {
		stage = StageNew
	}
	return stageLabels[stage]
}
