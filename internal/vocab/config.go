package vocab

import "github.com/abhisek/clipvocab/internal/textmatch"

// GradingMode selects how review answers are graded.
type GradingMode string

const (
	// ModeStrict compares the answer with spaces and punctuation removed
	// using edit similarity only. It is the default.
	ModeStrict GradingMode = "strict"

	// ModeLenient runs the full strategy cascade.
	ModeLenient GradingMode = "lenient"
)

// DefaultBatchConcurrency bounds how many answers SubmitBatch grades at once.
const DefaultBatchConcurrency = 4

// Config holds review and capture settings.
type Config struct {
	Threshold        float64
	Mode             GradingMode
	Language         string
	TargetLanguage   string
	BatchConcurrency int
}

// DefaultConfig returns the default service configuration.
func DefaultConfig() Config {
	return Config{
		Threshold:        textmatch.DefaultThreshold,
		Mode:             ModeStrict,
		Language:         DefaultLanguage,
		TargetLanguage:   "es",
		BatchConcurrency: DefaultBatchConcurrency,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Threshold <= 0 {
		c.Threshold = d.Threshold
	}
	if c.Mode != ModeLenient {
		c.Mode = ModeStrict
	}
	if c.Language == "" {
		c.Language = d.Language
	}
	if c.TargetLanguage == "" {
		c.TargetLanguage = d.TargetLanguage
	}
	if c.BatchConcurrency <= 0 {
		c.BatchConcurrency = d.BatchConcurrency
	}
	return c
}
