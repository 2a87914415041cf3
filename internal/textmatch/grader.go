package textmatch

import "strings"

// DefaultThreshold is the similarity an answer must reach when the caller
// does not choose one.
const DefaultThreshold = 0.85

const (
	// closeScore gates the word-level fallback: it only runs once an earlier
	// strategy came at least this close.
	closeScore = 0.7

	// wordLevelThreshold is fixed and independent of the caller threshold.
	wordLevelThreshold = 0.8
)

// Strategy names, in default evaluation order.
const (
	StrategyEnhanced    = "enhanced"
	StrategyUsedTo      = "used-to"
	StrategyWordLevel   = "word-level"
	StrategyCoreContent = "core-content"
)

// Strategy is one way of scoring an answer. Score receives both strings
// already passed through EnhancedNormalize.
type Strategy struct {
	Name  string
	Score func(user, ref string) float64

	// MinScore replaces the caller's threshold when non-zero.
	MinScore float64

	// Requires skips the strategy unless an earlier one scored at least this
	// much. Zero means always run.
	Requires float64
}

// Attempt records how a single strategy fared.
type Attempt struct {
	Strategy string  `json:"strategy"`
	Score    float64 `json:"score"`
	Passed   bool    `json:"passed"`
	Skipped  bool    `json:"skipped,omitempty"`
}

// Verdict is the outcome of grading one answer.
type Verdict struct {
	Accepted bool `json:"accepted"`

	// Strategy is the name of the strategy that accepted the answer, empty
	// when it was rejected.
	Strategy string `json:"strategy,omitempty"`

	// Score is the accepting score, or the best score seen on rejection.
	Score float64 `json:"score"`

	Attempts []Attempt `json:"attempts"`
}

// Grader evaluates an ordered list of strategies and accepts on the first
// one that passes.
type Grader struct {
	strategies []Strategy
}

// NewGrader creates a Grader that runs strategies in the given order.
func NewGrader(strategies ...Strategy) *Grader {
	return &Grader{strategies: strategies}
}

// DefaultStrategies returns the standard cascade: enhanced similarity,
// "used to" simplification, gated word-level fallback, then core content.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Name: StrategyEnhanced, Score: LevenshteinSimilarity},
		{Name: StrategyUsedTo, Score: usedToScore},
		{Name: StrategyWordLevel, Score: WordLevelSimilarity, MinScore: wordLevelThreshold, Requires: closeScore},
		{Name: StrategyCoreContent, Score: coreContentScore},
	}
}

var defaultGrader = NewGrader(DefaultStrategies()...)

// Grade runs the grader's strategies against the answer.
func (g *Grader) Grade(user, ref string, threshold float64) Verdict {
	threshold = effectiveThreshold(threshold)
	u, r := EnhancedNormalize(user), EnhancedNormalize(ref)

	v := Verdict{Attempts: make([]Attempt, 0, len(g.strategies))}
	for _, s := range g.strategies {
		if s.Requires > 0 && v.Score < s.Requires {
			v.Attempts = append(v.Attempts, Attempt{Strategy: s.Name, Skipped: true})
			continue
		}

		need := threshold
		if s.MinScore > 0 {
			need = s.MinScore
		}
		score := s.Score(u, r)
		passed := score >= need
		v.Attempts = append(v.Attempts, Attempt{Strategy: s.Name, Score: score, Passed: passed})

		if passed {
			v.Accepted = true
			v.Strategy = s.Name
			v.Score = score
			return v
		}
		v.Score = max(v.Score, score)
	}
	return v
}

// Grade grades with the default strategies.
func Grade(user, ref string, threshold float64) Verdict {
	return defaultGrader.Grade(user, ref, threshold)
}

// IsAnswerAcceptable reports whether user is an acceptable rendering of ref,
// tolerating transcription noise, contractions, filler words and small
// phrasing differences.
func IsAnswerAcceptable(user, ref string, threshold float64) bool {
	return defaultGrader.Grade(user, ref, threshold).Accepted
}

// AreStringsSimilar is the strict check used for the "type the sentence you
// heard" flow: optionally NormalizeNoSpaces both sides, then compare edit
// similarity against threshold.
func AreStringsSimilar(a, b string, threshold float64, normalize bool) bool {
	if normalize {
		a, b = NormalizeNoSpaces(a), NormalizeNoSpaces(b)
	}
	return LevenshteinSimilarity(a, b) >= effectiveThreshold(threshold)
}

// MatchCandidate bundles an answer, its reference and the threshold to grade
// it with.
type MatchCandidate struct {
	User      string
	Reference string
	Threshold float64
}

// Acceptable runs the full grading cascade for the candidate.
func (c MatchCandidate) Acceptable() bool {
	return IsAnswerAcceptable(c.User, c.Reference, c.Threshold)
}

func usedToScore(user, ref string) float64 {
	return LevenshteinSimilarity(simplifyUsedTo(user), simplifyUsedTo(ref))
}

func coreContentScore(user, ref string) float64 {
	return LevenshteinSimilarity(strings.Join(strings.Fields(user), ""), strings.Join(strings.Fields(ref), ""))
}

// effectiveThreshold maps a non-positive threshold to DefaultThreshold and
// clamps anything above 1.
func effectiveThreshold(t float64) float64 {
	switch {
	case t <= 0:
		return DefaultThreshold
	case t > 1:
		return 1
	default:
		return t
	}
}
