package components

import (
	"strings"

	"github.com/abhisek/clipvocab/internal/textmatch"
	"github.com/abhisek/clipvocab/internal/ui/theme"
)

// Feedback renders a word-by-word comparison on one line. Matched words
// are green, sounds-alike words show what was heard, missing words are
// struck through and extra words are dim.
func Feedback(diffs []textmatch.WordDiff) string {
	parts := make([]string, 0, len(diffs))
	for _, d := range diffs {
		switch d.Status {
		case textmatch.WordMatched:
			parts = append(parts, theme.Correct.Render(d.Word))
		case textmatch.WordSoundsAlike:
			parts = append(parts, theme.Late.Render(d.Word+" ("+d.Heard+")"))
		case textmatch.WordMissing:
			parts = append(parts, theme.Incorrect.Strikethrough(true).Render(d.Word))
		case textmatch.WordExtra:
			parts = append(parts, theme.Hint.Render("+"+d.Heard))
		}
	}
	return strings.Join(parts, " ")
}

// Verdict renders a short correct or incorrect label.
func Verdict(correct bool) string {
	if correct {
		return theme.Correct.Render("✓ correct")
	}
	return theme.Incorrect.Render("✗ incorrect")
}
