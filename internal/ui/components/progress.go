package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/clipvocab/internal/ui/theme"
)

const (
	barFilled = "█"
	barEmpty  = "░"
)

// Meter renders "label ████░░ done/total pct%" fitted to width cells.
// A zero total renders an empty bar.
func Meter(label string, done, total, width int) string {
	var ratio float64
	if total > 0 {
		ratio = float64(done) / float64(total)
	}
	ratio = min(max(ratio, 0), 1)

	head := ""
	if label != "" {
		head = theme.Body.Render(label) + " "
	}
	tail := fmt.Sprintf(" %d/%d %3.0f%%", done, total, ratio*100)

	cells := max(width-lipgloss.Width(head)-len(tail), 4)
	filled := int(float64(cells)*ratio + 0.5)

	var b strings.Builder
	b.WriteString(head)
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render(strings.Repeat(barFilled, filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat(barEmpty, cells-filled)))
	b.WriteString(theme.Hint.Render(tail))
	return b.String()
}
