package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/scholar/internal/ui/theme"
)

// GradeBar draws a grade out of ten as a horizontal bar. Passing grades
// fill in green.
type GradeBar struct {
	Grade  int
	Passed bool
	Width  int
}

// NewGradeBar creates a grade bar.
func NewGradeBar(grade int, passed bool, width int) GradeBar {
	return GradeBar{Grade: grade, Passed: passed, Width: width}
}

// View renders the bar followed by "n/10".
func (g GradeBar) View() string {
	suffix := fmt.Sprintf("  %d/10", g.Grade)
	barWidth := g.Width - lipgloss.Width(suffix)
	if barWidth < 10 {
		barWidth = 10
	}

	filled := barWidth * g.Grade / 10
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	fill := theme.ProgressFilled
	label := theme.Fail
	if g.Passed {
		fill = theme.ProgressPass
		label = theme.Pass
	}

	return fill.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)) +
		label.Render(suffix)
}
