package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/planbook/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForPercent maps goal progress to a color: the closer to done, the
// greener.
func ColorForPercent(pct float64) lipgloss.Color {
	t := theme.Active
	switch {
	case pct >= 100:
		return t.Income
	case pct >= 50:
		return t.Accent
	case pct >= 25:
		return t.Streak
	default:
		return t.Warning
	}
}

// ProgressBar renders a bar for pct (0-100, clamped for drawing) followed
// by the unclamped percentage.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	ratio := min(max(pct/100, 0), 1)

	bar := progress.New(
		progress.WithSolidFill(string(ColorForPercent(pct))),
		progress.WithWidth(max(width, 4)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(ColorForPercent(pct)).Background(t.Surface).Bold(true)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")
	return bar.ViewAs(ratio) + space + pctStyle.Render(fmt.Sprintf("%3.0f%%", pct))
}

// WeekDots renders one cell per day: filled when done, hollow when
// missed, blank for days still ahead.
func WeekDots(done []bool, future []bool, color lipgloss.Color) string {
	t := theme.Active
	on := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	off := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	for i := range done {
		if i > 0 {
			b.WriteString(off.Render(" "))
		}
		switch {
		case done[i]:
			b.WriteString(on.Render("●"))
		case i < len(future) && future[i]:
			b.WriteString(off.Render("·"))
		default:
			b.WriteString(off.Render("○"))
		}
	}
	return b.String()
}
