package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/planbook/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var levels = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders values as one block character each, scaled to the
// largest value.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := min(max(int(v/peak*float64(len(levels)-1)), 0), len(levels)-1)
		b.WriteRune(levels[idx])
	}
	return lipgloss.NewStyle().Foreground(color).Background(theme.Active.Surface).Render(b.String())
}

// Bar is one row of a BarList.
type Bar struct {
	Label string
	Value float64
	Text  string // shown after the bar, e.g. a formatted amount
	Color lipgloss.Color
}

// BarList renders horizontal bars scaled to the largest value, with
// labels padded to a common width and the bar area filling width.
func BarList(bars []Bar, width int) string {
	if len(bars) == 0 {
		return ""
	}
	t := theme.Active
	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	text := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	labelW, textW, peak := 0, 0, 0.0
	for _, b := range bars {
		labelW = max(labelW, lipgloss.Width(b.Label))
		textW = max(textW, lipgloss.Width(b.Text))
		peak = max(peak, b.Value)
	}
	barW := max(width-labelW-textW-2, 4)

	lines := make([]string, len(bars))
	for i, b := range bars {
		n := 0
		if peak > 0 {
			n = min(max(int(b.Value/peak*float64(barW)+0.5), 0), barW)
		}
		if n == 0 && b.Value > 0 {
			n = 1
		}
		fill := lipgloss.NewStyle().Foreground(b.Color).Background(t.Surface)
		lines[i] = label.Render(padRight(b.Label, labelW)) +
			space.Render(" ") +
			fill.Render(strings.Repeat("█", n)) +
			space.Render(strings.Repeat(" ", barW-n+1)) +
			text.Render(fmt.Sprintf("%*s", textW, b.Text))
	}
	return strings.Join(lines, "\n")
}

func padRight(s string, w int) string {
	if gap := w - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
