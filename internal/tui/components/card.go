// Package components provides the widgets the planbook TUI is built from.
package components

import (
	"github.com/theirongolddev/planbook/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Metric is one figure of a MetricCardRow.
type Metric struct {
	Label string
	Value string
	Note  string
	Color lipgloss.Color // value color; empty means primary text
}

// LayoutRow splits total into n widths that add up to exactly total.
func LayoutRow(total, n int) []int {
	if n <= 0 {
		return nil
	}
	widths := make([]int, n)
	for i := range widths {
		widths[i] = total / n
		if i < total%n {
			widths[i]++
		}
	}
	return widths
}

func cardStyle(outerWidth int, focused bool) lipgloss.Style {
	t := theme.Active
	border := t.Border
	if focused {
		border = t.BorderAccent
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		BorderBackground(t.Background).
		Background(t.Surface).
		Width(max(outerWidth-2, 10)).
		Padding(0, 1)
}

// MetricCard renders a labelled figure in a bordered box of outerWidth.
func MetricCard(m Metric, outerWidth int) string {
	t := theme.Active
	color := m.Color
	if color == "" {
		color = t.TextPrimary
	}
	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	note := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	body := label.Render(m.Label) + "\n" + value.Render(m.Value)
	if m.Note != "" {
		body += "\n" + note.Render(m.Note)
	}
	return cardStyle(outerWidth, false).Render(body)
}

// MetricCardRow renders metrics side by side across totalWidth.
func MetricCardRow(metrics []Metric, totalWidth int) string {
	if len(metrics) == 0 {
		return ""
	}
	widths := LayoutRow(totalWidth, len(metrics))
	cards := make([]string, len(metrics))
	for i, m := range metrics {
		cards[i] = MetricCard(m, widths[i])
	}
	return CardRow(cards)
}

// ContentCard renders body in a bordered card with an optional title.
// A focused card gets the accent border.
func ContentCard(title, body string, outerWidth int, focused bool) string {
	t := theme.Active
	content := body
	if title != "" {
		titleColor := t.TextMuted
		if focused {
			titleColor = t.AccentBright
		}
		heading := lipgloss.NewStyle().Foreground(titleColor).Background(t.Surface).Bold(true)
		content = heading.Render(title) + "\n" + body
	}
	return cardStyle(outerWidth, focused).Render(content)
}

// CardRow joins cards horizontally. Shorter cards are padded with the
// background color so no unstyled cells show.
func CardRow(cards []string) string {
	if len(cards) == 0 {
		return ""
	}
	height := 0
	for _, c := range cards {
		height = max(height, lipgloss.Height(c))
	}
	padded := make([]string, len(cards))
	for i, c := range cards {
		padded[i] = lipgloss.PlaceVertical(height, lipgloss.Top, c,
			lipgloss.WithWhitespaceBackground(theme.Active.Background))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, padded...)
}

// CardInnerWidth is the text width inside a card of outerWidth.
func CardInnerWidth(outerWidth int) int {
	return max(outerWidth-4, 10)
}
