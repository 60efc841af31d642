package components

import (
	"strings"

	"github.com/theirongolddev/planbook/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab is one entry of the tab bar.
type Tab struct {
	Name   string
	Key    string
	KeyPos int // index of Key in Name, -1 when it is not part of the name
}

// Tabs are the dashboard tabs in display order.
var Tabs = []Tab{
	{Name: "Budget", Key: "b", KeyPos: 0},
	{Name: "Tasks", Key: "t", KeyPos: 0},
	{Name: "Habits", Key: "h", KeyPos: 0},
	{Name: "Calendar", Key: "c", KeyPos: 0},
	{Name: "Settings", Key: "x", KeyPos: -1},
}

// TabIndex returns the tab bound to key, or -1.
func TabIndex(key string) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}

// TabVisualWidth is the rendered width of a tab, padding included.
func TabVisualWidth(tab Tab, active bool) int {
	w := lipgloss.Width(tab.Name) + 2
	if !active && tab.KeyPos < 0 {
		w += 3 // "[x]"
	}
	return w
}

func renderTab(tab Tab, active bool) string {
	t := theme.Active
	if active {
		return lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Accent).
			Bold(true).
			Padding(0, 1).
			Render(tab.Name)
	}

	text := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	key := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true).Underline(true)
	space := text.Render(" ")
	if tab.KeyPos < 0 {
		return space + text.Render(tab.Name) + text.Render("[") + key.Render(tab.Key) + text.Render("]") + space
	}
	return space +
		text.Render(tab.Name[:tab.KeyPos]) +
		key.Render(tab.Name[tab.KeyPos:tab.KeyPos+1]) +
		text.Render(tab.Name[tab.KeyPos+1:]) +
		space
}

// RenderTabBar renders a single-row tab bar padded to width. right is
// drawn flush right, e.g. a status badge.
func RenderTabBar(active, width int, right string) string {
	t := theme.Active
	sep := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	parts := make([]string, len(Tabs))
	for i, tab := range Tabs {
		parts[i] = renderTab(tab, i == active)
	}
	bar := strings.Join(parts, sep)

	gap := width - lipgloss.Width(bar) - lipgloss.Width(right)
	if gap < 0 {
		right = ""
		gap = max(width-lipgloss.Width(bar), 0)
	}
	return bar + lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", gap)) + right
}
