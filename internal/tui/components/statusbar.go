package components

import (
	"strings"

	"github.com/theirongolddev/planbook/internal/notify"
	"github.com/theirongolddev/planbook/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// NoticeColor is the color a notification of kind k is drawn in.
func NoticeColor(k notify.Kind) lipgloss.Color {
	t := theme.Active
	switch k {
	case notify.Success:
		return t.Income
	case notify.Error:
		return t.Expense
	case notify.Warning:
		return t.Warning
	default:
		return t.Info
	}
}

func noticeIcon(k notify.Kind) string {
	switch k {
	case notify.Success:
		return "✓"
	case notify.Error:
		return "✗"
	case notify.Warning:
		return "!"
	default:
		return "i"
	}
}

// RenderStatusBar renders the bottom bar: the visible notification (if
// any) on the left, key hints on the right.
func RenderStatusBar(width int, notice *notify.Notification, hints string) string {
	t := theme.Active
	base := lipgloss.NewStyle().Background(t.Surface)
	hintStyle := base.Foreground(t.TextDim)

	left := base.Render(" ")
	if notice != nil {
		style := base.Foreground(NoticeColor(notice.Kind)).Bold(true)
		left += style.Render(noticeIcon(notice.Kind) + " " + notice.Message)
	}
	right := hintStyle.Render(hints + " ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		// Notifications win over hints on narrow terminals.
		right = ""
		gap = max(width-lipgloss.Width(left), 0)
	}
	return left + base.Render(strings.Repeat(" ", gap)) + right
}
