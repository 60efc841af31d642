package cli

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/planbook/internal/model"

	"github.com/charmbracelet/lipgloss"
)

var (
	todayStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	taskMark   = lipgloss.NewStyle().Foreground(ColorBlue).Render("•")
	habitMark  = lipgloss.NewStyle().Foreground(ColorGreen).Render("•")
)

// RenderMonthGrid draws a 42-cell month grid, six rows of seven
// Monday-first columns. Days with tasks carry a blue dot, days with habit
// marks a green one.
func RenderMonthGrid(title string, cells []model.CalendarCell) string {
	var b strings.Builder
	b.WriteString(RenderSection(title))
	b.WriteString("\n  ")
	for _, d := range MondayFirstDays {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%-5s", d)))
	}
	b.WriteString("\n")

	for row := 0; row*7 < len(cells); row++ {
		b.WriteString("  ")
		for _, c := range cells[row*7 : min(row*7+7, len(cells))] {
			b.WriteString(renderCell(c))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderCell(c model.CalendarCell) string {
	if c.Empty {
		return strings.Repeat(" ", 5)
	}
	day := fmt.Sprintf("%2d", c.Day)
	if c.IsToday {
		day = todayStyle.Render(day)
	} else {
		day = valueStyle.Render(day)
	}
	marks := ""
	if c.HasTasks {
		marks += taskMark
	} else {
		marks += " "
	}
	if c.HasHabits {
		marks += habitMark
	} else {
		marks += " "
	}
	return day + marks + " "
}
