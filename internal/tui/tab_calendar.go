package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/planbook/internal/cli"
	"github.com/theirongolddev/planbook/internal/model"
	"github.com/theirongolddev/planbook/internal/tui/components"
	"github.com/theirongolddev/planbook/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const calendarCellWidth = 6

type calendarState struct {
	selected model.Date
}

// shiftMonth moves to the first day of the month delta months away.
func shiftMonth(d model.Date, delta int) model.Date {
	t := d.Time(time.UTC)
	return model.DateOf(time.Date(t.Year(), t.Month()+time.Month(delta), 1, 0, 0, 0, 0, time.UTC))
}

func (a App) updateCalendarKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "left":
		a.cal.selected = a.cal.selected.AddDays(-1)
	case "right":
		a.cal.selected = a.cal.selected.AddDays(1)
	case "up", "k":
		a.cal.selected = a.cal.selected.AddDays(-7)
	case "down", "j":
		a.cal.selected = a.cal.selected.AddDays(7)
	case "[":
		a.cal.selected = shiftMonth(a.cal.selected, -1)
	case "]":
		a.cal.selected = shiftMonth(a.cal.selected, 1)
	case "g":
		a.cal.selected = a.today()
	case "enter", "a":
		return a.openForm(formTask)
	}
	return a, nil
}

func (a App) renderCalendarTab(cw int) string {
	gridW := 7*calendarCellWidth + 6
	if a.isCompactLayout() {
		return a.renderMonth(cw) + "\n" + a.renderAgenda(cw)
	}
	return components.CardRow([]string{a.renderMonth(gridW), a.renderAgenda(cw - gridW)})
}

func (a App) renderMonth(w int) string {
	t := theme.Active
	sel := a.cal.selected.Time(time.UTC)
	cells := a.ws.Tasks.MonthGrid(sel.Year(), sel.Month())

	head := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	var b strings.Builder
	for _, d := range cli.MondayFirstDays {
		b.WriteString(head.Render(fmt.Sprintf("%-*s", calendarCellWidth, d)))
	}
	for row := 0; row*7 < len(cells); row++ {
		b.WriteString("\n")
		for _, c := range cells[row*7 : min(row*7+7, len(cells))] {
			b.WriteString(a.renderCalendarCell(c))
		}
	}
	title := sel.Format("January 2006")
	return components.ContentCard(title, b.String(), w, true)
}

func (a App) renderCalendarCell(c model.CalendarCell) string {
	t := theme.Active
	base := lipgloss.NewStyle().Background(t.Surface)
	if c.Empty {
		return base.Render(strings.Repeat(" ", calendarCellWidth))
	}

	bg := t.Surface
	fg := t.TextPrimary
	switch {
	case c.Date == a.cal.selected:
		bg = t.Accent
		fg = t.Background
	case c.IsToday:
		bg = t.SurfaceBright
		fg = t.AccentBright
	}
	cell := lipgloss.NewStyle().Background(bg)
	day := cell.Foreground(fg).Bold(c.IsToday).Render(fmt.Sprintf("%2d", c.Day))

	taskDot, habitDot := cell.Render(" "), cell.Render(" ")
	if c.HasTasks {
		taskDot = cell.Foreground(t.Info).Render("•")
	}
	if c.HasHabits {
		habitDot = cell.Foreground(t.Income).Render("•")
	}
	return day + taskDot + habitDot + cell.Render(" ") + base.Render(" ")
}

func (a App) renderAgenda(w int) string {
	t := theme.Active
	date := a.cal.selected
	inner := components.CardInnerWidth(w)

	var lines []string
	section := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	lines = append(lines, section.Render("Tasks"))
	dayTasks := a.ws.Tasks.TasksForDate(date)
	if len(dayTasks) == 0 {
		lines = append(lines, dimLine("  none"))
	}
	for _, task := range dayTasks {
		lines = append(lines, "  "+a.taskLine(task, inner-2, false))
	}

	lines = append(lines, "", section.Render("Habits"))
	progress := a.ws.Tasks.AllProgress()
	habits := a.ws.Tasks.Habits()
	if len(habits) == 0 {
		lines = append(lines, dimLine("  none"))
	}
	for _, h := range habits {
		mark := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("○ ")
		if progress.Done(h.ID, date) {
			mark = lipgloss.NewStyle().Foreground(lipgloss.Color(h.Color)).Background(t.Surface).Render("● ")
		}
		name := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Render(cli.Truncate(h.Name, inner-4))
		lines = append(lines, "  "+mark+name)
	}

	title := cli.FormatDate(date)
	if date == a.today() {
		title += " · today"
	}
	return components.ContentCard(title, strings.Join(lines, "\n"), w, false)
}
