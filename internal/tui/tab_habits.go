package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/planbook/internal/cli"
	"github.com/theirongolddev/planbook/internal/model"
	"github.com/theirongolddev/planbook/internal/tui/components"
	"github.com/theirongolddev/planbook/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	habitsFocusHabits = iota
	habitsFocusGoals
)

type habitsState struct {
	focus  int
	cursor [2]int
}

func (a *App) moveHabitsCursor(delta int) {
	n := len(a.ws.Tasks.Habits())
	if a.habits.focus == habitsFocusGoals {
		n = len(a.ws.Tasks.Goals())
	}
	c := &a.habits.cursor[a.habits.focus]
	*c = clampIndex(*c+delta, n)
}

func (a App) selectedHabit() (model.Habit, bool) {
	habits := a.ws.Tasks.Habits()
	if len(habits) == 0 {
		return model.Habit{}, false
	}
	return habits[clampIndex(a.habits.cursor[habitsFocusHabits], len(habits))], true
}

func (a App) selectedGoal() (model.Goal, bool) {
	goals := a.ws.Tasks.Goals()
	if len(goals) == 0 {
		return model.Goal{}, false
	}
	return goals[clampIndex(a.habits.cursor[habitsFocusGoals], len(goals))], true
}

func (a App) updateHabitsKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "a":
		return a.openForm(formHabit)
	case "n":
		return a.openForm(formGoal)
	case " ", "space", "enter":
		if a.habits.focus == habitsFocusGoals {
			if g, ok := a.selectedGoal(); ok {
				a.ws.Tasks.AdvanceGoal(g.ID, 1)
			}
		} else if h, ok := a.selectedHabit(); ok {
			a.ws.Tasks.ToggleHabit(h.ID, a.today())
		}
	case "+", "=":
		if g, ok := a.selectedGoal(); ok {
			a.ws.Tasks.AdvanceGoal(g.ID, 1)
		}
	case "-":
		if g, ok := a.selectedGoal(); ok {
			a.ws.Tasks.AdvanceGoal(g.ID, -1)
		}
	case "d":
		if a.habits.focus == habitsFocusGoals {
			if g, ok := a.selectedGoal(); ok {
				a.ws.Tasks.DeleteGoal(g.ID)
			}
		} else if h, ok := a.selectedHabit(); ok {
			a.ws.Tasks.DeleteHabit(h.ID)
		}
		a.moveHabitsCursor(0)
	case "s":
		a.habits.focus = 1 - a.habits.focus
	case "j", "down":
		a.moveHabitsCursor(1)
	case "k", "up":
		a.moveHabitsCursor(-1)
	}
	return a, nil
}

func (a App) renderHabitsTab(cw int) string {
	return a.sideBySide(cw, a.renderHabitList, a.renderTaskGoals)
}

func (a App) renderHabitList(w int) string {
	t := theme.Active
	focused := a.habits.focus == habitsFocusHabits
	habits := a.ws.Tasks.Habits()
	title := fmt.Sprintf("Habits (%d)", len(habits))
	if len(habits) == 0 {
		return components.ContentCard(title, dimLine("No habits yet. Press a to add one."), w, focused)
	}

	inner := components.CardInnerWidth(w)
	week := a.ws.Tasks.WeekDates()
	progress := a.ws.Tasks.AllProgress()
	today := a.today()
	cursor := clampIndex(a.habits.cursor[habitsFocusHabits], len(habits))

	nameW := max(inner-2-14-16, 10)
	header := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
		Render(fmt.Sprintf("  %-*s %s", nameW, "", strings.Join(strings.Split("MTWTFSS", ""), " ")))
	lines := []string{header}

	start, end := listWindow(len(habits), cursor, 10)
	for i := start; i < end; i++ {
		h := habits[i]
		selected := focused && i == cursor
		bg := t.Surface
		if selected {
			bg = t.SurfaceBright
		}
		base := lipgloss.NewStyle().Background(bg)

		done := make([]bool, len(week))
		future := make([]bool, len(week))
		for j, d := range week {
			done[j] = progress.Done(h.ID, d)
			future[j] = d > today
		}
		wp := a.ws.Tasks.WeekProgress(h.ID)

		swatch := base.Foreground(lipgloss.Color(h.Color)).Render("■ ")
		name := base.Foreground(t.TextPrimary).Render(fmt.Sprintf("%-*s", nameW-2, cli.Truncate(h.Name, nameW-2)))
		streak := base.Foreground(t.Streak).Render(fmt.Sprintf(" 🔥%-3d", h.Streak))
		pct := base.Foreground(components.ColorForPercent(float64(wp.Percent))).Render(fmt.Sprintf(" %3d%%", wp.Percent))

		lines = append(lines, listLine(swatch+name+" "+components.WeekDots(done, future, lipgloss.Color(h.Color))+streak+pct, inner, selected))
		lines = append(lines, "    "+dimLine(h.Frequency.Label()))
	}
	return components.ContentCard(title, strings.Join(lines, "\n"), w, focused)
}

func (a App) renderTaskGoals(w int) string {
	t := theme.Active
	focused := a.habits.focus == habitsFocusGoals
	goals := a.ws.Tasks.Goals()
	title := fmt.Sprintf("Goals (%d)", len(goals))
	if len(goals) == 0 {
		return components.ContentCard(title, dimLine("No goals yet. Press n to set one."), w, focused)
	}

	inner := components.CardInnerWidth(w)
	cursor := clampIndex(a.habits.cursor[habitsFocusGoals], len(goals))
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var lines []string
	start, end := listWindow(len(goals), cursor, 5)
	for i := start; i < end; i++ {
		g := goals[i]
		selected := focused && i == cursor
		style := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
		if selected {
			style = style.Foreground(t.AccentBright).Background(t.SurfaceBright)
		}
		lines = append(lines, listLine(style.Render(g.Title), inner, selected))
		lines = append(lines, "  "+components.ProgressBar(float64(g.Percent()), max(inner-10, 10)))
		lines = append(lines, "  "+muted.Render(fmt.Sprintf("%d / %d %s", g.Current, g.Target, g.Type)))
	}
	return components.ContentCard(title, strings.Join(lines, "\n"), w, focused)
}
