package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/theirongolddev/planbook/internal/cli"
	"github.com/theirongolddev/planbook/internal/model"
	"github.com/theirongolddev/planbook/internal/pipeline"
	"github.com/theirongolddev/planbook/internal/tasks"
	"github.com/theirongolddev/planbook/internal/tui/components"
	"github.com/theirongolddev/planbook/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const taskListRows = 12

type tasksState struct {
	filter    pipeline.TaskFilter
	cursor    int
	searching bool
	query     string
	search    textinput.Model
}

func newTasksState() tasksState {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search text or category"
	ti.CharLimit = 64
	ti.Width = 32
	return tasksState{filter: pipeline.FilterAll, search: ti}
}

func taskInput(v *formValues) tasks.TaskInput {
	return tasks.TaskInput{
		Text:     v.text,
		Category: model.TaskCategory(v.taskCat),
		Priority: model.Priority(v.priority),
		Date:     model.Date(strings.TrimSpace(v.date)),
	}
}

// visibleTasks is the search result while a query is set, otherwise the
// filtered list.
func (a App) visibleTasks() []model.Task {
	if a.tasks.query != "" {
		return a.ws.Tasks.SearchTasks(a.tasks.query)
	}
	return a.ws.Tasks.FilterTasks(a.tasks.filter)
}

func (a App) selectedTask() (model.Task, bool) {
	list := a.visibleTasks()
	if len(list) == 0 {
		return model.Task{}, false
	}
	return list[clampIndex(a.tasks.cursor, len(list))], true
}

func (a App) updateTasksKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "a":
		return a.openForm(formTask)
	case " ", "space", "enter":
		if task, ok := a.selectedTask(); ok {
			a.ws.Tasks.ToggleTask(task.ID)
		}
	case "d":
		if task, ok := a.selectedTask(); ok {
			a.ws.Tasks.DeleteTask(task.ID)
		}
	case "f":
		filters := pipeline.TaskFilters()
		a.tasks.filter = filters[(slices.Index(filters, a.tasks.filter)+1)%len(filters)]
		a.tasks.cursor = 0
		return a, nil
	case "/":
		a.tasks.searching = true
		a.tasks.search.SetValue(a.tasks.query)
		cmd := a.tasks.search.Focus()
		return a, cmd
	case "esc":
		a.tasks.query = ""
		a.tasks.search.SetValue("")
	case "j", "down":
		a.tasks.cursor++
	case "k", "up":
		a.tasks.cursor--
	}
	a.tasks.cursor = clampIndex(a.tasks.cursor, len(a.visibleTasks()))
	return a, nil
}

func (a App) updateTaskSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.tasks.searching = false
		a.tasks.search.Blur()
		return a, nil
	case "esc":
		a.tasks.searching = false
		a.tasks.query = ""
		a.tasks.search.SetValue("")
		a.tasks.search.Blur()
		return a, nil
	}
	var cmd tea.Cmd
	a.tasks.search, cmd = a.tasks.search.Update(msg)
	a.tasks.query = strings.TrimSpace(a.tasks.search.Value())
	a.tasks.cursor = 0
	return a, cmd
}

func (a App) renderTasksTab(cw int) string {
	t := theme.Active
	st := a.ws.Tasks.Stats()

	metrics := []components.Metric{
		{Label: "Tasks", Value: cli.FormatNumber(int64(st.TotalTasks)),
			Note: fmt.Sprintf("%d active · %d done", st.ActiveTasks, st.CompletedTasks)},
		{Label: "Today", Value: fmt.Sprintf("%d/%d", st.TodayCompleted, st.TodayTasks), Color: t.Accent},
		{Label: "Habits today", Value: fmt.Sprintf("%d/%d", st.HabitsDoneToday, st.ActiveHabits),
			Note: cli.FormatPercent(st.SuccessRate) + " success", Color: t.Streak},
		{Label: "Productivity", Value: cli.FormatPercent(st.Productivity), Color: components.ColorForPercent(float64(st.Productivity))},
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	widths := a.columns(cw, 3)
	if widths == nil {
		b.WriteString(a.renderTaskList(cw))
		b.WriteString("\n")
		b.WriteString(a.renderActivity(cw))
		return b.String()
	}
	listW := widths[0] + widths[1]
	b.WriteString(components.CardRow([]string{a.renderTaskList(listW), a.renderActivity(widths[2])}))
	return b.String()
}

func (a App) renderTaskList(w int) string {
	list := a.visibleTasks()
	inner := components.CardInnerWidth(w)

	title := fmt.Sprintf("Tasks · %s (%d)", a.tasks.filter, len(list))
	var lines []string
	if a.tasks.searching || a.tasks.query != "" {
		title = fmt.Sprintf("Search (%d)", len(list))
		if a.tasks.searching {
			lines = append(lines, a.tasks.search.View())
		} else {
			lines = append(lines, dimLine("/ "+a.tasks.query+"  (esc clears)"))
		}
	}

	if len(list) == 0 {
		lines = append(lines, dimLine("No tasks here. Press a to add one."))
		return components.ContentCard(title, strings.Join(lines, "\n"), w, true)
	}

	cursor := clampIndex(a.tasks.cursor, len(list))
	start, end := listWindow(len(list), cursor, taskListRows)
	for i := start; i < end; i++ {
		lines = append(lines, listLine(a.taskLine(list[i], inner-2, i == cursor), inner, i == cursor))
	}
	return components.ContentCard(title, strings.Join(lines, "\n"), w, true)
}

func (a App) taskLine(task model.Task, width int, selected bool) string {
	t := theme.Active
	bg := t.Surface
	if selected {
		bg = t.SurfaceBright
	}
	base := lipgloss.NewStyle().Background(bg)

	check := base.Foreground(t.TextMuted).Render("[ ] ")
	text := base.Foreground(t.TextPrimary)
	if task.Completed {
		check = base.Foreground(t.Income).Render("[✓] ")
		text = text.Foreground(t.TextDim).Strikethrough(true)
	}
	prio := base.Foreground(lipgloss.Color(task.Priority.Color())).Render("● ")

	meta := string(task.Category)
	if task.Date != a.today() {
		meta += " · " + cli.FormatDate(task.Date)
	}
	metaR := base.Foreground(t.TextDim).Render(" " + meta)

	textW := max(width-lipgloss.Width(check)-lipgloss.Width(prio)-lipgloss.Width(metaR), 8)
	body := text.Render(fmt.Sprintf("%-*s", textW, cli.Truncate(task.Text, textW)))
	return check + prio + body + metaR
}

func (a App) renderActivity(w int) string {
	t := theme.Active
	acts := a.ws.Tasks.Activities()
	if len(acts) == 0 {
		return components.ContentCard("Recent activity", dimLine("Nothing yet"), w, false)
	}
	inner := components.CardInnerWidth(w)
	timeStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	textStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	lines := make([]string, len(acts))
	for i, act := range acts {
		lines[i] = timeStyle.Render(act.Time+" ") + textStyle.Render(cli.Truncate(act.Text, max(inner-6, 8)))
	}
	return components.ContentCard("Recent activity", strings.Join(lines, "\n"), w, false)
}
