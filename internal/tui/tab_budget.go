package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/theirongolddev/planbook/internal/cli"
	"github.com/theirongolddev/planbook/internal/model"
	"github.com/theirongolddev/planbook/internal/pipeline"
	"github.com/theirongolddev/planbook/internal/tui/components"
	"github.com/theirongolddev/planbook/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const (
	budgetFocusExpenses = iota
	budgetFocusGoals
)

const budgetListRows = 8

type budgetState struct {
	period pipeline.Period
	focus  int
	cursor [2]int // per focus
}

func (a App) budgetExpenses() []model.Expense {
	return a.ws.Budget.ExpensesByPeriod(a.budget.period)
}

func (a *App) moveBudgetCursor(delta int) {
	n := len(a.budgetExpenses())
	if a.budget.focus == budgetFocusGoals {
		n = len(a.ws.Budget.Goals())
	}
	c := &a.budget.cursor[a.budget.focus]
	*c = clampIndex(*c+delta, n)
}

func nextPeriod(p pipeline.Period) pipeline.Period {
	periods := pipeline.Periods()
	i := slices.Index(periods, p)
	return periods[(i+1)%len(periods)]
}

func (a App) updateBudgetKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "a":
		return a.openForm(formExpense)
	case "n":
		return a.openForm(formSavings)
	case "f":
		a.budget.focus = budgetFocusGoals
		return a.openForm(formFund)
	case "d":
		a.deleteBudgetItem()
	case "p":
		a.budget.period = nextPeriod(a.budget.period)
		a.budget.cursor[budgetFocusExpenses] = 0
	case "s":
		a.budget.focus = 1 - a.budget.focus
	case "j", "down":
		a.moveBudgetCursor(1)
	case "k", "up":
		a.moveBudgetCursor(-1)
	case "e":
		return a.exportBudget()
	case "i":
		return a.openForm(formImport)
	case "r":
		return a.writeReport()
	}
	return a, nil
}

func (a *App) deleteBudgetItem() {
	if a.budget.focus == budgetFocusGoals {
		goals := a.ws.Budget.Goals()
		if len(goals) == 0 {
			return
		}
		a.ws.Budget.DeleteGoal(goals[clampIndex(a.budget.cursor[budgetFocusGoals], len(goals))].ID)
	} else {
		expenses := a.budgetExpenses()
		if len(expenses) == 0 {
			return
		}
		a.ws.Budget.DeleteExpense(expenses[clampIndex(a.budget.cursor[budgetFocusExpenses], len(expenses))].ID)
	}
	a.moveBudgetCursor(0)
}

func (a App) renderBudgetTab(cw int) string {
	t := theme.Active
	p := a.budget.period
	sum := a.ws.Budget.Summary(p)

	metrics := []components.Metric{
		{Label: "Balance", Value: a.money(sum.Balance), Color: t.Income},
		{Label: "Savings", Value: a.money(sum.Savings), Note: fmt.Sprintf("%d goals", sum.GoalCount), Color: t.Accent},
		{Label: "Spent · " + p.Label(), Value: a.money(sum.PeriodSpend), Color: t.Expense},
		{Label: "Goal targets", Value: a.money(sum.GoalsTarget), Note: fmt.Sprintf("%d expenses in all", sum.ExpenseCount)},
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")
	b.WriteString(a.sideBySide(cw, a.renderCategoryCard, a.renderTrendCard))
	b.WriteString("\n")
	b.WriteString(a.sideBySide(cw, a.renderExpenseList, a.renderGoalList))
	if ins := pipeline.TopInsights(a.ws.Budget.Insights(), 3); len(ins) > 0 {
		b.WriteString("\n")
		b.WriteString(a.renderInsights(ins, cw))
	}
	return b.String()
}

func (a App) renderCategoryCard(w int) string {
	stats := a.ws.Budget.CategoryStats(a.budget.period)
	title := "Spending by category · " + a.budget.period.Label()
	if len(stats) == 0 {
		return components.ContentCard(title, dimLine("No expenses in this period"), w, false)
	}
	bars := make([]components.Bar, len(stats))
	for i, s := range stats {
		bars[i] = components.Bar{
			Label: s.Info.Icon + " " + s.Info.Name,
			Value: s.Total.InexactFloat64(),
			Text:  fmt.Sprintf("%s %s", a.money(s.Total), cli.FormatShare(s.Percent)),
			Color: lipgloss.Color(s.Info.Color),
		}
	}
	return components.ContentCard(title, components.BarList(bars, components.CardInnerWidth(w)), w, false)
}

func (a App) renderTrendCard(w int) string {
	t := theme.Active
	days := a.ws.Budget.DailySpend(14)
	values := make([]float64, len(days))
	total := decimal.Zero
	for i, d := range days {
		values[i] = d.Total.InexactFloat64()
		total = total.Add(d.Total)
	}
	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)

	var body strings.Builder
	body.WriteString(components.Sparkline(values, t.Expense))
	body.WriteString("\n")
	if len(days) > 0 {
		body.WriteString(dimLine(cli.FormatDate(days[0].Date) + " → " + cli.FormatDate(days[len(days)-1].Date)))
		body.WriteString("\n")
	}
	allTime := a.ws.Budget.Summary(pipeline.PeriodAll).PeriodSpend
	body.WriteString(label.Render("All time: ") + value.Render(a.money(allTime)))
	if total.IsPositive() {
		avg := total.Div(decimal.NewFromInt(int64(len(days)))).Round(2)
		body.WriteString("\n")
		body.WriteString(label.Render("Daily average: ") + value.Render(a.money(avg)))
	}
	return components.ContentCard("Last 14 days", body.String(), w, false)
}

func (a App) renderExpenseList(w int) string {
	t := theme.Active
	focused := a.budget.focus == budgetFocusExpenses
	expenses := a.budgetExpenses()
	title := fmt.Sprintf("Expenses · %s (%d)", a.budget.period.Label(), len(expenses))
	if len(expenses) == 0 {
		return components.ContentCard(title, dimLine("Nothing yet. Press a to add an expense."), w, focused)
	}

	inner := components.CardInnerWidth(w)
	cursor := clampIndex(a.budget.cursor[budgetFocusExpenses], len(expenses))
	start, end := listWindow(len(expenses), cursor, budgetListRows)

	var lines []string
	for i := start; i < end; i++ {
		e := expenses[i]
		selected := focused && i == cursor
		bg := t.Surface
		if selected {
			bg = t.SurfaceBright
		}
		date := lipgloss.NewStyle().Foreground(t.TextDim).Background(bg).Render(fmt.Sprintf("%-12s", cli.FormatDate(e.Date)))
		amount := lipgloss.NewStyle().Foreground(t.Expense).Background(bg).Bold(true).Render(a.money(e.Amount))
		desc := e.Description
		if desc == "" {
			desc = e.Category.Info().Name
		}
		descW := max(inner-2-14-lipgloss.Width(amount)-4, 8)
		text := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(bg).
			Render(fmt.Sprintf("%s %-*s", e.Category.Info().Icon, descW, cli.Truncate(desc, descW)))
		lines = append(lines, listLine(date+text+lipgloss.NewStyle().Background(bg).Render(" ")+amount, inner, selected))
	}
	return components.ContentCard(title, strings.Join(lines, "\n"), w, focused)
}

func (a App) renderGoalList(w int) string {
	t := theme.Active
	focused := a.budget.focus == budgetFocusGoals
	goals := a.ws.Budget.Goals()
	title := fmt.Sprintf("Savings goals (%d)", len(goals))
	if len(goals) == 0 {
		return components.ContentCard(title, dimLine("No goals. Press n to create one."), w, focused)
	}

	inner := components.CardInnerWidth(w)
	cursor := clampIndex(a.budget.cursor[budgetFocusGoals], len(goals))
	start, end := listWindow(len(goals), cursor, budgetListRows/2)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var lines []string
	for i := start; i < end; i++ {
		g := goals[i]
		selected := focused && i == cursor
		name := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true).Render(g.Icon + " " + g.Name)
		if selected {
			name = lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright).Bold(true).Render(g.Icon + " " + g.Name)
		}
		lines = append(lines, listLine(name, inner, selected))

		detail := a.money(g.Current) + " / " + a.money(g.Target)
		if g.Deadline != nil {
			detail += " · due " + cli.FormatDate(*g.Deadline)
		}
		lines = append(lines, "  "+components.ProgressBar(g.Percent(), max(inner-10, 10)))
		lines = append(lines, "  "+muted.Render(detail))
	}
	return components.ContentCard(title, strings.Join(lines, "\n"), w, focused)
}

func (a App) renderInsights(insights []model.Insight, w int) string {
	t := theme.Active
	colors := map[model.InsightKind]lipgloss.Color{
		model.InsightPositive: t.Income,
		model.InsightWarning:  t.Warning,
		model.InsightInfo:     t.Info,
		model.InsightTip:      t.Streak,
	}
	inner := components.CardInnerWidth(w)
	desc := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var lines []string
	for _, in := range insights {
		title := lipgloss.NewStyle().Foreground(colors[in.Kind]).Background(t.Surface).Bold(true).
			Render(in.Icon + " " + in.Title)
		rest := cli.Truncate(in.Description, max(inner-lipgloss.Width(title)-3, 10))
		lines = append(lines, title+desc.Render(" · "+rest))
	}
	return components.ContentCard("Insights", strings.Join(lines, "\n"), w, false)
}
