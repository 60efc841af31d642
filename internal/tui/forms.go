package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/planbook/internal/budget"
	"github.com/theirongolddev/planbook/internal/config"
	"github.com/theirongolddev/planbook/internal/model"
	"github.com/theirongolddev/planbook/internal/notify"
	"github.com/theirongolddev/planbook/internal/pipeline"
	"github.com/theirongolddev/planbook/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type formKind int

const (
	formNone formKind = iota
	formExpense
	formSavings
	formFund
	formTask
	formHabit
	formGoal
	formImport
	formSetup
)

// formValues backs every huh field. It lives behind a pointer so the
// bindings survive the App being copied by value on each Update.
type formValues struct {
	amount   string
	category string
	date     string
	desc     string

	name     string
	target   string
	current  string
	deadline string
	icon     string
	goalID   string

	text     string
	taskCat  string
	priority string

	frequency string
	goalType  string

	path string

	currency  string
	period    string
	themeName string
}

func validateAmount(s string) error {
	_, err := budget.ParseAmount(s)
	return err
}

func validateOptionalAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return validateAmount(s)
}

func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := model.ParseDate(s)
	return err
}

func validateRequired(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", what)
		}
		return nil
	}
}

func validateTarget(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return errors.New("target must be a whole number of at least 1")
	}
	return nil
}

func categoryOptions() []huh.Option[string] {
	var opts []huh.Option[string]
	for _, c := range model.Categories() {
		info := c.Info()
		opts = append(opts, huh.NewOption(info.Icon+" "+info.Name, string(c)))
	}
	return opts
}

func newForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithShowHelp(true)
}

func newExpenseForm(v *formValues) *huh.Form {
	v.category = string(model.CategoryFood)
	return newForm(huh.NewGroup(
		huh.NewInput().Title("Amount").Placeholder("350").Value(&v.amount).Validate(validateAmount),
		huh.NewSelect[string]().Title("Category").Options(categoryOptions()...).Value(&v.category),
		huh.NewInput().Title("Date").Placeholder("YYYY-MM-DD, empty for today").Value(&v.date).Validate(validateOptionalDate),
		huh.NewInput().Title("Description").Value(&v.desc),
	).Title("New expense"))
}

func newSavingsForm(v *formValues) *huh.Form {
	v.icon = "🎯"
	return newForm(huh.NewGroup(
		huh.NewInput().Title("Name").Value(&v.name).Validate(validateRequired("name")),
		huh.NewInput().Title("Target").Placeholder("50000").Value(&v.target).Validate(validateAmount),
		huh.NewInput().Title("Already saved").Placeholder("0").Value(&v.current).Validate(validateOptionalAmount),
		huh.NewInput().Title("Deadline").Placeholder("YYYY-MM-DD, optional").Value(&v.deadline).Validate(validateOptionalDate),
		huh.NewInput().Title("Icon").Value(&v.icon),
	).Title("New savings goal"))
}

func newFundForm(v *formValues, goal model.SavingsGoal, money func(decimal.Decimal) string) *huh.Form {
	v.goalID = goal.ID
	return newForm(huh.NewGroup(
		huh.NewInput().
			Title("Amount").
			Description(fmt.Sprintf("%s %s: %s still needed", goal.Icon, goal.Name, money(goal.Remaining()))).
			Value(&v.amount).
			Validate(validateAmount),
	).Title("Add to savings"))
}

func newTaskForm(v *formValues) *huh.Form {
	v.taskCat = string(model.TaskOther)
	v.priority = string(model.PriorityMedium)
	var cats []huh.Option[string]
	for _, c := range model.TaskCategories() {
		cats = append(cats, huh.NewOption(string(c), string(c)))
	}
	return newForm(huh.NewGroup(
		huh.NewInput().Title("Task").Value(&v.text).Validate(validateRequired("task text")),
		huh.NewSelect[string]().Title("Category").Options(cats...).Value(&v.taskCat),
		huh.NewSelect[string]().Title("Priority").Options(
			huh.NewOption("low", string(model.PriorityLow)),
			huh.NewOption("medium", string(model.PriorityMedium)),
			huh.NewOption("high", string(model.PriorityHigh)),
		).Value(&v.priority),
		huh.NewInput().Title("Date").Placeholder("YYYY-MM-DD, empty for today").Value(&v.date).Validate(validateOptionalDate),
	).Title("New task"))
}

func newHabitForm(v *formValues) *huh.Form {
	v.frequency = string(model.FrequencyDaily)
	var opts []huh.Option[string]
	for _, f := range []model.Frequency{model.FrequencyDaily, model.FrequencyWeekly, model.FrequencyWeekdays} {
		opts = append(opts, huh.NewOption(f.Label(), string(f)))
	}
	return newForm(huh.NewGroup(
		huh.NewInput().Title("Habit").Value(&v.name).Validate(validateRequired("habit name")),
		huh.NewSelect[string]().Title("Frequency").Options(opts...).Value(&v.frequency),
	).Title("New habit"))
}

func newGoalForm(v *formValues) *huh.Form {
	v.goalType = "tasks"
	return newForm(huh.NewGroup(
		huh.NewInput().Title("Goal").Value(&v.name).Validate(validateRequired("goal title")),
		huh.NewSelect[string]().Title("Counts").Options(
			huh.NewOption("Tasks", "tasks"),
			huh.NewOption("Habits", "habits"),
			huh.NewOption("Custom", "custom"),
		).Value(&v.goalType),
		huh.NewInput().Title("Target").Placeholder("10").Value(&v.target).Validate(validateTarget),
	).Title("New goal"))
}

func newImportForm(v *formValues) *huh.Form {
	return newForm(huh.NewGroup(
		huh.NewInput().
			Title("Backup file").
			Description("Replaces all budget data").
			Placeholder("budget-data-2025-01-31.json").
			Value(&v.path).
			Validate(validateRequired("file path")),
	).Title("Import"))
}

func newSetupForm(v *formValues, cfg config.Config) *huh.Form {
	v.currency = cfg.General.CurrencySymbol
	v.period = string(pipeline.ParsePeriod(cfg.General.DefaultPeriod))
	v.themeName = cfg.Appearance.Theme

	var periods []huh.Option[string]
	for _, p := range pipeline.Periods() {
		periods = append(periods, huh.NewOption(p.Label(), string(p)))
	}
	var themes []huh.Option[string]
	for _, name := range theme.Names() {
		themes = append(themes, huh.NewOption(name, name))
	}
	return newForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to planbook").
				Description("Budget, tasks and habits in one place.\nA few questions and you're set."),
		),
		huh.NewGroup(
			huh.NewInput().Title("Currency symbol").Value(&v.currency).Validate(validateRequired("currency symbol")),
			huh.NewSelect[string]().Title("Default report period").Options(periods...).Value(&v.period),
			huh.NewSelect[string]().Title("Theme").Options(themes...).Value(&v.themeName),
		),
	)
}

// openForm starts a form of kind with fresh values.
func (a App) openForm(kind formKind) (tea.Model, tea.Cmd) {
	a.vals = &formValues{}
	var form *huh.Form
	switch kind {
	case formExpense:
		form = newExpenseForm(a.vals)
	case formSavings:
		form = newSavingsForm(a.vals)
	case formFund:
		goals := a.ws.Budget.Goals()
		if len(goals) == 0 {
			a.ws.Notices.Notify(notify.Info, "Create a savings goal first")
			return a, nil
		}
		g := goals[clampIndex(a.budget.cursor[budgetFocusGoals], len(goals))]
		form = newFundForm(a.vals, g, a.money)
	case formTask:
		if a.activeTab == tabCalendar {
			a.vals.date = string(a.cal.selected)
		}
		form = newTaskForm(a.vals)
	case formHabit:
		form = newHabitForm(a.vals)
	case formGoal:
		form = newGoalForm(a.vals)
	case formImport:
		form = newImportForm(a.vals)
	case formSetup:
		form = newSetupForm(a.vals, a.ws.Config)
	default:
		return a, nil
	}
	a.form = form
	a.formKind = kind
	if a.width > 0 {
		a.form = a.form.WithWidth(min(a.width-4, 72))
	}
	return a, a.form.Init()
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		a.form.State = huh.StateAborted
	}
	if a.form.State == huh.StateNormal {
		form, cmd := a.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			a.form = f
		}
		if a.form.State == huh.StateNormal {
			return a, cmd
		}
	}

	kind := a.formKind
	completed := a.form.State == huh.StateCompleted
	a.form = nil
	a.formKind = formNone
	if kind == formSetup {
		a.needSetup = false
	}
	if !completed {
		return a, nil
	}
	return a.applyForm(kind)
}

// applyForm carries out a completed form. The trackers validate and
// notify on their own; the form only converts strings.
func (a App) applyForm(kind formKind) (tea.Model, tea.Cmd) {
	v := a.vals
	switch kind {
	case formExpense:
		amount, _ := budget.ParseAmount(v.amount)
		_, _ = a.ws.Budget.AddExpense(budget.ExpenseInput{
			Amount:      amount,
			Category:    model.Category(v.category),
			Date:        model.Date(strings.TrimSpace(v.date)),
			Description: strings.TrimSpace(v.desc),
		})

	case formSavings:
		target, _ := budget.ParseAmount(v.target)
		in := budget.GoalInput{Name: v.name, Target: target, Icon: strings.TrimSpace(v.icon)}
		if strings.TrimSpace(v.current) != "" {
			in.Current, _ = budget.ParseAmount(v.current)
		}
		if d := strings.TrimSpace(v.deadline); d != "" {
			date := model.Date(d)
			in.Deadline = &date
		}
		_, _ = a.ws.Budget.AddSavingsGoal(in)

	case formFund:
		amount, _ := budget.ParseAmount(v.amount)
		_, _ = a.ws.Budget.AddToSavings(v.goalID, amount)

	case formTask:
		_, _ = a.ws.Tasks.AddTask(taskInput(v))

	case formHabit:
		_, _ = a.ws.Tasks.AddHabit(v.name, model.Frequency(v.frequency))

	case formGoal:
		target, _ := strconv.Atoi(strings.TrimSpace(v.target))
		_, _ = a.ws.Tasks.AddGoal(v.name, v.goalType, target)

	case formImport:
		a.busy = "Importing"
		return a, tea.Batch(readImportCmd(strings.TrimSpace(v.path)), a.spinner.Tick)

	case formSetup:
		cfg := a.ws.Config
		cfg.General.CurrencySymbol = strings.TrimSpace(v.currency)
		cfg.General.DefaultPeriod = v.period
		cfg.Appearance.Theme = v.themeName
		a.applyConfig(cfg)
		a.budget.period = pipeline.ParsePeriod(v.period)
	}
	return a, nil
}

// applyConfig saves cfg and applies it to the running session. A failed
// save still applies the settings until quit.
func (a *App) applyConfig(cfg config.Config) {
	theme.SetActive(cfg.Appearance.Theme)
	a.ws.Reconfigure(cfg)
	if err := config.Save(cfg); err != nil {
		log.WithError(err).Warn("tui: saving config")
		a.settings.saveErr = err
		a.ws.Notices.Notify(notify.Warning, "Settings apply to this session only: "+err.Error())
		return
	}
	a.settings.saveErr = nil
	a.ws.Notices.Notify(notify.Success, "Settings saved")
}
