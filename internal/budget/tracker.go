// Package budget owns the expense, savings goal, balance and savings state.
// Every operation validates, mutates, persists the touched snapshots and
// emits one notification.
package budget

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/theirongolddev/planbook/internal/clock"
	"github.com/theirongolddev/planbook/internal/ident"
	"github.com/theirongolddev/planbook/internal/model"
	"github.com/theirongolddev/planbook/internal/notify"
	"github.com/theirongolddev/planbook/internal/pipeline"
	"github.com/theirongolddev/planbook/internal/store"

	"github.com/shopspring/decimal"
)

// GoalReachedDuration is how long the "goal reached" notice stays up.
const GoalReachedDuration = 5 * time.Second

// Deps are the collaborators of a Tracker. Zero values get defaults.
type Deps struct {
	Store               *store.Store
	Notifier            notify.Notifier
	Clock               clock.Clock
	IDs                 ident.IDGenerator
	Money               pipeline.MoneyFunc
	GoalReachedDuration time.Duration
}

// Tracker is the budget state container.
type Tracker struct {
	st      *store.Store
	notes   notify.Notifier
	clock   clock.Clock
	ids     ident.IDGenerator
	money   pipeline.MoneyFunc
	reached time.Duration

	expenses []model.Expense
	goals    []model.SavingsGoal
	balance  decimal.Decimal
	savings  decimal.Decimal
}

// NewTracker creates a Tracker and loads its snapshots from the store.
func NewTracker(d Deps) *Tracker {
	t := &Tracker{
		st:      d.Store,
		notes:   d.Notifier,
		clock:   d.Clock,
		ids:     d.IDs,
		money:   d.Money,
		reached: d.GoalReachedDuration,
	}
	if t.st == nil {
		t.st = store.New(nil)
	}
	if t.notes == nil {
		t.notes = &notify.Recorder{}
	}
	if t.clock == nil {
		t.clock = clock.System{}
	}
	if t.ids == nil {
		t.ids = ident.UUID{}
	}
	if t.money == nil {
		t.money = func(d decimal.Decimal) string { return d.String() }
	}
	if t.reached <= 0 {
		t.reached = GoalReachedDuration
	}
	t.load()
	return t
}

func (t *Tracker) load() {
	t.expenses = store.Get(t.st, store.KeyExpenses, []model.Expense{})
	t.goals = store.Get(t.st, store.KeySavingsGoals, []model.SavingsGoal{})
	t.balance = store.Get(t.st, store.KeyBalance, model.SeedBalance)
	t.savings = store.Get(t.st, store.KeySavings, decimal.Zero)
}

// SetGoalReachedDuration changes how long the "goal reached" notice shows.
func (t *Tracker) SetGoalReachedDuration(d time.Duration) { t.reached = d }

// Balance returns the spendable balance.
func (t *Tracker) Balance() decimal.Decimal { return t.balance }

// Savings returns the total moved into savings goals.
func (t *Tracker) Savings() decimal.Decimal { return t.savings }

// Expenses returns all expenses, newest first.
func (t *Tracker) Expenses() []model.Expense { return slices.Clone(t.expenses) }

// Goals returns all savings goals, newest first.
func (t *Tracker) Goals() []model.SavingsGoal { return slices.Clone(t.goals) }

// Goal looks up a savings goal by ID.
func (t *Tracker) Goal(id string) (model.SavingsGoal, bool) {
	if i := t.goalIndex(id); i >= 0 {
		return t.goals[i], true
	}
	return model.SavingsGoal{}, false
}

// ExpenseInput describes a new expense. An empty Date means today and an
// empty Category means other.
type ExpenseInput struct {
	Amount      decimal.Decimal
	Category    model.Category
	Date        model.Date
	Description string
}

// AddExpense records a spend and takes it from the balance.
func (t *Tracker) AddExpense(in ExpenseInput) (model.Expense, error) {
	if !in.Amount.IsPositive() {
		return model.Expense{}, t.reject(ErrInvalidAmount)
	}
	if in.Category == "" {
		in.Category = model.CategoryOther
	}
	if !in.Category.Valid() {
		return model.Expense{}, t.reject(ErrInvalidCategory)
	}
	if in.Date == "" {
		in.Date = model.DateOf(t.clock.Now())
	}
	if !in.Date.Valid() {
		return model.Expense{}, t.reject(ErrInvalidDate)
	}
	if in.Amount.GreaterThan(t.balance) {
		return model.Expense{}, t.reject(ErrInsufficientFunds)
	}

	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		desc = model.DefaultDescription
	}
	e := model.Expense{
		ID:          t.ids.NewID(),
		Amount:      in.Amount,
		Category:    in.Category,
		Date:        in.Date,
		Description: desc,
		CreatedAt:   t.clock.Now(),
	}

	t.expenses = slices.Insert(t.expenses, 0, e)
	t.balance = t.balance.Sub(e.Amount)
	t.st.Set(store.KeyExpenses, t.expenses)
	t.st.Set(store.KeyBalance, t.balance)

	t.notes.Notify(notify.Success, fmt.Sprintf("Expense %s added", t.money(e.Amount)))
	return e, nil
}

// DeleteExpense removes an expense and returns its amount to the balance.
// Unknown IDs are ignored.
func (t *Tracker) DeleteExpense(id string) bool {
	i := slices.IndexFunc(t.expenses, func(e model.Expense) bool { return e.ID == id })
	if i < 0 {
		return false
	}
	e := t.expenses[i]
	t.balance = t.balance.Add(e.Amount)
	t.expenses = slices.Delete(t.expenses, i, i+1)
	t.st.Set(store.KeyExpenses, t.expenses)
	t.st.Set(store.KeyBalance, t.balance)

	t.notes.Notify(notify.Success, "Expense deleted")
	return true
}

// GoalInput describes a new savings goal. Current is an optional seed and
// does not touch the balance.
type GoalInput struct {
	Name     string
	Target   decimal.Decimal
	Current  decimal.Decimal
	Deadline *model.Date
	Icon     string
}

// AddSavingsGoal creates a savings goal.
func (t *Tracker) AddSavingsGoal(in GoalInput) (model.SavingsGoal, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.SavingsGoal{}, t.reject(ErrEmptyName)
	}
	if !in.Target.IsPositive() || in.Current.IsNegative() {
		return model.SavingsGoal{}, t.reject(ErrInvalidAmount)
	}
	if in.Deadline != nil && *in.Deadline == "" {
		in.Deadline = nil
	}
	if in.Deadline != nil && !in.Deadline.Valid() {
		return model.SavingsGoal{}, t.reject(ErrInvalidDate)
	}
	icon := strings.TrimSpace(in.Icon)
	if icon == "" {
		icon = model.DefaultGoalIcon
	}

	g := model.SavingsGoal{
		ID:        t.ids.NewID(),
		Name:      name,
		Target:    in.Target,
		Current:   in.Current,
		Deadline:  in.Deadline,
		Icon:      icon,
		CreatedAt: t.clock.Now(),
	}
	t.goals = slices.Insert(t.goals, 0, g)
	t.st.Set(store.KeySavingsGoals, t.goals)

	t.notes.Notify(notify.Success, fmt.Sprintf("Goal %q created", g.Name))
	return g, nil
}

// AddToSavings moves amount from the balance into a goal. Goals past their
// target keep accepting money.
func (t *Tracker) AddToSavings(goalID string, amount decimal.Decimal) (model.SavingsGoal, error) {
	if !amount.IsPositive() {
		return model.SavingsGoal{}, t.reject(ErrInvalidAmount)
	}
	i := t.goalIndex(goalID)
	if i < 0 {
		return model.SavingsGoal{}, t.reject(ErrGoalNotFound)
	}
	if amount.GreaterThan(t.balance) {
		return model.SavingsGoal{}, t.reject(ErrInsufficientFunds)
	}

	g := &t.goals[i]
	g.Current = g.Current.Add(amount)
	t.savings = t.savings.Add(amount)
	t.balance = t.balance.Sub(amount)
	t.st.Set(store.KeySavingsGoals, t.goals)
	t.st.Set(store.KeySavings, t.savings)
	t.st.Set(store.KeyBalance, t.balance)

	t.notes.Notify(notify.Success, fmt.Sprintf("%s saved toward %q", t.money(amount), g.Name))
	if g.Reached() {
		t.notes.NotifyFor(notify.Success, fmt.Sprintf("Goal %q reached! 🎉", g.Name), t.reached)
	}
	return *g, nil
}

// DeleteGoal removes a goal, returning its current amount to the balance
// and taking it out of savings. Unknown IDs are ignored.
func (t *Tracker) DeleteGoal(id string) bool {
	i := t.goalIndex(id)
	if i < 0 {
		return false
	}
	g := t.goals[i]
	t.balance = t.balance.Add(g.Current)
	t.savings = t.savings.Sub(g.Current)
	t.goals = slices.Delete(t.goals, i, i+1)
	t.st.Set(store.KeySavingsGoals, t.goals)
	t.st.Set(store.KeySavings, t.savings)
	t.st.Set(store.KeyBalance, t.balance)

	t.notes.Notify(notify.Success, "Goal deleted")
	return true
}

// Clear resets the budget to its initial state.
func (t *Tracker) Clear() {
	t.expenses = []model.Expense{}
	t.goals = []model.SavingsGoal{}
	t.balance = model.SeedBalance
	t.savings = decimal.Zero
	t.persistAll()
	t.notes.Notify(notify.Success, "All budget data cleared")
}

// ExpensesByPeriod returns the expenses within p, newest first.
func (t *Tracker) ExpensesByPeriod(p pipeline.Period) []model.Expense {
	return pipeline.ExpensesByPeriod(t.expenses, p, t.clock.Now())
}

// CategoryStats returns per-category totals within p.
func (t *Tracker) CategoryStats(p pipeline.Period) []model.CategoryStat {
	return pipeline.CategoryStats(t.ExpensesByPeriod(p))
}

// Insights returns the full advisory list.
func (t *Tracker) Insights() []model.Insight {
	return pipeline.Insights(t.expenses, t.goals, t.clock.Now(), t.money)
}

// Summary returns the overview figures with spend measured over p.
func (t *Tracker) Summary(p pipeline.Period) model.BudgetSummary {
	return pipeline.Summary(t.expenses, t.goals, t.balance, t.savings, p, t.clock.Now())
}

// DailySpend returns per-day totals for the last days days.
func (t *Tracker) DailySpend(days int) []model.DaySpend {
	return pipeline.DailySpend(t.expenses, days, t.clock.Now())
}

func (t *Tracker) goalIndex(id string) int {
	return slices.IndexFunc(t.goals, func(g model.SavingsGoal) bool { return g.ID == id })
}

func (t *Tracker) persistAll() {
	t.st.Set(store.KeyExpenses, t.expenses)
	t.st.Set(store.KeySavingsGoals, t.goals)
	t.st.Set(store.KeyBalance, t.balance)
	t.st.Set(store.KeySavings, t.savings)
}

func (t *Tracker) reject(err error) error {
	msg := err.Error()
	t.notes.Notify(notify.Error, strings.ToUpper(msg[:1])+msg[1:])
	return err
}

// ParseAmount parses user input as a positive amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}
