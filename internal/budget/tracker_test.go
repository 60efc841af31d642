package budget

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/theirongolddev/planbook/internal/clock"
	"github.com/theirongolddev/planbook/internal/ident"
	"github.com/theirongolddev/planbook/internal/model"
	"github.com/theirongolddev/planbook/internal/notify"
	"github.com/theirongolddev/planbook/internal/pipeline"
	"github.com/theirongolddev/planbook/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	tracker *Tracker
	notes   *notify.Recorder
	clock   *clock.Fixed
	medium  *store.Memory
	store   *store.Store
}

func setupTrackerTest(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		notes:  &notify.Recorder{},
		clock:  &clock.Fixed{T: time.Date(2025, time.March, 12, 15, 30, 0, 0, time.UTC)},
		medium: store.NewMemory(),
	}
	f.store = store.New(f.medium)
	f.tracker = NewTracker(Deps{
		Store:    f.store,
		Notifier: f.notes,
		Clock:    f.clock,
		IDs:      &ident.Sequence{Prefix: "b"},
	})
	return f
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func TestFreshTrackerStartsAtSeed(t *testing.T) {
	f := setupTrackerTest(t)
	assertDec(t, "25000", f.tracker.Balance())
	assertDec(t, "0", f.tracker.Savings())
	assert.Empty(t, f.tracker.Expenses())
	assert.Empty(t, f.tracker.Goals())
}

func TestAddExpense(t *testing.T) {
	f := setupTrackerTest(t)

	e, err := f.tracker.AddExpense(ExpenseInput{Amount: dec("500"), Category: model.CategoryFood, Description: "  "})
	require.NoError(t, err)

	assert.Equal(t, "b-1", e.ID)
	assert.Equal(t, model.Date("2025-03-12"), e.Date)
	assert.Equal(t, model.DefaultDescription, e.Description)
	assert.Equal(t, f.clock.Now(), e.CreatedAt)
	assertDec(t, "24500", f.tracker.Balance())
	assert.Equal(t, notify.Success, f.notes.Last().Kind)
	assert.Equal(t, "Expense 500 added", f.notes.Last().Message)

	second, err := f.tracker.AddExpense(ExpenseInput{Amount: dec("20"), Category: model.CategoryTransport, Date: "2025-03-01"})
	require.NoError(t, err)
	assert.Equal(t, second.ID, f.tracker.Expenses()[0].ID, "newest first")

	persisted := store.Get(store.New(f.medium), store.KeyExpenses, []model.Expense(nil))
	assert.Len(t, persisted, 2)
	assertDec(t, "24480", store.Get(store.New(f.medium), store.KeyBalance, decimal.Zero))
}

func TestAddExpenseRejections(t *testing.T) {
	tests := []struct {
		name string
		in   ExpenseInput
		want error
	}{
		{"zero", ExpenseInput{Amount: decimal.Zero}, ErrInvalidAmount},
		{"negative", ExpenseInput{Amount: dec("-5")}, ErrInvalidAmount},
		{"over balance", ExpenseInput{Amount: dec("25000.01")}, ErrInsufficientFunds},
		{"bad category", ExpenseInput{Amount: dec("5"), Category: "rent"}, ErrInvalidCategory},
		{"bad date", ExpenseInput{Amount: dec("5"), Date: "12/03/2025"}, ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupTrackerTest(t)
			_, err := f.tracker.AddExpense(tt.in)
			assert.ErrorIs(t, err, tt.want)
			assertDec(t, "25000", f.tracker.Balance())
			assert.Empty(t, f.tracker.Expenses())
			assert.Equal(t, notify.Error, f.notes.Last().Kind)
		})
	}
}

func TestExpenseBalanceRoundTrip(t *testing.T) {
	f := setupTrackerTest(t)
	_, err := f.tracker.AddExpense(ExpenseInput{Amount: dec("100"), Category: model.CategoryFood})
	require.NoError(t, err)
	before := f.tracker.Balance()

	e, err := f.tracker.AddExpense(ExpenseInput{Amount: dec("1234.56"), Category: model.CategoryShopping})
	require.NoError(t, err)
	assertDec(t, before.Sub(dec("1234.56")).String(), f.tracker.Balance())

	assert.True(t, f.tracker.DeleteExpense(e.ID))
	assert.True(t, before.Equal(f.tracker.Balance()))
	assert.Len(t, f.tracker.Expenses(), 1)
}

func TestDeleteUnknownExpenseIsNoop(t *testing.T) {
	f := setupTrackerTest(t)
	assert.False(t, f.tracker.DeleteExpense("nope"))
	assert.Empty(t, f.notes.Notes)
}

func TestAddSavingsGoal(t *testing.T) {
	f := setupTrackerTest(t)

	g, err := f.tracker.AddSavingsGoal(GoalInput{Name: " Laptop ", Target: dec("1000")})
	require.NoError(t, err)
	assert.Equal(t, "Laptop", g.Name)
	assertDec(t, "0", g.Current)
	assert.Equal(t, model.DefaultGoalIcon, g.Icon)
	assert.Nil(t, g.Deadline)
	assertDec(t, "25000", f.tracker.Balance())

	empty := model.Date("")
	g2, err := f.tracker.AddSavingsGoal(GoalInput{Name: "Trip", Target: dec("500"), Current: dec("50"), Deadline: &empty, Icon: "✈️"})
	require.NoError(t, err)
	assertDec(t, "50", g2.Current)
	assert.Nil(t, g2.Deadline)
	assert.Equal(t, g2.ID, f.tracker.Goals()[0].ID)

	_, err = f.tracker.AddSavingsGoal(GoalInput{Name: "", Target: dec("1")})
	assert.ErrorIs(t, err, ErrEmptyName)
	_, err = f.tracker.AddSavingsGoal(GoalInput{Name: "x", Target: dec("0")})
	assert.ErrorIs(t, err, ErrInvalidAmount)
	bad := model.Date("soon")
	_, err = f.tracker.AddSavingsGoal(GoalInput{Name: "x", Target: dec("1"), Deadline: &bad})
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.Len(t, f.tracker.Goals(), 2)
}

func TestAddToSavingsRejections(t *testing.T) {
	f := setupTrackerTest(t)
	g, err := f.tracker.AddSavingsGoal(GoalInput{Name: "Car", Target: dec("100000")})
	require.NoError(t, err)

	_, err = f.tracker.AddToSavings("missing", dec("10"))
	assert.ErrorIs(t, err, ErrGoalNotFound)
	_, err = f.tracker.AddToSavings(g.ID, dec("30000"))
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	_, err = f.tracker.AddToSavings(g.ID, dec("0"))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	assertDec(t, "25000", f.tracker.Balance())
	assertDec(t, "0", f.tracker.Savings())
}

func TestSavingsRoundTrip(t *testing.T) {
	f := setupTrackerTest(t)
	g, err := f.tracker.AddSavingsGoal(GoalInput{Name: "Bike", Target: dec("800")})
	require.NoError(t, err)
	balance, savings := f.tracker.Balance(), f.tracker.Savings()

	_, err = f.tracker.AddToSavings(g.ID, dec("250.25"))
	require.NoError(t, err)
	assert.True(t, f.tracker.DeleteGoal(g.ID))

	assert.True(t, balance.Equal(f.tracker.Balance()))
	assert.True(t, savings.Equal(f.tracker.Savings()))
	assert.Empty(t, f.tracker.Goals())
	assert.False(t, f.tracker.DeleteGoal(g.ID))
}

func TestBudgetScenario(t *testing.T) {
	f := setupTrackerTest(t)

	_, err := f.tracker.AddExpense(ExpenseInput{Amount: dec("500"), Category: model.CategoryFood})
	require.NoError(t, err)
	assertDec(t, "24500", f.tracker.Balance())

	g, err := f.tracker.AddSavingsGoal(GoalInput{Name: "Vacation", Target: dec("1000")})
	require.NoError(t, err)

	g, err = f.tracker.AddToSavings(g.ID, dec("300"))
	require.NoError(t, err)
	assertDec(t, "24200", f.tracker.Balance())
	assertDec(t, "300", f.tracker.Savings())
	assertDec(t, "300", g.Current)
	assert.InDelta(t, 30.0, g.Percent(), 0.0001)
	assert.Equal(t, `300 saved toward "Vacation"`, f.notes.Last().Message)

	noted := len(f.notes.Notes)
	g, err = f.tracker.AddToSavings(g.ID, dec("700"))
	require.NoError(t, err)
	assertDec(t, "1000", g.Current)
	assertDec(t, "23500", f.tracker.Balance())
	require.Len(t, f.notes.Notes, noted+2)
	reached := f.notes.Last()
	assert.Equal(t, `Goal "Vacation" reached! 🎉`, reached.Message)
	assert.Equal(t, GoalReachedDuration, reached.Duration)

	// Reaching the target does not lock the goal.
	g, err = f.tracker.AddToSavings(g.ID, dec("50"))
	require.NoError(t, err)
	assertDec(t, "1050", g.Current)
}

func TestClear(t *testing.T) {
	f := setupTrackerTest(t)
	_, _ = f.tracker.AddExpense(ExpenseInput{Amount: dec("10"), Category: model.CategoryFood})
	g, _ := f.tracker.AddSavingsGoal(GoalInput{Name: "x", Target: dec("10")})
	_, _ = f.tracker.AddToSavings(g.ID, dec("5"))

	f.tracker.Clear()
	assertDec(t, "25000", f.tracker.Balance())
	assertDec(t, "0", f.tracker.Savings())
	assert.Empty(t, f.tracker.Expenses())
	assert.Empty(t, f.tracker.Goals())

	reloaded := NewTracker(Deps{Store: store.New(f.medium)})
	assertDec(t, "25000", reloaded.Balance())
	assert.Empty(t, reloaded.Expenses())
}

func TestStateSurvivesReload(t *testing.T) {
	f := setupTrackerTest(t)
	_, err := f.tracker.AddExpense(ExpenseInput{Amount: dec("42.5"), Category: model.CategoryHealth})
	require.NoError(t, err)

	reloaded := NewTracker(Deps{Store: store.New(f.medium)})
	require.Len(t, reloaded.Expenses(), 1)
	assertDec(t, "42.5", reloaded.Expenses()[0].Amount)
	assertDec(t, "24957.5", reloaded.Balance())
}

func TestPersistFailureKeepsMutation(t *testing.T) {
	f := setupTrackerTest(t)
	var warned error
	f.store.OnFailure(func(err error) { warned = err })
	f.medium.FailWith(errors.New("disk full"))

	_, err := f.tracker.AddExpense(ExpenseInput{Amount: dec("100"), Category: model.CategoryFood})
	require.NoError(t, err)

	assert.Error(t, warned)
	assert.True(t, f.store.Degraded())
	assertDec(t, "24900", f.tracker.Balance())
	assert.Len(t, f.tracker.Expenses(), 1)
}

func TestViews(t *testing.T) {
	f := setupTrackerTest(t)
	_, _ = f.tracker.AddExpense(ExpenseInput{Amount: dec("100"), Category: model.CategoryFood})
	_, _ = f.tracker.AddExpense(ExpenseInput{Amount: dec("50"), Category: model.CategoryTransport, Date: "2025-01-02"})

	assert.Len(t, f.tracker.ExpensesByPeriod(pipeline.PeriodMonth), 1)
	assert.Len(t, f.tracker.ExpensesByPeriod(pipeline.PeriodYear), 2)

	stats := f.tracker.CategoryStats(pipeline.PeriodAll)
	require.Len(t, stats, 2)
	assert.Equal(t, model.CategoryFood, stats[0].Category)

	insights := f.tracker.Insights()
	assert.Equal(t, pipeline.PeakSpendingTitle, insights[len(insights)-1].Title)

	s := f.tracker.Summary(pipeline.PeriodMonth)
	assertDec(t, "100", s.PeriodSpend)
	assertDec(t, "24850", s.Balance)

	assert.Len(t, f.tracker.DailySpend(7), 7)
}

func TestExportImportIdempotent(t *testing.T) {
	f := setupTrackerTest(t)
	_, _ = f.tracker.AddExpense(ExpenseInput{Amount: dec("500"), Category: model.CategoryFood, Description: "groceries"})
	deadline := model.Date("2025-12-31")
	g, _ := f.tracker.AddSavingsGoal(GoalInput{Name: "Laptop", Target: dec("1000"), Deadline: &deadline})
	_, _ = f.tracker.AddToSavings(g.ID, dec("300"))

	before, err := f.tracker.ExportJSON()
	require.NoError(t, err)

	require.NoError(t, f.tracker.Import(before))
	after, err := f.tracker.ExportJSON()
	require.NoError(t, err)

	assert.JSONEq(t, string(before), string(after))
	assert.Equal(t, "Data imported", f.notes.Last().Message)
}

func TestImportIntoFreshTracker(t *testing.T) {
	src := setupTrackerTest(t)
	_, _ = src.tracker.AddExpense(ExpenseInput{Amount: dec("75"), Category: model.CategoryEducation})
	data, err := src.tracker.ExportJSON()
	require.NoError(t, err)

	dst := setupTrackerTest(t)
	require.NoError(t, dst.tracker.Import(data))
	assertDec(t, "24925", dst.tracker.Balance())
	require.Len(t, dst.tracker.Expenses(), 1)
	assert.Equal(t, model.CategoryEducation, dst.tracker.Expenses()[0].Category)
}

func TestImportRejectsWholesale(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		fields []string
	}{
		{"not json", `{oops`, []string{""}},
		{"array", `[]`, []string{""}},
		{"missing all", `{}`, []string{"expenses", "savingsGoals", "balance"}},
		{"null expenses", `{"expenses": null, "savingsGoals": [], "balance": 1}`, []string{"expenses"}},
		{"no balance", `{"expenses": [], "savingsGoals": []}`, []string{"balance"}},
		{"balance text", `{"expenses": [], "savingsGoals": [], "balance": "lots"}`, []string{"balance"}},
		{"expenses object", `{"expenses": {}, "savingsGoals": [], "balance": 1}`, []string{"expenses"}},
		{
			"bad expense",
			`{"expenses": [{"id": "", "amount": -1, "category": "rent", "date": "x"}], "savingsGoals": [], "balance": 1}`,
			[]string{"expenses[0].id", "expenses[0].amount", "expenses[0].category", "expenses[0].date"},
		},
		{
			"bad goal",
			`{"expenses": [], "savingsGoals": [{"id": "g", "name": "", "target": 0, "current": -2}], "balance": 1}`,
			[]string{"savingsGoals[0].name", "savingsGoals[0].target", "savingsGoals[0].current"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupTrackerTest(t)
			_, _ = f.tracker.AddExpense(ExpenseInput{Amount: dec("10"), Category: model.CategoryFood})

			err := f.tracker.Import([]byte(tt.doc))
			var importErr *ImportError
			require.ErrorAs(t, err, &importErr)

			var fields []string
			for _, v := range importErr.Violations {
				fields = append(fields, v.Field)
			}
			assert.Equal(t, tt.fields, fields)

			assert.Len(t, f.tracker.Expenses(), 1)
			assertDec(t, "24990", f.tracker.Balance())
			assert.Equal(t, notify.Error, f.notes.Last().Kind)
		})
	}
}

func TestImportAcceptsLegacyDocument(t *testing.T) {
	doc := `{
		"expenses": [{"id": "lz1k2", "amount": 350, "category": "food", "date": "2025-03-10",
			"description": "Lunch", "createdAt": "2025-03-10T12:00:00.000Z"}],
		"savingsGoals": [{"id": "lz1k3", "name": "Phone", "target": 30000, "current": 1000,
			"deadline": "", "icon": "📱", "createdAt": "2025-03-01T08:00:00.000Z"}],
		"balance": 23650
	}`
	res, violations := ValidateImport([]byte(doc))
	require.Empty(t, violations)
	assertDec(t, "0", res.Savings)
	assertDec(t, "23650", res.Balance)
	require.Len(t, res.SavingsGoals, 1)
	assert.Nil(t, res.SavingsGoals[0].Deadline)
	assert.Nil(t, res.ExportedAt)
}

func TestExportShape(t *testing.T) {
	f := setupTrackerTest(t)
	data, err := f.tracker.ExportJSON()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, []any{}, raw["expenses"])
	assert.Equal(t, []any{}, raw["savingsGoals"])
	assert.Equal(t, float64(25000), raw["balance"])
	assert.Equal(t, float64(0), raw["savings"])
	assert.Equal(t, "2025-03-12T15:30:00Z", raw["exportedAt"])

	assert.Equal(t, "budget-data-2025-03-12.json", ExportFilename(f.clock.Now()))
}

func TestParseAmount(t *testing.T) {
	d, err := ParseAmount(" 12.50 ")
	require.NoError(t, err)
	assertDec(t, "12.5", d)

	for _, in := range []string{"", "abc", "0", "-3", "NaN"} {
		_, err := ParseAmount(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, in)
	}
}
