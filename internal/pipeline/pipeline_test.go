package pipeline

import (
	"testing"
	"time"

	"github.com/theirongolddev/planbook/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday.
var now = time.Date(2025, time.March, 12, 15, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expense(id, amount string, cat model.Category, date model.Date) model.Expense {
	return model.Expense{ID: id, Amount: dec(amount), Category: cat, Date: date}
}

func ids(expenses []model.Expense) []string {
	out := make([]string, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, e.ID)
	}
	return out
}

func TestExpensesByPeriod(t *testing.T) {
	expenses := []model.Expense{
		expense("today", "1", model.CategoryFood, "2025-03-12"),
		expense("6days", "1", model.CategoryFood, "2025-03-06"),
		expense("7days", "1", model.CategoryFood, "2025-03-05"),
		expense("month", "1", model.CategoryFood, "2025-03-01"),
		expense("feb", "1", model.CategoryFood, "2025-02-28"),
		expense("year", "1", model.CategoryFood, "2025-01-01"),
		expense("lastyear", "1", model.CategoryFood, "2024-12-31"),
		expense("future", "1", model.CategoryFood, "2025-04-02"),
	}

	tests := []struct {
		period Period
		want   []string
	}{
		{PeriodToday, []string{"today", "future"}},
		{PeriodWeek, []string{"today", "6days", "future"}},
		{PeriodMonth, []string{"today", "6days", "7days", "month", "future"}},
		{PeriodYear, []string{"today", "6days", "7days", "month", "feb", "year", "future"}},
		{ParsePeriod("decade"), ids(expenses)},
	}
	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			assert.Equal(t, tt.want, ids(ExpensesByPeriod(expenses, tt.period, now)))
		})
	}
}

func TestParsePeriod(t *testing.T) {
	assert.Equal(t, PeriodMonth, ParsePeriod(" Month "))
	assert.Equal(t, PeriodAll, ParsePeriod(""))
	assert.Equal(t, PeriodAll, ParsePeriod("all"))
}

func TestCategoryStats(t *testing.T) {
	expenses := []model.Expense{
		expense("a", "100", model.CategoryTransport, "2025-03-10"),
		expense("b", "250.50", model.CategoryFood, "2025-03-11"),
		expense("c", "100", model.CategoryHealth, "2025-03-11"),
		expense("d", "49.50", model.CategoryFood, "2025-03-12"),
	}

	stats := CategoryStats(expenses)
	require.Len(t, stats, 3)

	assert.Equal(t, model.CategoryFood, stats[0].Category)
	assert.True(t, dec("300").Equal(stats[0].Total))
	assert.Equal(t, 2, stats[0].Count)
	assert.InDelta(t, 60.0, stats[0].Percent, 0.001)
	// Equal totals keep catalog order: transport before health.
	assert.Equal(t, model.CategoryTransport, stats[1].Category)
	assert.Equal(t, model.CategoryHealth, stats[2].Category)

	sum := decimal.Zero
	for _, s := range stats {
		assert.False(t, s.Total.IsZero())
		sum = sum.Add(s.Total)
	}
	assert.True(t, SumExpenses(expenses).Equal(sum))
}

func TestCategoryStatsEmpty(t *testing.T) {
	assert.Empty(t, CategoryStats(nil))
}

func TestDailySpend(t *testing.T) {
	expenses := []model.Expense{
		expense("a", "10", model.CategoryFood, "2025-03-12"),
		expense("b", "5", model.CategoryFood, "2025-03-12"),
		expense("c", "7", model.CategoryFood, "2025-03-10"),
		expense("old", "99", model.CategoryFood, "2025-03-01"),
	}

	days := DailySpend(expenses, 3, now)
	require.Len(t, days, 3)
	assert.Equal(t, model.Date("2025-03-10"), days[0].Date)
	assert.True(t, dec("7").Equal(days[0].Total))
	assert.True(t, days[1].Total.IsZero())
	assert.True(t, dec("15").Equal(days[2].Total))
	assert.Equal(t, 2, days[2].Count)
}

func TestSummary(t *testing.T) {
	expenses := []model.Expense{
		expense("a", "10", model.CategoryFood, "2025-03-12"),
		expense("b", "20", model.CategoryFood, "2025-02-01"),
	}
	goals := []model.SavingsGoal{{Target: dec("1000")}, {Target: dec("500")}}

	s := Summary(expenses, goals, dec("24970"), dec("0"), PeriodMonth, now)
	assert.True(t, dec("10").Equal(s.PeriodSpend))
	assert.True(t, dec("1500").Equal(s.GoalsTarget))
	assert.Equal(t, 2, s.ExpenseCount)
	assert.Equal(t, 2, s.GoalCount)
}

func titles(insights []model.Insight) []string {
	out := make([]string, 0, len(insights))
	for _, in := range insights {
		out = append(out, in.Title)
	}
	return out
}

func TestInsightsOnlyTipWhenEmpty(t *testing.T) {
	got := Insights(nil, nil, now, nil)
	assert.Equal(t, []string{PeakSpendingTitle}, titles(got))
	assert.Equal(t, model.InsightTip, got[0].Kind)
}

func TestInsightsSavedThisWeek(t *testing.T) {
	expenses := []model.Expense{
		expense("this", "200", model.CategoryFood, "2025-03-11"),
		expense("this2", "200", model.CategoryTransport, "2025-03-10"),
		expense("this3", "200", model.CategoryHealth, "2025-03-06"),
		expense("last", "1000", model.CategoryFood, "2025-03-05"),
	}

	got := Insights(expenses, nil, now, nil)
	require.Len(t, got, 2)
	assert.Equal(t, model.InsightPositive, got[0].Kind)
	assert.Equal(t, "You spent 400 (40%) less than last week", got[0].Description)
	assert.Equal(t, PeakSpendingTitle, got[1].Title)
}

func TestInsightsSpendingUp(t *testing.T) {
	expenses := []model.Expense{
		expense("this", "150", model.CategoryFood, "2025-03-12"),
		expense("this2", "150", model.CategoryShopping, "2025-03-12"),
		expense("this3", "150", model.CategoryTransport, "2025-03-12"),
		expense("last", "100", model.CategoryFood, "2025-02-28"),
	}

	got := Insights(expenses, nil, now, func(d decimal.Decimal) string { return "$" + d.String() })
	require.Len(t, got, 2)
	assert.Equal(t, model.InsightWarning, got[0].Kind)
	assert.Equal(t, "You spent $350 (350%) more than last week", got[0].Description)
}

func TestInsightsTenPercentIncreaseWarns(t *testing.T) {
	expenses := []model.Expense{
		expense("this", "110", model.CategoryFood, "2025-03-12"),
		expense("this2", "110", model.CategoryTransport, "2025-03-11"),
		expense("this3", "110", model.CategoryHealth, "2025-03-10"),
		expense("last", "300", model.CategoryFood, "2025-03-01"),
	}

	got := Insights(expenses, nil, now, func(d decimal.Decimal) string { return "$" + d.String() })
	require.Len(t, got, 2)
	assert.Equal(t, model.InsightWarning, got[0].Kind)
	assert.Equal(t, "You spent $30 (10%) more than last week", got[0].Description)
}

func TestInsightsSmallIncreaseIsQuiet(t *testing.T) {
	expenses := []model.Expense{
		expense("this", "105", model.CategoryFood, "2025-03-12"),
		expense("this2", "100", model.CategoryTransport, "2025-03-12"),
		expense("this3", "100", model.CategoryHealth, "2025-03-12"),
		expense("last", "300", model.CategoryFood, "2025-03-01"),
	}
	assert.Equal(t, []string{PeakSpendingTitle}, titles(Insights(expenses, nil, now, nil)))
}

func TestInsightsTopCategory(t *testing.T) {
	expenses := []model.Expense{
		expense("a", "500", model.CategoryFood, "2025-03-12"),
		expense("b", "100", model.CategoryTransport, "2025-03-11"),
	}

	got := Insights(expenses, nil, now, nil)
	require.Len(t, got, 2)
	assert.Equal(t, "You spend a lot on food", got[0].Title)
	assert.Equal(t, "Food is 83% of this week's spending. Worth a closer look.", got[0].Description)
}

func TestInsightsClosestGoal(t *testing.T) {
	goals := []model.SavingsGoal{
		{Name: "Bike", Target: dec("1000"), Current: dec("100")},
		{Name: "Laptop", Target: dec("1000"), Current: dec("750")},
		{Name: "Trip", Target: dec("1000"), Current: dec("600")},
	}
	got := Insights(nil, goals, now, nil)
	require.Len(t, got, 2)
	assert.Equal(t, `You're close to "Laptop"!`, got[0].Title)
	assert.Equal(t, "250 left to save (25%)", got[0].Description)

	reached := []model.SavingsGoal{{Name: "Done", Target: dec("100"), Current: dec("120")}}
	assert.Len(t, Insights(nil, reached, now, nil), 1)
}

func TestTopInsights(t *testing.T) {
	list := make([]model.Insight, 4)
	assert.Len(t, TopInsights(list, 3), 3)
	assert.Len(t, TopInsights(list[:2], 3), 2)
}

func TestStreak(t *testing.T) {
	today := model.DateOf(now)
	for _, k := range []int{0, 1, 2, 7, 100, 364, 365} {
		days := model.DayProgress{}
		for i := range k {
			days[today.AddDays(-i)] = true
		}
		days[today.AddDays(-k)] = false
		assert.Equal(t, k, Streak(days, today), "k=%d", k)
	}
}

func TestStreakCapped(t *testing.T) {
	today := model.DateOf(now)
	days := model.DayProgress{}
	for i := range 400 {
		days[today.AddDays(-i)] = true
	}
	assert.Equal(t, MaxStreak, Streak(days, today))
}

func TestStreakGapResets(t *testing.T) {
	today := model.DateOf(now)
	days := model.DayProgress{
		today:             true,
		today.AddDays(-2): true,
		today.AddDays(-3): true,
	}
	assert.Equal(t, 1, Streak(days, today))
	assert.Equal(t, 0, Streak(model.DayProgress{today.AddDays(-1): true}, today))
}

func TestWeekDatesMondayFirst(t *testing.T) {
	dates := WeekDates(now)
	require.Len(t, dates, 7)
	assert.Equal(t, model.Date("2025-03-10"), dates[0])
	assert.Equal(t, model.Date("2025-03-16"), dates[6])

	sunday := time.Date(2025, time.March, 16, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, model.Date("2025-03-10"), WeekDates(sunday)[0])
}

func TestWeekProgress(t *testing.T) {
	week := WeekDates(now)
	days := model.DayProgress{week[0]: true, week[1]: false, week[2]: true, "2025-03-01": true}
	wp := WeekProgress(days, week)
	assert.Equal(t, model.WeekProgress{Done: 2, Days: 7, Percent: 29}, wp)
}

func TestMonthGrid(t *testing.T) {
	tasks := []model.Task{{ID: "t", Date: "2025-03-03"}}
	progress := model.HabitProgress{"h": {"2025-03-04": false}}

	cells := MonthGrid(2025, time.March, "2025-03-12", tasks, progress)
	require.Len(t, cells, GridCells)

	// March 1st 2025 is a Saturday: five leading blanks.
	for i := range 5 {
		assert.True(t, cells[i].Empty, "cell %d", i)
	}
	assert.Equal(t, 1, cells[5].Day)
	assert.Equal(t, model.Date("2025-03-01"), cells[5].Date)

	third := cells[7]
	assert.Equal(t, 3, third.Day)
	assert.True(t, third.HasTasks)
	assert.False(t, third.HasHabits)

	fourth := cells[8]
	assert.True(t, fourth.HasHabits)

	assert.True(t, cells[16].IsToday)
	assert.Equal(t, 31, cells[35].Day)
	assert.True(t, cells[36].Empty)
}

func TestMonthGridSundayFirst(t *testing.T) {
	// June 1st 2025 is a Sunday: six leading blanks.
	cells := MonthGrid(2025, time.June, "", nil, nil)
	assert.True(t, cells[5].Empty)
	assert.Equal(t, 1, cells[6].Day)
}

func TestFilterAndSearchTasks(t *testing.T) {
	tasks := []model.Task{
		{ID: "1", Text: "Write report", Category: model.TaskWork, Date: "2025-03-12"},
		{ID: "2", Text: "Buy milk", Category: model.TaskHome, Date: "2025-03-11", Completed: true},
		{ID: "3", Text: "Stretch", Category: model.TaskHealth, Date: "2025-03-12", Completed: true},
	}
	today := model.DateOf(now)

	active := FilterTasks(tasks, FilterActive, today)
	completed := FilterTasks(tasks, FilterCompleted, today)
	assert.Len(t, active, 1)
	assert.Len(t, completed, 2)
	assert.Equal(t, len(tasks), len(active)+len(completed))
	assert.Len(t, FilterTasks(tasks, FilterToday, today), 2)
	assert.Len(t, FilterTasks(tasks, ParseTaskFilter("bogus"), today), 3)

	assert.Len(t, SearchTasks(tasks, "  "), 3)
	assert.Equal(t, "2", SearchTasks(tasks, "MILK")[0].ID)
	assert.Equal(t, "3", SearchTasks(tasks, "health")[0].ID)
	assert.Empty(t, SearchTasks(tasks, "zzz"))
}

func TestTaskStats(t *testing.T) {
	today := model.DateOf(now)
	tasks := []model.Task{
		{ID: "1", Date: today, Completed: true},
		{ID: "2", Date: today},
		{ID: "3", Date: today.AddDays(-1), Completed: true},
	}
	habits := []model.Habit{{ID: "h1"}, {ID: "h2"}}
	progress := model.HabitProgress{"h1": {today: true}, "h2": {today: false}}

	s := TaskStats(tasks, habits, progress, today)
	assert.Equal(t, 3, s.TotalTasks)
	assert.Equal(t, 1, s.ActiveTasks)
	assert.Equal(t, 2, s.CompletedTasks)
	assert.Equal(t, 2, s.TodayTasks)
	assert.Equal(t, 1, s.TodayCompleted)
	assert.Equal(t, 2, s.ActiveHabits)
	assert.Equal(t, 1, s.HabitsDoneToday)
	assert.Equal(t, 50, s.SuccessRate)
	// (1 task + 1 habit) / (2 tasks + 2 habits)
	assert.Equal(t, 50, s.Productivity)

	assert.Equal(t, 0, TaskStats(nil, nil, nil, today).Productivity)
}

func TestHabitsForDate(t *testing.T) {
	habits := []model.Habit{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	progress := model.HabitProgress{"a": {"2025-03-12": true}, "b": {"2025-03-12": false}}
	got := HabitsForDate(habits, progress, "2025-03-12")
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
}
