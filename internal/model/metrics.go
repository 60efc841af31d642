package model

import "github.com/shopspring/decimal"

// CategoryStat is the spend in one category over a period.
type CategoryStat struct {
	Category Category
	Info     CategoryInfo
	Total    decimal.Decimal
	Count    int
	Percent  float64 // share of the period total
}

// DaySpend holds the expense total for one calendar day.
type DaySpend struct {
	Date  Date
	Total decimal.Decimal
	Count int
}

// InsightKind tags an insight for rendering.
type InsightKind string

const (
	InsightPositive InsightKind = "positive"
	InsightWarning  InsightKind = "warning"
	InsightInfo     InsightKind = "info"
	InsightTip      InsightKind = "tip"
)

// Insight is a short advisory derived from spending and goals.
type Insight struct {
	Kind        InsightKind
	Icon        string
	Title       string
	Description string
}

// BudgetSummary holds the overview figures of the budget.
type BudgetSummary struct {
	Balance      decimal.Decimal
	Savings      decimal.Decimal
	PeriodSpend  decimal.Decimal
	GoalsTarget  decimal.Decimal
	ExpenseCount int
	GoalCount    int
}

// TaskStats holds the counters shown on the task dashboard.
type TaskStats struct {
	TotalTasks     int
	ActiveTasks    int
	CompletedTasks int
	TodayTasks     int
	TodayCompleted int

	ActiveHabits    int
	HabitsDoneToday int
	SuccessRate     int // percent of active habits done today
	Productivity    int // percent of today's items completed
}

// CalendarCell is one slot of a month grid. Empty cells pad the grid and
// carry no date.
type CalendarCell struct {
	Empty     bool
	Date      Date
	Day       int
	IsToday   bool
	HasTasks  bool
	HasHabits bool
}

// WeekProgress summarizes one habit over a week.
type WeekProgress struct {
	Done    int
	Days    int
	Percent int
}
