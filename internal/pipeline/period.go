package pipeline

import (
	"slices"
	"strings"
	"time"

	"github.com/theirongolddev/planbook/internal/model"
)

// Period bounds date-range queries over expenses.
type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

// Periods lists the selectable periods in display order.
func Periods() []Period {
	return []Period{PeriodToday, PeriodWeek, PeriodMonth, PeriodYear, PeriodAll}
}

// ParsePeriod maps s to a Period. Anything unrecognized means all time.
func ParsePeriod(s string) Period {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case PeriodToday, PeriodWeek, PeriodMonth, PeriodYear:
		return p
	}
	return PeriodAll
}

// Label is the display name of the period.
func (p Period) Label() string {
	switch p {
	case PeriodToday:
		return "Today"
	case PeriodWeek:
		return "Last 7 days"
	case PeriodMonth:
		return "This month"
	case PeriodYear:
		return "This year"
	}
	return "All time"
}

// Start returns the first date included in the period. ok is false for
// PeriodAll, which has no lower bound.
//
// The week is the last seven calendar days including today.
func (p Period) Start(now time.Time) (start model.Date, ok bool) {
	today := model.DateOf(now)
	switch p {
	case PeriodToday:
		return today, true
	case PeriodWeek:
		return today.AddDays(-6), true
	case PeriodMonth:
		return model.DateOf(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())), true
	case PeriodYear:
		return model.DateOf(time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())), true
	}
	return "", false
}

// ExpensesByPeriod keeps expenses dated on or after the period start,
// preserving order. Future-dated expenses are included.
func ExpensesByPeriod(expenses []model.Expense, p Period, now time.Time) []model.Expense {
	start, ok := p.Start(now)
	if !ok {
		return slices.Clone(expenses)
	}
	return FilterByDate(expenses, start, "")
}

// FilterByDate keeps expenses with since <= date < until. An empty bound
// is open.
func FilterByDate(expenses []model.Expense, since, until model.Date) []model.Expense {
	var result []model.Expense
	for _, e := range expenses {
		if since != "" && e.Date < since {
			continue
		}
		if until != "" && e.Date >= until {
			continue
		}
		result = append(result, e)
	}
	return result
}
