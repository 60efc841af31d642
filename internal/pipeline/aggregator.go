// Package pipeline turns raw tracker state into the derived views the CLI
// and TUI render. Every function is pure; time-relative views take now
// explicitly.
package pipeline

import (
	"math"
	"sort"
	"time"

	"github.com/theirongolddev/planbook/internal/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SumExpenses totals the amounts of expenses.
func SumExpenses(expenses []model.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// CategoryStats sums expenses per fixed category, drops empty categories,
// and sorts by total descending. Ties keep catalog order. Unknown
// categories count as "other".
func CategoryStats(expenses []model.Expense) []model.CategoryStat {
	totals := make(map[model.Category]*model.CategoryStat)
	grand := decimal.Zero

	for _, e := range expenses {
		cat := e.Category
		if !cat.Valid() {
			cat = model.CategoryOther
		}
		cs, ok := totals[cat]
		if !ok {
			cs = &model.CategoryStat{Category: cat, Info: cat.Info(), Total: decimal.Zero}
			totals[cat] = cs
		}
		cs.Total = cs.Total.Add(e.Amount)
		cs.Count++
		grand = grand.Add(e.Amount)
	}

	result := make([]model.CategoryStat, 0, len(totals))
	for _, cat := range model.Categories() {
		cs, ok := totals[cat]
		if !ok || cs.Total.IsZero() {
			continue
		}
		if grand.IsPositive() {
			cs.Percent = cs.Total.Div(grand).Mul(hundred).InexactFloat64()
		}
		result = append(result, *cs)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Total.GreaterThan(result[j].Total)
	})
	return result
}

// DailySpend returns one entry per day for the last days days ending
// today, oldest first. Days without expenses have a zero total.
func DailySpend(expenses []model.Expense, days int, now time.Time) []model.DaySpend {
	if days <= 0 {
		return nil
	}
	today := model.DateOf(now)
	first := today.AddDays(-(days - 1))

	byDate := make(map[model.Date]*model.DaySpend, days)
	result := make([]model.DaySpend, days)
	for i := range result {
		d := first.AddDays(i)
		result[i] = model.DaySpend{Date: d, Total: decimal.Zero}
		byDate[d] = &result[i]
	}

	for _, e := range expenses {
		if ds, ok := byDate[e.Date]; ok {
			ds.Total = ds.Total.Add(e.Amount)
			ds.Count++
		}
	}
	return result
}

// Summary computes the overview figures of the budget for period.
func Summary(expenses []model.Expense, goals []model.SavingsGoal, balance, savings decimal.Decimal, period Period, now time.Time) model.BudgetSummary {
	s := model.BudgetSummary{
		Balance:      balance,
		Savings:      savings,
		PeriodSpend:  SumExpenses(ExpensesByPeriod(expenses, period, now)),
		GoalsTarget:  decimal.Zero,
		ExpenseCount: len(expenses),
		GoalCount:    len(goals),
	}
	for _, g := range goals {
		s.GoalsTarget = s.GoalsTarget.Add(g.Target)
	}
	return s
}

// roundPercent rounds half up, the way the dashboard has always displayed
// percentages.
func roundPercent(x float64) int {
	return int(math.Floor(x + 0.5))
}

// Percent returns part/whole as a rounded percentage, 0 when whole is 0.
func Percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return roundPercent(float64(part) / float64(whole) * 100)
}
