package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/planbook/internal/model"

	"github.com/shopspring/decimal"
)

// MoneyFunc renders an amount for insight text.
type MoneyFunc func(decimal.Decimal) string

// Thresholds used by Insights.
const (
	SpendIncreaseWarnPct = 10
	TopCategoryPct       = 40
	GoalCloseMinPct      = 50
)

// PeakSpendingTitle is the fixed closing tip.
const PeakSpendingTitle = "Peak spending: Wednesday 18:00-21:00"

// Insights derives the advisory list in its fixed order: week-over-week
// change, dominant category, nearest goal, then a static tip.
func Insights(expenses []model.Expense, goals []model.SavingsGoal, now time.Time, money MoneyFunc) []model.Insight {
	if money == nil {
		money = func(d decimal.Decimal) string { return d.StringFixed(0) }
	}

	today := model.DateOf(now)
	thisWeek := FilterByDate(expenses, today.AddDays(-6), "")
	lastWeek := FilterByDate(expenses, today.AddDays(-13), today.AddDays(-6))
	thisTotal := SumExpenses(thisWeek)
	lastTotal := SumExpenses(lastWeek)

	var insights []model.Insight

	if lastTotal.IsPositive() {
		diff := thisTotal.Sub(lastTotal)
		pct := roundPercent(diff.Div(lastTotal).Mul(hundred).InexactFloat64())
		switch {
		case diff.IsNegative():
			insights = append(insights, model.Insight{
				Kind:        model.InsightPositive,
				Icon:        "📅",
				Title:       "Great week for saving!",
				Description: fmt.Sprintf("You spent %s (%d%%) less than last week", money(diff.Abs()), -pct),
			})
		case diff.IsPositive() && pct >= SpendIncreaseWarnPct:
			insights = append(insights, model.Insight{
				Kind:        model.InsightWarning,
				Icon:        "⚠️",
				Title:       "Heads up: spending is growing",
				Description: fmt.Sprintf("You spent %s (%d%%) more than last week", money(diff), pct),
			})
		}
	}

	if thisTotal.IsPositive() {
		if cats := CategoryStats(thisWeek); len(cats) > 0 {
			top := cats[0]
			if pct := roundPercent(top.Percent); pct > TopCategoryPct {
				insights = append(insights, model.Insight{
					Kind:        model.InsightInfo,
					Icon:        top.Info.Icon,
					Title:       fmt.Sprintf("You spend a lot on %s", strings.ToLower(top.Info.Name)),
					Description: fmt.Sprintf("%s is %d%% of this week's spending. Worth a closer look.", top.Info.Name, pct),
				})
			}
		}
	}

	if goal, ok := closestGoal(goals); ok {
		pct := roundPercent(goal.Percent())
		if pct > GoalCloseMinPct && pct < 100 {
			insights = append(insights, model.Insight{
				Kind:        model.InsightPositive,
				Icon:        "🏆",
				Title:       fmt.Sprintf("You're close to %q!", goal.Name),
				Description: fmt.Sprintf("%s left to save (%d%%)", money(goal.Remaining()), 100-pct),
			})
		}
	}

	insights = append(insights, model.Insight{
		Kind:        model.InsightTip,
		Icon:        "⚡",
		Title:       PeakSpendingTitle,
		Description: "Most purchases happen midweek in the evening",
	})
	return insights
}

// closestGoal returns the goal with the highest progress ratio. The first
// goal wins ties.
func closestGoal(goals []model.SavingsGoal) (model.SavingsGoal, bool) {
	if len(goals) == 0 {
		return model.SavingsGoal{}, false
	}
	best := goals[0]
	for _, g := range goals[1:] {
		if g.Percent() > best.Percent() {
			best = g
		}
	}
	return best, true
}

// TopInsights trims the list to the first n entries.
func TopInsights(insights []model.Insight, n int) []model.Insight {
	if len(insights) <= n {
		return insights
	}
	return insights[:n]
}
