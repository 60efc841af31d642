// Package report renders a budget report as PDF or CSV.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/planbook/internal/budget"
	"github.com/theirongolddev/planbook/internal/model"
	"github.com/theirongolddev/planbook/internal/pipeline"

	"github.com/shopspring/decimal"
)

// Format selects the report encoding.
type Format string

const (
	FormatPDF Format = "pdf"
	FormatCSV Format = "csv"
)

// ParseFormat accepts "pdf" or "csv", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPDF, FormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("unknown report format %q (want pdf or csv)", s)
}

// Data is everything a report shows, captured at one instant.
type Data struct {
	Period     pipeline.Period
	Generated  time.Time
	Summary    model.BudgetSummary
	Categories []model.CategoryStat
	Expenses   []model.Expense
	Goals      []model.SavingsGoal
	Insights   []model.Insight
}

// Collect snapshots the tracker for period p.
func Collect(t *budget.Tracker, p pipeline.Period, now time.Time) Data {
	return Data{
		Period:     p,
		Generated:  now,
		Summary:    t.Summary(p),
		Categories: t.CategoryStats(p),
		Expenses:   t.ExpensesByPeriod(p),
		Goals:      t.Goals(),
		Insights:   t.Insights(),
	}
}

// Filename is the default output name, e.g. budget-report-2025-03-12.pdf.
func Filename(f Format, now time.Time) string {
	return fmt.Sprintf("budget-report-%s.%s", now.Format(model.DateLayout), f)
}

// MoneyFunc formats an amount for display.
type MoneyFunc func(decimal.Decimal) string

func deadline(g model.SavingsGoal) string {
	if g.Deadline == nil {
		return ""
	}
	return g.Deadline.String()
}
