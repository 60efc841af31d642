package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV writes d as sectioned CSV. Amounts are plain decimals so the
// file imports cleanly into spreadsheets.
func WriteCSV(w io.Writer, d Data) error {
	cw := csv.NewWriter(w)

	rows := [][]string{
		{"Section", "Field", "Value"},
		{"summary", "period", d.Period.Label()},
		{"summary", "generated", d.Generated.Format("2006-01-02 15:04")},
		{"summary", "balance", d.Summary.Balance.StringFixed(2)},
		{"summary", "savings", d.Summary.Savings.StringFixed(2)},
		{"summary", "period_spend", d.Summary.PeriodSpend.StringFixed(2)},
		{"summary", "goals_target", d.Summary.GoalsTarget.StringFixed(2)},
		{},
		{"Category", "Total", "Count", "Percent"},
	}
	for _, c := range d.Categories {
		rows = append(rows, []string{
			c.Info.Name,
			c.Total.StringFixed(2),
			strconv.Itoa(c.Count),
			strconv.FormatFloat(c.Percent, 'f', 1, 64),
		})
	}

	rows = append(rows, []string{}, []string{"Date", "Category", "Amount", "Description"})
	for _, e := range d.Expenses {
		rows = append(rows, []string{
			e.Date.String(),
			e.Category.Info().Name,
			e.Amount.StringFixed(2),
			e.Description,
		})
	}

	rows = append(rows, []string{}, []string{"Goal", "Current", "Target", "Deadline"})
	for _, g := range d.Goals {
		rows = append(rows, []string{
			g.Name,
			g.Current.StringFixed(2),
			g.Target.StringFixed(2),
			deadline(g),
		})
	}

	for _, r := range rows {
		if err := cw.Write(r); err != nil {
			return fmt.Errorf("writing csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}
