package report

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/theirongolddev/planbook/internal/budget"
	"github.com/theirongolddev/planbook/internal/cli"
	"github.com/theirongolddev/planbook/internal/clock"
	"github.com/theirongolddev/planbook/internal/ident"
	"github.com/theirongolddev/planbook/internal/model"
	"github.com/theirongolddev/planbook/internal/pipeline"
	"github.com/theirongolddev/planbook/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, time.March, 12, 15, 30, 0, 0, time.UTC)

func seeded(t *testing.T) *budget.Tracker {
	t.Helper()
	tr := budget.NewTracker(budget.Deps{
		Store: store.New(store.NewMemory()),
		Clock: &clock.Fixed{T: now},
		IDs:   &ident.Sequence{},
	})
	_, err := tr.AddExpense(budget.ExpenseInput{Amount: decimal.NewFromInt(1200), Category: model.CategoryFood, Description: "Groceries, weekly"})
	require.NoError(t, err)
	_, err = tr.AddExpense(budget.ExpenseInput{Amount: decimal.RequireFromString("300.50"), Category: model.CategoryTransport})
	require.NoError(t, err)
	_, err = tr.AddSavingsGoal(budget.GoalInput{Name: "Bike", Target: decimal.NewFromInt(20000)})
	require.NoError(t, err)
	return tr
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" PDF ")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "budget-report-2025-03-12.csv", Filename(FormatCSV, now))
}

func TestCollect(t *testing.T) {
	d := Collect(seeded(t), pipeline.PeriodMonth, now)

	assert.Len(t, d.Expenses, 2)
	assert.Len(t, d.Goals, 1)
	require.Len(t, d.Categories, 2)
	assert.Equal(t, model.CategoryFood, d.Categories[0].Category)
	assert.True(t, decimal.RequireFromString("1500.50").Equal(d.Summary.PeriodSpend))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, Collect(seeded(t), pipeline.PeriodMonth, now)))

	r := csv.NewReader(&buf)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"summary", "balance", "23499.50"}, records[3])
	assert.Contains(t, records, []string{"Food", "1200.00", "1", "80.0"})
	assert.Contains(t, records, []string{"2025-03-12", "Food", "1200.00", "Groceries, weekly"})
	assert.Contains(t, records, []string{"2025-03-12", "Transport", "300.50", model.DefaultDescription})
	assert.Contains(t, records, []string{"Bike", "0.00", "20000.00", ""})
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	d := Collect(seeded(t), pipeline.PeriodMonth, now)
	require.NoError(t, WritePDF(&buf, d, cli.Money(cli.DefaultCurrency)))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 1000)
}

func TestWritePDFEmpty(t *testing.T) {
	var buf bytes.Buffer
	tr := budget.NewTracker(budget.Deps{Store: store.New(nil), Clock: &clock.Fixed{T: now}})
	require.NoError(t, WritePDF(&buf, Collect(tr, pipeline.PeriodWeek, now), cli.Money("$")))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
