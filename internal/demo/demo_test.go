package demo

import (
	"testing"
	"time"

	"github.com/theirongolddev/planbook/internal/budget"
	"github.com/theirongolddev/planbook/internal/clock"
	"github.com/theirongolddev/planbook/internal/ident"
	"github.com/theirongolddev/planbook/internal/model"
	"github.com/theirongolddev/planbook/internal/pipeline"
	"github.com/theirongolddev/planbook/internal/store"
	"github.com/theirongolddev/planbook/internal/tasks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, time.March, 12, 15, 30, 0, 0, time.UTC)

func fresh() (*budget.Tracker, *tasks.Manager) {
	st := store.New(store.NewMemory())
	clk := &clock.Fixed{T: now}
	ids := &ident.Sequence{}
	bt := budget.NewTracker(budget.Deps{Store: st, Clock: clk, IDs: ids})
	tm := tasks.NewManager(tasks.Deps{Store: st, Clock: clk, IDs: ids, Colors: &ident.CycleColor{}})
	return bt, tm
}

func TestSeedKeepsBudgetConsistent(t *testing.T) {
	bt, tm := fresh()
	res, err := Seed(bt, tm, now, Options{Seed: 42})
	require.NoError(t, err)

	assert.Equal(t, len(bt.Expenses()), res.Expenses)
	assert.Equal(t, len(bt.Goals()), res.Goals)
	assert.Len(t, tm.Tasks(), res.Tasks)
	assert.Len(t, tm.Habits(), 3)
	assert.Len(t, tm.Goals(), 2)

	// Balance plus everything spent and saved is the starting balance.
	total := bt.Balance().Add(bt.Savings()).Add(pipeline.SumExpenses(bt.Expenses()))
	assert.True(t, model.SeedBalance.Equal(total), "got %s", total)

	today := model.DateOf(now)
	for _, e := range bt.Expenses() {
		assert.True(t, e.Amount.IsPositive())
		assert.LessOrEqual(t, string(e.Date), string(today))
		assert.GreaterOrEqual(t, string(e.Date), string(today.AddDays(-29)))
	}
	for _, h := range tm.Habits() {
		assert.Equal(t, pipeline.Streak(tm.Progress(h.ID), today), h.Streak)
	}
}

func TestSeedIsDeterministic(t *testing.T) {
	bt1, tm1 := fresh()
	bt2, tm2 := fresh()
	_, err := Seed(bt1, tm1, now, Options{Seed: 7, Expenses: 10})
	require.NoError(t, err)
	_, err = Seed(bt2, tm2, now, Options{Seed: 7, Expenses: 10})
	require.NoError(t, err)

	assert.Equal(t, bt1.Expenses(), bt2.Expenses())
	assert.Equal(t, tm1.Tasks(), tm2.Tasks())
	assert.Equal(t, tm1.AllProgress(), tm2.AllProgress())
}

func TestSeedStopsAtBalance(t *testing.T) {
	bt, tm := fresh()
	res, err := Seed(bt, tm, now, Options{Seed: 3, Expenses: 500})
	require.NoError(t, err)

	assert.Less(t, res.Expenses, 500)
	assert.False(t, bt.Balance().IsNegative())
	assert.True(t, bt.Balance().LessThan(decimal.NewFromInt(2500)))
}
