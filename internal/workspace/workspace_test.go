package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/planbook/internal/budget"
	"github.com/theirongolddev/planbook/internal/clock"
	"github.com/theirongolddev/planbook/internal/config"
	"github.com/theirongolddev/planbook/internal/ident"
	"github.com/theirongolddev/planbook/internal/model"
	"github.com/theirongolddev/planbook/internal/notify"
	"github.com/theirongolddev/planbook/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.General.DataDir = t.TempDir()
	t.Setenv(config.DataDirEnv, "")
	return cfg
}

func TestOpenPersistsAcrossSessions(t *testing.T) {
	cfg := testConfig(t)

	ws := Open(cfg)
	assert.False(t, ws.Store.Degraded())
	_, err := ws.Budget.AddExpense(budget.ExpenseInput{Amount: decimal.NewFromInt(500), Category: model.CategoryFood})
	require.NoError(t, err)
	_, err = ws.Tasks.AddHabit("Read", model.FrequencyDaily)
	require.NoError(t, err)
	require.NoError(t, ws.Close())

	ws = Open(cfg)
	defer func() { _ = ws.Close() }()
	assert.Equal(t, "₽24,500", ws.Money(ws.Budget.Balance()))
	assert.Len(t, ws.Tasks.Habits(), 1)
}

func TestOpenFallsBackToMemory(t *testing.T) {
	cfg := testConfig(t)
	// A file where the data directory should be makes the database unopenable.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	cfg.General.DataDir = filepath.Join(blocker, "sub")

	var got []notify.Notification
	ws := Open(cfg, WithListener(func(n notify.Notification) { got = append(got, n) }))

	assert.True(t, ws.Store.Degraded())
	require.NotEmpty(t, got)
	assert.Equal(t, notify.Warning, got[0].Kind)

	_, err := ws.Budget.AddExpense(budget.ExpenseInput{Amount: decimal.NewFromInt(10), Category: model.CategoryFood})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(24990).Equal(ws.Budget.Balance()))
}

func TestWriteFailureWarnsOnce(t *testing.T) {
	cfg := testConfig(t)
	m := store.NewMemory()
	clk := &clock.Fixed{T: time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC)}
	var kinds []notify.Kind
	ws := Open(cfg,
		WithMedium(m),
		WithClock(clk),
		WithIDs(&ident.Sequence{}),
		WithColors(&ident.CycleColor{}),
		WithListener(func(n notify.Notification) { kinds = append(kinds, n.Kind) }),
	)

	m.FailWith(errors.New("read-only"))
	_, err := ws.Tasks.AddTask(tasksInput("one"))
	require.NoError(t, err)
	_, err = ws.Tasks.AddTask(tasksInput("two"))
	require.NoError(t, err)

	warnings := 0
	for _, k := range kinds {
		if k == notify.Warning {
			warnings++
		}
	}
	assert.Equal(t, 1, warnings)
	assert.Len(t, ws.Tasks.Tasks(), 2)

	n, ok := ws.Notices.Current()
	require.True(t, ok)
	assert.Equal(t, "Task added", n.Message)
	assert.Equal(t, clk.Now(), n.At)
}

func TestReconfigure(t *testing.T) {
	cfg := testConfig(t)
	clk := &clock.Fixed{T: time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC)}
	ws := Open(cfg, WithMedium(store.NewMemory()), WithClock(clk))

	cfg.General.CurrencySymbol = "$"
	cfg.Notifications.DurationMS = 1500
	ws.Reconfigure(cfg)

	_, err := ws.Budget.AddExpense(budget.ExpenseInput{Amount: decimal.NewFromInt(1200), Category: model.CategoryFood})
	require.NoError(t, err)
	n, ok := ws.Notices.Current()
	require.True(t, ok)
	assert.Equal(t, "Expense $1,200 added", n.Message)
	assert.Equal(t, 1500*time.Millisecond, n.Duration)
}
