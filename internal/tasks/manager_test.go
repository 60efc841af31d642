package tasks

import (
	"fmt"
	"testing"
	"time"

	"github.com/theirongolddev/planbook/internal/clock"
	"github.com/theirongolddev/planbook/internal/ident"
	"github.com/theirongolddev/planbook/internal/model"
	"github.com/theirongolddev/planbook/internal/notify"
	"github.com/theirongolddev/planbook/internal/pipeline"
	"github.com/theirongolddev/planbook/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	manager *Manager
	notes   *notify.Recorder
	clock   *clock.Fixed
	medium  *store.Memory
}

func setupManagerTest(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		notes:  &notify.Recorder{},
		clock:  &clock.Fixed{T: time.Date(2025, time.March, 12, 9, 5, 0, 0, time.UTC)},
		medium: store.NewMemory(),
	}
	f.manager = NewManager(Deps{
		Store:    store.New(f.medium),
		Notifier: f.notes,
		Clock:    f.clock,
		IDs:      &ident.Sequence{Prefix: "t"},
		Colors:   &ident.CycleColor{},
	})
	return f
}

func (f *fixture) reload() *Manager {
	return NewManager(Deps{Store: store.New(f.medium), Clock: f.clock})
}

func mustAddTask(t *testing.T, m *Manager, in TaskInput) model.Task {
	t.Helper()
	task, err := m.AddTask(in)
	require.NoError(t, err)
	return task
}

func TestAddTaskDefaults(t *testing.T) {
	f := setupManagerTest(t)

	task := mustAddTask(t, f.manager, TaskInput{Text: "  Write report "})
	assert.Equal(t, "Write report", task.Text)
	assert.Equal(t, model.TaskOther, task.Category)
	assert.Equal(t, model.PriorityMedium, task.Priority)
	assert.Equal(t, model.Date("2025-03-12"), task.Date)
	assert.False(t, task.Completed)
	assert.Nil(t, task.CompletedAt)

	second := mustAddTask(t, f.manager, TaskInput{Text: "Call mom", Category: model.TaskHome, Priority: model.PriorityHigh, Date: "2025-03-14"})
	assert.Equal(t, second.ID, f.manager.Tasks()[0].ID)

	acts := f.manager.Activities()
	require.Len(t, acts, 2)
	assert.Equal(t, `Added task "Call mom"`, acts[0].Text)
	assert.Equal(t, "09:05", acts[0].Time)

	assert.Len(t, f.reload().Tasks(), 2)
}

func TestAddTaskRejections(t *testing.T) {
	f := setupManagerTest(t)

	_, err := f.manager.AddTask(TaskInput{Text: "   "})
	assert.ErrorIs(t, err, ErrEmptyText)
	_, err = f.manager.AddTask(TaskInput{Text: "x", Category: "garden"})
	assert.ErrorIs(t, err, ErrInvalidEnum)
	_, err = f.manager.AddTask(TaskInput{Text: "x", Priority: "urgent"})
	assert.ErrorIs(t, err, ErrInvalidEnum)
	_, err = f.manager.AddTask(TaskInput{Text: "x", Date: "tomorrow"})
	assert.ErrorIs(t, err, ErrInvalidDate)

	assert.Empty(t, f.manager.Tasks())
	assert.Empty(t, f.manager.Activities())
	assert.Equal(t, notify.Error, f.notes.Last().Kind)
}

func TestToggleTask(t *testing.T) {
	f := setupManagerTest(t)
	task := mustAddTask(t, f.manager, TaskInput{Text: "Stretch"})

	f.clock.Advance(time.Hour)
	done, ok := f.manager.ToggleTask(task.ID)
	require.True(t, ok)
	assert.True(t, done.Completed)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, f.clock.Now(), *done.CompletedAt)
	assert.Equal(t, `Task "Stretch" completed`, f.manager.Activities()[0].Text)

	reopened, ok := f.manager.ToggleTask(task.ID)
	require.True(t, ok)
	assert.False(t, reopened.Completed)
	assert.Nil(t, reopened.CompletedAt)
	assert.Equal(t, `Task "Stretch" reopened`, f.manager.Activities()[0].Text)

	_, ok = f.manager.ToggleTask("missing")
	assert.False(t, ok)
}

func TestDeleteTask(t *testing.T) {
	f := setupManagerTest(t)
	task := mustAddTask(t, f.manager, TaskInput{Text: "Old"})

	assert.True(t, f.manager.DeleteTask(task.ID))
	assert.Empty(t, f.manager.Tasks())
	assert.Equal(t, `Deleted task "Old"`, f.manager.Activities()[0].Text)

	activities := len(f.manager.Activities())
	assert.False(t, f.manager.DeleteTask(task.ID))
	assert.Len(t, f.manager.Activities(), activities)
}

func TestFilterPartition(t *testing.T) {
	f := setupManagerTest(t)
	for i := range 5 {
		task := mustAddTask(t, f.manager, TaskInput{Text: fmt.Sprintf("task %d", i)})
		if i%2 == 0 {
			f.manager.ToggleTask(task.ID)
		}
	}

	active := f.manager.FilterTasks(pipeline.FilterActive)
	completed := f.manager.FilterTasks(pipeline.FilterCompleted)
	assert.Len(t, active, 2)
	assert.Len(t, completed, 3)
	assert.Equal(t, len(f.manager.Tasks()), len(active)+len(completed))
	assert.Len(t, f.manager.FilterTasks(pipeline.FilterToday), 5)
	assert.Len(t, f.manager.SearchTasks("TASK 3"), 1)
	assert.Len(t, f.manager.SearchTasks(""), 5)
}

func TestActivityLogIsCapped(t *testing.T) {
	f := setupManagerTest(t)
	for i := range 15 {
		mustAddTask(t, f.manager, TaskInput{Text: fmt.Sprintf("t%d", i)})
	}

	acts := f.manager.Activities()
	require.Len(t, acts, MaxActivities)
	assert.Equal(t, `Added task "t14"`, acts[0].Text)
	assert.Equal(t, `Added task "t5"`, acts[9].Text)
	assert.Len(t, f.reload().Activities(), MaxActivities)
}

func TestAddHabit(t *testing.T) {
	f := setupManagerTest(t)

	h, err := f.manager.AddHabit("Read", model.FrequencyDaily)
	require.NoError(t, err)
	assert.Equal(t, model.HabitPalette[0], h.Color)
	assert.Equal(t, 0, h.Streak)
	assert.NotNil(t, f.manager.Progress(h.ID))
	assert.Empty(t, f.manager.Progress(h.ID))

	h2, err := f.manager.AddHabit("Run", "")
	require.NoError(t, err)
	assert.Equal(t, model.FrequencyDaily, h2.Frequency)
	assert.Equal(t, model.HabitPalette[1], h2.Color)
	assert.Equal(t, h2.ID, f.manager.Habits()[0].ID)

	_, err = f.manager.AddHabit(" ", model.FrequencyDaily)
	assert.ErrorIs(t, err, ErrEmptyName)
	_, err = f.manager.AddHabit("Swim", "monthly")
	assert.ErrorIs(t, err, ErrInvalidEnum)
}

func TestHabitStreakScenario(t *testing.T) {
	f := setupManagerTest(t)
	today := f.manager.Today()

	h, err := f.manager.AddHabit("Read", model.FrequencyDaily)
	require.NoError(t, err)
	h, _ = f.manager.ToggleHabit(h.ID, "")
	assert.Equal(t, 1, h.Streak)
	assert.Equal(t, `Habit "Read" checked`, f.manager.Activities()[0].Text)

	h2, _ := f.manager.AddHabit("Write", model.FrequencyDaily)
	f.manager.ToggleHabit(h2.ID, today.AddDays(-1))
	h2, _ = f.manager.ToggleHabit(h2.ID, today)
	assert.Equal(t, 2, h2.Streak)

	h3, _ := f.manager.AddHabit("Walk", model.FrequencyDaily)
	f.manager.ToggleHabit(h3.ID, today.AddDays(-2))
	h3, _ = f.manager.ToggleHabit(h3.ID, today)
	assert.Equal(t, 1, h3.Streak)
}

func TestToggleHabitTwiceUnchecks(t *testing.T) {
	f := setupManagerTest(t)
	h, _ := f.manager.AddHabit("Read", model.FrequencyDaily)
	today := f.manager.Today()

	f.manager.ToggleHabit(h.ID, today)
	h, ok := f.manager.ToggleHabit(h.ID, today)
	require.True(t, ok)
	assert.Equal(t, 0, h.Streak)

	// Unchecked is still a mark: the habit stays on the calendar.
	days := f.manager.Progress(h.ID)
	v, marked := days[today]
	assert.True(t, marked)
	assert.False(t, v)
	assert.Len(t, f.manager.HabitsForDate(today), 1)
	assert.Equal(t, `Habit "Read" unchecked`, f.manager.Activities()[0].Text)

	_, ok = f.manager.ToggleHabit("missing", today)
	assert.False(t, ok)
	_, ok = f.manager.ToggleHabit(h.ID, "not-a-date")
	assert.False(t, ok)
}

func TestRefreshStreaksAfterMidnight(t *testing.T) {
	f := setupManagerTest(t)
	h, _ := f.manager.AddHabit("Read", model.FrequencyDaily)
	f.manager.ToggleHabit(h.ID, "")

	f.clock.AddDays(2)
	f.manager.RefreshStreaks()
	h, _ = f.manager.Habit(h.ID)
	assert.Equal(t, 0, h.Streak)
}

func TestDeleteHabitDropsProgress(t *testing.T) {
	f := setupManagerTest(t)
	h, _ := f.manager.AddHabit("Read", model.FrequencyDaily)
	f.manager.ToggleHabit(h.ID, "")

	assert.True(t, f.manager.DeleteHabit(h.ID))
	assert.Empty(t, f.manager.Habits())
	assert.NotContains(t, f.manager.AllProgress(), h.ID)
	assert.NotContains(t, f.reload().AllProgress(), h.ID)
	assert.False(t, f.manager.DeleteHabit(h.ID))
}

func TestWeekProgressAndStats(t *testing.T) {
	f := setupManagerTest(t)
	h, _ := f.manager.AddHabit("Read", model.FrequencyDaily)
	week := f.manager.WeekDates()
	f.manager.ToggleHabit(h.ID, week[0])
	f.manager.ToggleHabit(h.ID, week[1])
	f.manager.ToggleHabit(h.ID, f.manager.Today())

	wp := f.manager.WeekProgress(h.ID)
	assert.Equal(t, 3, wp.Done)
	assert.Equal(t, 43, wp.Percent)

	task := mustAddTask(t, f.manager, TaskInput{Text: "a"})
	mustAddTask(t, f.manager, TaskInput{Text: "b"})
	f.manager.ToggleTask(task.ID)

	s := f.manager.Stats()
	assert.Equal(t, 2, s.TodayTasks)
	assert.Equal(t, 1, s.HabitsDoneToday)
	assert.Equal(t, 100, s.SuccessRate)
	assert.Equal(t, 67, s.Productivity)
}

func TestMonthGridFromManager(t *testing.T) {
	f := setupManagerTest(t)
	mustAddTask(t, f.manager, TaskInput{Text: "dentist", Date: "2025-03-20"})

	cells := f.manager.MonthGrid(2025, time.March)
	require.Len(t, cells, pipeline.GridCells)
	for _, c := range cells {
		if c.Date == "2025-03-20" {
			assert.True(t, c.HasTasks)
		}
		if c.Date == "2025-03-12" {
			assert.True(t, c.IsToday)
		}
	}
	assert.Len(t, f.manager.TasksForDate("2025-03-20"), 1)
}

func TestGoals(t *testing.T) {
	f := setupManagerTest(t)

	g, err := f.manager.AddGoal("Read books", "habits", 12)
	require.NoError(t, err)
	assert.Equal(t, 0, g.Current)
	_, err = f.manager.AddGoal("Ship", "tasks", 3)
	require.NoError(t, err)
	_, err = f.manager.AddGoal("Extra", "custom", 1)
	require.NoError(t, err)

	_, err = f.manager.AddGoal("", "x", 1)
	assert.ErrorIs(t, err, ErrEmptyTitle)
	_, err = f.manager.AddGoal("y", "x", 0)
	assert.ErrorIs(t, err, ErrBadTarget)

	goals := f.manager.Goals()
	require.Len(t, goals, 3)
	assert.Equal(t, "Read books", goals[0].Title, "goals keep creation order")

	g, ok := f.manager.AdvanceGoal(g.ID, 3)
	require.True(t, ok)
	assert.Equal(t, 25, g.Percent())
	g, _ = f.manager.AdvanceGoal(g.ID, -10)
	assert.Equal(t, 0, g.Current)

	quick := f.manager.QuickGoals(2)
	require.Len(t, quick, 2)
	assert.Equal(t, "Ship", quick[1].Title)

	assert.True(t, f.manager.DeleteGoal(g.ID))
	assert.Len(t, f.reload().Goals(), 2)
	_, ok = f.manager.AdvanceGoal("missing", 1)
	assert.False(t, ok)
}
