// Package tasks owns tasks, habits with their per-day progress, small
// numeric goals, and the recent-activity log.
package tasks

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/theirongolddev/planbook/internal/clock"
	"github.com/theirongolddev/planbook/internal/ident"
	"github.com/theirongolddev/planbook/internal/model"
	"github.com/theirongolddev/planbook/internal/notify"
	"github.com/theirongolddev/planbook/internal/pipeline"
	"github.com/theirongolddev/planbook/internal/store"
)

// MaxActivities is the length of the activity log.
const MaxActivities = 10

// Validation errors.
var (
	ErrEmptyText   = errors.New("task text is required")
	ErrEmptyName   = errors.New("habit name is required")
	ErrEmptyTitle  = errors.New("goal title is required")
	ErrBadTarget   = errors.New("goal target must be at least 1")
	ErrInvalidDate = errors.New("date must be YYYY-MM-DD")
	ErrInvalidEnum = errors.New("unknown option")
)

// Deps are the collaborators of a Manager. Zero values get defaults.
type Deps struct {
	Store    *store.Store
	Notifier notify.Notifier
	Clock    clock.Clock
	IDs      ident.IDGenerator
	Colors   ident.ColorPicker
}

// Manager is the task and habit state container.
type Manager struct {
	st     *store.Store
	notes  notify.Notifier
	clock  clock.Clock
	ids    ident.IDGenerator
	colors ident.ColorPicker

	tasks      []model.Task
	habits     []model.Habit
	progress   model.HabitProgress
	goals      []model.Goal
	activities []model.Activity
}

// NewManager creates a Manager and loads its snapshots from the store.
func NewManager(d Deps) *Manager {
	m := &Manager{
		st:     d.Store,
		notes:  d.Notifier,
		clock:  d.Clock,
		ids:    d.IDs,
		colors: d.Colors,
	}
	if m.st == nil {
		m.st = store.New(nil)
	}
	if m.notes == nil {
		m.notes = &notify.Recorder{}
	}
	if m.clock == nil {
		m.clock = clock.System{}
	}
	if m.ids == nil {
		m.ids = ident.UUID{}
	}
	if m.colors == nil {
		m.colors = ident.RandomColor{}
	}
	m.load()
	return m
}

func (m *Manager) load() {
	m.tasks = store.Get(m.st, store.KeyTasks, []model.Task{})
	m.habits = store.Get(m.st, store.KeyHabits, []model.Habit{})
	m.progress = store.Get(m.st, store.KeyHabitProgress, model.HabitProgress{})
	m.goals = store.Get(m.st, store.KeyGoals, []model.Goal{})
	m.activities = store.Get(m.st, store.KeyActivities, []model.Activity{})
	if m.progress == nil {
		m.progress = model.HabitProgress{}
	}
}

func (m *Manager) today() model.Date {
	return model.DateOf(m.clock.Now())
}

// Today returns the manager's current date.
func (m *Manager) Today() model.Date { return m.today() }

// Tasks returns all tasks, newest first.
func (m *Manager) Tasks() []model.Task { return slices.Clone(m.tasks) }

// Task looks up a task by ID.
func (m *Manager) Task(id string) (model.Task, bool) {
	if i := m.taskIndex(id); i >= 0 {
		return m.tasks[i], true
	}
	return model.Task{}, false
}

// TaskInput describes a new task. Empty fields take defaults: category
// other, priority medium, date today.
type TaskInput struct {
	Text     string
	Category model.TaskCategory
	Priority model.Priority
	Date     model.Date
}

// AddTask creates a task.
func (m *Manager) AddTask(in TaskInput) (model.Task, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return model.Task{}, m.reject(ErrEmptyText)
	}
	if in.Category == "" {
		in.Category = model.TaskOther
	}
	if _, err := model.ParseTaskCategory(string(in.Category)); err != nil {
		return model.Task{}, m.reject(fmt.Errorf("%w: %v", ErrInvalidEnum, err))
	}
	if in.Priority == "" {
		in.Priority = model.PriorityMedium
	}
	if _, err := model.ParsePriority(string(in.Priority)); err != nil {
		return model.Task{}, m.reject(fmt.Errorf("%w: %v", ErrInvalidEnum, err))
	}
	if in.Date == "" {
		in.Date = m.today()
	}
	if !in.Date.Valid() {
		return model.Task{}, m.reject(ErrInvalidDate)
	}

	task := model.Task{
		ID:        m.ids.NewID(),
		Text:      text,
		Category:  in.Category,
		Priority:  in.Priority,
		Date:      in.Date,
		CreatedAt: m.clock.Now(),
	}
	m.tasks = slices.Insert(m.tasks, 0, task)
	m.st.Set(store.KeyTasks, m.tasks)
	m.logActivity(fmt.Sprintf("Added task %q", task.Text))

	m.notes.Notify(notify.Success, "Task added")
	return task, nil
}

// ToggleTask flips a task between active and completed.
func (m *Manager) ToggleTask(id string) (model.Task, bool) {
	i := m.taskIndex(id)
	if i < 0 {
		return model.Task{}, false
	}
	task := &m.tasks[i]
	task.Completed = !task.Completed
	state := "reopened"
	if task.Completed {
		now := m.clock.Now()
		task.CompletedAt = &now
		state = "completed"
	} else {
		task.CompletedAt = nil
	}
	m.st.Set(store.KeyTasks, m.tasks)
	m.logActivity(fmt.Sprintf("Task %q %s", task.Text, state))

	m.notes.Notify(notify.Success, "Task "+state)
	return *task, true
}

// DeleteTask removes a task for good.
func (m *Manager) DeleteTask(id string) bool {
	i := m.taskIndex(id)
	if i < 0 {
		return false
	}
	task := m.tasks[i]
	m.tasks = slices.Delete(m.tasks, i, i+1)
	m.st.Set(store.KeyTasks, m.tasks)
	m.logActivity(fmt.Sprintf("Deleted task %q", task.Text))

	m.notes.Notify(notify.Success, "Task deleted")
	return true
}

// FilterTasks returns the partition of tasks selected by f.
func (m *Manager) FilterTasks(f pipeline.TaskFilter) []model.Task {
	return pipeline.FilterTasks(m.tasks, f, m.today())
}

// SearchTasks matches query against task text and category.
func (m *Manager) SearchTasks(query string) []model.Task {
	return pipeline.SearchTasks(m.tasks, query)
}

// TasksForDate returns the tasks dated date.
func (m *Manager) TasksForDate(date model.Date) []model.Task {
	return pipeline.TasksForDate(m.tasks, date)
}

// Stats derives the dashboard counters for today.
func (m *Manager) Stats() model.TaskStats {
	return pipeline.TaskStats(m.tasks, m.habits, m.progress, m.today())
}

// WeekDates returns the current Monday-first week.
func (m *Manager) WeekDates() []model.Date {
	return pipeline.WeekDates(m.clock.Now())
}

// MonthGrid lays out a month with task and habit markers.
func (m *Manager) MonthGrid(year int, month time.Month) []model.CalendarCell {
	return pipeline.MonthGrid(year, month, m.today(), m.tasks, m.progress)
}

func (m *Manager) taskIndex(id string) int {
	return slices.IndexFunc(m.tasks, func(t model.Task) bool { return t.ID == id })
}

func (m *Manager) reject(err error) error {
	msg := err.Error()
	m.notes.Notify(notify.Error, strings.ToUpper(msg[:1])+msg[1:])
	return err
}
