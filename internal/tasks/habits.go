package tasks

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/theirongolddev/planbook/internal/model"
	"github.com/theirongolddev/planbook/internal/notify"
	"github.com/theirongolddev/planbook/internal/pipeline"
	"github.com/theirongolddev/planbook/internal/store"
)

// Habits returns all habits, newest first.
func (m *Manager) Habits() []model.Habit { return slices.Clone(m.habits) }

// Habit looks up a habit by ID.
func (m *Manager) Habit(id string) (model.Habit, bool) {
	if i := m.habitIndex(id); i >= 0 {
		return m.habits[i], true
	}
	return model.Habit{}, false
}

// Progress returns a copy of the per-day progress of one habit.
func (m *Manager) Progress(habitID string) model.DayProgress {
	return maps.Clone(m.progress[habitID])
}

// AllProgress returns a copy of the whole progress map.
func (m *Manager) AllProgress() model.HabitProgress {
	out := make(model.HabitProgress, len(m.progress))
	for id, days := range m.progress {
		out[id] = maps.Clone(days)
	}
	return out
}

// AddHabit creates a habit with a palette color and no progress.
func (m *Manager) AddHabit(name string, freq model.Frequency) (model.Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Habit{}, m.reject(ErrEmptyName)
	}
	if freq == "" {
		freq = model.FrequencyDaily
	}
	if _, err := model.ParseFrequency(string(freq)); err != nil {
		return model.Habit{}, m.reject(fmt.Errorf("%w: %v", ErrInvalidEnum, err))
	}

	h := model.Habit{
		ID:        m.ids.NewID(),
		Name:      name,
		Frequency: freq,
		Color:     m.colors.Pick(model.HabitPalette),
		CreatedAt: m.clock.Now(),
	}
	m.habits = slices.Insert(m.habits, 0, h)
	m.progress[h.ID] = model.DayProgress{}
	m.st.Set(store.KeyHabits, m.habits)
	m.st.Set(store.KeyHabitProgress, m.progress)
	m.logActivity(fmt.Sprintf("Added habit %q", h.Name))

	m.notes.Notify(notify.Success, "Habit added")
	return h, nil
}

// ToggleHabit flips the habit's mark for date, creating it if absent, and
// recomputes the streak. An empty date means today.
func (m *Manager) ToggleHabit(id string, date model.Date) (model.Habit, bool) {
	i := m.habitIndex(id)
	if i < 0 {
		return model.Habit{}, false
	}
	if date == "" {
		date = m.today()
	}
	if !date.Valid() {
		_ = m.reject(ErrInvalidDate)
		return model.Habit{}, false
	}

	days := m.progress[id]
	if days == nil {
		days = model.DayProgress{}
		m.progress[id] = days
	}
	days[date] = !days[date]

	h := &m.habits[i]
	h.Streak = pipeline.Streak(days, m.today())
	m.st.Set(store.KeyHabitProgress, m.progress)
	m.st.Set(store.KeyHabits, m.habits)

	state := "unchecked"
	if days[date] {
		state = "checked"
	}
	m.logActivity(fmt.Sprintf("Habit %q %s", h.Name, state))

	m.notes.Notify(notify.Success, fmt.Sprintf("Habit %s for %s", state, date))
	return *h, true
}

// RefreshStreaks recomputes every streak against today. Streaks are only
// stored on toggle, so they go stale when days pass without one.
func (m *Manager) RefreshStreaks() {
	changed := false
	for i := range m.habits {
		s := pipeline.Streak(m.progress[m.habits[i].ID], m.today())
		if s != m.habits[i].Streak {
			m.habits[i].Streak = s
			changed = true
		}
	}
	if changed {
		m.st.Set(store.KeyHabits, m.habits)
	}
}

// DeleteHabit removes a habit together with its progress.
func (m *Manager) DeleteHabit(id string) bool {
	i := m.habitIndex(id)
	if i < 0 {
		return false
	}
	h := m.habits[i]
	m.habits = slices.Delete(m.habits, i, i+1)
	delete(m.progress, id)
	m.st.Set(store.KeyHabits, m.habits)
	m.st.Set(store.KeyHabitProgress, m.progress)
	m.logActivity(fmt.Sprintf("Deleted habit %q", h.Name))

	m.notes.Notify(notify.Success, "Habit deleted")
	return true
}

// HabitsForDate returns habits with any mark on date.
func (m *Manager) HabitsForDate(date model.Date) []model.Habit {
	return pipeline.HabitsForDate(m.habits, m.progress, date)
}

// WeekProgress summarizes one habit over the current week.
func (m *Manager) WeekProgress(habitID string) model.WeekProgress {
	return pipeline.WeekProgress(m.progress[habitID], m.WeekDates())
}

func (m *Manager) habitIndex(id string) int {
	return slices.IndexFunc(m.habits, func(h model.Habit) bool { return h.ID == id })
}
