package pipeline

import (
	"slices"
	"strings"

	"github.com/theirongolddev/planbook/internal/model"
)

// TaskFilter selects a partition of the task list.
type TaskFilter string

const (
	FilterAll       TaskFilter = "all"
	FilterActive    TaskFilter = "active"
	FilterCompleted TaskFilter = "completed"
	FilterToday     TaskFilter = "today"
)

// TaskFilters lists filters in display order.
func TaskFilters() []TaskFilter {
	return []TaskFilter{FilterAll, FilterActive, FilterCompleted, FilterToday}
}

// ParseTaskFilter maps s to a filter; unknown values mean all.
func ParseTaskFilter(s string) TaskFilter {
	switch f := TaskFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case FilterActive, FilterCompleted, FilterToday:
		return f
	}
	return FilterAll
}

// FilterTasks returns the tasks matching f, preserving order.
func FilterTasks(tasks []model.Task, f TaskFilter, today model.Date) []model.Task {
	var keep func(model.Task) bool
	switch f {
	case FilterActive:
		keep = func(t model.Task) bool { return !t.Completed }
	case FilterCompleted:
		keep = func(t model.Task) bool { return t.Completed }
	case FilterToday:
		keep = func(t model.Task) bool { return t.Date == today }
	default:
		return slices.Clone(tasks)
	}

	var result []model.Task
	for _, t := range tasks {
		if keep(t) {
			result = append(result, t)
		}
	}
	return result
}

// SearchTasks matches query case-insensitively against task text and
// category. A blank query returns every task.
func SearchTasks(tasks []model.Task, query string) []model.Task {
	if strings.TrimSpace(query) == "" {
		return slices.Clone(tasks)
	}
	var result []model.Task
	for _, t := range tasks {
		if containsIgnoreCase(t.Text, query) || containsIgnoreCase(string(t.Category), query) {
			result = append(result, t)
		}
	}
	return result
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// TasksForDate returns the tasks dated date.
func TasksForDate(tasks []model.Task, date model.Date) []model.Task {
	var result []model.Task
	for _, t := range tasks {
		if t.Date == date {
			result = append(result, t)
		}
	}
	return result
}

// TaskStats derives the dashboard counters. Productivity is the share of
// today's items that are done, where today's items are tasks dated today
// plus every active habit.
func TaskStats(tasks []model.Task, habits []model.Habit, progress model.HabitProgress, today model.Date) model.TaskStats {
	var s model.TaskStats
	s.TotalTasks = len(tasks)
	for _, t := range tasks {
		if t.Completed {
			s.CompletedTasks++
		}
		if t.Date == today {
			s.TodayTasks++
			if t.Completed {
				s.TodayCompleted++
			}
		}
	}
	s.ActiveTasks = s.TotalTasks - s.CompletedTasks

	s.ActiveHabits = len(habits)
	s.HabitsDoneToday = HabitsDoneOn(habits, progress, today)
	s.SuccessRate = Percent(s.HabitsDoneToday, s.ActiveHabits)
	s.Productivity = Percent(s.TodayCompleted+s.HabitsDoneToday, s.TodayTasks+s.ActiveHabits)
	return s
}
