package pipeline

import (
	"github.com/theirongolddev/planbook/internal/model"
)

// MaxStreak bounds the backward walk of Streak.
const MaxStreak = 365

// Streak counts consecutive completed days ending today. A day that is
// false or unmarked ends the run.
func Streak(days model.DayProgress, today model.Date) int {
	streak := 0
	for d := today; streak < MaxStreak && days[d]; d = d.AddDays(-1) {
		streak++
	}
	return streak
}

// WeekProgress counts the completed days of week.
func WeekProgress(days model.DayProgress, week []model.Date) model.WeekProgress {
	wp := model.WeekProgress{Days: len(week)}
	for _, d := range week {
		if days[d] {
			wp.Done++
		}
	}
	wp.Percent = Percent(wp.Done, wp.Days)
	return wp
}

// HabitsForDate returns the habits that have any progress entry, done or
// not, on date.
func HabitsForDate(habits []model.Habit, progress model.HabitProgress, date model.Date) []model.Habit {
	var result []model.Habit
	for _, h := range habits {
		if progress.Marked(h.ID, date) {
			result = append(result, h)
		}
	}
	return result
}

// HabitsDoneOn counts habits completed on date.
func HabitsDoneOn(habits []model.Habit, progress model.HabitProgress, date model.Date) int {
	n := 0
	for _, h := range habits {
		if progress.Done(h.ID, date) {
			n++
		}
	}
	return n
}
