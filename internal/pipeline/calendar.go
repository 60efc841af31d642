package pipeline

import (
	"time"

	"github.com/theirongolddev/planbook/internal/model"
)

// GridCells is the size of a month grid: six Monday-first weeks.
const GridCells = 42

// WeekStart returns the Monday of the week containing d.
func WeekStart(d model.Date) model.Date {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDays(-offset)
}

// WeekDates returns the seven dates of the current week, Monday first.
func WeekDates(now time.Time) []model.Date {
	start := WeekStart(model.DateOf(now))
	dates := make([]model.Date, 7)
	for i := range dates {
		dates[i] = start.AddDays(i)
	}
	return dates
}

// MonthGrid lays out month as 42 cells with empty padding so the 1st sits
// under its weekday column, Monday first.
func MonthGrid(year int, month time.Month, today model.Date, tasks []model.Task, progress model.HabitProgress) []model.CalendarCell {
	first := model.DateOf(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	leading := (int(first.Weekday()) + 6) % 7

	taskDates := make(map[model.Date]bool, len(tasks))
	for _, t := range tasks {
		taskDates[t.Date] = true
	}
	habitDates := make(map[model.Date]bool)
	for _, days := range progress {
		for d := range days {
			habitDates[d] = true
		}
	}

	cells := make([]model.CalendarCell, GridCells)
	for i := range cells {
		day := i - leading + 1
		if day < 1 || day > daysInMonth {
			cells[i] = model.CalendarCell{Empty: true}
			continue
		}
		d := first.AddDays(day - 1)
		cells[i] = model.CalendarCell{
			Date:      d,
			Day:       day,
			IsToday:   d == today,
			HasTasks:  taskDates[d],
			HasHabits: habitDates[d],
		}
	}
	return cells
}
