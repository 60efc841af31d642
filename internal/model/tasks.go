package model

import (
	"fmt"
	"strings"
	"time"
)

// TaskCategory groups tasks.
type TaskCategory string

const (
	TaskWork     TaskCategory = "work"
	TaskHome     TaskCategory = "home"
	TaskHealth   TaskCategory = "health"
	TaskLearning TaskCategory = "learning"
	TaskOther    TaskCategory = "other"
)

// TaskCategories returns all task categories in display order.
func TaskCategories() []TaskCategory {
	return []TaskCategory{TaskWork, TaskHome, TaskHealth, TaskLearning, TaskOther}
}

// ParseTaskCategory accepts a category key case-insensitively.
func ParseTaskCategory(s string) (TaskCategory, error) {
	c := TaskCategory(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range TaskCategories() {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown task category %q", s)
}

// Priority of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority accepts low, medium or high.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	}
	return "", fmt.Errorf("unknown priority %q", s)
}

// Color returns the hex accent used when rendering the priority.
func (p Priority) Color() string {
	switch p {
	case PriorityHigh:
		return "#ef4444"
	case PriorityLow:
		return "#10b981"
	default:
		return "#f59e0b"
	}
}

// Task is a dated to-do item.
type Task struct {
	ID          string       `json:"id"`
	Text        string       `json:"text"`
	Category    TaskCategory `json:"category"`
	Priority    Priority     `json:"priority"`
	Date        Date         `json:"date"`
	Completed   bool         `json:"completed"`
	CreatedAt   time.Time    `json:"createdAt"`
	CompletedAt *time.Time   `json:"completedAt,omitempty"`
}

// Frequency is the intended cadence of a habit. It is informational only;
// calendar membership comes from recorded progress.
type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyWeekdays Frequency = "weekdays"
)

// ParseFrequency accepts daily, weekly or weekdays.
func ParseFrequency(s string) (Frequency, error) {
	switch f := Frequency(strings.ToLower(strings.TrimSpace(s))); f {
	case FrequencyDaily, FrequencyWeekly, FrequencyWeekdays:
		return f, nil
	}
	return "", fmt.Errorf("unknown frequency %q", s)
}

// Label is the human description of the frequency.
func (f Frequency) Label() string {
	switch f {
	case FrequencyWeekly:
		return "3 times a week"
	case FrequencyWeekdays:
		return "Weekdays"
	case FrequencyDaily:
		return "Daily"
	}
	return string(f)
}

// HabitPalette is the fixed set of colors assigned to new habits.
var HabitPalette = []string{
	"#4f46e5", "#10b981", "#f59e0b", "#ef4444",
	"#8b5cf6", "#06b6d4", "#ec4899", "#84cc16",
}

// Habit is a recurring activity tracked per calendar day.
type Habit struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Frequency Frequency `json:"frequency"`
	Color     string    `json:"color"`
	Streak    int       `json:"streak"`
	CreatedAt time.Time `json:"createdAt"`
}

// DayProgress maps a date to whether the habit was done that day.
// A missing date has never been marked, which is not the same as false.
type DayProgress map[Date]bool

// HabitProgress maps habit IDs to their per-day progress.
type HabitProgress map[string]DayProgress

// Marked reports whether the habit has any entry, true or false, for d.
func (p HabitProgress) Marked(habitID string, d Date) bool {
	_, ok := p[habitID][d]
	return ok
}

// Done reports whether the habit was completed on d.
func (p HabitProgress) Done(habitID string, d Date) bool {
	return p[habitID][d]
}

// Goal is a small numeric target in the task tracker, unrelated to
// savings goals.
type Goal struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Type      string    `json:"type"`
	Target    int       `json:"target"`
	Current   int       `json:"current"`
	CreatedAt time.Time `json:"createdAt"`
}

// Percent returns rounded progress, which may exceed 100.
func (g Goal) Percent() int {
	if g.Target <= 0 {
		return 0
	}
	return int(float64(g.Current)/float64(g.Target)*100 + 0.5)
}

// Activity is one entry in the recent-changes log.
type Activity struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Time      string    `json:"time"`
	Timestamp time.Time `json:"timestamp"`
}
