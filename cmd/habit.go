package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/planbook/internal/cli"
	"github.com/theirongolddev/planbook/internal/model"
	"github.com/theirongolddev/planbook/internal/tasks"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	flagHabitFrequency string
	flagHabitDate      string
)

var habitCmd = &cobra.Command{
	Use:     "habit",
	Aliases: []string{"habits"},
	Short:   "Track daily habits and streaks",
}

var habitAddCmd = &cobra.Command{
	Use:   "add <name...>",
	Short: "Add a habit",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runHabitAdd,
}

var habitListCmd = &cobra.Command{
	Use:   "list",
	Short: "List habits with streaks and this week's progress",
	RunE:  runHabitList,
}

var habitToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Check or uncheck a habit for a day",
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitToggle,
}

var habitDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a habit and its history",
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitDelete,
}

func init() {
	habitAddCmd.Flags().StringVar(&flagHabitFrequency, "frequency", string(model.FrequencyDaily), "daily, weekly or weekdays")
	habitToggleCmd.Flags().StringVar(&flagHabitDate, "date", "", "Date as YYYY-MM-DD (default today)")

	habitCmd.AddCommand(habitAddCmd, habitListCmd, habitToggleCmd, habitDeleteCmd)
	rootCmd.AddCommand(habitCmd)
}

func runHabitAdd(_ *cobra.Command, args []string) error {
	freq, err := model.ParseFrequency(flagHabitFrequency)
	if err != nil {
		return err
	}
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer closeWorkspace(ws)

	_, err = ws.Tasks.AddHabit(strings.Join(args, " "), freq)
	return err
}

func runHabitList(_ *cobra.Command, _ []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer closeWorkspace(ws)

	habits := ws.Tasks.Habits()
	if len(habits) == 0 {
		fmt.Println("\n  No habits yet. Add one with `planbook habit add <name>`.")
		return nil
	}

	today := ws.Tasks.Today()
	week := ws.Tasks.WeekDates()
	rows := make([][]string, 0, len(habits))
	for _, h := range habits {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(h.Color)).Render("●")
		var days strings.Builder
		progress := ws.Tasks.Progress(h.ID)
		for _, d := range week {
			switch {
			case progress[d]:
				days.WriteString("■")
			case d > today:
				days.WriteString(" ")
			default:
				days.WriteString("·")
			}
		}
		wp := ws.Tasks.WeekProgress(h.ID)
		rows = append(rows, []string{
			shortID(h.ID),
			dot + " " + h.Name,
			h.Frequency.Label(),
			fmt.Sprintf("%d🔥", h.Streak),
			days.String(),
			fmt.Sprintf("%d/%d", wp.Done, wp.Days),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:       "Habits",
		Headers:     []string{"ID", "Habit", "Frequency", "Streak", "MTWTFSS", "Week"},
		Rows:        rows,
		LeftAligned: []bool{true, true, true, false, true, false},
	}))
	return nil
}

func habitID(m *tasks.Manager, prefix string) (string, error) {
	list := m.Habits()
	ids := make([]string, len(list))
	for i, h := range list {
		ids[i] = h.ID
	}
	return resolveID("habit", prefix, ids)
}

func runHabitToggle(_ *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer closeWorkspace(ws)

	id, err := habitID(ws.Tasks, args[0])
	if err != nil {
		return err
	}
	date := model.Date(flagHabitDate)
	if date != "" && !date.Valid() {
		return tasks.ErrInvalidDate
	}
	h, _ := ws.Tasks.ToggleHabit(id, date)
	fmt.Printf("  %s streak: %d days\n", h.Name, h.Streak)
	return nil
}

func runHabitDelete(_ *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer closeWorkspace(ws)

	id, err := habitID(ws.Tasks, args[0])
	if err != nil {
		return err
	}
	ws.Tasks.DeleteHabit(id)
	return nil
}
