package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/planbook/internal/cli"

	"github.com/spf13/cobra"
)

var flagCalendarMonth string

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Month view of tasks and habit marks",
	RunE:  runCalendar,
}

func init() {
	calendarCmd.Flags().StringVar(&flagCalendarMonth, "month", "", "Month as YYYY-MM (default this month)")
	rootCmd.AddCommand(calendarCmd)
}

func runCalendar(_ *cobra.Command, _ []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer closeWorkspace(ws)

	month := ws.Tasks.Today().Time(time.Local)
	if flagCalendarMonth != "" {
		month, err = time.ParseInLocation("2006-01", flagCalendarMonth, time.Local)
		if err != nil {
			return fmt.Errorf("month must be YYYY-MM, got %q", flagCalendarMonth)
		}
	}

	cells := ws.Tasks.MonthGrid(month.Year(), month.Month())
	fmt.Println()
	fmt.Print(cli.RenderMonthGrid(month.Format("January 2006"), cells))

	today := ws.Tasks.Today()
	if t := today.Time(time.Local); t.Year() == month.Year() && t.Month() == month.Month() {
		fmt.Println()
		fmt.Printf("  Today: %d tasks, %d habits marked\n",
			len(ws.Tasks.TasksForDate(today)), len(ws.Tasks.HabitsForDate(today)))
	}
	fmt.Println()
	return nil
}
