package cmd

import (
	"fmt"

	"github.com/theirongolddev/planbook/internal/cli"

	"github.com/spf13/cobra"
)

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Tasks and habits for each day of this week",
	RunE:  runWeek,
}

func init() {
	rootCmd.AddCommand(weekCmd)
}

func runWeek(_ *cobra.Command, _ []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer closeWorkspace(ws)

	today := ws.Tasks.Today()
	progress := ws.Tasks.AllProgress()
	fmt.Println()
	fmt.Println(cli.RenderTitle("THIS WEEK"))
	for _, d := range ws.Tasks.WeekDates() {
		header := cli.FormatDate(d)
		if d == today {
			header += "  (today)"
		}
		fmt.Println()
		fmt.Println(cli.RenderSection(header))

		dayTasks := ws.Tasks.TasksForDate(d)
		habits := ws.Tasks.HabitsForDate(d)
		if len(dayTasks) == 0 && len(habits) == 0 {
			fmt.Println(cli.MutedStyle.Render("    nothing planned"))
			continue
		}
		for _, t := range dayTasks {
			check := "[ ]"
			if t.Completed {
				check = "[x]"
			}
			fmt.Printf("    %s %s\n", check, t.Text)
		}
		for _, h := range habits {
			mark := "✗"
			if progress.Done(h.ID, d) {
				mark = "✓"
			}
			fmt.Printf("    %s %s\n", mark, cli.MutedStyle.Render(h.Name))
		}
	}
	fmt.Println()
	return nil
}
