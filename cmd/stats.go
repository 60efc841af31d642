package cmd

import (
	"fmt"

	"github.com/theirongolddev/planbook/internal/cli"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Task and habit dashboard",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, _ []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer closeWorkspace(ws)

	s := ws.Tasks.Stats()
	fmt.Println()
	fmt.Println(cli.RenderTitle("TODAY"))
	fmt.Println()

	rows := [][]string{
		{"Tasks", cli.FormatNumber(int64(s.TotalTasks))},
		{"Active", cli.FormatNumber(int64(s.ActiveTasks))},
		{"Completed", cli.FormatNumber(int64(s.CompletedTasks))},
		{"---"},
		{"Due today", fmt.Sprintf("%d (%d done)", s.TodayTasks, s.TodayCompleted)},
		{"Habits done today", fmt.Sprintf("%d of %d", s.HabitsDoneToday, s.ActiveHabits)},
		{"Habit success", cli.FormatPercent(s.SuccessRate)},
		{"Productivity", cli.RenderProgressBar(s.Productivity, 20)},
	}
	fmt.Print(cli.RenderTable(cli.Table{Headers: []string{"Metric", "Value"}, Rows: rows}))

	if quick := ws.Tasks.QuickGoals(2); len(quick) > 0 {
		fmt.Println()
		fmt.Println(cli.RenderSection("Goals"))
		for _, g := range quick {
			fmt.Printf("  %-24s %s\n", cli.Truncate(g.Title, 24), cli.RenderProgressBar(g.Percent(), 16))
		}
	}
	fmt.Println()
	return nil
}
