package cmd

import (
	"fmt"

	"github.com/theirongolddev/planbook/internal/cli"

	"github.com/spf13/cobra"
)

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Recent task and habit activity",
	RunE:  runActivity,
}

func init() {
	rootCmd.AddCommand(activityCmd)
}

func runActivity(_ *cobra.Command, _ []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer closeWorkspace(ws)

	log := ws.Tasks.Activities()
	if len(log) == 0 {
		fmt.Println("\n  No activity yet.")
		return nil
	}
	fmt.Println()
	fmt.Println(cli.RenderSection("Recent activity"))
	for _, a := range log {
		fmt.Printf("  %s  %s\n", cli.MutedStyle.Render(a.Time), a.Text)
	}
	fmt.Println()
	return nil
}
