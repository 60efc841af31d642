package cmd

import (
	"fmt"

	"github.com/theirongolddev/planbook/internal/demo"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	flagDemoSeed     int64
	flagDemoExpenses int
	flagDemoTasks    int
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Fill the workspace with sample data",
	Long:  "Add sample expenses, savings goals, tasks, habits and goals on top of the existing data. Run `planbook clear` first for a clean budget.",
	RunE:  runDemo,
}

func init() {
	demoCmd.Flags().Int64Var(&flagDemoSeed, "seed", 0, "Random seed for repeatable data (default random)")
	demoCmd.Flags().IntVar(&flagDemoExpenses, "expenses", 25, "Number of expenses")
	demoCmd.Flags().IntVar(&flagDemoTasks, "tasks", 8, "Number of tasks")
	rootCmd.AddCommand(demoCmd)
}

func runDemo(_ *cobra.Command, _ []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer closeWorkspace(ws)

	// One notice per generated item is noise.
	flagQuiet = true

	spinner, _ := pterm.DefaultSpinner.Start("Generating sample data...")
	res, err := demo.Seed(ws.Budget, ws.Tasks, ws.Clock.Now(), demo.Options{
		Seed:     flagDemoSeed,
		Expenses: flagDemoExpenses,
		Tasks:    flagDemoTasks,
	})
	if err != nil {
		if spinner != nil {
			spinner.Fail(err.Error())
		}
		return err
	}
	msg := fmt.Sprintf("Added %d expenses, %d savings goals, %d tasks and %d habits",
		res.Expenses, res.Goals, res.Tasks, res.Habits)
	if spinner != nil {
		spinner.Success(msg)
	} else {
		pterm.Success.Println(msg)
	}
	return nil
}
