package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/planbook/internal/cli"
	"github.com/theirongolddev/planbook/internal/tasks"

	"github.com/spf13/cobra"
)

var flagGoalType string

var goalCmd = &cobra.Command{
	Use:     "goal",
	Aliases: []string{"goals"},
	Short:   "Countable personal goals",
}

var goalAddCmd = &cobra.Command{
	Use:   "add <target> <title...>",
	Short: "Add a goal",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runGoalAdd,
}

var goalAdvanceCmd = &cobra.Command{
	Use:   "advance <id> [delta]",
	Short: "Add progress to a goal (delta defaults to 1, may be negative)",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runGoalAdvance,
}

var goalDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalDelete,
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals",
	RunE:  runGoalList,
}

func init() {
	goalAddCmd.Flags().StringVarP(&flagGoalType, "type", "t", "custom", "tasks, habits or custom")
	goalCmd.AddCommand(goalAddCmd, goalAdvanceCmd, goalDeleteCmd, goalListCmd)
	rootCmd.AddCommand(goalCmd)
}

func runGoalAdd(_ *cobra.Command, args []string) error {
	target, err := strconv.Atoi(args[0])
	if err != nil {
		return tasks.ErrBadTarget
	}
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer closeWorkspace(ws)

	_, err = ws.Tasks.AddGoal(strings.Join(args[1:], " "), flagGoalType, target)
	return err
}

func personalGoalID(m *tasks.Manager, prefix string) (string, error) {
	list := m.Goals()
	ids := make([]string, len(list))
	for i, g := range list {
		ids[i] = g.ID
	}
	return resolveID("goal", prefix, ids)
}

func runGoalAdvance(_ *cobra.Command, args []string) error {
	delta := 1
	if len(args) == 2 {
		d, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("delta must be a whole number, got %q", args[1])
		}
		delta = d
	}
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer closeWorkspace(ws)

	id, err := personalGoalID(ws.Tasks, args[0])
	if err != nil {
		return err
	}
	ws.Tasks.AdvanceGoal(id, delta)
	return nil
}

func runGoalDelete(_ *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer closeWorkspace(ws)

	id, err := personalGoalID(ws.Tasks, args[0])
	if err != nil {
		return err
	}
	ws.Tasks.DeleteGoal(id)
	return nil
}

func runGoalList(_ *cobra.Command, _ []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer closeWorkspace(ws)

	goals := ws.Tasks.Goals()
	if len(goals) == 0 {
		fmt.Println("\n  No goals yet. Add one with `planbook goal add <target> <title>`.")
		return nil
	}
	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		rows = append(rows, []string{
			shortID(g.ID),
			g.Title,
			g.Type,
			fmt.Sprintf("%d/%d", g.Current, g.Target),
			cli.RenderProgressBar(g.Percent(), 16),
		})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:       "Goals",
		Headers:     []string{"ID", "Goal", "Type", "Done", "Progress"},
		Rows:        rows,
		LeftAligned: []bool{true, true, true, false, true},
	}))
	return nil
}
