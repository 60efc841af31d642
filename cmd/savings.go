package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/planbook/internal/budget"
	"github.com/theirongolddev/planbook/internal/cli"
	"github.com/theirongolddev/planbook/internal/model"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagGoalDeadline string
	flagGoalIcon     string
	flagGoalCurrent  string
)

var savingsCmd = &cobra.Command{
	Use:   "savings",
	Short: "Savings goals",
}

var savingsAddCmd = &cobra.Command{
	Use:   "add <target> <name...>",
	Short: "Create a savings goal",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runSavingsAdd,
}

var savingsFundCmd = &cobra.Command{
	Use:   "fund <id> <amount>",
	Short: "Move money from the balance into a goal",
	Args:  cobra.ExactArgs(2),
	RunE:  runSavingsFund,
}

var savingsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a goal and return its money to the balance",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavingsDelete,
}

var savingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List savings goals",
	RunE:  runSavingsList,
}

func init() {
	savingsAddCmd.Flags().StringVar(&flagGoalDeadline, "deadline", "", "Deadline as YYYY-MM-DD")
	savingsAddCmd.Flags().StringVar(&flagGoalIcon, "icon", model.DefaultGoalIcon, "Icon")
	savingsAddCmd.Flags().StringVar(&flagGoalCurrent, "current", "", "Amount already saved elsewhere")

	savingsCmd.AddCommand(savingsAddCmd, savingsFundCmd, savingsDeleteCmd, savingsListCmd)
	rootCmd.AddCommand(savingsCmd)
}

func runSavingsAdd(_ *cobra.Command, args []string) error {
	target, err := budget.ParseAmount(args[0])
	if err != nil {
		return err
	}
	in := budget.GoalInput{
		Name:   strings.Join(args[1:], " "),
		Target: target,
		Icon:   flagGoalIcon,
	}
	if flagGoalCurrent != "" {
		if in.Current, err = decimal.NewFromString(flagGoalCurrent); err != nil {
			return fmt.Errorf("current: %w", budget.ErrInvalidAmount)
		}
	}
	if flagGoalDeadline != "" {
		d := model.Date(flagGoalDeadline)
		in.Deadline = &d
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer closeWorkspace(ws)

	_, err = ws.Budget.AddSavingsGoal(in)
	return err
}

func goalID(b interface{ Goals() []model.SavingsGoal }, prefix string) (string, error) {
	goals := b.Goals()
	ids := make([]string, len(goals))
	for i, g := range goals {
		ids[i] = g.ID
	}
	return resolveID("savings goal", prefix, ids)
}

func runSavingsFund(_ *cobra.Command, args []string) error {
	amount, err := budget.ParseAmount(args[1])
	if err != nil {
		return err
	}
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer closeWorkspace(ws)

	id, err := goalID(ws.Budget, args[0])
	if err != nil {
		return err
	}
	g, err := ws.Budget.AddToSavings(id, amount)
	if err != nil {
		return err
	}
	fmt.Printf("  %s %s  %s\n", g.Icon, g.Name, cli.RenderProgressBar(int(g.Percent()), 20))
	fmt.Printf("  Balance: %s\n", cli.MoneyStyle.Render(ws.Money(ws.Budget.Balance())))
	return nil
}

func runSavingsDelete(_ *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer closeWorkspace(ws)

	id, err := goalID(ws.Budget, args[0])
	if err != nil {
		return err
	}
	ws.Budget.DeleteGoal(id)
	fmt.Printf("  Balance: %s\n", cli.MoneyStyle.Render(ws.Money(ws.Budget.Balance())))
	return nil
}

func runSavingsList(_ *cobra.Command, _ []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer closeWorkspace(ws)

	goals := ws.Budget.Goals()
	if len(goals) == 0 {
		fmt.Println("\n  No savings goals yet. Create one with `planbook savings add <target> <name>`.")
		return nil
	}

	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		deadline := "-"
		if g.Deadline != nil {
			deadline = cli.FormatDate(*g.Deadline)
		}
		rows = append(rows, []string{
			shortID(g.ID),
			g.Icon + " " + g.Name,
			ws.Money(g.Current) + " / " + ws.Money(g.Target),
			cli.RenderProgressBar(int(g.Percent()), 16),
			deadline,
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:       "Savings goals  " + ws.Money(ws.Budget.Savings()) + " saved",
		Headers:     []string{"ID", "Goal", "Saved", "Progress", "Deadline"},
		Rows:        rows,
		LeftAligned: []bool{true, true, false, true, false},
	}))
	return nil
}
