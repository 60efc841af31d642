package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/planbook/internal/budget"
	"github.com/theirongolddev/planbook/internal/cli"
	"github.com/theirongolddev/planbook/internal/model"
	"github.com/theirongolddev/planbook/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagExpenseCategory string
	flagExpenseDate     string
	flagExpenseNote     string
	flagExpensePeriod   string
)

var expenseCmd = &cobra.Command{
	Use:     "expense",
	Aliases: []string{"expenses"},
	Short:   "Record and review expenses",
}

var expenseAddCmd = &cobra.Command{
	Use:   "add <amount> [description...]",
	Short: "Record an expense and take it from the balance",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExpenseAdd,
}

var expenseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List expenses, newest first",
	RunE:  runExpenseList,
}

var expenseDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an expense and return its amount to the balance",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpenseDelete,
}

func init() {
	expenseAddCmd.Flags().StringVarP(&flagExpenseCategory, "category", "c", string(model.CategoryOther), "Category: "+categoryKeys())
	expenseAddCmd.Flags().StringVar(&flagExpenseDate, "date", "", "Date as YYYY-MM-DD (default today)")
	expenseAddCmd.Flags().StringVarP(&flagExpenseNote, "note", "m", "", "Description")
	expenseListCmd.Flags().StringVar(&flagExpensePeriod, "period", "all", "today, week, month, year or all")

	expenseCmd.AddCommand(expenseAddCmd, expenseListCmd, expenseDeleteCmd)
	rootCmd.AddCommand(expenseCmd)
}

func categoryKeys() string {
	keys := make([]string, 0, len(model.Categories()))
	for _, c := range model.Categories() {
		keys = append(keys, string(c))
	}
	return strings.Join(keys, ", ")
}

func runExpenseAdd(_ *cobra.Command, args []string) error {
	amount, err := budget.ParseAmount(args[0])
	if err != nil {
		return err
	}
	category, err := model.ParseCategory(flagExpenseCategory)
	if err != nil {
		return err
	}
	note := flagExpenseNote
	if len(args) > 1 {
		note = strings.Join(args[1:], " ")
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer closeWorkspace(ws)

	_, err = ws.Budget.AddExpense(budget.ExpenseInput{
		Amount:      amount,
		Category:    category,
		Date:        model.Date(flagExpenseDate),
		Description: note,
	})
	if err != nil {
		return err
	}
	fmt.Printf("  Balance: %s\n", cli.MoneyStyle.Render(ws.Money(ws.Budget.Balance())))
	return nil
}

func runExpenseList(_ *cobra.Command, _ []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer closeWorkspace(ws)

	period := pipeline.ParsePeriod(flagExpensePeriod)
	expenses := ws.Budget.ExpensesByPeriod(period)
	if len(expenses) == 0 {
		fmt.Println("\n  No expenses yet. Add one with `planbook expense add <amount>`.")
		return nil
	}

	rows := make([][]string, 0, len(expenses)+2)
	for _, e := range expenses {
		info := e.Category.Info()
		rows = append(rows, []string{
			shortID(e.ID),
			e.Date.String(),
			info.Icon + " " + info.Name,
			cli.Truncate(e.Description, 32),
			cli.SpendStyle.Render(ws.Money(e.Amount)),
		})
	}
	rows = append(rows, []string{"---"}, []string{"", "", "", "Total", ws.Money(pipeline.SumExpenses(expenses))})

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:       "Expenses: " + period.Label(),
		Headers:     []string{"ID", "Date", "Category", "Description", "Amount"},
		Rows:        rows,
		LeftAligned: []bool{true, true, true, true, false},
	}))
	return nil
}

func runExpenseDelete(_ *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer closeWorkspace(ws)

	expenses := ws.Budget.Expenses()
	ids := make([]string, len(expenses))
	for i, e := range expenses {
		ids[i] = e.ID
	}
	id, err := resolveID("expense", args[0], ids)
	if err != nil {
		return err
	}
	ws.Budget.DeleteExpense(id)
	fmt.Printf("  Balance: %s\n", cli.MoneyStyle.Render(ws.Money(ws.Budget.Balance())))
	return nil
}
