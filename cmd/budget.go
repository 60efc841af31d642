package cmd

import (
	"fmt"

	"github.com/theirongolddev/planbook/internal/cli"
	"github.com/theirongolddev/planbook/internal/model"
	"github.com/theirongolddev/planbook/internal/pipeline"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var flagPeriod string

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Balance, spending by category and insights",
	RunE:  runBudget,
}

func init() {
	budgetCmd.Flags().StringVar(&flagPeriod, "period", "", "today, week, month, year or all (default from config)")
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(_ *cobra.Command, _ []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer closeWorkspace(ws)

	period := pipeline.ParsePeriod(ws.Config.General.DefaultPeriod)
	if flagPeriod != "" {
		period = pipeline.ParsePeriod(flagPeriod)
	}
	b := ws.Budget
	sum := b.Summary(period)

	fmt.Println()
	fmt.Println(cli.RenderTitle("BUDGET  " + period.Label()))
	fmt.Println()

	rows := [][]string{
		{"Balance", cli.MoneyStyle.Render(ws.Money(sum.Balance))},
		{"Savings", ws.Money(sum.Savings)},
		{"---"},
		{"Spent", cli.SpendStyle.Render(ws.Money(sum.PeriodSpend))},
		{"Expenses", cli.FormatNumber(int64(sum.ExpenseCount))},
		{"Goals", fmt.Sprintf("%d (%s target)", sum.GoalCount, ws.Money(sum.GoalsTarget))},
	}
	fmt.Print(cli.RenderTable(cli.Table{Headers: []string{"Overview", ""}, Rows: rows}))

	stats := b.CategoryStats(period)
	if len(stats) > 0 {
		fmt.Println()
		fmt.Println(cli.RenderSection("Spending by category"))
		top := stats[0].Total.InexactFloat64()
		for _, s := range stats {
			label := fmt.Sprintf("%s %-13s", s.Info.Icon, s.Info.Name)
			bar := cli.RenderHorizontalBar(label, s.Total.InexactFloat64(), top, 24, lipgloss.Color(s.Info.Color))
			fmt.Printf("%s  %s  %s\n", bar, ws.Money(s.Total), cli.MutedStyle.Render(cli.FormatShare(s.Percent)))
		}
	}

	daily := b.DailySpend(14)
	values := make([]float64, len(daily))
	for i, d := range daily {
		values[i] = d.Total.InexactFloat64()
	}
	fmt.Println()
	fmt.Printf("  Last 14 days  %s\n", cli.RenderSparkline(values))

	printInsights(b.Insights())
	fmt.Println()
	return nil
}

func printInsights(insights []model.Insight) {
	if len(insights) == 0 {
		return
	}
	fmt.Println()
	fmt.Println(cli.RenderSection("Insights"))
	for _, in := range insights {
		title := in.Title
		if in.Kind == model.InsightWarning {
			title = cli.WarnStyle.Render(title)
		}
		fmt.Printf("  %s %s\n", in.Icon, title)
		fmt.Printf("     %s\n", cli.MutedStyle.Render(in.Description))
	}
}
