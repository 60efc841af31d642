package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/planbook/internal/budget"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	flagExportOut string
	flagClearYes  bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the budget to a JSON backup",
	Long:  "Write expenses, savings goals, balance and savings to a JSON file that `planbook import` can restore. Use -o - for stdout.",
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the budget with a JSON backup",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all expenses and goals and reset the balance",
	RunE:  runClear,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "output", "o", "", "Output file (default budget-data-<date>.json)")
	clearCmd.Flags().BoolVarP(&flagClearYes, "yes", "y", false, "Do not ask for confirmation")
	rootCmd.AddCommand(exportCmd, importCmd, clearCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer closeWorkspace(ws)

	data, err := ws.Budget.ExportJSON()
	if err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	if flagExportOut == "-" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}

	out := flagExportOut
	if out == "" {
		out = budget.ExportFilename(ws.Clock.Now())
	}
	if err := os.WriteFile(out, data, 0o600); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	abs, _ := filepath.Abs(out)
	pterm.Success.Printfln("Exported %d expenses and %d goals to %s",
		len(ws.Budget.Expenses()), len(ws.Budget.Goals()), abs)
	return nil
}

func runImport(_ *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if args[0] == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("reading import: %w", err)
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer closeWorkspace(ws)

	if err := ws.Budget.Import(data); err != nil {
		var ie *budget.ImportError
		if errors.As(err, &ie) {
			for _, v := range ie.Violations {
				pterm.Warning.Printfln("%s", v)
			}
			return fmt.Errorf("%s is not a budget backup (%d problems)", args[0], len(ie.Violations))
		}
		return err
	}
	fmt.Printf("  %d expenses, %d goals, balance %s\n",
		len(ws.Budget.Expenses()), len(ws.Budget.Goals()), ws.Money(ws.Budget.Balance()))
	return nil
}

func runClear(_ *cobra.Command, _ []string) error {
	if !flagClearYes {
		fmt.Print("  This deletes every expense and savings goal. Type \"yes\" to continue: ")
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.TrimSpace(strings.ToLower(answer)) != "yes" {
			fmt.Println("  Cancelled.")
			return nil
		}
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer closeWorkspace(ws)

	ws.Budget.Clear()
	return nil
}
