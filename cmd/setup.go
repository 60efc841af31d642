package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/theirongolddev/planbook/internal/config"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)
	cfg, _ := loadConfig()

	fmt.Println()
	fmt.Println("  Welcome to planbook!")
	fmt.Printf("  Your data lives in %s\n\n", cfg.DataPath())

	// 1. Currency
	fmt.Println("  1. Currency symbol")
	fmt.Printf("     Current: %s (enter to keep)\n", cfg.General.CurrencySymbol)
	fmt.Print("     > ")
	symbol, _ := reader.ReadString('\n')
	if symbol = strings.TrimSpace(symbol); symbol != "" {
		cfg.General.CurrencySymbol = symbol
	}
	fmt.Println()

	// 2. Default period
	fmt.Println("  2. Default budget period")
	fmt.Println("     (1) Last 7 days")
	fmt.Println("     (2) This month [default]")
	fmt.Println("     (3) This year")
	fmt.Println("     (4) All time")
	fmt.Print("     > ")
	choice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(choice) {
	case "1":
		cfg.General.DefaultPeriod = "week"
	case "3":
		cfg.General.DefaultPeriod = "year"
	case "4":
		cfg.General.DefaultPeriod = "all"
	default:
		cfg.General.DefaultPeriod = "month"
	}
	fmt.Println()

	// 3. Theme
	fmt.Println("  3. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Catppuccin Mocha")
	fmt.Println("     (3) Tokyo Night")
	fmt.Println("     (4) Terminal (ANSI 16)")
	fmt.Print("     > ")
	themeChoice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(themeChoice) {
	case "2":
		cfg.Appearance.Theme = "catppuccin-mocha"
	case "3":
		cfg.Appearance.Theme = "tokyo-night"
	case "4":
		cfg.Appearance.Theme = "terminal"
	default:
		cfg.Appearance.Theme = "flexoki-dark"
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `planbook demo` to try it with sample data, or `planbook tui` to start.")
	fmt.Println()
	return nil
}
