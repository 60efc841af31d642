// Package cmd implements the planbook CLI commands.
package cmd

import (
	"fmt"
	"slices"

	"github.com/theirongolddev/planbook/internal/config"
	"github.com/theirongolddev/planbook/internal/pipeline"
	"github.com/theirongolddev/planbook/internal/tui/theme"

	"github.com/spf13/cobra"
)

var (
	flagSetTheme    string
	flagSetCurrency string
	flagSetPeriod   string
	flagSetNotifyMS int
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the configuration",
	RunE:  runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagSetTheme, "theme", "", "Set the TUI theme")
	configCmd.Flags().StringVar(&flagSetCurrency, "currency", "", "Set the currency symbol")
	configCmd.Flags().StringVar(&flagSetPeriod, "period", "", "Set the default budget period")
	configCmd.Flags().IntVar(&flagSetNotifyMS, "notify-ms", 0, "Set how long notices stay visible in the TUI")
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	changed := false
	if cmd.Flags().Changed("theme") {
		if !slices.Contains(theme.Names(), flagSetTheme) {
			return fmt.Errorf("unknown theme %q (available: %v)", flagSetTheme, theme.Names())
		}
		cfg.Appearance.Theme = flagSetTheme
		changed = true
	}
	if cmd.Flags().Changed("currency") {
		cfg.General.CurrencySymbol = flagSetCurrency
		changed = true
	}
	if cmd.Flags().Changed("period") {
		cfg.General.DefaultPeriod = string(pipeline.ParsePeriod(flagSetPeriod))
		changed = true
	}
	if cmd.Flags().Changed("notify-ms") {
		if flagSetNotifyMS <= 0 {
			return fmt.Errorf("notify-ms must be positive")
		}
		cfg.Notifications.DurationMS = flagSetNotifyMS
		changed = true
	}
	if changed {
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	switch {
	case changed:
		fmt.Println("  Status: saved")
	case config.Exists():
		fmt.Println("  Status: loaded")
	default:
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data file:       %s\n", cfg.DataPath())
	fmt.Printf("    Currency symbol: %s\n", cfg.General.CurrencySymbol)
	fmt.Printf("    Default period:  %s\n", pipeline.ParsePeriod(cfg.General.DefaultPeriod).Label())
	fmt.Println()

	fmt.Println("  [Notifications]")
	fmt.Printf("    Visible for:     %s\n", cfg.NotificationDuration())
	fmt.Printf("    Goal reached:    %s\n", cfg.GoalReachedDuration())
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `planbook setup` to reconfigure.")
	return nil
}
