package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/theirongolddev/planbook/internal/config"
	"github.com/theirongolddev/planbook/internal/tui"
	"github.com/theirongolddev/planbook/internal/tui/theme"
	"github.com/theirongolddev/planbook/internal/workspace"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	firstRun := !config.Exists()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	// stderr belongs to the alt screen now.
	if path := os.Getenv("PLANBOOK_LOG_FILE"); path != "" {
		f, err := tea.LogToFile(path, "planbook")
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	ws := workspace.Open(cfg)
	defer closeWorkspace(ws)

	p := tea.NewProgram(tui.NewApp(ws, firstRun), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
