package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/theirongolddev/planbook/internal/config"
	"github.com/theirongolddev/planbook/internal/notify"
	"github.com/theirongolddev/planbook/internal/workspace"

	"github.com/pterm/pterm"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagDataDir string
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:           "planbook",
	Short:         "Personal budget, tasks and habits",
	Long:          "Track expenses and savings goals, plan tasks and keep habit streaks from the terminal.",
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runBudget,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(capitalize(err.Error()))
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Data directory (overrides config and "+config.DataDirEnv+")")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only print errors and warnings")
}

// initLogging runs after .env has been loaded, so LOG_LEVEL may come from it.
func initLogging() {
	log.SetOutput(os.Stderr)
	level, err := log.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = log.WarnLevel
	}
	log.SetLevel(level)
}

// loadConfig reads the config file and applies --data-dir.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if flagDataDir != "" {
		// The environment outranks the config file; the flag outranks both.
		if err := os.Setenv(config.DataDirEnv, flagDataDir); err != nil {
			return cfg, fmt.Errorf("setting %s: %w", config.DataDirEnv, err)
		}
	}
	return cfg, nil
}

// openWorkspace is the shared setup path of every data command. Notices
// are printed as they happen.
func openWorkspace() (*workspace.Workspace, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	ws := workspace.Open(cfg, workspace.WithListener(printNotice))
	log.WithFields(log.Fields{
		"path":     cfg.DataPath(),
		"degraded": ws.Store.Degraded(),
	}).Debug("workspace opened")
	return ws, nil
}

func closeWorkspace(ws *workspace.Workspace) {
	if err := ws.Close(); err != nil {
		log.WithError(err).Warn("closing workspace")
	}
}

// printNotice renders a notification on the terminal. Errors are left to
// Execute, which prints the returned error once.
func printNotice(n notify.Notification) {
	switch n.Kind {
	case notify.Error:
		return
	case notify.Warning:
		pterm.Warning.Printfln("%s", n.Message)
	case notify.Info:
		if !flagQuiet {
			pterm.Info.Printfln("%s", n.Message)
		}
	default:
		if !flagQuiet {
			pterm.Success.Printfln("%s", n.Message)
		}
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

var errNotFound = errors.New("not found")

// resolveID matches a full ID or a unique prefix of one, as printed in
// the short ID column of list commands.
func resolveID(what, prefix string, ids []string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("%s id is required", what)
	}
	var match string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			if match != "" {
				return "", fmt.Errorf("%s id %q is ambiguous", what, prefix)
			}
			match = id
		}
	}
	if match == "" {
		return "", fmt.Errorf("%s %q: %w", what, prefix, errNotFound)
	}
	return match, nil
}

// shortID is the ID column of list output.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
