package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/planbook/internal/pipeline"
	"github.com/theirongolddev/planbook/internal/report"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	flagReportFormat string
	flagReportPeriod string
	flagReportOut    string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write a budget report as PDF or CSV",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&flagReportFormat, "format", "f", "pdf", "pdf or csv")
	reportCmd.Flags().StringVar(&flagReportPeriod, "period", "month", "today, week, month, year or all")
	reportCmd.Flags().StringVarP(&flagReportOut, "output", "o", "", "Output file (default budget-report-<date>.<format>)")
	rootCmd.AddCommand(reportCmd)
}

func runReport(_ *cobra.Command, _ []string) (err error) {
	format, err := report.ParseFormat(flagReportFormat)
	if err != nil {
		return err
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer closeWorkspace(ws)

	now := ws.Clock.Now()
	data := report.Collect(ws.Budget, pipeline.ParsePeriod(flagReportPeriod), now)

	out := flagReportOut
	if out == "" {
		out = report.Filename(format, now)
	}
	f, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing report: %w", cerr)
		}
	}()

	switch format {
	case report.FormatCSV:
		err = report.WriteCSV(f, data)
	default:
		err = report.WritePDF(f, data, ws.Money)
	}
	if err != nil {
		return err
	}

	abs, _ := filepath.Abs(out)
	pterm.Success.Printfln("Report saved to %s", abs)
	return nil
}
