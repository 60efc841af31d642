package tui

import (
	"bytes"
	"fmt"
	"os"

	"github.com/theirongolddev/planbook/internal/budget"
	"github.com/theirongolddev/planbook/internal/cli"
	"github.com/theirongolddev/planbook/internal/notify"
	"github.com/theirongolddev/planbook/internal/report"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
)

// importReadMsg carries a backup file read off the update loop.
type importReadMsg struct {
	path string
	data []byte
	err  error
}

// fileWrittenMsg reports a finished export or report.
type fileWrittenMsg struct {
	what string
	path string
	err  error
}

func readImportCmd(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		return importReadMsg{path: path, data: data, err: err}
	}
}

func writeFileCmd(what, path string, render func() ([]byte, error)) tea.Cmd {
	return func() tea.Msg {
		data, err := render()
		if err == nil {
			err = os.WriteFile(path, data, 0o600)
		}
		return fileWrittenMsg{what: what, path: path, err: err}
	}
}

// applyImport replaces the budget with a file read in the background.
// Validation and the wholesale replacement happen here, on the update loop.
func (a *App) applyImport(msg importReadMsg) {
	if msg.err != nil {
		log.WithError(msg.err).WithField("path", msg.path).Warn("tui: reading import file")
		a.ws.Notices.Notify(notify.Error, fmt.Sprintf("Could not read %s", msg.path))
		return
	}
	if err := a.ws.Budget.Import(msg.data); err != nil {
		return
	}
	a.budget.cursor = [2]int{}
}

func (a *App) reportWritten(msg fileWrittenMsg) {
	if msg.err != nil {
		log.WithError(msg.err).WithField("path", msg.path).Warn("tui: writing file")
		a.ws.Notices.Notify(notify.Error, fmt.Sprintf("%s failed: %v", msg.what, msg.err))
		return
	}
	a.ws.Notices.Notify(notify.Success, fmt.Sprintf("%s saved to %s", msg.what, msg.path))
}

// exportBudget snapshots the budget now and writes it in the background.
func (a App) exportBudget() (tea.Model, tea.Cmd) {
	data, err := a.ws.Budget.ExportJSON()
	if err != nil {
		a.ws.Notices.Notify(notify.Error, "Export failed: "+err.Error())
		return a, nil
	}
	a.busy = "Exporting"
	path := budget.ExportFilename(a.now)
	render := func() ([]byte, error) { return data, nil }
	return a, tea.Batch(writeFileCmd("Export", path, render), a.spinner.Tick)
}

// writeReport collects the report data now and renders the PDF in the
// background.
func (a App) writeReport() (tea.Model, tea.Cmd) {
	d := report.Collect(a.ws.Budget, a.budget.period, a.now)
	money := cli.Money(a.ws.Config.General.CurrencySymbol)
	a.busy = "Writing report"
	path := report.Filename(report.FormatPDF, a.now)
	render := func() ([]byte, error) {
		var buf bytes.Buffer
		if err := report.WritePDF(&buf, d, money); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return a, tea.Batch(writeFileCmd("Report", path, render), a.spinner.Tick)
}
