package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/planbook/internal/cli"
	"github.com/theirongolddev/planbook/internal/config"
	"github.com/theirongolddev/planbook/internal/notify"
	"github.com/theirongolddev/planbook/internal/pipeline"
	"github.com/theirongolddev/planbook/internal/tui/components"
	"github.com/theirongolddev/planbook/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldTheme = iota
	settingsFieldCurrency
	settingsFieldPeriod
	settingsFieldNotice
	settingsFieldGoalNotice
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saveErr error // non-nil if the last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 16
	ti.Width = 20
	return ti
}

func (a App) updateSettingsKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		a.settings.cursor = clampIndex(a.settings.cursor+1, settingsFieldCount)
	case "k", "up":
		a.settings.cursor = clampIndex(a.settings.cursor-1, settingsFieldCount)
	case "enter", " ", "space":
		return a.settingsActivate()
	}
	return a, nil
}

// settingsActivate cycles choice fields in place and opens an input for
// free-form ones.
func (a App) settingsActivate() (tea.Model, tea.Cmd) {
	cfg := a.ws.Config
	switch a.settings.cursor {
	case settingsFieldTheme:
		cfg.Appearance.Theme = theme.Next(cfg.Appearance.Theme).Name
		a.applyConfig(cfg)
		return a, nil
	case settingsFieldPeriod:
		p := nextPeriod(pipeline.ParsePeriod(cfg.General.DefaultPeriod))
		cfg.General.DefaultPeriod = string(p)
		a.applyConfig(cfg)
		a.budget.period = p
		return a, nil
	}

	ti := newSettingsInput()
	switch a.settings.cursor {
	case settingsFieldCurrency:
		ti.Placeholder = "₽, $, €"
		ti.SetValue(cfg.General.CurrencySymbol)
	case settingsFieldNotice:
		ti.Placeholder = "3000"
		ti.SetValue(strconv.Itoa(cfg.Notifications.DurationMS))
	case settingsFieldGoalNotice:
		ti.Placeholder = "5000"
		ti.SetValue(strconv.Itoa(cfg.Notifications.GoalReachedMS))
	}
	a.settings.editing = true
	a.settings.input = ti
	cmd := a.settings.input.Focus()
	return a, cmd
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settings.editing = false
		a.settingsSave(strings.TrimSpace(a.settings.input.Value()))
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a *App) settingsSave(val string) {
	cfg := a.ws.Config
	switch a.settings.cursor {
	case settingsFieldCurrency:
		if val == "" {
			a.ws.Notices.Notify(notify.Error, "Currency symbol is required")
			return
		}
		cfg.General.CurrencySymbol = val
	case settingsFieldNotice, settingsFieldGoalNotice:
		ms, err := strconv.Atoi(val)
		if err != nil || ms < 500 {
			a.ws.Notices.Notify(notify.Error, "Duration must be a number of milliseconds, at least 500")
			return
		}
		if a.settings.cursor == settingsFieldNotice {
			cfg.Notifications.DurationMS = ms
		} else {
			cfg.Notifications.GoalReachedMS = ms
		}
	}
	a.applyConfig(cfg)
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := a.ws.Config

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	fields := []struct{ label, value string }{
		{"Theme", cfg.Appearance.Theme},
		{"Currency", cfg.General.CurrencySymbol},
		{"Default period", pipeline.ParsePeriod(cfg.General.DefaultPeriod).Label()},
		{"Notice duration", fmt.Sprintf("%d ms", cfg.Notifications.DurationMS)},
		{"Goal notice", fmt.Sprintf("%d ms", cfg.Notifications.GoalReachedMS)},
	}

	innerW := components.CardInnerWidth(cw)
	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker + label + value)
			if pad := innerW - lipgloss.Width(marker) - lipgloss.Width(label) - lipgloss.Width(value); pad > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", pad)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Warning).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	}
	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] change  [Esc] cancel"))

	storage := valueStyle.Render("SQLite")
	if a.ws.Store.Degraded() {
		storage = lipgloss.NewStyle().Foreground(t.Warning).Background(t.Surface).Render("memory only, changes are lost on quit")
	}
	counts := fmt.Sprintf("%s expenses · %s tasks · %s habits",
		cli.FormatNumber(int64(len(a.ws.Budget.Expenses()))),
		cli.FormatNumber(int64(len(a.ws.Tasks.Tasks()))),
		cli.FormatNumber(int64(len(a.ws.Tasks.Habits()))))

	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Data file:   ") + valueStyle.Render(cfg.DataPath()) + "\n")
	infoBody.WriteString(labelStyle.Render("Storage:     ") + storage + "\n")
	infoBody.WriteString(labelStyle.Render("Records:     ") + valueStyle.Render(counts) + "\n")
	infoBody.WriteString(labelStyle.Render("Config file: ") + valueStyle.Render(config.ConfigPath()))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw, true))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw, false))
	return b.String()
}
