// Package tui provides the interactive Bubble Tea dashboard for planbook.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/planbook/internal/model"
	"github.com/theirongolddev/planbook/internal/notify"
	"github.com/theirongolddev/planbook/internal/pipeline"
	"github.com/theirongolddev/planbook/internal/tui/components"
	"github.com/theirongolddev/planbook/internal/tui/theme"
	"github.com/theirongolddev/planbook/internal/workspace"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const (
	tabBudget = iota
	tabTasks
	tabHabits
	tabCalendar
	tabSettings
)

const (
	minTerminalWidth = 72
	compactWidth     = 110
	maxContentWidth  = 180
	minContentHeight = 5
)

// App is the root Bubble Tea model.
type App struct {
	ws  *workspace.Workspace
	now time.Time

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Active huh form, if any
	form      *huh.Form
	formKind  formKind
	vals      *formValues
	needSetup bool

	// Background file work
	busy    string
	spinner spinner.Model

	// Per-tab state
	budget   budgetState
	tasks    tasksState
	habits   habitsState
	cal      calendarState
	settings settingsState
}

// NewApp creates the dashboard over ws. firstRun opens the setup form.
func NewApp(ws *workspace.Workspace, firstRun bool) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	now := ws.Clock.Now()
	a := App{
		ws:        ws,
		now:       now,
		spinner:   sp,
		vals:      &formValues{},
		needSetup: firstRun,
		tasks:     newTasksState(),
	}
	a.budget.period = pipeline.ParsePeriod(ws.Config.General.DefaultPeriod)
	a.cal.selected = model.DateOf(now)
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(min(msg.Width-4, 72))
		}
		if a.needSetup && a.form == nil {
			return a.openForm(formSetup)
		}
		return a, nil

	case tickMsg:
		prev := model.DateOf(a.now)
		a.now = a.ws.Clock.Now()
		if model.DateOf(a.now) != prev {
			a.ws.Tasks.RefreshStreaks()
		}
		return a, tickCmd()

	case spinner.TickMsg:
		if a.busy == "" {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case importReadMsg:
		a.busy = ""
		a.applyImport(msg)
		return a, nil

	case fileWrittenMsg:
		a.busy = ""
		a.reportWritten(msg)
		return a, nil

	case tea.MouseMsg:
		if a.form != nil || a.showHelp {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		return a.updateKey(msg)
	}

	// Cursor blinks and other form-internal messages.
	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	if a.form != nil {
		return a.updateForm(msg)
	}

	// Text inputs swallow every key while focused.
	if a.activeTab == tabSettings && a.settings.editing {
		return a.updateSettingsInput(msg)
	}
	if a.activeTab == tabTasks && a.tasks.searching {
		return a.updateTaskSearch(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	case "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "left", "right":
		if a.activeTab != tabCalendar {
			if key == "left" {
				a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
			} else {
				a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			}
			return a, nil
		}
	}
	if i := components.TabIndex(key); i >= 0 {
		a.activeTab = i
		return a, nil
	}

	switch a.activeTab {
	case tabBudget:
		return a.updateBudgetKey(key)
	case tabTasks:
		return a.updateTasksKey(key)
	case tabHabits:
		return a.updateHabitsKey(key)
	case tabCalendar:
		return a.updateCalendarKey(key)
	case tabSettings:
		return a.updateSettingsKey(key)
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return a, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.moveCursor(-1)
	case tea.MouseButtonWheelDown:
		a.moveCursor(1)
	case tea.MouseButtonLeft:
		if msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

// moveCursor moves the selection of the active tab's focused list.
func (a *App) moveCursor(delta int) {
	switch a.activeTab {
	case tabBudget:
		a.moveBudgetCursor(delta)
	case tabTasks:
		a.tasks.cursor = clampIndex(a.tasks.cursor+delta, len(a.visibleTasks()))
	case tabHabits:
		a.moveHabitsCursor(delta)
	case tabCalendar:
		a.cal.selected = a.cal.selected.AddDays(7 * delta)
	case tabSettings:
		a.settings.cursor = clampIndex(a.settings.cursor+delta, settingsFieldCount)
	}
}

func (a App) money(d decimal.Decimal) string {
	return a.ws.Money(d)
}

func (a App) today() model.Date {
	return model.DateOf(a.now)
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.form != nil {
		return a.viewForm()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  planbook needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewForm() string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2).
		Render(a.form.View())
	return lipgloss.Place(a.width, max(a.height, lipgloss.Height(card)), lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

type binding struct{ key, desc string }

var helpSections = []struct {
	title    string
	bindings []binding
}{
	{"Navigation", []binding{
		{"b t h c x", "Jump to tab"},
		{"tab ←/→", "Next / previous tab"},
		{"j k", "Move in lists"},
		{"s", "Switch list (budget, habits)"},
	}},
	{"Budget", []binding{
		{"a n", "Add expense / savings goal"},
		{"f", "Add to selected goal"},
		{"p", "Cycle period"},
		{"e i r", "Export / import / PDF report"},
	}},
	{"Tasks & habits", []binding{
		{"a n", "Add task or habit / goal"},
		{"space", "Toggle done"},
		{"+ -", "Advance selected goal"},
		{"f /", "Filter / search tasks"},
	}},
	{"General", []binding{
		{"d", "Delete selected"},
		{"esc", "Cancel form or search"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}},
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Info).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range helpSections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) headerBadge() string {
	t := theme.Active
	base := lipgloss.NewStyle().Background(t.Surface)
	var parts []string
	if a.busy != "" {
		parts = append(parts, a.spinner.View()+base.Foreground(t.Accent).Render(" "+a.busy+"…"))
	}
	if a.ws.Store.Degraded() {
		parts = append(parts, base.Foreground(t.Warning).Bold(true).Render("⚠ memory only"))
	}
	parts = append(parts, base.Foreground(t.TextDim).Render(a.now.Format("Mon Jan 2")))
	return strings.Join(parts, base.Render("  ")) + base.Render(" ")
}

func (a App) hints() string {
	switch a.activeTab {
	case tabBudget:
		return "[a]dd [n]ew goal [f]und [d]el [p]eriod [e]xport [i]mport [r]eport [?]"
	case tabTasks:
		return "[a]dd [space] toggle [d]el [f]ilter [/] search [?]"
	case tabHabits:
		return "[a]dd [n]ew goal [space] toggle [+/-] goal [s]witch [?]"
	case tabCalendar:
		return "[←→↑↓] day [[ ]] month [g] today [enter] add task [?]"
	default:
		return "[j/k] move [enter] change [esc] cancel [?]"
	}
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w, a.headerBadge())

	var notice *notify.Notification
	if n, ok := a.ws.Notices.Visible(a.now); ok {
		notice = &n
	}
	statusBar := components.RenderStatusBar(w, notice, a.hints())

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabBudget:
		content = a.renderBudgetTab(cw)
	case tabTasks:
		content = a.renderTasksTab(cw)
	case tabHabits:
		content = a.renderHabitsTab(cw)
	case tabCalendar:
		content = a.renderCalendarTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// columns splits the content width into n card widths, or returns nil
// when the layout is compact and cards should stack.
func (a App) columns(cw, n int) []int {
	if a.isCompactLayout() {
		return nil
	}
	return components.LayoutRow(cw, n)
}

// sideBySide lays cards out in a row, or stacks them on narrow terminals.
func (a App) sideBySide(cw int, render ...func(w int) string) string {
	widths := a.columns(cw, len(render))
	if widths == nil {
		parts := make([]string, len(render))
		for i, r := range render {
			parts[i] = r(cw)
		}
		return strings.Join(parts, "\n")
	}
	cards := make([]string, len(render))
	for i, r := range render {
		cards[i] = r(widths[i])
	}
	return components.CardRow(cards)
}

func clampIndex(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// listWindow returns the slice bounds of at most size rows that keep
// cursor visible.
func listWindow(n, cursor, size int) (start, end int) {
	if n <= size {
		return 0, n
	}
	start = max(cursor-size/2, 0)
	end = start + size
	if end > n {
		end = n
		start = n - size
	}
	return start, end
}

// listLine pads text to width on the card surface, highlighted when
// selected.
func listLine(text string, width int, selected bool) string {
	t := theme.Active
	bg := t.Surface
	marker := "  "
	if selected {
		bg = t.SurfaceBright
		marker = "▸ "
	}
	style := lipgloss.NewStyle().Background(bg)
	line := style.Foreground(t.AccentBright).Render(marker) + text
	if pad := width - lipgloss.Width(line); pad > 0 {
		line += style.Render(strings.Repeat(" ", pad))
	}
	return line
}

func dimLine(text string) string {
	t := theme.Active
	return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render(text)
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes follow the width rules of RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
