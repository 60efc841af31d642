package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorBlue      = lipgloss.Color("#4385BE")
	ColorYellow    = lipgloss.Color("#D0A215")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	// MoneyStyle colors positive balances.
	MoneyStyle = lipgloss.NewStyle().Foreground(ColorGreen)

	// SpendStyle colors outgoing amounts.
	SpendStyle = lipgloss.NewStyle().Foreground(ColorRed)

	// WarnStyle colors warnings.
	WarnStyle = lipgloss.NewStyle().Foreground(ColorOrange)

	// MutedStyle is for secondary text.
	MutedStyle = mutedStyle
)

// Table represents a bordered text table for CLI output. A row holding the
// single cell "---" draws a separator. The first column is left-aligned
// and the rest right-aligned unless LeftAligned says otherwise.
type Table struct {
	Title       string
	Headers     []string
	Rows        [][]string
	Widths      []int // optional column widths, auto-calculated if nil
	LeftAligned []bool
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderSection renders an accent-colored heading.
func RenderSection(title string) string {
	return "  " + headerStyle.Render(title)
}

func (t Table) columns() int {
	if len(t.Headers) > 0 {
		return len(t.Headers)
	}
	for _, row := range t.Rows {
		if !isSeparator(row) {
			return len(row)
		}
	}
	return 0
}

func (t Table) widths(cols int) []int {
	widths := make([]int, cols)
	if t.Widths != nil {
		copy(widths, t.Widths)
		return widths
	}
	for i, h := range t.Headers {
		widths[i] = max(widths[i], lipgloss.Width(h))
	}
	for _, row := range t.Rows {
		if isSeparator(row) {
			continue
		}
		for i, cell := range row {
			if i < cols {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	return widths
}

func (t Table) leftAligned(col int) bool {
	if col < len(t.LeftAligned) {
		return t.LeftAligned[col]
	}
	return col == 0
}

func isSeparator(row []string) bool {
	return len(row) == 1 && row[0] == "---"
}

func rule(widths []int, left, mid, right string) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w+2)
	}
	return dimStyle.Render(left+strings.Join(parts, mid)+right) + "\n"
}

func pad(s string, w int, left bool) string {
	gap := max(w-lipgloss.Width(s), 0)
	if left {
		return " " + s + strings.Repeat(" ", gap) + " "
	}
	return " " + strings.Repeat(" ", gap) + s + " "
}

// RenderTable renders a bordered table with headers and rows.
func RenderTable(t Table) string {
	cols := t.columns()
	if cols == 0 {
		return ""
	}
	widths := t.widths(cols)
	bar := dimStyle.Render("│")

	var b strings.Builder
	if t.Title != "" {
		b.WriteString(RenderSection(t.Title))
		b.WriteString("\n")
	}

	b.WriteString(rule(widths, "╭", "┬", "╮"))

	if len(t.Headers) > 0 {
		b.WriteString(bar)
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(pad(h, widths[i], t.leftAligned(i))))
			b.WriteString(bar)
		}
		b.WriteString("\n")
		b.WriteString(rule(widths, "├", "┼", "┤"))
	}

	for _, row := range t.Rows {
		if isSeparator(row) {
			b.WriteString(rule(widths, "├", "┼", "┤"))
			continue
		}
		b.WriteString(bar)
		for i := range cols {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(valueStyle.Render(pad(cell, widths[i], t.leftAligned(i))))
			b.WriteString(bar)
		}
		b.WriteString("\n")
	}

	b.WriteString(rule(widths, "╰", "┴", "╯"))
	return b.String()
}

// RenderProgressBar renders a text progress bar for a 0-100+ percentage.
// Values past 100 draw a full bar but keep the real number.
func RenderProgressBar(pct int, width int) string {
	if width <= 0 {
		return ""
	}
	filled := min(max(pct, 0)*width/100, width)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %3d%%", mutedStyle.Render(bar), pct)
}

// RenderSparkline generates a unicode block sparkline from a series of values.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := min(max(int(v/peak*float64(len(blocks)-1)), 0), len(blocks)-1)
		b.WriteRune(blocks[idx])
	}
	return b.String()
}

// RenderHorizontalBar renders a labelled bar scaled against maxValue and
// padded to maxWidth.
func RenderHorizontalBar(label string, value, maxValue float64, maxWidth int, color lipgloss.Color) string {
	barLen := 0
	if maxValue > 0 {
		barLen = min(max(int(value/maxValue*float64(maxWidth)), 0), maxWidth)
	}
	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", barLen)) +
		strings.Repeat(" ", maxWidth-barLen)
	return fmt.Sprintf("  %s %s", label, bar)
}
