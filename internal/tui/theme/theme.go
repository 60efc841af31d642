// Package theme holds the color themes of the planbook TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme maps UI roles to colors.
type Theme struct {
	Name string

	Background    lipgloss.Color
	Surface       lipgloss.Color // cards and bars
	SurfaceBright lipgloss.Color // selected rows
	Border        lipgloss.Color
	BorderAccent  lipgloss.Color // focused card

	TextDim     lipgloss.Color
	TextMuted   lipgloss.Color
	TextPrimary lipgloss.Color

	Accent       lipgloss.Color
	AccentBright lipgloss.Color

	Income  lipgloss.Color // balance, savings, completed items
	Expense lipgloss.Color // spending, errors
	Warning lipgloss.Color
	Info    lipgloss.Color
	Streak  lipgloss.Color
}

// Active is the theme used for rendering.
var Active = FlexokiDark

// FlexokiDark is the default, a warm paper-inspired dark theme.
var FlexokiDark = Theme{
	Name:          "flexoki-dark",
	Background:    "#100F0F",
	Surface:       "#1C1B1A",
	SurfaceBright: "#343331",
	Border:        "#403E3C",
	BorderAccent:  "#3AA99F",
	TextDim:       "#575653",
	TextMuted:     "#878580",
	TextPrimary:   "#FFFCF0",
	Accent:        "#3AA99F",
	AccentBright:  "#5BC8BE",
	Income:        "#879A39",
	Expense:       "#D14D41",
	Warning:       "#DA702C",
	Info:          "#4385BE",
	Streak:        "#D0A215",
}

// CatppuccinMocha is a soft pastel theme.
var CatppuccinMocha = Theme{
	Name:          "catppuccin-mocha",
	Background:    "#1E1E2E",
	Surface:       "#313244",
	SurfaceBright: "#585B70",
	Border:        "#585B70",
	BorderAccent:  "#89B4FA",
	TextDim:       "#6C7086",
	TextMuted:     "#A6ADC8",
	TextPrimary:   "#CDD6F4",
	Accent:        "#89B4FA",
	AccentBright:  "#B4D0FB",
	Income:        "#A6E3A1",
	Expense:       "#F38BA8",
	Warning:       "#FAB387",
	Info:          "#94E2D5",
	Streak:        "#F9E2AF",
}

// TokyoNight is a cool blue and purple theme.
var TokyoNight = Theme{
	Name:          "tokyo-night",
	Background:    "#1A1B26",
	Surface:       "#24283B",
	SurfaceBright: "#414868",
	Border:        "#565F89",
	BorderAccent:  "#7AA2F7",
	TextDim:       "#565F89",
	TextMuted:     "#A9B1D6",
	TextPrimary:   "#C0CAF5",
	Accent:        "#7AA2F7",
	AccentBright:  "#A9C1FF",
	Income:        "#9ECE6A",
	Expense:       "#F7768E",
	Warning:       "#FF9E64",
	Info:          "#7DCFFF",
	Streak:        "#E0AF68",
}

// Terminal sticks to the 16 ANSI colors.
var Terminal = Theme{
	Name:          "terminal",
	Background:    "0",
	Surface:       "0",
	SurfaceBright: "8",
	Border:        "8",
	BorderAccent:  "6",
	TextDim:       "8",
	TextMuted:     "7",
	TextPrimary:   "15",
	Accent:        "6",
	AccentBright:  "14",
	Income:        "2",
	Expense:       "1",
	Warning:       "3",
	Info:          "4",
	Streak:        "11",
}

// All lists the available themes in menu order.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// Names returns the theme names in menu order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// ByName returns the named theme, or FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// Next returns the theme after name, wrapping around.
func Next(name string) Theme {
	for i, t := range All {
		if t.Name == name {
			return All[(i+1)%len(All)]
		}
	}
	return All[0]
}

// SetActive makes the named theme current.
func SetActive(name string) {
	Active = ByName(name)
}
