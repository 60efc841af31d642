package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := 0; active < 5; active++ {
		a := App{activeTab: active}
		pos := 0

		for i := 0; i < 5; i++ {
			w := tabWidthForTest(i, active)
			x := pos + w/2 // midpoint inside this tab
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w
			if i < 4 {
				pos++ // separator
			}
		}
		if got := a.tabAtX(pos + 3); got != -1 {
			t.Fatalf("active=%d x=%d past the last tab -> %d, want -1", active, pos+3, got)
		}
	}
}

func tabWidthForTest(tabIdx, activeIdx int) int {
	nameWidths := []int{
		len("Budget"),
		len("Tasks"),
		len("Habits"),
		len("Calendar"),
		len("Settings"),
	}

	w := nameWidths[tabIdx] + 2 // horizontal padding in tab renderer
	if tabIdx != activeIdx && tabIdx == 4 {
		w += 3 // inactive Settings adds "[x]"
	}
	return w
}

func TestClickOnTabBarSwitchesTab(t *testing.T) {
	a := newTestApp(t)
	x := tabWidthForTest(0, 0) + 1 + 2 // inside "Tasks"

	m, _ := a.Update(tea.MouseMsg{X: x, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if got := m.(App).activeTab; got != tabTasks {
		t.Fatalf("activeTab = %d, want %d", got, tabTasks)
	}

	// Clicks below the tab bar do nothing.
	m, _ = m.(App).Update(tea.MouseMsg{X: 1, Y: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if got := m.(App).activeTab; got != tabTasks {
		t.Fatalf("activeTab = %d after body click, want %d", got, tabTasks)
	}
}

func TestWheelMovesSelection(t *testing.T) {
	a := newTestApp(t)
	addExpenses(t, a, 3)

	m, _ := a.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	m, _ = m.(App).Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if got := m.(App).budget.cursor[budgetFocusExpenses]; got != 2 {
		t.Fatalf("cursor = %d, want 2", got)
	}
	m, _ = m.(App).Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if got := m.(App).budget.cursor[budgetFocusExpenses]; got != 2 {
		t.Fatalf("cursor = %d past the end, want 2", got)
	}
}
