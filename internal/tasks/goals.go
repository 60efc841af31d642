package tasks

import (
	"fmt"
	"slices"
	"strings"

	"github.com/theirongolddev/planbook/internal/model"
	"github.com/theirongolddev/planbook/internal/notify"
	"github.com/theirongolddev/planbook/internal/store"
)

// Goals returns all goals in creation order.
func (m *Manager) Goals() []model.Goal { return slices.Clone(m.goals) }

// AddGoal appends a goal with zero progress.
func (m *Manager) AddGoal(title, kind string, target int) (model.Goal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Goal{}, m.reject(ErrEmptyTitle)
	}
	if target < 1 {
		return model.Goal{}, m.reject(ErrBadTarget)
	}
	g := model.Goal{
		ID:        m.ids.NewID(),
		Title:     title,
		Type:      strings.TrimSpace(kind),
		Target:    target,
		CreatedAt: m.clock.Now(),
	}
	m.goals = append(m.goals, g)
	m.st.Set(store.KeyGoals, m.goals)

	m.notes.Notify(notify.Success, "Goal added")
	return g, nil
}

// AdvanceGoal adds delta to a goal's progress, never going below zero.
func (m *Manager) AdvanceGoal(id string, delta int) (model.Goal, bool) {
	i := slices.IndexFunc(m.goals, func(g model.Goal) bool { return g.ID == id })
	if i < 0 {
		return model.Goal{}, false
	}
	g := &m.goals[i]
	g.Current = max(g.Current+delta, 0)
	m.st.Set(store.KeyGoals, m.goals)

	m.notes.Notify(notify.Info, fmt.Sprintf("%s: %d/%d", g.Title, g.Current, g.Target))
	return *g, true
}

// DeleteGoal removes a goal.
func (m *Manager) DeleteGoal(id string) bool {
	i := slices.IndexFunc(m.goals, func(g model.Goal) bool { return g.ID == id })
	if i < 0 {
		return false
	}
	m.goals = slices.Delete(m.goals, i, i+1)
	m.st.Set(store.KeyGoals, m.goals)

	m.notes.Notify(notify.Success, "Goal deleted")
	return true
}

// QuickGoals returns the first n goals.
func (m *Manager) QuickGoals(n int) []model.Goal {
	if n > len(m.goals) {
		n = len(m.goals)
	}
	return slices.Clone(m.goals[:max(n, 0)])
}
