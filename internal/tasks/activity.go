package tasks

import (
	"slices"

	"github.com/theirongolddev/planbook/internal/model"
	"github.com/theirongolddev/planbook/internal/store"
)

// Activities returns the recent-changes log, newest first.
func (m *Manager) Activities() []model.Activity { return slices.Clone(m.activities) }

func (m *Manager) logActivity(text string) {
	now := m.clock.Now()
	a := model.Activity{
		ID:        m.ids.NewID(),
		Text:      text,
		Time:      now.Format("15:04"),
		Timestamp: now,
	}
	m.activities = slices.Insert(m.activities, 0, a)
	if len(m.activities) > MaxActivities {
		m.activities = m.activities[:MaxActivities]
	}
	m.st.Set(store.KeyActivities, m.activities)
}
