package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/haerye/jindo/internal/models"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.bar.Width = min(msg.Width-8, 60)

	case progressMsg:
		m.today = models.DailyProgress(msg)
		return m, tea.Batch(m.waitForUpdate(), m.bar.SetPercent(float64(m.today.Percent)/100))

	case goalReachedMsg:
		m.today = models.DailyProgress(msg)
		m.celebrate = true
		return m, tea.Batch(m.waitForUpdate(), m.bar.SetPercent(float64(m.today.Percent)/100))

	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
		case key.Matches(msg, m.keys.Refresh):
			m.tracker.RollDayIfNeeded()
			m.today = m.tracker.Summary()
			if !m.today.GoalCelebrated {
				m.celebrate = false
			}
			return m, m.bar.SetPercent(float64(m.today.Percent) / 100)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}

	return m, nil
}
