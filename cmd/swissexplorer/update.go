package main

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/probeops/swisskit/cmd/swissexplorer/logger"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		detailWidth := m.width - m.listWidth() - 2*chromeWidth
		if detailWidth < 1 {
			detailWidth = 1
		}
		if !m.ready {
			m.detail = viewport.New(detailWidth, m.paneHeight())
			m.ready = true
			m.refreshDetail()
		} else {
			m.detail.Width = detailWidth
			m.detail.Height = m.paneHeight()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes the help overlay.
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		logger.Debug("quit requested")
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		if m.focusedPane == VariablePane {
			m.focusedPane = DetailPane
		} else {
			m.focusedPane = VariablePane
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.focusedPane == VariablePane {
			m.moveCursor(-1)
			return m, nil
		}

	case key.Matches(msg, m.keys.Down):
		if m.focusedPane == VariablePane {
			m.moveCursor(1)
			return m, nil
		}

	case key.Matches(msg, m.keys.Top):
		if m.focusedPane == VariablePane {
			m.setCursor(0)
		} else {
			m.detail.GotoTop()
		}
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		if m.focusedPane == VariablePane {
			m.setCursor(len(m.vars) - 1)
		} else {
			m.detail.GotoBottom()
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		m.refreshDetail()
		return m, nil
	}

	// Everything else scrolls the detail pane.
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m *Model) moveCursor(delta int) {
	m.setCursor(m.cursor + delta)
}

func (m *Model) setCursor(idx int) {
	if len(m.vars) == 0 {
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx > len(m.vars)-1 {
		idx = len(m.vars) - 1
	}
	if idx == m.cursor {
		return
	}
	m.cursor = idx
	if m.ready {
		m.refreshDetail()
	}
}
