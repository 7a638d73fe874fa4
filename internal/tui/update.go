package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/analogio/analog-cli/internal/widget"
)

// Update handles all messages and key events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TriggerMsg:
		return m, m.widget.TriggerRefresh(msg.Reason)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Fetch results and dwell timers belong to the controllers
	return m, tea.Batch(m.widget.Update(msg), m.schedule.Update(msg))
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if err := m.schedule.Checkpoint(); err != nil {
			m.log.Warn("schedule checkpoint failed", zap.Error(err))
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Focus):
		if m.focus == focusSurfaces {
			m.focus = focusSchedule
		} else {
			m.focus = focusSurfaces
		}
		return m, nil

	case key.Matches(msg, m.keys.Pull):
		return m, m.schedule.PullToRefresh()

	case key.Matches(msg, m.keys.Add):
		return m.addSurface()

	case key.Matches(msg, m.keys.Remove):
		return m.removeSurface()

	case key.Matches(msg, m.keys.Select):
		n, _ := strconv.Atoi(msg.String())
		if n < 1 || n > m.board.Len() {
			return m, nil
		}
		m.cursor = n - 1
		m.focus = focusSurfaces
		return m.tap()
	}

	switch m.focus {
	case focusSurfaces:
		return m.handleSurfaceKeys(msg)
	case focusSchedule:
		return m.handleScheduleKeys(msg)
	}
	return m, nil
}

func (m Model) handleSurfaceKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Tap):
		return m.tap()

	case key.Matches(msg, m.keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Right):
		if m.cursor < m.board.Len()-1 {
			m.cursor++
		}
	}
	return m, nil
}

func (m Model) handleScheduleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.scroll < len(m.schedule.Rows())-1 {
			m.scroll++
		}

	case key.Matches(msg, m.keys.Up):
		if m.scroll > 0 {
			m.scroll--
		}
	}
	return m, nil
}

// tap refreshes from the selected surface if what it shows carries a retry
// action. A surface showing Refreshing ignores taps.
func (m Model) tap() (tea.Model, tea.Cmd) {
	id, ok := m.selectedSurface()
	if !ok {
		return m, nil
	}
	state, ok := m.board.State(id)
	if !ok || !state.Tappable() {
		return m, nil
	}
	return m, m.widget.TriggerRefresh(state.Retry.Reason)
}

func (m Model) addSurface() (tea.Model, tea.Cmd) {
	if m.board.Len() >= m.maxSurfaces {
		return m, nil
	}
	id := m.board.Add()
	m.cursor = m.board.Len() - 1
	m.log.Debug("surface added", zap.Int("surface", int(id)))

	// A new surface gets a system update, which refreshes every surface
	return m, trigger(widget.SystemUpdate)
}

func (m Model) removeSurface() (tea.Model, tea.Cmd) {
	id, ok := m.selectedSurface()
	if !ok {
		return m, nil
	}
	m.board.Remove(id)
	m.log.Debug("surface removed", zap.Int("surface", int(id)))

	if m.cursor >= m.board.Len() {
		m.cursor = max(m.board.Len()-1, 0)
	}
	return m, nil
}
