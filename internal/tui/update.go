package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/taskboard/internal/logger"
	"github.com/existflow/taskboard/internal/resource"
)

// Init starts the listeners and the first screen
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitForNav(), m.waitForAlert(), m.spinner.Tick, m.screen.Init())
}

// waitForNav listens for navigation stack changes
func (m Model) waitForNav() tea.Cmd {
	ch := m.navCh
	return func() tea.Msg {
		return navMsg{to: <-ch}
	}
}

// waitForAlert listens for controller alerts
func (m Model) waitForAlert() tea.Cmd {
	ch := m.alertCh
	return func() tea.Msg {
		return alertMsg(<-ch)
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case navMsg:
		m.mount(msg.to)
		return m, tea.Batch(m.waitForNav(), m.screen.Init())

	case alertMsg:
		a := resource.Alert(msg)
		m.alert = &a
		return m, m.waitForAlert()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.ForceQuit) {
			return m, tea.Quit
		}
		if !m.screen.Capturing() && key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}
		// a key press acknowledges the last alert
		m.alert = nil
	}

	if sm, ok := msg.(screenMsg); ok && sm.screenID() != m.screenID {
		logger.Debug("Dropping result for unmounted screen", logger.F("screen", sm.screenID()))
		return m, nil
	}

	var cmd tea.Cmd
	m.screen, cmd = m.screen.Update(msg)
	return m, cmd
}
