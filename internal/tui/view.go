package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	content := m.screen.View(m.width, m.height-2)
	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderStatusBar())
}

func (m Model) renderStatusBar() string {
	text := HelpStyle.Render(m.screen.Help())
	if m.alert != nil {
		text = FormatAlert(*m.alert)
	}
	if m.screen.Loading() {
		text = m.spinner.View() + " " + text
	}
	return StatusBarStyle.Width(m.width).Render(text)
}

// overlay centers a form over the screen area
func overlay(width, height int, modal string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal,
		lipgloss.WithWhitespaceChars(" "))
}
