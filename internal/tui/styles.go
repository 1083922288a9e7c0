package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/taskboard/internal/model"
	"github.com/existflow/taskboard/internal/resource"
)

// Color palette
var (
	// Priority colors
	PriorityHighColor   = lipgloss.Color("#FF6B6B") // Red
	PriorityMediumColor = lipgloss.Color("#FFE66D") // Yellow
	PriorityLowColor    = lipgloss.Color("#4ECDC4") // Blue

	// Status colors
	Finished   = lipgloss.Color("#95E1A3") // Green
	InProgress = lipgloss.Color("#FFB347") // Orange
	Failure    = lipgloss.Color("#FF6B6B") // Red

	// UI colors
	Primary   = lipgloss.Color("#4ECDC4")
	Surface   = lipgloss.Color("#16213e")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	ListStyle = lipgloss.NewStyle().
			Padding(1, 2)

	ItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	ItemSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	ItemDoneStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Strikethrough(true).
			Padding(0, 1)

	OverdueStyle = lipgloss.NewStyle().Foreground(Failure).Bold(true)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	SuccessStyle = lipgloss.NewStyle().Foreground(Finished)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Failure).Bold(true)

	// Forms
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	LabelStyle        = lipgloss.NewStyle().Width(14).Foreground(TextMuted)
	LabelFocusedStyle = lipgloss.NewStyle().Width(14).Foreground(Primary).Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)

// FormatPriority renders a task priority label in its color
func FormatPriority(p model.Priority) string {
	style := lipgloss.NewStyle().Foreground(PriorityLowColor)
	switch p {
	case model.PriorityHigh:
		style = lipgloss.NewStyle().Foreground(PriorityHighColor).Bold(true)
	case model.PriorityMedium:
		style = lipgloss.NewStyle().Foreground(PriorityMediumColor)
	case model.PriorityLow:
	default:
		style = lipgloss.NewStyle().Foreground(TextMuted)
	}
	return style.Render(p.Label())
}

// FormatStatus renders a status label in its color
func FormatStatus(s model.Status) string {
	style := lipgloss.NewStyle().Foreground(TextMuted)
	switch s {
	case model.StatusFinished:
		style = lipgloss.NewStyle().Foreground(Finished)
	case model.StatusInProgress:
		style = lipgloss.NewStyle().Foreground(InProgress)
	}
	return style.Render(s.Label())
}

// FormatAlert renders an alert for the status bar
func FormatAlert(a resource.Alert) string {
	if a.Kind == resource.AlertError {
		return ErrorStyle.Render(a.Message)
	}
	return SuccessStyle.Render(a.Message)
}
