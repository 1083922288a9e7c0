package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/taskboard/internal/api"
	"github.com/existflow/taskboard/internal/logger"
	"github.com/existflow/taskboard/internal/nav"
	"github.com/existflow/taskboard/internal/resource"
	"github.com/existflow/taskboard/internal/session"
)

// Deps are the collaborators the screens need
type Deps struct {
	Client   *api.Client
	Session  *session.Session
	PageSize int
}

// screen is one mounted route. Result messages carry the id of the screen
// that started them so late results for an unmounted screen are dropped.
type screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (screen, tea.Cmd)
	View(width, height int) string
	// Help is the status bar hint
	Help() string
	// Capturing reports whether keys go to a text field
	Capturing() bool
	// Loading reports whether a request is in flight
	Loading() bool
	Close()
}

type screenMsg interface {
	screenID() int
}

// navMsg is sent when the navigation stack changes
type navMsg struct {
	to nav.Entry
}

// alertMsg carries a controller alert
type alertMsg resource.Alert

// Model is the main TUI model
type Model struct {
	deps  Deps
	stack *nav.Stack

	navCh   chan nav.Entry
	alertCh chan resource.Alert

	screen   screen
	screenID int

	width   int
	height  int
	spinner spinner.Model
	alert   *resource.Alert
}

// NewModel creates the TUI. It opens on the project list when a token is
// stored and on the login screen otherwise.
func NewModel(deps Deps) Model {
	logger.Info("Initializing TUI model")

	initial := nav.RouteLogin
	if deps.Session.HasToken(context.Background()) {
		initial = nav.RouteProjects
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		deps:    deps,
		stack:   nav.NewStack(initial),
		navCh:   make(chan nav.Entry, 8),
		alertCh: make(chan resource.Alert, 16),
		spinner: sp,
	}
	navCh := m.navCh
	m.stack.OnChange(func(from, to nav.Entry) {
		navCh <- to
	})
	m.mount(m.stack.Current())

	logger.Debug("TUI model initialized", logger.F("route", initial.String()))
	return m
}

// notifier forwards controller alerts into the program
func (m *Model) notifier() resource.Notifier {
	ch := m.alertCh
	return resource.NotifierFunc(func(a resource.Alert) {
		select {
		case ch <- a:
		default:
			logger.Warn("Alert dropped", logger.F("message", a.Message))
		}
	})
}

// mount replaces the current screen with the one for entry
func (m *Model) mount(entry nav.Entry) {
	if m.screen != nil {
		m.screen.Close()
	}
	m.screenID++
	m.alert = nil

	switch entry.Route {
	case nav.RouteLogin:
		manager := session.NewManager(m.deps.Client, m.deps.Session, m.stack)
		m.screen = newLoginScreen(m.screenID, manager)
	case nav.RouteProjects:
		ctrl := resource.NewProjectController(m.deps.Client, m.notifier(), resource.Options{PageSize: m.deps.PageSize})
		m.screen = newProjectsScreen(m.screenID, ctrl, m.stack)
	case nav.RouteProjectDetail:
		ctrl := resource.NewTaskController(m.deps.Client, m.notifier(), entry.Params.ProjectID)
		m.screen = newTasksScreen(m.screenID, ctrl, m.stack)
	}
	logger.Debug("Mounted screen", logger.F("route", entry.Route.String()), logger.F("screen", m.screenID))
}
