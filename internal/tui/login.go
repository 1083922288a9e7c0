package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/taskboard/internal/api"
	"github.com/existflow/taskboard/internal/model"
	"github.com/existflow/taskboard/internal/session"
)

type loginResultMsg struct {
	id  int
	err error
}

func (m loginResultMsg) screenID() int { return m.id }

type loginScreen struct {
	id      int
	manager *session.Manager

	email    textinput.Model
	password textinput.Model
	focus    int
	busy     bool
	errText  string
}

func newLoginScreen(id int, manager *session.Manager) *loginScreen {
	email := newInput("", "email@exemplo.com")
	password := newInput("", "senha")
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	return &loginScreen{id: id, manager: manager, email: email, password: password}
}

func (s *loginScreen) Init() tea.Cmd {
	return s.email.Focus()
}

func (s *loginScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		s.busy = false
		if msg.err != nil {
			s.errText = loginMessage(msg.err)
		}
		return s, nil

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		switch {
		case key.Matches(msg, keys.Submit):
			return s, s.submit()
		case msg.Type == tea.KeyTab, msg.Type == tea.KeyShiftTab, msg.Type == tea.KeyUp, msg.Type == tea.KeyDown:
			s.focus = 1 - s.focus
			if s.focus == 0 {
				s.password.Blur()
				return s, s.email.Focus()
			}
			s.email.Blur()
			return s, s.password.Focus()
		}
	}

	var cmd tea.Cmd
	if s.focus == 0 {
		s.email, cmd = s.email.Update(msg)
	} else {
		s.password, cmd = s.password.Update(msg)
	}
	return s, cmd
}

// submit runs the login. On success the manager navigates away and this
// screen is unmounted before the result arrives.
func (s *loginScreen) submit() tea.Cmd {
	s.busy = true
	s.errText = ""
	id, manager := s.id, s.manager
	email, password := s.email.Value(), s.password.Value()
	return func() tea.Msg {
		return loginResultMsg{id: id, err: manager.Login(context.Background(), email, password)}
	}
}

func loginMessage(err error) string {
	var vErr *model.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return session.MessageLoginFailed
}

func (s *loginScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Taskboard") + "\n\n")
	b.WriteString(LabelStyle.Render("Email") + " " + s.email.View() + "\n")
	b.WriteString(LabelStyle.Render("Senha") + " " + s.password.View() + "\n")
	if s.errText != "" {
		b.WriteString("\n" + ErrorStyle.Render(s.errText) + "\n")
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, ModalStyle.Render(b.String()))
}

func (s *loginScreen) Help() string {
	return "tab:switch field  enter:login  ctrl+c:quit"
}

func (s *loginScreen) Capturing() bool { return true }

func (s *loginScreen) Loading() bool { return s.busy }

func (s *loginScreen) Close() {}
