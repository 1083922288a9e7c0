// Package session owns the bearer token and the login flow.
package session

import (
	"context"
	"errors"
	"strings"

	"github.com/existflow/taskboard/internal/api"
	"github.com/existflow/taskboard/internal/keystore"
	"github.com/existflow/taskboard/internal/logger"
	"github.com/existflow/taskboard/internal/model"
	"github.com/existflow/taskboard/internal/nav"
)

// MessageLoginFailed is shown when the backend gives no reason
const MessageLoginFailed = "Erro ao tentar fazer login."

// Session reads and writes the token in a keystore. It satisfies
// api.TokenSource.
type Session struct {
	store keystore.Store
}

// New wraps store
func New(store keystore.Store) *Session {
	return &Session{store: store}
}

// Token returns the stored token, "" when there is none
func (s *Session) Token(ctx context.Context) (string, error) {
	return s.store.Get(ctx, keystore.KeyToken)
}

// SetToken persists token
func (s *Session) SetToken(ctx context.Context, token string) error {
	return s.store.Set(ctx, keystore.KeyToken, token)
}

// HasToken reports whether a non-empty token is stored. Read failures count
// as no token.
func (s *Session) HasToken(ctx context.Context) bool {
	token, err := s.Token(ctx)
	if err != nil {
		logger.Warn("Failed to read stored token", logger.Err(err))
		return false
	}
	return token != ""
}

// LoginAPI is the part of *api.Client the manager needs
type LoginAPI interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// Manager signs users in
type Manager struct {
	api     LoginAPI
	session *Session
	nav     nav.Navigator
}

// NewManager wires the login flow. navigator may be nil for callers that do
// not navigate, such as the CLI.
func NewManager(client LoginAPI, session *Session, navigator nav.Navigator) *Manager {
	return &Manager{api: client, session: session, nav: navigator}
}

// Login checks credentials with the backend, stores the token and moves to
// the project list. Errors are *model.ValidationError or *api.Error.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return model.Invalid("email", "Informe o email.")
	}
	if password == "" {
		return model.Invalid("senha", "Informe a senha.")
	}

	token, err := m.api.Login(ctx, email, password)
	if err != nil {
		logger.Warn("Login failed", logger.F("email", email), logger.Err(err))
		return loginError(err)
	}
	if token == "" {
		logger.Warn("Login response carried no token", logger.F("email", email))
		return &api.Error{Message: MessageLoginFailed}
	}

	if err := m.session.SetToken(ctx, token); err != nil {
		var storeErr *keystore.Error
		if errors.As(err, &storeErr) {
			logger.Error("Failed to persist token", logger.F("op", storeErr.Op), logger.Err(storeErr.Err))
		} else {
			logger.Error("Failed to persist token", logger.Err(err))
		}
	}

	logger.Info("Logged in", logger.F("email", email))
	if m.nav != nil {
		m.nav.Navigate(nav.RouteProjects, nav.Params{})
	}
	return nil
}

// loginError keeps backend explanations and replaces the generic request
// failure with the login one
func loginError(err error) error {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return &api.Error{Message: MessageLoginFailed, Err: err}
	}
	if apiErr.Message == api.MessageGeneric {
		return &api.Error{StatusCode: apiErr.StatusCode, Message: MessageLoginFailed, Err: apiErr.Err}
	}
	return apiErr
}
