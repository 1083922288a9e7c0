package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/existflow/taskboard/internal/api"
	"github.com/existflow/taskboard/internal/config"
	"github.com/existflow/taskboard/internal/keystore"
	"github.com/existflow/taskboard/internal/logger"
	"github.com/existflow/taskboard/internal/resource"
	"github.com/existflow/taskboard/internal/session"
)

// app bundles what every command needs: the token store, the session over
// it and an API client authenticated by that session
type app struct {
	store   keystore.Backend
	session *session.Session
	client  *api.Client
}

func openApp() (*app, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	store, err := keystore.Select(cfg.TokenStore, dir)
	if err != nil {
		logger.Error("Failed to open token store", logger.Err(err))
		return nil, fmt.Errorf("failed to open token store: %w", err)
	}

	var opts []api.Option
	if cfg.Timeout > 0 {
		opts = append(opts, api.WithTimeout(cfg.Timeout))
	}
	if cfg.InsecureTLS {
		opts = append(opts, api.WithInsecureTLS())
	}

	sess := session.New(store)
	return &app{
		store:   store,
		session: sess,
		client:  api.New(cfg.BaseURL, sess, opts...),
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		logger.Warn("Failed to close token store", logger.Err(err))
	}
}

// requireLogin fails early when no token is stored
func (a *app) requireLogin(ctx context.Context) error {
	if !a.session.HasToken(ctx) {
		return fmt.Errorf("not logged in, run 'taskboard login' first")
	}
	return nil
}

// projectID returns flagValue when set, else the project chosen with 'use'
func (a *app) projectID(ctx context.Context, flagValue int64) (int64, error) {
	if flagValue > 0 {
		return flagValue, nil
	}
	stored, err := a.store.Get(ctx, keystore.KeyProject)
	if err != nil {
		logger.Warn("Failed to read default project", logger.Err(err))
	}
	if stored == "" {
		return 0, fmt.Errorf("no project selected, pass --project or run 'taskboard use <project-id>'")
	}
	id, err := parseID(stored)
	if err != nil {
		return 0, fmt.Errorf("stored project %q is invalid, run 'taskboard use <project-id>'", stored)
	}
	return id, nil
}

// printer reports successful operations. Failures come back as errors and
// are printed by cobra.
func printer() resource.Notifier {
	return resource.NotifierFunc(func(a resource.Alert) {
		if a.Kind == resource.AlertSuccess {
			fmt.Printf("✓ %s\n", a.Message)
		}
	})
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
