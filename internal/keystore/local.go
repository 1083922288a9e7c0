package keystore

import (
	"context"
	"errors"

	"github.com/existflow/taskboard/internal/db"
)

// Local stores values in plain text in the sqlite kv table
type Local struct {
	db *db.DB
}

// NewLocal wraps an open database
func NewLocal(database *db.DB) *Local {
	return &Local{db: database}
}

func (l *Local) Get(ctx context.Context, key string) (string, error) {
	value, err := l.db.GetValue(ctx, key)
	if errors.Is(err, db.ErrNotFound) {
		return "", nil
	}
	return value, wrap("get", key, err)
}

func (l *Local) Set(ctx context.Context, key, value string) error {
	return wrap("set", key, l.db.SetValue(ctx, key, value))
}

func (l *Local) Delete(ctx context.Context, key string) error {
	return wrap("delete", key, l.db.DeleteValue(ctx, key))
}

// Close closes the underlying database
func (l *Local) Close() error {
	return l.db.Close()
}
