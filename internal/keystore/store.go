// Package keystore persists small secrets such as the session token.
//
// Two backends mirror the two platforms the client runs on: Local keeps
// values in a sqlite key/value table (browser-style persistent storage) and
// Secure keeps them in an encrypted file. Select picks one at runtime.
package keystore

import (
	"context"
	"fmt"
)

// Well-known keys
const (
	KeyToken   = "token"
	KeyProject = "project"
)

// Store is a string key/value store. Get returns "" and a nil error for
// missing keys.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Error is a storage failure. Callers log it and carry on.
type Error struct {
	Op  string
	Key string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrap(op, key string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Key: key, Err: err}
}
