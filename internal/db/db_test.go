package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestValueLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := db.GetValue(ctx, "token"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := db.SetValue(ctx, "token", "T1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := db.SetValue(ctx, "token", "T2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := db.GetValue(ctx, "token")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "T2" {
		t.Fatalf("expected T2, got %q", got)
	}

	if err := db.DeleteValue(ctx, "token"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := db.DeleteValue(ctx, "token"); err != nil {
		t.Fatalf("delete missing key: %v", err)
	}
	if _, err := db.GetValue(ctx, "token"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestValuesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")
	ctx := context.Background()

	first, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.SetValue(ctx, "project", "42"); err != nil {
		t.Fatalf("set: %v", err)
	}
	_ = first.Close()

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	got, err := second.GetValue(ctx, "project")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "42" {
		t.Fatalf("expected 42, got %q", got)
	}
}
