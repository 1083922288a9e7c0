package keystore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/existflow/taskboard/internal/config"
	"github.com/existflow/taskboard/internal/db"
)

// exercise runs the behaviour every Store must share
func exercise(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	got, err := s.Get(ctx, KeyToken)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty value for missing key, got %q", got)
	}

	if err := s.Set(ctx, KeyToken, "T1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err = s.Get(ctx, KeyToken)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "T1" {
		t.Fatalf("expected T1, got %q", got)
	}

	if err := s.Delete(ctx, KeyToken); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ := s.Get(ctx, KeyToken); got != "" {
		t.Fatalf("expected value gone after delete, got %q", got)
	}
}

func TestLocalStore(t *testing.T) {
	database, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	s := NewLocal(database)
	defer s.Close()

	exercise(t, s)
}

func TestSecureStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secure.json")
	s, err := NewSecure(path, "correct horse")
	if err != nil {
		t.Fatalf("new secure: %v", err)
	}
	exercise(t, s)
}

func TestSecureStoreEncryptsAtRest(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "secure.json")
	s, err := NewSecure(path, "correct horse")
	if err != nil {
		t.Fatalf("new secure: %v", err)
	}
	if err := s.Set(ctx, KeyToken, "super-secret-token"); err != nil {
		t.Fatalf("set: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if strings.Contains(string(raw), "super-secret-token") {
		t.Fatalf("token stored in plain text")
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Fatalf("expected 0600, got %v", info.Mode().Perm())
	}

	wrong, _ := NewSecure(path, "wrong passphrase")
	_, err = wrong.Get(ctx, KeyToken)
	var storageErr *Error
	if !errors.As(err, &storageErr) {
		t.Fatalf("expected storage error with wrong passphrase, got %v", err)
	}
}

func TestSecureStoreNeedsPassphrase(t *testing.T) {
	if _, err := NewSecure(filepath.Join(t.TempDir(), "s.json"), ""); err == nil {
		t.Fatalf("expected error without passphrase")
	}
}

func TestMemoryStoreErrors(t *testing.T) {
	m := NewMemory()
	exercise(t, m)

	m.GetErr = errors.New("locked")
	_, err := m.Get(context.Background(), KeyToken)
	var storageErr *Error
	if !errors.As(err, &storageErr) || storageErr.Op != "get" {
		t.Fatalf("expected wrapped get error, got %v", err)
	}
}

func TestSelect(t *testing.T) {
	t.Run("auto without passphrase is local", func(t *testing.T) {
		t.Setenv(PassphraseEnv, "")
		s, err := Select(config.StoreAuto, t.TempDir())
		if err != nil {
			t.Fatalf("select: %v", err)
		}
		defer s.Close()
		if _, ok := s.(*Local); !ok {
			t.Fatalf("expected *Local, got %T", s)
		}
	})

	t.Run("auto with passphrase is secure", func(t *testing.T) {
		t.Setenv(PassphraseEnv, "pw")
		s, err := Select(config.StoreAuto, t.TempDir())
		if err != nil {
			t.Fatalf("select: %v", err)
		}
		if _, ok := s.(*Secure); !ok {
			t.Fatalf("expected *Secure, got %T", s)
		}
	})

	t.Run("secure without passphrase fails", func(t *testing.T) {
		t.Setenv(PassphraseEnv, "")
		if _, err := Select(config.StoreSecure, t.TempDir()); err == nil {
			t.Fatalf("expected error")
		}
	})
}
