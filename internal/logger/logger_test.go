package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: WARN, Output: &buf})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	l.Info("hidden")
	l.Warn("shown", F("status", 500))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected INFO entry to be filtered, got %q", out)
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "shown | status=500") {
		t.Fatalf("expected WARN entry with field, got %q", out)
	}
	if !strings.Contains(out, "logger_test.go:") {
		t.Fatalf("expected caller to point at the test file, got %q", out)
	}
}

func TestWithFieldsDoesNotLeakIntoParent(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: DEBUG, Output: &buf})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	child := l.WithFields(F("screen", "projects"))
	child.Debug("child")
	l.Debug("parent")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "screen=projects") {
		t.Fatalf("expected child field, got %q", lines[0])
	}
	if strings.Contains(lines[1], "screen=") {
		t.Fatalf("expected parent without child fields, got %q", lines[1])
	}
}

func TestRotateOnSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskboard.log")
	if err := os.WriteFile(path, bytes.Repeat([]byte("x"), 64), 0644); err != nil {
		t.Fatalf("seed log: %v", err)
	}

	l, err := New(Config{Level: INFO, FilePath: path, MaxSize: 32, MaxBackups: 2})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	defer l.Close()

	if _, err := os.Stat(path + ".1"); err != nil {
		t.Fatalf("expected rotated backup: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat log: %v", err)
	}
	if info.Size() != 0 {
		t.Fatalf("expected fresh log file, got %d bytes", info.Size())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   DEBUG,
		"INFO":    INFO,
		"warning": WARN,
		"Error":   ERROR,
		"bogus":   INFO,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
