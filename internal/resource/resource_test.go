package resource

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/existflow/taskboard/internal/api"
	"github.com/existflow/taskboard/internal/fakeapi"
	"github.com/existflow/taskboard/internal/model"
)

type alertLog struct {
	mu     sync.Mutex
	alerts []Alert
}

func (l *alertLog) Notify(a Alert) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.alerts = append(l.alerts, a)
}

func (l *alertLog) all() []Alert {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Alert(nil), l.alerts...)
}

func (l *alertLog) last() Alert {
	all := l.all()
	if len(all) == 0 {
		return Alert{}
	}
	return all[len(all)-1]
}

type token string

func (t token) Token(ctx context.Context) (string, error) {
	return string(t), nil
}

func newTestEnv(t *testing.T) (*api.Client, *fakeapi.Server, *alertLog) {
	t.Helper()
	fake := fakeapi.New()
	fake.AddUser("a@b.com", "x", "T1")
	srv := httptest.NewServer(fake.Router())
	t.Cleanup(srv.Close)
	return api.New(srv.URL, token("T1")), fake, &alertLog{}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStateString(t *testing.T) {
	if StateEditing.String() != "editing" {
		t.Fatalf("unexpected %q", StateEditing.String())
	}
}

func TestDueInputPickedWins(t *testing.T) {
	picked := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	in := DueInput{Text: "not a date", Picked: &picked}

	d, err := in.Date()
	if err != nil {
		t.Fatalf("date: %v", err)
	}
	if d.Wire() != "2024-03-09T00:00:00Z" {
		t.Fatalf("unexpected wire %q", d.Wire())
	}
}

func TestDueInputTextForms(t *testing.T) {
	d, err := DueInput{Text: "2024-03-09"}.Date()
	if err != nil || d.Wire() != "2024-03-09T00:00:00Z" {
		t.Fatalf("expected parsed date, got %v, %v", d, err)
	}
	d, err = DueInput{}.Date()
	if err != nil || d != nil {
		t.Fatalf("expected no date, got %v, %v", d, err)
	}
	for _, bad := range []string{"09/03/2024", "2024-3-9", "2024-02-30", " 2024-03-09 "} {
		if _, err := (DueInput{Text: bad}).Date(); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestDueInputRoundTrip(t *testing.T) {
	wire := model.Date{Year: 2024, Month: time.December, Day: 31}
	in := DueInputFrom(&wire)

	if in.Text != "2024-12-31" {
		t.Fatalf("unexpected text %q", in.Text)
	}
	if in.Picked == nil || !in.Picked.Equal(wire.Time()) {
		t.Fatalf("unexpected picked %v", in.Picked)
	}

	fromText, _ := DueInput{Text: in.Text}.Date()
	fromPicker, _ := DueInput{Picked: in.Picked}.Date()
	if *fromText != wire || *fromPicker != wire {
		t.Fatalf("expected both editors to round-trip, got %v and %v", fromText, fromPicker)
	}
}
