package tui

import (
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/taskboard/internal/api"
	"github.com/existflow/taskboard/internal/fakeapi"
	"github.com/existflow/taskboard/internal/keystore"
	"github.com/existflow/taskboard/internal/model"
	"github.com/existflow/taskboard/internal/nav"
	"github.com/existflow/taskboard/internal/resource"
	"github.com/existflow/taskboard/internal/session"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDateFieldTogglesEditors(t *testing.T) {
	f := newForm("t").addText("Título", "").addDate("Vencimento", resource.DueInput{Text: "2024-01-31"})
	f.start()
	f.focus = 1

	f.update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if !f.fields[1].picking {
		t.Fatalf("expected picker mode")
	}
	f.update(runes("+"))

	in := f.due(1)
	if in.Picked == nil || model.DateOf(*in.Picked).Text() != "2024-02-01" {
		t.Fatalf("expected picked 2024-02-01, got %+v", in)
	}

	f.update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if got := f.due(1); got.Picked != nil || got.Text != "2024-02-01" {
		t.Fatalf("expected text editor to carry the picked day, got %+v", got)
	}
}

func TestChoiceFieldCycles(t *testing.T) {
	f := newForm("t").addChoice("Status", statusOptions(), optionIndex(model.Statuses, model.StatusFinished))
	f.start()

	f.update(tea.KeyMsg{Type: tea.KeyRight})
	if model.Statuses[f.selected(0)] != model.StatusNotStarted {
		t.Fatalf("expected wrap to the first status, got %d", f.selected(0))
	}
	f.update(tea.KeyMsg{Type: tea.KeyLeft})
	if model.Statuses[f.selected(0)] != model.StatusFinished {
		t.Fatalf("expected wrap back to finished, got %d", f.selected(0))
	}
}

func newTestModel(t *testing.T, token string) Model {
	t.Helper()
	fake := fakeapi.New()
	srv := httptest.NewServer(fake.Router())
	t.Cleanup(srv.Close)

	store := keystore.NewMemory()
	if token != "" {
		_ = store.Set(t.Context(), keystore.KeyToken, token)
	}
	sess := session.New(store)
	return NewModel(Deps{Client: api.New(srv.URL, sess), Session: sess, PageSize: 10})
}

func TestInitialRoute(t *testing.T) {
	if _, ok := newTestModel(t, "").screen.(*loginScreen); !ok {
		t.Fatalf("expected login screen without a token")
	}
	if _, ok := newTestModel(t, "T1").screen.(*projectsScreen); !ok {
		t.Fatalf("expected projects screen with a stored token")
	}
}

func TestNavigationRemountsAndDropsStaleResults(t *testing.T) {
	m := newTestModel(t, "T1")
	first := m.screenID

	m.stack.Navigate(nav.RouteProjectDetail, nav.Params{ProjectID: 4})
	entry := <-m.navCh
	updated, _ := m.Update(navMsg{to: entry})
	m = updated.(Model)

	ts, ok := m.screen.(*tasksScreen)
	if !ok {
		t.Fatalf("expected tasks screen, got %T", m.screen)
	}
	if ts.ctrl.ProjectID() != 4 || m.screenID == first {
		t.Fatalf("expected new screen for project 4")
	}

	ts.busy = true
	updated, _ = m.Update(opDoneMsg{id: first})
	m = updated.(Model)
	if !m.screen.(*tasksScreen).busy {
		t.Fatalf("expected stale result to be dropped")
	}
}
