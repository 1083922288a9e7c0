package resource

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/existflow/taskboard/internal/api"
	"github.com/existflow/taskboard/internal/model"
)

func TestProjectSaveValidation(t *testing.T) {
	client, fake, alerts := newTestEnv(t)
	c := NewProjectController(client, alerts, Options{})
	ctx := context.Background()

	cases := []ProjectDraft{
		{Nome: "", Descricao: "d"},
		{Nome: "P", Descricao: "  "},
		{Nome: "P", Descricao: "d", DataInicio: "15/01/2024"},
		{Nome: "P", Descricao: "d", DataFim: "2024-13-01"},
	}
	for _, d := range cases {
		err := c.Save(ctx, d)
		var vErr *model.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected validation error for %+v, got %v", d, err)
		}
		if alerts.last().Kind != AlertError || alerts.last().Message != vErr.Message {
			t.Fatalf("expected error alert %q, got %+v", vErr.Message, alerts.last())
		}
		snap := c.Snapshot()
		if snap.State != StateEditing || snap.Draft == nil || *snap.Draft != d {
			t.Fatalf("expected form kept open with draft, got %+v", snap)
		}
	}
	if n := len(fake.Requests()); n != 0 {
		t.Fatalf("expected no requests, got %d", n)
	}
}

func TestProjectCreateReloadsAndClearsForm(t *testing.T) {
	client, fake, alerts := newTestEnv(t)
	c := NewProjectController(client, alerts, Options{PageSize: 10})
	ctx := context.Background()

	c.BeginAdd()
	err := c.Save(ctx, ProjectDraft{Nome: "P1", Descricao: "d", DataInicio: "2024-01-15"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if fake.Count(http.MethodPost, "/api/Projetos") != 1 {
		t.Fatalf("expected one POST")
	}
	if fake.Count(http.MethodGet, "/api/Projetos") != 1 {
		t.Fatalf("expected list to be fetched after save")
	}
	if body := fake.Requests()[0].Body; body != `{"nome":"P1","descricao":"d","status":0,"dataInicio":"2024-01-15T00:00:00Z","dataFim":null}` {
		t.Fatalf("unexpected body %s", body)
	}

	snap := c.Snapshot()
	if snap.Editing() || snap.State != StateLoaded {
		t.Fatalf("expected closed form in loaded state, got %+v", snap)
	}
	if len(snap.Items) != 1 || snap.Items[0].Project.Nome != "P1" || snap.Items[0].Key != "0" {
		t.Fatalf("unexpected items %+v", snap.Items)
	}
	if alerts.all()[0].Kind != AlertSuccess {
		t.Fatalf("expected success alert, got %+v", alerts.all())
	}
}

func TestProjectUpdateUsesID(t *testing.T) {
	client, fake, alerts := newTestEnv(t)
	for i := 0; i < 5; i++ {
		fake.SeedProject(model.Project{Nome: "P", Descricao: "d"})
	}
	c := NewProjectController(client, alerts, Options{})

	if err := c.Save(context.Background(), ProjectDraft{ID: 5, Nome: "Five", Descricao: "d"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if fake.Count(http.MethodPut, "/api/Projetos/5") != 1 {
		t.Fatalf("expected PUT on /api/Projetos/5, got %+v", fake.Requests())
	}
	if fake.Count(http.MethodPost, "/api/Projetos") != 0 {
		t.Fatalf("expected no POST for an existing project")
	}
	if p, _ := fake.Project(5); p.Nome != "Five" {
		t.Fatalf("expected project 5 updated, got %+v", p)
	}
}

func TestProjectSaveFailureKeepsForm(t *testing.T) {
	client, fake, alerts := newTestEnv(t)
	fake.FailNext(http.MethodPost, "/api/Projetos", http.StatusBadRequest, "Nome duplicado.")
	c := NewProjectController(client, alerts, Options{})

	d := ProjectDraft{Nome: "P", Descricao: "d"}
	err := c.Save(context.Background(), d)
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected api error, got %v", err)
	}
	if alerts.last().Message != "Nome duplicado." {
		t.Fatalf("expected backend message alert, got %+v", alerts.last())
	}
	if snap := c.Snapshot(); snap.Draft == nil || *snap.Draft != d {
		t.Fatalf("expected form kept, got %+v", snap)
	}
	if fake.Count(http.MethodGet, "/api/Projetos") != 0 {
		t.Fatalf("expected no reload after a failed save")
	}
}

func TestProjectEditCancel(t *testing.T) {
	client, fake, alerts := newTestEnv(t)
	start := model.Date{Year: 2024, Month: 1, Day: 15}
	fake.SeedProject(model.Project{Nome: "P", Descricao: "d", DataInicio: &start})
	c := NewProjectController(client, alerts, Options{})
	ctx := context.Background()

	items, err := c.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	c.BeginEdit(items[0].Project)
	snap := c.Snapshot()
	if snap.State != StateEditing || snap.Draft.DataInicio != "2024-01-15" || snap.Draft.ID != 1 {
		t.Fatalf("unexpected edit state %+v", snap)
	}

	c.Cancel()
	snap = c.Snapshot()
	if snap.Editing() || snap.State != StateLoaded {
		t.Fatalf("expected closed form, got %+v", snap)
	}
	if len(snap.Items) != 1 || snap.Items[0].Project.Nome != "P" {
		t.Fatalf("expected list untouched, got %+v", snap.Items)
	}
	if fake.Count(http.MethodGet, "/api/Projetos") != 1 {
		t.Fatalf("expected cancel to make no requests")
	}
}

func TestProjectCancelBeforeLoad(t *testing.T) {
	client, _, alerts := newTestEnv(t)
	c := NewProjectController(client, alerts, Options{})

	c.BeginAdd()
	c.Cancel()
	if c.Snapshot().State != StateIdle {
		t.Fatalf("expected idle, got %v", c.Snapshot().State)
	}
}

func TestProjectListLabels(t *testing.T) {
	client, fake, alerts := newTestEnv(t)
	fake.SeedProject(model.Project{Nome: "P1", Descricao: "d", Status: model.StatusInProgress})
	c := NewProjectController(client, alerts, Options{})

	items, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	status := items[0].Project.Status
	if status.Label() != "Em Andamento" || status.String() != "InProgress" {
		t.Fatalf("unexpected status %v / %q", status, status.Label())
	}
}

func TestProjectListFailureKeepsItems(t *testing.T) {
	client, fake, alerts := newTestEnv(t)
	fake.SeedProject(model.Project{Nome: "P", Descricao: "d"})
	c := NewProjectController(client, alerts, Options{})
	ctx := context.Background()

	if _, err := c.List(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	fake.FailNext(http.MethodGet, "/api/Projetos", http.StatusServiceUnavailable, "")
	if _, err := c.List(ctx); err == nil {
		t.Fatalf("expected list error")
	}

	snap := c.Snapshot()
	if snap.State != StateLoaded || len(snap.Items) != 1 {
		t.Fatalf("expected previous list kept, got %+v", snap)
	}
	if alerts.last().Kind != AlertError || alerts.last().Message != api.MessageGeneric {
		t.Fatalf("expected generic error alert, got %+v", alerts.last())
	}
}

func TestProjectDeleteFailureNoRetry(t *testing.T) {
	client, fake, alerts := newTestEnv(t)
	for i := 0; i < 9; i++ {
		fake.SeedProject(model.Project{Nome: "P", Descricao: "d"})
	}
	c := NewProjectController(client, alerts, Options{})
	ctx := context.Background()

	if _, err := c.List(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	before := c.Snapshot().Items
	fake.ResetRequests()
	fake.FailNext(http.MethodDelete, "/api/Projetos/9", http.StatusInternalServerError, "")

	if err := c.Delete(ctx, 9); !api.IsStatus(err, http.StatusInternalServerError) {
		t.Fatalf("expected 500, got %v", err)
	}
	if alerts.last().Kind != AlertError {
		t.Fatalf("expected error alert, got %+v", alerts.last())
	}
	if n := len(fake.Requests()); n != 1 {
		t.Fatalf("expected exactly one request, got %d", n)
	}
	after := c.Snapshot().Items
	if len(after) != len(before) {
		t.Fatalf("expected list unchanged, got %d items", len(after))
	}
}

func TestProjectDeleteReloads(t *testing.T) {
	client, fake, alerts := newTestEnv(t)
	p := fake.SeedProject(model.Project{Nome: "P", Descricao: "d"})
	c := NewProjectController(client, alerts, Options{})
	ctx := context.Background()

	if _, err := c.List(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if err := c.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(c.Snapshot().Items) != 0 {
		t.Fatalf("expected empty list after delete")
	}
	if alerts.last().Kind != AlertSuccess {
		t.Fatalf("expected success alert, got %+v", alerts.last())
	}
}

func TestProjectLateCompletionAfterClose(t *testing.T) {
	client, fake, alerts := newTestEnv(t)
	fake.SeedProject(model.Project{Nome: "P", Descricao: "d"})
	c := NewProjectController(client, alerts, Options{})
	release := fake.Hold(http.MethodGet, "/api/Projetos")

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.List(context.Background())
	}()

	waitFor(t, func() bool { return fake.Count(http.MethodGet, "/api/Projetos") == 1 })
	c.Close()
	release()
	<-done

	snap := c.Snapshot()
	if snap.State != StateLoading || len(snap.Items) != 0 {
		t.Fatalf("expected state frozen at close, got %+v", snap)
	}
	if len(alerts.all()) != 0 {
		t.Fatalf("expected no alerts after close, got %+v", alerts.all())
	}
}

func TestProjectSaveKeepsUnknownStatus(t *testing.T) {
	client, fake, alerts := newTestEnv(t)
	stored := fake.SeedProject(model.Project{Nome: "P", Descricao: "d", Status: model.Status(7)})
	c := NewProjectController(client, alerts, Options{})

	c.BeginEdit(stored)
	d := c.Snapshot().Draft
	if d == nil {
		t.Fatal("expected an open form")
	}
	d.Nome = "Renamed"
	if err := c.Save(context.Background(), *d); err != nil {
		t.Fatalf("save: %v", err)
	}

	p, _ := fake.Project(stored.ID)
	if p.Nome != "Renamed" || p.Status != model.Status(7) {
		t.Fatalf("expected rename with status kept, got %+v", p)
	}
}

func TestProjectSaveRejectsPaddedDate(t *testing.T) {
	client, fake, alerts := newTestEnv(t)
	c := NewProjectController(client, alerts, Options{})

	err := c.Save(context.Background(), ProjectDraft{Nome: "P", Descricao: "d", DataInicio: " 2024-01-15 "})
	var vErr *model.ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "dataInicio" {
		t.Fatalf("expected dataInicio validation error, got %v", err)
	}
	if n := len(fake.Requests()); n != 0 {
		t.Fatalf("expected no requests, got %d", n)
	}
}

func TestProjectSaveAfterCloseSendsNothing(t *testing.T) {
	client, fake, alerts := newTestEnv(t)
	c := NewProjectController(client, alerts, Options{})
	c.BeginAdd()
	c.Close()

	if err := c.Save(context.Background(), ProjectDraft{Nome: "P", Descricao: "d"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if n := fake.Count(http.MethodPost, "/api/Projetos"); n != 0 {
		t.Fatalf("expected no POST after close, got %d", n)
	}
	if len(alerts.all()) != 0 {
		t.Fatalf("expected no alerts after close, got %+v", alerts.all())
	}
}
