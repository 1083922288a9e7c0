package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/existflow/taskboard/internal/fakeapi"
	"github.com/existflow/taskboard/internal/model"
)

type staticToken struct {
	token string
	err   error
}

func (s staticToken) Token(ctx context.Context) (string, error) {
	return s.token, s.err
}

func newTestClient(t *testing.T, tokens TokenSource) (*Client, *fakeapi.Server) {
	t.Helper()
	fake := fakeapi.New()
	fake.AddUser("a@b.com", "x", "T1")
	srv := httptest.NewServer(fake.Router())
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", tokens), fake
}

func TestBearerHeaderAttached(t *testing.T) {
	client, fake := newTestClient(t, staticToken{token: "T1"})

	if _, err := client.ListProjects(context.Background(), 1, 10); err != nil {
		t.Fatalf("list projects: %v", err)
	}
	reqs := fake.Requests()
	if len(reqs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(reqs))
	}
	if reqs[0].Authorization != "Bearer T1" {
		t.Fatalf("expected bearer header, got %q", reqs[0].Authorization)
	}
	if reqs[0].RawQuery != "page=1&pageSize=10" {
		t.Fatalf("unexpected query %q", reqs[0].RawQuery)
	}
}

func TestMissingTokenSendsUnauthenticated(t *testing.T) {
	client, fake := newTestClient(t, staticToken{})

	_, err := client.ListProjects(context.Background(), 1, 10)
	if !IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("expected 401 from backend, got %v", err)
	}
	if got := fake.Requests()[0].Authorization; got != "" {
		t.Fatalf("expected no authorization header, got %q", got)
	}
}

func TestTokenReadFailureIsSwallowed(t *testing.T) {
	client, fake := newTestClient(t, staticToken{err: errors.New("keychain locked")})

	_, err := client.ListProjects(context.Background(), 1, 10)
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected the request to reach the backend, got %v", err)
	}
	if fake.Count(http.MethodGet, "/api/Projetos") != 1 {
		t.Fatalf("expected request to be sent despite token failure")
	}
}

func TestBackendMessageSurfaces(t *testing.T) {
	client, fake := newTestClient(t, staticToken{token: "T1"})
	fake.FailNext(http.MethodDelete, "/api/Projetos/9", http.StatusConflict, "Projeto possui tarefas.")

	err := client.DeleteProject(context.Background(), 9)
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Message != "Projeto possui tarefas." || apiErr.StatusCode != http.StatusConflict {
		t.Fatalf("unexpected error %+v", apiErr)
	}
}

func TestGenericMessageWithoutBody(t *testing.T) {
	client, fake := newTestClient(t, staticToken{token: "T1"})
	fake.FailNext(http.MethodDelete, "/api/Projetos/9", http.StatusInternalServerError, "")

	err := client.DeleteProject(context.Background(), 9)
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Message != MessageGeneric {
		t.Fatalf("expected generic message, got %v", err)
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := New(url, staticToken{token: "T1"})
	err := client.DeleteProject(context.Background(), 1)
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.StatusCode != 0 || apiErr.Message != MessageUnreachable {
		t.Fatalf("unexpected transport error %+v", apiErr)
	}
}

func TestLogin(t *testing.T) {
	client, _ := newTestClient(t, staticToken{})

	token, err := client.Login(context.Background(), "a@b.com", "x")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token != "T1" {
		t.Fatalf("expected T1, got %q", token)
	}

	_, err = client.Login(context.Background(), "a@b.com", "wrong")
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Message != "Email ou senha inválidos." {
		t.Fatalf("expected backend message, got %v", err)
	}
}

func TestProjectCRUD(t *testing.T) {
	client, fake := newTestClient(t, staticToken{token: "T1"})
	ctx := context.Background()

	start, _ := model.ParseDate("2024-01-15")
	if err := client.CreateProject(ctx, model.Project{Nome: "P1", Descricao: "d", DataInicio: &start}); err != nil {
		t.Fatalf("create: %v", err)
	}
	projects, err := client.ListProjects(ctx, 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(projects) != 1 || projects[0].Nome != "P1" {
		t.Fatalf("unexpected projects %+v", projects)
	}
	if projects[0].DataInicio == nil || projects[0].DataInicio.Text() != "2024-01-15" {
		t.Fatalf("expected start date to round-trip, got %v", projects[0].DataInicio)
	}

	p := projects[0]
	p.Nome = "P1b"
	if err := client.UpdateProject(ctx, p); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := client.GetProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Nome != "P1b" {
		t.Fatalf("expected updated name, got %q", got.Nome)
	}

	if err := client.DeleteProject(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(fake.Projects()) != 0 {
		t.Fatalf("expected project removed")
	}
}

func TestTaskCRUD(t *testing.T) {
	client, fake := newTestClient(t, staticToken{token: "T1"})
	ctx := context.Background()
	p := fake.SeedProject(model.Project{Nome: "P", Descricao: "d"})

	err := client.CreateTask(ctx, model.Task{Titulo: "T", Descricao: "d", Prioridade: model.PriorityHigh, ProjetoID: p.ID})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	tasks, err := client.ListTasks(ctx, p.ID)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Prioridade != model.PriorityHigh {
		t.Fatalf("unexpected tasks %+v", tasks)
	}

	task := tasks[0]
	task.Status = model.StatusFinished
	if err := client.UpdateTask(ctx, task); err != nil {
		t.Fatalf("update task: %v", err)
	}
	path := "/api/Tarefas/Projeto/1/1"
	if fake.Count(http.MethodPut, path) != 1 {
		t.Fatalf("expected PUT %s", path)
	}

	if err := client.DeleteTask(ctx, p.ID, task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if len(fake.Tasks(p.ID)) != 0 {
		t.Fatalf("expected task removed")
	}
}

func TestFallbackMessages(t *testing.T) {
	if MessageGeneric != "Erro ao processar a requisição." {
		t.Fatalf("unexpected generic message %q", MessageGeneric)
	}
	if MessageUnreachable != "Não foi possível conectar ao servidor." {
		t.Fatalf("unexpected unreachable message %q", MessageUnreachable)
	}
}
