package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/existflow/taskboard/internal/model"
)

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	if err := c.Do(ctx, http.MethodPost, "/api/Usuarios/login", loginRequest{Email: email, Senha: password}, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// ListProjects fetches one page of projects
func (c *Client) ListProjects(ctx context.Context, page, pageSize int) ([]model.Project, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))

	var resp Page[model.Project]
	if err := c.Do(ctx, http.MethodGet, "/api/Projetos?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// GetProject fetches a single project
func (c *Client) GetProject(ctx context.Context, id int64) (model.Project, error) {
	var p model.Project
	err := c.Do(ctx, http.MethodGet, projectPath(id), nil, &p)
	return p, err
}

// CreateProject posts a new project
func (c *Client) CreateProject(ctx context.Context, p model.Project) error {
	p.ID = 0
	return c.Do(ctx, http.MethodPost, "/api/Projetos", p, nil)
}

// UpdateProject replaces the project with p.ID
func (c *Client) UpdateProject(ctx context.Context, p model.Project) error {
	if p.ID == 0 {
		return fmt.Errorf("update project: missing id")
	}
	return c.Do(ctx, http.MethodPut, projectPath(p.ID), p, nil)
}

// DeleteProject removes a project
func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.Do(ctx, http.MethodDelete, projectPath(id), nil, nil)
}

// ListTasks fetches the tasks of a project
func (c *Client) ListTasks(ctx context.Context, projectID int64) ([]model.Task, error) {
	var resp taskCollection[model.Task]
	if err := c.Do(ctx, http.MethodGet, tasksPath(projectID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.items, nil
}

// CreateTask posts a new task under t.ProjetoID
func (c *Client) CreateTask(ctx context.Context, t model.Task) error {
	t.ID = 0
	return c.Do(ctx, http.MethodPost, tasksPath(t.ProjetoID), t, nil)
}

// UpdateTask replaces the task with t.ID under t.ProjetoID
func (c *Client) UpdateTask(ctx context.Context, t model.Task) error {
	if t.ID == 0 {
		return fmt.Errorf("update task: missing id")
	}
	return c.Do(ctx, http.MethodPut, taskPath(t.ProjetoID, t.ID), t, nil)
}

// DeleteTask removes a task
func (c *Client) DeleteTask(ctx context.Context, projectID, taskID int64) error {
	return c.Do(ctx, http.MethodDelete, taskPath(projectID, taskID), nil, nil)
}

func projectPath(id int64) string {
	return "/api/Projetos/" + strconv.FormatInt(id, 10)
}

func tasksPath(projectID int64) string {
	return "/api/Tarefas/Projeto/" + strconv.FormatInt(projectID, 10)
}

func taskPath(projectID, taskID int64) string {
	return tasksPath(projectID) + "/" + strconv.FormatInt(taskID, 10)
}
