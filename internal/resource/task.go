package resource

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/existflow/taskboard/internal/logger"
	"github.com/existflow/taskboard/internal/model"
)

// TaskAPI is the part of *api.Client the task controller uses
type TaskAPI interface {
	GetProject(ctx context.Context, id int64) (model.Project, error)
	ListTasks(ctx context.Context, projectID int64) ([]model.Task, error)
	CreateTask(ctx context.Context, t model.Task) error
	UpdateTask(ctx context.Context, t model.Task) error
	DeleteTask(ctx context.Context, projectID, taskID int64) error
}

// TaskItem is a listed task with its display key
type TaskItem struct {
	Key  string
	Task model.Task
}

// DueInput holds the due date as typed text and as a picked day. A picked
// day takes precedence.
type DueInput struct {
	Text   string
	Picked *time.Time
}

// DueInputFrom fills both representations from d
func DueInputFrom(d *model.Date) DueInput {
	if d == nil || d.IsZero() {
		return DueInput{}
	}
	t := d.Time()
	return DueInput{Text: d.Text(), Picked: &t}
}

// Date resolves the input. Blank text with nothing picked means no date.
func (in DueInput) Date() (*model.Date, error) {
	if in.Picked != nil {
		d := model.DateOf(*in.Picked)
		return &d, nil
	}
	return parseOptionalDate("dataVencimento", in.Text,
		"Data de vencimento inválida. Use o formato AAAA-MM-DD.")
}

// TaskDraft is the task form. ID 0 means a new task.
type TaskDraft struct {
	ID         int64
	Titulo     string
	Descricao  string
	Prioridade model.Priority
	Status     model.Status
	Due        DueInput
}

// TaskDraftFrom fills a form from a stored task
func TaskDraftFrom(t model.Task) TaskDraft {
	return TaskDraft{
		ID:         t.ID,
		Titulo:     t.Titulo,
		Descricao:  t.Descricao,
		Prioridade: t.Prioridade,
		Status:     t.Status,
		Due:        DueInputFrom(t.DataVencimento),
	}
}

// Task validates the form and converts it to the wire record of projectID
func (d TaskDraft) Task(projectID int64) (model.Task, error) {
	t := model.Task{
		ID:         d.ID,
		Titulo:     strings.TrimSpace(d.Titulo),
		Descricao:  strings.TrimSpace(d.Descricao),
		Prioridade: d.Prioridade,
		Status:     d.Status,
		ProjetoID:  projectID,
	}
	switch {
	case t.Titulo == "":
		return t, model.Invalid("titulo", "O título da tarefa é obrigatório.")
	case t.Descricao == "":
		return t, model.Invalid("descricao", "A descrição da tarefa é obrigatória.")
	case !t.Prioridade.Valid():
		return t, model.Invalid("prioridade", "Prioridade inválida.")
	case !t.Status.Valid():
		return t, model.Invalid("status", "Status inválido.")
	}

	due, err := d.Due.Date()
	if err != nil {
		return t, err
	}
	t.DataVencimento = due
	return t, nil
}

// TaskSnapshot is what the project screen renders
type TaskSnapshot = Snapshot[TaskItem, TaskDraft]

// TaskController drives the task list of one project
type TaskController struct {
	*core[TaskItem, TaskDraft]
	api       TaskAPI
	projectID int64

	nameMu      sync.Mutex
	projectName string
}

// NewTaskController creates an idle controller for projectID
func NewTaskController(client TaskAPI, alerts Notifier, projectID int64) *TaskController {
	return &TaskController{
		core:      newCore[TaskItem, TaskDraft](alerts),
		api:       client,
		projectID: projectID,
	}
}

// ProjectID returns the project the controller is scoped to
func (c *TaskController) ProjectID() int64 {
	return c.projectID
}

// Header returns the project name, or "Projeto <id>" until it is known
func (c *TaskController) Header() string {
	c.nameMu.Lock()
	name := c.projectName
	c.nameMu.Unlock()
	return model.Project{ID: c.projectID, Nome: name}.DisplayName()
}

// Load fetches the project name and the task list at the same time. A
// failed name lookup only leaves the header on its fallback.
func (c *TaskController) Load(ctx context.Context) error {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.loadName(ctx)
	}()

	_, err := c.List(ctx)
	wg.Wait()
	return err
}

func (c *TaskController) loadName(ctx context.Context) {
	p, err := c.api.GetProject(ctx, c.projectID)
	if err != nil {
		logger.Warn("Failed to fetch project name",
			logger.F("projectID", c.projectID), logger.Err(err))
		return
	}
	if c.Closed() {
		return
	}
	c.nameMu.Lock()
	c.projectName = p.Nome
	c.nameMu.Unlock()
}

// List fetches the project's tasks. On failure the previous items are kept
// and an error alert is raised.
func (c *TaskController) List(ctx context.Context) ([]TaskItem, error) {
	if !c.startLoading() {
		return nil, nil
	}

	tasks, err := c.api.ListTasks(ctx, c.projectID)
	var items []TaskItem
	if err == nil {
		items = keyed(tasks, func(key string, t model.Task) TaskItem {
			return TaskItem{Key: key, Task: t}
		})
	}
	if !c.finishLoading(items, err) {
		return nil, nil
	}
	if err != nil {
		logger.Warn("Failed to list tasks", logger.F("projectID", c.projectID), logger.Err(err))
		c.fail(err)
		return nil, err
	}
	logger.Debug("Listed tasks", logger.F("projectID", c.projectID), logger.F("count", len(items)))
	return items, nil
}

// BeginAdd opens an empty form
func (c *TaskController) BeginAdd() {
	c.openDraft(TaskDraft{})
}

// BeginEdit opens the form on t
func (c *TaskController) BeginEdit(t model.Task) {
	c.openDraft(TaskDraftFrom(t))
}

// Save validates d and creates or updates the task under the controller's
// project. On success the form closes and the list is fetched again. A
// closed controller sends nothing.
func (c *TaskController) Save(ctx context.Context, d TaskDraft) error {
	if c.Closed() {
		return nil
	}
	t, err := d.Task(c.projectID)
	if err != nil {
		c.openDraft(d)
		c.fail(err)
		return err
	}

	success := "Tarefa atualizada com sucesso."
	if t.ID == 0 {
		success = "Tarefa criada com sucesso."
		err = c.api.CreateTask(ctx, t)
	} else {
		err = c.api.UpdateTask(ctx, t)
	}
	if err != nil {
		logger.Warn("Failed to save task",
			logger.F("projectID", c.projectID), logger.F("id", t.ID), logger.Err(err))
		c.openDraft(d)
		c.fail(err)
		return err
	}

	logger.Info("Saved task", logger.F("projectID", c.projectID), logger.F("id", t.ID))
	if !c.clearDraft() {
		return nil
	}
	c.notify(AlertSuccess, success)
	_, _ = c.List(ctx)
	return nil
}

// SetStatus moves a listed task to status and refreshes the list
func (c *TaskController) SetStatus(ctx context.Context, id int64, status model.Status) error {
	var task *model.Task
	for _, item := range c.Snapshot().Items {
		if item.Task.ID == id {
			t := item.Task
			task = &t
			break
		}
	}
	if task == nil {
		err := errors.New("task is not in the current list")
		c.notify(AlertError, "Tarefa não encontrada.")
		return err
	}

	task.Status = status
	task.ProjetoID = c.projectID
	if err := c.api.UpdateTask(ctx, *task); err != nil {
		logger.Warn("Failed to update task status", logger.F("id", id), logger.Err(err))
		c.fail(err)
		return err
	}
	logger.Info("Updated task status", logger.F("id", id), logger.F("status", status.String()))
	c.notify(AlertSuccess, "Tarefa atualizada com sucesso.")
	_, _ = c.List(ctx)
	return nil
}

// Delete removes task id and refreshes the list. Failures leave the list as
// it was.
func (c *TaskController) Delete(ctx context.Context, id int64) error {
	if err := c.api.DeleteTask(ctx, c.projectID, id); err != nil {
		logger.Warn("Failed to delete task",
			logger.F("projectID", c.projectID), logger.F("id", id), logger.Err(err))
		c.fail(err)
		return err
	}
	logger.Info("Deleted task", logger.F("projectID", c.projectID), logger.F("id", id))
	c.notify(AlertSuccess, "Tarefa excluída com sucesso.")
	_, _ = c.List(ctx)
	return nil
}
