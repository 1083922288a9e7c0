package resource

import (
	"context"
	"strings"

	"github.com/existflow/taskboard/internal/logger"
	"github.com/existflow/taskboard/internal/model"
)

// ProjectAPI is the part of *api.Client the project controller uses
type ProjectAPI interface {
	ListProjects(ctx context.Context, page, pageSize int) ([]model.Project, error)
	CreateProject(ctx context.Context, p model.Project) error
	UpdateProject(ctx context.Context, p model.Project) error
	DeleteProject(ctx context.Context, id int64) error
}

// ProjectItem is a listed project with its display key
type ProjectItem struct {
	Key     string
	Project model.Project
}

// ProjectDraft is the project form. Dates are YYYY-MM-DD text, blank for
// none. ID 0 means a new project.
type ProjectDraft struct {
	ID         int64
	Nome       string
	Descricao  string
	Status     model.Status
	DataInicio string
	DataFim    string
}

// ProjectDraftFrom fills a form from a stored project
func ProjectDraftFrom(p model.Project) ProjectDraft {
	return ProjectDraft{
		ID:         p.ID,
		Nome:       p.Nome,
		Descricao:  p.Descricao,
		Status:     p.Status,
		DataInicio: model.FormatOptionalDate(p.DataInicio),
		DataFim:    model.FormatOptionalDate(p.DataFim),
	}
}

// Project validates the form and converts it to the wire record
func (d ProjectDraft) Project() (model.Project, error) {
	p := model.Project{
		ID:        d.ID,
		Nome:      strings.TrimSpace(d.Nome),
		Descricao: strings.TrimSpace(d.Descricao),
		Status:    d.Status,
	}
	if p.Nome == "" {
		return p, model.Invalid("nome", "O nome do projeto é obrigatório.")
	}
	if p.Descricao == "" {
		return p, model.Invalid("descricao", "A descrição do projeto é obrigatória.")
	}
	var err error
	p.DataInicio, err = parseOptionalDate("dataInicio", d.DataInicio,
		"Data de início inválida. Use o formato AAAA-MM-DD.")
	if err != nil {
		return p, err
	}
	p.DataFim, err = parseOptionalDate("dataFim", d.DataFim,
		"Data de fim inválida. Use o formato AAAA-MM-DD.")
	if err != nil {
		return p, err
	}
	return p, nil
}

// ProjectSnapshot is what the project screen renders
type ProjectSnapshot = Snapshot[ProjectItem, ProjectDraft]

// ProjectController drives the project list screen
type ProjectController struct {
	*core[ProjectItem, ProjectDraft]
	api  ProjectAPI
	opts Options
}

// NewProjectController creates an idle controller
func NewProjectController(client ProjectAPI, alerts Notifier, opts Options) *ProjectController {
	return &ProjectController{
		core: newCore[ProjectItem, ProjectDraft](alerts),
		api:  client,
		opts: opts.withDefaults(),
	}
}

// List fetches the configured page. On failure the previous items are kept
// and an error alert is raised.
func (c *ProjectController) List(ctx context.Context) ([]ProjectItem, error) {
	if !c.startLoading() {
		return nil, nil
	}

	projects, err := c.api.ListProjects(ctx, c.opts.Page, c.opts.PageSize)
	var items []ProjectItem
	if err == nil {
		items = keyed(projects, func(key string, p model.Project) ProjectItem {
			return ProjectItem{Key: key, Project: p}
		})
	}
	if !c.finishLoading(items, err) {
		return nil, nil
	}
	if err != nil {
		logger.Warn("Failed to list projects", logger.Err(err))
		c.fail(err)
		return nil, err
	}
	logger.Debug("Listed projects", logger.F("count", len(items)))
	return items, nil
}

// BeginAdd opens an empty form
func (c *ProjectController) BeginAdd() {
	c.openDraft(ProjectDraft{})
}

// BeginEdit opens the form on p
func (c *ProjectController) BeginEdit(p model.Project) {
	c.openDraft(ProjectDraftFrom(p))
}

// Save validates d and creates or updates the project. Validation failures
// never reach the network. On success the form closes and the list is
// fetched again; on failure the form stays open with d. A closed controller
// sends nothing.
func (c *ProjectController) Save(ctx context.Context, d ProjectDraft) error {
	if c.Closed() {
		return nil
	}
	p, err := d.Project()
	if err != nil {
		c.openDraft(d)
		c.fail(err)
		return err
	}

	success := "Projeto atualizado com sucesso."
	if p.ID == 0 {
		success = "Projeto criado com sucesso."
		err = c.api.CreateProject(ctx, p)
	} else {
		err = c.api.UpdateProject(ctx, p)
	}
	if err != nil {
		logger.Warn("Failed to save project", logger.F("id", p.ID), logger.Err(err))
		c.openDraft(d)
		c.fail(err)
		return err
	}

	logger.Info("Saved project", logger.F("id", p.ID), logger.F("nome", p.Nome))
	if !c.clearDraft() {
		return nil
	}
	c.notify(AlertSuccess, success)
	_, _ = c.List(ctx)
	return nil
}

// Delete removes project id and refreshes the list. Failures leave the list
// as it was.
func (c *ProjectController) Delete(ctx context.Context, id int64) error {
	if err := c.api.DeleteProject(ctx, id); err != nil {
		logger.Warn("Failed to delete project", logger.F("id", id), logger.Err(err))
		c.fail(err)
		return err
	}
	logger.Info("Deleted project", logger.F("id", id))
	c.notify(AlertSuccess, "Projeto excluído com sucesso.")
	_, _ = c.List(ctx)
	return nil
}
