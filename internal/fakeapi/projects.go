package fakeapi

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/existflow/taskboard/internal/model"
	"github.com/labstack/echo/v4"
)

// preserved mimics ASP.NET's reference-preserving collection output
type preserved[T any] struct {
	ID     string `json:"$id"`
	Values []T    `json:"$values"`
}

type projectPage struct {
	Items      preserved[model.Project] `json:"items"`
	Page       int                      `json:"page"`
	PageSize   int                      `json:"pageSize"`
	TotalCount int                      `json:"totalCount"`
}

// SeedProject stores p with a fresh id and returns it
func (s *Server) SeedProject(p model.Project) model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.nextProjectID
	s.nextProjectID++
	s.projects[p.ID] = p
	return p
}

// Projects returns all stored projects ordered by id
func (s *Server) Projects() []model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedProjects()
}

// Project returns the stored project with id
func (s *Server) Project(id int64) (model.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	return p, ok
}

func (s *Server) sortedProjects() []model.Project {
	out := make([]model.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func intQuery(c echo.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func idParam(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	return id, err == nil
}

func validProject(p model.Project) string {
	if p.Nome == "" {
		return "O nome do projeto é obrigatório."
	}
	if p.Descricao == "" {
		return "A descrição do projeto é obrigatória."
	}
	return ""
}

func (s *Server) handleListProjects(c echo.Context) error {
	page := intQuery(c, "page", 1)
	pageSize := intQuery(c, "pageSize", 10)

	s.mu.Lock()
	all := s.sortedProjects()
	s.mu.Unlock()

	start := (page - 1) * pageSize
	if start > len(all) {
		start = len(all)
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}

	return c.JSON(http.StatusOK, projectPage{
		Items:      preserved[model.Project]{ID: "2", Values: all[start:end]},
		Page:       page,
		PageSize:   pageSize,
		TotalCount: len(all),
	})
}

func (s *Server) handleGetProject(c echo.Context) error {
	id, ok := idParam(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "Identificador inválido.")
	}
	p, found := s.Project(id)
	if !found {
		return errorJSON(c, http.StatusNotFound, "Projeto não encontrado.")
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) handleCreateProject(c echo.Context) error {
	var p model.Project
	if err := c.Bind(&p); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Requisição inválida.")
	}
	if msg := validProject(p); msg != "" {
		return errorJSON(c, http.StatusBadRequest, msg)
	}
	return c.JSON(http.StatusCreated, s.SeedProject(p))
}

func (s *Server) handleUpdateProject(c echo.Context) error {
	id, ok := idParam(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "Identificador inválido.")
	}
	var p model.Project
	if err := c.Bind(&p); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Requisição inválida.")
	}
	if p.ID != 0 && p.ID != id {
		return errorJSON(c, http.StatusBadRequest, "O id do corpo difere do id da rota.")
	}
	if msg := validProject(p); msg != "" {
		return errorJSON(c, http.StatusBadRequest, msg)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.projects[id]; !found {
		return errorJSON(c, http.StatusNotFound, "Projeto não encontrado.")
	}
	p.ID = id
	s.projects[id] = p
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleDeleteProject(c echo.Context) error {
	id, ok := idParam(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "Identificador inválido.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.projects[id]; !found {
		return errorJSON(c, http.StatusNotFound, "Projeto não encontrado.")
	}
	delete(s.projects, id)
	for tid, t := range s.tasks {
		if t.ProjetoID == id {
			delete(s.tasks, tid)
		}
	}
	return c.NoContent(http.StatusNoContent)
}
