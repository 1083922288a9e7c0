package fakeapi

import (
	"net/http"
	"sort"

	"github.com/existflow/taskboard/internal/model"
	"github.com/labstack/echo/v4"
)

// SeedTask stores t with a fresh id and returns it
func (s *Server) SeedTask(t model.Task) model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextTaskID
	s.nextTaskID++
	s.tasks[t.ID] = t
	return t
}

// Tasks returns the stored tasks of a project ordered by id
func (s *Server) Tasks(projectID int64) []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projectTasks(projectID)
}

func (s *Server) projectTasks(projectID int64) []model.Task {
	var out []model.Task
	for _, t := range s.tasks {
		if t.ProjetoID == projectID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func validTask(t model.Task) string {
	switch {
	case t.Titulo == "":
		return "O título da tarefa é obrigatório."
	case t.Descricao == "":
		return "A descrição da tarefa é obrigatória."
	case !t.Prioridade.Valid():
		return "Prioridade inválida."
	case !t.Status.Valid():
		return "Status inválido."
	}
	return ""
}

// projectParam resolves :projectId to an existing project. Errors are
// rendered by echo as {"message": ...}.
func (s *Server) projectParam(c echo.Context) (int64, error) {
	pid, ok := idParam(c, "projectId")
	if !ok {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Identificador inválido.")
	}
	if _, found := s.Project(pid); !found {
		return 0, echo.NewHTTPError(http.StatusNotFound, "Projeto não encontrado.")
	}
	return pid, nil
}

func (s *Server) handleListTasks(c echo.Context) error {
	pid, err := s.projectParam(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	tasks := s.projectTasks(pid)
	s.mu.Unlock()

	if tasks == nil {
		tasks = []model.Task{}
	}
	return c.JSON(http.StatusOK, preserved[model.Task]{ID: "1", Values: tasks})
}

func (s *Server) handleCreateTask(c echo.Context) error {
	pid, err := s.projectParam(c)
	if err != nil {
		return err
	}

	var t model.Task
	if err := c.Bind(&t); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Requisição inválida.")
	}
	if t.ProjetoID != pid {
		return errorJSON(c, http.StatusBadRequest, "A tarefa pertence a outro projeto.")
	}
	if msg := validTask(t); msg != "" {
		return errorJSON(c, http.StatusBadRequest, msg)
	}
	return c.JSON(http.StatusCreated, s.SeedTask(t))
}

func (s *Server) handleUpdateTask(c echo.Context) error {
	pid, err := s.projectParam(c)
	if err != nil {
		return err
	}
	tid, ok := idParam(c, "taskId")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "Identificador inválido.")
	}

	var t model.Task
	if err := c.Bind(&t); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Requisição inválida.")
	}
	if msg := validTask(t); msg != "" {
		return errorJSON(c, http.StatusBadRequest, msg)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	existing, found := s.tasks[tid]
	if !found || existing.ProjetoID != pid {
		return errorJSON(c, http.StatusNotFound, "Tarefa não encontrada.")
	}
	t.ID = tid
	t.ProjetoID = pid
	s.tasks[tid] = t
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleDeleteTask(c echo.Context) error {
	pid, err := s.projectParam(c)
	if err != nil {
		return err
	}
	tid, ok := idParam(c, "taskId")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "Identificador inválido.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	existing, found := s.tasks[tid]
	if !found || existing.ProjetoID != pid {
		return errorJSON(c, http.StatusNotFound, "Tarefa não encontrada.")
	}
	delete(s.tasks, tid)
	return c.NoContent(http.StatusNoContent)
}
