// Package fakeapi is an in-memory stand-in for the project/task backend,
// speaking the same routes and JSON shapes. Tests mount Router() on an
// httptest.Server.
package fakeapi

import (
	"net/http"
	"strings"
	"sync"

	"github.com/existflow/taskboard/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Request is a call recorded by the server
type Request struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
	Body          string
}

type failure struct {
	status  int
	message string
}

// Server is the fake backend
type Server struct {
	echo *echo.Echo

	mu            sync.Mutex
	users         map[string]string // email -> senha
	tokens        map[string]string // token -> email
	projects      map[int64]model.Project
	tasks         map[int64]model.Task
	nextProjectID int64
	nextTaskID    int64
	requests      []Request
	failures      map[string]failure
	hold          map[string]chan struct{}

	// RequireAuth rejects requests without a known bearer token
	RequireAuth bool
}

// New creates a server with no data and authentication required
func New() *Server {
	s := &Server{
		users:         map[string]string{},
		tokens:        map[string]string{},
		projects:      map[int64]model.Project{},
		tasks:         map[int64]model.Task{},
		nextProjectID: 1,
		nextTaskID:    1,
		failures:      map[string]failure{},
		hold:          map[string]chan struct{}{},
		RequireAuth:   true,
	}
	s.setupEcho()
	return s
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(s.recordMiddleware)
	e.Use(s.failureMiddleware)

	api := e.Group("/api")

	// Public
	api.POST("/Usuarios/login", s.handleLogin)

	// Protected
	protected := api.Group("")
	protected.Use(s.authMiddleware)

	protected.GET("/Projetos", s.handleListProjects)
	protected.POST("/Projetos", s.handleCreateProject)
	protected.GET("/Projetos/:id", s.handleGetProject)
	protected.PUT("/Projetos/:id", s.handleUpdateProject)
	protected.DELETE("/Projetos/:id", s.handleDeleteProject)

	protected.GET("/Tarefas/Projeto/:projectId", s.handleListTasks)
	protected.POST("/Tarefas/Projeto/:projectId", s.handleCreateTask)
	protected.PUT("/Tarefas/Projeto/:projectId/:taskId", s.handleUpdateTask)
	protected.DELETE("/Tarefas/Projeto/:projectId/:taskId", s.handleDeleteTask)

	s.echo = e
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start serves on addr until Close is called
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Close stops a server started with Start
func (s *Server) Close() error {
	return s.echo.Close()
}

// AddUser registers credentials and the token login returns for them
func (s *Server) AddUser(email, senha, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[email] = senha
	s.tokens[token] = email
}

// FailNext makes the next request matching method and path answer status
// with message instead of reaching its handler
func (s *Server) FailNext(method, path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = failure{status: status, message: message}
}

// Hold blocks requests matching method and path until the returned release
// function is called
func (s *Server) Hold(method, path string) (release func()) {
	ch := make(chan struct{})
	s.mu.Lock()
	s.hold[method+" "+path] = ch
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.hold, method+" "+path)
			s.mu.Unlock()
			close(ch)
		})
	}
}

// Requests returns every recorded request in arrival order
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Count returns how many requests matched method and path
func (s *Server) Count(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// ResetRequests clears the request log
func (s *Server) ResetRequests() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"message": message})
}

func (s *Server) isValidToken(auth string) bool {
	token := strings.TrimPrefix(auth, "Bearer ")
	if token == auth || token == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tokens[token]
	return ok
}
