// Package nav tracks which screen is showing and what it was opened with.
package nav

import (
	"strconv"
	"sync"

	"github.com/existflow/taskboard/internal/logger"
)

// Route names a screen
type Route int

const (
	RouteLogin Route = iota
	RouteProjects
	RouteProjectDetail
)

func (r Route) String() string {
	switch r {
	case RouteLogin:
		return "login"
	case RouteProjects:
		return "projects"
	case RouteProjectDetail:
		return "project"
	default:
		return "route(" + strconv.Itoa(int(r)) + ")"
	}
}

// Params carries what a screen needs to mount
type Params struct {
	ProjectID int64
}

// Entry is one screen on the stack
type Entry struct {
	Route  Route
	Params Params
}

// Navigator requests a screen change
type Navigator interface {
	Navigate(route Route, params Params)
}

// Stack is a history of entries. Navigating to RouteLogin or RouteProjects
// resets the history to that single entry; RouteProjectDetail is pushed.
type Stack struct {
	mu       sync.Mutex
	entries  []Entry
	onChange func(from, to Entry)
}

// NewStack starts at initial
func NewStack(initial Route) *Stack {
	return &Stack{entries: []Entry{{Route: initial}}}
}

// OnChange registers fn to run after every change with the previous and new
// top entries
func (s *Stack) OnChange(fn func(from, to Entry)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Navigate implements Navigator
func (s *Stack) Navigate(route Route, params Params) {
	s.mu.Lock()
	from := s.top()
	to := Entry{Route: route, Params: params}
	if route == RouteProjectDetail {
		s.entries = append(s.entries, to)
	} else {
		s.entries = []Entry{to}
	}
	fn := s.onChange
	s.mu.Unlock()

	logger.Debug("Navigate",
		logger.F("from", from.Route.String()),
		logger.F("to", route.String()),
		logger.F("projectID", params.ProjectID))
	if fn != nil {
		fn(from, to)
	}
}

// Back pops the top entry. It returns false when there is nothing to go
// back to.
func (s *Stack) Back() bool {
	s.mu.Lock()
	if len(s.entries) < 2 {
		s.mu.Unlock()
		return false
	}
	from := s.top()
	s.entries = s.entries[:len(s.entries)-1]
	to := s.top()
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn(from, to)
	}
	return true
}

// Current returns the top entry
func (s *Stack) Current() Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.top()
}

// Depth returns how many entries are on the stack
func (s *Stack) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Stack) top() Entry {
	return s.entries[len(s.entries)-1]
}
