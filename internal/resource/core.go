package resource

import (
	"strconv"
	"sync"
)

// Snapshot is a copy of a controller's state for rendering
type Snapshot[I, D any] struct {
	State State
	Items []I
	// Draft is nil unless a form is open
	Draft *D
}

// Editing reports whether a form is open
func (s Snapshot[I, D]) Editing() bool {
	return s.Draft != nil
}

// core is the list + form state machine shared by both controllers. Every
// mutation is dropped once the controller is closed.
type core[I, D any] struct {
	mu     sync.Mutex
	alerts Notifier
	state  State
	loaded bool
	items  []I
	draft  *D
	closed bool
}

func newCore[I, D any](alerts Notifier) *core[I, D] {
	if alerts == nil {
		alerts = NotifierFunc(func(Alert) {})
	}
	return &core[I, D]{alerts: alerts}
}

// Snapshot copies the current state
func (c *core[I, D]) Snapshot() Snapshot[I, D] {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Snapshot[I, D]{State: c.state}
	s.Items = append(s.Items, c.items...)
	if c.draft != nil {
		d := *c.draft
		s.Draft = &d
	}
	return s
}

// Cancel discards the form. The list is untouched.
func (c *core[I, D]) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.draft = nil
	c.state = c.restingState()
}

// Close detaches the controller from its screen. Operations still in flight
// complete without touching state or raising alerts.
func (c *core[I, D]) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

// Closed reports whether Close was called
func (c *core[I, D]) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *core[I, D]) restingState() State {
	if c.loaded {
		return StateLoaded
	}
	return StateIdle
}

func (c *core[I, D]) openDraft(d D) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.draft = &d
	c.state = StateEditing
}

// clearDraft closes the form after a successful save. It returns false when
// the controller is closed.
func (c *core[I, D]) clearDraft() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	c.draft = nil
	c.state = c.restingState()
	return true
}

func (c *core[I, D]) startLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	if c.state != StateEditing {
		c.state = StateLoading
	}
	return true
}

// finishLoading stores items on success. On failure the previous items stay.
func (c *core[I, D]) finishLoading(items []I, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	if err == nil {
		c.items = items
	}
	c.loaded = true
	if c.state != StateEditing {
		c.state = StateLoaded
	}
	return true
}

func (c *core[I, D]) notify(kind AlertKind, msg string) {
	if c.Closed() {
		return
	}
	c.alerts.Notify(Alert{Kind: kind, Message: msg})
}

func (c *core[I, D]) fail(err error) {
	c.notify(AlertError, message(err))
}

// keyed builds list items whose Key is the positional index
func keyed[T, I any](records []T, build func(key string, record T) I) []I {
	out := make([]I, 0, len(records))
	for i, r := range records {
		out = append(out, build(strconv.Itoa(i), r))
	}
	return out
}
