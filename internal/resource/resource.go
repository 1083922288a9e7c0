// Package resource holds the list and form state behind the project and
// task screens. Controllers are safe for use from multiple goroutines: the
// TUI runs their operations as commands.
package resource

import (
	"errors"
	"strconv"

	"github.com/existflow/taskboard/internal/api"
	"github.com/existflow/taskboard/internal/model"
)

// State of a controller
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateEditing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateEditing:
		return "editing"
	default:
		return "state(" + strconv.Itoa(int(s)) + ")"
	}
}

// AlertKind separates confirmations from failures
type AlertKind int

const (
	AlertSuccess AlertKind = iota
	AlertError
)

// Alert is a message for the user
type Alert struct {
	Kind    AlertKind
	Message string
}

// Notifier shows alerts
type Notifier interface {
	Notify(Alert)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(Alert)

func (f NotifierFunc) Notify(a Alert) { f(a) }

// Options tune list requests
type Options struct {
	Page     int
	PageSize int
}

func (o Options) withDefaults() Options {
	if o.Page <= 0 {
		o.Page = 1
	}
	if o.PageSize <= 0 {
		o.PageSize = 10
	}
	return o
}

// message picks the text to show for err
func message(err error) string {
	var vErr *model.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return api.MessageGeneric
}

// parseOptionalDate returns nil for blank text
func parseOptionalDate(field, text, msg string) (*model.Date, error) {
	if text == "" {
		return nil, nil
	}
	d, err := model.ParseDate(text)
	if err != nil {
		return nil, model.Invalid(field, msg)
	}
	return &d, nil
}
