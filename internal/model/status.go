package model

import (
	"strconv"
	"strings"
)

// Status is the progress state shared by projects and tasks
type Status int

const (
	StatusNotStarted Status = 0
	StatusInProgress Status = 1
	StatusFinished   Status = 2
)

// Statuses lists every defined status in wire order
var Statuses = []Status{StatusNotStarted, StatusInProgress, StatusFinished}

// Valid reports whether s is one of the defined statuses
func (s Status) Valid() bool {
	return s >= StatusNotStarted && s <= StatusFinished
}

// String returns the English name, "Unknown" for undefined values
func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "NotStarted"
	case StatusInProgress:
		return "InProgress"
	case StatusFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// Label returns the display text shown to users
func (s Status) Label() string {
	switch s {
	case StatusNotStarted:
		return "Não Iniciado"
	case StatusInProgress:
		return "Em Andamento"
	case StatusFinished:
		return "Concluído"
	default:
		return "Desconhecido"
	}
}

// Next cycles through the defined statuses; unknown values restart at NotStarted
func (s Status) Next() Status {
	if !s.Valid() || s == StatusFinished {
		return StatusNotStarted
	}
	return s + 1
}

// Priority of a task
type Priority int

const (
	PriorityLow    Priority = 0
	PriorityMedium Priority = 1
	PriorityHigh   Priority = 2
)

// Priorities lists every defined priority in wire order
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Valid reports whether p is one of the defined priorities
func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// Label returns the display text shown to users
func (p Priority) Label() string {
	switch p {
	case PriorityLow:
		return "Baixa"
	case PriorityMedium:
		return "Média"
	case PriorityHigh:
		return "Alta"
	default:
		return "Desconhecida"
	}
}

// Next cycles Low -> Medium -> High -> Low
func (p Priority) Next() Priority {
	if !p.Valid() || p == PriorityHigh {
		return PriorityLow
	}
	return p + 1
}

// ParseStatus accepts a wire number, an English name or a display label
func ParseStatus(s string) (Status, bool) {
	for _, v := range Statuses {
		if strings.EqualFold(s, v.String()) || strings.EqualFold(s, v.Label()) || s == strconv.Itoa(int(v)) {
			return v, true
		}
	}
	return 0, false
}

// ParsePriority accepts a wire number, an English name or a display label
func ParsePriority(s string) (Priority, bool) {
	for _, v := range Priorities {
		if strings.EqualFold(s, v.String()) || strings.EqualFold(s, v.Label()) || s == strconv.Itoa(int(v)) {
			return v, true
		}
	}
	return 0, false
}
