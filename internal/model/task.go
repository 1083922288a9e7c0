package model

import (
	"strconv"
	"time"
)

// Task belongs to exactly one project through ProjetoID
type Task struct {
	ID             int64    `json:"id,omitempty"`
	Titulo         string   `json:"titulo"`
	Descricao      string   `json:"descricao"`
	Prioridade     Priority `json:"prioridade"`
	Status         Status   `json:"status"`
	DataVencimento *Date    `json:"dataVencimento"`
	ProjetoID      int64    `json:"projetoId"`
}

// IsOverdue returns true if the task is unfinished and its due date has passed
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DataVencimento == nil || t.Status == StatusFinished {
		return false
	}
	return t.DataVencimento.Time().Before(DateOf(now).Time())
}

func itoa64(i int64) string {
	return strconv.FormatInt(i, 10)
}
