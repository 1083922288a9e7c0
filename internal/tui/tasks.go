package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/taskboard/internal/model"
	"github.com/existflow/taskboard/internal/nav"
	"github.com/existflow/taskboard/internal/resource"
)

// tasksScreen shows one project's tasks
type tasksScreen struct {
	id     int
	ctrl   *resource.TaskController
	stack  *nav.Stack
	cursor int
	form   *form
	busy   bool
}

func newTasksScreen(id int, ctrl *resource.TaskController, stack *nav.Stack) *tasksScreen {
	return &tasksScreen{id: id, ctrl: ctrl, stack: stack}
}

func (s *tasksScreen) Init() tea.Cmd {
	s.busy = true
	return run(s.id, s.ctrl.Load)
}

func (s *tasksScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case opDoneMsg:
		s.busy = false
		snap := s.ctrl.Snapshot()
		s.cursor = clamp(s.cursor, len(snap.Items))
		if !snap.Editing() {
			s.form = nil
		}
		return s, nil

	case tea.KeyMsg:
		if s.form != nil {
			return s, s.updateForm(msg)
		}
		return s, s.handleKeys(msg)
	}
	return s, nil
}

func (s *tasksScreen) handleKeys(msg tea.KeyMsg) tea.Cmd {
	items := s.ctrl.Snapshot().Items

	switch {
	case key.Matches(msg, keys.Back):
		s.stack.Back()
		return nil
	case key.Matches(msg, keys.Up):
		s.cursor = clamp(s.cursor-1, len(items))
	case key.Matches(msg, keys.Down):
		s.cursor = clamp(s.cursor+1, len(items))
	case key.Matches(msg, keys.Refresh):
		s.busy = true
		return run(s.id, func(ctx context.Context) error {
			_, err := s.ctrl.List(ctx)
			return err
		})
	case key.Matches(msg, keys.Add):
		s.ctrl.BeginAdd()
		return s.openForm("Nova tarefa", resource.TaskDraft{})
	}

	if len(items) == 0 || s.busy {
		return nil
	}
	selected := items[s.cursor].Task

	switch {
	case key.Matches(msg, keys.Edit), key.Matches(msg, keys.Enter):
		s.ctrl.BeginEdit(selected)
		return s.openForm("Editar tarefa", resource.TaskDraftFrom(selected))
	case key.Matches(msg, keys.Done):
		next := model.StatusFinished
		if selected.Status == model.StatusFinished {
			next = model.StatusNotStarted
		}
		s.busy = true
		return run(s.id, func(ctx context.Context) error {
			return s.ctrl.SetStatus(ctx, selected.ID, next)
		})
	case key.Matches(msg, keys.Delete):
		s.busy = true
		return run(s.id, func(ctx context.Context) error {
			return s.ctrl.Delete(ctx, selected.ID)
		})
	}
	return nil
}

// task form field order
const (
	taskTitulo = iota
	taskDescricao
	taskPrioridade
	taskStatus
	taskVencimento
)

func (s *tasksScreen) openForm(title string, d resource.TaskDraft) tea.Cmd {
	s.form = newForm(title).
		addText("Título", d.Titulo).
		addText("Descrição", d.Descricao).
		addChoice("Prioridade", priorityOptions(), optionIndex(model.Priorities, d.Prioridade)).
		addChoice("Status", statusOptions(), optionIndex(model.Statuses, d.Status)).
		addDate("Vencimento", d.Due)
	return s.form.start()
}

func (s *tasksScreen) draft() resource.TaskDraft {
	var id int64
	if snap := s.ctrl.Snapshot(); snap.Draft != nil {
		id = snap.Draft.ID
	}
	return resource.TaskDraft{
		ID:         id,
		Titulo:     s.form.text(taskTitulo),
		Descricao:  s.form.text(taskDescricao),
		Prioridade: model.Priorities[s.form.selected(taskPrioridade)],
		Status:     model.Statuses[s.form.selected(taskStatus)],
		Due:        s.form.due(taskVencimento),
	}
}

func (s *tasksScreen) updateForm(msg tea.KeyMsg) tea.Cmd {
	if s.busy {
		return nil
	}
	switch {
	case key.Matches(msg, keys.Cancel):
		s.ctrl.Cancel()
		s.form = nil
		return nil
	case key.Matches(msg, keys.Submit):
		d := s.draft()
		s.busy = true
		return run(s.id, func(ctx context.Context) error {
			return s.ctrl.Save(ctx, d)
		})
	}
	return s.form.update(msg)
}

func (s *tasksScreen) View(width, height int) string {
	if s.form != nil {
		return overlay(width, height, s.form.view())
	}

	snap := s.ctrl.Snapshot()
	pending := 0
	for _, item := range snap.Items {
		if item.Task.Status != model.StatusFinished {
			pending++
		}
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("%s (%d pendentes)", s.ctrl.Header(), pending)) + "\n")
	b.WriteString(HelpStyle.Render(strings.Repeat("─", max(width-8, 0))) + "\n\n")

	if len(snap.Items) == 0 && snap.State == resource.StateLoaded {
		b.WriteString(HelpStyle.Render("  Nenhuma tarefa. Pressione 'a' para adicionar."))
	}

	now := time.Now()
	titleWidth := max(width-48, 12)
	for i, item := range snap.Items {
		t := item.Task
		cursor := "  "
		style := ItemStyle
		if i == s.cursor {
			cursor = "❯ "
			style = ItemSelectedStyle
		}

		icon := "[ ]"
		switch t.Status {
		case model.StatusFinished:
			icon = "[x]"
			if i != s.cursor {
				style = ItemDoneStyle
			}
		case model.StatusInProgress:
			icon = "[~]"
		}

		due := model.FormatOptionalDate(t.DataVencimento)
		if t.IsOverdue(now) {
			due = OverdueStyle.Render(due)
		}

		line := fmt.Sprintf("%s%s %-*s ", cursor, icon, titleWidth, truncate(t.Titulo, titleWidth))
		b.WriteString(style.Render(line) + " " + FormatPriority(t.Prioridade) + "  " +
			FormatStatus(t.Status) + "  " + due + "\n")
	}

	return ListStyle.Width(width).Height(height).Render(b.String())
}

func (s *tasksScreen) Help() string {
	if s.form != nil {
		return "tab:next field  enter:save  esc:cancel"
	}
	return "a:add  e:edit  x:done  d:delete  r:reload  esc:back  q:quit"
}

func (s *tasksScreen) Capturing() bool { return s.form != nil }

func (s *tasksScreen) Loading() bool { return s.busy }

func (s *tasksScreen) Close() { s.ctrl.Close() }
