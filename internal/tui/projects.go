package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/taskboard/internal/model"
	"github.com/existflow/taskboard/internal/nav"
	"github.com/existflow/taskboard/internal/resource"
)

// opDoneMsg reports that a controller operation finished. State is read
// back from the controller's snapshot.
type opDoneMsg struct {
	id  int
	err error
}

func (m opDoneMsg) screenID() int { return m.id }

// run executes op off the update loop and reports back to screen id
func run(id int, op func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{id: id, err: op(context.Background())}
	}
}

type projectsScreen struct {
	id     int
	ctrl   *resource.ProjectController
	nav    nav.Navigator
	cursor int
	form   *form
	busy   bool
}

func newProjectsScreen(id int, ctrl *resource.ProjectController, navigator nav.Navigator) *projectsScreen {
	return &projectsScreen{id: id, ctrl: ctrl, nav: navigator}
}

func (s *projectsScreen) Init() tea.Cmd {
	return s.reload()
}

func (s *projectsScreen) reload() tea.Cmd {
	s.busy = true
	return run(s.id, func(ctx context.Context) error {
		_, err := s.ctrl.List(ctx)
		return err
	})
}

func (s *projectsScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
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

func (s *projectsScreen) handleKeys(msg tea.KeyMsg) tea.Cmd {
	items := s.ctrl.Snapshot().Items

	switch {
	case key.Matches(msg, keys.Up):
		s.cursor = clamp(s.cursor-1, len(items))
	case key.Matches(msg, keys.Down):
		s.cursor = clamp(s.cursor+1, len(items))
	case key.Matches(msg, keys.Refresh):
		return s.reload()
	case key.Matches(msg, keys.Add):
		s.ctrl.BeginAdd()
		return s.openForm("Novo projeto", resource.ProjectDraft{})
	}

	if len(items) == 0 || s.busy {
		return nil
	}
	selected := items[s.cursor].Project

	switch {
	case key.Matches(msg, keys.Enter):
		s.nav.Navigate(nav.RouteProjectDetail, nav.Params{ProjectID: selected.ID})
	case key.Matches(msg, keys.Edit):
		s.ctrl.BeginEdit(selected)
		return s.openForm("Editar projeto", resource.ProjectDraftFrom(selected))
	case key.Matches(msg, keys.Delete):
		s.busy = true
		return run(s.id, func(ctx context.Context) error {
			return s.ctrl.Delete(ctx, selected.ID)
		})
	}
	return nil
}

// projectForm field order
const (
	projNome = iota
	projDescricao
	projStatus
	projInicio
	projFim
)

func (s *projectsScreen) openForm(title string, d resource.ProjectDraft) tea.Cmd {
	s.form = newForm(title).
		addText("Nome", d.Nome).
		addText("Descrição", d.Descricao).
		addChoice("Status", statusOptions(), optionIndex(model.Statuses, d.Status)).
		addText("Início", d.DataInicio).
		addText("Fim", d.DataFim)
	s.form.fields[projInicio].input.Placeholder = model.DateLayout
	s.form.fields[projFim].input.Placeholder = model.DateLayout
	return s.form.start()
}

func (s *projectsScreen) draft() resource.ProjectDraft {
	var id int64
	if snap := s.ctrl.Snapshot(); snap.Draft != nil {
		id = snap.Draft.ID
	}
	return resource.ProjectDraft{
		ID:         id,
		Nome:       s.form.text(projNome),
		Descricao:  s.form.text(projDescricao),
		Status:     model.Statuses[s.form.selected(projStatus)],
		DataInicio: s.form.text(projInicio),
		DataFim:    s.form.text(projFim),
	}
}

func (s *projectsScreen) updateForm(msg tea.KeyMsg) tea.Cmd {
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

func (s *projectsScreen) View(width, height int) string {
	if s.form != nil {
		return overlay(width, height, s.form.view())
	}

	snap := s.ctrl.Snapshot()
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("Projetos (%d)", len(snap.Items))) + "\n")
	b.WriteString(HelpStyle.Render(strings.Repeat("─", max(width-8, 0))) + "\n\n")

	if len(snap.Items) == 0 && snap.State == resource.StateLoaded {
		b.WriteString(HelpStyle.Render("  Nenhum projeto. Pressione 'a' para adicionar."))
	}

	nameWidth := max(width-44, 12)
	for i, item := range snap.Items {
		p := item.Project
		cursor := "  "
		style := ItemStyle
		if i == s.cursor {
			cursor = "❯ "
			style = ItemSelectedStyle
		}
		line := fmt.Sprintf("%s%-*s %10s → %-10s ", cursor, nameWidth, truncate(p.DisplayName(), nameWidth),
			model.FormatOptionalDate(p.DataInicio), model.FormatOptionalDate(p.DataFim))
		b.WriteString(style.Render(line) + FormatStatus(p.Status) + "\n")
	}

	return ListStyle.Width(width).Height(height).Render(b.String())
}

func (s *projectsScreen) Help() string {
	if s.form != nil {
		return "tab:next field  enter:save  esc:cancel"
	}
	return "a:add  e:edit  d:delete  enter:open  r:reload  q:quit"
}

func (s *projectsScreen) Capturing() bool { return s.form != nil }

func (s *projectsScreen) Loading() bool { return s.busy }

func (s *projectsScreen) Close() { s.ctrl.Close() }
