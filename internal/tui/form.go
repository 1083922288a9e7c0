package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/taskboard/internal/model"
	"github.com/existflow/taskboard/internal/resource"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldChoice
	fieldDate
)

type field struct {
	label string
	kind  fieldKind

	// text, and date in text mode
	input textinput.Model

	// choice
	options []string
	choice  int

	// date in picker mode
	picking bool
	picked  *time.Time
}

// form is a vertical list of fields edited one at a time
type form struct {
	title  string
	fields []field
	focus  int
}

func newForm(title string) *form {
	return &form{title: title}
}

func newInput(value, placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 40
	ti.SetValue(value)
	return ti
}

func (f *form) addText(label, value string) *form {
	f.fields = append(f.fields, field{label: label, kind: fieldText, input: newInput(value, "")})
	return f
}

func (f *form) addChoice(label string, options []string, selected int) *form {
	f.fields = append(f.fields, field{label: label, kind: fieldChoice, options: options, choice: selected})
	return f
}

// addDate adds a due-date field starting in picker mode when a date is
// already set
func (f *form) addDate(label string, in resource.DueInput) *form {
	f.fields = append(f.fields, field{
		label:   label,
		kind:    fieldDate,
		input:   newInput(in.Text, model.DateLayout),
		picked:  in.Picked,
		picking: in.Picked != nil,
	})
	return f
}

// start focuses the first field
func (f *form) start() tea.Cmd {
	f.focus = 0
	return f.focusField()
}

func (f *form) focusField() tea.Cmd {
	for i := range f.fields {
		f.fields[i].input.Blur()
	}
	fld := &f.fields[f.focus]
	if fld.kind == fieldText || (fld.kind == fieldDate && !fld.picking) {
		return fld.input.Focus()
	}
	return nil
}

func (f *form) text(i int) string {
	return f.fields[i].input.Value()
}

func (f *form) selected(i int) int {
	return f.fields[i].choice
}

// due returns the date field at i as the controller expects it. Only the
// active editor contributes.
func (f *form) due(i int) resource.DueInput {
	fld := f.fields[i]
	if fld.picking {
		return resource.DueInput{Picked: fld.picked}
	}
	return resource.DueInput{Text: fld.input.Value()}
}

// update handles a key inside the form. Submit and Cancel are left to the
// caller.
func (f *form) update(msg tea.KeyMsg) tea.Cmd {
	fld := &f.fields[f.focus]

	switch {
	case key.Matches(msg, keys.Next):
		f.focus = (f.focus + 1) % len(f.fields)
		return f.focusField()
	case key.Matches(msg, keys.Prev):
		f.focus = (f.focus - 1 + len(f.fields)) % len(f.fields)
		return f.focusField()
	}

	switch fld.kind {
	case fieldChoice:
		switch {
		case key.Matches(msg, keys.Right):
			fld.choice = (fld.choice + 1) % len(fld.options)
		case key.Matches(msg, keys.Left):
			fld.choice = (fld.choice - 1 + len(fld.options)) % len(fld.options)
		}
		return nil

	case fieldDate:
		if key.Matches(msg, keys.Picker) {
			return f.togglePicker(fld)
		}
		if fld.picking {
			f.movePicker(fld, msg)
			return nil
		}
	}

	var cmd tea.Cmd
	fld.input, cmd = fld.input.Update(msg)
	return cmd
}

// togglePicker switches the date field between editors, carrying the value
// across when it parses
func (f *form) togglePicker(fld *field) tea.Cmd {
	if fld.picking {
		fld.picking = false
		if fld.picked != nil {
			fld.input.SetValue(model.DateOf(*fld.picked).Text())
		}
		return fld.input.Focus()
	}

	fld.picking = true
	fld.input.Blur()
	if d, err := model.ParseDate(strings.TrimSpace(fld.input.Value())); err == nil {
		t := d.Time()
		fld.picked = &t
	}
	return nil
}

func (f *form) movePicker(fld *field, msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, keys.ClearDate):
		fld.picked = nil
		return
	case key.Matches(msg, keys.DayUp):
		f.shiftPicked(fld, 1)
	case key.Matches(msg, keys.DayDown):
		f.shiftPicked(fld, -1)
	}
}

func (f *form) shiftPicked(fld *field, days int) {
	base := model.DateOf(time.Now())
	if fld.picked != nil {
		base = model.DateOf(*fld.picked).AddDays(days)
	}
	t := base.Time()
	fld.picked = &t
}

func (f *form) view() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(f.title) + "\n\n")

	for i, fld := range f.fields {
		label := LabelStyle.Render(fld.label)
		if i == f.focus {
			label = LabelFocusedStyle.Render(fld.label)
		}
		b.WriteString(label + " " + fld.render(i == f.focus) + "\n")
	}

	b.WriteString("\n" + HelpStyle.Render("tab:next  enter:save  esc:cancel"))
	if f.fields[f.focus].kind == fieldChoice {
		b.WriteString("\n" + HelpStyle.Render("←/→:change"))
	}
	if f.fields[f.focus].kind == fieldDate {
		if f.fields[f.focus].picking {
			b.WriteString("\n" + HelpStyle.Render("+/-:day  del:clear  ctrl+t:type"))
		} else {
			b.WriteString("\n" + HelpStyle.Render("ctrl+t:picker"))
		}
	}
	return ModalStyle.Render(b.String())
}

func (fld field) render(focused bool) string {
	switch fld.kind {
	case fieldChoice:
		text := fld.options[fld.choice]
		if focused {
			return "‹ " + text + " ›"
		}
		return text
	case fieldDate:
		if fld.picking {
			text := "(sem data)"
			if fld.picked != nil {
				text = model.DateOf(*fld.picked).Text()
			}
			return "[" + text + "]"
		}
	}
	return fld.input.View()
}

func statusOptions() []string {
	out := make([]string, len(model.Statuses))
	for i, s := range model.Statuses {
		out[i] = s.Label()
	}
	return out
}

func priorityOptions() []string {
	out := make([]string, len(model.Priorities))
	for i, p := range model.Priorities {
		out[i] = p.Label()
	}
	return out
}

// optionIndex returns the position of v in all, or 0 when v is undefined
func optionIndex[T comparable](all []T, v T) int {
	for i, x := range all {
		if x == v {
			return i
		}
	}
	return 0
}
