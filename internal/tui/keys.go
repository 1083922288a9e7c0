package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Enter     key.Binding
	Add       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Done      key.Binding
	Refresh   key.Binding
	Back      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding

	// Forms
	Next      key.Binding
	Prev      key.Binding
	Left      key.Binding
	Right     key.Binding
	Submit    key.Binding
	Cancel    key.Binding
	Picker    key.Binding
	DayUp     key.Binding
	DayDown   key.Binding
	ClearDate key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Done:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "toggle done")),
	Refresh:   key.NewBinding(key.WithKeys("r", "R"), key.WithHelp("r", "reload")),
	Back:      key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),

	Next:      key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	Prev:      key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
	Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "previous option")),
	Right:     key.NewBinding(key.WithKeys("right", " "), key.WithHelp("→", "next option")),
	Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
	Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Picker:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "text/picker")),
	DayUp:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "next day")),
	DayDown:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "previous day")),
	ClearDate: key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "clear date")),
}
