package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit   key.Binding
	NewTodo  key.Binding
	Focus    key.Binding
	Open     key.Binding
	Toggle   key.Binding
	Delete   key.Binding
	Edit     key.Binding
	Theme    key.Binding
	ThemeAlt key.Binding
	Back     key.Binding
	Quit     key.Binding
	Kill     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
		NewTodo:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "new")),
		Focus:    key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch focus")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "done/undone")),
		Delete:   key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Theme:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "theme")),
		ThemeAlt: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Back:     key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
		Kill:     key.NewBinding(key.WithKeys("ctrl+c")),
	}
}
