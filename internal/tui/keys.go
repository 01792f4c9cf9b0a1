package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit key.Binding
	Back key.Binding

	// Navigation
	Timer key.Binding
	Tasks key.Binding
	Next  key.Binding

	// Timer
	Toggle key.Binding
	Reset  key.Binding

	// Tasks
	New      key.Binding
	Submit   key.Binding
	Start    key.Binding
	Stop     key.Binding
	Complete key.Binding
	Delete   key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding

	// Movement
	Up   key.Binding
	Down key.Binding
}

var DefaultKeyMap = KeyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Timer:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "timer")),
	Tasks:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "tasks")),
	Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch")),
	Toggle:   key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "start/pause")),
	Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	New:      key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "add")),
	Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
	Start:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
	Stop:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
	Complete: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	MoveUp:   key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("shift+↑", "move up")),
	MoveDown: key.NewBinding(key.WithKeys("shift+down", "J"), key.WithHelp("shift+↓", "move down")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
}
