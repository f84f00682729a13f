package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	FocusNext   key.Binding
	UpdateFiles key.Binding
	Setup       key.Binding
	Yank        key.Binding
	Help        key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next panel"),
		),
		UpdateFiles: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "update files"),
		),
		Setup: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "setup"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy status"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}
