package main

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts
type KeyMap struct {
	Step   key.Binding
	Back   key.Binding
	RunAll key.Binding
	Reset  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Step: key.NewBinding(
			key.WithKeys(" ", "n", "right"),
			key.WithHelp("space/n", "next op"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "left"),
			key.WithHelp("b", "step back"),
		),
		RunAll: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "run all"),
		),
		Reset: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reset"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the condensed help line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Step, k.Back, k.RunAll, k.Reset, k.Help, k.Quit}
}

// FullHelp returns the expanded help grid.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Step, k.Back, k.RunAll, k.Reset},
		{k.Help, k.Quit},
	}
}
