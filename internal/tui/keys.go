package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Start   key.Binding
	Pause   key.Binding
	Reset   key.Binding
	Compact key.Binding
	Copy    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Start:   key.NewBinding(key.WithKeys("s", " "), key.WithHelp("s", "start")),
		Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Compact: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mini view")),
		Copy:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy status")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Pause, k.Reset, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Pause, k.Reset},
		{k.Compact, k.Copy},
		{k.Help, k.Quit},
	}
}
