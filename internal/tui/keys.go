package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Start  key.Binding
	Break  key.Binding
	Resume key.Binding
	Toggle key.Binding
	Stop   key.Binding
	Reload key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Start:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start work")),
		Break:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "break")),
		Resume: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "resume work")),
		Toggle: key.NewBinding(key.WithKeys("t", " "), key.WithHelp("t", "switch")),
		Stop:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Break, k.Resume, k.Toggle, k.Stop, k.Reload, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
