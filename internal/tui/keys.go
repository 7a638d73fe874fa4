package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Tap    key.Binding
	Select key.Binding
	Left   key.Binding
	Right  key.Binding
	Up     key.Binding
	Down   key.Binding
	Add    key.Binding
	Remove key.Binding
	Pull   key.Binding
	Focus  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Tap: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "tap widget"),
		),
		Select: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "tap widget n"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/l", "move"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("j/k", "scroll"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
		),
		Add: key.NewBinding(
			key.WithKeys("+", "a"),
			key.WithHelp("+", "add widget"),
		),
		Remove: key.NewBinding(
			key.WithKeys("-", "x"),
			key.WithHelp("-", "remove widget"),
		),
		Pull: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh hours"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
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

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tap, k.Add, k.Remove, k.Pull, k.Focus, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tap, k.Select, k.Left},
		{k.Add, k.Remove},
		{k.Pull, k.Up, k.Focus},
		{k.Help, k.Quit},
	}
}
