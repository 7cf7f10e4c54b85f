package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Enter    key.Binding
	Back     key.Binding
	Toggle   key.Binding
	Stop     key.Binding
	Next     key.Binding
	Prev     key.Binding
	VolUp    key.Binding
	VolDown  key.Binding
	Large    key.Binding
	Homepage key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Back:     key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		Stop:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		Next:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next station")),
		Prev:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "prev station")),
		VolUp:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "louder")),
		VolDown:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "quieter")),
		Large:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "player")),
		Homepage: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "homepage")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.Back, k.Toggle, k.Large, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Enter, k.Back},
		{k.Toggle, k.Stop, k.Next, k.Prev},
		{k.VolUp, k.VolDown, k.Large, k.Homepage},
		{k.Help, k.Quit},
	}
}
