package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the play-mode bindings.
type keyMap struct {
	Forward     key.Binding
	Back        key.Binding
	StrafeLeft  key.Binding
	StrafeRight key.Binding
	TurnLeft    key.Binding
	TurnRight   key.Binding
	LookUp      key.Binding
	LookDown    key.Binding
	Interact    key.Binding
	Use         key.Binding
	Command     key.Binding
	Reset       key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Forward:     key.NewBinding(key.WithKeys("w", "up"), key.WithHelp("w/↑", "forward")),
		Back:        key.NewBinding(key.WithKeys("s", "down"), key.WithHelp("s/↓", "back")),
		StrafeLeft:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "strafe left")),
		StrafeRight: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "strafe right")),
		TurnLeft:    key.NewBinding(key.WithKeys("q", "left"), key.WithHelp("q/←", "turn left")),
		TurnRight:   key.NewBinding(key.WithKeys("x", "right"), key.WithHelp("x/→", "turn right")),
		LookUp:      key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "look up")),
		LookDown:    key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "look down")),
		Interact:    key.NewBinding(key.WithKeys("e", " "), key.WithHelp("e", "interact")),
		Use:         key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "use rune")),
		Command:     key.NewBinding(key.WithKeys(":", "/"), key.WithHelp(":", "command")),
		Reset:       key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "restart")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Forward, k.TurnLeft, k.TurnRight, k.Interact, k.Use, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Forward, k.Back, k.StrafeLeft, k.StrafeRight},
		{k.TurnLeft, k.TurnRight, k.LookUp, k.LookDown},
		{k.Interact, k.Use, k.Command},
		{k.Reset, k.Help, k.Quit},
	}
}
