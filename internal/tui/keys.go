package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the dashboard bindings.
type KeyMap struct {
	Quit    key.Binding
	Help    key.Binding
	Sound   key.Binding
	Ack     key.Binding
	Dismiss key.Binding
	Reset   key.Binding
	Refresh key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

var keys = KeyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Sound: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sound"),
	),
	Ack: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "acknowledge"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "dismiss"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("Ctrl+r", "refresh"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y", "Y"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "N", "esc"),
	),
}

// shortHelp is shown in the status bar.
func (k KeyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help, k.Sound, k.Ack, k.Dismiss, k.Reset}
}
