package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the sorting TUI.
// It lives in pkg/types so the model and the help view share it.
type KeyMap struct {
	// General
	Help key.Binding
	Quit key.Binding

	// Navigation
	Next     key.Binding
	Prev     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Goto     key.Binding

	// Composition
	CycleSuggestion  key.Binding
	AcceptSuggestion key.Binding
	AddTag           key.Binding
	ClearName        key.Binding

	// Sorting
	MoveDefault key.Binding

	// Goto mode
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the stock bindings. Category buttons are bound
// separately from the configuration as alt+<shortcut>.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
		Next: key.NewBinding(
			key.WithKeys("ctrl+n", "down"),
			key.WithHelp("ctrl+n/↓", "next file"),
		),
		Prev: key.NewBinding(
			key.WithKeys("ctrl+p", "up"),
			key.WithHelp("ctrl+p/↑", "previous file"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "back 10 files"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "forward 10 files"),
		),
		Goto: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "go to file #"),
		),
		CycleSuggestion: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "cycle suggestions"),
		),
		AcceptSuggestion: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "accept suggestion"),
		),
		AddTag: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "save tag to corpus"),
		),
		ClearName: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "clear name"),
		),
		MoveDefault: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "move to default folder"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.CycleSuggestion, k.AcceptSuggestion, k.MoveDefault, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.PageUp, k.PageDown, k.Goto},
		{k.CycleSuggestion, k.AcceptSuggestion, k.AddTag, k.ClearName},
		{k.MoveDefault, k.Help, k.Quit},
	}
}
