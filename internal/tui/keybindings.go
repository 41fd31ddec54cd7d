// Package tui implements the terminal user interface using Bubble Tea.
package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the application-level key bindings for the TUI.
type KeyMap struct {
	Tab    key.Binding
	Enter  key.Binding
	Escape key.Binding
	Quit   key.Binding
}

// DefaultKeyMap provides the default key bindings for the TUI.
var DefaultKeyMap = KeyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch view"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// HelpLine renders the bindings as a single footer line.
func (k KeyMap) HelpLine() string {
	entries := []key.Binding{k.Tab, k.Enter, k.Escape, k.Quit}
	line := ""
	for i, b := range entries {
		if i > 0 {
			line += "  ·  "
		}
		line += b.Help().Key + " " + b.Help().Desc
	}
	return DimStyle.Render(line)
}
