// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package workspaceui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the dashboard's key bindings.
type KeyMap struct {
	// Navigation.
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Selection.
	Select    key.Binding // Toggle the row under the cursor.
	SelectAll key.Binding // Select everything, or clear if all are selected.

	// Remote calls.
	Filter  key.Binding // Toggle the username filter and refetch.
	Refresh key.Binding
	Pause   key.Binding
	Resume  key.Binding

	// Local.
	Rename key.Binding // Change the username used for filtering and ssh.
	Logs   key.Binding // Show or hide the log pane.
	SSH    key.Binding
	Copy   key.Binding // Copy user@address of the cursor row.

	// Rename prompt.
	Confirm key.Binding
	Cancel  key.Binding

	Quit key.Binding
}

// DefaultKeyMap binds single-letter commands, with arrow and page
// keys as aliases.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("h", "left", "pgup"),
		key.WithHelp("h/←", "prev page"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("l", "right", "pgdown"),
		key.WithHelp("l/→", "next page"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("⏎/space", "select"),
	),
	SelectAll: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "all/none"),
	),
	Filter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "filter"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "update"),
	),
	Pause: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "pause"),
	),
	Resume: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "resume"),
	),
	Rename: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "username"),
	),
	Logs: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "logs"),
	),
	SSH: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "ssh"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy address"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("⏎", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (keys KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		keys.Select, keys.SelectAll, keys.Pause, keys.Resume, keys.Refresh,
		keys.Filter, keys.SSH, keys.Rename, keys.Logs, keys.Quit,
	}
}

// FullHelp implements help.KeyMap.
func (keys KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.Up, keys.Down, keys.PageUp, keys.PageDown},
		{keys.Select, keys.SelectAll, keys.Filter, keys.Refresh},
		{keys.Pause, keys.Resume, keys.SSH, keys.Copy},
		{keys.Rename, keys.Logs, keys.Quit},
	}
}

// renameHelp is the key map shown while the rename prompt is open.
type renameHelp struct{ keys KeyMap }

func (help renameHelp) ShortHelp() []key.Binding {
	return []key.Binding{help.keys.Confirm, help.keys.Cancel}
}

func (help renameHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{help.ShortHelp()}
}
