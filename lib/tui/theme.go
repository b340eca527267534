// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for surfctl's terminal views. All
// colors are ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Cursor row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Selection marker ("[*]").
	MarkForeground lipgloss.Color

	// Workspace states.
	StateRunning lipgloss.Color
	StatePaused  lipgloss.Color

	// Footer.
	StatusText lipgloss.Color
	ErrorText  lipgloss.Color
	HelpText   lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color

	// Rename prompt box.
	PromptForeground lipgloss.Color
	PromptBackground lipgloss.Color
}

// StateColor returns the color for a workspace's running state.
func (theme Theme) StateColor(active bool) lipgloss.Color {
	if active {
		return theme.StateRunning
	}
	return theme.StatePaused
}

// DefaultTheme is the built-in scheme for 256-color terminals with a
// dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	MarkForeground: lipgloss.Color("220"), // amber

	StateRunning: lipgloss.Color("114"), // green
	StatePaused:  lipgloss.Color("245"), // gray

	StatusText: lipgloss.Color("75"),  // blue
	ErrorText:  lipgloss.Color("196"), // red
	HelpText:   lipgloss.Color("241"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),

	PromptForeground: lipgloss.Color("252"),
	PromptBackground: lipgloss.Color("237"),
}
