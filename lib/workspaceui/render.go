// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package workspaceui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/surfctl/lib/tui"
)

// footerRows is the fixed chrome below the list: status line, info
// line and key legend.
const footerRows = 3

// emptyListText is shown in place of the list when there is nothing
// to display.
const emptyListText = "No workspaces found"

// PageSizeFor returns how many workspace rows fit in a terminal of the
// given height. With the log pane shown, logRows lines plus a
// separator are reserved for it. The result is at least 1.
func PageSizeFor(height int, showLogs bool, logRows int) int {
	available := height - footerRows
	if showLogs {
		available -= logRows + 1
	}
	return max(available, 1)
}

// Frame carries the per-render inputs that do not live in the view
// model.
type Frame struct {
	// LogLines is the current log tail, oldest first.
	LogLines []string

	// Activity is shown before the status text while a remote call is
	// in flight (typically a spinner frame).
	Activity string

	// Prompt is the rendered rename input. Empty when not renaming.
	Prompt string

	// Help is the key legend for the current mode.
	Help help.KeyMap
}

// Renderer draws a ViewModel onto a Grid.
type Renderer struct {
	Theme tui.Theme

	// LogRows is the height of the log pane when shown.
	LogRows int
}

// Render lays out the view model for a width x height terminal:
// workspace rows at the top, then the three footer rows, then the log
// pane on the bottom rows when shown. Render does not modify the view
// model.
func (renderer Renderer) Render(viewModel *ViewModel, frame Frame, width, height int) *Grid {
	grid := NewGrid(width, height)

	footerTop := height - footerRows
	if viewModel.ShowLogs {
		footerTop -= renderer.LogRows + 1
	}

	renderer.renderList(grid, viewModel)
	renderer.renderFooter(grid, footerTop, viewModel, frame)
	if viewModel.ShowLogs {
		renderer.renderLogs(grid, footerTop+footerRows, frame.LogLines)
	}
	if frame.Prompt != "" {
		renderer.renderPrompt(grid, viewModel.PageSize(), frame.Prompt)
	}
	return grid
}

func (renderer Renderer) renderList(grid *Grid, viewModel *ViewModel) {
	if viewModel.Len() == 0 {
		grid.WriteLine(0, lipgloss.NewStyle().Foreground(renderer.Theme.FaintText).Render(emptyListText))
		return
	}

	start, end := viewModel.PageWindow()
	entries := viewModel.Entries()
	for index := start; index < end; index++ {
		grid.WriteLine(index-start, renderer.renderEntry(entries[index], index == viewModel.Cursor(), grid.Width()))
	}
}

// renderEntry formats one workspace row: "[*] name (running)".
func (renderer Renderer) renderEntry(entry Entry, isCursor bool, width int) string {
	mark := "[ ]"
	if entry.Selected {
		mark = "[*]"
	}
	state := "(" + entry.Workspace.State() + ")"

	if isCursor {
		line := fmt.Sprintf("%s %s %s", mark, entry.Workspace.Name, state)
		if padding := width - ansi.StringWidth(line); padding > 0 {
			line += strings.Repeat(" ", padding)
		}
		return lipgloss.NewStyle().
			Background(renderer.Theme.SelectedBackground).
			Foreground(renderer.Theme.SelectedForeground).
			Bold(true).
			Render(line)
	}

	markStyle := lipgloss.NewStyle().Foreground(renderer.Theme.FaintText)
	if entry.Selected {
		markStyle = markStyle.Foreground(renderer.Theme.MarkForeground).Bold(true)
	}
	nameStyle := lipgloss.NewStyle().Foreground(renderer.Theme.NormalText)
	stateStyle := lipgloss.NewStyle().Foreground(renderer.Theme.StateColor(entry.Workspace.Active))

	return markStyle.Render(mark) + " " + nameStyle.Render(entry.Workspace.Name) + " " + stateStyle.Render(state)
}

func (renderer Renderer) renderLogs(grid *Grid, top int, lines []string) {
	borderStyle := lipgloss.NewStyle().Foreground(renderer.Theme.BorderColor)
	label := "─ logs "
	separator := label + strings.Repeat("─", max(grid.Width()-ansi.StringWidth(label), 0))
	grid.WriteLine(top, borderStyle.Render(separator))

	if len(lines) > renderer.LogRows {
		lines = lines[len(lines)-renderer.LogRows:]
	}
	lineStyle := lipgloss.NewStyle().Foreground(renderer.Theme.FaintText)
	for index, line := range lines {
		grid.WriteLine(top+1+index, lineStyle.Render(ansi.Strip(line)))
	}
}

func (renderer Renderer) renderFooter(grid *Grid, statusRow int, viewModel *ViewModel, frame Frame) {

	// Status line: activity indicator and the current message.
	var status []string
	if frame.Activity != "" {
		status = append(status, frame.Activity)
	}
	if message := viewModel.Status(); message != nil {
		style := lipgloss.NewStyle().Foreground(renderer.Theme.StatusText)
		if message.IsError {
			style = lipgloss.NewStyle().Foreground(renderer.Theme.ErrorText).Bold(true)
		}
		status = append(status, style.Render(message.Text))
	}
	grid.WriteLine(statusRow, strings.Join(status, " "))

	// Info line.
	filter := "off"
	if viewModel.FilterActive {
		filter = "on"
	}
	username := viewModel.Username
	if username == "" {
		username = "-"
	}
	pages := paginator.New()
	pages.Type = paginator.Arabic
	pages.ArabicFormat = "%d/%d"
	pages.PerPage = viewModel.PageSize()
	pages.TotalPages = viewModel.MaxPage() + 1
	pages.Page = viewModel.Page()

	info := fmt.Sprintf("filter: %s | user: %s | page %s | %d selected",
		filter, username, pages.View(), len(viewModel.SelectedNames()))
	grid.WriteLine(statusRow+1, lipgloss.NewStyle().Foreground(renderer.Theme.HeaderForeground).Render(info))

	// Key legend.
	if frame.Help != nil {
		legend := help.New()
		legend.Width = grid.Width()
		legend.Styles.ShortKey = lipgloss.NewStyle().Foreground(renderer.Theme.NormalText)
		legend.Styles.ShortDesc = lipgloss.NewStyle().Foreground(renderer.Theme.HelpText)
		legend.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(renderer.Theme.BorderColor)
		grid.WriteLine(statusRow+2, legend.View(frame.Help))
	}
}

// renderPrompt draws the rename box centered over the list area.
func (renderer Renderer) renderPrompt(grid *Grid, listRows int, prompt string) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(renderer.Theme.BorderColor).
		Foreground(renderer.Theme.PromptForeground).
		Background(renderer.Theme.PromptBackground).
		Padding(0, 1).
		Render("Username\n" + prompt)

	lines := strings.Split(box, "\n")
	boxWidth := ansi.StringWidth(lines[0])
	column := max((grid.Width()-boxWidth)/2, 0)
	row := max((listRows-len(lines))/2, 0)
	grid.Overlay(row, column, lines)
}
