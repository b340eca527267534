// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package workspaceui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/surfctl/lib/tui"
)

func plainRows(grid *Grid) []string {
	rows := make([]string, grid.Height())
	for index := range rows {
		rows[index] = strings.TrimRight(ansi.Strip(grid.Row(index)), " ")
	}
	return rows
}

func TestPageSizeFor(t *testing.T) {
	tests := []struct {
		height   int
		showLogs bool
		want     int
	}{
		{24, false, 21},
		{24, true, 10},
		{5, true, 1},
		{0, false, 1},
	}
	for _, tt := range tests {
		if got := PageSizeFor(tt.height, tt.showLogs, 10); got != tt.want {
			t.Errorf("PageSizeFor(%d, %v, 10) = %d, want %d", tt.height, tt.showLogs, got, tt.want)
		}
	}
}

func TestRender_Layout(t *testing.T) {
	viewModel := NewViewModel(PageSizeFor(8, false, 10))
	viewModel.ReplaceWorkspaces(testWorkspaces(7))
	viewModel.Username = "alice"
	viewModel.ToggleSelectionAt(1)
	viewModel.MoveCursor(5)
	viewModel.SetStatus("Updated VM list (7 workspaces)", 0)

	renderer := Renderer{Theme: tui.DefaultTheme, LogRows: 10}
	grid := renderer.Render(viewModel, Frame{Help: DefaultKeyMap}, 60, 8)
	rows := plainRows(grid)

	// Page size 5: cursor 5 is on the second page, rows 5 and 6.
	if rows[0] != "[ ] vm-05 (paused)" {
		t.Errorf("row 0 = %q", rows[0])
	}
	if rows[1] != "[ ] vm-06 (running)" {
		t.Errorf("row 1 = %q", rows[1])
	}
	if rows[2] != "" {
		t.Errorf("row 2 = %q, want blank", rows[2])
	}
	if rows[5] != "Updated VM list (7 workspaces)" {
		t.Errorf("status row = %q", rows[5])
	}
	if rows[6] != "filter: off | user: alice | page 2/2 | 1 selected" {
		t.Errorf("info row = %q", rows[6])
	}
	if !strings.Contains(rows[7], "select") {
		t.Errorf("legend row = %q, want key help", rows[7])
	}
}

func TestRender_SelectionMarker(t *testing.T) {
	viewModel := NewViewModel(5)
	viewModel.ReplaceWorkspaces(testWorkspaces(2))
	viewModel.ToggleSelectionAt(0)

	grid := Renderer{Theme: tui.DefaultTheme, LogRows: 10}.Render(viewModel, Frame{}, 40, 8)
	rows := plainRows(grid)
	if rows[0] != "[*] vm-00 (running)" {
		t.Errorf("row 0 = %q", rows[0])
	}
	if rows[1] != "[ ] vm-01 (paused)" {
		t.Errorf("row 1 = %q", rows[1])
	}
}

func TestRender_EmptyList(t *testing.T) {
	viewModel := NewViewModel(5)
	grid := Renderer{Theme: tui.DefaultTheme, LogRows: 10}.Render(viewModel, Frame{}, 40, 8)
	rows := plainRows(grid)
	if rows[0] != "No workspaces found" {
		t.Errorf("row 0 = %q", rows[0])
	}
	if !strings.Contains(rows[6], "page 1/1") {
		t.Errorf("info row = %q", rows[6])
	}
}

func TestRender_LogPane(t *testing.T) {
	const height = 12
	viewModel := NewViewModel(PageSizeFor(height, true, 3))
	viewModel.ShowLogs = true
	viewModel.ReplaceWorkspaces(testWorkspaces(20))

	var logLines []string
	for index := range 5 {
		logLines = append(logLines, fmt.Sprintf("log line %d", index))
	}

	grid := Renderer{Theme: tui.DefaultTheme, LogRows: 3}.Render(viewModel, Frame{LogLines: logLines}, 40, height)
	rows := plainRows(grid)

	// 12 rows: 5 list rows, 3 footer rows, separator, 3 log rows.
	if viewModel.PageSize() != 5 {
		t.Fatalf("page size = %d, want 5", viewModel.PageSize())
	}
	if rows[4] != "[ ] vm-04 (running)" {
		t.Errorf("last list row = %q", rows[4])
	}
	if rows[6] != "filter: off | user: - | page 1/4 | 0 selected" {
		t.Errorf("info row = %q", rows[6])
	}
	if !strings.HasPrefix(rows[8], "─ logs ─") {
		t.Errorf("separator row = %q", rows[8])
	}
	for index, want := range []string{"log line 2", "log line 3", "log line 4"} {
		if rows[9+index] != want {
			t.Errorf("log row %d = %q, want %q", index, rows[9+index], want)
		}
	}
}

func TestRender_TruncatesToWidth(t *testing.T) {
	viewModel := NewViewModel(5)
	viewModel.ReplaceWorkspaces(testWorkspaces(1))
	viewModel.SetStatus(strings.Repeat("x", 100), 0)

	grid := Renderer{Theme: tui.DefaultTheme, LogRows: 10}.Render(viewModel, Frame{Help: DefaultKeyMap}, 20, 6)
	for index := range grid.Height() {
		if width := ansi.StringWidth(grid.Row(index)); width > 20 {
			t.Errorf("row %d is %d cells wide, want <= 20", index, width)
		}
	}
}

func TestRender_ActivityAndPrompt(t *testing.T) {
	viewModel := NewViewModel(5)
	viewModel.ReplaceWorkspaces(testWorkspaces(3))
	viewModel.SetStatus("Pausing [vm-00]", 0)

	frame := Frame{Activity: "*", Prompt: "> bob"}
	grid := Renderer{Theme: tui.DefaultTheme, LogRows: 10}.Render(viewModel, frame, 40, 8)
	rows := plainRows(grid)

	if rows[5] != "* Pausing [vm-00]" {
		t.Errorf("status row = %q", rows[5])
	}
	found := false
	for _, row := range rows[:5] {
		if strings.Contains(row, "> bob") {
			found = true
		}
	}
	if !found {
		t.Errorf("rename prompt not drawn over the list: %q", rows[:5])
	}
}
