// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package workspaceui

import (
	"time"

	"github.com/bureau-foundation/surfctl/lib/surf"
)

// Entry is one row of the workspace list: the workspace and whether
// the user has marked it for a batch action.
type Entry struct {
	Workspace surf.Workspace
	Selected  bool
}

// Status is a transient message shown in the footer.
type Status struct {
	Text string
	TTL  time.Duration

	// IsError styles the message as a failure.
	IsError bool
}

// ViewModel is the state the dashboard displays. Every mutating method
// restores these invariants before returning:
//
//   - cursor is a valid index, or 0 when the list is empty
//   - pageSize is at least 1
//   - the current page (cursor / pageSize) contains the cursor
//
// ViewModel is not safe for concurrent use. The bubbletea model owns
// it and only mutates it from Update.
type ViewModel struct {
	entries  []Entry
	cursor   int
	pageSize int

	FilterActive bool
	Username     string
	ShowLogs     bool

	status *Status
}

// NewViewModel returns an empty view model with the given page size.
func NewViewModel(pageSize int) *ViewModel {
	viewModel := &ViewModel{}
	viewModel.SetPageSize(pageSize)
	return viewModel
}

// Len returns the number of workspaces.
func (viewModel *ViewModel) Len() int { return len(viewModel.entries) }

// Entries returns the rows in list order. The slice must not be
// modified.
func (viewModel *ViewModel) Entries() []Entry { return viewModel.entries }

// Workspaces returns the workspaces in list order.
func (viewModel *ViewModel) Workspaces() []surf.Workspace {
	workspaces := make([]surf.Workspace, len(viewModel.entries))
	for index, entry := range viewModel.entries {
		workspaces[index] = entry.Workspace
	}
	return workspaces
}

// Selection returns the selection flags, index-aligned with Workspaces.
func (viewModel *ViewModel) Selection() []bool {
	selection := make([]bool, len(viewModel.entries))
	for index, entry := range viewModel.entries {
		selection[index] = entry.Selected
	}
	return selection
}

// Cursor returns the index of the highlighted row.
func (viewModel *ViewModel) Cursor() int { return viewModel.cursor }

// PageSize returns the number of rows per page.
func (viewModel *ViewModel) PageSize() int { return viewModel.pageSize }

// Page returns the zero-based page containing the cursor.
func (viewModel *ViewModel) Page() int { return viewModel.cursor / viewModel.pageSize }

// MaxPage returns the last valid page index (0 for an empty list).
func (viewModel *ViewModel) MaxPage() int {
	if len(viewModel.entries) == 0 {
		return 0
	}
	return (len(viewModel.entries) - 1) / viewModel.pageSize
}

// PageWindow returns the [start, end) entry range of the current page.
func (viewModel *ViewModel) PageWindow() (start, end int) {
	start = viewModel.Page() * viewModel.pageSize
	end = min(start+viewModel.pageSize, len(viewModel.entries))
	return start, end
}

// ReplaceWorkspaces installs a freshly fetched list. Every entry starts
// unselected; the cursor keeps its index where possible.
func (viewModel *ViewModel) ReplaceWorkspaces(workspaces []surf.Workspace) {
	entries := make([]Entry, len(workspaces))
	for index, workspace := range workspaces {
		entries[index] = Entry{Workspace: workspace}
	}
	viewModel.entries = entries
	viewModel.clampCursor()
}

// ToggleSelectionAt flips the selection of entry index. Out-of-range
// indexes are ignored.
func (viewModel *ViewModel) ToggleSelectionAt(index int) {
	if index < 0 || index >= len(viewModel.entries) {
		return
	}
	viewModel.entries[index].Selected = !viewModel.entries[index].Selected
}

// SelectAll marks every entry.
func (viewModel *ViewModel) SelectAll() { viewModel.setAll(true) }

// ClearAll unmarks every entry.
func (viewModel *ViewModel) ClearAll() { viewModel.setAll(false) }

// ToggleSelectAll clears the selection when every entry is selected
// and selects everything otherwise. No-op on an empty list.
func (viewModel *ViewModel) ToggleSelectAll() {
	if len(viewModel.entries) == 0 {
		return
	}
	viewModel.setAll(!viewModel.AllSelected())
}

// AllSelected reports whether the list is non-empty and every entry is
// selected.
func (viewModel *ViewModel) AllSelected() bool {
	if len(viewModel.entries) == 0 {
		return false
	}
	for _, entry := range viewModel.entries {
		if !entry.Selected {
			return false
		}
	}
	return true
}

func (viewModel *ViewModel) setAll(selected bool) {
	for index := range viewModel.entries {
		viewModel.entries[index].Selected = selected
	}
}

// MoveCursor moves the cursor by delta rows, clamped to the list. The
// page follows the cursor.
func (viewModel *ViewModel) MoveCursor(delta int) {
	viewModel.cursor += delta
	viewModel.clampCursor()
}

// JumpPage moves by delta pages, clamped to [0, MaxPage], and puts the
// cursor on the first row of the destination page. At a boundary the
// cursor does not move.
func (viewModel *ViewModel) JumpPage(delta int) {
	if len(viewModel.entries) == 0 {
		return
	}
	page := min(max(viewModel.Page()+delta, 0), viewModel.MaxPage())
	if page == viewModel.Page() {
		return
	}
	viewModel.cursor = page * viewModel.pageSize
}

// SetPageSize installs a new page size (at least 1). The page is
// re-derived from the cursor.
func (viewModel *ViewModel) SetPageSize(pageSize int) {
	viewModel.pageSize = max(pageSize, 1)
}

func (viewModel *ViewModel) clampCursor() {
	if len(viewModel.entries) == 0 {
		viewModel.cursor = 0
		return
	}
	viewModel.cursor = min(max(viewModel.cursor, 0), len(viewModel.entries)-1)
}

// CursorWorkspace returns the workspace under the cursor.
func (viewModel *ViewModel) CursorWorkspace() (surf.Workspace, bool) {
	if len(viewModel.entries) == 0 {
		return surf.Workspace{}, false
	}
	return viewModel.entries[viewModel.cursor].Workspace, true
}

// SelectedWorkspaces returns the selected workspaces in list order.
func (viewModel *ViewModel) SelectedWorkspaces() []surf.Workspace {
	var selected []surf.Workspace
	for _, entry := range viewModel.entries {
		if entry.Selected {
			selected = append(selected, entry.Workspace)
		}
	}
	return selected
}

// SelectedNames returns the names of selected workspaces in list
// order.
func (viewModel *ViewModel) SelectedNames() []string {
	var names []string
	for _, entry := range viewModel.entries {
		if entry.Selected {
			names = append(names, entry.Workspace.Name)
		}
	}
	return names
}

// SetStatus replaces the footer message. Expiry is the owner's job;
// the view model only stores the TTL.
func (viewModel *ViewModel) SetStatus(text string, ttl time.Duration) {
	viewModel.status = &Status{Text: text, TTL: ttl}
}

// SetError replaces the footer message with a failure.
func (viewModel *ViewModel) SetError(text string, ttl time.Duration) {
	viewModel.status = &Status{Text: text, TTL: ttl, IsError: true}
}

// ClearStatus removes the footer message.
func (viewModel *ViewModel) ClearStatus() { viewModel.status = nil }

// Status returns the footer message, or nil.
func (viewModel *ViewModel) Status() *Status { return viewModel.status }
