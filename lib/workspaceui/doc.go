// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package workspaceui implements the interactive dashboard for SURF
// Research Cloud workspaces. Built on bubbletea (Elm architecture), it
// shows a paginated, multi-select list of workspaces with a footer
// status line and an optional log pane, and drives pause, resume,
// refresh and ssh from single-key commands.
//
// State lives in a [ViewModel] owned by the bubbletea [Model]. Only
// Update mutates it. Remote calls run as tea.Cmd goroutines against a
// [Directory] and report back as messages; while one is in flight the
// model is in [ModeBusy] and ignores every key except quit.
//
// Data flow:
//
//	[SURF API]          [log file]
//	    | (Directory)       | (logtail.Tailer, own goroutine)
//	 [Model] <------- logUpdatedMsg
//	    | (Renderer -> Grid)
//	[terminal output]
//
// [Run] wires the pieces together for one session and stops the
// tailer before returning.
package workspaceui
