// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package logtail follows the tail of a log file for display.
//
// A [Tailer] polls the file on a fixed interval and installs its last
// N lines into a [Ring]. The ring is the only state shared between the
// tailer goroutine and the renderer: writers replace the whole buffer
// and readers copy the whole buffer, so a reader never sees a mix of
// two polls.
//
// The tailer is cancelled through its context. Callers start Run in a
// goroutine and wait for it to return during shutdown.
package logtail
