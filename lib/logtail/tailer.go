// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package logtail

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bureau-foundation/surfctl/lib/clock"
)

// DefaultInterval is the poll interval when Tailer.Interval is zero.
const DefaultInterval = time.Second

// Tailer polls a file and mirrors its last lines into a Ring.
type Tailer struct {
	// Path is the file to follow.
	Path string

	// Lines receives the file's tail. Its capacity sets how many lines
	// are read per poll.
	Lines *Ring

	// Interval is the wait between polls. Defaults to DefaultInterval.
	Interval time.Duration

	// Clock provides the wait between polls. Defaults to clock.Real().
	Clock clock.Clock

	// Logger receives debug output for skipped polls. Defaults to
	// slog.Default().
	Logger *slog.Logger

	// OnUpdate, when set, is called from the tailer goroutine after
	// the ring's contents change.
	OnUpdate func()
}

// Run polls until ctx is cancelled and then returns nil. A poll that
// cannot read the file (missing, unreadable, mid-rotation) leaves the
// ring unchanged and is retried on the next interval.
func (tailer *Tailer) Run(ctx context.Context) error {
	if tailer.Lines == nil {
		return fmt.Errorf("logtail: Tailer.Lines is required")
	}

	interval := tailer.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	clk := tailer.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := tailer.Logger
	if logger == nil {
		logger = slog.Default()
	}

	for {
		tailer.poll(logger)

		select {
		case <-ctx.Done():
			return nil
		case <-clk.After(interval):
		}
	}
}

// poll performs one read-and-install cycle.
func (tailer *Tailer) poll(logger *slog.Logger) {
	lines, err := ReadLastLines(tailer.Path, tailer.Lines.Capacity())
	if err != nil {
		logger.Debug("log tail poll skipped", "path", tailer.Path, "error", err)
		return
	}
	if tailer.Lines.Replace(lines) && tailer.OnUpdate != nil {
		tailer.OnUpdate()
	}
}
