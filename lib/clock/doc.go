// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides the injectable time source used by surfctl's
// timed behavior: the log tailer's poll interval, the settle delay
// after a pause or resume, and the directory client's request
// deadlines.
//
// Production code holds a [Clock] and never calls time.Now, time.After
// or time.Sleep directly. [Real] wraps the standard library; [Fake]
// returns a clock that only moves when the test calls Advance.
//
// Tests that start a goroutine which waits on the clock should call
// WaitForTimers before Advance, so the waiter is registered before
// time moves:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	go tailer.Run(ctx)
//	fake.WaitForTimers(1)
//	fake.Advance(time.Second)
package clock
