// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil holds helpers shared by surfctl's tests.
//
// [RequireReceive] waits on a channel with a wall-clock safety timeout
// so a broken goroutine fails the test instead of hanging it.
package testutil
