// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// HintError wraps an error with a line telling the user how to fix it.
type HintError struct {
	Err  error
	Hint string
}

func (e *HintError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error.
func (e *HintError) Unwrap() error { return e.Err }

// WithHint attaches a remediation hint to err. Returns nil when err is
// nil.
func WithHint(err error, hint string) error {
	if err == nil {
		return nil
	}
	return &HintError{Err: err, Hint: hint}
}

// Fatal writes "error: err" (and "hint: ..." when err carries one) to
// stderr and exits with code 1.
func Fatal(err error) {
	os.Exit(Report(os.Stderr, err))
}

// Report writes err to w in the format Fatal uses and returns the exit
// code.
func Report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}

	fmt.Fprintf(w, "error: %v\n", err)
	var hinted *HintError
	if errors.As(err, &hinted) && hinted.Hint != "" {
		fmt.Fprintf(w, "hint: %s\n", hinted.Hint)
	}
	return 1
}
