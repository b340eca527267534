// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides binary entrypoint helpers for the raw I/O
// that happens outside the structured logger and the alternate screen:
// fatal error reporting to stderr from main(), with an optional
// remediation hint attached through [WithHint].
package process
