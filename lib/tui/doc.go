// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui holds the color palette shared by surfctl's terminal
// views. Layout and rendering live with each view; this package only
// decides what things look like.
package tui
