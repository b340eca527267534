// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package workspaceui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Grid is a fixed-size text surface. Writes outside it are dropped
// and lines wider than it are cut, so rendering never scrolls or wraps
// the terminal no matter how small it is.
type Grid struct {
	width  int
	height int
	rows   []string
}

// NewGrid returns a blank width x height grid. Negative dimensions are
// treated as zero.
func NewGrid(width, height int) *Grid {
	width = max(width, 0)
	height = max(height, 0)
	return &Grid{width: width, height: height, rows: make([]string, height)}
}

// Width returns the grid width in cells.
func (grid *Grid) Width() int { return grid.width }

// Height returns the grid height in rows.
func (grid *Grid) Height() int { return grid.height }

// WriteLine replaces row with text, truncated to the grid width. ANSI
// styling is preserved and never counted toward the width.
func (grid *Grid) WriteLine(row int, text string) {
	if row < 0 || row >= grid.height {
		return
	}
	grid.rows[row] = ansi.Truncate(text, grid.width, "")
}

// Overlay draws lines over the grid with the top-left corner at
// (column, row). Content left and right of the overlay is kept.
func (grid *Grid) Overlay(row, column int, lines []string) {
	if len(lines) == 0 || column < 0 {
		return
	}
	overlayWidth := ansi.StringWidth(lines[0])

	for index, line := range lines {
		target := row + index
		if target < 0 || target >= grid.height {
			continue
		}

		base := grid.rows[target]
		baseWidth := ansi.StringWidth(base)

		var builder strings.Builder
		builder.WriteString(ansi.Truncate(base, column, ""))
		if baseWidth < column {
			builder.WriteString(strings.Repeat(" ", column-baseWidth))
		}
		builder.WriteString("\x1b[0m")
		builder.WriteString(line)
		builder.WriteString("\x1b[0m")
		if suffixStart := column + overlayWidth; suffixStart < baseWidth {
			builder.WriteString(ansi.TruncateLeft(base, suffixStart, ""))
		}

		grid.WriteLine(target, builder.String())
	}
}

// Row returns the contents of row, or "" when out of range.
func (grid *Grid) Row(row int) string {
	if row < 0 || row >= grid.height {
		return ""
	}
	return grid.rows[row]
}

// String joins the rows with newlines.
func (grid *Grid) String() string {
	return strings.Join(grid.rows, "\n")
}
