// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package logtail

import (
	"slices"
	"sync"
)

// Ring holds the most recent lines of a log, up to a fixed capacity.
// The zero value is not usable; call NewRing.
type Ring struct {
	mu       sync.RWMutex
	capacity int
	lines    []string
}

// NewRing returns an empty ring holding at most capacity lines.
// Capacities below 1 are raised to 1.
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{capacity: capacity}
}

// Capacity returns the maximum number of lines kept.
func (ring *Ring) Capacity() int { return ring.capacity }

// Replace installs lines as the new contents, keeping only the last
// Capacity lines. Reports whether the contents changed.
func (ring *Ring) Replace(lines []string) bool {
	if len(lines) > ring.capacity {
		lines = lines[len(lines)-ring.capacity:]
	}
	replacement := slices.Clone(lines)

	ring.mu.Lock()
	defer ring.mu.Unlock()
	if slices.Equal(ring.lines, replacement) {
		return false
	}
	ring.lines = replacement
	return true
}

// Lines returns a copy of the current contents, oldest first.
func (ring *Ring) Lines() []string {
	ring.mu.RLock()
	defer ring.mu.RUnlock()
	return slices.Clone(ring.lines)
}
