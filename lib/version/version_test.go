// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"bytes"
	"runtime"
	"runtime/debug"
	"strings"
	"testing"
)

func TestStampFormat(t *testing.T) {
	saved := Version
	t.Cleanup(func() { Version = saved })
	Version = "1.2.0"

	tests := []struct {
		name  string
		stamp BuildStamp
		want  string
	}{
		{
			name:  "clean",
			stamp: BuildStamp{Commit: "abc1234", Time: "2026-10-01T00:00:00Z"},
			want:  "1.2.0 (abc1234, 2026-10-01T00:00:00Z)",
		},
		{
			name:  "dirty",
			stamp: BuildStamp{Commit: "abc1234", Dirty: true, Time: "2026-10-01T00:00:00Z"},
			want:  "1.2.0 (abc1234-dirty, 2026-10-01T00:00:00Z)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stamp.format(); got != tt.want {
				t.Errorf("format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStampWithSettings(t *testing.T) {
	settings := []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.modified", Value: "true"},
		{Key: "vcs.time", Value: "2026-09-30T12:00:00Z"},
	}

	fallback := BuildStamp{Commit: "unknown", Time: "unknown"}.withSettings(settings)
	if fallback.Commit != "0123456" || !fallback.Dirty || fallback.Time != "2026-09-30T12:00:00Z" {
		t.Errorf("fallback stamp = %+v", fallback)
	}

	injected := BuildStamp{Commit: "feedbee", Time: "2026-10-01T00:00:00Z"}.withSettings(settings)
	if injected.Commit != "feedbee" || injected.Dirty || injected.Time != "2026-10-01T00:00:00Z" {
		t.Errorf("ldflags values were overridden: %+v", injected)
	}
}

func TestFprint(t *testing.T) {
	var output bytes.Buffer
	Fprint(&output, "surfctl")

	text := output.String()
	if !strings.HasPrefix(text, "surfctl "+Info()) {
		t.Errorf("output does not start with binary and Info: %q", text)
	}
	if !strings.Contains(text, runtime.Version()) {
		t.Errorf("output missing Go version: %q", text)
	}
}
