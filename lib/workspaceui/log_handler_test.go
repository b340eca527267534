// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package workspaceui

import (
	"context"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestTUILogHandlerEnabled(t *testing.T) {
	handler := NewTUILogHandler(slog.LevelError)
	ctx := context.Background()

	if handler.Enabled(ctx, slog.LevelWarn) {
		t.Error("warn enabled on an error-level handler")
	}
	if !handler.Enabled(ctx, slog.LevelError) {
		t.Error("error not enabled on an error-level handler")
	}
}

func TestTUILogHandlerSummarize(t *testing.T) {
	base := NewTUILogHandler(slog.LevelInfo)

	tests := []struct {
		name    string
		handler *TUILogHandler
		attrs   []slog.Attr
		want    string
	}{
		{
			name:    "message only",
			handler: base,
			want:    "refresh failed",
		},
		{
			name:    "record attrs",
			handler: base,
			attrs:   []slog.Attr{slog.String("error", "timeout"), slog.Int("status", 503)},
			want:    "refresh failed (error=timeout, status=503)",
		},
		{
			name:    "handler attrs first",
			handler: base.WithAttrs([]slog.Attr{slog.String("component", "surf")}).(*TUILogHandler),
			attrs:   []slog.Attr{slog.String("error", "timeout")},
			want:    "refresh failed (component=surf, error=timeout)",
		},
		{
			name:    "group prefixes record attrs",
			handler: base.WithGroup("http").(*TUILogHandler),
			attrs:   []slog.Attr{slog.Int("status", 401)},
			want:    "refresh failed (http.status=401)",
		},
		{
			name: "group prefixes later handler attrs",
			handler: base.WithGroup("http").
				WithAttrs([]slog.Attr{slog.String("method", "GET")}).(*TUILogHandler),
			want: "refresh failed (http.method=GET)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := slog.NewRecord(time.Now(), slog.LevelError, "refresh failed", 0)
			record.AddAttrs(tt.attrs...)
			if got := tt.handler.summarize(record); got != tt.want {
				t.Errorf("summarize = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTUILogHandlerDerivedHandlersShareProgram(t *testing.T) {
	handler := NewTUILogHandler(slog.LevelError)
	derived := handler.WithAttrs([]slog.Attr{slog.String("k", "v")}).WithGroup("g").(*TUILogHandler)

	program := tea.NewProgram(nil)
	handler.SetProgram(program)
	if derived.program.Load() != program {
		t.Error("derived handler does not see the program set on its parent")
	}
	handler.SetProgram(nil)
	if derived.program.Load() != nil {
		t.Error("derived handler still sees a cleared program")
	}
}

func TestTUILogHandlerWithoutProgram(t *testing.T) {
	logger := slog.New(NewTUILogHandler(slog.LevelError))
	// No program is set; records are dropped without blocking.
	logger.Error("dropped", "reason", "no program")
}

func TestTUILogHandlerWithAttrsDoesNotAlias(t *testing.T) {
	base := NewTUILogHandler(slog.LevelInfo).WithAttrs([]slog.Attr{slog.String("a", "1")}).(*TUILogHandler)
	first := base.WithAttrs([]slog.Attr{slog.String("b", "2")}).(*TUILogHandler)
	second := base.WithAttrs([]slog.Attr{slog.String("c", "3")}).(*TUILogHandler)

	record := slog.NewRecord(time.Now(), slog.LevelInfo, "m", 0)
	if got := first.summarize(record); got != "m (a=1, b=2)" {
		t.Errorf("first = %q", got)
	}
	if got := second.summarize(record); got != "m (a=1, c=3)" {
		t.Errorf("second = %q", got)
	}
}
