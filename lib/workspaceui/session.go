// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package workspaceui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/surfctl/lib/logtail"
)

// SessionConfig configures Run.
type SessionConfig struct {
	ModelConfig

	// LogPath is the file shown in the log pane.
	LogPath string

	// TailInterval is the log pane's poll interval. Defaults to
	// logtail.DefaultInterval.
	TailInterval time.Duration

	// LogHandler, when set, is connected to the program so log records
	// at its level appear in the status line.
	LogHandler *TUILogHandler

	// ProgramOptions are appended to the defaults (alternate screen,
	// ctx-scoped). Tests use them to substitute input and output.
	ProgramOptions []tea.ProgramOption
}

// Run drives one interactive session. It starts the log tailer, runs
// the dashboard until the user quits or ctx is cancelled, then stops
// the tailer and waits for it before returning. Remote calls still in
// flight at exit are cancelled.
func Run(ctx context.Context, config SessionConfig) (Model, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if config.Lines == nil {
		config.Lines = logtail.NewRing(DefaultLogRows)
	}
	config.Context = ctx
	model := NewModel(config.ModelConfig)

	options := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, config.ProgramOptions...)
	program := tea.NewProgram(model, options...)

	if config.LogHandler != nil {
		config.LogHandler.SetProgram(program)
		defer config.LogHandler.SetProgram(nil)
	}

	tailer := &logtail.Tailer{
		Path:     config.LogPath,
		Lines:    config.Lines,
		Interval: config.TailInterval,
		Clock:    model.clock,
		Logger:   model.logger,
		OnUpdate: func() { program.Send(logUpdatedMsg{}) },
	}
	tailerDone := make(chan struct{})
	go func() {
		defer close(tailerDone)
		if err := tailer.Run(ctx); err != nil {
			model.logger.Error("log tailer stopped", "error", err)
		}
	}()

	finalModel, runErr := program.Run()

	cancel()
	<-tailerDone

	if runErr != nil {
		return model, fmt.Errorf("running dashboard: %w", runErr)
	}
	final, ok := finalModel.(Model)
	if !ok {
		return model, fmt.Errorf("running dashboard: unexpected final model %T", finalModel)
	}
	return final, nil
}
