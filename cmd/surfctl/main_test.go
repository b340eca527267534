// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/bureau-foundation/surfctl/lib/process"
	"github.com/bureau-foundation/surfctl/lib/surf"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantErr  bool
		wantHint bool
	}{
		{name: "version", args: []string{"--version"}},
		{name: "help", args: []string{"--help"}},
		{name: "unknown flag", args: []string{"--bogus"}, wantErr: true, wantHint: true},
		{name: "positional argument", args: []string{"list"}, wantErr: true, wantHint: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("run(%q) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
			var hinted *process.HintError
			if errors.As(err, &hinted) != tt.wantHint {
				t.Errorf("run(%q) hint present = %v, want %v", tt.args, !tt.wantHint, tt.wantHint)
			}
		})
	}
}

func TestLoadConfigFirstRun(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, ".surf_controller", "config.toml")

	cfg, created, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if !created {
		t.Error("first load did not report creating the config")
	}
	if cfg.Files.ScriptDir != filepath.Join(home, ".surf_controller") {
		t.Errorf("ScriptDir = %q", cfg.Files.ScriptDir)
	}
	if info, err := os.Stat(cfg.Files.ScriptDir); err != nil || !info.IsDir() {
		t.Errorf("storage directory not created: %v", err)
	}

	_, created, err = loadConfig(path)
	if err != nil {
		t.Fatalf("second loadConfig: %v", err)
	}
	if created {
		t.Error("second load reported creating the config")
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, "config.toml")
	if err := os.WriteFile(path, []byte("[surf]\nurl = \"ftp://example.org\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := loadConfig(path)
	if err == nil {
		t.Fatal("loadConfig accepted a non-http URL")
	}
	var hinted *process.HintError
	if !errors.As(err, &hinted) {
		t.Errorf("validation error carries no hint: %v", err)
	}
}

type stubDirectory struct {
	workspaces []surf.Workspace
	err        error
}

func (directory stubDirectory) List(context.Context, string) ([]surf.Workspace, error) {
	return directory.workspaces, directory.err
}

func (directory stubDirectory) Invoke(context.Context, surf.Action, []string, []surf.Workspace) (*surf.ActionReport, error) {
	return nil, errors.New("not used")
}

func TestInitialFetch(t *testing.T) {
	listed := []surf.Workspace{{ID: "1", Name: "alice-box", Active: true, IP: "10.0.0.1"}}
	snapshot := []surf.Workspace{
		{ID: "1", Name: "alice-box", Active: true},
		{ID: "2", Name: "bob-box", Active: false},
	}
	authRejected := &surf.APIError{StatusCode: 401}
	badGateway := &surf.APIError{StatusCode: 502}

	tests := []struct {
		name       string
		directory  stubDirectory
		snapshot   []surf.Workspace
		corrupt    bool
		wantCount  int
		wantStatus string
	}{
		{
			name:      "success",
			directory: stubDirectory{workspaces: listed},
			snapshot:  snapshot,
			wantCount: 1,
		},
		{
			name:       "auth rejected",
			directory:  stubDirectory{err: authRejected},
			wantStatus: "refresh failed: " + authRejected.Error() + " (check your API token)",
		},
		{
			name:       "missing token",
			directory:  stubDirectory{err: surf.ErrNoToken},
			wantStatus: "refresh failed: " + surf.ErrNoToken.Error() + " (check your API token)",
		},
		{
			name:       "server error",
			directory:  stubDirectory{err: badGateway},
			wantStatus: "refresh failed: " + badGateway.Error() + " (server error, retry later)",
		},
		{
			name:       "falls back to snapshot",
			directory:  stubDirectory{err: badGateway},
			snapshot:   snapshot,
			wantCount:  2,
			wantStatus: "refresh failed: " + badGateway.Error() + " (server error, retry later); showing last snapshot",
		},
		{
			name:       "corrupt snapshot ignored",
			directory:  stubDirectory{err: authRejected},
			corrupt:    true,
			wantStatus: "refresh failed: " + authRejected.Error() + " (check your API token)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshotPath := filepath.Join(t.TempDir(), "ids.csv")
			if tt.snapshot != nil {
				if err := surf.WriteSnapshot(snapshotPath, tt.snapshot); err != nil {
					t.Fatalf("WriteSnapshot: %v", err)
				}
			}
			if tt.corrupt {
				if err := os.WriteFile(snapshotPath, []byte("id,name,active\n1,alice-box,maybe\n"), 0o600); err != nil {
					t.Fatal(err)
				}
			}

			workspaces, status := initialFetch(context.Background(), tt.directory, snapshotPath, discardLogger())
			if len(workspaces) != tt.wantCount {
				t.Errorf("got %d workspaces, want %d", len(workspaces), tt.wantCount)
			}
			if status != tt.wantStatus {
				t.Errorf("status = %q, want %q", status, tt.wantStatus)
			}
		})
	}
}

func TestLoadTokenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".api_token")
	if token := loadToken(path, "API token", discardLogger()); token != "" {
		t.Errorf("missing token file yielded %q", token)
	}

	if err := os.WriteFile(path, []byte("  secret-value\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if token := loadToken(path, "API token", discardLogger()); token != "secret-value" {
		t.Errorf("token = %q, want secret-value", token)
	}
}
