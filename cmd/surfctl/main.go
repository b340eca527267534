// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// surfctl is an interactive terminal dashboard for SURF Research Cloud
// workspaces. It lists the caller's workspaces, pauses and resumes
// selected ones in bulk, hands off to ssh, and tails its own log file
// in a pane below the list.
//
// State lives in ~/.surf_controller: config.toml, the API and CSRF
// token files, the username used for filtering and ssh, a CSV snapshot
// of the last listing and the log file. Missing token files are
// prompted for on first run and validated with one listing before the
// dashboard starts.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/surfctl/lib/config"
	"github.com/bureau-foundation/surfctl/lib/logtail"
	"github.com/bureau-foundation/surfctl/lib/process"
	"github.com/bureau-foundation/surfctl/lib/surf"
	"github.com/bureau-foundation/surfctl/lib/version"
	"github.com/bureau-foundation/surfctl/lib/workspaceui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		process.Fatal(err)
	}
}

func run(args []string) error {
	var configPath string
	var showVersion bool

	flagSet := pflag.NewFlagSet("surfctl", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", config.DefaultPath(), "path to config.toml")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return nil
		}
		return process.WithHint(err, "Run 'surfctl --help' for usage.")
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if showVersion {
		version.Print("surfctl")
		return nil
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return process.WithHint(fmt.Errorf("unexpected argument: %s", rest[0]),
			"surfctl takes no positional arguments. Run 'surfctl --help' for usage.")
	}

	cfg, created, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logFile, err := openLogFile(cfg.LogPath())
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	startupLogger := newStartupLogger(logFile, os.Stderr)
	if created {
		startupLogger.Info("created default configuration", "path", configPath)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := ensureTokens(ctx, cfg, startupLogger); err != nil {
		return err
	}

	apiToken := loadToken(cfg.APITokenPath(), "API token", startupLogger)
	csrfToken := loadToken(cfg.CSRFTokenPath(), "CSRF token", startupLogger)
	username, err := config.LoadUsername(cfg.UsernamePath())
	if err != nil {
		return err
	}

	// Records from here on go to the log file and, at error level, to
	// the dashboard's status line.
	statusHandler := workspaceui.NewTUILogHandler(slog.LevelError)
	sessionLogger := newSessionLogger(logFile, statusHandler)

	client, err := newClient(cfg, apiToken, csrfToken, sessionLogger)
	if err != nil {
		return err
	}

	workspaces, initialStatus := initialFetch(ctx, client, cfg.SnapshotPath(), sessionLogger)
	sessionLogger.Info("session starting", "workspaces", len(workspaces), "username", username)

	usernamePath := cfg.UsernamePath()
	final, err := workspaceui.Run(ctx, workspaceui.SessionConfig{
		ModelConfig: workspaceui.ModelConfig{
			Directory: client,
			SaveUsername: func(name string) error {
				return config.SaveUsername(usernamePath, name)
			},
			Username:        username,
			Workspaces:      workspaces,
			InitialStatus:   initialStatus,
			Lines:           logtail.NewRing(cfg.Session.LogLines),
			PostActionDelay: cfg.PostActionDelay(),
			StatusTTL:       cfg.StatusTTL(),
			SSHCommand:      cfg.SSH.Command,
			SSHArgs:         cfg.SSH.Args,
			Logger:          sessionLogger,
		},
		LogPath:      cfg.LogPath(),
		TailInterval: cfg.TailInterval(),
		LogHandler:   statusHandler,
	})
	if err != nil {
		return err
	}
	sessionLogger.Info("session ended", "username", final.ViewModel().Username)
	return nil
}

// loadConfig writes the default config on first run, loads and
// validates it, and creates the storage directory. Reports whether the
// config file was created.
func loadConfig(path string) (*config.Config, bool, error) {
	created, err := config.EnsureFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("writing default config: %w", err)
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, false, process.WithHint(fmt.Errorf("invalid config %s: %w", path, err),
			"Fix the listed fields or delete the file to regenerate the defaults.")
	}
	if err := cfg.EnsureDir(); err != nil {
		return nil, false, err
	}
	return cfg, created, nil
}

// ensureTokens runs first-run provisioning for missing token files.
// Without a terminal the session starts anyway and remote calls fail
// until the files are written.
func ensureTokens(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	files := []tokenFile{
		{label: "API token", path: cfg.APITokenPath()},
		{label: "CSRF token", path: cfg.CSRFTokenPath()},
	}
	missing, err := missingTokens(files)
	if err != nil || len(missing) == 0 {
		return err
	}

	prompter, err := newTerminalPrompter(os.Stdin, os.Stderr)
	if errors.Is(err, errNoTerminal) {
		for _, file := range missing {
			logger.Warn("token file missing and no terminal to prompt on", "token", file.label, "path", file.path)
		}
		return nil
	}
	if err != nil {
		return err
	}

	validate := func(ctx context.Context) error {
		client, err := newClient(cfg,
			loadToken(cfg.APITokenPath(), "API token", logger),
			loadToken(cfg.CSRFTokenPath(), "CSRF token", logger),
			logger)
		if err != nil {
			return err
		}
		_, err = client.List(ctx, "")
		return err
	}
	return provisionTokens(ctx, files, prompter, validate, logger)
}

// loadToken reads a token file. A missing or unreadable file is logged
// and yields an empty token, which the client rejects per call.
func loadToken(path, label string, logger *slog.Logger) string {
	token, err := config.ReadSecret(path)
	if err != nil {
		logger.Warn("token unavailable, remote calls will fail", "token", label, "path", path, "error", err)
		return ""
	}
	return token
}

func newClient(cfg *config.Config, apiToken, csrfToken string, logger *slog.Logger) (*surf.Client, error) {
	return surf.NewClient(surf.Config{
		BaseURL:        cfg.Surf.URL,
		APIToken:       apiToken,
		CSRFToken:      csrfToken,
		SnapshotPath:   cfg.SnapshotPath(),
		RequestTimeout: cfg.RequestTimeout(),
		Logger:         logger,
	})
}

// initialFetch lists workspaces before the dashboard starts. When the
// listing fails the last snapshot is shown instead, if there is one,
// and the returned status explains both.
func initialFetch(ctx context.Context, directory workspaceui.Directory, snapshotPath string, logger *slog.Logger) ([]surf.Workspace, string) {
	workspaces, err := directory.List(ctx, "")
	if err == nil {
		return workspaces, ""
	}

	logger.Warn("initial workspace listing failed", "error", err, "kind", surf.Classify(err).String())
	status := workspaceui.RefreshFailureStatus(err)

	snapshot, snapshotErr := surf.ReadSnapshot(snapshotPath)
	if snapshotErr != nil {
		if !errors.Is(snapshotErr, os.ErrNotExist) {
			logger.Warn("reading workspace snapshot failed", "path", snapshotPath, "error", snapshotErr)
		}
		return nil, status
	}
	if len(snapshot) == 0 {
		return nil, status
	}
	logger.Info("showing last workspace snapshot", "path", snapshotPath, "workspaces", len(snapshot))
	return snapshot, status + "; showing last snapshot"
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `surfctl: terminal dashboard for SURF Research Cloud workspaces.

Lists your workspaces, pauses and resumes them in bulk and opens ssh
sessions. Configuration and tokens live in ~/.surf_controller; missing
tokens are prompted for on first run.

Usage:
  surfctl [flags]

Keys:
  j/k        move            h/l      previous/next page
  space      select          a        select all / none
  p / r      pause / resume  u        refresh
  f          filter by user  n        change username
  s          ssh             y        copy user@address
  L          toggle logs     q        quit

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
