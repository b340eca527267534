// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads surfctl's configuration and owns the per-user
// storage directory (by default ~/.surf_controller).
//
// The directory holds one concern per file:
//
//   - config.toml: server URL, file names, session tuning, ssh command
//   - the API token and CSRF token files (mode 0600)
//   - the username file
//   - the CSV snapshot of the last listing
//   - the log file the dashboard tails
//
// Configuration is read from a single TOML file. [EnsureFile] writes
// the defaults on first run; [LoadFile] reads it back over [Default].
// ${HOME} and ${VAR:-default} are expanded in path fields after
// loading. Nothing else in the environment overrides config values.
//
// Writes go through a temp file and rename so a crash never leaves a
// truncated token or username behind.
package config
