// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultURL is the SURF Research Cloud workspace endpoint.
const DefaultURL = "https://gw.live.surfresearchcloud.nl/v1/workspace/workspaces"

// Config is the complete surfctl configuration.
type Config struct {
	// Surf configures the remote API.
	Surf SurfConfig `toml:"surf"`

	// Files names the files inside the storage directory.
	Files FilesConfig `toml:"files"`

	// Session tunes the interactive dashboard.
	Session SessionConfig `toml:"session"`

	// SSH configures the ssh hand-off.
	SSH SSHConfig `toml:"ssh"`
}

// SurfConfig configures the remote API.
type SurfConfig struct {
	// URL is the workspace collection endpoint, without a trailing
	// slash or query string.
	URL string `toml:"url"`
}

// FilesConfig locates the storage directory and the files in it.
// Relative file names resolve against ScriptDir.
type FilesConfig struct {
	// ScriptDir is the storage directory.
	// Default: ${HOME}/.surf_controller
	ScriptDir string `toml:"scriptdir"`

	APIToken  string `toml:"api-token"`
	CSRFToken string `toml:"csrf-token"`
	Username  string `toml:"username"`

	// IDs is the CSV snapshot of the last listing.
	IDs string `toml:"ids"`

	// Logs is the log file shown in the dashboard's log pane.
	Logs string `toml:"logs"`
}

// SessionConfig tunes the interactive dashboard. Durations use Go
// syntax ("10s", "1500ms").
type SessionConfig struct {
	// PostActionDelay is how long to wait after a pause or resume
	// before refreshing, giving the remote side time to converge.
	PostActionDelay string `toml:"post_action_delay"`

	// StatusTTL is how long a status message stays visible.
	StatusTTL string `toml:"status_ttl"`

	// TailInterval is the log pane's poll interval.
	TailInterval string `toml:"tail_interval"`

	// RequestTimeout bounds each API request.
	RequestTimeout string `toml:"request_timeout"`

	// LogLines is the number of log lines kept for the log pane.
	LogLines int `toml:"log_lines"`
}

// SSHConfig configures the ssh hand-off.
type SSHConfig struct {
	// Command is the ssh binary. Default: ssh
	Command string `toml:"command"`

	// Args are inserted before the destination argument.
	Args []string `toml:"args"`
}

// Default returns the built-in configuration. LoadFile starts from
// these values, so a config file only needs the keys it changes.
func Default() *Config {
	return &Config{
		Surf: SurfConfig{URL: DefaultURL},
		Files: FilesConfig{
			ScriptDir: "${HOME}/.surf_controller",
			APIToken:  ".api_token",
			CSRFToken: ".csrf_token",
			Username:  ".username",
			IDs:       "ids.csv",
			Logs:      "logs.log",
		},
		Session: SessionConfig{
			PostActionDelay: "10s",
			StatusTTL:       "3s",
			TailInterval:    "1s",
			RequestTimeout:  "30s",
			LogLines:        10,
		},
		SSH: SSHConfig{Command: "ssh"},
	}
}

// DefaultPath returns ${HOME}/.surf_controller/config.toml.
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".surf_controller", "config.toml")
}

// LoadFile reads the TOML file at path over the defaults and expands
// path variables.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// EnsureFile writes the default configuration to path if no file
// exists there yet. Reports whether a file was created.
func EnsureFile(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return false, fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	data, err := toml.Marshal(Default())
	if err != nil {
		return false, fmt.Errorf("encoding default config: %w", err)
	}
	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} in path fields.
// A relative scriptdir is taken from the home directory.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Files.ScriptDir = expandVars(c.Files.ScriptDir, vars)
	if c.Files.ScriptDir != "" && !filepath.IsAbs(c.Files.ScriptDir) {
		if homeDir, err := os.UserHomeDir(); err == nil {
			c.Files.ScriptDir = filepath.Join(homeDir, c.Files.ScriptDir)
		}
	}
	vars["SCRIPTDIR"] = c.Files.ScriptDir

	c.Files.APIToken = expandVars(c.Files.APIToken, vars)
	c.Files.CSRFToken = expandVars(c.Files.CSRFToken, vars)
	c.Files.Username = expandVars(c.Files.Username, vars)
	c.Files.IDs = expandVars(c.Files.IDs, vars)
	c.Files.Logs = expandVars(c.Files.Logs, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Surf.URL == "" {
		errs = append(errs, fmt.Errorf("surf.url is required"))
	} else if !strings.HasPrefix(c.Surf.URL, "https://") && !strings.HasPrefix(c.Surf.URL, "http://") {
		errs = append(errs, fmt.Errorf("surf.url must be an http(s) URL, got %q", c.Surf.URL))
	}

	if c.Files.ScriptDir == "" {
		errs = append(errs, fmt.Errorf("files.scriptdir is required"))
	}
	for _, file := range []struct{ key, value string }{
		{"files.api-token", c.Files.APIToken},
		{"files.csrf-token", c.Files.CSRFToken},
		{"files.username", c.Files.Username},
		{"files.ids", c.Files.IDs},
		{"files.logs", c.Files.Logs},
	} {
		if file.value == "" {
			errs = append(errs, fmt.Errorf("%s is required", file.key))
		}
	}

	for _, duration := range []struct{ key, value string }{
		{"session.post_action_delay", c.Session.PostActionDelay},
		{"session.status_ttl", c.Session.StatusTTL},
		{"session.tail_interval", c.Session.TailInterval},
		{"session.request_timeout", c.Session.RequestTimeout},
	} {
		parsed, err := time.ParseDuration(duration.value)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", duration.key, err))
		} else if parsed < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative", duration.key))
		}
	}
	if interval, err := time.ParseDuration(c.Session.TailInterval); err == nil && interval == 0 {
		errs = append(errs, fmt.Errorf("session.tail_interval must be positive"))
	}

	if c.Session.LogLines <= 0 {
		errs = append(errs, fmt.Errorf("session.log_lines must be positive, got %d", c.Session.LogLines))
	}

	if c.SSH.Command == "" {
		errs = append(errs, fmt.Errorf("ssh.command is required"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// EnsureDir creates the storage directory if it does not exist.
func (c *Config) EnsureDir() error {
	if err := os.MkdirAll(c.Files.ScriptDir, 0o700); err != nil {
		return fmt.Errorf("creating %s: %w", c.Files.ScriptDir, err)
	}
	return nil
}

// resolve joins a configured file name onto the storage directory
// unless it is already absolute.
func (c *Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Files.ScriptDir, name)
}

// APITokenPath returns the API token file path.
func (c *Config) APITokenPath() string { return c.resolve(c.Files.APIToken) }

// CSRFTokenPath returns the CSRF token file path.
func (c *Config) CSRFTokenPath() string { return c.resolve(c.Files.CSRFToken) }

// UsernamePath returns the username file path.
func (c *Config) UsernamePath() string { return c.resolve(c.Files.Username) }

// SnapshotPath returns the CSV snapshot path.
func (c *Config) SnapshotPath() string { return c.resolve(c.Files.IDs) }

// LogPath returns the log file path.
func (c *Config) LogPath() string { return c.resolve(c.Files.Logs) }

// PostActionDelay returns the parsed session.post_action_delay.
// Call Validate first; unparseable values yield zero.
func (c *Config) PostActionDelay() time.Duration { return parseDuration(c.Session.PostActionDelay) }

// StatusTTL returns the parsed session.status_ttl.
func (c *Config) StatusTTL() time.Duration { return parseDuration(c.Session.StatusTTL) }

// TailInterval returns the parsed session.tail_interval.
func (c *Config) TailInterval() time.Duration { return parseDuration(c.Session.TailInterval) }

// RequestTimeout returns the parsed session.request_timeout.
func (c *Config) RequestTimeout() time.Duration { return parseDuration(c.Session.RequestTimeout) }

func parseDuration(value string) time.Duration {
	duration, _ := time.ParseDuration(value)
	return duration
}
