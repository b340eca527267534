// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadSecret returns the trimmed contents of a token file. A missing
// file returns an error wrapping [os.ErrNotExist].
func ReadSecret(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// WriteSecret stores a token with mode 0600.
func WriteSecret(path, value string) error {
	return writeFileAtomic(path, []byte(strings.TrimSpace(value)+"\n"), 0o600)
}

// LoadUsername returns the stored username. When no username has been
// stored yet it falls back to $USER, which may be empty.
func LoadUsername(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return os.Getenv("USER"), nil
	}
	if err != nil {
		return "", fmt.Errorf("reading username: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// SaveUsername persists the username used for filtering and ssh.
// Surrounding whitespace is dropped; an empty name is rejected.
func SaveUsername(path, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username must not be empty")
	}
	if err := writeFileAtomic(path, []byte(username+"\n"), 0o600); err != nil {
		return fmt.Errorf("saving username: %w", err)
	}
	return nil
}

// writeFileAtomic writes data to a temp file in the target directory
// and renames it over path.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	directory := filepath.Dir(path)
	temp, err := os.CreateTemp(directory, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", directory, err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		temp.Close()
		os.Remove(tempPath)
		return fmt.Errorf("writing %s: %w", tempPath, err)
	}
	if err := temp.Chmod(perm); err != nil {
		temp.Close()
		os.Remove(tempPath)
		return fmt.Errorf("setting mode on %s: %w", tempPath, err)
	}
	if err := temp.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("closing %s: %w", tempPath, err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("renaming %s to %s: %w", tempPath, path, err)
	}
	return nil
}
