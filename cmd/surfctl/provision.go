// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/bureau-foundation/surfctl/lib/config"
)

// errNoTerminal is returned when a token is missing and stdin cannot
// be used for an interactive prompt.
var errNoTerminal = errors.New("no terminal available for interactive token prompt")

// tokenFile names one secret the session needs.
type tokenFile struct {
	label string
	path  string
}

// tokenPrompter asks the user for secrets.
type tokenPrompter interface {
	// ReadToken prompts for label with echo disabled.
	ReadToken(label string) (string, error)

	// WaitForEnter shows message and blocks until the user presses
	// enter.
	WaitForEnter(message string) error
}

// terminalPrompter prompts on stderr and reads from the terminal on
// stdin.
type terminalPrompter struct {
	input  *os.File
	output io.Writer
}

func newTerminalPrompter(input *os.File, output io.Writer) (*terminalPrompter, error) {
	if !term.IsTerminal(int(input.Fd())) {
		return nil, errNoTerminal
	}
	return &terminalPrompter{input: input, output: output}, nil
}

func (prompter *terminalPrompter) ReadToken(label string) (string, error) {
	fmt.Fprintf(prompter.output, "Enter %s (ctrl-C to cancel): ", label)
	value, err := term.ReadPassword(int(prompter.input.Fd()))
	fmt.Fprintln(prompter.output)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", label, err)
	}
	return string(value), nil
}

func (prompter *terminalPrompter) WaitForEnter(message string) error {
	fmt.Fprintln(prompter.output, message)
	var buffer [1]byte
	for {
		if _, err := prompter.input.Read(buffer[:]); err != nil {
			return fmt.Errorf("waiting for enter: %w", err)
		}
		if buffer[0] == '\n' || buffer[0] == '\r' {
			return nil
		}
	}
}

// missingTokens returns the token files that do not exist yet.
func missingTokens(files []tokenFile) ([]tokenFile, error) {
	var missing []tokenFile
	for _, file := range files {
		_, err := os.Stat(file.path)
		if errors.Is(err, os.ErrNotExist) {
			missing = append(missing, file)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("checking %s: %w", file.path, err)
		}
	}
	return missing, nil
}

// provisionTokens prompts for every missing token file, writes it and
// checks the result with validate. When validation fails the files
// written in that round are removed and the user is asked again. Files
// that existed beforehand are never prompted for, validated or
// removed.
func provisionTokens(ctx context.Context, files []tokenFile, prompter tokenPrompter, validate func(context.Context) error, logger *slog.Logger) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		missing, err := missingTokens(files)
		if err != nil {
			return err
		}
		if len(missing) == 0 {
			return nil
		}

		var created []string
		for _, file := range missing {
			logger.Warn("token file missing", "token", file.label, "path", file.path)
			value, err := readNonEmptyToken(prompter, file.label)
			if err == nil {
				err = config.WriteSecret(file.path, value)
			}
			if err != nil {
				removeTokenFiles(created, logger)
				return err
			}
			created = append(created, file.path)
		}

		err = validate(ctx)
		if err == nil {
			logger.Info("tokens verified")
			return nil
		}

		logger.Warn("token validation failed", "error", err)
		removeTokenFiles(created, logger)
		message := fmt.Sprintf("Unable to list workspaces with these tokens: %v\n"+
			"The token files were removed. Check your tokens and press enter to try again.", err)
		if err := prompter.WaitForEnter(message); err != nil {
			return err
		}
	}
}

// readNonEmptyToken prompts until the user enters something.
func readNonEmptyToken(prompter tokenPrompter, label string) (string, error) {
	for {
		value, err := prompter.ReadToken(label)
		if err != nil {
			return "", err
		}
		if value = strings.TrimSpace(value); value != "" {
			return value, nil
		}
	}
}

func removeTokenFiles(paths []string, logger *slog.Logger) {
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warn("removing token file failed", "path", path, "error", err)
		}
	}
}
