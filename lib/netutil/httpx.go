// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil holds the HTTP response helpers shared by surfctl's
// REST client.
//
// Every body read is bounded by MaxResponseSize so a misbehaving
// server cannot make the dashboard allocate without limit. Error
// bodies are additionally clipped by ErrorBody so they fit on a single
// log line and in the status bar.
package netutil

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// MaxResponseSize bounds response body reads: 16 MB. A workspace
// listing for a large collaboration is a few hundred kilobytes.
const MaxResponseSize int64 = 16 << 20

// maxErrorBody is the number of bytes of an error body kept for
// diagnostics.
const maxErrorBody = 512

// ReadResponse reads a response body up to MaxResponseSize bytes.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// DecodeResponse reads a JSON response body (up to MaxResponseSize
// bytes) and decodes it into v.
func DecodeResponse(body io.Reader, v any) error {
	data, err := ReadResponse(body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}
	return nil
}

// ErrorBody reads an error response body and returns it as a single
// trimmed line of at most 512 bytes. Read errors are ignored: a partial
// body is still useful in a log message.
func ErrorBody(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, maxErrorBody+1))
	text := strings.Join(strings.Fields(string(data)), " ")
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody] + "…"
	}
	return text
}
