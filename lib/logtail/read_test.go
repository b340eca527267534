// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logs.log")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func TestReadLastLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		n       int
		want    []string
	}{
		{"empty file", "", 10, nil},
		{"fewer lines than requested", "a\nb\n", 10, []string{"a", "b"}},
		{"exact tail", "a\nb\nc\nd\n", 2, []string{"c", "d"}},
		{"no trailing newline", "a\nb\nc", 2, []string{"b", "c"}},
		{"crlf", "a\r\nb\r\n", 5, []string{"a", "b"}},
		{"blank lines kept", "a\n\nb\n", 3, []string{"a", "", "b"}},
		{"zero requested", "a\n", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.content)
			got, err := ReadLastLines(path, tt.n)
			if err != nil {
				t.Fatalf("ReadLastLines: %v", err)
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Errorf("ReadLastLines = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadLastLines_SpansBlocks(t *testing.T) {
	var builder strings.Builder
	for index := range 2000 {
		fmt.Fprintf(&builder, "line %04d %s\n", index, strings.Repeat("x", 40))
	}
	path := writeFile(t, builder.String())

	got, err := ReadLastLines(path, 150)
	if err != nil {
		t.Fatalf("ReadLastLines: %v", err)
	}
	if len(got) != 150 {
		t.Fatalf("got %d lines, want 150", len(got))
	}
	if !strings.HasPrefix(got[0], "line 1850 ") {
		t.Errorf("first line = %q, want line 1850", got[0])
	}
	if !strings.HasPrefix(got[149], "line 1999 ") {
		t.Errorf("last line = %q, want line 1999", got[149])
	}
}

func TestReadLastLines_Missing(t *testing.T) {
	_, err := ReadLastLines(filepath.Join(t.TempDir(), "absent.log"), 5)
	if !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
