// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package logtail

import (
	"bytes"
	"io"
	"os"
)

// readBlockSize is the chunk size used when scanning backward.
const readBlockSize = 4096

// ReadLastLines returns the last n lines of the file at path, oldest
// first, without their line terminators. The file is read backward in
// blocks so only the tail is loaded. A trailing newline does not
// produce an empty final line.
func ReadLastLines(path string, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	offset := info.Size()

	// tail accumulates bytes from the end of the file. It holds more
	// than n newlines once enough has been read.
	var tail []byte
	block := make([]byte, readBlockSize)
	for offset > 0 {
		size := int64(readBlockSize)
		if offset < size {
			size = offset
		}
		offset -= size

		if _, err := file.ReadAt(block[:size], offset); err != nil && err != io.EOF {
			return nil, err
		}
		tail = append(append([]byte(nil), block[:size]...), tail...)

		if bytes.Count(bytes.TrimSuffix(tail, []byte("\n")), []byte("\n")) >= n {
			break
		}
	}

	return splitLastLines(tail, n), nil
}

// splitLastLines splits data into lines and keeps the last n.
func splitLastLines(data []byte, n int) []string {
	data = bytes.TrimSuffix(data, []byte("\n"))
	if len(data) == 0 {
		return nil
	}

	rawLines := bytes.Split(data, []byte("\n"))
	if len(rawLines) > n {
		rawLines = rawLines[len(rawLines)-n:]
	}
	lines := make([]string, len(rawLines))
	for index, line := range rawLines {
		lines[index] = string(bytes.TrimSuffix(line, []byte("\r")))
	}
	return lines
}
