// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package surf

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// snapshotHeader is the first row of every snapshot file.
var snapshotHeader = []string{"id", "name", "active"}

// WriteSnapshot writes workspaces as CSV (id,name,active) to path,
// replacing any previous snapshot.
func WriteSnapshot(path string, workspaces []Workspace) error {
	temp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	tempPath := temp.Name()

	writer := csv.NewWriter(temp)
	writer.Write(snapshotHeader)
	for _, workspace := range workspaces {
		writer.Write([]string{workspace.ID, workspace.Name, strconv.FormatBool(workspace.Active)})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		temp.Close()
		os.Remove(tempPath)
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := temp.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("closing snapshot: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("installing snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot parses a file written by WriteSnapshot. IP addresses
// are not part of the snapshot and come back empty.
func ReadSnapshot(path string) ([]Workspace, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = len(snapshotHeader)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	workspaces := make([]Workspace, 0, len(records)-1)
	for index, record := range records[1:] {
		active, err := strconv.ParseBool(record[2])
		if err != nil {
			return nil, fmt.Errorf("parsing snapshot %s row %d: %w", path, index+2, err)
		}
		workspaces = append(workspaces, Workspace{ID: record[0], Name: record[1], Active: active})
	}
	return workspaces, nil
}
