// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package surf

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// listQuery restricts the listing to compute workspaces that have not
// been deleted.
const listQuery = "/?application_type=Compute&deleted=false"

// List fetches the caller's workspaces in server order. When username
// is non-empty only workspaces whose name contains it
// (case-insensitive) are returned. The unfiltered result is written to
// the snapshot file if one is configured.
func (client *Client) List(ctx context.Context, username string) ([]Workspace, error) {
	if client.apiToken == "" {
		return nil, ErrNoToken
	}

	var response listResponse
	if err := client.do(ctx, http.MethodGet, client.baseURL+listQuery, nil, nil, &response); err != nil {
		return nil, fmt.Errorf("listing workspaces: %w", err)
	}

	all := make([]Workspace, 0, len(response.Results))
	for _, record := range response.Results {
		all = append(all, record.workspace())
	}

	if client.snapshotPath != "" {
		if err := WriteSnapshot(client.snapshotPath, all); err != nil {
			client.logger.Warn("writing workspace snapshot failed",
				"path", client.snapshotPath,
				"error", err,
			)
		} else {
			client.logger.Debug("workspace snapshot saved",
				"path", client.snapshotPath,
				"count", len(all),
			)
		}
	}

	return FilterByUser(all, username), nil
}

// FilterByUser returns the workspaces whose name contains username,
// ignoring case. An empty username returns workspaces unchanged.
func FilterByUser(workspaces []Workspace, username string) []Workspace {
	if username == "" {
		return workspaces
	}
	needle := strings.ToLower(username)
	filtered := make([]Workspace, 0, len(workspaces))
	for _, workspace := range workspaces {
		if strings.Contains(strings.ToLower(workspace.Name), needle) {
			filtered = append(filtered, workspace)
		}
	}
	return filtered
}
