// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package surf

import (
	"context"
	"fmt"
	"net/http"
)

// ActionReport summarizes a batched Invoke.
type ActionReport struct {
	Action Action

	// Succeeded lists target names whose request was accepted.
	Succeeded []string

	// Failed lists targets whose request was refused or never
	// completed, in request order.
	Failed []ActionFailure

	// Skipped lists target names absent from the snapshot.
	Skipped []string
}

// ActionFailure is one target that did not accept the action.
type ActionFailure struct {
	Name string
	Err  error
}

// FailedNames returns the names of failed targets in request order.
func (report *ActionReport) FailedNames() []string {
	names := make([]string, 0, len(report.Failed))
	for _, failure := range report.Failed {
		names = append(names, failure.Name)
	}
	return names
}

// Invoke requests action for every workspace in snapshot whose name is
// in names. Workspaces sharing a name are all targeted. Requests are sent one at a time in snapshot order. A
// refused request (including HTTP 400) is logged and recorded in the
// report; the remaining targets are still attempted.
//
// The returned error is non-nil for an invalid action, missing tokens,
// or a context cancelled before every target was attempted. In the
// last case the partial report is returned alongside the error.
func (client *Client) Invoke(ctx context.Context, action Action, names []string, snapshot []Workspace) (*ActionReport, error) {
	if !action.Valid() {
		return nil, fmt.Errorf("surf: unknown action %q", action)
	}
	if client.apiToken == "" || client.csrfToken == "" {
		return nil, ErrNoToken
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}

	seen := make(map[string]bool, len(names))
	report := &ActionReport{Action: action}
	for _, workspace := range snapshot {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		logger := client.logger.With(
			"workspace", workspace.Name,
			"id", workspace.ID,
			"active", workspace.Active,
			"action", string(action),
		)
		if !wanted[workspace.Name] {
			logger.Debug("skipping workspace not in target set")
			continue
		}
		seen[workspace.Name] = true

		logger.Info("requesting workspace action")
		url := fmt.Sprintf("%s/%s/actions/%s/", client.baseURL, workspace.ID, action)
		err := client.do(ctx, http.MethodPost, url, []byte("{}"), map[string]string{
			"Content-Type": "application/json;" + string(action),
			"X-CSRFTOKEN":  client.csrfToken,
		}, nil)
		if err != nil {
			logger.Warn("workspace action failed", "error", err)
			report.Failed = append(report.Failed, ActionFailure{Name: workspace.Name, Err: err})
			continue
		}
		logger.Info("workspace action accepted")
		report.Succeeded = append(report.Succeeded, workspace.Name)
	}

	for _, name := range names {
		if !seen[name] {
			client.logger.Debug("action target not in snapshot", "workspace", name, "action", string(action))
			report.Skipped = append(report.Skipped, name)
			seen[name] = true
		}
	}

	client.logger.Info("finished workspace action",
		"action", string(action),
		"succeeded", len(report.Succeeded),
		"failed", len(report.Failed),
		"skipped", len(report.Skipped),
	)
	return report, nil
}
