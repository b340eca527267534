// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package surf

// Workspace is one compute workspace as reported by the API.
type Workspace struct {
	// ID is the server-assigned identifier used in action URLs.
	ID string

	// Name is the user-visible workspace name. Action targets are
	// addressed by name.
	Name string

	// Active is true when the workspace is running.
	Active bool

	// IP is the workspace's public address, empty when the API does
	// not report one.
	IP string
}

// State returns "running" or "paused".
func (workspace Workspace) State() string {
	if workspace.Active {
		return "running"
	}
	return "paused"
}

// Action is a state change that can be requested for a workspace.
type Action string

const (
	ActionPause  Action = "pause"
	ActionResume Action = "resume"
)

// Valid reports whether action is one the API accepts.
func (action Action) Valid() bool {
	return action == ActionPause || action == ActionResume
}

// listResponse is the body of a workspace listing.
type listResponse struct {
	Results []workspaceRecord `json:"results"`
}

type workspaceRecord struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Active       bool          `json:"active"`
	ResourceMeta *resourceMeta `json:"resource_meta"`
}

type resourceMeta struct {
	IP string `json:"ip"`
}

func (record workspaceRecord) workspace() Workspace {
	workspace := Workspace{
		ID:     record.ID,
		Name:   record.Name,
		Active: record.Active,
	}
	if record.ResourceMeta != nil {
		workspace.IP = record.ResourceMeta.IP
	}
	return workspace
}
