// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package surf is a client for the SURF Research Cloud workspace API.
//
// Two operations are exposed: [Client.List] fetches the caller's
// compute workspaces, and [Client.Invoke] pauses or resumes a batch of
// them by name. The API authenticates with a static API token sent in
// the authorization header; state-changing requests additionally carry
// a CSRF token.
//
// Every successful listing can be written to a CSV snapshot
// (id,name,active) for use by external scripts. Snapshot failures are
// logged and never fail the listing.
//
// Errors are typed: non-2xx responses are [*APIError], and [Classify]
// maps any client error to an [ErrorKind] so callers can decide
// whether to keep stale state, warn about credentials, or give up.
package surf
