// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package surf

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
)

// ErrNoToken is returned when a request needs a token that was never
// configured. It classifies as [KindAuthRejected].
var ErrNoToken = errors.New("surf: no API token configured")

// APIError is a non-2xx response from the workspace API.
type APIError struct {
	// StatusCode is the HTTP response status code.
	StatusCode int

	// Body is the response body, whitespace-collapsed and clipped.
	Body string
}

func (err *APIError) Error() string {
	if err.Body == "" {
		return fmt.Sprintf("surf: HTTP %d", err.StatusCode)
	}
	return fmt.Sprintf("surf: HTTP %d: %s", err.StatusCode, err.Body)
}

// ErrorKind groups client errors by how a caller should react.
type ErrorKind int

const (
	// KindOther covers malformed responses and unexpected statuses.
	KindOther ErrorKind = iota

	// KindNetwork is a transport failure or timeout. Retrying later
	// may succeed.
	KindNetwork

	// KindAuthRejected means the tokens are missing or refused.
	KindAuthRejected

	// KindServer is a 5xx response.
	KindServer
)

func (kind ErrorKind) String() string {
	switch kind {
	case KindNetwork:
		return "network"
	case KindAuthRejected:
		return "auth rejected"
	case KindServer:
		return "server error"
	default:
		return "error"
	}
}

// Classify maps an error returned by this package to its kind. A nil
// error classifies as KindOther.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindOther
	}
	if errors.Is(err, ErrNoToken) {
		return KindAuthRejected
	}

	var apiError *APIError
	if errors.As(err, &apiError) {
		switch {
		case apiError.StatusCode == http.StatusUnauthorized, apiError.StatusCode == http.StatusForbidden:
			return KindAuthRejected
		case apiError.StatusCode >= 500:
			return KindServer
		default:
			return KindOther
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindNetwork
	}
	var netError net.Error
	if errors.As(err, &netError) {
		return KindNetwork
	}
	var urlError *url.Error
	if errors.As(err, &urlError) {
		return KindNetwork
	}
	return KindOther
}

// IsAuthRejected reports whether err means the tokens were missing or
// refused.
func IsAuthRejected(err error) bool {
	return Classify(err) == KindAuthRejected
}

// IsServerError reports whether err is a 5xx response.
func IsServerError(err error) bool {
	return Classify(err) == KindServer
}
