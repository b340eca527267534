// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package surf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bureau-foundation/surfctl/lib/clock"
	"github.com/bureau-foundation/surfctl/lib/netutil"
)

// acceptHeader selects the compute view of the workspace resource.
const acceptHeader = "application/json;Compute"

// Config holds configuration for creating a Client.
type Config struct {
	// BaseURL is the workspace collection endpoint, for example
	// "https://gw.live.surfresearchcloud.nl/v1/workspace/workspaces".
	// Required.
	BaseURL string

	// APIToken is sent verbatim in the authorization header. When
	// empty every call fails with ErrNoToken.
	APIToken string

	// CSRFToken is sent as X-CSRFTOKEN on action requests. When empty
	// Invoke fails with ErrNoToken.
	CSRFToken string

	// SnapshotPath, when set, receives a CSV snapshot of every
	// successful unfiltered listing.
	SnapshotPath string

	// RequestTimeout bounds each HTTP request. Zero means no bound
	// beyond the caller's context.
	RequestTimeout time.Duration

	// HTTPClient is used for all HTTP requests. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client

	// Clock provides time operations. Defaults to clock.Real().
	Clock clock.Clock

	// Logger is used for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client talks to the workspace API. It is safe for concurrent use.
type Client struct {
	baseURL        string
	apiToken       string
	csrfToken      string
	snapshotPath   string
	requestTimeout time.Duration
	httpClient     *http.Client
	clock          clock.Clock
	logger         *slog.Logger
}

// NewClient creates a client from the given configuration.
func NewClient(config Config) (*Client, error) {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("surf: BaseURL is required")
	}
	if !strings.HasPrefix(baseURL, "https://") && !strings.HasPrefix(baseURL, "http://") {
		return nil, fmt.Errorf("surf: BaseURL must be an http(s) URL (got %q)", baseURL)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:        baseURL,
		apiToken:       config.APIToken,
		csrfToken:      config.CSRFToken,
		snapshotPath:   config.SnapshotPath,
		requestTimeout: config.RequestTimeout,
		httpClient:     httpClient,
		clock:          clk,
		logger:         logger,
	}, nil
}

// do sends one request. A 2xx JSON body is decoded into out when out
// is non-nil and discarded otherwise. Non-2xx responses return an
// *APIError carrying the status and a clipped body. headers are added
// after the common accept and authorization headers.
func (client *Client) do(ctx context.Context, method, url string, body []byte, headers map[string]string, out any) error {
	if client.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, client.requestTimeout)
		defer cancel()
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	request, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("surf: creating request: %w", err)
	}
	request.Header.Set("Accept", acceptHeader)
	request.Header.Set("Authorization", client.apiToken)
	for name, value := range headers {
		request.Header.Set(name, value)
	}

	start := client.clock.Now()
	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("surf: %s %s: %w", method, url, err)
	}
	defer response.Body.Close()

	client.logger.Debug("surf request",
		"method", method,
		"url", url,
		"status", response.StatusCode,
		"duration", client.clock.Now().Sub(start),
	)

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return &APIError{
			StatusCode: response.StatusCode,
			Body:       netutil.ErrorBody(response.Body),
		}
	}

	if out == nil {
		if _, err := netutil.ReadResponse(response.Body); err != nil {
			return fmt.Errorf("surf: reading response body: %w", err)
		}
		return nil
	}
	if err := netutil.DecodeResponse(response.Body, out); err != nil {
		return fmt.Errorf("surf: %w", err)
	}
	return nil
}
