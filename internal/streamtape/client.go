// Package streamtape implements the provider-facing client. Every operation
// issues exactly one outbound GET and interprets the uniform response
// envelope; account credentials are injected here so callers never hold them.
package streamtape

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"aurahub-gateway/internal/observability/metrics"
)

// Config stores connectivity information for the provider client.
type Config struct {
	BaseURL    string
	Login      string
	Key        string
	HTTPClient *http.Client
	Logger     *slog.Logger
	Metrics    *metrics.Recorder
}

// Client talks to the Streamtape REST API. It is safe for concurrent use; it
// holds only immutable configuration and a shared http.Client.
type Client struct {
	baseURL    string
	login      string
	key        string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Recorder
}

// New constructs a Client from the provided configuration. A default
// http.Client with a 30s timeout is used when none is supplied.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		login:      cfg.Login,
		key:        cfg.Key,
		httpClient: httpClient,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
	}
}

// call performs the shared authenticated request path: merge login/key with
// the caller parameters, issue one GET, and decode the envelope.
func (c *Client) call(ctx context.Context, endpoint string, params url.Values) (*envelope, error) {
	merged := url.Values{}
	merged.Set("login", c.login)
	merged.Set("key", c.key)
	for name, values := range params {
		for _, value := range values {
			merged.Add(name, value)
		}
	}
	return c.do(ctx, endpoint, merged)
}

// callUnauthenticated is the deliberate credential-free path used only for
// the final download link: the ticket alone authorizes the request, and the
// account credentials must never appear on a URL a browser may fetch.
func (c *Client) callUnauthenticated(ctx context.Context, endpoint string, params url.Values) (*envelope, error) {
	return c.do(ctx, endpoint, params)
}

func (c *Client) do(ctx context.Context, endpoint string, params url.Values) (*envelope, error) {
	requestURL := c.baseURL + endpoint
	if encoded := params.Encode(); encoded != "" {
		requestURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build provider request %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(endpoint, "transport_error", start)
		return nil, fmt.Errorf("request provider %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		c.observe(endpoint, "transport_error", start)
		return nil, fmt.Errorf("request provider %s: unexpected response %s", endpoint, resp.Status)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.observe(endpoint, "transport_error", start)
		return nil, fmt.Errorf("decode provider response %s: %w", endpoint, err)
	}

	if env.Status != 200 {
		c.observe(endpoint, "provider_error", start)
		return nil, env.err()
	}

	c.observe(endpoint, "ok", start)
	return &env, nil
}

func (c *Client) observe(endpoint, outcome string, start time.Time) {
	duration := time.Since(start)
	if c.metrics != nil {
		c.metrics.ObserveUpstream(endpoint, outcome, duration)
	}
	if c.logger != nil {
		c.logger.Debug("provider call",
			"endpoint", endpoint,
			"outcome", outcome,
			"duration_ms", duration.Milliseconds(),
		)
	}
}
