// Package remote is the HTTP JSON client for the remote service.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"quest/config"
	"quest/internal/domain/service"
	"quest/internal/errors"

	"go.uber.org/fx"
)

const maxResponseBodySize = 10 << 20

var errEmptyBody = errors.New("empty response body")

// Params holds dependencies for the remote client, injected by Fx
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client, e.g. with a mock transport.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// Client implements service.RemoteClient over net/http.
type Client struct {
	baseURL       string
	timeout       time.Duration
	probeEndpoint string
	probeTimeout  time.Duration
	headers       map[string]string
	httpClient    *http.Client
	logger        *slog.Logger
}

// New creates the remote client from configuration
func New(params Params) service.RemoteClient {
	return NewClient(params.Config.Remote, params.Logger)
}

// NewClient creates a client for cfg. The request deadline is enforced per call
// through the request context, so the http.Client itself carries no timeout.
func NewClient(cfg *config.RemoteConfig, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		timeout:       cfg.Timeout,
		probeEndpoint: cfg.ProbeEndpoint,
		probeTimeout:  cfg.ProbeTimeout,
		headers:       cfg.Headers,
		httpClient:    &http.Client{},
		logger:        logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Call sends one JSON request and decodes a 2xx response into out.
func (c *Client) Call(ctx context.Context, method, endpoint string, query url.Values, body, out any) error {
	return c.do(ctx, c.timeout, method, endpoint, query, body, out)
}

// Probe issues a GET against the probe endpoint and discards the body.
func (c *Client) Probe(ctx context.Context) error {
	return c.do(ctx, c.probeTimeout, http.MethodGet, c.probeEndpoint, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, timeout time.Duration, method, endpoint string, query url.Values, body, out any) error {
	fail := func(status int, respBody []byte, cause error) error {
		return &Error{
			Method:     method,
			Endpoint:   endpoint,
			StatusCode: status,
			Body:       truncateBody(respBody),
			Cause:      cause,
		}
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fail(0, nil, errors.Wrap(err, "encode request body"))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(endpoint, query), reader)
	if err != nil {
		return fail(0, nil, errors.WithStack(err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(0, nil, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return fail(resp.StatusCode, nil, errors.Wrap(err, "read response body"))
	}

	c.logger.Debug("Remote call finished",
		slog.String("method", method),
		slog.String("endpoint", endpoint),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fail(resp.StatusCode, respBody, nil)
	}

	if out == nil {
		return nil
	}

	if len(bytes.TrimSpace(respBody)) == 0 {
		return fail(resp.StatusCode, respBody, errEmptyBody)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fail(resp.StatusCode, respBody, errors.Wrap(err, "malformed JSON response"))
	}

	return nil
}

func (c *Client) buildURL(endpoint string, query url.Values) string {
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}

	target := c.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	return target
}
