// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mia-platform/hookctl/internal/info"
	"github.com/mia-platform/hookctl/internal/logger"
	"github.com/mia-platform/hookctl/internal/webhook"
)

const (
	loggerName = "hookctl:client"

	requestIDHeader = "X-Request-Id"

	statusCodeErrorRangeStart = 400
)

// Doer sends a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(request *http.Request) (*http.Response, error)
}

// Option customizes a Client built by New.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client, and with it the cookie jar and token handling.
func WithHTTPClient(doer Doer) Option {
	return func(c *Client) {
		c.doer = doer
	}
}

// WithLocalizer replaces the Localizer built from Config.Language.
func WithLocalizer(localizer Localizer) Option {
	return func(c *Client) {
		c.localizer = localizer
	}
}

// Client calls the webhook management API. It is safe for concurrent use:
// calls share only the underlying HTTP client.
type Client struct {
	endpoint  string
	localizer Localizer
	doer      Doer
}

// NewFromEnv returns a Client configured from environment variables.
func NewFromEnv(opts ...Option) (*Client, error) {
	config, err := LoadConfigFromEnv()
	if err != nil {
		return nil, handleError(err)
	}

	return New(*config, opts...)
}

// New returns a Client for config. The configuration is copied and validated.
func New(config Config, opts ...Option) (*Client, error) {
	if err := config.validate(); err != nil {
		return nil, handleError(err)
	}

	client := &Client{
		endpoint: config.Endpoint,
	}
	for _, opt := range opts {
		opt(client)
	}

	if client.localizer == nil {
		locale, err := NewLocale(config.Language)
		if err != nil {
			return nil, handleError(err)
		}
		client.localizer = locale
	}

	if client.doer == nil {
		httpClient, err := newHTTPClient(context.Background(), &config)
		if err != nil {
			return nil, handleError(err)
		}
		client.doer = httpClient
	}

	return client, nil
}

// List returns the webhooks matching query. Filtering, sorting and pagination
// are applied by the server.
func (c *Client) List(ctx context.Context, query webhook.ListQuery) (*webhook.List, error) {
	list := new(webhook.List)
	if err := c.do(ctx, http.MethodGet, listPath, listQuery(query), nil, list); err != nil {
		return nil, err
	}

	return list, nil
}

// Get returns the webhook identified by owner and name within organization.
func (c *Client) Get(ctx context.Context, owner, organization, name string) (*webhook.Single, error) {
	single := new(webhook.Single)
	if err := c.do(ctx, http.MethodGet, getPath, getQuery(owner, organization, name), nil, single); err != nil {
		return nil, err
	}

	return single, nil
}

// Add creates hook on the server.
func (c *Client) Add(ctx context.Context, hook webhook.Webhook) (*webhook.Response, error) {
	return c.send(ctx, addPath, "", hook)
}

// Update replaces the webhook stored under owner and name with hook.
func (c *Client) Update(ctx context.Context, owner, name string, hook webhook.Webhook) (*webhook.Response, error) {
	return c.send(ctx, updatePath, updateQuery(owner, name), hook)
}

// Delete removes the webhook identified by the Owner and Name of hook.
func (c *Client) Delete(ctx context.Context, hook webhook.Webhook) (*webhook.Response, error) {
	return c.send(ctx, deletePath, "", hook)
}

// send posts a private copy of hook so the caller's slices are never shared with the encoder.
func (c *Client) send(ctx context.Context, path, query string, hook webhook.Webhook) (*webhook.Response, error) {
	payload, err := hook.Clone()
	if err != nil {
		return nil, handleError(err)
	}

	response := new(webhook.Response)
	if err := c.do(ctx, http.MethodPost, path, query, payload, response); err != nil {
		return nil, err
	}

	return response, nil
}

// do performs one request and decodes the JSON response body into out.
func (c *Client) do(ctx context.Context, method, path, query string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return handleError(err)
		}
		body = bytes.NewReader(encoded)
	}

	target := c.endpoint + path
	if query != "" {
		target += "?" + query
	}

	request, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return handleError(err)
	}

	requestID := uuid.NewString()
	request.Header.Set("User-Agent", userAgentString())
	request.Header.Set("Accept", "application/json")
	request.Header.Set("Accept-Language", c.localizer.AcceptLanguage())
	request.Header.Set(requestIDHeader, requestID)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	log := logger.FromContext(ctx).WithName(loggerName).With("requestId", requestID, "method", method, "path", path)
	start := time.Now()

	resp, err := c.doer.Do(request)
	if err != nil {
		log.Error("request failed", "error", err.Error())
		return handleError(err)
	}
	defer resp.Body.Close()

	log.Debug("request completed", "status", resp.StatusCode, "duration", time.Since(start).Milliseconds())

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return handleError(err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		if resp.StatusCode >= statusCodeErrorRangeStart {
			return handleError(fmt.Errorf("%w: %s", errUnexpectedStatus, resp.Status))
		}
		return handleError(fmt.Errorf("%w: %w", errInvalidResponse, err))
	}

	return nil
}

// userAgentString builds the User-Agent header sent with every request.
func userAgentString() string {
	return info.AppName + "/" + info.Version
}
