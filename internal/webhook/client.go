package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Client delivers upload records to a webhook endpoint
type Client struct {
	httpClient *http.Client
	config     *Config
	log        *slog.Logger
}

// NewClient creates a new webhook client. log may be nil.
func NewClient(config *Config, log *slog.Logger) *Client {
	if config.Method == "" {
		config.Method = http.MethodPost
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Client{
		httpClient: &http.Client{},
		config:     config,
		log:        log.With("component", "webhook"),
	}
}

// Send makes one delivery attempt of payload as JSON. Any non-2xx status is an error.
func (c *Client) Send(ctx context.Context, payload any) error {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	c.log.Debug("sending webhook", "method", c.config.Method, "url", c.config.URL, "bytes", len(jsonPayload))
	statusCode, err := c.sendRequest(ctx, jsonPayload)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("webhook timeout after %s: %w", c.config.Timeout, err)
		}
		return fmt.Errorf("webhook request failed: %w", err)
	}
	if statusCode < 200 || statusCode >= 300 {
		return fmt.Errorf("webhook failed with status %d", statusCode)
	}

	c.log.Debug("webhook delivered", "status", statusCode)
	return nil
}

func (c *Client) sendRequest(ctx context.Context, payload []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, c.config.Method, c.config.URL, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}

	// Set headers
	req.Header.Set("Content-Type", "application/json")
	for k, v := range c.config.Headers {
		req.Header.Set(k, v)
	}

	// Set authentication
	switch c.config.AuthType {
	case AuthBearer:
		req.Header.Set("Authorization", "Bearer "+c.config.AuthToken)
	case AuthAPIKey:
		req.Header.Set("X-API-Key", c.config.AuthToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	// Drain response body to reuse connection
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}
