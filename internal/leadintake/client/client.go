// Package client posts accepted leads to the external intake service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"propertychat_backend/internal/leadintake/transport"
	"propertychat_backend/platform/apperr"
	"propertychat_backend/platform/config"
)

const defaultTimeout = 15 * time.Second

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New builds an intake client. Returns nil when no intake URL is
// configured; callers treat a nil client as intake unavailable.
func New(cfg config.IntakeConfig) *Client {
	if cfg.GetIntakeURL() == "" {
		return nil
	}

	timeout := cfg.GetIntakeTimeout()
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.GetIntakeURL(), "/"),
		apiKey:  cfg.GetIntakeAPIKey(),
		http:    &http.Client{Timeout: timeout},
	}
}

// Submit posts the lead envelope. The intake service's response body is
// opaque; anything under 400 counts as accepted.
func (c *Client) Submit(ctx context.Context, submission transport.LeadSubmission) error {
	if c == nil {
		return apperr.Unavailable("lead intake not configured")
	}

	body, err := json.Marshal(submission)
	if err != nil {
		return fmt.Errorf("marshal lead submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("lead intake request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("lead intake returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	return nil
}
