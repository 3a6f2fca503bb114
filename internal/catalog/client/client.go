// Package client fetches listings from the upstream property feed.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"propertychat_backend/internal/catalog/transport"
	"propertychat_backend/platform/apperr"
	"propertychat_backend/platform/config"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a feed client. Returns nil when no feed URL is configured;
// callers treat a nil client as "no listing available".
func New(cfg config.CatalogConfig) *Client {
	if cfg.GetCatalogURL() == "" {
		return nil
	}

	timeout := cfg.GetCatalogTimeout()
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.GetCatalogURL(), "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// FetchListing retrieves the current listing from the feed.
func (c *Client) FetchListing(ctx context.Context) (*transport.ListingPayload, error) {
	if c == nil {
		return nil, apperr.Unavailable("property feed not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("property feed request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("property feed returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var envelope transport.ListingResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode property feed response: %w", err)
	}
	if !envelope.Success || envelope.Data == nil {
		return nil, apperr.NotFound("no listing published")
	}

	return envelope.Data, nil
}
