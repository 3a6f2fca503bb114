// Package assistant provides clients for the remote conversational assistant.
// This is part of the platform layer and contains no business logic.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"propertychat_backend/platform/config"
)

// Message is one turn of conversation history sent to the assistant.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is the contract for a single assistant chat call.
type Request struct {
	Message           string      `json:"message"`
	Language          string      `json:"language"`
	Property          interface{} `json:"property,omitempty"`
	UserName          string      `json:"userName"`
	PreviousMessages  []Message   `json:"previousMessages"`
	OneQuestionAtTime bool        `json:"oneQuestionAtTime"`
}

// Response is the assistant's reply. ChatHistory is optional; when present it
// replaces the caller's bookkeeping history.
type Response struct {
	Message     string    `json:"message"`
	ChatHistory []Message `json:"chatHistory,omitempty"`
}

// Client is implemented by all assistant providers.
type Client interface {
	Chat(ctx context.Context, req Request) (Response, error)
}

// EndpointClient talks to a bespoke assistant HTTP endpoint.
type EndpointClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewEndpointClient creates a client for the configured assistant endpoint.
// Returns nil when no endpoint is configured.
func NewEndpointClient(cfg config.AssistantConfig) *EndpointClient {
	if cfg.GetAssistantURL() == "" {
		return nil
	}

	timeout := cfg.GetAssistantTimeout()
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	return &EndpointClient{
		baseURL: strings.TrimRight(cfg.GetAssistantURL(), "/"),
		apiKey:  cfg.GetAssistantAPIKey(),
		http:    &http.Client{Timeout: timeout},
	}
}

// Chat sends one turn to the assistant endpoint.
func (c *EndpointClient) Chat(ctx context.Context, req Request) (Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Response{}, fmt.Errorf("marshal assistant payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBuffer(body))
	if err != nil {
		return Response{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("assistant request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Response{}, fmt.Errorf("assistant service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Response{}, fmt.Errorf("decode assistant response: %w", err)
	}
	if out.Message == "" {
		return Response{}, fmt.Errorf("assistant returned an empty message")
	}

	return out, nil
}

// defaultHTTPTimeout guards against a zero timeout from misconfiguration.
const defaultHTTPTimeout = 20 * time.Second

// Unconfigured is the no-backend client. Every call errors, which callers
// surface as their localized fallback reply.
type Unconfigured struct{}

// Chat always reports the assistant as unavailable.
func (Unconfigured) Chat(context.Context, Request) (Response, error) {
	return Response{}, fmt.Errorf("assistant backend not configured")
}

var _ Client = (*EndpointClient)(nil)
var _ Client = Unconfigured{}
