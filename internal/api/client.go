// Copyright (c) 2025-2026 Ethan Carlin
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// Default server address. LM Studio listens here out of the box.
const (
	DefaultHost = "localhost"
	DefaultPort = "1234"
)

// ClientConfig holds the server address. Host and port are kept as separate
// strings because both are edited independently in the settings form.
type ClientConfig struct {
	Host string
	Port string
}

// DefaultClientConfig returns the standard local server address.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{Host: DefaultHost, Port: DefaultPort}
}

// fillDefaults replaces empty fields with defaults.
func (c *ClientConfig) fillDefaults() {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == "" {
		c.Port = DefaultPort
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to an OpenAI-compatible completion server. It is stateless
// per call apart from the configured address; requests carry no retries,
// timeouts, or cancellation beyond the caller's context.
type Client struct {
	mu         sync.RWMutex
	config     ClientConfig
	httpClient *http.Client

	// modelsLimiter guards repeated model-list refreshes.
	modelsLimiter *rate.Limiter
}

// NewClient creates a client for the default local server.
func NewClient() *Client {
	return NewClientWithConfig(DefaultClientConfig())
}

// NewClientWithConfig creates a client for the given address. Empty fields
// fall back to defaults.
func NewClientWithConfig(config ClientConfig) *Client {
	config.fillDefaults()
	return &Client{
		config:     config,
		httpClient: &http.Client{},
		// One refresh per 2 seconds sustained, short bursts allowed.
		modelsLimiter: rate.NewLimiter(rate.Limit(0.5), 3),
	}
}

// SetServer updates the server address for subsequent requests.
func (c *Client) SetServer(host, port string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config = ClientConfig{Host: host, Port: port}
	c.config.fillDefaults()
}

// BaseURL returns the server base URL, e.g. "http://localhost:1234".
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return fmt.Sprintf("http://%s:%s", c.config.Host, c.config.Port)
}

// =============================================================================
// COMPLETIONS
// =============================================================================

// CreateCompletion sends a single-message completion request and returns the
// first choice's content. The request body carries only the given text, not
// prior conversation turns. Returns a ClientError on failure; ErrNoContent
// when the server answered without content.
func (c *Client) CreateCompletion(ctx context.Context, modelID, text string) (string, error) {
	reqBody := CompletionRequest{
		Model:    modelID,
		Messages: []ChatMessage{{Role: "user", Content: text}},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", newError(ErrTypeRequest, "marshal completion request", err)
	}

	url := c.BaseURL() + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", newError(ErrTypeRequest, "build completion request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", newError(ErrTypeConnection, "completion request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", newError(ErrTypeConnection, "read completion response", err)
	}

	// The status code is deliberately not checked: any body that decodes
	// is inspected for content, and a decodable body without content maps
	// to the empty-response fallback rather than the failure fallback.
	var parsed CompletionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", newError(ErrTypeParse, "decode completion response", err)
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", newError(ErrTypeEmpty, "completion response had no content", nil)
	}

	return parsed.Choices[0].Message.Content, nil
}

// Complete is the UI-facing variant of CreateCompletion: it always returns
// displayable assistant text, collapsing failures into the fixed fallback
// strings.
func (c *Client) Complete(ctx context.Context, modelID, text string) string {
	content, err := c.CreateCompletion(ctx, modelID, text)
	if err == nil {
		return content
	}
	if errors.Is(err, ErrNoContent) {
		return FallbackNoContent
	}
	return FallbackRequestFailed
}

// =============================================================================
// MODELS
// =============================================================================

// ListModels fetches the ids of the models the server exposes, in server
// order. Callers keep their previous list when this fails.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	if !c.modelsLimiter.Allow() {
		return nil, newError(ErrTypeThrottled, "model list refresh throttled", nil)
	}

	url := c.BaseURL() + "/v1/models"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, newError(ErrTypeRequest, "build models request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newError(ErrTypeConnection, "models request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newError(ErrTypeConnection, "read models response", err)
	}

	var parsed ModelsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, newError(ErrTypeParse, "decode models response", err)
	}

	models := make([]string, 0, len(parsed.Data))
	for _, entry := range parsed.Data {
		models = append(models, entry.ID)
	}
	return models, nil
}
