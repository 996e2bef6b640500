// Copyright (c) 2025-2026 Ethan Carlin
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the HTTP client for OpenAI-compatible completion
// servers such as LM Studio.
package api

// =============================================================================
// FALLBACK TEXT
// =============================================================================

// Fallback strings shown as assistant messages. Request failures never
// propagate past the client boundary; they surface as displayable text.
const (
	// FallbackNoContent is shown when the server answered but the response
	// carried no message content.
	FallbackNoContent = "No response from AI"

	// FallbackRequestFailed is shown when the request could not be made or
	// the response could not be parsed.
	FallbackRequestFailed = "Sorry, there was an error processing your request."
)

// =============================================================================
// WIRE TYPES
// =============================================================================

// ChatMessage is a single message in a completion request or response.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the body of POST /v1/chat/completions. Only the
// latest user message is sent; prior turns are never included.
type CompletionRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

// CompletionChoice is one candidate reply.
type CompletionChoice struct {
	Message ChatMessage `json:"message"`
}

// CompletionResponse is the body of a completion reply. Only the first
// choice is consulted.
type CompletionResponse struct {
	Choices []CompletionChoice `json:"choices"`
}

// ModelEntry is one entry of GET /v1/models.
type ModelEntry struct {
	ID string `json:"id"`
}

// ModelsResponse is the body of GET /v1/models.
type ModelsResponse struct {
	Data []ModelEntry `json:"data"`
}
