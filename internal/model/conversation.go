// Copyright (c) 2025-2026 Ethan Carlin
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// =============================================================================
// CONSTANTS
// =============================================================================

// DefaultTitle is the placeholder title given to a new conversation. A
// conversation is auto-titled from its first user message only while its
// title still equals this value.
const DefaultTitle = "New Conversation"

// TitleMaxRunes is the rune budget for an auto-derived title before the
// "..." suffix is appended.
const TitleMaxRunes = 30

// =============================================================================
// CONVERSATION
// =============================================================================

// Conversation is an ordered list of messages with a title and an optional
// model selection. The Model may be empty; sending requires one.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	Model     string    `json:"model,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewConversation creates an empty conversation with a random id, the
// placeholder title, and the given model (carried over from the previously
// active conversation, possibly empty).
func NewConversation(modelID string) *Conversation {
	return &Conversation{
		ID:        generateConversationID(),
		Title:     DefaultTitle,
		Messages:  []Message{},
		Model:     modelID,
		UpdatedAt: time.Now(),
	}
}

// generateConversationID returns a collision-resistant random id of the form
// conv_<16 hex chars>.
func generateConversationID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms; fall back to a
		// timestamp id rather than panic.
		return "conv_" + hex.EncodeToString([]byte(time.Now().Format("150405.000")))[:16]
	}
	return "conv_" + hex.EncodeToString(b)
}

// Append adds a message and bumps the conversation timestamp.
func (c *Conversation) Append(msg Message) {
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty reports whether the conversation has no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// FirstUserMessage returns the first user message, if any.
func (c *Conversation) FirstUserMessage() (Message, bool) {
	for _, m := range c.Messages {
		if m.Role == RoleUser {
			return m, true
		}
	}
	return Message{}, false
}

// LastMessage returns the most recent message, if any.
func (c *Conversation) LastMessage() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}

// DeriveTitle computes an auto title from content: content longer than
// TitleMaxRunes runes is cut to the first TitleMaxRunes runes with "..."
// appended; shorter content is used verbatim.
func DeriveTitle(content string) string {
	runes := []rune(content)
	if len(runes) > TitleMaxRunes {
		return string(runes[:TitleMaxRunes]) + "..."
	}
	return content
}

// =============================================================================
// LIST METADATA
// =============================================================================

// ConversationMeta is the summary shown in the sidebar list.
type ConversationMeta struct {
	ID           string
	Title        string
	Model        string
	MessageCount int
	Preview      string
	UpdatedAt    time.Time
}

// Meta returns the list summary for the conversation.
func (c *Conversation) Meta() ConversationMeta {
	meta := ConversationMeta{
		ID:           c.ID,
		Title:        c.Title,
		Model:        c.Model,
		MessageCount: len(c.Messages),
		UpdatedAt:    c.UpdatedAt,
	}
	if last, ok := c.LastMessage(); ok {
		meta.Preview = last.Preview(40)
	}
	return meta
}
