// Copyright (c) 2025-2026 Ethan Carlin
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the core chat data structures shared across the
// application: messages, conversations, and their metadata.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/ecarlin/parley/internal/util"
)

// =============================================================================
// ROLES
// =============================================================================

// Role identifies the author of a message.
type Role string

const (
	// RoleUser marks messages typed by the user.
	RoleUser Role = "user"

	// RoleAssistant marks replies from the completion server, including
	// the fixed fallback texts shown when a request fails.
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// =============================================================================
// MESSAGE
// =============================================================================

// Message is a single chat message. Messages are immutable once appended to
// a conversation; they are never edited or removed.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage creates a message with a fresh id and the current time.
func NewMessage(role Role, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage creates an assistant message.
func NewAssistantMessage(content string) Message {
	return NewMessage(RoleAssistant, content)
}

// Preview returns the first line of the content shortened to max runes, for
// list displays.
func (m Message) Preview(max int) string {
	return util.TruncateRunes(util.FirstLine(m.Content), max)
}
