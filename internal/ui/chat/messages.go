// Copyright (c) 2025-2026 Ethan Carlin
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the main conversation screen of the parley TUI.
package chat

// =============================================================================
// ASYNC MESSAGES
// =============================================================================

// ReplyMsg carries a completed (or fallback) assistant reply back into the
// update loop. ConvID is the conversation the request was sent from; the
// reply is applied there, or discarded when that conversation is gone.
type ReplyMsg struct {
	ConvID  string
	Content string
}

// ModelsMsg carries the result of a model-list refresh. On error the
// previous list is kept.
type ModelsMsg struct {
	Models []string
	Err    error
}

// ThemeMsg switches the theme at runtime (from /theme or a config reload).
type ThemeMsg struct {
	Mode string
}

// statusExpiredMsg clears the transient status message.
type statusExpiredMsg struct{}
