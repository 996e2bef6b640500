// Copyright (c) 2025-2026 Ethan Carlin
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the conversation list, the active conversation, and
// the server settings, persisting all of it through the key-value store.
package session

// =============================================================================
// SETTINGS
// =============================================================================

// Settings is the server address used for requests. Host and port are
// strings; the settings form edits them as text.
type Settings struct {
	Host string `json:"host"`
	Port string `json:"port"`
}

// DefaultSettings returns the standard local server address.
func DefaultSettings() Settings {
	return Settings{Host: "localhost", Port: "1234"}
}

// fillDefaults replaces empty fields with defaults.
func (s *Settings) fillDefaults() {
	if s.Host == "" {
		s.Host = "localhost"
	}
	if s.Port == "" {
		s.Port = "1234"
	}
}
