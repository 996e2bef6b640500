// Copyright (c) 2025-2026 Ethan Carlin
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/ecarlin/parley/internal/ui/styles"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// StatusBar renders the bottom line: server address, model, activity, and a
// transient status message.
type StatusBar struct {
	Width int
}

// StatusInfo is what the bar displays.
type StatusInfo struct {
	Host    string
	Port    string
	Model   string
	Waiting bool
	Message string
}

// Render draws the bar at the configured width.
func (s StatusBar) Render(theme *styles.Theme, info StatusInfo) string {
	var parts []string

	parts = append(parts,
		theme.StatusKey.Render("server ")+theme.StatusValue.Render(info.Host+":"+info.Port))

	modelName := info.Model
	if modelName == "" {
		modelName = "none"
	}
	parts = append(parts,
		theme.StatusKey.Render("model ")+theme.StatusValue.Render(modelName))

	if info.Waiting {
		parts = append(parts, theme.Spinner.Render("waiting"))
	}

	if info.Message != "" {
		parts = append(parts, theme.StatusError.Render(info.Message))
	}

	line := strings.Join(parts, theme.StatusKey.Render("  │  "))
	return theme.StatusBar.Width(s.Width).MaxWidth(s.Width).Render(line)
}
