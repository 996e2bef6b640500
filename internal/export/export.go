// Copyright (c) 2025-2026 Ethan Carlin
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes conversations to files for use outside the app.
package export

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ecarlin/parley/internal/model"
	"github.com/ecarlin/parley/internal/util"
)

// =============================================================================
// FORMATS
// =============================================================================

// Format selects the output representation.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// FormatForPath picks a format from the file extension. ".json" selects
// JSON; everything else gets markdown.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatMarkdown
}

// =============================================================================
// RENDERING
// =============================================================================

// Markdown renders the conversation as a markdown transcript.
func Markdown(conv model.Conversation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", conv.Title)
	if conv.Model != "" {
		fmt.Fprintf(&b, "Model: %s\n\n", conv.Model)
	}
	fmt.Fprintf(&b, "Updated: %s\n\n---\n\n", conv.UpdatedAt.Format("2006-01-02 15:04"))

	for _, msg := range conv.Messages {
		label := "Assistant"
		if msg.Role == model.RoleUser {
			label = "You"
		}
		fmt.Fprintf(&b, "## %s (%s)\n\n%s\n\n", label, msg.Timestamp.Format("15:04:05"), msg.Content)
	}

	return b.String()
}

// JSON renders the conversation as indented JSON.
func JSON(conv model.Conversation) ([]byte, error) {
	data, err := json.MarshalIndent(conv, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal conversation: %w", err)
	}
	return data, nil
}

// WriteFile exports the conversation to path, picking the format from the
// extension. The write is atomic.
func WriteFile(conv model.Conversation, path string) error {
	var data []byte
	switch FormatForPath(path) {
	case FormatJSON:
		out, err := JSON(conv)
		if err != nil {
			return err
		}
		data = out
	default:
		data = []byte(Markdown(conv))
	}
	return util.AtomicWriteFile(path, data, 0600)
}

// DefaultFilename suggests a filename for the conversation.
func DefaultFilename(conv model.Conversation, format Format) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, strings.ToLower(conv.Title))
	if name == "" {
		name = conv.ID
	}

	ext := ".md"
	if format == FormatJSON {
		ext = ".json"
	}
	return name + ext
}
