// Copyright (c) 2025-2026 Ethan Carlin
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/ecarlin/parley/internal/model"
	"github.com/ecarlin/parley/internal/ui/styles"
	"github.com/ecarlin/parley/internal/util"
)

// =============================================================================
// CONVERSATION SIDEBAR
// =============================================================================

// Sidebar renders the conversation list, most recent first.
type Sidebar struct {
	Width  int
	Height int
}

// NewSidebar creates a sidebar with the given dimensions.
func NewSidebar(width, height int) Sidebar {
	return Sidebar{Width: width, Height: height}
}

// Render draws the list. The active conversation is highlighted.
func (s Sidebar) Render(theme *styles.Theme, items []model.ConversationMeta, activeID string) string {
	inner := s.Width - 2
	if inner < 8 {
		inner = 8
	}

	var b strings.Builder
	b.WriteString(theme.SidebarTitle.Render(util.PadWidth("Conversations", inner)))
	b.WriteString("\n\n")

	// Two lines per item plus the header.
	maxItems := (s.Height - 3) / 2
	if maxItems < 1 {
		maxItems = 1
	}

	for i, item := range items {
		if i >= maxItems {
			b.WriteString(theme.Muted.Render(fmt.Sprintf("… %d more", len(items)-maxItems)))
			break
		}

		title := util.PadWidth(item.Title, inner)
		if item.ID == activeID {
			b.WriteString(theme.SidebarItemActive.Render(title))
		} else {
			b.WriteString(theme.SidebarItem.Render(title))
		}
		b.WriteString("\n")

		detail := fmt.Sprintf("%d msgs", item.MessageCount)
		if item.Model != "" {
			detail += " · " + item.Model
		}
		b.WriteString(theme.SidebarItemPreview.Render(util.PadWidth(detail, inner)))
		b.WriteString("\n")
	}

	return theme.Sidebar.Width(s.Width).Height(s.Height).Render(b.String())
}
