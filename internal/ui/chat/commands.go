// Copyright (c) 2025-2026 Ethan Carlin
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ecarlin/parley/internal/api"
)

// =============================================================================
// ASYNC COMMANDS
// =============================================================================

// sendCompletion issues the completion request off the update loop. The
// result is always displayable text; failures arrive as the fixed fallback
// strings.
func sendCompletion(client *api.Client, convID, modelID, text string) tea.Cmd {
	return func() tea.Msg {
		content := client.Complete(context.Background(), modelID, text)
		return ReplyMsg{ConvID: convID, Content: content}
	}
}

// fetchModels refreshes the model list.
func fetchModels(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		models, err := client.ListModels(context.Background())
		return ModelsMsg{Models: models, Err: err}
	}
}

// expireStatus clears the status line after a short delay.
func expireStatus() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return statusExpiredMsg{}
	})
}
