// Copyright (c) 2025-2026 Ethan Carlin
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ecarlin/parley/internal/model"
	"github.com/ecarlin/parley/internal/ui/components"
)

// sidebarWidth is the fixed width of the conversation list column.
const sidebarWidth = 28

// =============================================================================
// LAYOUT
// =============================================================================

// layout recomputes widget dimensions from the window size.
func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}

	chatWidth := m.width
	if m.showSidebar {
		chatWidth -= sidebarWidth
	}
	if chatWidth < 20 {
		chatWidth = 20
	}

	// Header, input box (3 lines with border), status bar.
	bodyHeight := m.height - 1 - 3 - 1
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	m.viewport.Width = chatWidth
	m.viewport.Height = bodyHeight
	m.input.Width = chatWidth - 6
	m.markdown.SetWidth(chatWidth - 2)
}

// refreshViewport re-renders the active conversation into the viewport and
// scrolls to the bottom.
func (m *Model) refreshViewport() {
	active, ok := m.store.Active()
	if !ok {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(m.renderConversation(active))
	m.viewport.GotoBottom()
}

// renderConversation renders all messages of a conversation.
func (m *Model) renderConversation(conv model.Conversation) string {
	if len(conv.Messages) == 0 {
		return m.theme.Muted.Render("\n  Say something to get started.")
	}

	var b strings.Builder
	for _, msg := range conv.Messages {
		ts := m.theme.MessageTime.Render(msg.Timestamp.Format("15:04"))
		if msg.Role == model.RoleUser {
			b.WriteString(m.theme.UserLabel.Render("You") + " " + ts + "\n")
			b.WriteString(m.theme.MessageBody.Render(msg.Content))
		} else {
			b.WriteString(m.theme.AssistantLabel.Render("Assistant") + " " + ts + "\n")
			b.WriteString(m.renderAssistant(msg.Content))
		}
		b.WriteString("\n\n")
	}
	return b.String()
}

// renderAssistant renders a reply as markdown, or plain text with
// highlighted code fences when markdown is toggled off.
func (m *Model) renderAssistant(content string) string {
	if m.markdownEnabled {
		return m.markdown.Render(content)
	}
	return components.HighlightFences(content, m.theme.ChromaStyle())
}

// =============================================================================
// VIEW
// =============================================================================

// View draws the full screen.
func (m Model) View() string {
	if m.width <= 0 {
		return "starting..."
	}

	switch m.mode {
	case modeSettings:
		return m.viewOverlay(m.viewSettings())
	case modeModels:
		return m.viewOverlay(m.viewModels())
	case modeHelp:
		return m.viewOverlay(m.viewHelp())
	}

	header := m.viewHeader()
	body := m.viewport.View()
	if m.showSidebar {
		sidebar := components.NewSidebar(sidebarWidth, m.viewport.Height).
			Render(m.theme, m.store.List(), m.store.ActiveID())
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, body)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		m.viewInput(),
		m.viewStatusBar(),
	)
}

func (m Model) viewHeader() string {
	title := m.theme.HeaderTitle.Render("parley")
	sub := ""
	if active, ok := m.store.Active(); ok {
		sub = m.theme.Muted.Render("  " + active.Title)
	}
	return m.theme.Header.Width(m.width).Render(title + sub)
}

func (m Model) viewInput() string {
	prompt := m.theme.Prompt.Render("> ")
	if m.waiting {
		prompt = m.spinner.View() + " "
	}
	return m.theme.InputContainer.Width(m.width - 2).Render(prompt + m.input.View())
}

func (m Model) viewStatusBar() string {
	settings := m.store.Settings()
	bar := components.StatusBar{Width: m.width}
	return bar.Render(m.theme, components.StatusInfo{
		Host:    settings.Host,
		Port:    settings.Port,
		Model:   m.activeModel(),
		Waiting: m.waiting,
		Message: m.status,
	})
}

// viewOverlay centers a box on the screen.
func (m Model) viewOverlay(content string) string {
	box := m.theme.OverlayBox.Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// =============================================================================
// OVERLAY SCREENS
// =============================================================================

func (m Model) viewSettings() string {
	var b strings.Builder
	b.WriteString(m.theme.OverlayTitle.Render("Server Settings"))
	b.WriteString("\n\n")

	hostLabel := m.theme.FieldLabel.Render("Host ")
	portLabel := m.theme.FieldLabel.Render("Port ")
	if m.settingsFocus == 0 {
		hostLabel = m.theme.FieldFocused.Render("Host ")
	} else {
		portLabel = m.theme.FieldFocused.Render("Port ")
	}

	b.WriteString(hostLabel + m.hostInput.View() + "\n")
	b.WriteString(portLabel + m.portInput.View() + "\n\n")
	b.WriteString(m.theme.Muted.Render("tab switch · enter save · esc cancel"))
	return b.String()
}

func (m Model) viewModels() string {
	var b strings.Builder
	b.WriteString(m.theme.OverlayTitle.Render("Models"))
	b.WriteString("\n\n")

	if len(m.models) == 0 {
		b.WriteString(m.theme.Muted.Render("no models, is the server running?"))
	}

	current := m.activeModel()
	for i, id := range m.models {
		line := id
		if id == current {
			line += " (current)"
		}
		if i == m.modelCursor {
			b.WriteString(m.theme.ListSelected.Render("▸ " + line))
		} else {
			b.WriteString(m.theme.ListItem.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Muted.Render("↑/↓ move · enter select · r refresh · esc close"))
	return b.String()
}

func (m Model) viewHelp() string {
	var b strings.Builder
	b.WriteString(m.theme.OverlayTitle.Render("Help"))
	b.WriteString("\n\n")

	for _, cmd := range helpCommands() {
		b.WriteString(fmt.Sprintf("%s  %s\n",
			m.theme.HelpCommand.Render(fmt.Sprintf("%-24s", cmd[0])),
			m.theme.HelpDesc.Render(cmd[1])))
	}

	b.WriteString("\n")
	keys := []struct{ key, desc string }{
		{m.keys.NewChat.Help().Key, m.keys.NewChat.Help().Desc},
		{m.keys.PrevConv.Help().Key + "/" + m.keys.NextConv.Help().Key, "switch chat"},
		{m.keys.DeleteConv.Help().Key, m.keys.DeleteConv.Help().Desc},
		{m.keys.ToggleSidebar.Help().Key, m.keys.ToggleSidebar.Help().Desc},
		{m.keys.Models.Help().Key, m.keys.Models.Help().Desc},
		{m.keys.Settings.Help().Key, m.keys.Settings.Help().Desc},
		{m.keys.ToggleMarkdown.Help().Key, "toggle markdown"},
		{m.keys.Quit.Help().Key, m.keys.Quit.Help().Desc},
	}
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("%s  %s\n",
			m.theme.HelpCommand.Render(fmt.Sprintf("%-24s", k.key)),
			m.theme.HelpDesc.Render(k.desc)))
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Muted.Render("press any key to close"))
	return b.String()
}

// helpCommands lists the slash commands shown in help.
func helpCommands() [][2]string {
	return [][2]string{
		{"/new", "start a new conversation"},
		{"/models", "pick a model"},
		{"/settings", "edit server host and port"},
		{"/theme <dark|light|auto>", "switch theme"},
		{"/export [file]", "export the conversation"},
		{"/clear", "delete all conversations"},
		{"/help", "show this help"},
	}
}
