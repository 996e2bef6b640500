// Copyright (c) 2025-2026 Ethan Carlin
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ecarlin/parley/internal/commands"
	"github.com/ecarlin/parley/internal/export"
	"github.com/ecarlin/parley/internal/ui/components"
	"github.com/ecarlin/parley/internal/ui/styles"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.refreshViewport()
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ReplyMsg:
		m.waiting = false
		if !m.store.ApplyReply(msg.ConvID, msg.Content) {
			m.logger.Event("stale_reply_dropped", msg.ConvID)
		}
		m.refreshViewport()
		return m, nil

	case ModelsMsg:
		if msg.Err != nil {
			// Log-only: the previous list stays and nothing is shown.
			m.logger.Error("models_fetch_failed", msg.Err, m.client.BaseURL())
			return m, nil
		}
		m.models = msg.Models
		if m.modelCursor >= len(m.models) {
			m.modelCursor = 0
		}
		return m, nil

	case ThemeMsg:
		m.applyTheme(msg.Mode)
		return m, nil

	case statusExpiredMsg:
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeSettings:
			return m.updateSettings(msg)
		case modeModels:
			return m.updateModels(msg)
		case modeHelp:
			m.mode = modeChat
			return m, nil
		default:
			return m.updateChat(msg)
		}
	}

	return m, nil
}

// =============================================================================
// CHAT MODE KEYS
// =============================================================================

func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.mode = modeHelp
		return m, nil

	case key.Matches(msg, m.keys.NewChat):
		m.store.NewConversation()
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keys.NextConv):
		m.cycleConversation(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevConv):
		m.cycleConversation(-1)
		return m, nil

	case key.Matches(msg, m.keys.DeleteConv):
		m.store.Delete(m.store.ActiveID())
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keys.ToggleSidebar):
		m.showSidebar = !m.showSidebar
		m.layout()
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keys.Models):
		m.mode = modeModels
		return m, fetchModels(m.client)

	case key.Matches(msg, m.keys.Settings):
		m.openSettings()
		return m, nil

	case key.Matches(msg, m.keys.ToggleMarkdown):
		m.markdownEnabled = !m.markdownEnabled
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keys.ScrollUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.ScrollDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keys.Send):
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit handles enter: slash commands run immediately, anything else is
// sent to the completion server.
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	if result := m.parser.Parse(text); result.IsCommand {
		m.input.SetValue("")
		return m.runCommand(result)
	}

	// Sends are serialized: one completion in flight at a time.
	if m.waiting {
		cmd := m.setStatus("still waiting for a reply")
		return m, cmd
	}

	// No model selected: nothing is sent and nothing changes.
	modelID := m.activeModel()
	if modelID == "" {
		cmd := m.setStatus("no model selected, use /models")
		return m, cmd
	}

	convID, ok := m.store.AppendUserMessage(text)
	if !ok {
		return m, nil
	}

	m.input.SetValue("")
	m.waiting = true
	m.refreshViewport()
	return m, tea.Batch(
		m.spinner.Tick,
		sendCompletion(m.client, convID, modelID, text),
	)
}

// runCommand executes a parsed slash command.
func (m Model) runCommand(result commands.ParseResult) (tea.Model, tea.Cmd) {
	if result.Command == nil {
		cmd := m.setStatus("unknown command " + result.CommandName)
		return m, cmd
	}

	switch result.Command.Name {
	case commands.CmdNew:
		m.store.NewConversation()
		m.refreshViewport()
		return m, nil

	case commands.CmdModels:
		m.mode = modeModels
		return m, fetchModels(m.client)

	case commands.CmdSettings:
		m.openSettings()
		return m, nil

	case commands.CmdTheme:
		if len(result.Args) != 1 {
			cmd := m.setStatus("usage: " + result.Command.Usage)
			return m, cmd
		}
		mode := result.Args[0]
		if mode != "dark" && mode != "light" && mode != "auto" {
			cmd := m.setStatus("usage: " + result.Command.Usage)
			return m, cmd
		}
		m.applyTheme(mode)
		return m, nil

	case commands.CmdExport:
		active, ok := m.store.Active()
		if !ok {
			return m, nil
		}
		path := result.RawArgs
		if path == "" {
			path = export.DefaultFilename(active, export.FormatMarkdown)
		}
		if err := export.WriteFile(active, path); err != nil {
			m.logger.Error("export_failed", err, path)
			cmd := m.setStatus("export failed")
			return m, cmd
		}
		cmd := m.setStatus("exported to " + path)
		return m, cmd

	case commands.CmdClear:
		m.store.Clear()
		m.refreshViewport()
		return m, nil

	case commands.CmdHelp:
		m.mode = modeHelp
		return m, nil
	}

	return m, nil
}

// cycleConversation switches to the neighbor in the list.
func (m *Model) cycleConversation(delta int) {
	list := m.store.List()
	if len(list) < 2 {
		return
	}
	activeID := m.store.ActiveID()
	for i, meta := range list {
		if meta.ID == activeID {
			next := (i + delta + len(list)) % len(list)
			m.store.Switch(list[next].ID)
			break
		}
	}
	m.refreshViewport()
}

// =============================================================================
// SETTINGS MODE
// =============================================================================

// openSettings seeds the pending form from the active settings.
func (m *Model) openSettings() {
	settings := m.store.Settings()
	m.hostInput.SetValue(settings.Host)
	m.portInput.SetValue(settings.Port)
	m.settingsFocus = 0
	m.hostInput.Focus()
	m.portInput.Blur()
	m.mode = modeSettings
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Discard pending edits.
		m.mode = modeChat
		return m, nil

	case "tab", "shift+tab", "up", "down":
		m.settingsFocus = 1 - m.settingsFocus
		if m.settingsFocus == 0 {
			m.hostInput.Focus()
			m.portInput.Blur()
		} else {
			m.portInput.Focus()
			m.hostInput.Blur()
		}
		return m, nil

	case "enter":
		return m.saveSettings()

	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	if m.settingsFocus == 0 {
		m.hostInput, cmd = m.hostInput.Update(msg)
	} else {
		m.portInput, cmd = m.portInput.Update(msg)
	}
	return m, cmd
}

// saveSettings commits the pending form, repoints the client, and refreshes
// the model list against the new server.
func (m Model) saveSettings() (tea.Model, tea.Cmd) {
	settings := m.store.Settings()
	settings.Host = strings.TrimSpace(m.hostInput.Value())
	settings.Port = strings.TrimSpace(m.portInput.Value())

	m.store.UpdateSettings(settings)
	saved := m.store.Settings()
	m.client.SetServer(saved.Host, saved.Port)

	m.mode = modeChat
	statusCmd := m.setStatus("settings saved")
	return m, tea.Batch(statusCmd, fetchModels(m.client))
}

// =============================================================================
// MODEL PICKER MODE
// =============================================================================

func (m Model) updateModels(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeChat
		return m, nil

	case "up", "k":
		if m.modelCursor > 0 {
			m.modelCursor--
		}
		return m, nil

	case "down", "j":
		if m.modelCursor < len(m.models)-1 {
			m.modelCursor++
		}
		return m, nil

	case "r":
		return m, fetchModels(m.client)

	case "enter":
		if m.modelCursor < len(m.models) {
			m.store.SetModel(m.models[m.modelCursor])
		}
		m.mode = modeChat
		return m, nil

	case "ctrl+c":
		return m, tea.Quit
	}

	return m, nil
}

// =============================================================================
// THEME
// =============================================================================

// applyTheme rebuilds the theme and dependent renderers.
func (m *Model) applyTheme(mode string) {
	m.theme = styles.New(mode)
	m.spinner.Style = m.theme.Spinner
	m.markdown = components.NewMarkdownRenderer(m.theme.GlamourStyle(), m.viewport.Width)
	m.refreshViewport()
}
