// Copyright (c) 2025-2026 Ethan Carlin
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ecarlin/parley/internal/api"
	"github.com/ecarlin/parley/internal/commands"
	"github.com/ecarlin/parley/internal/config"
	"github.com/ecarlin/parley/internal/log"
	"github.com/ecarlin/parley/internal/session"
	"github.com/ecarlin/parley/internal/ui/components"
	"github.com/ecarlin/parley/internal/ui/styles"
)

// =============================================================================
// VIEW MODES
// =============================================================================

// viewMode selects which screen the app shows.
type viewMode int

const (
	modeChat viewMode = iota
	modeSettings
	modeModels
	modeHelp
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat screen. All conversation and
// settings state lives in the session store; this struct holds only view
// state.
type Model struct {
	store  *session.Store
	client *api.Client
	logger *log.Logger
	parser *commands.Parser

	theme    *styles.Theme
	markdown *components.MarkdownRenderer

	keys KeyMap
	mode viewMode

	// Layout
	width       int
	height      int
	showSidebar bool

	// Widgets
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	// In-flight completion. Send is disabled while waiting; model refresh
	// is independent and may overlap.
	waiting bool

	// Model picker
	models      []string
	modelCursor int

	// Settings form (pending copy, committed on save)
	hostInput     textinput.Model
	portInput     textinput.Model
	settingsFocus int

	// Rendering preferences
	markdownEnabled bool

	// Transient status line
	status string
}

// New creates the chat model. The store must be restored and the client
// pointed at the stored settings before this is called.
func New(store *session.Store, client *api.Client, cfg *config.Config, logger *log.Logger) Model {
	theme := styles.New(cfg.UI.Theme)

	input := textinput.New()
	input.Placeholder = "Type a message or /help"
	input.Prompt = ""
	input.Focus()

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(theme.Spinner),
	)

	host := textinput.New()
	host.Placeholder = "localhost"
	port := textinput.New()
	port.Placeholder = "1234"

	m := Model{
		store:           store,
		client:          client,
		logger:          logger,
		parser:          commands.NewParser(commands.NewRegistry()),
		theme:           theme,
		markdown:        components.NewMarkdownRenderer(theme.GlamourStyle(), 80),
		keys:            DefaultKeyMap(),
		mode:            modeChat,
		showSidebar:     true,
		viewport:        viewport.New(80, 20),
		input:           input,
		spinner:         sp,
		hostInput:       host,
		portInput:       port,
		markdownEnabled: cfg.UI.Markdown,
	}

	if cfg.Server.DefaultModel != "" {
		if active, ok := store.Active(); ok && active.Model == "" {
			store.SetModel(cfg.Server.DefaultModel)
		}
	}

	m.refreshViewport()
	return m
}

// Init starts the initial model-list fetch and cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		fetchModels(m.client),
	)
}

// activeModel returns the active conversation's model id, or "".
func (m *Model) activeModel() string {
	if active, ok := m.store.Active(); ok {
		return active.Model
	}
	return ""
}

// setStatus shows a transient status message.
func (m *Model) setStatus(text string) tea.Cmd {
	m.status = text
	return expireStatus()
}
