// Copyright (c) 2025-2026 Ethan Carlin
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// =============================================================================
// THEME
// =============================================================================

// Theme holds the styled components for the application. Mode is "dark",
// "light", or "auto"; auto follows the terminal background.
type Theme struct {
	Mode         string
	IsDark       bool
	ColorProfile termenv.Profile

	// Header
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style

	// Sidebar
	Sidebar            lipgloss.Style
	SidebarTitle       lipgloss.Style
	SidebarItem        lipgloss.Style
	SidebarItemActive  lipgloss.Style
	SidebarItemPreview lipgloss.Style

	// Messages
	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	MessageTime    lipgloss.Style
	MessageBody    lipgloss.Style

	// Input
	InputContainer lipgloss.Style
	Prompt         lipgloss.Style

	// Status bar
	StatusBar   lipgloss.Style
	StatusKey   lipgloss.Style
	StatusValue lipgloss.Style
	StatusError lipgloss.Style

	// Overlays (settings form, model picker, help)
	OverlayBox    lipgloss.Style
	OverlayTitle  lipgloss.Style
	FieldLabel    lipgloss.Style
	FieldFocused  lipgloss.Style
	ListItem      lipgloss.Style
	ListSelected  lipgloss.Style
	HelpCommand   lipgloss.Style
	HelpDesc      lipgloss.Style

	// Misc
	Spinner lipgloss.Style
	Muted   lipgloss.Style
}

// New builds a theme for the given mode. "dark" and "light" force the
// background assumption; "auto" keeps the detected one.
func New(mode string) *Theme {
	switch mode {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	}

	t := &Theme{
		Mode:         mode,
		IsDark:       lipgloss.HasDarkBackground(),
		ColorProfile: termenv.ColorProfile(),
	}
	t.build()
	return t
}

// build populates all styles from the palette.
func (t *Theme) build() {
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)
	t.HeaderTitle = lipgloss.NewStyle().
		Foreground(Indigo).
		Bold(true)

	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(Border).
		PaddingRight(1)
	t.SidebarTitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)
	t.SidebarItem = lipgloss.NewStyle().
		Foreground(TextSecondary)
	t.SidebarItemActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Indigo).
		Bold(true)
	t.SidebarItemPreview = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.UserLabel = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)
	t.AssistantLabel = lipgloss.NewStyle().
		Foreground(Indigo).
		Bold(true)
	t.MessageTime = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.MessageBody = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
	t.Prompt = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)

	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)
	t.StatusKey = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.StatusValue = lipgloss.NewStyle().
		Foreground(Green)
	t.StatusError = lipgloss.NewStyle().
		Foreground(Red)

	t.OverlayBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Indigo).
		Padding(1, 2)
	t.OverlayTitle = lipgloss.NewStyle().
		Foreground(Indigo).
		Bold(true)
	t.FieldLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)
	t.FieldFocused = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)
	t.ListItem = lipgloss.NewStyle().
		Foreground(TextPrimary)
	t.ListSelected = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Indigo)
	t.HelpCommand = lipgloss.NewStyle().
		Foreground(Teal)
	t.HelpDesc = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Amber)
	t.Muted = lipgloss.NewStyle().
		Foreground(TextMuted)
}

// GlamourStyle returns the glamour standard style name matching the theme.
func (t *Theme) GlamourStyle() string {
	if t.IsDark {
		return "dark"
	}
	return "light"
}

// ChromaStyle returns the chroma style name matching the theme.
func (t *Theme) ChromaStyle() string {
	if t.IsDark {
		return "monokai"
	}
	return "github"
}
