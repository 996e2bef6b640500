// Copyright (c) 2025-2026 Ethan Carlin
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the chat UI.
package commands

import "sort"

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Command names handled by the chat update loop.
const (
	CmdNew      = "/new"
	CmdModels   = "/models"
	CmdSettings = "/settings"
	CmdTheme    = "/theme"
	CmdExport   = "/export"
	CmdClear    = "/clear"
	CmdHelp     = "/help"
)

// Command describes a slash command.
type Command struct {
	// Name is the primary command name (e.g., "/help").
	Name string

	// Aliases are alternative names (e.g., "/h").
	Aliases []string

	// Description is shown in help.
	Description string

	// Usage shows argument syntax (e.g., "/export [file]").
	Usage string
}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry holds all registered commands.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]*Command
}

// NewRegistry creates a registry with all built-in commands.
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]*Command),
	}
	r.registerBuiltins()
	return r
}

// Register adds a command.
func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		r.aliases[alias] = cmd
	}
}

// Get retrieves a command by name or alias, or nil.
func (r *Registry) Get(name string) *Command {
	if cmd, ok := r.commands[name]; ok {
		return cmd
	}
	if cmd, ok := r.aliases[name]; ok {
		return cmd
	}
	return nil
}

// List returns all commands sorted by name.
func (r *Registry) List() []*Command {
	cmds := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

// registerBuiltins installs the standard command set.
func (r *Registry) registerBuiltins() {
	r.Register(&Command{
		Name:        CmdNew,
		Aliases:     []string{"/n"},
		Description: "Start a new conversation",
		Usage:       "/new",
	})
	r.Register(&Command{
		Name:        CmdModels,
		Aliases:     []string{"/m"},
		Description: "Refresh and pick from the server's model list",
		Usage:       "/models",
	})
	r.Register(&Command{
		Name:        CmdSettings,
		Description: "Edit the server host and port",
		Usage:       "/settings",
	})
	r.Register(&Command{
		Name:        CmdTheme,
		Description: "Switch theme",
		Usage:       "/theme <dark|light|auto>",
	})
	r.Register(&Command{
		Name:        CmdExport,
		Description: "Export the current conversation to a file",
		Usage:       "/export [file.md|file.json]",
	})
	r.Register(&Command{
		Name:        CmdClear,
		Description: "Delete all conversations",
		Usage:       "/clear",
	})
	r.Register(&Command{
		Name:        CmdHelp,
		Aliases:     []string{"/h", "/?"},
		Description: "Show available commands and key bindings",
		Usage:       "/help",
	})
}
