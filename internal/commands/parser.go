// Copyright (c) 2025-2026 Ethan Carlin
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import "strings"

// =============================================================================
// PARSE RESULT
// =============================================================================

// ParseResult is the outcome of parsing one input line.
type ParseResult struct {
	// IsCommand is true when the input starts with /.
	IsCommand bool

	// Command is the matched command, nil when unknown.
	Command *Command

	// CommandName is the raw name typed (e.g. "/export").
	CommandName string

	// Args are the parsed arguments.
	Args []string

	// RawArgs is the unparsed argument portion.
	RawArgs string
}

// =============================================================================
// PARSER
// =============================================================================

// Parser matches input lines against a registry.
type Parser struct {
	registry *Registry
}

// NewParser creates a parser over the given registry.
func NewParser(registry *Registry) *Parser {
	return &Parser{registry: registry}
}

// Parse splits input into a command name and arguments. Input not starting
// with / is reported as plain text.
func (p *Parser) Parse(input string) ParseResult {
	input = strings.TrimSpace(input)
	result := ParseResult{}

	if !strings.HasPrefix(input, "/") {
		return result
	}
	result.IsCommand = true

	parts := splitArgs(input)
	if len(parts) == 0 {
		return result
	}
	result.CommandName = parts[0]
	result.Args = parts[1:]
	result.RawArgs = strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
	result.Command = p.registry.Get(result.CommandName)
	return result
}

// splitArgs tokenizes a line, honoring single and double quotes so file
// paths with spaces survive.
func splitArgs(input string) []string {
	var tokens []string
	var current strings.Builder
	var inSingle, inDouble bool

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range input {
		switch {
		case r == '\'' && !inDouble:
			inSingle = !inSingle
		case r == '"' && !inSingle:
			inDouble = !inDouble
		case (r == ' ' || r == '\t') && !inSingle && !inDouble:
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return tokens
}
