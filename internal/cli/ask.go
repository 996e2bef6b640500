// Copyright (c) 2025-2026 Ethan Carlin
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the non-TUI modes: one-shot questions and a plain
// readline REPL.
package cli

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/ecarlin/parley/internal/api"
	"github.com/ecarlin/parley/internal/ui/components"
)

// =============================================================================
// ONE-SHOT ASK
// =============================================================================

// Ask sends a single question and prints the reply to stdout. Markdown is
// rendered only when stdout is a terminal.
func Ask(client *api.Client, modelID, question string) error {
	if modelID == "" {
		var err error
		modelID, err = pickDefaultModel(client)
		if err != nil {
			return err
		}
	}

	reply := client.Complete(context.Background(), modelID, question)
	fmt.Println(renderReply(reply))
	return nil
}

// pickDefaultModel uses the server's first model when none was given.
func pickDefaultModel(client *api.Client) (string, error) {
	models, err := client.ListModels(context.Background())
	if err != nil {
		return "", fmt.Errorf("no model given and the server's list is unavailable: %w", err)
	}
	if len(models) == 0 {
		return "", fmt.Errorf("no model given and the server lists none")
	}
	return models[0], nil
}

// renderReply renders markdown for terminals and passes raw text through
// for pipes.
func renderReply(reply string) string {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return reply
	}
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}
	return components.NewMarkdownRenderer("auto", width).Render(reply)
}
