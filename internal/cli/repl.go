// Copyright (c) 2025-2026 Ethan Carlin
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/ecarlin/parley/internal/api"
	"github.com/ecarlin/parley/internal/session"
)

// =============================================================================
// REPL
// =============================================================================

// Repl runs a plain readline loop against the completion server. Exchanges
// are appended to the session store, so a later TUI run shows them.
func Repl(client *api.Client, store *session.Store, modelID string, historyDir string) error {
	if modelID == "" {
		var err error
		modelID, err = pickDefaultModel(client)
		if err != nil {
			return err
		}
	}
	store.SetModel(modelID)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	historyPath := filepath.Join(historyDir, "history")
	if f, err := os.Open(historyPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Printf("parley repl · model %s · server %s\n", modelID, client.BaseURL())
	fmt.Println(`type "exit" or press ctrl+d to leave`)

	for {
		line, err := ln.Prompt("> ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return nil
		}
		if err != nil {
			return fmt.Errorf("read line: %w", err)
		}

		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}
		if text == "exit" || text == "quit" {
			return nil
		}
		ln.AppendHistory(text)

		convID, ok := store.AppendUserMessage(text)
		if !ok {
			continue
		}
		reply := client.Complete(context.Background(), modelID, text)
		store.ApplyReply(convID, reply)

		fmt.Println(renderReply(reply))
		fmt.Println()
	}
}
