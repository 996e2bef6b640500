// Copyright (c) 2025-2026 Ethan Carlin
// SPDX-License-Identifier: AGPL-3.0-or-later

// parley is a terminal chat client for locally hosted OpenAI-compatible
// completion servers such as LM Studio.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ecarlin/parley/internal/api"
	"github.com/ecarlin/parley/internal/cli"
	"github.com/ecarlin/parley/internal/config"
	"github.com/ecarlin/parley/internal/kvstore"
	"github.com/ecarlin/parley/internal/log"
	"github.com/ecarlin/parley/internal/session"
	"github.com/ecarlin/parley/internal/ui/chat"
)

const version = "0.3.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "parley: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		flagHost    = flag.String("host", "", "completion server host (overrides config and saved settings)")
		flagPort    = flag.String("port", "", "completion server port (overrides config and saved settings)")
		flagModel   = flag.String("model", "", "model id to use")
		flagTheme   = flag.String("theme", "", "theme: dark, light, or auto")
		flagAsk     = flag.String("ask", "", "ask one question, print the reply, and exit")
		flagRepl    = flag.Bool("repl", false, "run a plain readline loop instead of the TUI")
		flagVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *flagVersion {
		fmt.Println("parley", version)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "parley: config ignored: %v\n", err)
		cfg = config.Default()
	}
	if *flagTheme != "" {
		cfg.UI.Theme = *flagTheme
	}
	if *flagModel != "" {
		cfg.Server.DefaultModel = *flagModel
	}

	dir, err := config.EnsureDir()
	if err != nil {
		return err
	}

	logger, err := log.New(filepath.Join(dir, "parley.log"))
	if err != nil {
		logger = log.Discard()
	}
	defer logger.Close()

	kv, err := kvstore.Open(filepath.Join(dir, "state.db"))
	if err != nil {
		return fmt.Errorf("open state store: %w", err)
	}
	defer kv.Close()

	store := session.New(kv, logger)
	store.Restore(session.Settings{Host: cfg.Server.Host, Port: cfg.Server.Port})

	// Explicit flags beat both config and saved settings.
	if *flagHost != "" || *flagPort != "" {
		settings := store.Settings()
		if *flagHost != "" {
			settings.Host = *flagHost
		}
		if *flagPort != "" {
			settings.Port = *flagPort
		}
		store.UpdateSettings(settings)
	}

	settings := store.Settings()
	client := api.NewClientWithConfig(api.ClientConfig{Host: settings.Host, Port: settings.Port})

	switch {
	case *flagAsk != "":
		return cli.Ask(client, cfg.Server.DefaultModel, *flagAsk)
	case *flagRepl:
		return cli.Repl(client, store, cfg.Server.DefaultModel, dir)
	}

	program := tea.NewProgram(chat.New(store, client, cfg, logger), tea.WithAltScreen())

	// Theme edits in config.toml apply without a restart.
	if path, err := config.Path(); err == nil {
		if watcher, err := config.Watch(path, func(c *config.Config) {
			program.Send(chat.ThemeMsg{Mode: c.UI.Theme})
		}); err == nil {
			defer watcher.Close()
		}
	}

	_, err = program.Run()
	return err
}
