// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Command cosmic-chat is a terminal client for hosted AI chat models:
// streaming responses, per-session memory, persistent conversations, and
// a model catalog spanning the major providers.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/cosmicai/cosmic-chat/internal/chat"
	"github.com/cosmicai/cosmic-chat/internal/cli"
	"github.com/cosmicai/cosmic-chat/internal/config"
	"github.com/cosmicai/cosmic-chat/internal/kv"
	"github.com/cosmicai/cosmic-chat/internal/memory"
	"github.com/cosmicai/cosmic-chat/internal/model"
	"github.com/cosmicai/cosmic-chat/internal/puter"
	"github.com/cosmicai/cosmic-chat/internal/storage"
	uichat "github.com/cosmicai/cosmic-chat/internal/ui/chat"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "cosmic-chat:", err)
		os.Exit(1)
	}
}

func run() error {
	args, err := cli.Parse(os.Args[1:])
	if err != nil {
		return err
	}

	switch {
	case args.ShowHelp:
		fmt.Print(cli.Usage)
		return nil
	case args.ShowVersion:
		fmt.Println("cosmic-chat", version)
		return nil
	case args.ListModels:
		cli.PrintModels()
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if args.Model != "" {
		cfg.DefaultModel = args.Model
	}

	store, err := openStore(cfg, args.Ephemeral)
	if err != nil {
		return err
	}
	defer store.Close()

	conversations := storage.New(store)
	if args.ListSessions {
		cli.PrintSessions(conversations)
		return nil
	}

	mem := memory.New(store)
	client := puter.NewClientWithConfig(&puter.ClientConfig{
		BaseURL:           cfg.Provider.BaseURL,
		ChatPath:          cfg.Provider.ChatPath,
		HealthPath:        cfg.Provider.HealthPath,
		Timeout:           time.Duration(cfg.Provider.TimeoutSecs) * time.Second,
		DefaultModel:      cfg.DefaultModel,
		RequestsPerSecond: cfg.Provider.RequestsPerSecond,
	})

	// The TUI consumes conversation snapshots through this channel; the
	// plain REPL reads state synchronously and ignores it.
	updates := make(chan []*model.Message, 64)
	notify := func(snapshot []*model.Message) {
		select {
		case updates <- snapshot:
		default:
			// UI is behind; it will re-render from the next snapshot.
		}
	}

	ctrl := chat.New(client, mem, conversations, cfg.DefaultModel,
		chat.WithNotify(notify),
		chat.WithTuning(cfg.Chat.MaxTokens, cfg.Chat.Temperature),
		chat.WithContextWindow(cfg.Chat.ContextWindow),
		chat.WithMemoryEnabled(cfg.Chat.MemoryEnabled),
	)
	if args.Resume != "" {
		if err := ctrl.Resume(args.Resume); err != nil {
			return fmt.Errorf("resuming session %s: %w", args.Resume, err)
		}
	}

	// Hot-reload: a config edit while running switches the default model.
	if dir, err := config.Dir(); err == nil {
		if w, err := config.NewWatcher(dir, 300*time.Millisecond, func(next *config.Config) {
			ctrl.SetModel(next.DefaultModel)
			log.Printf("config reloaded, model now %s", next.DefaultModel)
		}); err == nil {
			if err := w.Watch(); err == nil {
				defer w.Close()
			}
		}
	}

	if args.Plain || cfg.UI.Plain || !term.IsTerminal(int(os.Stdout.Fd())) {
		return cli.RunREPL(ctrl, conversations)
	}

	program := tea.NewProgram(
		uichat.New(ctrl, updates, cfg.UI.Markdown),
		tea.WithAltScreen(),
	)
	_, err = program.Run()
	return err
}

// openStore picks the persistence backend: SQLite on disk, or a pure
// in-memory map for --ephemeral runs.
func openStore(cfg *config.Config, ephemeral bool) (kv.Store, error) {
	if ephemeral || cfg.Storage.Ephemeral {
		return kv.NewMemoryStore(), nil
	}
	path, err := cfg.StorePath()
	if err != nil {
		return nil, err
	}
	return kv.OpenSQLite(path)
}
