// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli handles argument parsing and the plain line-mode chat loop
// used when no TTY is available (or --plain is given).
//
// The REPL covers the TUI's keybindings with slash commands: /model,
// /models, /sessions, /regen, /clear, /quit.
package cli
