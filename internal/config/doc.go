// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading for cosmic-chat.
//
// Supports both TOML and JSON configuration formats, with sensible
// defaults, environment variable overrides, validation, and hot reload.
//
// Configuration file locations (in order of precedence):
//   - ~/.cosmic-chat/config.toml
//   - ~/.cosmic-chat/config.json
//   - Built-in defaults
//
// Environment overrides win over file values: COSMIC_MODEL,
// COSMIC_BASE_URL, COSMIC_MAX_TOKENS, COSMIC_STORE_PATH, COSMIC_PLAIN.
//
// # Usage
//
//	cfg, err := config.Load()
//
// Watch for edits while running (debounced; a failed reload keeps the
// previous configuration):
//
//	w, err := config.NewWatcher(dir, 300*time.Millisecond, func(next *config.Config) {
//	    apply(next)
//	})
//	err = w.Watch()
package config
