// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the cosmic-chat
// TUI.
//
// All colors use Lip Gloss AdaptiveColor for automatic light/dark
// terminal detection; the Theme struct carries the termenv color profile
// so callers can degrade on limited terminals.
//
// # Usage
//
//	theme := styles.NewTheme()
//	if theme.HasTrueColor {
//	    // Terminal supports 16M colors
//	}
//	header := theme.HeaderTitle.Render("Cosmic Chat")
package styles
