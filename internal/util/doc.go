// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides shared string helpers for cosmic-chat.
//
// # Key Functions
//
//   - TruncateRunes: UTF-8 safe truncation with ellipsis
//   - TruncateRunesNoEllipsis: UTF-8 safe truncation, no ellipsis
//   - TruncateWidth: Display-width truncation (CJK aware)
//   - CollapseWhitespace: Flatten content to a single line
//   - PadRight: Display-width column padding
//
// # Usage
//
//	// Truncate long strings safely for display
//	display := util.TruncateRunes(longText, 50)
//
//	// Width-aware table column
//	cell := util.PadRight(util.TruncateWidth(title, 48), 48)
package util
