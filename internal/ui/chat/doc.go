// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the terminal chat view: transcript viewport,
// input area, and the category-grouped model picker.
//
// The view is a Bubble Tea model that subscribes to controller
// conversation snapshots through a channel. Streamed chunks are coalesced
// by a StreamingBuffer so the transcript repaints at a capped frame rate
// instead of once per chunk; finalized assistant messages are rendered as
// markdown through glamour.
//
// # Key Types
//
//   - Model: The Bubble Tea model (Init/Update/View)
//   - StreamingBuffer: Batch + frame-rate chunk coalescing
//   - keyMap: Keybindings (enter, ctrl+p, ctrl+r, ctrl+l, ctrl+c, esc)
package chat
