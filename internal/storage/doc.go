// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists conversations and the session summary index.
//
// Each conversation's messages live under "chat-messages-<id>"; the
// "chat-sessions" key holds the summary index (id, derived title, last
// update, message count, model) sorted most-recently-updated first.
//
// # Key Types
//
//   - ConversationStore: Save/Load/Delete/ListSessions over a kv.Store
//   - SessionSummary: One index row for the session switcher
//   - ConversationError: Error wrapper carrying the conversation id and op
//
// # Usage
//
//	store := storage.New(kvStore)
//	err := store.Save(conv)
//
//	summaries, err := store.ListSessions()
//	messages, err := store.Load(summaries[0].ID)
package storage
