// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package kv provides the key/value persistence capability used by the
// conversation store and session memory.
//
// Two backends implement the Store interface: an in-memory map for tests
// and ephemeral sessions, and SQLite for durable storage.
//
// # Key Types
//
//   - Store: Get/Set/Delete/Keys interface over opaque byte values
//   - MemoryStore: Mutex-guarded map backend
//   - SQLiteStore: Single-table SQLite backend (modernc.org/sqlite)
//
// # Usage
//
//	store, err := kv.OpenSQLite(path)
//	defer store.Close()
//
//	err = store.Set("chat-messages-abc", payload)
//	keys, err := store.Keys("chat-memory-")
package kv
