// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package memory implements the bounded per-(session, model) conversation
// memory that seeds provider context across submissions.
//
// Each (session, model) pair keeps its own log, capped at MaxEntries with
// front eviction. Every append is persisted best-effort under the key
// "chat-memory-<session>-<model>"; a failed write is logged and the
// in-process copy keeps serving reads.
//
// # Key Types
//
//   - SessionMemory: The cache + persistence layer
//   - Entry: One remembered turn (role, content, timestamp)
//
// # Usage
//
//	mem := memory.New(store)
//	mem.Append(sessionID, modelID, "user", "hello")
//	ctx := mem.Context(sessionID, modelID, 10) // newest 10, oldest first
package memory
