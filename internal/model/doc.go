// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// This package defines the core domain types used throughout the application
// for representing chat transcripts: who said what, when, and whether a
// message is still being streamed.
//
// # Key Types
//
//   - Conversation: Ordered, append-only message log with derived title
//   - Message: Single turn with sender, content, kind, and streaming state
//   - Sender: Message origin enumeration (user, assistant)
//   - Kind: Content classification (text, image, error)
//
// # Usage
//
// Build a conversation turn by turn:
//
//	conv := model.NewConversation(model.NewConversationID(), "gpt-4o")
//	conv.Append(model.NewUserMessage("Hello!", "gpt-4o"))
//
// Stream into an assistant placeholder:
//
//	msg := model.NewAssistantPlaceholder("gpt-4o", true)
//	msg.AppendChunk("Hel")
//	msg.AppendChunk("lo")
//	msg.FinalizeStream() // content is immutable from here
//
// Snapshot for rendering (deep copy, safe against in-flight mutation):
//
//	for _, m := range conv.Snapshot() {
//	    fmt.Println(m.Preview(50))
//	}
package model
