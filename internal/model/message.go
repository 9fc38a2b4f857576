// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/cosmicai/cosmic-chat/internal/util"
)

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who produced a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// DisplayName returns a human-readable name for the sender.
func (s Sender) DisplayName() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderAssistant:
		return "Assistant"
	default:
		return string(s)
	}
}

// =============================================================================
// KIND TYPE
// =============================================================================

// Kind classifies how message content should be interpreted and rendered.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
	KindError Kind = "error"
)

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single turn in a conversation.
//
// An assistant message starts life as an empty placeholder with
// Streaming=true when the model supports incremental delivery; chunks are
// appended in arrival order and the content becomes immutable once
// FinalizeStream flips Streaming to false.
type Message struct {
	// Identity
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`

	// Content
	Content string `json:"content"`

	// Model is the catalog identifier that produced (or will produce)
	// this message. Empty for user messages sent before a model was chosen.
	Model string `json:"model,omitempty"`

	// Kind classifies the content (text, image, error).
	Kind Kind `json:"kind,omitempty"`

	// Streaming is true only while an assistant message is being
	// incrementally filled. Not persisted.
	Streaming bool `json:"-"`
}

// NewUserMessage creates a user message with a generated ID.
func NewUserMessage(content, model string) *Message {
	return &Message{
		ID:        generateID(),
		Sender:    SenderUser,
		Content:   content,
		Model:     model,
		Kind:      KindText,
		Timestamp: time.Now(),
	}
}

// NewAssistantPlaceholder creates an empty assistant message to be filled
// by a completion. streaming should mirror the model's streaming capability.
func NewAssistantPlaceholder(model string, streaming bool) *Message {
	return &Message{
		ID:        generateID(),
		Sender:    SenderAssistant,
		Model:     model,
		Kind:      KindText,
		Timestamp: time.Now(),
		Streaming: streaming,
	}
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// AppendChunk appends streamed text to the message content.
// Only valid while Streaming is true; calls after finalization are ignored.
func (m *Message) AppendChunk(chunk string) {
	if m.Streaming {
		m.Content += chunk
	}
}

// FinalizeStream marks the message as complete. The content is immutable
// from this point on (except for an in-place regenerate of the last
// assistant turn, which goes through Regenerate).
func (m *Message) FinalizeStream() {
	m.Streaming = false
}

// SetFinal replaces the content in a single step (non-streaming path or
// error replacement) and marks the message complete.
func (m *Message) SetFinal(content string, kind Kind) {
	m.Content = content
	m.Kind = kind
	m.Streaming = false
}

// Regenerate overwrites content, timestamp and model in place while
// preserving the message ID and position. Used only for the last assistant
// turn.
func (m *Message) Regenerate(content, model string) {
	m.Content = content
	m.Model = model
	m.Kind = KindText
	m.Timestamp = time.Now()
	m.Streaming = false
}

// IsEmpty returns true if the message has no content.
func (m *Message) IsEmpty() bool {
	return len(m.Content) == 0
}

// Preview returns a single-line truncated preview of the content.
func (m *Message) Preview(maxRunes int) string {
	return util.TruncateRunes(util.CollapseWhitespace(m.Content), maxRunes)
}

// Clone returns a copy of the message. Snapshots handed to the
// presentation layer are clones so in-flight mutation never races a render.
func (m *Message) Clone() *Message {
	cp := *m
	return &cp
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateID creates a unique message ID.
func generateID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return "msg_" + hex.EncodeToString(bytes)
}
