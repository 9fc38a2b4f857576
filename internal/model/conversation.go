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
// CONSTANTS
// =============================================================================

const (
	// TitleMaxRunes caps the derived conversation title.
	TitleMaxRunes = 50

	// DefaultTitle is used before any message exists.
	DefaultTitle = "New Chat"
)

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is an ordered, append-only log of messages. The single
// exception to append-only is an in-place regenerate of the most recent
// assistant turn, which replaces content without moving the message.
type Conversation struct {
	ID        string     `json:"id"`
	Messages  []*Message `json:"messages"`
	Model     string     `json:"model"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewConversation creates an empty conversation for the given model.
func NewConversation(id, modelID string) *Conversation {
	now := time.Now()
	return &Conversation{
		ID:        id,
		Messages:  make([]*Message, 0),
		Model:     modelID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewConversationID creates a unique conversation ID.
func NewConversationID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return "conv_" + hex.EncodeToString(bytes)
}

// =============================================================================
// CONVERSATION METHODS
// =============================================================================

// Append adds a message to the end of the conversation.
func (c *Conversation) Append(msg *Message) {
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.Messages)
}

// Last returns the final message, or nil if the conversation is empty.
func (c *Conversation) Last() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// At returns the message at index i, or nil if out of range.
func (c *Conversation) At(i int) *Message {
	if i < 0 || i >= len(c.Messages) {
		return nil
	}
	return c.Messages[i]
}

// Title derives the conversation title from the first message, truncated to
// TitleMaxRunes. Empty conversations get DefaultTitle.
func (c *Conversation) Title() string {
	if len(c.Messages) == 0 || c.Messages[0].Content == "" {
		return DefaultTitle
	}
	return util.TruncateRunesNoEllipsis(
		util.CollapseWhitespace(c.Messages[0].Content), TitleMaxRunes)
}

// Clear removes all messages. The conversation ID and model survive so the
// session can keep going under the same identity.
func (c *Conversation) Clear() {
	c.Messages = c.Messages[:0]
	c.UpdatedAt = time.Now()
}

// Snapshot returns a deep copy of the message slice. Handed to subscribers
// so renders never race in-flight streaming mutation.
func (c *Conversation) Snapshot() []*Message {
	out := make([]*Message, len(c.Messages))
	for i, m := range c.Messages {
		out[i] = m.Clone()
	}
	return out
}

// HistoryBefore returns the messages preceding index i with empty messages
// filtered out. Used to rebuild the provider context for a regenerate.
func (c *Conversation) HistoryBefore(i int) []*Message {
	if i < 0 {
		return nil
	}
	if i > len(c.Messages) {
		i = len(c.Messages)
	}
	out := make([]*Message, 0, i)
	for _, m := range c.Messages[:i] {
		if !m.IsEmpty() {
			out = append(out, m)
		}
	}
	return out
}
