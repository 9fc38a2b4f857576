// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/cosmicai/cosmic-chat/internal/kv"
	"github.com/cosmicai/cosmic-chat/internal/model"
)

// Key layout in the kv store.
const (
	messagesKeyPrefix = "chat-messages-"
	sessionsIndexKey  = "chat-sessions"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrNotFound indicates the requested conversation has no persisted record.
var ErrNotFound = errors.New("storage: conversation not found")

// ConversationError wraps a storage failure with the conversation it
// concerns.
type ConversationError struct {
	ID  string
	Op  string
	Err error
}

func (e *ConversationError) Error() string {
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.ID, e.Err)
}

func (e *ConversationError) Unwrap() error {
	return e.Err
}

// =============================================================================
// SESSION SUMMARY
// =============================================================================

// SessionSummary is one row of the chat switcher index.
type SessionSummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	LastUpdated  time.Time `json:"lastUpdated"`
	MessageCount int       `json:"messageCount"`
	Model        string    `json:"model"`
}

// =============================================================================
// CONVERSATION STORE
// =============================================================================

// ConversationStore persists message logs under `chat-messages-<id>` and
// maintains the `chat-sessions` summary index, most recently updated first.
type ConversationStore struct {
	store kv.Store
}

// New creates a ConversationStore over the given kv backend.
func New(store kv.Store) *ConversationStore {
	return &ConversationStore{store: store}
}

// Save writes the conversation's messages and refreshes its summary row.
func (s *ConversationStore) Save(conv *model.Conversation) error {
	data, err := json.Marshal(conv.Messages)
	if err != nil {
		return &ConversationError{ID: conv.ID, Op: "encoding", Err: err}
	}
	if err := s.store.Set(messagesKeyPrefix+conv.ID, data); err != nil {
		return &ConversationError{ID: conv.ID, Op: "saving", Err: err}
	}

	return s.updateIndex(SessionSummary{
		ID:           conv.ID,
		Title:        conv.Title(),
		LastUpdated:  time.Now(),
		MessageCount: conv.Len(),
		Model:        conv.Model,
	})
}

// Load returns the persisted messages for a conversation, or ErrNotFound.
func (s *ConversationStore) Load(id string) ([]*model.Message, error) {
	data, err := s.store.Get(messagesKeyPrefix + id)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &ConversationError{ID: id, Op: "loading", Err: err}
	}

	var messages []*model.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, &ConversationError{ID: id, Op: "decoding", Err: err}
	}
	return messages, nil
}

// Delete removes a conversation's messages and its summary row. Deleting
// an unknown id is not an error.
func (s *ConversationStore) Delete(id string) error {
	if err := s.store.Delete(messagesKeyPrefix + id); err != nil {
		return &ConversationError{ID: id, Op: "deleting", Err: err}
	}
	return s.removeFromIndex(id)
}

// ListSessions returns the summary index, most recently updated first.
func (s *ConversationStore) ListSessions() ([]SessionSummary, error) {
	summaries, err := s.readIndex()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].LastUpdated.After(summaries[j].LastUpdated)
	})
	return summaries, nil
}

// Clear removes every persisted conversation and the index.
func (s *ConversationStore) Clear() error {
	keys, err := s.store.Keys(messagesKeyPrefix)
	if err != nil {
		return fmt.Errorf("storage: listing conversations: %w", err)
	}
	for _, key := range keys {
		if err := s.store.Delete(key); err != nil {
			return fmt.Errorf("storage: clearing %s: %w", key, err)
		}
	}
	return s.store.Delete(sessionsIndexKey)
}

// =============================================================================
// SUMMARY INDEX
// =============================================================================

func (s *ConversationStore) readIndex() ([]SessionSummary, error) {
	data, err := s.store.Get(sessionsIndexKey)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: reading session index: %w", err)
	}

	var summaries []SessionSummary
	if err := json.Unmarshal(data, &summaries); err != nil {
		return nil, fmt.Errorf("storage: decoding session index: %w", err)
	}
	return summaries, nil
}

func (s *ConversationStore) writeIndex(summaries []SessionSummary) error {
	data, err := json.Marshal(summaries)
	if err != nil {
		return fmt.Errorf("storage: encoding session index: %w", err)
	}
	if err := s.store.Set(sessionsIndexKey, data); err != nil {
		return fmt.Errorf("storage: writing session index: %w", err)
	}
	return nil
}

func (s *ConversationStore) updateIndex(summary SessionSummary) error {
	summaries, err := s.readIndex()
	if err != nil {
		return err
	}

	replaced := false
	for i := range summaries {
		if summaries[i].ID == summary.ID {
			summaries[i] = summary
			replaced = true
			break
		}
	}
	if !replaced {
		summaries = append(summaries, summary)
	}
	return s.writeIndex(summaries)
}

func (s *ConversationStore) removeFromIndex(id string) error {
	summaries, err := s.readIndex()
	if err != nil {
		return err
	}

	out := summaries[:0]
	for _, sum := range summaries {
		if sum.ID != id {
			out = append(out, sum)
		}
	}
	return s.writeIndex(out)
}
