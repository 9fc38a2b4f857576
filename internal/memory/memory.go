// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package memory

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/cosmicai/cosmic-chat/internal/kv"
)

// MaxEntries caps each (session, model) log; older entries are evicted
// from the front.
const MaxEntries = 20

// keyPrefix namespaces memory records in the kv store.
const keyPrefix = "chat-memory-"

// Entry is one remembered turn.
type Entry struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// record is the persisted layout for one (session, model) key.
type record struct {
	Messages  []Entry `json:"messages"`
	Model     string  `json:"model"`
	SessionID string  `json:"sessionId"`
}

// =============================================================================
// SESSION MEMORY
// =============================================================================

// SessionMemory keeps an in-memory cache of each (session, model) log and
// persists every append to the kv store. Persistence is best-effort: a
// failed write is logged and the in-memory copy stays authoritative, so
// read-after-append always reflects the append within the process.
type SessionMemory struct {
	mu    sync.Mutex
	store kv.Store
	cache map[string][]Entry
}

// New creates a SessionMemory backed by the given store.
func New(store kv.Store) *SessionMemory {
	return &SessionMemory{
		store: store,
		cache: make(map[string][]Entry),
	}
}

// Key returns the composite persistence key for a (session, model) pair.
func Key(sessionID, modelID string) string {
	return keyPrefix + sessionID + "-" + modelID
}

// Append records a turn for the (session, model) log, evicting from the
// front when the log exceeds MaxEntries.
func (m *SessionMemory) Append(sessionID, modelID, role, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := Key(sessionID, modelID)
	entries := append(m.cache[key], Entry{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
	if len(entries) > MaxEntries {
		entries = entries[len(entries)-MaxEntries:]
	}
	m.cache[key] = entries

	m.persist(key, sessionID, modelID, entries)
}

// Read returns the log for (session, model), oldest first. The persisted
// copy wins over the cache when both exist, and a successful read hydrates
// the cache so later appends extend the persisted history. The one
// exception: when the cache is ahead of the stored record (a persist
// failed after an append), the cache wins so the append is not lost.
func (m *SessionMemory) Read(sessionID, modelID string) []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := Key(sessionID, modelID)
	if data, err := m.store.Get(key); err == nil {
		var rec record
		if err := json.Unmarshal(data, &rec); err == nil {
			if cached := m.cache[key]; len(cached) > len(rec.Messages) {
				return cloneEntries(cached)
			}
			m.cache[key] = rec.Messages
			return cloneEntries(rec.Messages)
		}
		log.Printf("memory: corrupt record for %s, falling back to cache", key)
	} else if !errors.Is(err, kv.ErrNotFound) {
		log.Printf("memory: reading %s: %v", key, err)
	}

	return cloneEntries(m.cache[key])
}

// Context returns the most recent n entries for (session, model), oldest
// first. Used to build the provider context window.
func (m *SessionMemory) Context(sessionID, modelID string, n int) []Entry {
	entries := m.Read(sessionID, modelID)
	if n <= 0 || len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}

// Clear removes exactly the (session, model) log, both cached and persisted.
func (m *SessionMemory) Clear(sessionID, modelID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := Key(sessionID, modelID)
	delete(m.cache, key)
	if err := m.store.Delete(key); err != nil {
		log.Printf("memory: deleting %s: %v", key, err)
	}
}

// ClearSession removes every log belonging to the session, across all
// models, cached and persisted.
func (m *SessionMemory) ClearSession(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prefix := keyPrefix + sessionID + "-"
	for key := range m.cache {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(m.cache, key)
		}
	}

	keys, err := m.store.Keys(prefix)
	if err != nil {
		log.Printf("memory: listing %s*: %v", prefix, err)
		return
	}
	for _, key := range keys {
		if err := m.store.Delete(key); err != nil {
			log.Printf("memory: deleting %s: %v", key, err)
		}
	}
}

// persist writes the log to the kv store. Failures are logged, never
// surfaced: memory persistence must not block the chat flow.
func (m *SessionMemory) persist(key, sessionID, modelID string, entries []Entry) {
	data, err := json.Marshal(record{
		Messages:  entries,
		Model:     modelID,
		SessionID: sessionID,
	})
	if err != nil {
		log.Printf("memory: encoding %s: %v", key, err)
		return
	}
	if err := m.store.Set(key, data); err != nil {
		log.Printf("memory: persisting %s: %v", key, err)
	}
}

func cloneEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
