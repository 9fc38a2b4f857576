// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/cosmicai/cosmic-chat/internal/catalog"
	"github.com/cosmicai/cosmic-chat/internal/memory"
	"github.com/cosmicai/cosmic-chat/internal/model"
	"github.com/cosmicai/cosmic-chat/internal/puter"
	"github.com/cosmicai/cosmic-chat/internal/storage"
)

// ContextWindow is the default number of memory entries that seed the
// provider context. Overridable per controller via WithContextWindow.
const ContextWindow = 10

// connectErrorPrefix opens every error-kind message appended to the
// transcript when the provider fails outright.
const connectErrorPrefix = "I apologize, but I'm having trouble connecting to the AI service right now. Please try again in a moment."

// =============================================================================
// STATE
// =============================================================================

// State is the controller's position in the request lifecycle.
type State int

const (
	StateIdle State = iota
	StateSending
	StateStreaming
	StateFinalizing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSending:
		return "sending"
	case StateStreaming:
		return "streaming"
	case StateFinalizing:
		return "finalizing"
	default:
		return "unknown"
	}
}

// =============================================================================
// COMPLETER
// =============================================================================

// Completer is the provider surface the controller depends on.
// *puter.Client satisfies it.
type Completer interface {
	Complete(ctx context.Context, message string, contextMsgs []puter.Message, opts puter.Options) (string, error)
	CompleteStreaming(ctx context.Context, message string, contextMsgs []puter.Message, opts puter.Options, onChunk puter.ChunkFunc) (string, error)
}

// NotifyFunc receives a conversation snapshot after every visible change.
type NotifyFunc func(messages []*model.Message)

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller drives one conversation. All entry points are safe for
// concurrent call, but only one request is ever in flight: submit and
// regenerate are rejected (silent no-op) unless the controller is idle,
// so two requests can never interleave writes to the conversation.
type Controller struct {
	mu    sync.Mutex
	state State

	conv      *model.Conversation
	sessionID string
	modelID   string

	completer Completer
	memory    *memory.SessionMemory
	store     *storage.ConversationStore
	notify    NotifyFunc

	// Tuning, fixed at construction.
	maxTokens     int
	temperature   float64
	contextWindow int
	memoryEnabled bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithNotify installs the conversation-changed callback.
func WithNotify(fn NotifyFunc) Option {
	return func(c *Controller) { c.notify = fn }
}

// WithSessionID pins the session identity (used when resuming a chat).
func WithSessionID(id string) Option {
	return func(c *Controller) { c.sessionID = id }
}

// WithTuning overrides the completion token budget and sampling
// temperature. A non-positive token budget or negative temperature keeps
// the respective default.
func WithTuning(maxTokens int, temperature float64) Option {
	return func(c *Controller) {
		if maxTokens > 0 {
			c.maxTokens = maxTokens
		}
		if temperature >= 0 {
			c.temperature = temperature
		}
	}
}

// WithContextWindow sets how many memory entries seed the provider
// context. Zero means no limit; negative values keep the default.
func WithContextWindow(n int) Option {
	return func(c *Controller) {
		if n >= 0 {
			c.contextWindow = n
		}
	}
}

// WithMemoryEnabled toggles session memory. When disabled the provider
// sees each submission without prior-turn context and nothing is recorded.
func WithMemoryEnabled(enabled bool) Option {
	return func(c *Controller) { c.memoryEnabled = enabled }
}

// New creates a Controller for a fresh conversation.
func New(completer Completer, mem *memory.SessionMemory, store *storage.ConversationStore, modelID string, opts ...Option) *Controller {
	c := &Controller{
		state:         StateIdle,
		completer:     completer,
		memory:        mem,
		store:         store,
		modelID:       modelID,
		maxTokens:     2000,
		temperature:   0.7,
		contextWindow: ContextWindow,
		memoryEnabled: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sessionID == "" {
		c.sessionID = uuid.NewString()
	}
	c.conv = model.NewConversation(c.sessionID, modelID)
	return c
}

// =============================================================================
// ACCESSORS
// =============================================================================

// SessionID returns the conversation/session identifier.
func (c *Controller) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Model returns the active model identifier.
func (c *Controller) Model() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modelID
}

// SetModel switches the active model. Ignored while a request is in
// flight.
func (c *Controller) SetModel(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateIdle || id == "" {
		return
	}
	c.modelID = id
	c.conv.Model = id
}

// Messages returns a snapshot of the conversation.
func (c *Controller) Messages() []*model.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conv.Snapshot()
}

// =============================================================================
// SUBMIT
// =============================================================================

// Submit sends a user message and blocks until the assistant response is
// final and persisted. Blank input and a busy controller are silent
// no-ops. Errors from the provider never escape: they land in the
// transcript as an error-kind message and the controller returns to idle.
func (c *Controller) Submit(ctx context.Context, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}

	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return
	}
	c.state = StateSending

	streaming := catalog.SupportsStreaming(c.modelID)
	user := model.NewUserMessage(text, c.modelID)
	placeholder := model.NewAssistantPlaceholder(c.modelID, streaming)
	c.conv.Append(user)
	c.conv.Append(placeholder)
	modelID := c.modelID
	contextMsgs := c.providerContext()
	c.mu.Unlock()

	c.publish()

	opts := puter.Options{Model: modelID, MaxTokens: c.maxTokens, Temperature: c.temperature}

	var final string
	var err error
	if streaming {
		c.setState(StateStreaming)
		final, err = c.completer.CompleteStreaming(ctx, text, contextMsgs, opts, func(chunk string) {
			c.mu.Lock()
			placeholder.AppendChunk(chunk)
			c.mu.Unlock()
			c.publish()
		})
	} else {
		final, err = c.completer.Complete(ctx, text, contextMsgs, opts)
	}

	c.mu.Lock()
	if err != nil {
		placeholder.SetFinal(fmt.Sprintf("%s\n\nError: %v", connectErrorPrefix, err), model.KindError)
	} else {
		placeholder.SetFinal(final, model.KindText)
	}
	c.state = StateFinalizing
	c.mu.Unlock()
	c.publish()

	if err == nil && c.memoryEnabled {
		c.memory.Append(c.sessionID, modelID, "user", text)
		c.memory.Append(c.sessionID, modelID, "assistant", final)
	}
	c.persist()

	c.setState(StateIdle)
}

// =============================================================================
// REGENERATE
// =============================================================================

// Regenerate replaces the assistant message at index in place with a fresh
// completion of the preceding user message, using the transcript before
// that turn as context. No-op when the index is 0 or
// out of range, the preceding message is not from the user, or a request
// is in flight. On provider failure the existing message is left untouched
// and the error is returned.
func (c *Controller) Regenerate(ctx context.Context, index int) error {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return nil
	}
	target := c.conv.At(index)
	prev := c.conv.At(index - 1)
	if index <= 0 || target == nil || prev == nil || prev.Sender != model.SenderUser {
		c.mu.Unlock()
		return nil
	}
	c.state = StateSending
	prompt := prev.Content
	modelID := c.modelID
	// Context comes from the transcript before the user turn, not session
	// memory: memory already holds the answer being replaced, and feeding
	// it back would bias the provider toward repeating it.
	contextMsgs := transcriptContext(c.conv.HistoryBefore(index - 1))
	c.mu.Unlock()

	// Regenerate is always a single blocking completion, never streamed.
	opts := puter.Options{Model: modelID, MaxTokens: c.maxTokens, Temperature: c.temperature}
	final, err := c.completer.Complete(ctx, prompt, contextMsgs, opts)
	if err != nil {
		c.setState(StateIdle)
		return fmt.Errorf("regenerating response: %w", err)
	}

	c.mu.Lock()
	target.Regenerate(final, modelID)
	c.state = StateFinalizing
	c.mu.Unlock()
	c.publish()

	c.persist()
	c.setState(StateIdle)
	return nil
}

// =============================================================================
// CLEAR AND RESUME
// =============================================================================

// Clear empties the conversation and removes its persisted record.
// Session memory is left alone: it is keyed by session and model,
// independent of the visible transcript. No-op while a request is in
// flight.
func (c *Controller) Clear() {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return
	}
	c.conv.Clear()
	id := c.sessionID
	c.mu.Unlock()

	if err := c.store.Delete(id); err != nil {
		log.Printf("chat: removing persisted conversation %s: %v", id, err)
	}
	c.publish()
}

// Resume loads a persisted conversation into the controller, replacing
// the current transcript. No-op while a request is in flight.
func (c *Controller) Resume(id string) error {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	messages, err := c.store.Load(id)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.sessionID = id
	c.conv = model.NewConversation(id, c.modelID)
	for _, m := range messages {
		c.conv.Append(m)
	}
	c.mu.Unlock()
	c.publish()
	return nil
}

// =============================================================================
// INTERNAL
// =============================================================================

// providerContext builds the provider message list from session memory.
// Nil when memory is disabled. Caller holds c.mu.
func (c *Controller) providerContext() []puter.Message {
	if !c.memoryEnabled {
		return nil
	}
	entries := c.memory.Context(c.sessionID, c.modelID, c.contextWindow)
	out := make([]puter.Message, len(entries))
	for i, e := range entries {
		out[i] = puter.Message{Role: e.Role, Content: e.Content}
	}
	return out
}

// transcriptContext converts transcript messages into provider context.
func transcriptContext(msgs []*model.Message) []puter.Message {
	out := make([]puter.Message, 0, len(msgs))
	for _, m := range msgs {
		role := "user"
		if m.Sender == model.SenderAssistant {
			role = "assistant"
		}
		out = append(out, puter.Message{Role: role, Content: m.Content})
	}
	return out
}

// persist saves the conversation. Persistence failure is logged, never
// surfaced: it must not block the chat flow.
func (c *Controller) persist() {
	c.mu.Lock()
	conv := c.conv
	c.mu.Unlock()

	if err := c.store.Save(conv); err != nil {
		log.Printf("chat: persisting conversation %s: %v", conv.ID, err)
	}
}

// publish hands a snapshot to the notify callback, outside the lock.
func (c *Controller) publish() {
	if c.notify == nil {
		return
	}
	c.mu.Lock()
	snapshot := c.conv.Snapshot()
	c.mu.Unlock()
	c.notify(snapshot)
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}
