// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cosmicai/cosmic-chat/internal/kv"
	"github.com/cosmicai/cosmic-chat/internal/memory"
	"github.com/cosmicai/cosmic-chat/internal/model"
	"github.com/cosmicai/cosmic-chat/internal/puter"
	"github.com/cosmicai/cosmic-chat/internal/storage"
)

// fakeCompleter scripts provider behavior for controller tests.
type fakeCompleter struct {
	response string
	chunks   []string
	err      error

	calls       int
	lastMessage string
	lastContext []puter.Message
	lastOpts    puter.Options
}

func (f *fakeCompleter) Complete(_ context.Context, message string, contextMsgs []puter.Message, opts puter.Options) (string, error) {
	f.calls++
	f.lastMessage = message
	f.lastContext = contextMsgs
	f.lastOpts = opts
	return f.response, f.err
}

func (f *fakeCompleter) CompleteStreaming(_ context.Context, message string, contextMsgs []puter.Message, opts puter.Options, onChunk puter.ChunkFunc) (string, error) {
	f.calls++
	f.lastMessage = message
	f.lastContext = contextMsgs
	f.lastOpts = opts
	if f.err != nil {
		return "", f.err
	}
	var b strings.Builder
	for _, chunk := range f.chunks {
		b.WriteString(chunk)
		onChunk(chunk)
	}
	return b.String(), nil
}

type fixture struct {
	ctrl  *Controller
	fake  *fakeCompleter
	store *storage.ConversationStore
	mem   *memory.SessionMemory
}

func newFixture(t *testing.T, modelID string, fake *fakeCompleter, opts ...Option) *fixture {
	t.Helper()
	backing := kv.NewMemoryStore()
	mem := memory.New(backing)
	store := storage.New(backing)
	return &fixture{
		ctrl:  New(fake, mem, store, modelID, opts...),
		fake:  fake,
		store: store,
		mem:   mem,
	}
}

func TestSubmitAppendsUserThenAssistant(t *testing.T) {
	f := newFixture(t, "o1", &fakeCompleter{response: "the answer"})

	f.ctrl.Submit(context.Background(), "a question")

	msgs := f.ctrl.Messages()
	if len(msgs) != 2 {
		t.Fatalf("messages = %d, want exactly one user and one assistant", len(msgs))
	}
	if msgs[0].Sender != model.SenderUser || msgs[0].Content != "a question" {
		t.Errorf("first message = %+v", msgs[0])
	}
	if msgs[1].Sender != model.SenderAssistant || msgs[1].Content != "the answer" {
		t.Errorf("second message = %+v", msgs[1])
	}
	if msgs[1].Streaming {
		t.Error("assistant message must be finalized")
	}
	if f.ctrl.State() != StateIdle {
		t.Errorf("state = %v, want idle", f.ctrl.State())
	}
}

func TestSubmitBlankIsNoOp(t *testing.T) {
	f := newFixture(t, "gpt-4o", &fakeCompleter{response: "never"})

	f.ctrl.Submit(context.Background(), "")
	f.ctrl.Submit(context.Background(), "   \n\t ")

	if len(f.ctrl.Messages()) != 0 {
		t.Error("blank submits must not touch the conversation")
	}
	if f.fake.calls != 0 {
		t.Error("blank submits must not reach the provider")
	}
}

func TestSubmitStreamingReconciliation(t *testing.T) {
	var observed []string
	fake := &fakeCompleter{chunks: []string{"Hel", "lo, ", "world"}}
	f := newFixture(t, "gpt-4o", fake, WithNotify(func(msgs []*model.Message) {
		if len(msgs) == 2 {
			observed = append(observed, msgs[1].Content)
		}
	}))

	f.ctrl.Submit(context.Background(), "greet me")

	msgs := f.ctrl.Messages()
	if msgs[1].Content != "Hello, world" {
		t.Errorf("final content = %q, want %q", msgs[1].Content, "Hello, world")
	}

	// Every observed intermediate state is a prefix of the final text:
	// chunks applied in order, nothing dropped or reordered.
	for _, content := range observed {
		if !strings.HasPrefix("Hello, world", content) {
			t.Errorf("observed %q is not a left-to-right prefix", content)
		}
	}
	last := observed[len(observed)-1]
	if last != "Hello, world" {
		t.Errorf("last published state = %q", last)
	}
}

func TestSubmitNonStreamingModel(t *testing.T) {
	fake := &fakeCompleter{chunks: []string{"A", "B", "C"}, response: "ABC"}
	f := newFixture(t, "o1", fake) // o1 is batch-only

	f.ctrl.Submit(context.Background(), "think hard")

	msgs := f.ctrl.Messages()
	if msgs[1].Content != "ABC" {
		t.Errorf("content = %q", msgs[1].Content)
	}
	if msgs[1].Streaming {
		t.Error("streaming must be false after completion")
	}
}

func TestSubmitProviderErrorBecomesErrorMessage(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("all request methods failed: boom")}
	f := newFixture(t, "o1", fake)

	f.ctrl.Submit(context.Background(), "a question")

	msgs := f.ctrl.Messages()
	if len(msgs) != 2 {
		t.Fatalf("messages = %d", len(msgs))
	}
	errMsg := msgs[1]
	if errMsg.Kind != model.KindError {
		t.Errorf("kind = %q, want error", errMsg.Kind)
	}
	if !strings.Contains(errMsg.Content, "having trouble connecting") {
		t.Errorf("content = %q", errMsg.Content)
	}
	if !strings.Contains(errMsg.Content, "boom") {
		t.Errorf("content should embed the underlying error: %q", errMsg.Content)
	}
	if f.ctrl.State() != StateIdle {
		t.Errorf("state = %v, want idle (errored is absorbing)", f.ctrl.State())
	}

	// Error turns are persisted like any other.
	persisted, err := f.store.Load(f.ctrl.SessionID())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(persisted) != 2 || persisted[1].Kind != model.KindError {
		t.Errorf("persisted = %+v", persisted)
	}
}

func TestSubmitPersistsConversationAndMemory(t *testing.T) {
	f := newFixture(t, "o1", &fakeCompleter{response: "remembered"})

	f.ctrl.Submit(context.Background(), "remember this")

	persisted, err := f.store.Load(f.ctrl.SessionID())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(persisted) != 2 {
		t.Errorf("persisted %d messages", len(persisted))
	}

	entries := f.mem.Read(f.ctrl.SessionID(), "o1")
	if len(entries) != 2 {
		t.Fatalf("memory entries = %d, want user+assistant", len(entries))
	}
	if entries[0].Role != "user" || entries[1].Role != "assistant" {
		t.Errorf("memory roles = %v, %v", entries[0].Role, entries[1].Role)
	}
}

func TestSubmitSendsMemoryContext(t *testing.T) {
	fake := &fakeCompleter{response: "with context"}
	f := newFixture(t, "o1", fake)

	f.ctrl.Submit(context.Background(), "first")
	f.ctrl.Submit(context.Background(), "second")

	if len(fake.lastContext) != 2 {
		t.Fatalf("context = %v, want prior user+assistant turns", fake.lastContext)
	}
	if fake.lastContext[0].Content != "first" {
		t.Errorf("context[0] = %+v", fake.lastContext[0])
	}
}

func TestTuningOptionsReachProvider(t *testing.T) {
	fake := &fakeCompleter{response: "tuned answer"}
	f := newFixture(t, "o1", fake, WithTuning(512, 0.2))

	f.ctrl.Submit(context.Background(), "a question")

	if fake.lastOpts.MaxTokens != 512 {
		t.Errorf("max tokens = %d, want 512", fake.lastOpts.MaxTokens)
	}
	if fake.lastOpts.Temperature != 0.2 {
		t.Errorf("temperature = %v, want 0.2", fake.lastOpts.Temperature)
	}
}

func TestContextWindowBoundsContext(t *testing.T) {
	fake := &fakeCompleter{response: "answer"}
	f := newFixture(t, "o1", fake, WithContextWindow(2))

	f.ctrl.Submit(context.Background(), "first")
	f.ctrl.Submit(context.Background(), "second")
	f.ctrl.Submit(context.Background(), "third")

	// Memory holds four entries by now; only the newest two may travel.
	if len(fake.lastContext) != 2 {
		t.Fatalf("context = %d entries, want 2", len(fake.lastContext))
	}
	if fake.lastContext[0].Content != "second" || fake.lastContext[1].Content != "answer" {
		t.Errorf("context = %+v, want the newest user+assistant pair", fake.lastContext)
	}
}

func TestMemoryDisabled(t *testing.T) {
	fake := &fakeCompleter{response: "answer"}
	f := newFixture(t, "o1", fake, WithMemoryEnabled(false))

	f.ctrl.Submit(context.Background(), "first")
	f.ctrl.Submit(context.Background(), "second")

	if len(fake.lastContext) != 0 {
		t.Errorf("context = %+v, want none with memory disabled", fake.lastContext)
	}
	if entries := f.mem.Read(f.ctrl.SessionID(), "o1"); len(entries) != 0 {
		t.Errorf("memory recorded %d entries with memory disabled", len(entries))
	}
}

func TestRegenerateReplacesInPlace(t *testing.T) {
	fake := &fakeCompleter{response: "first answer"}
	f := newFixture(t, "o1", fake)
	f.ctrl.Submit(context.Background(), "the question")

	before := f.ctrl.Messages()
	originalID := before[1].ID

	fake.response = "better answer"
	if err := f.ctrl.Regenerate(context.Background(), 1); err != nil {
		t.Fatalf("Regenerate: %v", err)
	}

	after := f.ctrl.Messages()
	if len(after) != 2 {
		t.Fatalf("length changed: %d", len(after))
	}
	if after[1].Content != "better answer" {
		t.Errorf("content = %q", after[1].Content)
	}
	if after[1].ID != originalID {
		t.Error("regenerate must preserve the message id")
	}
	if fake.lastMessage != "the question" {
		t.Errorf("regenerate prompt = %q, want the prior user message", fake.lastMessage)
	}
}

func TestRegenerateUsesTranscriptContext(t *testing.T) {
	fake := &fakeCompleter{response: "first answer"}
	f := newFixture(t, "o1", fake)
	f.ctrl.Submit(context.Background(), "first question")
	fake.response = "stale answer"
	f.ctrl.Submit(context.Background(), "second question")

	fake.response = "fresh answer"
	if err := f.ctrl.Regenerate(context.Background(), 3); err != nil {
		t.Fatalf("Regenerate: %v", err)
	}

	// Context is the transcript before the regenerated exchange; the
	// answer being replaced must not appear in it.
	if len(fake.lastContext) != 2 {
		t.Fatalf("context = %d entries, want the first exchange only", len(fake.lastContext))
	}
	if fake.lastContext[0].Content != "first question" || fake.lastContext[0].Role != "user" {
		t.Errorf("context[0] = %+v", fake.lastContext[0])
	}
	for _, msg := range fake.lastContext {
		if msg.Content == "stale answer" {
			t.Error("the answer being replaced leaked into the context")
		}
	}

	if f.ctrl.Messages()[3].Content != "fresh answer" {
		t.Errorf("content = %q", f.ctrl.Messages()[3].Content)
	}
}

func TestRegenerateNoOps(t *testing.T) {
	fake := &fakeCompleter{response: "answer"}
	f := newFixture(t, "o1", fake)
	f.ctrl.Submit(context.Background(), "q")
	callsAfterSubmit := fake.calls

	snapshot := func() []*model.Message { return f.ctrl.Messages() }
	before := snapshot()

	// Index 0, out of range, and index-1 not a user message.
	f.ctrl.Regenerate(context.Background(), 0)
	f.ctrl.Regenerate(context.Background(), -1)
	f.ctrl.Regenerate(context.Background(), 99)

	after := snapshot()
	if len(after) != len(before) {
		t.Fatal("no-op regenerate changed conversation length")
	}
	for i := range after {
		if after[i].ID != before[i].ID || after[i].Content != before[i].Content {
			t.Errorf("message %d mutated", i)
		}
	}
	if fake.calls != callsAfterSubmit {
		t.Error("no-op regenerate must not reach the provider")
	}
}

func TestRegenerateFailureLeavesMessageUntouched(t *testing.T) {
	fake := &fakeCompleter{response: "original"}
	f := newFixture(t, "o1", fake)
	f.ctrl.Submit(context.Background(), "q")

	fake.err = errors.New("provider down")
	err := f.ctrl.Regenerate(context.Background(), 1)
	if err == nil {
		t.Fatal("expected regenerate failure to be reported")
	}

	msgs := f.ctrl.Messages()
	if msgs[1].Content != "original" {
		t.Errorf("content = %q, want untouched original", msgs[1].Content)
	}
	if f.ctrl.State() != StateIdle {
		t.Errorf("state = %v", f.ctrl.State())
	}
}

func TestClearRemovesPersistedRecordKeepsMemory(t *testing.T) {
	f := newFixture(t, "o1", &fakeCompleter{response: "answer"})
	f.ctrl.Submit(context.Background(), "q")
	id := f.ctrl.SessionID()

	f.ctrl.Clear()

	if len(f.ctrl.Messages()) != 0 {
		t.Error("conversation should be empty after clear")
	}
	if _, err := f.store.Load(id); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("persisted record should be gone, err = %v", err)
	}
	// Memory is keyed independently of the transcript and survives.
	if len(f.mem.Read(id, "o1")) != 2 {
		t.Error("clear must not touch session memory")
	}
}

func TestResumeLoadsPersistedConversation(t *testing.T) {
	backing := kv.NewMemoryStore()
	store := storage.New(backing)
	mem := memory.New(backing)

	first := New(&fakeCompleter{response: "saved answer"}, mem, store, "o1")
	first.Submit(context.Background(), "saved question")
	id := first.SessionID()

	second := New(&fakeCompleter{}, mem, store, "o1")
	if err := second.Resume(id); err != nil {
		t.Fatalf("Resume: %v", err)
	}

	msgs := second.Messages()
	if len(msgs) != 2 {
		t.Fatalf("resumed %d messages", len(msgs))
	}
	if msgs[0].Content != "saved question" {
		t.Errorf("content = %q", msgs[0].Content)
	}
	if second.SessionID() != id {
		t.Errorf("session id = %q, want %q", second.SessionID(), id)
	}
}

func TestSetModelGuards(t *testing.T) {
	f := newFixture(t, "gpt-4o", &fakeCompleter{response: "x"})
	f.ctrl.SetModel("o1")
	if f.ctrl.Model() != "o1" {
		t.Errorf("model = %q", f.ctrl.Model())
	}
	f.ctrl.SetModel("")
	if f.ctrl.Model() != "o1" {
		t.Error("empty model id must be ignored")
	}
}
