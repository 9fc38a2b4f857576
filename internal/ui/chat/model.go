// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/cosmicai/cosmic-chat/internal/catalog"
	chatctl "github.com/cosmicai/cosmic-chat/internal/chat"
	"github.com/cosmicai/cosmic-chat/internal/model"
	"github.com/cosmicai/cosmic-chat/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// conversationMsg carries a fresh conversation snapshot from the
// controller's notify callback into the Bubble Tea loop.
type conversationMsg []*model.Message

// requestDoneMsg signals that a submit or regenerate finished.
type requestDoneMsg struct{}

// =============================================================================
// PICKER STATE
// =============================================================================

// pickerEntry is one selectable row of the model picker.
type pickerEntry struct {
	category string
	entry    catalog.Entry
}

type pickerState struct {
	open    bool
	entries []pickerEntry
	cursor  int
}

func newPickerState() pickerState {
	groups := catalog.ByCategory()
	var entries []pickerEntry
	for _, cat := range catalog.CategoryOrder {
		for _, e := range groups[cat] {
			entries = append(entries, pickerEntry{category: cat, entry: e})
		}
	}
	return pickerState{entries: entries}
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	ctrl    *chatctl.Controller
	updates <-chan []*model.Message

	theme    *styles.Theme
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	keys     keyMap

	picker   pickerState
	markdown bool
	busy     bool
	width    int
	height   int
	ready    bool

	messages []*model.Message

	// stream coalesces chunk arrivals so the transcript re-renders at most
	// once per frame instead of once per chunk.
	stream      *StreamingBuffer
	streamedLen int
}

// New creates the chat view. updates must be the channel fed by the
// controller's notify callback.
func New(ctrl *chatctl.Controller, updates <-chan []*model.Message, markdown bool) Model {
	theme := styles.NewTheme()

	ta := textarea.New()
	ta.Placeholder = "Ask anything..."
	ta.Prompt = theme.InputPrompt.Render("> ")
	ta.SetHeight(3)
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	return Model{
		ctrl:     ctrl,
		updates:  updates,
		theme:    theme,
		textarea: ta,
		spinner:  sp,
		keys:     defaultKeyMap(),
		picker:   newPickerState(),
		markdown: markdown,
		stream:   NewStreamingBuffer(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.waitForUpdate())
}

// waitForUpdate blocks on the controller's snapshot channel.
func (m Model) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		snapshot, ok := <-m.updates
		if !ok {
			return nil
		}
		return conversationMsg(snapshot)
	}
}

// submit runs the blocking controller call off the UI loop.
func (m Model) submit(text string) tea.Cmd {
	return func() tea.Msg {
		m.ctrl.Submit(context.Background(), text)
		return requestDoneMsg{}
	}
}

// regenerateLast redoes the final assistant turn, if there is one.
func (m Model) regenerateLast() tea.Cmd {
	index := len(m.messages) - 1
	return func() tea.Msg {
		m.ctrl.Regenerate(context.Background(), index)
		return requestDoneMsg{}
	}
}
