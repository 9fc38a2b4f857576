// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		if m.markdown {
			renderer, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(m.viewport.Width),
			)
			if err == nil {
				m.renderer = renderer
			}
		}
		m.refreshTranscript()
		m.ready = true
		return m, nil

	case conversationMsg:
		m.messages = msg
		if last := len(msg) - 1; last >= 0 && msg[last].Streaming {
			// Mid-stream snapshot: feed the new tail into the buffer and only
			// repaint when a batch or frame boundary is crossed.
			content := msg[last].Content
			if len(content) >= m.streamedLen {
				m.stream.Write(content[m.streamedLen:])
				m.streamedLen = len(content)
			}
			if _, ok := m.stream.Flush(); ok {
				m.refreshTranscript()
				m.viewport.GotoBottom()
			}
			return m, m.waitForUpdate()
		}
		m.streamedLen = 0
		m.stream.Drain()
		m.refreshTranscript()
		m.viewport.GotoBottom()
		return m, m.waitForUpdate()

	case requestDoneMsg:
		m.busy = false
		m.messages = m.ctrl.Messages()
		m.refreshTranscript()
		m.viewport.GotoBottom()
		return m, nil

	case tea.KeyMsg:
		if m.picker.open {
			return m.updatePicker(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Picker):
			m.picker.open = true
			return m, nil
		case key.Matches(msg, m.keys.Send):
			text := strings.TrimSpace(m.textarea.Value())
			if text == "" || m.busy {
				return m, nil
			}
			m.textarea.Reset()
			m.busy = true
			return m, tea.Batch(m.submit(text), m.spinner.Tick)
		case key.Matches(msg, m.keys.Regenerate):
			if m.busy || len(m.messages) < 2 {
				return m, nil
			}
			m.busy = true
			return m, tea.Batch(m.regenerateLast(), m.spinner.Tick)
		case key.Matches(msg, m.keys.Clear):
			if !m.busy {
				m.ctrl.Clear()
				m.messages = nil
				m.refreshTranscript()
			}
			return m, nil
		}

	default:
		if m.busy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	var taCmd, vpCmd tea.Cmd
	m.textarea, taCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	cmds = append(cmds, taCmd, vpCmd)
	return m, tea.Batch(cmds...)
}

// updatePicker handles keys while the model picker is open.
func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Picker):
		m.picker.open = false
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case msg.String() == "up" || msg.String() == "k":
		if m.picker.cursor > 0 {
			m.picker.cursor--
		}
	case msg.String() == "down" || msg.String() == "j":
		if m.picker.cursor < len(m.picker.entries)-1 {
			m.picker.cursor++
		}
	case key.Matches(msg, m.keys.Send):
		selected := m.picker.entries[m.picker.cursor].entry
		m.ctrl.SetModel(selected.ID)
		m.picker.open = false
	}
	return m, nil
}

// layout sizes the viewport around the fixed chrome (header, input, help).
func (m *Model) layout() {
	inputHeight := m.textarea.Height() + 1
	chrome := 2 + inputHeight + 1 // header + input + help line
	vpHeight := m.height - chrome
	if vpHeight < 1 {
		vpHeight = 1
	}
	if m.viewport.Width == 0 {
		m.viewport = viewport.New(m.width, vpHeight)
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = vpHeight
	}
	m.textarea.SetWidth(m.width)
}
