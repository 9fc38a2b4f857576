// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cosmicai/cosmic-chat/internal/catalog"
	"github.com/cosmicai/cosmic-chat/internal/model"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.picker.open {
		return m.pickerView()
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.textarea.View())
	b.WriteString("\n")
	b.WriteString(m.helpView())
	return b.String()
}

func (m Model) headerView() string {
	title := m.theme.HeaderTitle.Render("Cosmic Chat")
	modelName := m.theme.HeaderModel.Render(catalog.DisplayName(m.ctrl.Model()))
	status := ""
	if m.busy {
		status = " " + m.spinner.View()
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", modelName, status) + "\n"
}

func (m Model) helpView() string {
	return m.theme.Help.Render("enter send · ctrl+p models · ctrl+r regenerate · ctrl+l clear · ctrl+c quit")
}

// refreshTranscript re-renders the conversation into the viewport.
func (m *Model) refreshTranscript() {
	var b strings.Builder
	for i, msg := range m.messages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderMessage(msg))
	}
	m.viewport.SetContent(b.String())
}

func (m *Model) renderMessage(msg *model.Message) string {
	label := m.theme.AssistantLabel.Render(catalog.DisplayName(msg.Model))
	if msg.Sender == model.SenderUser {
		label = m.theme.UserLabel.Render("You")
	}
	ts := m.theme.Timestamp.Render(msg.Timestamp.Format("15:04"))

	body := msg.Content
	switch {
	case msg.Kind == model.KindError:
		body = m.theme.ErrorText.Render(body)
	case msg.Streaming && body == "":
		body = m.theme.Timestamp.Render("...")
	case msg.Sender == model.SenderAssistant && m.renderer != nil && !msg.Streaming:
		// Markdown rendering waits until the message is final; re-rendering
		// partial markdown every chunk flickers badly.
		if rendered, err := m.renderer.Render(body); err == nil {
			body = strings.TrimRight(rendered, "\n")
		}
	}

	return fmt.Sprintf("%s %s\n%s\n", label, ts, body)
}

// pickerView renders the category-grouped model picker.
func (m Model) pickerView() string {
	var b strings.Builder
	b.WriteString(m.theme.PickerTitle.Render("Select a model"))
	b.WriteString("\n")

	lastCategory := ""
	for i, pe := range m.picker.entries {
		if pe.category != lastCategory {
			b.WriteString(m.theme.PickerCategory.Render(pe.category))
			b.WriteString("\n")
			lastCategory = pe.category
		}

		line := fmt.Sprintf("%s  %s", pe.entry.DisplayName, m.theme.Timestamp.Render(pe.entry.Provider))
		if !pe.entry.Streaming {
			line += m.theme.Timestamp.Render(" (no streaming)")
		}
		if i == m.picker.cursor {
			b.WriteString(m.theme.PickerSelected.Render("› " + line))
		} else {
			b.WriteString(m.theme.PickerItem.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render("↑/↓ move · enter select · esc close"))
	return b.String()
}
