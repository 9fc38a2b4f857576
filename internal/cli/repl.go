// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/cosmicai/cosmic-chat/internal/catalog"
	"github.com/cosmicai/cosmic-chat/internal/chat"
	"github.com/cosmicai/cosmic-chat/internal/model"
	"github.com/cosmicai/cosmic-chat/internal/storage"
	"github.com/cosmicai/cosmic-chat/internal/util"
)

var (
	replPrompt    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	replAssistant = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	replError     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	replMuted     = lipgloss.NewStyle().Faint(true)
)

// =============================================================================
// PLAIN REPL
// =============================================================================

// RunREPL drives a line-mode chat session. Slash commands cover what the
// TUI binds to keys: /model, /models, /regen, /clear, /quit.
func RunREPL(ctrl *chat.Controller, store *storage.ConversationStore) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Println(replAssistant.Render("Cosmic Chat") + replMuted.Render("  ·  "+catalog.DisplayName(ctrl.Model())))
	fmt.Println(replMuted.Render("Type /help for commands, /quit to exit."))
	printTranscriptPreview(ctrl)

	for {
		input, err := line.Prompt(replPrompt.Render("you> "))
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				return nil
			}
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if strings.HasPrefix(input, "/") {
			if quit := handleCommand(ctrl, store, input); quit {
				return nil
			}
			continue
		}

		ctrl.Submit(context.Background(), input)
		printLastReply(ctrl)
	}
}

// handleCommand executes a slash command. Returns true to exit the REPL.
func handleCommand(ctrl *chat.Controller, store *storage.ConversationStore, input string) bool {
	fields := strings.Fields(input)
	switch fields[0] {
	case "/quit", "/exit":
		return true
	case "/help":
		fmt.Println(replMuted.Render(`/model <id>   switch model
/models       list models by category
/sessions     list saved sessions
/regen        regenerate the last reply
/clear        clear the conversation
/quit         exit`))
	case "/model":
		if len(fields) < 2 {
			fmt.Println(replError.Render("usage: /model <id>"))
			return false
		}
		ctrl.SetModel(fields[1])
		entry := catalog.Resolve(ctrl.Model())
		fmt.Println(replMuted.Render("model: " + entry.DisplayName + " (" + entry.Provider + ")"))
	case "/models":
		PrintModels()
	case "/sessions":
		printSessions(store)
	case "/regen":
		index := len(ctrl.Messages()) - 1
		if err := ctrl.Regenerate(context.Background(), index); err != nil {
			fmt.Println(replError.Render("regenerate failed: " + err.Error()))
			return false
		}
		printLastReply(ctrl)
	case "/clear":
		ctrl.Clear()
		fmt.Println(replMuted.Render("conversation cleared"))
	default:
		fmt.Println(replError.Render("unknown command " + fields[0]))
	}
	return false
}

// printTranscriptPreview shows one line per existing message so a resumed
// session has visible history.
func printTranscriptPreview(ctrl *chat.Controller) {
	msgs := ctrl.Messages()
	if len(msgs) == 0 {
		return
	}
	fmt.Println(replMuted.Render("resumed conversation:"))
	for _, msg := range msgs {
		label := "you"
		if msg.Sender == model.SenderAssistant {
			label = catalog.DisplayName(msg.Model)
		}
		fmt.Printf("  %s %s\n", replMuted.Render(label+":"), msg.Preview(72))
	}
}

// printLastReply prints the most recent assistant message.
func printLastReply(ctrl *chat.Controller) {
	msgs := ctrl.Messages()
	if len(msgs) == 0 {
		return
	}
	last := msgs[len(msgs)-1]
	if last.Sender != model.SenderAssistant {
		return
	}

	label := replAssistant.Render(catalog.DisplayName(last.Model) + ">")
	if last.Kind == model.KindError {
		fmt.Printf("%s %s\n", label, replError.Render(last.Content))
		return
	}
	fmt.Printf("%s %s\n", label, last.Content)
}

// PrintModels writes the catalog grouped by category.
func PrintModels() {
	groups := catalog.ByCategory()
	for _, cat := range catalog.CategoryOrder {
		fmt.Println(replAssistant.Render(cat))
		for _, e := range groups[cat] {
			note := ""
			if !e.Streaming {
				note = replMuted.Render("  (no streaming)")
			}
			fmt.Printf("  %-30s %s%s\n", e.ID, replMuted.Render(e.Provider), note)
		}
	}
}

// printSessions writes the saved session index.
func printSessions(store *storage.ConversationStore) {
	sessions, err := store.ListSessions()
	if err != nil {
		fmt.Println(replError.Render("listing sessions: " + err.Error()))
		return
	}
	if len(sessions) == 0 {
		fmt.Println(replMuted.Render("no saved sessions"))
		return
	}
	// Width-aware column so CJK titles stay aligned.
	for _, s := range sessions {
		title := util.PadRight(util.TruncateWidth(s.Title, 48), 48)
		fmt.Printf("%s  %s %s  %d messages\n",
			s.ID, title, replMuted.Render(s.LastUpdated.Format("2006-01-02 15:04")), s.MessageCount)
	}
}

// PrintSessions is the --sessions entry point.
func PrintSessions(store *storage.ConversationStore) {
	printSessions(store)
}
