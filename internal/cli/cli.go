// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"
)

// Args holds the parsed command line.
type Args struct {
	// Plain forces the line-mode REPL instead of the TUI.
	Plain bool
	// Ephemeral keeps all state in memory (nothing persisted).
	Ephemeral bool
	// Model overrides the configured default model.
	Model string
	// Resume is a session id to reload.
	Resume string
	// ListSessions prints the saved session index and exits.
	ListSessions bool
	// ListModels prints the model catalog and exits.
	ListModels bool
	// ShowHelp prints usage and exits.
	ShowHelp bool
	// ShowVersion prints the version and exits.
	ShowVersion bool
}

// Usage is the help text.
const Usage = `cosmic-chat - terminal AI chat

Usage:
  cosmic-chat [options]

Options:
  --model <id>     Model to chat with (default from config)
  --resume <id>    Resume a saved session
  --sessions       List saved sessions and exit
  --models         List available models and exit
  --plain          Line-mode REPL instead of the TUI
  --ephemeral      Keep everything in memory, persist nothing
  --version        Print version and exit
  --help           Show this help
`

// Parse interprets command-line arguments (without the program name).
func Parse(args []string) (Args, error) {
	var out Args
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--plain":
			out.Plain = true
		case "--ephemeral":
			out.Ephemeral = true
		case "--sessions":
			out.ListSessions = true
		case "--models":
			out.ListModels = true
		case "--help", "-h":
			out.ShowHelp = true
		case "--version", "-v":
			out.ShowVersion = true
		case "--model":
			value, err := takeValue(args, &i, arg)
			if err != nil {
				return out, err
			}
			out.Model = value
		case "--resume":
			value, err := takeValue(args, &i, arg)
			if err != nil {
				return out, err
			}
			out.Resume = value
		default:
			if strings.HasPrefix(arg, "--model=") {
				out.Model = strings.TrimPrefix(arg, "--model=")
				continue
			}
			if strings.HasPrefix(arg, "--resume=") {
				out.Resume = strings.TrimPrefix(arg, "--resume=")
				continue
			}
			return out, fmt.Errorf("unknown argument %q", arg)
		}
	}
	return out, nil
}

func takeValue(args []string, i *int, flag string) (string, error) {
	if *i+1 >= len(args) {
		return "", fmt.Errorf("%s requires a value", flag)
	}
	*i++
	return args[*i], nil
}
