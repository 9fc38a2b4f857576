// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package puter

// Message is one turn of provider context.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options tunes a completion request. Zero values fall back to defaults.
type Options struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

// withDefaults fills unset option fields.
func (o Options) withDefaults(defaultModel string) Options {
	if o.Model == "" {
		o.Model = defaultModel
	}
	if o.MaxTokens == 0 {
		o.MaxTokens = 2000
	}
	if o.Temperature == 0 {
		o.Temperature = 0.7
	}
	return o
}

// ChunkFunc receives streamed text fragments in arrival order.
type ChunkFunc func(text string)

// conversationRequest is the tier 1 wire shape: full structured history.
type conversationRequest struct {
	Messages    []Message `json:"messages"`
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
	Stream      bool      `json:"stream,omitempty"`
}

// simpleRequest is the tier 2 and tier 3 wire shape: one text blob.
type simpleRequest struct {
	Message     string  `json:"message"`
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
	Stream      bool    `json:"stream,omitempty"`
}
