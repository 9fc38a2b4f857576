// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAllDeduplicates(t *testing.T) {
	all := ListAll()
	require.NotEmpty(t, all)

	seen := make(map[string]bool)
	for _, e := range all {
		assert.False(t, seen[e.ID], "duplicate entry %s", e.ID)
		seen[e.ID] = true
	}

	// gpt-4o appears in Featured, Code and Vision but lists once.
	assert.True(t, seen["gpt-4o"])
}

func TestByCategoryOrder(t *testing.T) {
	groups := ByCategory()
	require.Len(t, groups, len(CategoryOrder))
	for _, cat := range CategoryOrder {
		assert.NotEmpty(t, groups[cat], "category %s", cat)
	}

	// Definition order within a group is preserved.
	featured := groups["Featured"]
	require.NotEmpty(t, featured)
	assert.Equal(t, "gpt-4o", featured[0].ID)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "GPT-4o", DisplayName("gpt-4o"))
	assert.Equal(t, "Claude 3.5 Sonnet", DisplayName("claude-3-5-sonnet-20241022"))
	// Unmapped ids fall back to the uppercased identifier.
	assert.Equal(t, "SOME-FUTURE-MODEL", DisplayName("some-future-model"))
}

func TestSupportsStreaming(t *testing.T) {
	assert.True(t, SupportsStreaming("gpt-4o"))
	assert.True(t, SupportsStreaming("never-heard-of-it"))

	for _, id := range []string{"o1", "o1-pro", "o1-preview", "o1-mini", "deepseek-reasoner", "qwq-32b-preview"} {
		assert.False(t, SupportsStreaming(id), "%s is batch-only", id)
	}

	// Namespace prefix is stripped before the batch-only check.
	assert.False(t, SupportsStreaming("openrouter:o1"))
}

func TestResolveKnown(t *testing.T) {
	e := Resolve("deepseek-reasoner")
	assert.Equal(t, "DeepSeek", e.Provider)
	assert.Equal(t, "DeepSeek R1", e.DisplayName)
	assert.False(t, e.Streaming)
}

func TestResolveInference(t *testing.T) {
	tests := []struct {
		id       string
		provider string
		category string
	}{
		{"openai/gpt-5", "OpenAI", "Other"},
		{"openrouter:meta-llama/llama-4", "Meta", "Other"},
		{"claude-9-opus", "Anthropic", "Other"},
		{"grok-7", "xAI", "Other"},
		{"totally-unknown-model", "Unknown", "Other"},
	}

	for _, tt := range tests {
		e := Resolve(tt.id)
		assert.Equal(t, tt.provider, e.Provider, "id %s", tt.id)
		assert.Equal(t, tt.category, e.Category, "id %s", tt.id)
		assert.Equal(t, tt.id, e.ID)
		assert.NotEmpty(t, e.DisplayName)
	}
}

func TestSystemPrompt(t *testing.T) {
	assert.Contains(t, SystemPrompt("gpt-4o"), "GPT-4o")
	assert.Contains(t, SystemPrompt("grok-2-1212"), "xAI")
	assert.Empty(t, SystemPrompt("no-such-model"))
}
