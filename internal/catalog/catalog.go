// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import "strings"

// =============================================================================
// ENTRY TYPE
// =============================================================================

// Entry describes one model in the catalog.
type Entry struct {
	ID          string `json:"id"`
	DisplayName string `json:"name"`
	Provider    string `json:"provider"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	Streaming   bool   `json:"streaming"`
}

// =============================================================================
// CATALOG DATA
// =============================================================================

// CategoryOrder fixes the presentation order of the category groups.
var CategoryOrder = []string{
	"Featured", "Reasoning", "Code", "Math", "Vision", "Large", "Fast",
}

// categorized lists the curated model set per category group. A model may
// appear in more than one group (gpt-4o is both Featured and Code).
var categorized = map[string][]Entry{
	"Featured": {
		{ID: "gpt-4o", DisplayName: "GPT-4o", Provider: "OpenAI", Status: "live", Category: "Multimodal"},
		{ID: "claude-3-5-sonnet-20241022", DisplayName: "Claude 3.5 Sonnet", Provider: "Anthropic", Status: "live", Category: "Text"},
		{ID: "deepseek-chat", DisplayName: "DeepSeek Chat", Provider: "DeepSeek", Status: "live", Category: "Text"},
		{ID: "deepseek-reasoner", DisplayName: "DeepSeek R1", Provider: "DeepSeek", Status: "live", Category: "Reasoning"},
		{ID: "gemini-2.0-flash-exp", DisplayName: "Gemini 2.0 Flash", Provider: "Google", Status: "live", Category: "Multimodal"},
		{ID: "o1", DisplayName: "o1", Provider: "OpenAI", Status: "live", Category: "Reasoning"},
		{ID: "grok-2-1212", DisplayName: "Grok-2", Provider: "xAI", Status: "live", Category: "Text"},
	},
	"Reasoning": {
		{ID: "o1-pro", DisplayName: "o1 Pro", Provider: "OpenAI", Status: "live", Category: "Reasoning"},
		{ID: "o1-preview", DisplayName: "o1 Preview", Provider: "OpenAI", Status: "live", Category: "Reasoning"},
		{ID: "o1-mini", DisplayName: "o1 Mini", Provider: "OpenAI", Status: "live", Category: "Reasoning"},
		{ID: "deepseek-reasoner", DisplayName: "DeepSeek R1", Provider: "DeepSeek", Status: "live", Category: "Reasoning"},
		{ID: "qwq-32b-preview", DisplayName: "QwQ 32B", Provider: "Alibaba", Status: "live", Category: "Reasoning"},
		{ID: "gemini-2.0-flash-thinking-exp", DisplayName: "Gemini 2.0 Thinking", Provider: "Google", Status: "live", Category: "Reasoning"},
	},
	"Code": {
		{ID: "gpt-4o", DisplayName: "GPT-4o", Provider: "OpenAI", Status: "live", Category: "Code"},
		{ID: "claude-3-5-sonnet-20241022", DisplayName: "Claude 3.5 Sonnet", Provider: "Anthropic", Status: "live", Category: "Code"},
		{ID: "codestral-2405", DisplayName: "Codestral", Provider: "Mistral", Status: "live", Category: "Code"},
		{ID: "qwen-2.5-coder-32b-instruct", DisplayName: "Qwen 2.5 Coder 32B", Provider: "Alibaba", Status: "live", Category: "Code"},
		{ID: "qwen-2.5-coder-14b-instruct", DisplayName: "Qwen 2.5 Coder 14B", Provider: "Alibaba", Status: "live", Category: "Code"},
		{ID: "qwen-2.5-coder-7b-instruct", DisplayName: "Qwen 2.5 Coder 7B", Provider: "Alibaba", Status: "live", Category: "Code"},
	},
	"Math": {
		{ID: "qwen-2.5-math-72b-instruct", DisplayName: "Qwen 2.5 Math 72B", Provider: "Alibaba", Status: "live", Category: "Math"},
		{ID: "qwen-2.5-math-7b-instruct", DisplayName: "Qwen 2.5 Math 7B", Provider: "Alibaba", Status: "live", Category: "Math"},
		{ID: "qwen-2.5-math-1.5b-instruct", DisplayName: "Qwen 2.5 Math 1.5B", Provider: "Alibaba", Status: "live", Category: "Math"},
	},
	"Vision": {
		{ID: "gpt-4o", DisplayName: "GPT-4o", Provider: "OpenAI", Status: "live", Category: "Vision"},
		{ID: "grok-2-vision-1212", DisplayName: "Grok-2 Vision", Provider: "xAI", Status: "live", Category: "Vision"},
		{ID: "pixtral-large-2411", DisplayName: "Pixtral Large", Provider: "Mistral", Status: "live", Category: "Vision"},
		{ID: "pixtral-12b-2409", DisplayName: "Pixtral 12B", Provider: "Mistral", Status: "live", Category: "Vision"},
		{ID: "gemini-1.5-pro", DisplayName: "Gemini 1.5 Pro", Provider: "Google", Status: "live", Category: "Vision"},
	},
	"Large": {
		{ID: "llama-3.1-405b-instruct", DisplayName: "Llama 3.1 405B", Provider: "Meta", Status: "live", Category: "Large"},
		{ID: "goliath-120b", DisplayName: "Goliath 120B", Provider: "Alpindale", Status: "live", Category: "Large"},
		{ID: "airoboros-l2-70b", DisplayName: "Airoboros L2 70B", Provider: "Jondurbin", Status: "live", Category: "Large"},
		{ID: "llama-3.3-70b-instruct", DisplayName: "Llama 3.3 70B", Provider: "Meta", Status: "live", Category: "Large"},
		{ID: "qwen-2.5-72b-instruct", DisplayName: "Qwen 2.5 72B", Provider: "Alibaba", Status: "live", Category: "Large"},
	},
	"Fast": {
		{ID: "gpt-4o-mini", DisplayName: "GPT-4o Mini", Provider: "OpenAI", Status: "live", Category: "Fast"},
		{ID: "claude-3-5-haiku-20241022", DisplayName: "Claude 3.5 Haiku", Provider: "Anthropic", Status: "live", Category: "Fast"},
		{ID: "gemini-1.5-flash", DisplayName: "Gemini 1.5 Flash", Provider: "Google", Status: "live", Category: "Fast"},
		{ID: "mistral-small-2409", DisplayName: "Mistral Small", Provider: "Mistral", Status: "live", Category: "Fast"},
		{ID: "llama-3.1-8b-instruct", DisplayName: "Llama 3.1 8B", Provider: "Meta", Status: "live", Category: "Fast"},
	},
}

// displayNames maps identifiers that have an explicit display name beyond
// what the categorized table covers.
var displayNames = map[string]string{
	"gpt-4o":                        "GPT-4o",
	"gpt-4o-mini":                   "GPT-4o Mini",
	"gpt-4-turbo":                   "GPT-4 Turbo",
	"gpt-4":                         "GPT-4",
	"gpt-3.5-turbo":                 "GPT-3.5 Turbo",
	"o1":                            "o1",
	"o1-pro":                        "o1 Pro",
	"o1-preview":                    "o1 Preview",
	"o1-mini":                       "o1 Mini",
	"chatgpt-4o-latest":             "ChatGPT-4o Latest",
	"claude-3-5-sonnet-20241022":    "Claude 3.5 Sonnet",
	"claude-3-5-sonnet-20240620":    "Claude 3.5 Sonnet (Jun)",
	"claude-3-5-haiku-20241022":     "Claude 3.5 Haiku",
	"claude-3-opus-20240229":        "Claude 3 Opus",
	"claude-3-sonnet-20240229":      "Claude 3 Sonnet",
	"claude-3-haiku-20240307":       "Claude 3 Haiku",
	"gemini-1.5-pro":                "Gemini 1.5 Pro",
	"gemini-1.5-flash":              "Gemini 1.5 Flash",
	"gemini-2.0-flash-exp":          "Gemini 2.0 Flash",
	"gemini-2.0-flash-thinking-exp": "Gemini 2.0 Thinking",
	"deepseek-chat":                 "DeepSeek Chat",
	"deepseek-reasoner":             "DeepSeek R1",
	"llama-3.3-70b-instruct":        "Llama 3.3 70B",
	"llama-3.1-405b-instruct":       "Llama 3.1 405B",
	"llama-3.1-70b-instruct":        "Llama 3.1 70B",
	"llama-3.1-8b-instruct":         "Llama 3.1 8B",
	"mistral-large-2411":            "Mistral Large",
	"mistral-small-2409":            "Mistral Small",
	"pixtral-large-2411":            "Pixtral Large",
	"pixtral-12b-2409":              "Pixtral 12B",
	"codestral-2405":                "Codestral",
	"grok-2-1212":                   "Grok-2",
	"grok-2-vision-1212":            "Grok-2 Vision",
	"grok-beta":                     "Grok Beta",
	"qwen-2.5-72b-instruct":         "Qwen 2.5 72B",
	"qwen-2.5-coder-32b-instruct":   "Qwen 2.5 Coder 32B",
	"qwen-2.5-coder-14b-instruct":   "Qwen 2.5 Coder 14B",
	"qwen-2.5-coder-7b-instruct":    "Qwen 2.5 Coder 7B",
	"qwen-2.5-math-72b-instruct":    "Qwen 2.5 Math 72B",
	"qwen-2.5-math-7b-instruct":     "Qwen 2.5 Math 7B",
	"qwen-2.5-math-1.5b-instruct":   "Qwen 2.5 Math 1.5B",
	"qwq-32b-preview":               "QwQ 32B",
	"command-r-plus-08-2024":        "Command R+",
	"command-r-08-2024":             "Command R",
	"goliath-120b":                  "Goliath 120B",
	"airoboros-l2-70b":              "Airoboros L2 70B",
}

// batchOnly lists model families that never stream (single-shot responses
// only). Everything else defaults to streaming-capable.
var batchOnly = map[string]bool{
	"o1":                true,
	"o1-pro":            true,
	"o1-preview":        true,
	"o1-mini":           true,
	"deepseek-reasoner": true,
	"qwq-32b-preview":   true,
}

// providerPrefixes maps identifier prefixes to provider names, checked in
// order when an identifier carries no explicit provider segment.
var providerPrefixes = []struct {
	prefix   string
	provider string
}{
	{"gpt-", "OpenAI"},
	{"chatgpt-", "OpenAI"},
	{"o1", "OpenAI"},
	{"claude-", "Anthropic"},
	{"gemini-", "Google"},
	{"learnlm-", "Google"},
	{"deepseek-", "DeepSeek"},
	{"llama-", "Meta"},
	{"mistral-", "Mistral"},
	{"pixtral-", "Mistral"},
	{"codestral-", "Mistral"},
	{"command-", "Cohere"},
	{"grok-", "xAI"},
	{"qwen-", "Alibaba"},
	{"qwq-", "Alibaba"},
}

// =============================================================================
// CATALOG API
// =============================================================================

// ListAll returns every catalog entry in category order, de-duplicated by
// first appearance.
func ListAll() []Entry {
	seen := make(map[string]bool)
	out := make([]Entry, 0, 32)
	for _, cat := range CategoryOrder {
		for _, e := range categorized[cat] {
			if seen[e.ID] {
				continue
			}
			seen[e.ID] = true
			e.Streaming = SupportsStreaming(e.ID)
			out = append(out, e)
		}
	}
	return out
}

// ByCategory returns the category groups in CategoryOrder. Entries within a
// group keep their definition order.
func ByCategory() map[string][]Entry {
	out := make(map[string][]Entry, len(categorized))
	for cat, entries := range categorized {
		group := make([]Entry, len(entries))
		for i, e := range entries {
			e.Streaming = SupportsStreaming(e.ID)
			group[i] = e
		}
		out[cat] = group
	}
	return out
}

// DisplayName returns the human-readable name for a model identifier.
// Unmapped identifiers fall back to the uppercased identifier so the UI
// always has something to show.
func DisplayName(id string) string {
	if name, ok := displayNames[id]; ok {
		return name
	}
	return strings.ToUpper(id)
}

// SupportsStreaming reports whether a model can deliver incremental
// responses. Unknown models default to true; only known batch-only
// families are excluded.
func SupportsStreaming(id string) bool {
	return !batchOnly[stripNamespace(id)]
}

// Resolve returns the catalog entry for an identifier, inferring provider
// and category for identifiers not in the curated table. Never fails.
func Resolve(id string) Entry {
	for _, cat := range CategoryOrder {
		for _, e := range categorized[cat] {
			if e.ID == id {
				e.Streaming = SupportsStreaming(id)
				return e
			}
		}
	}
	provider, category := infer(id)
	return Entry{
		ID:          id,
		DisplayName: DisplayName(id),
		Provider:    provider,
		Category:    category,
		Status:      "unknown",
		Streaming:   SupportsStreaming(id),
	}
}

// =============================================================================
// INFERENCE
// =============================================================================

// infer derives provider and category from the shape of an identifier.
// Recognized shapes: "provider/model" and "namespace:provider/model";
// otherwise known provider prefixes; otherwise Unknown/Other.
func infer(id string) (provider, category string) {
	bare := stripNamespace(id)

	if idx := strings.Index(bare, "/"); idx > 0 {
		return canonicalProvider(bare[:idx]), "Other"
	}

	for _, p := range providerPrefixes {
		if strings.HasPrefix(bare, p.prefix) {
			return p.provider, "Other"
		}
	}
	return "Unknown", "Other"
}

// stripNamespace removes a leading "namespace:" segment if present.
func stripNamespace(id string) string {
	if idx := strings.Index(id, ":"); idx > 0 {
		return id[idx+1:]
	}
	return id
}

// canonicalProvider normalizes a provider path segment to its display form.
func canonicalProvider(seg string) string {
	switch strings.ToLower(seg) {
	case "openai":
		return "OpenAI"
	case "anthropic":
		return "Anthropic"
	case "google":
		return "Google"
	case "deepseek":
		return "DeepSeek"
	case "meta", "meta-llama":
		return "Meta"
	case "mistral", "mistralai":
		return "Mistral"
	case "cohere":
		return "Cohere"
	case "xai", "x-ai":
		return "xAI"
	case "alibaba", "qwen":
		return "Alibaba"
	default:
		if seg == "" {
			return "Unknown"
		}
		return strings.ToUpper(seg[:1]) + seg[1:]
	}
}
