// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package puter

import (
	"encoding/json"
	"strings"
)

// Sentinel strings returned when no usable text can be extracted. These are
// surfaced to the user, never thrown.
const (
	NoResponseText      = "No response received from AI service. Please try again."
	InvalidResponseText = "Invalid response format from AI service. Please try again."
)

// =============================================================================
// RESPONSE TEXT EXTRACTION
// =============================================================================

// ExtractText pulls the assistant text out of whatever shape the service
// returned. The API has no fixed response schema, so a fixed priority list
// of known shapes is probed and the first non-empty string wins. A response
// matching no known shape is serialized for diagnostic display rather than
// silently dropped; null maps to NoResponseText.
func ExtractText(raw []byte) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return NoResponseText
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		// Not JSON at all: treat the body as plain text.
		return trimmed
	}

	return extractValue(decoded, raw)
}

// extractValue probes a decoded response value.
func extractValue(decoded any, raw []byte) string {
	switch v := decoded.(type) {
	case nil:
		return NoResponseText
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
		return InvalidResponseText
	case map[string]any:
		// Fixed priority order. First non-empty string wins.
		probes := []func(map[string]any) string{
			func(m map[string]any) string { return stringAt(m, "message", "content") },
			func(m map[string]any) string { return stringInList(childMap(m, "message"), "content", "text") },
			func(m map[string]any) string { return stringAt(m, "text") },
			func(m map[string]any) string { return stringAt(m, "content") },
			func(m map[string]any) string { return stringAt(m, "message") },
			func(m map[string]any) string { return stringAt(m, "data") },
			func(m map[string]any) string {
				return stringInList(m, "choices", "message", "content")
			},
			func(m map[string]any) string { return stringAt(m, "response") },
			func(m map[string]any) string { return stringAt(m, "output") },
			func(m map[string]any) string { return stringAt(m, "result") },
			func(m map[string]any) string { return stringAt(m, "answer") },
			func(m map[string]any) string { return stringAt(m, "reply") },
		}
		for _, probe := range probes {
			if s := probe(v); s != "" {
				return s
			}
		}
		return unexpectedFormat(raw)
	default:
		return unexpectedFormat(raw)
	}
}

// stringAt walks nested maps along path and returns the trimmed string at
// the end, or "" when any hop is missing or the leaf is not a string.
func stringAt(m map[string]any, path ...string) string {
	var cur any = m
	for _, key := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return ""
		}
		cur = obj[key]
	}
	if s, ok := cur.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// stringInList looks up m[listKey][0] and walks rest from there. Covers
// shapes like choices[0].message.content and message.content[0].text.
func stringInList(m map[string]any, listKey string, rest ...string) string {
	if m == nil {
		return ""
	}
	list, ok := m[listKey].([]any)
	if !ok || len(list) == 0 {
		return ""
	}
	first, ok := list[0].(map[string]any)
	if !ok {
		if s, isStr := list[0].(string); isStr && len(rest) == 0 {
			return strings.TrimSpace(s)
		}
		return ""
	}
	if len(rest) == 0 {
		return ""
	}
	return stringAt(first, rest...)
}

// childMap returns m[key] as a map, or nil.
func childMap(m map[string]any, key string) map[string]any {
	child, _ := m[key].(map[string]any)
	return child
}

// unexpectedFormat serializes an unrecognized response for display.
func unexpectedFormat(raw []byte) string {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err == nil {
		if pretty, err := json.MarshalIndent(decoded, "", "  "); err == nil {
			s := string(pretty)
			if s != "{}" && s != "null" {
				return "Response received in unexpected format:\n" + s
			}
		}
	}
	return InvalidResponseText
}
