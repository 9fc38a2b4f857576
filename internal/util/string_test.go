// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import "testing"

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"shorter than max", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"truncated", "hello world", 8, "hello..."},
		{"zero max", "hello", 0, ""},
		{"tiny max", "hello", 2, "he"},
		{"unicode", "héllo wörld", 8, "héllo..."},
		{"empty", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateRunes(tt.in, tt.max)
			if got != tt.want {
				t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestTruncateRunesNoEllipsis(t *testing.T) {
	if got := TruncateRunesNoEllipsis("hello world", 5); got != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
	if got := TruncateRunesNoEllipsis("hi", 5); got != "hi" {
		t.Errorf("got %q, want %q", got, "hi")
	}
}

func TestTruncateWidth(t *testing.T) {
	// CJK characters are double-width
	if got := TruncateWidth("日本語テスト", 6); got == "日本語テスト" {
		t.Error("expected truncation of double-width string")
	}
	if got := TruncateWidth("abc", 10); got != "abc" {
		t.Errorf("got %q, want %q", got, "abc")
	}
}

func TestCollapseWhitespace(t *testing.T) {
	if got := CollapseWhitespace("a\nb\r\nc\rd"); got != "a b c d" {
		t.Errorf("got %q, want %q", got, "a b c d")
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("ab", 5); got != "ab   " {
		t.Errorf("got %q", got)
	}
	if got := PadRight("abcdef", 3); got != "abcdef" {
		t.Errorf("got %q", got)
	}
}
