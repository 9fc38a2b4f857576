// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package kv

import (
	"errors"
	"path/filepath"
	"testing"
)

// stores returns one of each backend for shared conformance tests.
func stores(t *testing.T) map[string]Store {
	t.Helper()

	sqlite, err := OpenSQLite(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func TestGetSetDelete(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get(missing) err = %v, want ErrNotFound", err)
			}

			if err := s.Set("a", []byte("one")); err != nil {
				t.Fatalf("Set: %v", err)
			}
			got, err := s.Get("a")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if string(got) != "one" {
				t.Errorf("Get = %q, want %q", got, "one")
			}

			// Last writer wins.
			if err := s.Set("a", []byte("two")); err != nil {
				t.Fatalf("Set: %v", err)
			}
			got, _ = s.Get("a")
			if string(got) != "two" {
				t.Errorf("Get after overwrite = %q, want %q", got, "two")
			}

			if err := s.Delete("a"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := s.Get("a"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get after delete err = %v, want ErrNotFound", err)
			}

			// Deleting an absent key is not an error.
			if err := s.Delete("a"); err != nil {
				t.Errorf("Delete absent: %v", err)
			}
		})
	}
}

func TestKeysPrefix(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			s.Set("chat-messages-1", []byte("x"))
			s.Set("chat-messages-2", []byte("x"))
			s.Set("chat-memory-1-gpt-4o", []byte("x"))
			s.Set("chat-sessions", []byte("x"))

			keys, err := s.Keys("chat-messages-")
			if err != nil {
				t.Fatalf("Keys: %v", err)
			}
			if len(keys) != 2 {
				t.Fatalf("Keys = %v, want 2 entries", keys)
			}
			if keys[0] != "chat-messages-1" || keys[1] != "chat-messages-2" {
				t.Errorf("Keys = %v, want sorted chat-messages keys", keys)
			}

			all, err := s.Keys("")
			if err != nil {
				t.Fatalf("Keys(\"\"): %v", err)
			}
			if len(all) != 4 {
				t.Errorf("Keys(\"\") = %v, want 4 entries", all)
			}
		})
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := s.Set("k", []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	s.Close()

	s2, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	got, err := s2.Get("k")
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get = %q, want %q", got, "v")
	}
}

func TestMemoryStoreValueIsolation(t *testing.T) {
	s := NewMemoryStore()
	buf := []byte("abc")
	s.Set("k", buf)
	buf[0] = 'z'

	got, _ := s.Get("k")
	if string(got) != "abc" {
		t.Errorf("stored value aliased caller buffer: %q", got)
	}

	got[0] = 'z'
	again, _ := s.Get("k")
	if string(again) != "abc" {
		t.Errorf("returned value aliased stored buffer: %q", again)
	}
}
