// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFrom empty dir: %v", err)
	}
	if cfg.DefaultModel != "gpt-4o" {
		t.Errorf("default model = %q", cfg.DefaultModel)
	}
	if cfg.Chat.MaxTokens != 2000 {
		t.Errorf("max tokens = %d", cfg.Chat.MaxTokens)
	}
	if !cfg.Chat.MemoryEnabled {
		t.Error("memory should default on")
	}
}

func TestLoadFromTOML(t *testing.T) {
	dir := t.TempDir()
	content := `
default_model = "o1"

[chat]
max_tokens = 500
temperature = 0.2
memory_enabled = true
context_window = 5

[provider]
base_url = "https://example.com"
timeout_secs = 10
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.DefaultModel != "o1" {
		t.Errorf("model = %q", cfg.DefaultModel)
	}
	if cfg.Chat.MaxTokens != 500 {
		t.Errorf("max tokens = %d", cfg.Chat.MaxTokens)
	}
	if cfg.Provider.BaseURL != "https://example.com" {
		t.Errorf("base url = %q", cfg.Provider.BaseURL)
	}
}

func TestLoadFromJSONFallback(t *testing.T) {
	dir := t.TempDir()
	content := `{"default_model": "deepseek-chat"}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.DefaultModel != "deepseek-chat" {
		t.Errorf("model = %q", cfg.DefaultModel)
	}
}

func TestTOMLTakesPrecedenceOverJSON(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`default_model = "from-toml"`), 0o644)
	os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"default_model": "from-json"}`), 0o644)

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.DefaultModel != "from-toml" {
		t.Errorf("model = %q, want TOML to win", cfg.DefaultModel)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("COSMIC_MODEL", "claude-3-5-haiku-20241022")
	t.Setenv("COSMIC_MAX_TOKENS", "1234")
	t.Setenv("COSMIC_PLAIN", "true")

	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.DefaultModel != "claude-3-5-haiku-20241022" {
		t.Errorf("model = %q", cfg.DefaultModel)
	}
	if cfg.Chat.MaxTokens != 1234 {
		t.Errorf("max tokens = %d", cfg.Chat.MaxTokens)
	}
	if !cfg.UI.Plain {
		t.Error("plain mode should be enabled")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty model", func(c *Config) { c.DefaultModel = "" }},
		{"bad url", func(c *Config) { c.Provider.BaseURL = "not a url" }},
		{"negative tokens", func(c *Config) { c.Chat.MaxTokens = -1 }},
		{"temperature out of range", func(c *Config) { c.Chat.Temperature = 3 }},
		{"zero timeout", func(c *Config) { c.Provider.TimeoutSecs = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation failure")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.DefaultModel = "o1-mini"

	if err := cfg.Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if loaded.DefaultModel != "o1-mini" {
		t.Errorf("model = %q", loaded.DefaultModel)
	}
}

func TestWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	Default().Save(dir)

	var mu sync.Mutex
	var got *Config
	w, err := NewWatcher(dir, 50*time.Millisecond, func(cfg *Config) {
		mu.Lock()
		got = cfg
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()
	if err := w.Watch(); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	cfg := Default()
	cfg.DefaultModel = "grok-2-1212"
	if err := cfg.Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	deadline := time.After(3 * time.Second)
	for {
		mu.Lock()
		done := got != nil && got.DefaultModel == "grok-2-1212"
		mu.Unlock()
		if done {
			return
		}
		select {
		case <-deadline:
			t.Fatal("watcher never delivered the reloaded config")
		case <-time.After(20 * time.Millisecond):
		}
	}
}
