// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete cosmic-chat configuration.
type Config struct {
	// General settings
	Version      string `toml:"version" json:"version"`
	DefaultModel string `toml:"default_model" json:"default_model"`

	// Provider configuration
	Provider ProviderConfig `toml:"provider" json:"provider"`

	// Chat behavior
	Chat ChatConfig `toml:"chat" json:"chat"`

	// Storage configuration
	Storage StorageConfig `toml:"storage" json:"storage"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`
}

// ProviderConfig describes the hosted AI service endpoint.
type ProviderConfig struct {
	// BaseURL of the AI service
	BaseURL string `toml:"base_url" json:"base_url"`
	// ChatPath is the completion endpoint path
	ChatPath string `toml:"chat_path" json:"chat_path"`
	// HealthPath is the availability probe path
	HealthPath string `toml:"health_path" json:"health_path"`
	// TimeoutSecs is the request timeout in seconds
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
	// RequestsPerSecond caps outbound request rate
	RequestsPerSecond float64 `toml:"requests_per_second" json:"requests_per_second"`
}

// ChatConfig tunes completion requests and memory behavior.
type ChatConfig struct {
	// MaxTokens per completion
	MaxTokens int `toml:"max_tokens" json:"max_tokens"`
	// Temperature for sampling
	Temperature float64 `toml:"temperature" json:"temperature"`
	// MemoryEnabled controls whether prior turns seed provider context
	MemoryEnabled bool `toml:"memory_enabled" json:"memory_enabled"`
	// ContextWindow is how many memory entries to send as context
	ContextWindow int `toml:"context_window" json:"context_window"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	// Path to the SQLite database (empty = ~/.cosmic-chat/chat.db)
	Path string `toml:"path" json:"path"`
	// Ephemeral keeps everything in memory (nothing persisted)
	Ephemeral bool `toml:"ephemeral" json:"ephemeral"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// Plain forces the line-mode REPL even on a TTY
	Plain bool `toml:"plain" json:"plain"`
	// Markdown enables glamour rendering of assistant responses
	Markdown bool `toml:"markdown" json:"markdown"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		Version:      "1.0",
		DefaultModel: "gpt-4o",
		Provider: ProviderConfig{
			BaseURL:           "https://api.puter.com",
			ChatPath:          "/ai/chat",
			HealthPath:        "/health",
			TimeoutSecs:       60,
			RequestsPerSecond: 5,
		},
		Chat: ChatConfig{
			MaxTokens:     2000,
			Temperature:   0.7,
			MemoryEnabled: true,
			ContextWindow: 10,
		},
		Storage: StorageConfig{},
		UI: UIConfig{
			Markdown: true,
		},
	}
}

// Dir returns the configuration directory (~/.cosmic-chat).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".cosmic-chat"), nil
}

// StorePath resolves the SQLite database path, applying the default when
// unset.
func (c *Config) StorePath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "chat.db"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads configuration from the default locations, applies environment
// overrides, and validates. Missing files are not an error; defaults fill
// every gap.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(dir)
}

// LoadFrom reads configuration from a specific directory.
func LoadFrom(dir string) (*Config, error) {
	cfg := Default()

	tomlPath := filepath.Join(dir, "config.toml")
	jsonPath := filepath.Join(dir, "config.json")

	switch {
	case fileExists(tomlPath):
		if _, err := toml.DecodeFile(tomlPath, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", tomlPath, err)
		}
	case fileExists(jsonPath):
		data, err := os.ReadFile(jsonPath)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", jsonPath, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", jsonPath, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides lets COSMIC_* variables win over file values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("COSMIC_MODEL"); v != "" {
		cfg.DefaultModel = v
	}
	if v := os.Getenv("COSMIC_BASE_URL"); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := os.Getenv("COSMIC_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Chat.MaxTokens = n
		}
	}
	if v := os.Getenv("COSMIC_STORE_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("COSMIC_PLAIN"); v != "" {
		cfg.UI.Plain = v == "1" || strings.EqualFold(v, "true")
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.DefaultModel == "" {
		return fmt.Errorf("default_model must not be empty")
	}
	if u, err := url.Parse(c.Provider.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("provider.base_url %q is not a valid URL", c.Provider.BaseURL)
	}
	if c.Chat.MaxTokens < 0 {
		return fmt.Errorf("chat.max_tokens must not be negative")
	}
	if c.Chat.Temperature < 0 || c.Chat.Temperature > 2 {
		return fmt.Errorf("chat.temperature %v out of range [0, 2]", c.Chat.Temperature)
	}
	if c.Chat.ContextWindow < 0 {
		return fmt.Errorf("chat.context_window must not be negative")
	}
	if c.Provider.TimeoutSecs <= 0 {
		return fmt.Errorf("provider.timeout_secs must be positive")
	}
	return nil
}

// Save writes the configuration as TOML to the given directory.
func (c *Config) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "config.toml"))
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
