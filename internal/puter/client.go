// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package puter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/cosmicai/cosmic-chat/internal/catalog"
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the completion client.
type ClientConfig struct {
	// BaseURL of the hosted AI service.
	BaseURL string

	// ChatPath is the completion endpoint (default: /ai/chat).
	ChatPath string

	// HealthPath is the availability probe endpoint (default: /health).
	HealthPath string

	// Timeout for non-streaming requests (default: 60s).
	Timeout time.Duration

	// HealthTimeout for the availability probe (default: 3s).
	HealthTimeout time.Duration

	// DefaultModel to use if none specified (default: "gpt-4o").
	DefaultModel string

	// RequestsPerSecond caps outbound request rate (default: 5).
	RequestsPerSecond float64
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:           "https://api.puter.com",
		ChatPath:          "/ai/chat",
		HealthPath:        "/health",
		Timeout:           60 * time.Second,
		HealthTimeout:     3 * time.Second,
		DefaultModel:      "gpt-4o",
		RequestsPerSecond: 5,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the hosted AI completion service.
//
// The service's API surface is loosely specified: different deployments
// accept different request shapes and return different response shapes.
// The client therefore degrades through three request tiers (structured
// conversation, flattened text blob, bare message) and probes the response
// for text instead of decoding a fixed schema.
//
// The Client is safe for concurrent use.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "https://api.puter.com"
	}
	if config.ChatPath == "" {
		config.ChatPath = "/ai/chat"
	}
	if config.HealthPath == "" {
		config.HealthPath = "/health"
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}
	if config.HealthTimeout == 0 {
		config.HealthTimeout = 3 * time.Second
	}
	if config.DefaultModel == "" {
		config.DefaultModel = "gpt-4o"
	}
	if config.RequestsPerSecond == 0 {
		config.RequestsPerSecond = 5
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(config.RequestsPerSecond), int(config.RequestsPerSecond)),
	}
}

// =============================================================================
// AVAILABILITY
// =============================================================================

// Available probes the service health endpoint. Any 2xx counts as up.
func (c *Client) Available(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, c.config.HealthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, c.config.BaseURL+c.config.HealthPath, nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// =============================================================================
// COMPLETION
// =============================================================================

// Complete sends a message (with optional prior context) and returns the
// response text.
//
// If the service is unreachable, a locally synthesized fallback response is
// returned with no error — callers never see a hard network failure from
// an unavailable backend. When the service is up, delivery degrades
// through three request tiers; only exhausting all three surfaces an
// error, and then it is a single aggregated ErrTierExhausted.
func (c *Client) Complete(ctx context.Context, message string, contextMsgs []Message, opts Options) (string, error) {
	opts = opts.withDefaults(c.config.DefaultModel)

	if !c.Available(ctx) {
		log.Printf("puter: service not available, using fallback response")
		return Fallback(message, opts.Model, nil), nil
	}

	raw, err := c.sendTiered(ctx, message, contextMsgs, opts, false)
	if err != nil {
		return "", err
	}

	text := ExtractText(raw)
	if len(strings.TrimSpace(text)) < 5 {
		return "", &ClientError{
			Type:    ErrTypeInvalidResponse,
			Message: "empty or invalid response received",
		}
	}
	return text, nil
}

// CompleteStreaming is Complete with incremental delivery: each text
// fragment is handed to onChunk synchronously in arrival order. The
// accumulated text is returned once the stream closes. A mid-stream
// failure keeps everything accumulated so far as the final text.
func (c *Client) CompleteStreaming(ctx context.Context, message string, contextMsgs []Message, opts Options, onChunk ChunkFunc) (string, error) {
	opts = opts.withDefaults(c.config.DefaultModel)

	if !c.Available(ctx) {
		log.Printf("puter: service not available, using fallback response")
		text := Fallback(message, opts.Model, nil)
		if onChunk != nil {
			onChunk(text)
		}
		return text, nil
	}

	body, err := c.openStream(ctx, message, contextMsgs, opts)
	if err != nil {
		// Streaming channel would not open; deliver via the
		// non-streaming cascade instead.
		log.Printf("puter: streaming unavailable (%v), falling back to single response", err)
		text, err := c.Complete(ctx, message, contextMsgs, opts)
		if err != nil {
			return "", err
		}
		if onChunk != nil {
			onChunk(text)
		}
		return text, nil
	}
	defer body.Close()

	reader := NewStreamReader(body)
	text, streamErr := reader.Process(ctx, onChunk)
	if streamErr != nil {
		// Whatever arrived is the final text; no silent data loss.
		log.Printf("puter: stream interrupted after %d chunks: %v", reader.ChunkCount(), streamErr)
	}
	if strings.TrimSpace(text) == "" {
		return "", &ClientError{
			Type:    ErrTypeInvalidResponse,
			Message: "stream produced no text",
			Cause:   streamErr,
		}
	}
	return text, nil
}

// =============================================================================
// TIERED DELIVERY
// =============================================================================

// sendTiered walks the three request tiers, logging each failure and
// degrading to the next shape. Only the last tier's error survives.
func (c *Client) sendTiered(ctx context.Context, message string, contextMsgs []Message, opts Options, stream bool) ([]byte, error) {
	preamble := ""
	if len(contextMsgs) == 0 {
		preamble = catalog.SystemPrompt(opts.Model)
	}

	// Tier 1: full structured conversation.
	raw, err1 := c.post(ctx, conversationRequest{
		Messages:    buildMessages(preamble, contextMsgs, message),
		Model:       opts.Model,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
		Stream:      stream,
	})
	if err1 == nil {
		return raw, nil
	}
	log.Printf("puter: conversation request failed: %v", err1)

	// Tier 2: history collapsed into one text blob.
	raw, err2 := c.post(ctx, simpleRequest{
		Message:     flatten(preamble, contextMsgs, message),
		Model:       opts.Model,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
		Stream:      stream,
	})
	if err2 == nil {
		return raw, nil
	}
	log.Printf("puter: flattened request failed: %v", err2)

	// Tier 3: bare message, minimal options.
	raw, err3 := c.post(ctx, simpleRequest{
		Message: message,
		Model:   opts.Model,
	})
	if err3 == nil {
		return raw, nil
	}
	log.Printf("puter: bare request failed: %v", err3)

	return nil, &ClientError{
		Type:    ErrTypeTierExhausted,
		Message: "all request methods failed",
		Cause:   err3,
	}
}

// openStream issues the tier 1 request with streaming enabled and returns
// the raw NDJSON body. No tier degrade here: if the structured streaming
// request fails, the caller falls back to the non-streaming cascade.
func (c *Client) openStream(ctx context.Context, message string, contextMsgs []Message, opts Options) (io.ReadCloser, error) {
	preamble := ""
	if len(contextMsgs) == 0 {
		preamble = catalog.SystemPrompt(opts.Model)
	}

	payload, err := json.Marshal(conversationRequest{
		Messages:    buildMessages(preamble, contextMsgs, message),
		Model:       opts.Model,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
		Stream:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+c.config.ChatPath, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/x-ndjson")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	return resp.Body, nil
}

// post sends one request payload and returns the raw response body.
func (c *Client) post(ctx context.Context, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+c.config.ChatPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, &ClientError{Type: ErrTypeTimeout, Message: "request timed out", Cause: err}
		}
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return raw, nil
}

// =============================================================================
// REQUEST SHAPING
// =============================================================================

// buildMessages assembles the tier 1 message list: optional system
// preamble, prior context, then the new user message.
func buildMessages(preamble string, contextMsgs []Message, message string) []Message {
	out := make([]Message, 0, len(contextMsgs)+2)
	if preamble != "" {
		out = append(out, Message{Role: "system", Content: preamble})
	}
	out = append(out, contextMsgs...)
	out = append(out, Message{Role: "user", Content: message})
	return out
}

// flatten collapses context and message into the tier 2 text blob.
func flatten(preamble string, contextMsgs []Message, message string) string {
	var b strings.Builder
	if preamble != "" {
		b.WriteString(preamble)
		b.WriteString("\n\n")
	}
	for _, m := range contextMsgs {
		switch m.Role {
		case "assistant":
			b.WriteString("Assistant: ")
		case "system":
			b.WriteString("System: ")
		default:
			b.WriteString("User: ")
		}
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	b.WriteString("User: ")
	b.WriteString(message)
	return b.String()
}
