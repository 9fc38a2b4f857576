// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package puter provides the HTTP client for the hosted AI completion
// service.
//
// The service's API surface is loosely specified: deployments differ in
// which request shapes they accept and which response shapes they return.
// The client degrades through three request tiers (structured
// conversation, flattened text blob, bare message) and probes responses
// for text by a fixed priority order instead of decoding one schema. When
// the service is unreachable, a locally synthesized fallback response is
// returned with no error.
//
// # Key Types
//
//   - Client: Completion client with availability probe and rate limiting
//   - ClientError: Typed error with category matching via errors.Is
//   - StreamReader: NDJSON streaming reader with chunk accumulation
//   - Options: Per-request model, token budget, and temperature
//
// # Usage
//
//	client := puter.NewClient()
//	text, err := client.Complete(ctx, "Hello", nil, puter.Options{Model: "gpt-4o"})
//
// For streaming responses:
//
//	text, err := client.CompleteStreaming(ctx, "Hello", nil, opts, func(chunk string) {
//	    fmt.Print(chunk)
//	})
//
// # Failure Behavior
//
// A mid-stream failure keeps everything accumulated so far as the final
// text. Only exhausting all three request tiers surfaces an error, and
// then it is a single ErrTierExhausted carrying the last tier's cause.
package puter
