// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"sync"
	"time"
)

// =============================================================================
// STREAMING BUFFER
// =============================================================================

// StreamingBuffer coalesces streamed chunks for rendering. Chunks arrive
// far faster than a terminal can usefully repaint; the buffer batches them
// and releases at a capped frame rate so the transcript stays smooth
// without dropping or reordering any text. Coalescing only affects render
// cadence — the conversation state applies every chunk individually.
//
// Thread-safety: chunks arrive from the provider goroutine while flushes
// happen on the Bubble Tea loop, so all operations take the mutex.
type StreamingBuffer struct {
	mu         sync.Mutex
	buffer     strings.Builder
	chunkCount int
	lastFlush  time.Time

	batchSize   int
	minInterval time.Duration
}

// NewStreamingBuffer creates a buffer with the default cadence:
// batches of 15 chunks, released at most 30 times per second.
func NewStreamingBuffer() *StreamingBuffer {
	return NewStreamingBufferWithConfig(15, 30)
}

// NewStreamingBufferWithConfig creates a buffer with a custom batch size
// and frame cap.
func NewStreamingBufferWithConfig(batchSize, maxFPS int) *StreamingBuffer {
	if batchSize <= 0 {
		batchSize = 15
	}
	if maxFPS <= 0 || maxFPS > 60 {
		maxFPS = 30
	}
	return &StreamingBuffer{
		batchSize:   batchSize,
		minInterval: time.Duration(1000/maxFPS) * time.Millisecond,
		lastFlush:   time.Now(),
	}
}

// Write adds a chunk. Called from the streaming goroutine.
func (sb *StreamingBuffer) Write(chunk string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.buffer.WriteString(chunk)
	sb.chunkCount++
}

// Flush returns the accumulated text if either threshold (batch size or
// frame interval) has been reached. Called from the Bubble Tea loop.
func (sb *StreamingBuffer) Flush() (string, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.buffer.Len() == 0 {
		return "", false
	}
	if sb.chunkCount < sb.batchSize && time.Since(sb.lastFlush) < sb.minInterval {
		return "", false
	}
	return sb.drainLocked(), true
}

// Drain returns everything buffered regardless of thresholds. Used when a
// stream completes so no tail is left behind.
func (sb *StreamingBuffer) Drain() (string, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.buffer.Len() == 0 {
		return "", false
	}
	return sb.drainLocked(), true
}

func (sb *StreamingBuffer) drainLocked() string {
	content := sb.buffer.String()
	sb.buffer.Reset()
	sb.chunkCount = 0
	sb.lastFlush = time.Now()
	return content
}
