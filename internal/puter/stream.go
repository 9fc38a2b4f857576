// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package puter

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"
)

// =============================================================================
// STREAM READER
// =============================================================================

// StreamReader handles line-by-line JSON parsing of streaming responses.
// Chunks are delivered to the callback synchronously in arrival order,
// exactly once each, and accumulated for the final text.
type StreamReader struct {
	reader *bufio.Reader
	// PERFORMANCE: strings.Builder avoids quadratic allocations
	accumulator strings.Builder
	chunkCount  int
}

// NewStreamReader creates a new stream reader from an io.Reader.
func NewStreamReader(r io.Reader) *StreamReader {
	return &StreamReader{reader: bufio.NewReader(r)}
}

// streamChunk is one NDJSON line of a streaming response. The service is
// no more consistent here than on the non-streaming side, so a couple of
// shapes are accepted.
type streamChunk struct {
	Text    string `json:"text"`
	Content string `json:"content"`
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
	Delta struct {
		Content string `json:"content"`
	} `json:"delta"`
	Done bool `json:"done"`
}

func (c *streamChunk) text() string {
	switch {
	case c.Text != "":
		return c.Text
	case c.Content != "":
		return c.Content
	case c.Message.Content != "":
		return c.Message.Content
	default:
		return c.Delta.Content
	}
}

// Process reads the stream to completion, invoking onChunk for every text
// fragment. Returns the accumulated text. A mid-stream read error is not
// fatal: whatever arrived before the failure is the final text (no silent
// data loss), and the error is returned alongside it for logging.
func (s *StreamReader) Process(ctx context.Context, onChunk ChunkFunc) (string, error) {
	for {
		select {
		case <-ctx.Done():
			return s.accumulator.String(), ctx.Err()
		default:
		}

		line, err := s.reader.ReadBytes('\n')
		if len(line) > 0 {
			s.consume(line, onChunk)
		}
		if err != nil {
			if err == io.EOF {
				return s.accumulator.String(), nil
			}
			return s.accumulator.String(), err
		}
	}
}

// consume parses one line and forwards its text. Malformed lines are
// skipped, matching the non-streaming side's tolerance.
func (s *StreamReader) consume(line []byte, onChunk ChunkFunc) {
	trimmed := strings.TrimSpace(string(line))
	if trimmed == "" {
		return
	}

	var chunk streamChunk
	if err := json.Unmarshal([]byte(trimmed), &chunk); err != nil {
		return
	}

	if text := chunk.text(); text != "" {
		s.accumulator.WriteString(text)
		s.chunkCount++
		if onChunk != nil {
			onChunk(text)
		}
	}
}

// Text returns everything accumulated so far.
func (s *StreamReader) Text() string {
	return s.accumulator.String()
}

// ChunkCount returns how many text fragments were delivered.
func (s *StreamReader) ChunkCount() int {
	return s.chunkCount
}
