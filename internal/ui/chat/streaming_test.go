// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestStreamingBufferBatchThreshold(t *testing.T) {
	sb := NewStreamingBufferWithConfig(3, 30)

	sb.Write("a")
	sb.Write("b")
	if _, ok := sb.Flush(); ok {
		t.Error("flush below batch size and inside frame interval should hold")
	}

	sb.Write("c")
	content, ok := sb.Flush()
	if !ok {
		t.Fatal("batch threshold reached, flush expected")
	}
	if content != "abc" {
		t.Errorf("content = %q", content)
	}
}

func TestStreamingBufferTimeThreshold(t *testing.T) {
	sb := NewStreamingBufferWithConfig(1000, 60)
	sb.Write("slow")

	time.Sleep(25 * time.Millisecond)
	content, ok := sb.Flush()
	if !ok {
		t.Fatal("frame interval elapsed, flush expected")
	}
	if content != "slow" {
		t.Errorf("content = %q", content)
	}
}

func TestStreamingBufferDrain(t *testing.T) {
	sb := NewStreamingBuffer()
	sb.Write("tail")

	content, ok := sb.Drain()
	if !ok || content != "tail" {
		t.Errorf("Drain = %q, %v", content, ok)
	}
	if _, ok := sb.Drain(); ok {
		t.Error("second drain should be empty")
	}
}

func TestStreamingBufferPreservesOrder(t *testing.T) {
	sb := NewStreamingBufferWithConfig(5, 60)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for _, chunk := range []string{"1", "2", "3", "4", "5", "6", "7", "8"} {
			sb.Write(chunk)
		}
	}()
	wg.Wait()

	var out strings.Builder
	for {
		content, ok := sb.Drain()
		if !ok {
			break
		}
		out.WriteString(content)
	}
	if out.String() != "12345678" {
		t.Errorf("reassembled = %q, order must be preserved", out.String())
	}
}
