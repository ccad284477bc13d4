// Copyright 2026 The Logality Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logality

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// switchableWriter is an io.Writer whose destination can be swapped
// atomically. The output stage always writes through one of these so a
// logger configured with a file sink can reopen the file after rotation
// without rebuilding the pipeline.
type switchableWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// newSwitchableWriter wraps w, defaulting to io.Discard when nil.
func newSwitchableWriter(w io.Writer) *switchableWriter {
	if w == nil {
		w = io.Discard
	}
	return &switchableWriter{w: w}
}

// Write forwards to the current destination. The mutex also serializes the
// byte writes of concurrent log calls so compact lines never interleave.
func (sw *switchableWriter) Write(p []byte) (int, error) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if sw.w == nil {
		return 0, os.ErrClosed
	}
	n, err := sw.w.Write(p)
	if err != nil {
		return n, fmt.Errorf("logality: sink write: %w", err)
	}
	return n, nil
}

// setWriter swaps the destination. The previous writer is returned so the
// caller can close it when it owns the handle; nil input degrades to
// io.Discard.
func (sw *switchableWriter) setWriter(w io.Writer) io.Writer {
	if w == nil {
		w = io.Discard
	}
	sw.mu.Lock()
	defer sw.mu.Unlock()
	prev := sw.w
	sw.w = w
	return prev
}

// Close closes the current destination when it is closable and redirects
// further writes to io.Discard. Idempotent.
func (sw *switchableWriter) Close() error {
	sw.mu.Lock()
	prev := sw.w
	sw.w = io.Discard
	sw.mu.Unlock()

	if c, ok := prev.(io.Closer); ok && !isStdStream(prev) {
		if err := c.Close(); err != nil {
			return fmt.Errorf("logality: close sink: %w", err)
		}
	}
	return nil
}

// isStdStream reports whether w is one of the process standard streams,
// which the logger never closes on the caller's behalf.
func isStdStream(w io.Writer) bool {
	return w == os.Stdout || w == os.Stderr
}
