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

import "context"

// Handle reports the outcome of one log call. In synchronous mode the
// handle returned by Log is already resolved, so Err can be consulted
// immediately; in asynchronous mode it resolves once the sink write
// completes (or the call fails earlier in the pipeline).
type Handle struct {
	done chan struct{}
	err  error
}

// newHandle returns an unresolved handle for the async pipeline.
func newHandle() *Handle {
	return &Handle{done: make(chan struct{})}
}

// resolvedHandle returns a handle that completed with err before it was
// returned to the caller. Used by the synchronous pipeline.
func resolvedHandle(err error) *Handle {
	h := &Handle{done: make(chan struct{}), err: err}
	close(h.done)
	return h
}

// resolve completes the handle with err. It must be called exactly once.
func (h *Handle) resolve(err error) {
	h.err = err
	close(h.done)
}

// Done returns a channel that is closed when the call has completed,
// successfully or not.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Err returns the call's failure, or nil on success. It must only be
// consulted after Done is closed; before that the result is undefined.
func (h *Handle) Err() error {
	select {
	case <-h.done:
		return h.err
	default:
		return nil
	}
}

// Wait blocks until the call completes or ctx is cancelled, returning the
// call's failure or the context error. Cancellation abandons the wait only;
// the in-flight record is still written.
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return h.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
