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

import "errors"

// ErrInvalidLevel indicates a log call used a severity outside the eight-level
// table. The call fails before any record is assembled or written.
var ErrInvalidLevel = errors.New("logality: invalid severity level")

// ErrFlushTimeout indicates Close returned before the async queue was fully
// drained.
var ErrFlushTimeout = errors.New("logality: flush timeout")

// ErrClosed indicates a log call arrived after Close.
var ErrClosed = errors.New("logality: logger closed")

// SerializerError wraps a failure raised by a registered serializer so
// callers can tell serializer faults apart from sink faults while still
// unwrapping to the original error.
type SerializerError struct {
	// Key is the context-bag key whose serializer failed.
	Key string
	// Err is the original failure returned by the serializer.
	Err error
}

// Error implements the error interface.
func (e *SerializerError) Error() string {
	return "logality: serializer " + e.Key + ": " + e.Err.Error()
}

// Unwrap returns the original serializer failure.
func (e *SerializerError) Unwrap() error {
	return e.Err
}
