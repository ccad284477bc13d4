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

// BoundLogger is a lightweight view of a Logger with the source location
// fixed at creation time, so per-call caller resolution is skipped. It does
// not own the parent logger and must not be shared across call sites whose
// source location differs.
type BoundLogger struct {
	parent *Logger
	source string
}

// Bind captures the caller's source location once and returns a bound logger
// that stamps it into every record.
func (l *Logger) Bind() *BoundLogger {
	return &BoundLogger{parent: l, source: l.resolver(1)}
}

// BindLocation returns a bound logger with an explicit source-location
// string, for callers that carry their own identifiers.
func (l *Logger) BindLocation(location string) *BoundLogger {
	return &BoundLogger{parent: l, source: location}
}

// Source returns the fixed source-location string.
func (b *BoundLogger) Source() string {
	return b.source
}

// Log dispatches one record at the given level using the bound location.
func (b *BoundLogger) Log(level Severity, msg string, bag Bag) *Handle {
	return b.parent.log(level, msg, bag, b.source)
}

// Debug logs at debug severity (rank 7).
func (b *BoundLogger) Debug(msg string, bag ...Bag) *Handle {
	return b.parent.log(SeverityDebug, msg, firstBag(bag), b.source)
}

// Info logs at info severity (rank 6).
func (b *BoundLogger) Info(msg string, bag ...Bag) *Handle {
	return b.parent.log(SeverityInfo, msg, firstBag(bag), b.source)
}

// Notice logs at notice severity (rank 5).
func (b *BoundLogger) Notice(msg string, bag ...Bag) *Handle {
	return b.parent.log(SeverityNotice, msg, firstBag(bag), b.source)
}

// Warn logs at warn severity (rank 4).
func (b *BoundLogger) Warn(msg string, bag ...Bag) *Handle {
	return b.parent.log(SeverityWarn, msg, firstBag(bag), b.source)
}

// Error logs at error severity (rank 3).
func (b *BoundLogger) Error(msg string, bag ...Bag) *Handle {
	return b.parent.log(SeverityError, msg, firstBag(bag), b.source)
}

// Critical logs at critical severity (rank 2).
func (b *BoundLogger) Critical(msg string, bag ...Bag) *Handle {
	return b.parent.log(SeverityCritical, msg, firstBag(bag), b.source)
}

// Alert logs at alert severity (rank 1).
func (b *BoundLogger) Alert(msg string, bag ...Bag) *Handle {
	return b.parent.log(SeverityAlert, msg, firstBag(bag), b.source)
}

// Emergency logs at emergency severity (rank 0).
func (b *BoundLogger) Emergency(msg string, bag ...Bag) *Handle {
	return b.parent.log(SeverityEmergency, msg, firstBag(bag), b.source)
}
