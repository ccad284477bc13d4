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
	"strings"
	"time"
)

// Record is the per-call output tree handed to the output stage. It is
// constructed fresh for every log call, fully populated before it is
// rendered, and never retained afterwards.
type Record map[string]any

// Top-level and nested field names of the record schema.
const (
	fieldLevel    = "level"
	fieldSeverity = "severity"
	fieldDT       = "dt"
	fieldMessage  = "message"
	fieldContext  = "context"
	fieldEvent    = "event"
)

// hostMeta carries the process metadata stamped into every record. It is
// gathered once at logger construction and reused for every call.
type hostMeta struct {
	hostname    string
	pid         int
	processName string
}

// newRecord builds the fixed record skeleton: level, severity, timestamp,
// message, the runtime/source/system context subtrees, and an empty event
// object for the error and request serializers to populate.
func newRecord(level Severity, msg, sourceLocation, appName string, meta hostMeta, now time.Time) Record {
	return Record{
		fieldLevel:    level.String(),
		fieldSeverity: int(level),
		fieldDT:       now.UTC().Format(time.RFC3339Nano),
		fieldMessage:  msg,
		fieldContext: map[string]any{
			"runtime": map[string]any{
				"application": appName,
			},
			"source": map[string]any{
				"file_name": sourceLocation,
			},
			"system": map[string]any{
				"hostname":     meta.hostname,
				"pid":          meta.pid,
				"process_name": meta.processName,
			},
		},
		fieldEvent: map[string]any{},
	}
}

// MergeAt writes value into the record at the dotted path, creating
// intermediate objects as needed. The last writer for a given exact path
// wins; a non-object value encountered along the way is replaced by a fresh
// object so the merge always succeeds. An empty path is a no-op.
func (r Record) MergeAt(path string, value any) {
	if path == "" {
		return
	}

	segments := strings.Split(path, ".")
	curr := map[string]any(r)
	for _, segment := range segments[:len(segments)-1] {
		next, ok := curr[segment].(map[string]any)
		if !ok {
			next = map[string]any{}
			curr[segment] = next
		}
		curr = next
	}
	curr[segments[len(segments)-1]] = value
}

// lookupPath walks a dotted path and returns the value stored there. Used by
// tests and the pretty renderer.
func (r Record) lookupPath(path string) (any, bool) {
	segments := strings.Split(path, ".")
	var curr any = map[string]any(r)
	for _, segment := range segments {
		m, ok := curr.(map[string]any)
		if !ok {
			return nil, false
		}
		curr, ok = m[segment]
		if !ok {
			return nil, false
		}
	}
	return curr, true
}
