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

// Reserved context-bag keys recognized by the default serializer registry.
const (
	// KeyUser routes a user object to context.user.
	KeyUser = "user"
	// KeyError routes an error value to event.error.
	KeyError = "error"
	// KeyRequest routes an HTTP request to event.http_request.
	KeyRequest = "req"
	// KeyCustom merges arbitrary caller data at context.custom.
	KeyCustom = "custom"
	// KeyTrace routes an OpenTelemetry span context to context.trace.
	KeyTrace = "trace"
)

// Serialized is the output of a serializer: a value to merge into the record
// at a dotted insertion path. An empty Path skips the merge entirely, which
// lets a serializer decline malformed input without failing the call.
type Serialized struct {
	Path  string
	Value any
}

// Serializer transforms one context-bag value into a Serialized merge
// directive. Serializers run synchronously during dispatch, must not retain
// the value, and must tolerate whatever shape callers hand them for their
// key; returning an error fails the whole log call before anything is
// written.
type Serializer func(value any) (Serialized, error)

// registry is the resolved, read-only key-to-serializer mapping owned by a
// Logger. It is built once at construction and never mutated afterwards, so
// concurrent log calls can read it without locking.
type registry map[string]Serializer

// newRegistry merges caller overrides over the built-in defaults. An
// override fully replaces the default for the same key; keys without a
// default extend the registry.
func newRegistry(overrides map[string]Serializer) registry {
	reg := registry{
		KeyUser:    serializeUser,
		KeyError:   serializeError,
		KeyRequest: serializeRequest,
		KeyCustom:  serializeCustom,
		KeyTrace:   serializeTrace,
	}
	for key, fn := range overrides {
		if fn == nil {
			delete(reg, key)
			continue
		}
		reg[key] = fn
	}
	return reg
}

// lookup returns the serializer registered for key, if any.
func (r registry) lookup(key string) (Serializer, bool) {
	fn, ok := r[key]
	return fn, ok
}
