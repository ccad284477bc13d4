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
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestSerializeUserIdentity(t *testing.T) {
	user := map[string]any{"id": 12, "email": "two@go.com"}
	got, err := serializeUser(user)
	if err != nil {
		t.Fatalf("serializeUser error: %v", err)
	}
	if got.Path != PathUser {
		t.Fatalf("path = %q, want %q", got.Path, PathUser)
	}
	value, ok := got.Value.(map[string]any)
	if !ok || value["id"] != 12 || value["email"] != "two@go.com" {
		t.Fatalf("value = %v, want the original user object", got.Value)
	}
}

func TestSerializeCustomIdentity(t *testing.T) {
	got, err := serializeCustom("anything")
	if err != nil {
		t.Fatalf("serializeCustom error: %v", err)
	}
	if got.Path != PathCustom || got.Value != "anything" {
		t.Fatalf("got %+v, want identity merge at %s", got, PathCustom)
	}
}

// tracedError carries a synthetic stack so the backtrace extraction path can
// be exercised without a stack-capturing errors library in the test.
type tracedError struct {
	msg string
	pcs []uintptr
}

func (e *tracedError) Error() string         { return e.msg }
func (e *tracedError) StackTrace() []uintptr { return e.pcs }

func newTracedError(msg string) *tracedError {
	var pcs [8]uintptr
	n := runtime.Callers(1, pcs[:])
	return &tracedError{msg: msg, pcs: pcs[:n]}
}

func TestSerializeError(t *testing.T) {
	t.Run("plain error", func(t *testing.T) {
		got, err := serializeError(errors.New("boom"))
		if err != nil {
			t.Fatalf("serializeError error: %v", err)
		}
		if got.Path != PathError {
			t.Fatalf("path = %q, want %q", got.Path, PathError)
		}
		value := got.Value.(map[string]any)
		if value["name"] != "*errors.errorString" {
			t.Fatalf("name = %v", value["name"])
		}
		if value["message"] != "boom" {
			t.Fatalf("message = %v", value["message"])
		}
		frames, ok := value["backtrace"].([]BacktraceFrame)
		if !ok || frames == nil {
			t.Fatalf("backtrace = %T(%v), want empty non-nil slice", value["backtrace"], value["backtrace"])
		}
		if len(frames) != 0 {
			t.Fatalf("plain error produced %d frames", len(frames))
		}
	})

	t.Run("error with stack", func(t *testing.T) {
		got, err := serializeError(newTracedError("with stack"))
		if err != nil {
			t.Fatalf("serializeError error: %v", err)
		}
		value := got.Value.(map[string]any)
		frames := value["backtrace"].([]BacktraceFrame)
		if len(frames) == 0 {
			t.Fatal("expected backtrace frames from stackTracer error")
		}
		if frames[0].File == "" || frames[0].Function == "" || frames[0].Line == 0 {
			t.Fatalf("first frame incomplete: %+v", frames[0])
		}
	})

	t.Run("wrapped error with stack", func(t *testing.T) {
		wrapped := &wrapErr{inner: newTracedError("inner")}
		got, _ := serializeError(wrapped)
		value := got.Value.(map[string]any)
		frames := value["backtrace"].([]BacktraceFrame)
		if len(frames) == 0 {
			t.Fatal("expected frames discovered through Unwrap")
		}
	})

	t.Run("nil value keeps shape", func(t *testing.T) {
		got, err := serializeError(nil)
		if err != nil {
			t.Fatalf("serializeError(nil) error: %v", err)
		}
		value := got.Value.(map[string]any)
		if value["name"] != "Error" || value["message"] != "" {
			t.Fatalf("nil error value = %v", value)
		}
	})

	t.Run("non-error stringified", func(t *testing.T) {
		got, _ := serializeError("just text")
		value := got.Value.(map[string]any)
		if value["message"] != "just text" {
			t.Fatalf("message = %v", value["message"])
		}
	})
}

type wrapErr struct{ inner error }

func (e *wrapErr) Error() string { return "wrapped: " + e.inner.Error() }
func (e *wrapErr) Unwrap() error { return e.inner }

func TestSerializeRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "https://api.example.com/v1/items?limit=5", nil)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer secret-token")
	req.Header.Set("Cookie", "session=abc")

	got, err := serializeRequest(req)
	if err != nil {
		t.Fatalf("serializeRequest error: %v", err)
	}
	if got.Path != PathHTTPRequest {
		t.Fatalf("path = %q, want %q", got.Path, PathHTTPRequest)
	}

	value := got.Value.(map[string]any)
	if value["method"] != http.MethodPost {
		t.Fatalf("method = %v", value["method"])
	}
	if value["host"] != "api.example.com" {
		t.Fatalf("host = %v", value["host"])
	}
	if value["path"] != "/v1/items" {
		t.Fatalf("path = %v", value["path"])
	}
	if value["query_string"] != "limit=5" {
		t.Fatalf("query_string = %v", value["query_string"])
	}
	if value["scheme"] != "https" {
		t.Fatalf("scheme = %v", value["scheme"])
	}

	headers := value["headers"].(map[string]string)
	if headers["Accept"] != "application/json" {
		t.Fatalf("Accept header = %q", headers["Accept"])
	}
	if headers["Authorization"] != redactedHeaderValue {
		t.Fatalf("Authorization header = %q, want redacted", headers["Authorization"])
	}
	if headers["Cookie"] != redactedHeaderValue {
		t.Fatalf("Cookie header = %q, want redacted", headers["Cookie"])
	}
}

func TestSerializeRequestDeclines(t *testing.T) {
	for _, value := range []any{nil, "not a request", (*http.Request)(nil), 42} {
		got, err := serializeRequest(value)
		if err != nil {
			t.Fatalf("serializeRequest(%v) error: %v", value, err)
		}
		if got.Path != "" {
			t.Fatalf("serializeRequest(%v) merged at %q, want decline", value, got.Path)
		}
	}
}

func TestRequestScheme(t *testing.T) {
	plain := httptest.NewRequest(http.MethodGet, "/health", nil)
	plain.URL.Scheme = ""
	if got := requestScheme(plain); got != "http" {
		t.Fatalf("plain scheme = %q", got)
	}

	forwarded := httptest.NewRequest(http.MethodGet, "/health", nil)
	forwarded.URL.Scheme = ""
	forwarded.Header.Set("X-Forwarded-Proto", "HTTPS")
	if got := requestScheme(forwarded); got != "https" {
		t.Fatalf("forwarded scheme = %q", got)
	}
}

func TestSerializeTrace(t *testing.T) {
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10},
		SpanID:     trace.SpanID{0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10, 0x11},
		TraceFlags: trace.FlagsSampled,
	})

	got, err := serializeTrace(sc)
	if err != nil {
		t.Fatalf("serializeTrace error: %v", err)
	}
	if got.Path != PathTrace {
		t.Fatalf("path = %q, want %q", got.Path, PathTrace)
	}
	value := got.Value.(map[string]any)
	if value["trace_id"] != "0102030405060708090a0b0c0d0e0f10" {
		t.Fatalf("trace_id = %v", value["trace_id"])
	}
	if value["span_id"] != "0a0b0c0d0e0f1011" {
		t.Fatalf("span_id = %v", value["span_id"])
	}
	if value["trace_sampled"] != true {
		t.Fatalf("trace_sampled = %v", value["trace_sampled"])
	}
}

func TestSerializeTraceDeclines(t *testing.T) {
	for _, value := range []any{nil, trace.SpanContext{}, "abc"} {
		got, err := serializeTrace(value)
		if err != nil {
			t.Fatalf("serializeTrace(%v) error: %v", value, err)
		}
		if got.Path != "" {
			t.Fatalf("serializeTrace(%v) merged at %q, want decline", value, got.Path)
		}
	}
}

func TestTraceBag(t *testing.T) {
	if bag := TraceBag(context.Background()); bag != nil {
		t.Fatalf("TraceBag without span = %v, want nil", bag)
	}

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{0x01},
		SpanID:  trace.SpanID{0x01},
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)
	bag := TraceBag(ctx)
	if bag == nil {
		t.Fatal("TraceBag with span = nil")
	}
	if _, ok := bag[KeyTrace].(trace.SpanContext); !ok {
		t.Fatalf("bag[%q] = %T", KeyTrace, bag[KeyTrace])
	}
}

func TestNewRegistry(t *testing.T) {
	custom := func(any) (Serialized, error) {
		return Serialized{Path: "context.team", Value: "core"}, nil
	}

	reg := newRegistry(map[string]Serializer{
		KeyUser:  custom, // override a default
		"team":   custom, // extend with a new key
		KeyTrace: nil,    // remove a default
	})

	if _, ok := reg.lookup(KeyError); !ok {
		t.Fatal("default error serializer missing")
	}
	if _, ok := reg.lookup("team"); !ok {
		t.Fatal("extension key missing")
	}
	if _, ok := reg.lookup(KeyTrace); ok {
		t.Fatal("nil override did not remove the trace serializer")
	}
	if _, ok := reg.lookup("unknown"); ok {
		t.Fatal("lookup of unregistered key succeeded")
	}

	got, err := reg[KeyUser](nil)
	if err != nil || got.Path != "context.team" {
		t.Fatalf("override not applied: %+v, %v", got, err)
	}
}
