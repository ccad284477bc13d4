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
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/trace"
)

// Insertion paths used by the default serializers. A caller-registered
// override may reuse another serializer's path; the last merge for an exact
// path wins.
const (
	PathUser        = "context.user"
	PathCustom      = "context.custom"
	PathTrace       = "context.trace"
	PathError       = "event.error"
	PathHTTPRequest = "event.http_request"
)

// redactedHeaderValue replaces sensitive header values in serialized
// requests.
const redactedHeaderValue = "[REDACTED]"

// serializeUser passes the supplied user object through verbatim at
// context.user.
func serializeUser(value any) (Serialized, error) {
	return Serialized{Path: PathUser, Value: value}, nil
}

// serializeCustom merges arbitrary caller data verbatim at context.custom.
// It is the identity transformation, registered like any other serializer so
// the dispatch contract stays uniform.
func serializeCustom(value any) (Serialized, error) {
	return Serialized{Path: PathCustom, Value: value}, nil
}

// serializeError renders an error value as event.error with name, message,
// and a backtrace list. Values that carry no stack information produce an
// empty backtrace rather than failing; non-error values are stringified.
func serializeError(value any) (Serialized, error) {
	name := "Error"
	message := ""
	backtrace := []BacktraceFrame{}

	switch v := value.(type) {
	case nil:
		// Keep the shape stable even for a nil error value.
	case error:
		name = fmt.Sprintf("%T", v)
		message = v.Error()
		backtrace = backtraceFromError(v)
	default:
		message = fmt.Sprint(v)
	}

	return Serialized{
		Path: PathError,
		Value: map[string]any{
			"name":      name,
			"message":   message,
			"backtrace": backtrace,
		},
	}, nil
}

// serializeRequest renders an *http.Request as event.http_request. Optional
// sub-fields that are absent on the request serialize to empty values
// instead of faulting the call. Sensitive headers are redacted.
func serializeRequest(value any) (Serialized, error) {
	req, ok := value.(*http.Request)
	if !ok || req == nil {
		// Not a request we understand; decline rather than fail so the
		// reserved key stays forward-compatible with other shapes.
		return Serialized{}, nil
	}

	out := map[string]any{
		"headers":      headerMap(req.Header),
		"host":         req.Host,
		"method":       req.Method,
		"path":         "",
		"query_string": "",
		"scheme":       requestScheme(req),
	}
	if req.URL != nil {
		out["path"] = req.URL.Path
		out["query_string"] = req.URL.RawQuery
	}
	return Serialized{Path: PathHTTPRequest, Value: out}, nil
}

// serializeTrace renders an OpenTelemetry span context as context.trace.
// Invalid span contexts decline the merge so records stay clean outside of
// instrumented paths.
func serializeTrace(value any) (Serialized, error) {
	sc, ok := value.(trace.SpanContext)
	if !ok || !sc.IsValid() {
		return Serialized{}, nil
	}
	return Serialized{
		Path: PathTrace,
		Value: map[string]any{
			"trace_id":      sc.TraceID().String(),
			"span_id":       sc.SpanID().String(),
			"trace_sampled": sc.IsSampled(),
		},
	}, nil
}

// headerMap flattens an http.Header into single-valued entries, redacting
// credential-bearing headers.
func headerMap(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for key, values := range h {
		if len(values) == 0 {
			continue
		}
		if sensitiveHeader(key) {
			out[key] = redactedHeaderValue
			continue
		}
		out[key] = strings.Join(values, ", ")
	}
	return out
}

// sensitiveHeader reports whether a header commonly carries credentials or
// session material.
func sensitiveHeader(key string) bool {
	switch strings.ToLower(key) {
	case "authorization", "proxy-authorization", "cookie", "set-cookie", "x-csrf-token":
		return true
	default:
		return false
	}
}

// requestScheme infers the scheme of a request, preferring the URL, then TLS
// state, then the X-Forwarded-Proto header set by proxies.
func requestScheme(req *http.Request) string {
	if req.URL != nil && req.URL.Scheme != "" {
		return req.URL.Scheme
	}
	if req.TLS != nil {
		return "https"
	}
	if proto := req.Header.Get("X-Forwarded-Proto"); proto != "" {
		return strings.ToLower(proto)
	}
	return "http"
}

// TraceBag returns a Bag exposing the span context active in ctx under the
// reserved trace key. It returns nil when ctx carries no valid span so the
// result can be folded into a call's bag unconditionally.
func TraceBag(ctx context.Context) Bag {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil
	}
	return Bag{KeyTrace: sc}
}
