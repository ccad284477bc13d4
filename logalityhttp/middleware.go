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

package logalityhttp

import (
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/logality/logality"
)

// Middleware returns an http.Handler middleware that logs one completion
// record per request through logger and places a request-scoped bound
// logger into the request context for handlers.
func Middleware(logger *logality.Logger, opts ...Option) func(http.Handler) http.Handler {
	cfg := applyOptions(opts)
	bound := logger.BindLocation("logalityhttp/middleware.go")

	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}

		chain := buildLoggingHandler(cfg, bound, next)
		if cfg.enableOTel {
			chain = otelhttp.NewHandler(chain, cfg.operation)
		}
		return chain
	}
}

// LoggerFromRequest retrieves the request-scoped bound logger installed by
// Middleware, falling back to nil when the request did not pass through it.
func LoggerFromRequest(r *http.Request) (*logality.BoundLogger, bool) {
	return logality.FromContext(r.Context())
}

// buildLoggingHandler wraps next with response recording, panic logging, and
// the completion record emission.
func buildLoggingHandler(cfg *config, bound *logality.BoundLogger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ctx := logality.ContextWithLogger(r.Context(), bound)
		r = r.WithContext(ctx)

		rec := newResponseRecorder(w)

		defer func() {
			duration := time.Since(start)
			if p := recover(); p != nil {
				logPanic(bound, r, p)
				panic(p)
			}
			if _, skip := cfg.skipPaths[r.URL.Path]; skip {
				return
			}
			logCompletion(cfg, bound, r, rec, duration)
		}()

		next.ServeHTTP(rec, r)
	})
}

// logCompletion emits the per-request record.
func logCompletion(cfg *config, bound *logality.BoundLogger, r *http.Request, rec *responseRecorder, duration time.Duration) {
	status := rec.Status()
	bag := logality.Bag{
		logality.KeyRequest: r,
		logality.KeyCustom: map[string]any{
			"status":         status,
			"duration_ms":    duration.Milliseconds(),
			"response_bytes": rec.BytesWritten(),
		},
	}
	for key, value := range logality.TraceBag(r.Context()) {
		bag[key] = value
	}
	for _, enrich := range cfg.customizeBags {
		for key, value := range enrich(r, status, duration) {
			bag[key] = value
		}
	}

	msg := fmt.Sprintf("%s %s -> %d", r.Method, r.URL.Path, status)
	bound.Log(severityForStatus(status), msg, bag)
}

// logPanic emits a critical record for a panicking handler.
func logPanic(bound *logality.BoundLogger, r *http.Request, p any) {
	bound.Critical("panic while serving request", logality.Bag{
		logality.KeyRequest: r,
		logality.KeyError:   fmt.Errorf("panic: %v", p),
	})
}

// severityForStatus maps a response status class to a record severity.
func severityForStatus(status int) logality.Severity {
	switch {
	case status >= http.StatusInternalServerError:
		return logality.SeverityError
	case status >= http.StatusBadRequest:
		return logality.SeverityWarn
	default:
		return logality.SeverityInfo
	}
}

// responseRecorder captures the status code and byte count of a response
// while passing writes through to the wrapped ResponseWriter.
type responseRecorder struct {
	http.ResponseWriter
	status       int
	bytesWritten int64
	wroteHeader  bool
}

// newResponseRecorder wraps w for completion logging.
func newResponseRecorder(w http.ResponseWriter) *responseRecorder {
	return &responseRecorder{ResponseWriter: w}
}

// WriteHeader records the first status code written.
func (rec *responseRecorder) WriteHeader(status int) {
	if !rec.wroteHeader {
		rec.status = status
		rec.wroteHeader = true
	}
	rec.ResponseWriter.WriteHeader(status)
}

// Write counts response bytes, defaulting the status to 200 as net/http does.
func (rec *responseRecorder) Write(p []byte) (int, error) {
	if !rec.wroteHeader {
		rec.wroteHeader = true
		rec.status = http.StatusOK
	}
	n, err := rec.ResponseWriter.Write(p)
	rec.bytesWritten += int64(n)
	return n, err
}

// Flush forwards to the wrapped writer when it supports flushing.
func (rec *responseRecorder) Flush() {
	if f, ok := rec.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the wrapped writer to http.ResponseController.
func (rec *responseRecorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}

// Status returns the recorded status code, defaulting to 200 when the
// handler never wrote one.
func (rec *responseRecorder) Status() int {
	if !rec.wroteHeader {
		return http.StatusOK
	}
	return rec.status
}

// BytesWritten returns the number of response body bytes written.
func (rec *responseRecorder) BytesWritten() int64 {
	return rec.bytesWritten
}
