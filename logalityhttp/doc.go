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

// Package logalityhttp provides net/http server middleware that logs one
// record per request through a logality.Logger.
//
// The middleware attaches a request-scoped bound logger to the request
// context for handlers to use, captures the response status and size, and
// emits a completion record carrying the request under the reserved "req"
// bag key, latency and status under "custom", and the active OpenTelemetry
// span context under "trace". Severity follows the response class: 5xx logs
// at error, 4xx at warn, everything else at info. Panicking handlers produce
// a critical record before the panic is re-raised.
//
// When OpenTelemetry is enabled (the default) the chain is wrapped in
// otelhttp.NewHandler so a server span exists before the completion record
// is assembled.
//
// Typical usage:
//
//	mux := http.NewServeMux()
//	handler := logalityhttp.Middleware(logger)(mux)
//	http.ListenAndServe(":8080", handler)
package logalityhttp
