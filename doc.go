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

// Package logality is a structured JSON logging library built around a
// fixed record schema and pluggable per-key serializers.
//
// Every log call produces one single-line JSON record with Syslog-style
// severities (emergency through debug, ranks 0-7), an RFC 3339 timestamp,
// the caller's source location, and host/process metadata. An optional
// context bag accompanies each call; values stored under reserved keys
// ("user", "error", "req", "custom", "trace") are routed through a
// serializer registry and merged into the record at serializer-declared
// paths, while unknown keys are ignored for forward compatibility.
//
// Basic usage:
//
//	logger, err := logality.New(logality.WithAppName("billing"))
//	if err != nil {
//	    // handle error
//	}
//	defer logger.Close()
//
//	logger.Info("invoice issued", logality.Bag{
//	    "user":   account,
//	    "custom": map[string]any{"invoice_id": id},
//	})
//
// Serializers registered at construction replace the built-in defaults for
// the same key and may add new keys:
//
//	logality.WithSerializer("user", func(v any) (logality.Serialized, error) {
//	    u := v.(*Account)
//	    return logality.Serialized{
//	        Path:  "context.user",
//	        Value: map[string]any{"id": u.ID, "email": u.Email},
//	    }, nil
//	})
//
// With WithAsync(true) every call returns immediately and the returned
// Handle resolves once the sink write completes; sink and serializer
// failures are delivered through the handle instead of synchronously. The
// logalityhttp and logalitygrpc subpackages provide request-logging
// middleware and interceptors built on this package.
package logality
