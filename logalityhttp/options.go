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
	"net/http"
	"time"

	"github.com/logality/logality"
)

// Option configures the middleware returned by Middleware.
type Option func(*config)

type config struct {
	enableOTel    bool
	operation     string
	skipPaths     map[string]struct{}
	customizeBags []BagEnricher
}

// BagEnricher lets callers fold extra data into the completion record's bag.
// The returned bag entries are merged over the middleware's own; returning
// nil adds nothing.
type BagEnricher func(r *http.Request, status int, duration time.Duration) logality.Bag

// WithOTel enables or disables wrapping the handler chain in
// otelhttp.NewHandler. Enabled by default so completion records carry trace
// context without extra wiring.
func WithOTel(enabled bool) Option {
	return func(c *config) {
		c.enableOTel = enabled
	}
}

// WithOperation sets the otelhttp operation name for server spans. Defaults
// to "http.server".
func WithOperation(name string) Option {
	return func(c *config) {
		if name != "" {
			c.operation = name
		}
	}
}

// WithSkipPaths suppresses completion records for exact request paths,
// typically health and readiness probes.
func WithSkipPaths(paths ...string) Option {
	return func(c *config) {
		if c.skipPaths == nil {
			c.skipPaths = make(map[string]struct{}, len(paths))
		}
		for _, p := range paths {
			c.skipPaths[p] = struct{}{}
		}
	}
}

// WithBagEnricher registers fn to contribute additional bag entries to every
// completion record. Enrichers run in registration order.
func WithBagEnricher(fn BagEnricher) Option {
	return func(c *config) {
		if fn != nil {
			c.customizeBags = append(c.customizeBags, fn)
		}
	}
}

// applyOptions resolves opts over the defaults.
func applyOptions(opts []Option) *config {
	cfg := &config{
		enableOTel: true,
		operation:  "http.server",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}
