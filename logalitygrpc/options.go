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

package logalitygrpc

// Option configures the interceptors.
type Option func(*config)

type config struct {
	enableOTel   bool
	includePeer  bool
	payloadLimit int
}

// WithOTel enables or disables installing otelgrpc stats handlers in
// ServerOptions and DialOptions. Enabled by default.
func WithOTel(enabled bool) Option {
	return func(c *config) {
		c.enableOTel = enabled
	}
}

// WithPeer enables or disables recording the remote peer address on server
// completion records. Enabled by default.
func WithPeer(enabled bool) Option {
	return func(c *config) {
		c.includePeer = enabled
	}
}

// WithPayloads enables request/response payload logging, truncating rendered
// payloads beyond limit bytes. A limit of zero or less disables payload
// logging, which is the default.
func WithPayloads(limit int) Option {
	return func(c *config) {
		c.payloadLimit = limit
	}
}

// applyOptions resolves opts over the defaults.
func applyOptions(opts []Option) *config {
	cfg := &config{
		enableOTel:  true,
		includePeer: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}
