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
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultAppName populates context.runtime.application when no application
// name is configured.
const DefaultAppName = "Logality"

const defaultQueueSize = 1024

// Environment variables recognized by WithEnv.
const (
	envAppName     = "LOGALITY_APP_NAME"
	envPrettyPrint = "LOGALITY_PRETTY_PRINT"
	envAsync       = "LOGALITY_ASYNC"
	envQueueSize   = "LOGALITY_ASYNC_QUEUE_SIZE"
	envLogFile     = "LOGALITY_LOG_FILE"
)

// Option configures a Logger during construction via New. Options are
// applied in order, so later options override earlier ones.
type Option func(*options)

// options holds the configurable settings for a Logger. Fields are pointers
// where a set zero value must be distinguishable from an unset option.
type options struct {
	appName      *string
	sink         io.Writer
	logFilePath  *string
	rotating     *lumberjack.Logger
	async        *bool
	queueSize    *int
	flushTimeout *time.Duration
	prettyPrint  *bool
	serializers  map[string]Serializer
	resolver     CallerResolver
	errorWriter  io.Writer
}

// WithAppName sets the application name emitted at
// context.runtime.application. Defaults to DefaultAppName.
func WithAppName(name string) Option {
	return func(o *options) {
		n := name
		o.appName = &n
	}
}

// WithOutput directs records to w instead of standard output. The logger
// never closes a writer supplied here.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.sink = w
	}
}

// WithLogFile directs records to the file at path, opened in append mode at
// construction. The logger owns the handle: Close closes it and
// ReopenLogFile reopens it after external rotation.
func WithLogFile(path string) Option {
	return func(o *options) {
		p := path
		o.logFilePath = &p
		o.rotating = nil
	}
}

// WithRotatingFile directs records to a self-rotating file sink backed by
// lumberjack. maxSizeMB triggers rotation, maxBackups and maxAgeDays bound
// retention, and compress gzips rotated files.
func WithRotatingFile(path string, maxSizeMB, maxBackups, maxAgeDays int, compress bool) Option {
	return func(o *options) {
		o.rotating = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
			Compress:   compress,
		}
		o.logFilePath = nil
	}
}

// WithAsync selects asynchronous dispatch: Log returns a Handle that
// completes once the record is written, and all failures are delivered
// through that handle instead of synchronously.
func WithAsync(enabled bool) Option {
	return func(o *options) {
		e := enabled
		o.async = &e
	}
}

// WithQueueSize adjusts the async queue capacity. Zero yields an unbuffered
// queue. Only meaningful together with WithAsync(true).
func WithQueueSize(size int) Option {
	return func(o *options) {
		s := size
		o.queueSize = &s
	}
}

// WithFlushTimeout limits how long Close waits for the async queue to drain.
// Zero waits indefinitely.
func WithFlushTimeout(timeout time.Duration) Option {
	return func(o *options) {
		t := timeout
		o.flushTimeout = &t
	}
}

// WithPrettyPrint selects the human-oriented multi-line renderer instead of
// newline-delimited JSON. Meant for local development, never for sinks that
// downstream collectors parse.
func WithPrettyPrint(enabled bool) Option {
	return func(o *options) {
		e := enabled
		o.prettyPrint = &e
	}
}

// WithSerializer registers fn for the given context-bag key, replacing the
// built-in serializer for that key if one exists. A nil fn removes the key
// from the registry entirely.
func WithSerializer(key string, fn Serializer) Option {
	return func(o *options) {
		if o.serializers == nil {
			o.serializers = make(map[string]Serializer)
		}
		o.serializers[key] = fn
	}
}

// WithSerializers registers every entry of the map, with the same
// override-replaces-default semantics as WithSerializer.
func WithSerializers(serializers map[string]Serializer) Option {
	return func(o *options) {
		if o.serializers == nil {
			o.serializers = make(map[string]Serializer, len(serializers))
		}
		for key, fn := range serializers {
			o.serializers[key] = fn
		}
	}
}

// WithCallerResolver substitutes the function that produces the
// context.source.file_name value. Test code typically installs a resolver
// returning a fixed string.
func WithCallerResolver(resolver CallerResolver) Option {
	return func(o *options) {
		o.resolver = resolver
	}
}

// WithErrorWriter directs internal diagnostics (async worker panics, write
// failures already delivered through handles) to w. Use nil to silence them.
// Defaults to standard error.
func WithErrorWriter(w io.Writer) Option {
	return func(o *options) {
		o.errorWriter = w
	}
}

// WithEnv overlays configuration from LOGALITY_* environment variables on
// top of whatever earlier options set. Explicit options placed after WithEnv
// win over the environment.
func WithEnv() Option {
	return func(o *options) {
		overlayEnv(o)
	}
}

// resolveOptions applies opts in order and fills remaining defaults.
func resolveOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	if o.appName == nil {
		name := DefaultAppName
		o.appName = &name
	}
	if o.async == nil {
		async := false
		o.async = &async
	}
	if o.queueSize == nil || *o.queueSize < 0 {
		size := defaultQueueSize
		o.queueSize = &size
	}
	if o.flushTimeout == nil {
		t := time.Duration(0)
		o.flushTimeout = &t
	}
	if o.prettyPrint == nil {
		pretty := false
		o.prettyPrint = &pretty
	}
	if o.resolver == nil {
		o.resolver = resolveCaller
	}
	if o.errorWriter == nil {
		o.errorWriter = os.Stderr
	}
	return o
}

// overlayEnv folds recognized environment variables into o.
func overlayEnv(o *options) {
	if raw := strings.TrimSpace(os.Getenv(envAppName)); raw != "" {
		o.appName = &raw
	}
	if raw := strings.TrimSpace(os.Getenv(envPrettyPrint)); raw != "" {
		if v, ok := parseBoolToken(raw); ok {
			o.prettyPrint = &v
		}
	}
	if raw := strings.TrimSpace(os.Getenv(envAsync)); raw != "" {
		if v, ok := parseBoolToken(raw); ok {
			o.async = &v
		}
	}
	if raw := strings.TrimSpace(os.Getenv(envQueueSize)); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil && size >= 0 {
			o.queueSize = &size
		}
	}
	if raw := strings.TrimSpace(os.Getenv(envLogFile)); raw != "" {
		o.logFilePath = &raw
		o.rotating = nil
	}
}

// parseBoolToken accepts the yes/on/1/true and no/off/0/false token families.
func parseBoolToken(raw string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "t", "true", "yes", "on":
		return true, true
	case "0", "f", "false", "no", "off":
		return false, true
	default:
		return false, false
	}
}
