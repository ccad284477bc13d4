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
	"testing"
	"time"
)

func TestResolveOptionsDefaults(t *testing.T) {
	o := resolveOptions(nil)

	if *o.appName != DefaultAppName {
		t.Fatalf("appName = %q", *o.appName)
	}
	if *o.async {
		t.Fatal("async defaults to true")
	}
	if *o.queueSize != defaultQueueSize {
		t.Fatalf("queueSize = %d", *o.queueSize)
	}
	if *o.flushTimeout != 0 {
		t.Fatalf("flushTimeout = %v", *o.flushTimeout)
	}
	if *o.prettyPrint {
		t.Fatal("prettyPrint defaults to true")
	}
	if o.resolver == nil {
		t.Fatal("resolver not defaulted")
	}
	if o.errorWriter == nil {
		t.Fatal("errorWriter not defaulted")
	}
}

func TestLaterOptionsWin(t *testing.T) {
	o := resolveOptions([]Option{
		WithAppName("first"),
		WithAppName("second"),
		WithQueueSize(4),
		WithQueueSize(16),
	})
	if *o.appName != "second" {
		t.Fatalf("appName = %q", *o.appName)
	}
	if *o.queueSize != 16 {
		t.Fatalf("queueSize = %d", *o.queueSize)
	}
}

func TestNegativeQueueSizeFallsBack(t *testing.T) {
	o := resolveOptions([]Option{WithQueueSize(-5)})
	if *o.queueSize != defaultQueueSize {
		t.Fatalf("queueSize = %d, want default", *o.queueSize)
	}
}

func TestFileOptionsAreExclusive(t *testing.T) {
	o := resolveOptions([]Option{
		WithRotatingFile("/tmp/a.log", 10, 3, 7, false),
		WithLogFile("/tmp/b.log"),
	})
	if o.rotating != nil {
		t.Fatal("WithLogFile did not clear the rotating sink")
	}
	if o.logFilePath == nil || *o.logFilePath != "/tmp/b.log" {
		t.Fatalf("logFilePath = %v", o.logFilePath)
	}

	o = resolveOptions([]Option{
		WithLogFile("/tmp/b.log"),
		WithRotatingFile("/tmp/a.log", 10, 3, 7, false),
	})
	if o.logFilePath != nil {
		t.Fatal("WithRotatingFile did not clear the plain file sink")
	}
	if o.rotating == nil || o.rotating.Filename != "/tmp/a.log" {
		t.Fatalf("rotating = %+v", o.rotating)
	}
	if o.rotating.MaxSize != 10 || o.rotating.MaxBackups != 3 || o.rotating.MaxAge != 7 {
		t.Fatalf("rotating limits = %+v", o.rotating)
	}
}

func TestWithEnvOverlay(t *testing.T) {
	t.Setenv(envAppName, "EnvApp")
	t.Setenv(envAsync, "yes")
	t.Setenv(envQueueSize, "32")
	t.Setenv(envPrettyPrint, "off")

	o := resolveOptions([]Option{WithEnv()})
	if *o.appName != "EnvApp" {
		t.Fatalf("appName = %q", *o.appName)
	}
	if !*o.async {
		t.Fatal("async not taken from environment")
	}
	if *o.queueSize != 32 {
		t.Fatalf("queueSize = %d", *o.queueSize)
	}
	if *o.prettyPrint {
		t.Fatal("prettyPrint not taken from environment")
	}
}

func TestWithEnvOrdering(t *testing.T) {
	t.Setenv(envAppName, "EnvApp")

	// Explicit option after WithEnv wins.
	o := resolveOptions([]Option{WithEnv(), WithAppName("Explicit")})
	if *o.appName != "Explicit" {
		t.Fatalf("appName = %q, want explicit override", *o.appName)
	}

	// WithEnv after an explicit option overlays it.
	o = resolveOptions([]Option{WithAppName("Explicit"), WithEnv()})
	if *o.appName != "EnvApp" {
		t.Fatalf("appName = %q, want environment overlay", *o.appName)
	}
}

func TestWithEnvIgnoresGarbage(t *testing.T) {
	t.Setenv(envAsync, "maybe")
	t.Setenv(envQueueSize, "not-a-number")

	o := resolveOptions([]Option{WithEnv()})
	if *o.async {
		t.Fatal("unparseable async token applied")
	}
	if *o.queueSize != defaultQueueSize {
		t.Fatalf("queueSize = %d", *o.queueSize)
	}
}

func TestParseBoolToken(t *testing.T) {
	tests := []struct {
		raw   string
		value bool
		ok    bool
	}{
		{"1", true, true},
		{"true", true, true},
		{"Yes", true, true},
		{"ON", true, true},
		{"0", false, true},
		{"off", false, true},
		{" no ", false, true},
		{"maybe", false, false},
		{"", false, false},
	}
	for _, tt := range tests {
		value, ok := parseBoolToken(tt.raw)
		if value != tt.value || ok != tt.ok {
			t.Fatalf("parseBoolToken(%q) = %v, %v; want %v, %v", tt.raw, value, ok, tt.value, tt.ok)
		}
	}
}

func TestWithFlushTimeout(t *testing.T) {
	o := resolveOptions([]Option{WithFlushTimeout(250 * time.Millisecond)})
	if *o.flushTimeout != 250*time.Millisecond {
		t.Fatalf("flushTimeout = %v", *o.flushTimeout)
	}
}

func TestNilOptionTolerated(t *testing.T) {
	o := resolveOptions([]Option{nil, WithAppName("A"), nil})
	if *o.appName != "A" {
		t.Fatalf("appName = %q", *o.appName)
	}
}
