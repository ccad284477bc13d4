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
	"errors"
	"runtime"
	"strings"
	"testing"
)

func TestShortFile(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/home/dev/project/pkg/server.go", "pkg/server.go"},
		{"pkg/server.go", "pkg/server.go"},
		{"server.go", "server.go"},
		{"/server.go", "server.go"},
	}
	for _, tt := range tests {
		if got := shortFile(tt.in); got != tt.want {
			t.Fatalf("shortFile(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSkipInternalFrame(t *testing.T) {
	tests := []struct {
		fn   string
		want bool
	}{
		{"runtime.gopanic", true},
		{"github.com/logality/logality.(*Logger).Info", true},
		{"main.main", false},
		{"github.com/example/app/server.Handle", false},
	}
	for _, tt := range tests {
		if got := skipInternalFrame(tt.fn); got != tt.want {
			t.Fatalf("skipInternalFrame(%q) = %v, want %v", tt.fn, got, tt.want)
		}
	}
}

func TestResolveCallerReturnsLocation(t *testing.T) {
	got := resolveCaller(0)
	if got == "" {
		t.Fatal("resolveCaller returned an empty location")
	}
	if got != "unknown" && !strings.Contains(got, ":") {
		t.Fatalf("resolveCaller = %q, want file:line form", got)
	}
}

func TestBacktraceFromErrorWithoutStack(t *testing.T) {
	frames := backtraceFromError(errors.New("plain"))
	if frames == nil {
		t.Fatal("frames is nil, want empty slice")
	}
	if len(frames) != 0 {
		t.Fatalf("got %d frames from a stackless error", len(frames))
	}
}

func TestBacktraceFromErrorCapsFrames(t *testing.T) {
	var pcs [4]uintptr
	if runtime.Callers(1, pcs[:]) == 0 {
		t.Fatal("no program counters captured")
	}
	deep := &tracedError{msg: "deep"}
	for i := 0; i < maxBacktraceFrames*2; i++ {
		deep.pcs = append(deep.pcs, pcs[0])
	}

	frames := backtraceFromError(deep)
	if len(frames) > maxBacktraceFrames {
		t.Fatalf("got %d frames, cap is %d", len(frames), maxBacktraceFrames)
	}
	if len(frames) == 0 {
		t.Fatal("expected at least one frame")
	}
}
