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
	"strconv"
	"strings"
)

// maxBacktraceFrames bounds the number of frames extracted from an error's
// stack trace for the event.error backtrace list.
const maxBacktraceFrames = 64

// BacktraceFrame is one entry of the backtrace list emitted by the default
// error serializer.
type BacktraceFrame struct {
	File     string `json:"file"`
	Function string `json:"function"`
	Line     int    `json:"line"`
}

// stackTracer is the interface errors can implement to expose their origin
// stack as program counters. Compatible with github.com/pkg/errors.
type stackTracer interface {
	StackTrace() []uintptr
}

// backtraceFromError extracts a backtrace list from the first error in the
// chain that carries stack information. Errors without a stack yield an
// empty (non-nil) list so the record shape stays stable.
func backtraceFromError(err error) []BacktraceFrame {
	var st stackTracer
	if !errors.As(err, &st) {
		return []BacktraceFrame{}
	}
	pcs := st.StackTrace()
	if len(pcs) == 0 {
		return []BacktraceFrame{}
	}
	if len(pcs) > maxBacktraceFrames {
		pcs = pcs[:maxBacktraceFrames]
	}
	return framesFromPCs(pcs)
}

// framesFromPCs resolves program counters into backtrace frames, skipping
// runtime exit frames.
func framesFromPCs(pcs []uintptr) []BacktraceFrame {
	out := make([]BacktraceFrame, 0, len(pcs))
	frames := runtime.CallersFrames(pcs)
	for {
		frame, more := frames.Next()
		if frame.PC == 0 {
			break
		}
		if frame.Function != "" && frame.Function != "runtime.goexit" {
			out = append(out, BacktraceFrame{
				File:     frame.File,
				Function: frame.Function,
				Line:     frame.Line,
			})
		}
		if !more || len(out) >= maxBacktraceFrames {
			break
		}
	}
	return out
}

// CallerResolver produces the source-location string stamped into
// context.source.file_name. skip counts stack frames above the resolver
// itself, mirroring runtime.Caller. Substituting a fixed-string resolver is
// the supported way to make records deterministic in tests.
type CallerResolver func(skip int) string

// resolveCaller is the default CallerResolver. It walks past logality and
// runtime frames and formats the first caller frame as "file.go:line" with
// the file path shortened to its final two segments.
func resolveCaller(skip int) string {
	var pcs [16]uintptr
	n := runtime.Callers(skip+2, pcs[:])
	if n == 0 {
		return "unknown"
	}

	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if frame.Function == "" {
			break
		}
		if !skipInternalFrame(frame.Function) {
			return shortFile(frame.File) + ":" + strconv.Itoa(frame.Line)
		}
		if !more {
			break
		}
	}
	return "unknown"
}

// skipInternalFrame reports whether a frame belongs to logality or runtime
// internals and should not be presented as the call site.
func skipInternalFrame(funcName string) bool {
	if strings.HasPrefix(funcName, "runtime.") {
		return true
	}
	if strings.HasPrefix(funcName, "github.com/logality/logality.") {
		return true
	}
	return false
}

// shortFile trims an absolute file path down to its last two segments.
func shortFile(file string) string {
	idx := strings.LastIndexByte(file, '/')
	if idx < 0 {
		return file
	}
	if prev := strings.LastIndexByte(file[:idx], '/'); prev >= 0 {
		return file[prev+1:]
	}
	return file[idx+1:]
}
