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
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Bag is the optional, loosely-typed context supplied with a log call. Keys
// with a registered serializer are transformed and merged into the record;
// unknown keys are silently ignored. The bag is not retained after the call.
type Bag map[string]any

// Logger formats log calls into single-line JSON records and writes them to
// its sink. A Logger is immutable after New: its configuration, serializer
// registry, and cached host metadata are never mutated, so concurrent use
// from multiple goroutines needs no external locking.
type Logger struct {
	appName  string
	registry registry
	meta     hostMeta
	resolver CallerResolver
	out      *output
	sink     *switchableWriter

	logFilePath string // non-empty when the logger owns a reopenable file sink
	ownsSink    bool   // file and rotating sinks are closed by Close

	async *asyncState

	errWriter io.Writer

	closed atomic.Bool
}

// asyncState carries the queue machinery for asynchronous dispatch. A single
// worker drains the queue so records reach the sink in submission order.
type asyncState struct {
	queue        chan asyncJob
	wg           sync.WaitGroup
	flushTimeout time.Duration
	closeOnce    sync.Once
	closeErr     error
}

// asyncJob is one deferred log call waiting on the queue.
type asyncJob struct {
	level  Severity
	msg    string
	bag    Bag
	source string
	handle *Handle
}

// New constructs a Logger from the supplied options. The returned logger
// must be Closed when it owns a file sink or runs in async mode; Close is a
// harmless no-op otherwise.
func New(opts ...Option) (*Logger, error) {
	o := resolveOptions(opts)

	sink, logFilePath, owned, err := buildSink(o)
	if err != nil {
		return nil, err
	}

	l := &Logger{
		appName:     *o.appName,
		registry:    newRegistry(o.serializers),
		meta:        gatherHostMeta(),
		resolver:    o.resolver,
		sink:        sink,
		out:         newOutput(sink, *o.prettyPrint),
		logFilePath: logFilePath,
		ownsSink:    owned,
		errWriter:   o.errorWriter,
	}

	if *o.async {
		l.async = &asyncState{
			queue:        make(chan asyncJob, *o.queueSize),
			flushTimeout: *o.flushTimeout,
		}
		l.startWorker()
	}
	return l, nil
}

// buildSink resolves the configured sink into a switchable writer, opening
// file destinations as needed. Only file-backed sinks are owned (and thus
// closed) by the logger.
func buildSink(o *options) (sw *switchableWriter, logFilePath string, owned bool, err error) {
	switch {
	case o.rotating != nil:
		return newSwitchableWriter(o.rotating), "", true, nil
	case o.logFilePath != nil:
		f, err := openLogFile(*o.logFilePath)
		if err != nil {
			return nil, "", false, err
		}
		return newSwitchableWriter(f), *o.logFilePath, true, nil
	case o.sink != nil:
		return newSwitchableWriter(o.sink), "", false, nil
	default:
		return newSwitchableWriter(os.Stdout), "", false, nil
	}
}

// openLogFile opens path for appending, creating it when absent.
func openLogFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logality: open log file: %w", err)
	}
	return f, nil
}

// Log dispatches one record at the given level. The returned Handle is
// already resolved when the logger runs synchronously (consult Err
// immediately); in async mode it completes once the sink write finishes.
func (l *Logger) Log(level Severity, msg string, bag Bag) *Handle {
	return l.log(level, msg, bag, l.resolver(1))
}

// Debug logs at debug severity (rank 7).
func (l *Logger) Debug(msg string, bag ...Bag) *Handle {
	return l.log(SeverityDebug, msg, firstBag(bag), l.resolver(1))
}

// Info logs at info severity (rank 6).
func (l *Logger) Info(msg string, bag ...Bag) *Handle {
	return l.log(SeverityInfo, msg, firstBag(bag), l.resolver(1))
}

// Notice logs at notice severity (rank 5).
func (l *Logger) Notice(msg string, bag ...Bag) *Handle {
	return l.log(SeverityNotice, msg, firstBag(bag), l.resolver(1))
}

// Warn logs at warn severity (rank 4).
func (l *Logger) Warn(msg string, bag ...Bag) *Handle {
	return l.log(SeverityWarn, msg, firstBag(bag), l.resolver(1))
}

// Error logs at error severity (rank 3).
func (l *Logger) Error(msg string, bag ...Bag) *Handle {
	return l.log(SeverityError, msg, firstBag(bag), l.resolver(1))
}

// Critical logs at critical severity (rank 2).
func (l *Logger) Critical(msg string, bag ...Bag) *Handle {
	return l.log(SeverityCritical, msg, firstBag(bag), l.resolver(1))
}

// Alert logs at alert severity (rank 1).
func (l *Logger) Alert(msg string, bag ...Bag) *Handle {
	return l.log(SeverityAlert, msg, firstBag(bag), l.resolver(1))
}

// Emergency logs at emergency severity (rank 0).
func (l *Logger) Emergency(msg string, bag ...Bag) *Handle {
	return l.log(SeverityEmergency, msg, firstBag(bag), l.resolver(1))
}

// firstBag unwraps the optional variadic bag of the shorthand forms.
func firstBag(bags []Bag) Bag {
	if len(bags) == 0 {
		return nil
	}
	return bags[0]
}

// log routes a call into the synchronous pipeline or the async queue.
func (l *Logger) log(level Severity, msg string, bag Bag, source string) (h *Handle) {
	if l.closed.Load() {
		return resolvedHandle(ErrClosed)
	}

	if l.async == nil {
		return resolvedHandle(l.dispatch(level, msg, bag, source))
	}

	h = newHandle()
	defer func() {
		// The queue may close concurrently with a late log call.
		if recover() != nil {
			h.resolve(ErrClosed)
		}
	}()
	l.async.queue <- asyncJob{level: level, msg: msg, bag: bag, source: source, handle: h}
	return h
}

// dispatch runs the per-call pipeline: validate the level, assemble the
// skeleton, run serializers for recognized bag keys, and write the finished
// record. The record is handed to the output stage only once fully built, so
// a failure at any earlier stage produces no partial output.
func (l *Logger) dispatch(level Severity, msg string, bag Bag, source string) error {
	if !level.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidLevel, int(level))
	}

	rec := newRecord(level, msg, source, l.appName, l.meta, time.Now())

	for key, value := range bag {
		fn, ok := l.registry.lookup(key)
		if !ok {
			continue
		}
		serialized, err := fn(value)
		if err != nil {
			return &SerializerError{Key: key, Err: err}
		}
		rec.MergeAt(serialized.Path, serialized.Value)
	}

	return l.out.write(rec)
}

// startWorker launches the queue drain goroutine for async mode.
func (l *Logger) startWorker() {
	state := l.async
	state.wg.Add(1)
	go func() {
		defer state.wg.Done()
		for job := range state.queue {
			l.runJob(job)
		}
	}()
}

// runJob executes one queued call, resolving its handle with the outcome and
// containing panics from caller-supplied serializers.
func (l *Logger) runJob(job asyncJob) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("logality: panic during async dispatch: %v", r)
			l.reportInternal(err)
			job.handle.resolve(err)
		}
	}()

	err := l.dispatch(job.level, job.msg, job.bag, job.source)
	if err != nil {
		l.reportInternal(err)
	}
	job.handle.resolve(err)
}

// reportInternal writes a diagnostic line for failures that would otherwise
// only surface through an unawaited handle.
func (l *Logger) reportInternal(err error) {
	if l.errWriter == nil || err == nil {
		return
	}
	fmt.Fprintf(l.errWriter, "logality: %v\n", err)
}

// ReopenLogFile reopens a WithLogFile sink, for use after an external
// rotation (SIGHUP from logrotate and friends). It is a no-op for other sink
// configurations.
func (l *Logger) ReopenLogFile() error {
	if l.logFilePath == "" {
		return nil
	}
	f, err := openLogFile(l.logFilePath)
	if err != nil {
		return err
	}
	prev := l.sink.setWriter(f)
	if c, ok := prev.(io.Closer); ok && !isStdStream(prev) {
		if err := c.Close(); err != nil {
			return fmt.Errorf("logality: close rotated log file: %w", err)
		}
	}
	return nil
}

// Close drains the async queue (bounded by the configured flush timeout),
// then closes a logger-owned sink. Log calls after Close fail with
// ErrClosed. Close is idempotent.
func (l *Logger) Close() error {
	if l.async == nil {
		if l.closed.CompareAndSwap(false, true) {
			return l.closeSink()
		}
		return nil
	}

	state := l.async
	state.closeOnce.Do(func() {
		if l.closed.CompareAndSwap(false, true) {
			close(state.queue)
		}

		done := make(chan struct{})
		go func() {
			state.wg.Wait()
			close(done)
		}()

		if state.flushTimeout > 0 {
			select {
			case <-done:
			case <-time.After(state.flushTimeout):
				state.closeErr = ErrFlushTimeout
			}
		} else {
			<-done
		}

		if err := l.closeSink(); err != nil && state.closeErr == nil {
			state.closeErr = err
		}
	})
	return state.closeErr
}

// closeSink closes the sink only when the logger owns it; caller-supplied
// writers stay open.
func (l *Logger) closeSink() error {
	if !l.ownsSink {
		return nil
	}
	return l.sink.Close()
}
