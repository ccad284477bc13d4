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
	"bytes"
	"encoding/json"
	"fmt"
	"sync"
)

// renderer turns a finished record into transport-ready bytes.
type renderer interface {
	render(buf *bytes.Buffer, rec Record) error
}

// output is the final pipeline stage: it renders the record and writes the
// bytes to the sink. Buffers are pooled; the switchable writer serializes
// the actual byte writes.
type output struct {
	renderer renderer
	sink     *switchableWriter
	bufPool  *sync.Pool
}

var outputBufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// newOutput selects the renderer per configuration and binds it to the sink.
func newOutput(sink *switchableWriter, pretty bool) *output {
	var r renderer = compactRenderer{}
	if pretty {
		r = newPrettyRenderer()
	}
	return &output{
		renderer: r,
		sink:     sink,
		bufPool:  &outputBufferPool,
	}
}

// write renders rec and hands the bytes to the sink in a single Write call.
func (o *output) write(rec Record) error {
	buf := o.bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer func() {
		buf.Reset()
		o.bufPool.Put(buf)
	}()

	if err := o.renderer.render(buf, rec); err != nil {
		return fmt.Errorf("logality: render record: %w", err)
	}
	if _, err := o.sink.Write(buf.Bytes()); err != nil {
		return err
	}
	return nil
}

// compactRenderer serializes the record to a single JSON line terminated by
// exactly one newline. Downstream collectors parse one object per line.
type compactRenderer struct{}

// render implements renderer.
func (compactRenderer) render(buf *bytes.Buffer, rec Record) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	// Encoder.Encode appends the trailing newline itself.
	return enc.Encode(map[string]any(rec))
}
