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
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// prettyRenderer produces the human-oriented multi-line rendering used for
// local development. It preserves every field of the compact form, only
// reformatting: the header line carries level, severity rank, timestamp and
// message, and the context/event trees follow as an indented listing.
type prettyRenderer struct {
	badges    map[string]lipgloss.Style
	timestamp lipgloss.Style
	message   lipgloss.Style
	key       lipgloss.Style
}

// newPrettyRenderer builds the style set once per logger.
func newPrettyRenderer() *prettyRenderer {
	badge := func(color string) lipgloss.Style {
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color))
	}
	return &prettyRenderer{
		badges: map[string]lipgloss.Style{
			"emergency": badge("201"),
			"alert":     badge("199"),
			"critical":  badge("197"),
			"error":     badge("196"),
			"warn":      badge("214"),
			"notice":    badge("45"),
			"info":      badge("42"),
			"debug":     badge("245"),
		},
		timestamp: lipgloss.NewStyle().Faint(true),
		message:   lipgloss.NewStyle().Bold(true),
		key:       lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
	}
}

// render implements renderer.
func (p *prettyRenderer) render(buf *bytes.Buffer, rec Record) error {
	level, _ := rec[fieldLevel].(string)
	severity := rec[fieldSeverity]
	dt, _ := rec[fieldDT].(string)
	msg, _ := rec[fieldMessage].(string)

	badge, ok := p.badges[level]
	if !ok {
		badge = p.message
	}

	fmt.Fprintf(buf, "%s %s [%s/%v] %s\n",
		p.timestamp.Render(dt),
		badge.Render(padLevel(level)),
		level, severity,
		p.message.Render(msg),
	)

	for _, field := range []string{fieldContext, fieldEvent} {
		if sub, ok := rec[field].(map[string]any); ok {
			p.renderTree(buf, field, sub, 1)
		}
	}

	// Anything merged at a non-standard top-level path still has to show up.
	for _, key := range sortedKeys(rec) {
		switch key {
		case fieldLevel, fieldSeverity, fieldDT, fieldMessage, fieldContext, fieldEvent:
			continue
		}
		p.renderValue(buf, key, rec[key], 1)
	}
	return nil
}

// renderTree prints a nested object under a styled heading.
func (p *prettyRenderer) renderTree(buf *bytes.Buffer, name string, tree map[string]any, depth int) {
	indent(buf, depth-1)
	fmt.Fprintf(buf, "%s:\n", p.key.Render(name))
	if len(tree) == 0 {
		indent(buf, depth)
		buf.WriteString("(empty)\n")
		return
	}
	for _, key := range sortedKeys(tree) {
		p.renderValue(buf, key, tree[key], depth)
	}
}

// renderValue prints one key/value pair, recursing into nested objects.
func (p *prettyRenderer) renderValue(buf *bytes.Buffer, key string, value any, depth int) {
	if sub, ok := value.(map[string]any); ok {
		p.renderTree(buf, key, sub, depth+1)
		return
	}
	indent(buf, depth)
	fmt.Fprintf(buf, "%s: %s\n", p.key.Render(key), formatScalar(value))
}

// formatScalar renders leaf values, falling back to JSON for structured ones
// so nothing present in the compact form is lost.
func formatScalar(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return "null"
	case int, int64, float64, bool:
		return fmt.Sprint(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	}
}

// padLevel right-pads level names so badges line up across records.
func padLevel(level string) string {
	const width = len("emergency")
	for len(level) < width {
		level += " "
	}
	return level
}

// indent writes two spaces per depth step.
func indent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("  ")
	}
}

// sortedKeys returns map keys in stable order for deterministic output.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
