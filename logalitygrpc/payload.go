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

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// renderPayload converts an RPC message into a loggable value. Proto
// messages render through protojson; anything else is stringified. Rendered
// payloads longer than limit bytes are truncated and flagged.
func renderPayload(msg any, limit int) map[string]any {
	out := map[string]any{
		"type": fmt.Sprintf("%T", msg),
	}

	var rendered string
	if pm, ok := msg.(proto.Message); ok {
		data, err := protojson.Marshal(pm)
		if err != nil {
			out["render_error"] = err.Error()
			return out
		}
		rendered = string(data)
	} else {
		rendered = fmt.Sprint(msg)
	}

	out["size"] = len(rendered)
	if len(rendered) > limit {
		out["content"] = rendered[:limit]
		out["truncated"] = true
	} else {
		out["content"] = rendered
	}
	return out
}
