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

import "context"

type contextLoggerKey struct{}

// ContextWithLogger returns a context carrying the bound logger, typically a
// request-scoped one created by middleware. There is no ambient process-wide
// default: code that needs a logger receives it explicitly or through the
// context.
func ContextWithLogger(ctx context.Context, logger *BoundLogger) context.Context {
	if logger == nil {
		return ctx
	}
	return context.WithValue(ctx, contextLoggerKey{}, logger)
}

// FromContext retrieves the bound logger carried by ctx, if any.
func FromContext(ctx context.Context) (*BoundLogger, bool) {
	if ctx == nil {
		return nil, false
	}
	logger, ok := ctx.Value(contextLoggerKey{}).(*BoundLogger)
	return logger, ok && logger != nil
}
