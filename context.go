// Copyright 2026 The InstruktAI Authors
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

package instruktlog

import (
	"context"
	"io"
	"log/slog"
)

type contextKey int

const loggerContextKey contextKey = iota

// ContextWithLogger returns a child context carrying logger, so request
// handlers deeper in the call chain can retrieve a request-scoped logger.
func ContextWithLogger(ctx context.Context, logger *Logger) context.Context {
	if ctx == nil || logger == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerContextKey, logger)
}

// LoggerFromContext retrieves a logger stored via ContextWithLogger. If none
// is present it returns a logger that discards everything, so callers always
// receive a usable logger.
func LoggerFromContext(ctx context.Context) *Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerContextKey).(*Logger); ok && l != nil {
			return l
		}
	}
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}
