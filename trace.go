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

	"go.opentelemetry.io/otel/trace"
)

// Field names for trace correlation key/value pairs appended to log lines
// when the record's context carries a valid OpenTelemetry span context.
const (
	// TraceIDKey holds the 32-char lowercase hex trace ID.
	TraceIDKey = "trace_id"
	// SpanIDKey holds the 16-char lowercase hex span ID.
	SpanIDKey = "span_id"
)

// extractTraceSpan returns the raw trace and span IDs from ctx, with ok
// reporting whether a valid span context was present. It is intentionally
// light-weight: no spans are created, no headers parsed, no context mutated.
// Upstream middleware is expected to have populated the OTel span context.
func extractTraceSpan(ctx context.Context) (traceID, spanID string, ok bool) {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return "", "", false
	}
	return sc.TraceID().String(), sc.SpanID().String(), true
}
