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
	"log/slog"
	"strconv"
	"time"
)

// Handler is the emission pipeline for one named logger, implemented as an
// [slog.Handler]. For every record it resolves the effective threshold,
// drops the record if the severity is below it, and otherwise flattens,
// redacts, truncates, and renders the record as a single line handed to the
// sink.
//
// A Handler is bound to a logger name at construction (via
// Registry.Logger), so the threshold is resolved once and filtering is a
// single integer comparison in Enabled. Handlers are immutable and safe for
// concurrent use; WithAttrs and WithGroup return derived copies.
type Handler struct {
	cfg       *Config
	sink      LineSink
	red       *Redactor
	name      string
	threshold Level

	// groupPrefix is prepended to attribute keys added after WithGroup,
	// rendering nested groups as dotted keys ("req.method=GET").
	groupPrefix string

	// preformatted holds attrs from WithAttrs, already flattened and
	// redacted so Handle only appends bytes.
	preformatted []byte
}

var _ slog.Handler = (*Handler)(nil)

// Enabled reports whether a record at the given level would be emitted.
// Records below the effective threshold are dropped before any rendering,
// redaction, or truncation work happens.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.threshold.Level()
}

// Handle renders the record as one line and writes it to the sink. A sink
// write failure is returned to the caller synchronously; the handler does
// not retry or buffer.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	if !h.Enabled(ctx, r.Level) {
		return nil
	}

	msg := Flatten(r.Message)
	msg = h.red.Redact(msg)
	msg = Truncate(msg, h.cfg.MaxMessageChars)

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	b := make([]byte, 0, 128+len(msg)+len(h.preformatted))
	b = append(b, FormatTimestamp(ts)...)
	b = appendKV(b, "level", Level(r.Level).String())
	b = appendKV(b, "logger", h.name)
	b = append(b, " msg="...)
	b = strconv.AppendQuote(b, msg)
	b = append(b, h.preformatted...)
	r.Attrs(func(a slog.Attr) bool {
		b = h.appendAttr(b, h.groupPrefix, a)
		return true
	})
	if traceID, spanID, ok := extractTraceSpan(ctx); ok {
		b = appendKV(b, TraceIDKey, traceID)
		b = appendKV(b, SpanIDKey, spanID)
	}

	return h.sink.WriteLine(b)
}

// WithAttrs returns a copy of the handler whose lines carry the given
// attributes. Values pass through the same flatten/redact passes as record
// attributes.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := h.clone()
	for _, a := range attrs {
		h2.preformatted = h2.appendAttr(h2.preformatted, h2.groupPrefix, a)
	}
	return h2
}

// WithGroup returns a copy of the handler that renders subsequent attribute
// keys under the group name, dotted ("group.key=value").
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := h.clone()
	h2.groupPrefix = h.groupPrefix + name + "."
	return h2
}

func (h *Handler) clone() *Handler {
	h2 := *h
	h2.preformatted = append([]byte(nil), h.preformatted...)
	return &h2
}

// appendAttr renders one attribute as a " key=value" pair, expanding groups
// recursively into dotted keys. Attribute values are flattened and redacted
// the same way the message is; empty attrs and empty-keyed values are
// dropped per slog handler conventions.
func (h *Handler) appendAttr(b []byte, prefix string, a slog.Attr) []byte {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return b
	}
	if a.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if a.Key != "" {
			groupPrefix = prefix + a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			b = h.appendAttr(b, groupPrefix, ga)
		}
		return b
	}
	if a.Key == "" {
		return b
	}
	val := h.red.Redact(Flatten(a.Value.String()))
	return appendKV(b, prefix+a.Key, val)
}
