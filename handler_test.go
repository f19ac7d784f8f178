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
	"bytes"
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// clearEnv pins every per-app knob to its unset state so values leaking in
// from the test environment cannot skew thresholds.
func clearEnv(t *testing.T, prefix string) {
	t.Helper()
	for _, suffix := range []string{
		envSuffixLogLevel,
		envSuffixThirdPartyLevel,
		envSuffixThirdPartyLoggers,
		envSuffixMutedLoggers,
	} {
		t.Setenv(prefix+suffix, "")
	}
	t.Setenv(EnvLogRoot, "")
}

func newTestRegistry(t *testing.T, opts ...Option) (*Registry, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	reg, err := New("myapp", append([]Option{WithWriter(&buf)}, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return reg, &buf
}

func lines(buf *bytes.Buffer) []string {
	out := strings.TrimSuffix(buf.String(), "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

var linePattern = regexp.MustCompile(
	`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z level=\S+ logger=\S+ msg="`)

func TestHandlerLineFormat(t *testing.T) {
	clearEnv(t, "MYAPP")
	reg, buf := newTestRegistry(t)
	reg.Logger("myapp.api").Info("request handled", "status", 200, "path", "/healthz")

	got := lines(buf)
	if len(got) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(got), got)
	}
	line := got[0]
	if !linePattern.MatchString(line) {
		t.Errorf("line does not match the canonical prefix: %q", line)
	}
	for _, want := range []string{
		`level=INFO`,
		`logger=myapp.api`,
		`msg="request handled"`,
		`status=200`,
		`path=/healthz`,
	} {
		if !strings.Contains(line, want) {
			t.Errorf("line missing %q: %q", want, line)
		}
	}
	ts := line[:len(TimestampLayout)]
	if _, err := time.Parse(TimestampLayout, ts); err != nil {
		t.Errorf("timestamp %q does not parse with the canonical layout: %v", ts, err)
	}
}

func TestHandlerClassFiltering(t *testing.T) {
	clearEnv(t, "MYAPP")
	reg, buf := newTestRegistry(t)

	app := reg.Logger("myapp.worker")
	app.Debug("dropped below INFO")
	app.Info("app info kept")

	tp := reg.Logger("urllib3.connectionpool")
	tp.Info("third-party info dropped")
	tp.Warn("third-party warning kept")

	got := lines(buf)
	if len(got) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(got), got)
	}
	if !strings.Contains(got[0], "app info kept") {
		t.Errorf("first line = %q", got[0])
	}
	if !strings.Contains(got[1], "third-party warning kept") {
		t.Errorf("second line = %q", got[1])
	}
}

func TestHandlerSpotlight(t *testing.T) {
	clearEnv(t, "MYAPP")
	t.Setenv("MYAPP_THIRD_PARTY_LOG_LEVEL", "INFO")
	t.Setenv("MYAPP_THIRD_PARTY_LOGGERS", "httpx")
	reg, buf := newTestRegistry(t)

	reg.Logger("httpx").Info("spotlighted info kept")
	reg.Logger("urllib3").Info("non-spotlighted info dropped")
	reg.Logger("urllib3").Warn("warnings always pass")

	got := lines(buf)
	if len(got) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(got), got)
	}
	if !strings.Contains(got[0], "spotlighted info kept") {
		t.Errorf("first line = %q", got[0])
	}
	if !strings.Contains(got[1], "warnings always pass") {
		t.Errorf("second line = %q", got[1])
	}
}

func TestHandlerMuted(t *testing.T) {
	clearEnv(t, "MYAPP")
	t.Setenv("MYAPP_LOG_LEVEL", "DEBUG")
	t.Setenv("MYAPP_MUTED_LOGGERS", "myapp.chatter")
	reg, buf := newTestRegistry(t)

	reg.Logger("myapp.chatter").Info("muted info dropped")
	reg.Logger("myapp.chatter").Warn("muted warning kept")
	reg.Logger("myapp.other").Debug("sibling debug kept")

	got := lines(buf)
	if len(got) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(got), got)
	}
	if !strings.Contains(got[0], "muted warning kept") {
		t.Errorf("first line = %q", got[0])
	}
	if !strings.Contains(got[1], "sibling debug kept") {
		t.Errorf("second line = %q", got[1])
	}
}

func TestHandlerRedactsMessageAndAttrs(t *testing.T) {
	clearEnv(t, "MYAPP")
	reg, buf := newTestRegistry(t)

	reg.Logger("myapp").Info("login with password=hunter2 ok", "api_key", "sk-abcdefghijklmnop")

	out := buf.String()
	if strings.Contains(out, "hunter2") {
		t.Errorf("secret survived redaction: %q", out)
	}
	if strings.Contains(out, "sk-abcdefghijklmnop") {
		t.Errorf("attr secret survived redaction: %q", out)
	}
	if !strings.Contains(out, RedactedPlaceholder) {
		t.Errorf("placeholder missing from output: %q", out)
	}
}

func TestHandlerFlattensMultilineMessage(t *testing.T) {
	clearEnv(t, "MYAPP")
	reg, buf := newTestRegistry(t)

	reg.Logger("myapp").Error("stage failed:\n  stack line one\n  stack line two")

	got := lines(buf)
	if len(got) != 1 {
		t.Fatalf("multi-line message produced %d physical lines, want 1: %q", len(got), got)
	}
	if !strings.Contains(got[0], "stage failed: |   stack line one |   stack line two") {
		t.Errorf("line = %q", got[0])
	}
}

func TestHandlerTruncatesLongMessage(t *testing.T) {
	clearEnv(t, "MYAPP")
	reg, buf := newTestRegistry(t)

	reg.Logger("myapp").Info(strings.Repeat("x", 5000))

	out := buf.String()
	if !strings.Contains(out, "...[truncated, ") {
		t.Errorf("oversized message emitted without marker: %d bytes", len(out))
	}
	if len(out) > defaultMaxMessageChars+200 {
		t.Errorf("emitted line is %d bytes, truncation bound not applied", len(out))
	}
}

func TestHandlerGroupsAndWith(t *testing.T) {
	clearEnv(t, "MYAPP")
	reg, buf := newTestRegistry(t)

	l := reg.Logger("myapp").WithGroup("req").With("method", "GET")
	l.Info("handled", "status", 200)
	l.With(slog.Group("peer", "addr", "10.0.0.1")).Info("nested")

	got := lines(buf)
	if len(got) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(got), got)
	}
	if !strings.Contains(got[0], "req.method=GET") || !strings.Contains(got[0], "req.status=200") {
		t.Errorf("group keys not dotted: %q", got[0])
	}
	if !strings.Contains(got[1], "req.peer.addr=10.0.0.1") {
		t.Errorf("nested group keys not dotted: %q", got[1])
	}
}

func TestHandlerQuotesAmbiguousValues(t *testing.T) {
	clearEnv(t, "MYAPP")
	reg, buf := newTestRegistry(t)

	reg.Logger("myapp").Info("ok", "note", "has spaces", "empty", "", "plain", "bare")

	line := lines(buf)[0]
	if !strings.Contains(line, `note="has spaces"`) {
		t.Errorf("spaced value not quoted: %q", line)
	}
	if !strings.Contains(line, `empty=""`) {
		t.Errorf("empty value not quoted: %q", line)
	}
	if !strings.Contains(line, ` plain=bare`) {
		t.Errorf("bare value unexpectedly quoted: %q", line)
	}
}

func TestHandlerTraceCorrelation(t *testing.T) {
	clearEnv(t, "MYAPP")
	reg, buf := newTestRegistry(t)

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10},
		SpanID:     trace.SpanID{0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17, 0x18},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	l := reg.Logger("myapp")
	l.InfoContext(ctx, "with span")
	l.Info("without span")

	got := lines(buf)
	if len(got) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(got), got)
	}
	if !strings.Contains(got[0], "trace_id=0102030405060708090a0b0c0d0e0f10") {
		t.Errorf("trace_id missing: %q", got[0])
	}
	if !strings.Contains(got[0], "span_id=1112131415161718") {
		t.Errorf("span_id missing: %q", got[0])
	}
	if strings.Contains(got[1], "trace_id=") {
		t.Errorf("trace_id present without a span in context: %q", got[1])
	}
}

type failingWriter struct{ err error }

func (w *failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestHandlerReturnsSinkError(t *testing.T) {
	clearEnv(t, "MYAPP")
	wantErr := errors.New("disk full")
	reg, err := New("myapp", WithWriter(&failingWriter{err: wantErr}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	h := reg.Logger("myapp").Handler()
	rec := slog.NewRecord(time.Now(), slog.LevelInfo, "doomed", 0)
	if err := h.Handle(context.Background(), rec); !errors.Is(err, wantErr) {
		t.Errorf("Handle error = %v, want wrapped %v", err, wantErr)
	}
}

func TestHandlerExtendedLevels(t *testing.T) {
	clearEnv(t, "MYAPP")
	t.Setenv("MYAPP_LOG_LEVEL", "TRACE")
	reg, buf := newTestRegistry(t)

	l := reg.Logger("myapp")
	l.Trace("trace visible")
	l.Critical("critical visible")

	got := lines(buf)
	if len(got) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(got), got)
	}
	if !strings.Contains(got[0], "level=TRACE") {
		t.Errorf("first line = %q", got[0])
	}
	if !strings.Contains(got[1], "level=CRITICAL") {
		t.Errorf("second line = %q", got[1])
	}
}
