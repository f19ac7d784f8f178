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
	"path/filepath"
	"sync"
)

// Registry owns the resolved Configuration and the sink for one service.
// It replaces the global mutable logger registry found in most logging
// frameworks: the immutable Config is threaded explicitly through every
// handler, so classification and thresholds are unit-testable in isolation
// and there is no hidden process-wide state.
//
// Build one Registry at process start and keep it for the life of the
// process. Changing any knob means building a new Registry; there is no
// hot-reload contract.
type Registry struct {
	cfg      *Config
	sink     LineSink
	red      *Redactor
	fileSink *FileSink // nil when WithWriter supplied the destination

	closeOnce sync.Once
	closeErr  error
}

// New resolves configuration for appName and opens its log file, returning
// a Registry ready to hand out loggers. Resolution is three-tier: built-in
// defaults, then the {APP}_* environment variables, then programmatic
// options. A malformed value that was explicitly set is a fatal error, never
// a silent default.
//
// The log file lives at /var/log/instrukt-ai/{app}/{app}.log, or directly
// under INSTRUKT_AI_LOG_ROOT when that override is set. If the canonical
// directory cannot be created or opened (typically permissions in local
// development), New falls back deterministically to ./logs, then to the
// system temp directory, rather than failing startup.
//
// Call Close during shutdown to release the file.
func New(appName string, opts ...Option) (*Registry, error) {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	envPrefix := ""
	if o.envPrefix != nil {
		envPrefix = *o.envPrefix
	}
	cfg, err := loadConfig(appName, envPrefix)
	if err != nil {
		return nil, err
	}
	if o.appLevel != nil {
		cfg.AppLevel = *o.appLevel
	}
	if o.thirdPartyLevel != nil {
		cfg.ThirdPartyLevel = *o.thirdPartyLevel
	}
	if o.spotlight != nil {
		cfg.Spotlight = *o.spotlight
	}
	if o.muted != nil {
		cfg.Muted = *o.muted
	}
	if o.loggerPrefix != nil {
		cfg.AppLoggerPrefix = *o.loggerPrefix
	}
	if o.maxMessageChars != nil {
		cfg.MaxMessageChars = *o.maxMessageChars
	}
	if o.fileName != nil {
		cfg.LogFile = filepath.Join(filepath.Dir(cfg.LogFile), *o.fileName)
	}

	reg := &Registry{cfg: cfg, red: NewRedactor()}

	if o.writer != nil {
		reg.sink = &writerSink{w: o.writer}
		cfg.LogFile = ""
		return reg, nil
	}

	fs, err := openFileSink(cfg.LogFile, o.console)
	for _, dir := range fallbackLogDirs(appName) {
		if err == nil {
			break
		}
		fallback := filepath.Join(dir, filepath.Base(cfg.LogFile))
		if fs, err = openFileSink(fallback, o.console); err == nil {
			cfg.LogFile = fallback
		}
	}
	if err != nil {
		return nil, err
	}
	reg.fileSink = fs
	reg.sink = fs
	return reg, nil
}

// Logger returns a logger bound to the given dotted name. The effective
// threshold is resolved once per name; records below it are dropped without
// reaching the redaction or truncation passes. Loggers are cheap and safe to
// create per component.
func (r *Registry) Logger(name string) *Logger {
	h := &Handler{
		cfg:       r.cfg,
		sink:      r.sink,
		red:       r.red,
		name:      name,
		threshold: r.cfg.EffectiveThreshold(name),
	}
	return &Logger{Logger: slog.New(h), name: name}
}

// LogFile returns the resolved path the Registry appends to, or the empty
// string when a custom writer was supplied.
func (r *Registry) LogFile() string { return r.cfg.LogFile }

// Config returns the resolved immutable configuration snapshot.
func (r *Registry) Config() *Config { return r.cfg }

// Reopen closes and reopens the log file on its original path, for use after
// an external rotation tool has renamed the active file. It is a no-op when
// a custom writer owns the destination.
func (r *Registry) Reopen() error {
	if r.fileSink == nil {
		return nil
	}
	return r.fileSink.Reopen()
}

// Close releases the log file (or closes a custom writer that implements
// io.Closer). Safe to call multiple times; later calls return the first
// error.
func (r *Registry) Close() error {
	r.closeOnce.Do(func() {
		if c, ok := r.sink.(io.Closer); ok {
			r.closeErr = c.Close()
		}
	})
	return r.closeErr
}

// Logger wraps slog.Logger with the extended severity methods used across
// InstruktAI services. Use the standard slog methods (Info, ErrorContext,
// and so on) plus Trace and Critical for the extended levels.
type Logger struct {
	*slog.Logger
	name string
}

// Name returns the dotted logger name this logger was created with.
func (l *Logger) Name() string { return l.name }

// Trace logs at LevelTrace severity (below Debug).
func (l *Logger) Trace(msg string, args ...any) {
	l.Log(context.Background(), LevelTrace.Level(), msg, args...)
}

// TraceContext logs at LevelTrace severity with a context for trace
// correlation.
func (l *Logger) TraceContext(ctx context.Context, msg string, args ...any) {
	l.Log(ctx, LevelTrace.Level(), msg, args...)
}

// Critical logs at LevelCritical severity (above Error).
func (l *Logger) Critical(msg string, args ...any) {
	l.Log(context.Background(), LevelCritical.Level(), msg, args...)
}

// CriticalContext logs at LevelCritical severity with a context for trace
// correlation.
func (l *Logger) CriticalContext(ctx context.Context, msg string, args ...any) {
	l.Log(ctx, LevelCritical.Level(), msg, args...)
}
