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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// LineSink receives the final rendered line for each emitted record. The
// line does not include a trailing newline; the sink appends one and must
// write the whole line atomically with respect to concurrent callers.
// A write failure is returned synchronously; the pipeline does not retry,
// buffer, or drop on error.
type LineSink interface {
	WriteLine(line []byte) error
}

// SwitchableWriter is an io.Writer whose underlying writer can be replaced
// atomically. FileSink points one at the open log file so Reopen can swap in
// a fresh descriptor after external rotation without rebuilding the handler
// chain.
type SwitchableWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewSwitchableWriter creates a SwitchableWriter over initial. A nil initial
// writer defaults to io.Discard.
func NewSwitchableWriter(initial io.Writer) *SwitchableWriter {
	if initial == nil {
		initial = io.Discard
	}
	return &SwitchableWriter{w: initial}
}

// Write directs p to the current underlying writer. The lock is held across
// the write so a concurrent SetWriter cannot interleave with an in-flight
// line.
func (sw *SwitchableWriter) Write(p []byte) (int, error) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if sw.w == nil {
		return 0, os.ErrClosed
	}
	return sw.w.Write(p)
}

// SetWriter atomically replaces the underlying writer. The previous writer
// is not closed; its lifecycle belongs to the caller. A nil writer directs
// subsequent writes to io.Discard.
func (sw *SwitchableWriter) SetWriter(w io.Writer) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if w == nil {
		w = io.Discard
	}
	sw.w = w
}

// Close closes the current underlying writer if it implements io.Closer and
// then directs further writes to io.Discard. Safe to call more than once.
func (sw *SwitchableWriter) Close() error {
	sw.mu.Lock()
	old := sw.w
	sw.w = io.Discard
	sw.mu.Unlock()

	if c, ok := old.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("close current writer: %w", err)
		}
	}
	return nil
}

var _ io.WriteCloser = (*SwitchableWriter)(nil)

// FileSink appends lines to a single per-service log file. It never rotates
// or deletes; external tools own rotation and Reopen follows their renames.
// An optional echo writer duplicates each line for interactive runs.
type FileSink struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	sw     *SwitchableWriter
	echo   io.Writer
	closed bool
}

// openFileSink opens (creating if needed) the log file at path in
// append-only mode. Parent directories are created with 0755; the file with
// 0644 so external rotation tools can read it.
func openFileSink(path string, echo io.Writer) (*FileSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("instruktlog: create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("instruktlog: open log file %q: %w", path, err)
	}
	return &FileSink{path: path, file: f, sw: NewSwitchableWriter(f), echo: echo}, nil
}

// Path returns the file the sink appends to.
func (s *FileSink) Path() string { return s.path }

// WriteLine appends line plus a newline as one write. Concurrent callers are
// serialized so partial lines never interleave in the file.
func (s *FileSink) WriteLine(line []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSinkClosed
	}
	buf := make([]byte, 0, len(line)+1)
	buf = append(buf, line...)
	buf = append(buf, '\n')
	if _, err := s.sw.Write(buf); err != nil {
		return fmt.Errorf("instruktlog: write log line: %w", err)
	}
	if s.echo != nil {
		_, _ = s.echo.Write(buf) // echo failures never fail the record
	}
	return nil
}

// Reopen closes the current descriptor and reopens the same path, picking up
// the fresh file an external rotation tool left behind after renaming the
// old one away.
func (s *FileSink) Reopen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSinkClosed
	}
	if s.file != nil {
		_ = s.file.Close()
		s.file = nil
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		s.sw.SetWriter(nil)
		return fmt.Errorf("instruktlog: reopen log file %q: %w", s.path, err)
	}
	s.file = f
	s.sw.SetWriter(f)
	return nil
}

// Close closes the underlying file. Subsequent writes return ErrSinkClosed.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.sw.SetWriter(nil)
	if s.file != nil {
		err := s.file.Close()
		s.file = nil
		if err != nil {
			return fmt.Errorf("instruktlog: close log file: %w", err)
		}
	}
	return nil
}

// writerSink adapts an arbitrary io.Writer (from WithWriter) to the LineSink
// contract, serializing writes for whole-line atomicity.
type writerSink struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *writerSink) WriteLine(line []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, 0, len(line)+1)
	buf = append(buf, line...)
	buf = append(buf, '\n')
	if _, err := s.w.Write(buf); err != nil {
		return fmt.Errorf("instruktlog: write log line: %w", err)
	}
	return nil
}

func (s *writerSink) Close() error {
	if c, ok := s.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
