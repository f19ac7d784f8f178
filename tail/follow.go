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

package tail

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultPollInterval paces the fallback polling loop. With fsnotify active
// the poll is only a safety net for events the platform watcher misses
// (NFS, some container mounts).
const defaultPollInterval = 250 * time.Millisecond

// Follower streams lines appended to a log file, in the manner of tail -f.
// It waits for the file to appear, detects rotation (the path pointing at a
// new inode) and truncation (the file shrinking), and reopens accordingly.
// After rotation the new file is read from the start so no lines are lost.
//
// Change detection is driven by an fsnotify watcher on the log directory
// with a polling fallback, so a Follower works on filesystems without
// usable notification support.
type Follower struct {
	path string

	// PollInterval overrides the fallback polling cadence. Zero means the
	// default.
	PollInterval time.Duration

	// FromStart makes the first open read the existing content instead of
	// seeking to the end.
	FromStart bool
}

// NewFollower returns a Follower for the given log file path. The file does
// not need to exist yet.
func NewFollower(path string) *Follower {
	return &Follower{path: path}
}

// Follow invokes fn for every line appended to the file until ctx is
// canceled or fn returns an error. Lines include the trailing newline once
// complete; a partial final line is held back until its newline arrives.
// The returned error is ctx.Err() on cancellation or the error from fn.
func (f *Follower) Follow(ctx context.Context, fn func(line string) error) error {
	poll := f.PollInterval
	if poll <= 0 {
		poll = defaultPollInterval
	}

	// Watch the directory, not the file: the file may not exist yet, and
	// rotation replaces it. Errors degrade silently to pure polling.
	var events chan fsnotify.Event
	if watcher, err := fsnotify.NewWatcher(); err == nil {
		defer watcher.Close()
		if err := watcher.Add(filepath.Dir(f.path)); err == nil {
			events = watcher.Events
		}
	}

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	var (
		file      *os.File
		reader    *bufio.Reader
		pending   []byte
		seekToEnd = !f.FromStart
	)
	defer func() {
		if file != nil {
			_ = file.Close()
		}
	}()

	for {
		if file == nil {
			opened, err := os.Open(f.path)
			if err == nil {
				if seekToEnd {
					_, _ = opened.Seek(0, io.SeekEnd)
				}
				// Only the first open may start at the end; after rotation
				// the fresh file is read from the beginning.
				seekToEnd = false
				file = opened
				reader = bufio.NewReader(file)
				pending = pending[:0]
			}
		}

		if file != nil {
			for {
				chunk, err := reader.ReadBytes('\n')
				pending = append(pending, chunk...)
				if err != nil {
					break // io.EOF; keep the partial line pending
				}
				line := string(pending)
				pending = pending[:0]
				if err := fn(line); err != nil {
					return err
				}
			}

			if closed := f.checkRotation(file, reader); closed {
				_ = file.Close()
				file = nil
				reader = nil
				continue // reopen immediately, no wait
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		case _, ok := <-events:
			if !ok {
				events = nil
			}
		}
	}
}

// checkRotation reports whether the open file is stale: the path now names a
// different file (rotation) or disappeared. Truncation in place is handled
// by rewinding the reader rather than reopening.
func (f *Follower) checkRotation(file *os.File, reader *bufio.Reader) bool {
	pathInfo, err := os.Stat(f.path)
	if err != nil {
		return true
	}
	fileInfo, err := file.Stat()
	if err != nil {
		return true
	}
	if !os.SameFile(pathInfo, fileInfo) {
		return true
	}
	if offset, err := file.Seek(0, io.SeekCurrent); err == nil && offset > pathInfo.Size() {
		_, _ = file.Seek(0, io.SeekStart)
		reader.Reset(file)
	}
	return false
}
