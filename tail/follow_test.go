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
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errEnough = errors.New("enough lines")

// collectLines follows path from the start and returns once want lines have
// arrived or the deadline passes.
func collectLines(t *testing.T, path string, want int) []string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	f := NewFollower(path)
	f.FromStart = true
	f.PollInterval = 10 * time.Millisecond

	var got []string
	err := f.Follow(ctx, func(line string) error {
		got = append(got, line)
		if len(got) >= want {
			return errEnough
		}
		return nil
	})
	require.ErrorIs(t, err, errEnough, "expected %d lines, got %q", want, got)
	return got
}

func TestFollowerReadsExistingAndAppended(t *testing.T) {
	path := filepath.Join(t.TempDir(), "svc.log")
	require.NoError(t, os.WriteFile(path, []byte("one\n"), 0o644))

	go func() {
		time.Sleep(50 * time.Millisecond)
		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return
		}
		defer f.Close()
		_, _ = f.WriteString("two\nthree\n")
	}()

	got := collectLines(t, path, 3)
	assert.Equal(t, []string{"one\n", "two\n", "three\n"}, got)
}

func TestFollowerWaitsForFileToAppear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "svc.log")

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = os.WriteFile(path, []byte("late arrival\n"), 0o644)
	}()

	got := collectLines(t, path, 1)
	assert.Equal(t, []string{"late arrival\n"}, got)
}

func TestFollowerHoldsPartialLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "svc.log")
	require.NoError(t, os.WriteFile(path, []byte("partial"), 0o644))

	go func() {
		time.Sleep(100 * time.Millisecond)
		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return
		}
		defer f.Close()
		_, _ = f.WriteString(" completed\n")
	}()

	got := collectLines(t, path, 1)
	assert.Equal(t, []string{"partial completed\n"}, got)
}

func TestFollowerDetectsRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "svc.log")
	require.NoError(t, os.WriteFile(path, []byte("before\n"), 0o644))

	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = os.Rename(path, path+".1")
		time.Sleep(50 * time.Millisecond)
		_ = os.WriteFile(path, []byte("after\n"), 0o644)
	}()

	got := collectLines(t, path, 2)
	assert.Equal(t, []string{"before\n", "after\n"}, got)
}

func TestFollowerContextCancellation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.log")
	ctx, cancel := context.WithCancel(context.Background())

	f := NewFollower(path)
	f.PollInterval = 10 * time.Millisecond

	done := make(chan error, 1)
	go func() {
		done <- f.Follow(ctx, func(string) error { return nil })
	}()
	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Follow did not return after cancellation")
	}
}

func TestFollowerSkipsExistingContentByDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "svc.log")
	require.NoError(t, os.WriteFile(path, []byte("old history\n"), 0o644))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	f := NewFollower(path)
	f.PollInterval = 10 * time.Millisecond

	go func() {
		time.Sleep(100 * time.Millisecond)
		fh, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return
		}
		defer fh.Close()
		_, _ = fh.WriteString("new line\n")
	}()

	var got []string
	err := f.Follow(ctx, func(line string) error {
		got = append(got, line)
		return errEnough
	})
	require.ErrorIs(t, err, errEnough)
	assert.Equal(t, []string{"new line\n"}, got)
}
