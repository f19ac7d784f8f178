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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrInvalidDuration indicates a --since style duration that is not of the
// form <digits><unit> with unit one of s, m, h, d.
var ErrInvalidDuration = errors.New("tail: invalid duration")

// maxLineBytes bounds a single scanned line. Emitters truncate messages well
// below this, so hitting the bound means the file is not an InstruktAI log.
const maxLineBytes = 1 << 20

// ParseSince parses durations like "30s", "10m", "2h", "1d". Unlike
// time.ParseDuration it accepts days and rejects fractional or compound
// values, matching the CLI contract shared across InstruktAI tooling.
func ParseSince(value string) (time.Duration, error) {
	raw := strings.ToLower(strings.TrimSpace(value))
	if len(raw) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, value)
	}
	number := raw[:len(raw)-1]
	for _, r := range number {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, value)
		}
	}
	var n int64
	for _, r := range number {
		n = n*10 + int64(r-'0')
	}
	switch raw[len(raw)-1] {
	case 's':
		return time.Duration(n) * time.Second, nil
	case 'm':
		return time.Duration(n) * time.Minute, nil
	case 'h':
		return time.Duration(n) * time.Hour, nil
	case 'd':
		return time.Duration(n) * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("%w: unit %q in %q", ErrInvalidDuration, raw[len(raw)-1:], value)
	}
}

// timestampLayouts accepted at the start of a canonical log line. The
// handler writes millisecond precision; the second layout tolerates lines
// from emitters that omit the fractional part.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02T15:04:05Z07:00",
}

// ParseTimestamp parses the leading timestamp of a canonical log line.
// It returns ok=false for lines that do not start with one (continuation
// noise from non-conforming emitters), which callers skip.
func ParseTimestamp(line string) (time.Time, bool) {
	token, _, _ := strings.Cut(line, " ")
	token = strings.TrimSpace(token)
	if !strings.HasSuffix(token, "Z") {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, token); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// Recent returns the lines newer than now-since from logFile and any rotated
// siblings sitting next to it (name prefix match, compressed files skipped),
// oldest file first. Lines without a parseable timestamp are skipped. A
// sibling disappearing mid-read (rotation racing the reader) is not an
// error.
func Recent(logFile string, since time.Duration) ([]string, error) {
	cutoff := time.Now().UTC().Add(-since)

	matches, err := filepath.Glob(logFile + "*")
	if err != nil {
		return nil, fmt.Errorf("tail: list rotated siblings: %w", err)
	}

	type candidate struct {
		path  string
		mtime time.Time
	}
	var candidates []candidate
	for _, path := range matches {
		if strings.HasSuffix(path, ".gz") {
			continue
		}
		st, err := os.Stat(path)
		if err != nil || !st.Mode().IsRegular() {
			continue
		}
		candidates = append(candidates, candidate{path: path, mtime: st.ModTime()})
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].mtime.Before(candidates[j].mtime)
	})

	var lines []string
	for _, c := range candidates {
		f, err := os.Open(c.path)
		if err != nil {
			continue
		}
		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
		for scanner.Scan() {
			line := scanner.Text()
			ts, ok := ParseTimestamp(line)
			if !ok {
				continue
			}
			if !ts.Before(cutoff) {
				lines = append(lines, line)
			}
		}
		_ = f.Close()
	}
	return lines, nil
}
