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
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the leading timestamp of every log line: UTC with
// millisecond precision and a literal Z. Tail readers key on this prefix to
// time-slice files, so it never changes between services.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// FormatTimestamp renders t in the canonical line format.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// appendKV appends a " key=value" pair, quoting the value only when it
// contains characters that would break field splitting. Keys are assumed
// well-formed (handler-controlled).
func appendKV(b []byte, key, value string) []byte {
	b = append(b, ' ')
	b = append(b, key...)
	b = append(b, '=')
	if needsQuoting(value) {
		b = strconv.AppendQuote(b, value)
	} else {
		b = append(b, value...)
	}
	return b
}

// needsQuoting reports whether a bare value would be ambiguous in the
// space-separated key=value suffix.
func needsQuoting(value string) bool {
	if value == "" {
		return true
	}
	return strings.ContainsAny(value, " \t\"=")
}
