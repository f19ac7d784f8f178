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
	"strings"
	"unicode/utf8"
)

// lineSeparator replaces embedded newlines when a multi-line payload is
// flattened, keeping the one-physical-line-per-event invariant while leaving
// the original structure visible to a reader.
const lineSeparator = " | "

// Flatten collapses a possibly multi-line message to a single line and
// substitutes the Unicode replacement character for any invalid UTF-8 bytes.
// Malformed input never fails; it is repaired and carried on.
func Flatten(message string) string {
	message = strings.ToValidUTF8(message, string(utf8.RuneError))
	message = strings.ReplaceAll(message, "\r\n", lineSeparator)
	message = strings.ReplaceAll(message, "\n", lineSeparator)
	message = strings.ReplaceAll(message, "\r", lineSeparator)
	return message
}

// Truncate bounds message to at most maxLen bytes. Oversized messages keep
// their head and end with a visible marker reporting approximately how many
// bytes were cut, so a tail-window reader can tell truncation occurred.
// maxLen <= 0 disables truncation. The result never exceeds maxLen and never
// splits a UTF-8 sequence.
func Truncate(message string, maxLen int) string {
	if maxLen <= 0 || len(message) <= maxLen {
		return message
	}

	marker := fmt.Sprintf("...[truncated, %d bytes omitted]", len(message)-maxLen)
	keep := maxLen - len(marker)
	if keep <= 0 {
		// No room for the marker; a hard cut is all that fits.
		keep = maxLen
		for keep > 0 && !utf8.RuneStart(message[keep]) {
			keep--
		}
		return message[:keep]
	}
	for keep > 0 && !utf8.RuneStart(message[keep]) {
		keep--
	}
	return message[:keep] + marker
}
