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

import "regexp"

// RedactedPlaceholder replaces every secret-shaped match in a rendered
// message. The placeholder must never itself match a redaction pattern, or
// redaction would not be idempotent.
const RedactedPlaceholder = "***REDACTED***"

// redactRule pairs a compiled pattern with its replacement template.
type redactRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Redactor scans rendered messages for secret-shaped substrings and replaces
// them with RedactedPlaceholder. It is a best-effort net, not a cryptographic
// guarantee: false negatives are expected and false positives are tolerated.
// The pattern set is fixed at construction; keep it small and high-signal.
type Redactor struct {
	rules []redactRule
}

// NewRedactor returns a Redactor with the standard InstruktAI pattern set:
// bot tokens embedded in Telegram API URLs, bearer tokens, "sk-" style API
// keys, credential key=value pairs, and long hex or base64 blobs.
func NewRedactor() *Redactor {
	return &Redactor{rules: []redactRule{
		// Telegram bot token in API URLs: api.telegram.org/bot<token>/...
		{regexp.MustCompile(`(api\.telegram\.org/bot)[^/\s]+`), "${1}" + RedactedPlaceholder},
		// Generic bearer token.
		{regexp.MustCompile(`\bBearer\s+\S+`), "Bearer " + RedactedPlaceholder},
		// OpenAI-style key prefix.
		{regexp.MustCompile(`\bsk-[A-Za-z0-9_-]{10,}`), RedactedPlaceholder},
		// Common credential key=value / key: value pairs.
		{regexp.MustCompile(`(?i)\b(password|passwd|secret|token|api[_-]?key|access[_-]?key)\s*[=:]\s*[^\s,;"']+`), "${1}=" + RedactedPlaceholder},
		// Long hex blobs (likely keys, digests of secrets, session IDs).
		{regexp.MustCompile(`\b[0-9a-fA-F]{40,}\b`), RedactedPlaceholder},
		// Long base64 blobs.
		{regexp.MustCompile(`\b[A-Za-z0-9+/]{48,}={0,2}`), RedactedPlaceholder},
	}}
}

// Redact replaces every secret-shaped substring in message with
// RedactedPlaceholder, preserving the surrounding text. It never fails: the
// worst case is over-redaction, never a crash or a leaked secret. Redact is
// idempotent; running it over already-redacted text changes nothing.
func (r *Redactor) Redact(message string) string {
	for _, rule := range r.rules {
		message = rule.pattern.ReplaceAllString(message, rule.replacement)
	}
	return message
}
