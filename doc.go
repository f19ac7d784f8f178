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

// Package instruktlog implements the InstruktAI logging standard for Go
// services. It builds on the standard library's [log/slog] package and writes
// one human-readable line per event to a predictable per-service log file,
// the same file layout and line format used by every InstruktAI service
// regardless of implementation language.
//
// The heart of the package is the logger classification and filtering policy.
// Every logger has a dotted name (for example "myservice.worker" or
// "httpcore.connection") and is classified as either application or
// third-party by comparing its name against the service's root namespace.
// Four independent knobs, resolved once at startup, decide the effective
// minimum severity for each logger:
//
//   - {APP}_LOG_LEVEL sets the level for application loggers (default INFO).
//   - {APP}_THIRD_PARTY_LOG_LEVEL sets the level for third-party loggers
//     (default WARNING).
//   - {APP}_THIRD_PARTY_LOGGERS names third-party prefixes that are
//     "spotlighted": when set, only those prefixes log at the third-party
//     level and everything else third-party is forced to WARNING.
//   - {APP}_MUTED_LOGGERS names prefixes whose threshold is floored at
//     WARNING regardless of class, which silences known-noisy namespaces
//     without losing their warnings.
//
// Before a line reaches the file it is flattened to a single physical line,
// scanned for secret-shaped substrings (bearer tokens, API keys, credential
// key=value pairs, long hex or base64 blobs) which are replaced with
// ***REDACTED***, and truncated with a visible marker when oversized. The
// file is append-only and rotation is left to external tools; Registry.Reopen
// cooperates with logrotate-style renames.
//
// # Quick Start
//
//	reg, err := instruktlog.New("myservice")
//	if err != nil {
//	    log.Fatalf("configure logging: %v", err)
//	}
//	defer reg.Close()
//
//	logger := reg.Logger("myservice.worker")
//	logger.Info("job finished", "job_id", id, "attempts", n)
//
// The resulting line in /var/log/instrukt-ai/myservice/myservice.log:
//
//	2026-08-26T09:15:04.221Z level=INFO logger=myservice.worker msg="job finished" job_id=j42 attempts=1
//
// # Subpackages
//
//   - [github.com/instrukt-ai/instruktlog/tail] reads bounded time windows
//     from the log file (including rotated siblings) and follows appends in
//     the manner of tail -f.
//
// Two commands ship with the module: instrukt-ai-logs, a tail/time-slice
// reader for operators, and instrukt-ai-log-setup, which installs the
// external rotation configuration.
package instruktlog
