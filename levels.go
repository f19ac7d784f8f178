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
	"log/slog"
	"strings"
)

// Level represents the severity of a log event, extending slog.Level with
// the TRACE and CRITICAL severities used across InstruktAI services. It
// maintains the underlying integer representation compatible with slog.Level.
type Level slog.Level

// Severity constants, mapped onto slog.Level integer values. The values keep
// slog's ordering and spacing so standard slog call sites interoperate with
// the extended levels.
const (
	// LevelTrace sits below Debug and carries the highest-volume diagnostics.
	LevelTrace Level = -8

	// LevelDebug maps to slog.LevelDebug (-4).
	LevelDebug Level = Level(slog.LevelDebug)

	// LevelInfo maps to slog.LevelInfo (0). Default for application loggers.
	LevelInfo Level = Level(slog.LevelInfo)

	// LevelWarning maps to slog.LevelWarn (4). Default for third-party
	// loggers and the floor enforced for muted loggers.
	LevelWarning Level = Level(slog.LevelWarn)

	// LevelError maps to slog.LevelError (8).
	LevelError Level = Level(slog.LevelError)

	// LevelCritical sits above Error. Highest severity.
	LevelCritical Level = 12
)

// String returns the canonical name of the Level as it appears in log lines
// (for example "TRACE", "WARNING", "CRITICAL"). Levels between defined
// constants render as the nearest lower name plus an offset, such as
// "INFO+2".
func (l Level) String() string {
	formatWithOffset := func(baseName string, offset Level) string {
		if offset == 0 {
			return baseName
		}
		return fmt.Sprintf("%s%+d", baseName, int(offset))
	}

	switch {
	case l < LevelTrace:
		return slog.Level(l).String()
	case l < LevelDebug:
		return formatWithOffset("TRACE", l-LevelTrace)
	case l < LevelInfo:
		return formatWithOffset("DEBUG", l-LevelDebug)
	case l < LevelWarning:
		return formatWithOffset("INFO", l-LevelInfo)
	case l < LevelError:
		return formatWithOffset("WARNING", l-LevelWarning)
	case l < LevelCritical:
		return formatWithOffset("ERROR", l-LevelError)
	default:
		return formatWithOffset("CRITICAL", l-LevelCritical)
	}
}

// Level returns the underlying slog.Level value. This allows Level to satisfy
// the slog.Leveler interface so it can be used anywhere slog expects a level.
func (l Level) Level() slog.Level {
	return slog.Level(l)
}

// ParseLevel converts a severity name into a Level. Matching is
// case-insensitive and accepts both "WARN" and "WARNING". An empty (or
// all-whitespace) string is not an error; it returns defaultLevel so callers
// can distinguish "unset" from "set but invalid". Any other unrecognized
// value returns ErrInvalidLevel: an explicitly configured severity is never
// silently replaced with a default.
func ParseLevel(name string, defaultLevel Level) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "":
		return defaultLevel, nil
	case "TRACE":
		return LevelTrace, nil
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarning, nil
	case "ERROR":
		return LevelError, nil
	case "CRITICAL", "FATAL":
		return LevelCritical, nil
	default:
		return defaultLevel, fmt.Errorf("%w: %q", ErrInvalidLevel, name)
	}
}

// maxLevel returns the higher of two levels.
func maxLevel(a, b Level) Level {
	if a > b {
		return a
	}
	return b
}
