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
	"errors"
	"log/slog"
	"testing"
)

// TestLevel_String verifies the canonical names and the offset rendering for
// intermediate values.
func TestLevel_String(t *testing.T) {
	testCases := []struct {
		level Level
		want  string
		name  string
	}{
		{LevelTrace, "TRACE", "LevelTrace"},
		{LevelDebug, "DEBUG", "LevelDebug"},
		{LevelInfo, "INFO", "LevelInfo"},
		{LevelWarning, "WARNING", "LevelWarning"},
		{LevelError, "ERROR", "LevelError"},
		{LevelCritical, "CRITICAL", "LevelCritical"},

		{LevelTrace + 1, "TRACE+1", "TracePlus1"},
		{LevelDebug - 1, "TRACE+3", "BelowDebug"},
		{LevelInfo + 2, "INFO+2", "InfoPlus2"},
		{LevelWarning - 1, "INFO+3", "BelowWarning"},
		{LevelError + 3, "ERROR+3", "ErrorPlus3"},
		{LevelCritical + 4, "CRITICAL+4", "AboveCritical"},

		// Below TRACE delegates to slog's own rendering.
		{LevelTrace - 1, slog.Level(LevelTrace - 1).String(), "BelowTraceDelegation"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.level.String(); got != tc.want {
				t.Errorf("Level(%d).String() = %q, want %q", tc.level, got, tc.want)
			}
			if got := tc.level.Level(); got != slog.Level(tc.level) {
				t.Errorf("Level(%d).Level() = %v, want %v", tc.level, got, slog.Level(tc.level))
			}
		})
	}
}

// TestParseLevel verifies name parsing, the unset-vs-invalid distinction,
// and alignment with the standard slog levels.
func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input   string
		want    Level
		wantErr bool
		name    string
	}{
		{"TRACE", LevelTrace, false, "Trace"},
		{"debug", LevelDebug, false, "LowercaseDebug"},
		{"Info", LevelInfo, false, "MixedCaseInfo"},
		{"WARN", LevelWarning, false, "WarnAlias"},
		{"WARNING", LevelWarning, false, "Warning"},
		{"error", LevelError, false, "Error"},
		{"CRITICAL", LevelCritical, false, "Critical"},
		{"FATAL", LevelCritical, false, "FatalAlias"},
		{"  info  ", LevelInfo, false, "SurroundingWhitespace"},
		{"", LevelInfo, false, "EmptyUsesDefault"},
		{"   ", LevelInfo, false, "WhitespaceUsesDefault"},
		{"VERBOSE", LevelInfo, true, "UnknownName"},
		{"InfoX", LevelInfo, true, "TrailingGarbage"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseLevel(tc.input, LevelInfo)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseLevel(%q) error = nil, want error", tc.input)
				}
				if !errors.Is(err, ErrInvalidLevel) {
					t.Errorf("ParseLevel(%q) error = %v, want ErrInvalidLevel", tc.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLevel(%q) unexpected error: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}

	t.Run("ConstantValueChecks", func(t *testing.T) {
		if LevelDebug.Level() != slog.LevelDebug {
			t.Errorf("LevelDebug (%v) does not match slog.LevelDebug", LevelDebug.Level())
		}
		if LevelInfo.Level() != slog.LevelInfo {
			t.Errorf("LevelInfo (%v) does not match slog.LevelInfo", LevelInfo.Level())
		}
		if LevelWarning.Level() != slog.LevelWarn {
			t.Errorf("LevelWarning (%v) does not match slog.LevelWarn", LevelWarning.Level())
		}
		if LevelError.Level() != slog.LevelError {
			t.Errorf("LevelError (%v) does not match slog.LevelError", LevelError.Level())
		}
	})
}
