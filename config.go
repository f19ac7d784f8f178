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
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Environment variable names used for configuration. The per-application
// variables are prefixed with the app's env prefix (see EnvPrefix); the log
// root override is global so one setting relocates every service's logs.
const (
	// EnvLogRoot overrides the canonical log root directory. When set, the
	// log file is written directly inside it instead of under
	// /var/log/instrukt-ai/{app}/.
	EnvLogRoot = "INSTRUKT_AI_LOG_ROOT"

	envSuffixLogLevel          = "_LOG_LEVEL"
	envSuffixThirdPartyLevel   = "_THIRD_PARTY_LOG_LEVEL"
	envSuffixThirdPartyLoggers = "_THIRD_PARTY_LOGGERS"
	envSuffixMutedLoggers      = "_MUTED_LOGGERS"
)

// Default values used when the corresponding environment variable is unset.
const (
	defaultAppLevel        = LevelInfo
	defaultThirdPartyLevel = LevelWarning

	// defaultMaxMessageChars bounds the rendered message portion of a line.
	// It is a library constant rather than an environment knob; automated
	// tail-window readers size their buffers against it.
	defaultMaxMessageChars = 4000

	canonicalLogRoot = "/var/log/instrukt-ai"
)

// Config is the immutable snapshot of the logging policy for one service.
// It is resolved once by New and read-only for the life of the process;
// changing any knob requires building a new Registry. Reads need no locking.
type Config struct {
	// AppName is the service name, used for the log directory and file stem.
	AppName string

	// EnvPrefix is the uppercase prefix of the per-app environment
	// variables, derived from AppName unless overridden.
	EnvPrefix string

	// AppLoggerPrefix is the root namespace of application loggers.
	// Defaults to AppName.
	AppLoggerPrefix string

	// AppLevel is the minimum severity for application loggers.
	AppLevel Level

	// ThirdPartyLevel is the minimum severity for third-party loggers
	// (subject to the spotlight set below).
	ThirdPartyLevel Level

	// Spotlight is the third-party allow-list. When non-empty, only covered
	// third-party loggers emit at ThirdPartyLevel; all other third-party
	// loggers are forced to WARNING.
	Spotlight PrefixSet

	// Muted lists prefixes whose threshold is floored at WARNING regardless
	// of class. Muting only raises the bar, never lowers it.
	Muted PrefixSet

	// MaxMessageChars bounds the rendered message before the key/value
	// suffix is appended.
	MaxMessageChars int

	// LogFile is the resolved path the sink appends to.
	LogFile string

	// thresholds caches EffectiveThreshold results per logger name. The
	// computation is a pure function of the fields above, so the cache has
	// no observable contract beyond "same inputs, same output".
	thresholds sync.Map
}

// EffectiveThreshold computes the minimum severity a record from the named
// logger must meet to be emitted. Evaluation order encodes the policy:
// mute wins, then spotlight, then the class default.
func (c *Config) EffectiveThreshold(name string) Level {
	if v, ok := c.thresholds.Load(name); ok {
		return v.(Level)
	}
	t := c.computeThreshold(name)
	c.thresholds.Store(name, t)
	return t
}

func (c *Config) computeThreshold(name string) Level {
	base := c.classDefault(name)
	if c.Muted.Covers(name) {
		return maxLevel(LevelWarning, base)
	}
	return base
}

// classDefault returns the threshold the logger would have absent muting.
func (c *Config) classDefault(name string) Level {
	if Classify(c.AppLoggerPrefix, name) == ClassApplication {
		return c.AppLevel
	}
	if len(c.Spotlight) > 0 {
		if c.Spotlight.Covers(name) {
			return c.ThirdPartyLevel
		}
		// Not spotlighted: forced quiet. This is the anti-spam mechanism.
		return LevelWarning
	}
	return c.ThirdPartyLevel
}

// EnvPrefix derives the environment variable prefix for an application name:
// uppercase, with characters that cannot appear in a variable name replaced
// by underscores ("my-service" becomes "MY_SERVICE").
func EnvPrefix(appName string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - ('a' - 'A')
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, appName)
	return mapped
}

// ResolveLogFile returns the canonical log file path for an application:
// /var/log/instrukt-ai/{app}/{app}.log, or {INSTRUKT_AI_LOG_ROOT}/{app}.log
// when the override is set. It performs no filesystem access; the path may
// not exist yet.
func ResolveLogFile(appName string) string {
	return filepath.Join(resolveLogDir(appName), appName+".log")
}

func resolveLogDir(appName string) string {
	if override := os.Getenv(EnvLogRoot); override != "" {
		return expandHome(override)
	}
	return filepath.Join(canonicalLogRoot, appName)
}

// fallbackLogDirs lists the directories tried, in order, when the canonical
// directory cannot be created or written: a repo-local ./logs directory, then
// the system temp directory, so development and CI runs are never blocked on
// /var/log permissions.
func fallbackLogDirs(appName string) []string {
	var dirs []string
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, filepath.Join(cwd, "logs"))
	}
	return append(dirs, filepath.Join(os.TempDir(), "instrukt-ai", appName))
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// loadConfig resolves the snapshot for appName from defaults and environment
// variables. Programmatic options are layered on by New afterwards. A value
// that is set but malformed is a fatal configuration error, never a silent
// default.
func loadConfig(appName, envPrefix string) (*Config, error) {
	if strings.TrimSpace(appName) == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidAppName)
	}
	if strings.ContainsAny(appName, "/\\ ") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAppName, appName)
	}

	prefix := envPrefix
	if prefix == "" {
		prefix = EnvPrefix(appName)
	}
	cfg := &Config{
		AppName:         appName,
		EnvPrefix:       prefix,
		AppLoggerPrefix: appName,
		MaxMessageChars: defaultMaxMessageChars,
	}

	var err error
	cfg.AppLevel, err = ParseLevel(os.Getenv(prefix+envSuffixLogLevel), defaultAppLevel)
	if err != nil {
		return nil, fmt.Errorf("%s%s: %w", prefix, envSuffixLogLevel, err)
	}
	cfg.ThirdPartyLevel, err = ParseLevel(os.Getenv(prefix+envSuffixThirdPartyLevel), defaultThirdPartyLevel)
	if err != nil {
		return nil, fmt.Errorf("%s%s: %w", prefix, envSuffixThirdPartyLevel, err)
	}
	cfg.Spotlight = ParsePrefixSet(os.Getenv(prefix + envSuffixThirdPartyLoggers))
	cfg.Muted = ParsePrefixSet(os.Getenv(prefix + envSuffixMutedLoggers))
	cfg.LogFile = ResolveLogFile(appName)

	return cfg, nil
}
