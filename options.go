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

import "io"

// Option configures a Registry during initialization via the New function.
// Options are applied after environment variables, so a programmatic setting
// overrides the corresponding variable.
type Option func(*options)

// options holds the configurable settings prior to resolution. Fields are
// pointers so an explicitly set zero value can be told apart from an unset
// option, which falls back to environment variables or defaults.
type options struct {
	appLevel        *Level
	thirdPartyLevel *Level
	spotlight       *PrefixSet
	muted           *PrefixSet
	envPrefix       *string
	loggerPrefix    *string
	fileName        *string
	maxMessageChars *int
	writer          io.Writer
	console         io.Writer
}

// WithAppLevel returns an Option that sets the minimum severity for
// application loggers, overriding {APP}_LOG_LEVEL.
func WithAppLevel(level Level) Option {
	return func(o *options) {
		lvl := level
		o.appLevel = &lvl
	}
}

// WithThirdPartyLevel returns an Option that sets the minimum severity for
// third-party loggers, overriding {APP}_THIRD_PARTY_LOG_LEVEL.
func WithThirdPartyLevel(level Level) Option {
	return func(o *options) {
		lvl := level
		o.thirdPartyLevel = &lvl
	}
}

// WithSpotlight returns an Option that sets the third-party spotlight
// allow-list, overriding {APP}_THIRD_PARTY_LOGGERS. Passing no prefixes
// restores the uniform third-party policy even if the variable is set.
func WithSpotlight(prefixes ...string) Option {
	return func(o *options) {
		set := PrefixSet(append([]string(nil), prefixes...))
		o.spotlight = &set
	}
}

// WithMuted returns an Option that sets the muted prefix list, overriding
// {APP}_MUTED_LOGGERS. Covered loggers are floored at WARNING.
func WithMuted(prefixes ...string) Option {
	return func(o *options) {
		set := PrefixSet(append([]string(nil), prefixes...))
		o.muted = &set
	}
}

// WithEnvPrefix returns an Option that sets the environment variable prefix
// explicitly instead of deriving it from the application name. Useful when
// several binaries share one configuration surface.
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		p := prefix
		o.envPrefix = &p
	}
}

// WithLoggerPrefix returns an Option that sets the application root
// namespace used for classification when it differs from the app name.
func WithLoggerPrefix(prefix string) Option {
	return func(o *options) {
		p := prefix
		o.loggerPrefix = &p
	}
}

// WithFileName returns an Option that overrides the log file name within the
// resolved log directory. The default is {app}.log.
func WithFileName(name string) Option {
	return func(o *options) {
		n := name
		o.fileName = &n
	}
}

// WithMaxMessageChars returns an Option that bounds the rendered message
// portion of each line. Values below or equal to zero disable truncation.
func WithMaxMessageChars(n int) Option {
	return func(o *options) {
		v := n
		o.maxMessageChars = &v
	}
}

// WithWriter returns an Option that sends lines to w instead of the
// per-service log file. No file is opened and Reopen becomes a no-op. If w
// implements io.Closer it is closed by Registry.Close. Intended for tests
// and for hosts that manage their own destination.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		o.writer = w
	}
}

// WithConsole returns an Option that echoes every emitted line to w (for
// example os.Stdout) in addition to the log file, for interactive runs.
func WithConsole(w io.Writer) Option {
	return func(o *options) {
		o.console = w
	}
}
