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

import "errors"

// ErrInvalidLevel indicates that a severity name from configuration
// (for example the {APP}_LOG_LEVEL environment variable) was set to a value
// that is not a recognized level name. Configuration errors are surfaced
// once at startup and are fatal to initialization.
var ErrInvalidLevel = errors.New("instruktlog: invalid log level")

// ErrInvalidAppName indicates that the application name passed to New was
// empty or contained characters that cannot form a log file name or an
// environment variable prefix.
var ErrInvalidAppName = errors.New("instruktlog: invalid application name")

// ErrSinkClosed indicates a write was attempted after the Registry (and its
// underlying log file) was closed.
var ErrSinkClosed = errors.New("instruktlog: sink closed")

// ErrLogFileMissing indicates a reader asked for a service log file that
// does not exist at its resolved path, typically because the service has
// never run on this host.
var ErrLogFileMissing = errors.New("instruktlog: log file not found")
