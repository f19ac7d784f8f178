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

package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// rotationConf is a rendered rotation config file ready to be written.
type rotationConf struct {
	path    string
	content string
}

// logrotateConf renders the logrotate drop-in covering every service log
// under logRoot. copytruncate keeps emitters append-only with no reopen
// signal required; services that do call Reopen simply pick up the fresh
// file sooner.
func logrotateConf(logRoot string) rotationConf {
	content := fmt.Sprintf(`%s/*/*.log {
    size 100M
    rotate 10
    missingok
    notifempty
    copytruncate
}
`, logRoot)
	return rotationConf{path: "/etc/logrotate.d/instrukt-ai", content: content}
}

// newsyslogConf renders the macOS newsyslog equivalent: mode 640, keep 10,
// rotate at ~100MB, no time-based rotation.
func newsyslogConf(logRoot string) rotationConf {
	content := fmt.Sprintf("%s/*/*.log  640  10  100000  *  N\n", logRoot)
	return rotationConf{path: "/etc/newsyslog.d/instrukt-ai.conf", content: content}
}

// writeConf writes the config file, creating parent directories as needed.
// An existing file is only replaced when force is set.
func writeConf(conf rotationConf, force bool) error {
	if _, err := os.Stat(conf.path); err == nil && !force {
		return fmt.Errorf("refusing to overwrite existing file: %s (use --force)", conf.path)
	}
	if err := os.MkdirAll(filepath.Dir(conf.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(conf.path, []byte(conf.content), 0o644); err != nil {
		return fmt.Errorf("write rotation config: %w", err)
	}
	return nil
}
