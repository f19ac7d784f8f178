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

// instrukt-ai-log-setup installs the external log rotation configuration
// for the InstruktAI log tree. The logging library itself only appends;
// rotation belongs to logrotate (Linux) or newsyslog (macOS), and this
// command writes the matching configuration file.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/instrukt-ai/instruktlog"
)

var (
	logRootFlag string
	forceFlag   bool
)

var rootCmd = &cobra.Command{
	Use:   "instrukt-ai-log-setup",
	Short: "Install log rotation config for InstruktAI service logs",
	Long: `instrukt-ai-log-setup writes the rotation configuration for every log file
under the InstruktAI log root: /etc/logrotate.d/instrukt-ai on Linux, or
/etc/newsyslog.d/instrukt-ai.conf on macOS. Existing files are preserved
unless --force is given.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
	Version:       instruktlog.Version,
}

func init() {
	defaultRoot := os.Getenv(instruktlog.EnvLogRoot)
	if defaultRoot == "" {
		defaultRoot = "/var/log/instrukt-ai"
	}
	rootCmd.Flags().StringVar(&logRootFlag, "log-root", defaultRoot,
		"base log root (default: /var/log/instrukt-ai or INSTRUKT_AI_LOG_ROOT)")
	rootCmd.Flags().BoolVar(&forceFlag, "force", false, "overwrite existing config")
}

func run(cmd *cobra.Command, _ []string) error {
	var conf rotationConf
	switch runtime.GOOS {
	case "darwin":
		conf = newsyslogConf(logRootFlag)
	default:
		conf = logrotateConf(logRootFlag)
	}

	if err := writeConf(conf, forceFlag); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "installed: %s\n", conf.path)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
