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

// instrukt-ai-logs prints a bounded time window from a service's log file
// and can follow new lines in the manner of tail -f.
//
// Usage:
//
//	# Last ten minutes of myservice's log
//	instrukt-ai-logs myservice
//
//	# Last two hours, errors only, then keep following
//	instrukt-ai-logs myservice --since 2h --grep ERROR -f
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/instrukt-ai/instruktlog"
	"github.com/instrukt-ai/instruktlog/tail"
)

var (
	sinceFlag  string
	followFlag bool
	grepFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "instrukt-ai-logs APP",
	Short: "Read the tail window of an InstruktAI service log",
	Long: `instrukt-ai-logs prints log lines from the canonical per-service log file
(/var/log/instrukt-ai/{app}/{app}.log, or under INSTRUKT_AI_LOG_ROOT when
set), including rotated siblings, restricted to a time window. With --follow
it then streams new lines as the service appends them, surviving external
log rotation.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	RunE:          run,
	Version:       instruktlog.Version,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVar(&sinceFlag, "since", "10m", "time window (e.g. 30s, 10m, 2h, 1d)")
	rootCmd.Flags().BoolVarP(&followFlag, "follow", "f", false, "follow the log after printing the window")
	rootCmd.Flags().StringVar(&grepFlag, "grep", "", "regex to filter lines")
}

func run(cmd *cobra.Command, args []string) error {
	app := args[0]

	since, err := tail.ParseSince(sinceFlag)
	if err != nil {
		return err
	}

	var pattern *regexp.Regexp
	if grepFlag != "" {
		pattern, err = regexp.Compile(grepFlag)
		if err != nil {
			return fmt.Errorf("invalid --grep pattern: %w", err)
		}
	}

	logFile := instruktlog.ResolveLogFile(app)
	if _, err := os.Stat(logFile); err != nil {
		return fmt.Errorf("%w: %s", instruktlog.ErrLogFileMissing, logFile)
	}

	lines, err := tail.Recent(logFile, since)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, line := range lines {
		if pattern != nil && !pattern.MatchString(line) {
			continue
		}
		fmt.Fprintln(out, line)
	}

	if !followFlag {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	follower := tail.NewFollower(logFile)
	err = follower.Follow(ctx, func(line string) error {
		if pattern != nil && !pattern.MatchString(line) {
			return nil
		}
		_, werr := fmt.Fprint(out, line)
		return werr
	})
	if errors.Is(err, context.Canceled) {
		return nil // interrupted by the operator
	}
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
