/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
)

const (
	featureActivity   = 1
	featureCompletion = 2
	featureTriage     = 3
)

type rootOptions struct {
	configFile   string
	outputFormat string
	outputFile   string
	verbose      bool
}

var root = rootOptions{}

var feature int
var featureFilters = filterFlags{}

// rootCmd runs one of the analyses selected with --feature
var rootCmd = &cobra.Command{
	Use:   "issue-analytics",
	Short: "issue-analytics computes activity, completion and triage statistics from a GitHub issue export",
	Long: `issue-analytics loads a static JSON export of GitHub issues and their
events and reports on it.

Select an analysis with --feature:
  1  activity of a user per month, by kind and area label (--user required)
  2  completion time of closed issues (--user, --label, --since)
  3  triage time, creation to first triage event (--user, --label, --since)

The data file is configured with ISSUES_DATA_PATH in the config file or the
environment variable of the same name.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if root.verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		slog.Debug("running script", "time", time.Now().Format("01-02-2006 15:04:05"))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		switch feature {
		case featureActivity:
			return runActivity(featureFilters)
		case featureCompletion:
			return runCompletion(featureFilters)
		case featureTriage:
			return runTriage(featureFilters)
		}
		_ = cmd.Usage()
		if !cmd.Flags().Changed("feature") {
			return fmt.Errorf("need to specify which feature to run with the --feature flag")
		}
		return fmt.Errorf("unknown feature %d, expected 1, 2 or 3", feature)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command line.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&root.configFile, "config", "c", "config.json", "config file providing ISSUES_DATA_PATH")
	rootCmd.PersistentFlags().StringVarP(&root.outputFormat, "output-format", "o", "text", "one of \"text\", \"json\", \"yaml\", \"csv\"")
	rootCmd.PersistentFlags().StringVar(&root.outputFile, "output", "", "write the report to this file instead of stdout")
	rootCmd.PersistentFlags().BoolVarP(&root.verbose, "verbose", "v", false, "log progress details")

	rootCmd.Flags().IntVarP(&feature, "feature", "f", 0, "which feature to run (1: user activity, 2: completion time, 3: triage time)")
	addFilterFlags(rootCmd.Flags(), &featureFilters)
	addTriageFlags(rootCmd.Flags(), &featureFilters)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
