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
	"github.com/spf13/cobra"

	"github.com/kubernetes-sigs/issue-analytics/pkg/analysis"
	"github.com/kubernetes-sigs/issue-analytics/pkg/report"
)

var completionFilters = filterFlags{}

// completionCmd represents the completion-time command
var completionCmd = &cobra.Command{
	Use:     "completion-time",
	Aliases: []string{"completion"},
	Short:   "time from creation to close for closed issues",
	Long: `completion-time measures, for every closed issue matching all of the
given filters, the days between creation and close. It reports the median,
mean and P90, the fastest and slowest labels with at least three samples, and
the monthly median by close month overall and for the three most common
labels. Open issues are left out.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompletion(completionFilters)
	},
}

func init() {
	addFilterFlags(completionCmd.Flags(), &completionFilters)
	rootCmd.AddCommand(completionCmd)
}

func runCompletion(flags filterFlags) error {
	filter, err := flags.filter()
	if err != nil {
		return err
	}
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	result := analysis.CompletionTime(env.dataset.Issues, filter)
	logNoData(result.Empty())
	return withPrinter(func(p *report.Printer) error {
		return p.Completion(result)
	})
}
