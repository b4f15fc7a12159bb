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

var activityFilters = filterFlags{}

// activityCmd represents the activity command
var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "monthly activity of a user broken down by kind and area labels",
	Long: `activity counts every issue a user opened and every event a user
authored, per calendar month, and stacks the counts by the kind and area
category of the issue. Months without activity are shown as zero.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runActivity(activityFilters)
	},
}

func init() {
	addFilterFlags(activityCmd.Flags(), &activityFilters)
	rootCmd.AddCommand(activityCmd)
}

func runActivity(flags filterFlags) error {
	filter, err := flags.filter()
	if err != nil {
		return err
	}
	opts := analysis.ActivityOptions{User: filter.User, Since: filter.Since, Label: filter.Label}
	if len(opts.User) == 0 {
		return analysis.ErrUserRequired
	}
	if len(opts.Label) > 0 {
		return analysis.ErrLabelUnsupported
	}

	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	result, err := analysis.UserActivity(env.dataset.Issues, env.taxonomy, opts)
	if err != nil {
		return err
	}
	logNoData(result.Empty())
	return withPrinter(func(p *report.Printer) error {
		return p.Activity(result)
	})
}

