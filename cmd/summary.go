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
	"github.com/kubernetes-sigs/issue-analytics/pkg/utils"
)

var summaryFilters = filterFlags{}

// summaryCmd represents the summary command
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "count the issues and events in the export",
	Long: `summary counts the issues matching --label and --since and the events
on them. With --user only events authored by that user are counted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := summaryFilters.filter()
		if err != nil {
			return err
		}
		// --user selects event authors here, not issue creators
		author := filter.User
		filter.User = ""

		env, err := loadEnvironment()
		if err != nil {
			return err
		}
		result := analysis.SummarizeDataset(env.dataset.Issues, filter, utils.User(author))
		return withPrinter(func(p *report.Printer) error {
			return p.Summary(result)
		})
	},
}

func init() {
	addFilterFlags(summaryCmd.Flags(), &summaryFilters)
	rootCmd.AddCommand(summaryCmd)
}
