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

var triageFilters = filterFlags{}

// triageCmd represents the triage-time command
var triageCmd = &cobra.Command{
	Use:     "triage-time",
	Aliases: []string{"triage"},
	Short:   "time from creation to the first triage event",
	Long: `triage-time measures, for every issue matching all of the given
filters, the time between creation and the earliest triage event after it.

A triage event is an assignment, labeling, milestone or status change, a
comment by someone other than the issue creator, or any event whose label or
comment mentions assignment. Issues never triaged are counted as excluded.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTriage(triageFilters)
	},
}

func init() {
	addFilterFlags(triageCmd.Flags(), &triageFilters)
	addTriageFlags(triageCmd.Flags(), &triageFilters)
	rootCmd.AddCommand(triageCmd)
}

func runTriage(flags filterFlags) error {
	filter, err := flags.filter()
	if err != nil {
		return err
	}
	unit, err := analysis.ParseUnit(flags.unit)
	if err != nil {
		return err
	}
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	result, err := analysis.TriageTime(env.dataset.Issues, analysis.TriageOptions{
		Filter: filter,
		Unit:   unit,
		Bins:   flags.bins,
	})
	if err != nil {
		return err
	}
	logNoData(result.Empty())
	return withPrinter(func(p *report.Printer) error {
		return p.Triage(result)
	})
}
