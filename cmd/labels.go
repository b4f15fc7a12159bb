/*
Copyright 2021 The Kubernetes Authors.

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
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/kubernetes-sigs/issue-analytics/pkg/utils"
)

// labelsCmd represents the labels command
var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "print every label in use with its kind/area category and the issues carrying it",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}
		return printIssuesForLabels(env)
	},
}

var labelsFile string

func init() {
	labelsCmd.Flags().StringVar(&labelsFile, "csv-file", "labels.csv", "output file path")
	rootCmd.AddCommand(labelsCmd)
}

func printIssuesForLabels(env *environment) error {
	labelIssues := map[string]sets.Int{}
	for i := range env.dataset.Issues {
		issue := &env.dataset.Issues[i]
		for _, label := range issue.Labels() {
			var ok bool
			var val sets.Int
			if val, ok = labelIssues[label]; !ok {
				val = sets.Int{}
				labelIssues[label] = val
			}
			val.Insert(issue.Number)
		}
	}

	var labels []string
	for label := range labelIssues {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	describe := func(label string) (string, string) {
		dim, category, ok := env.taxonomy.Lookup(label)
		if !ok {
			return "-", "-"
		}
		return dim.String(), string(category)
	}
	for _, label := range labels {
		dim, category := describe(label)
		fmt.Printf("%s (%s: %s): %d issues\n", label, dim, category, labelIssues[label].Len())
	}

	unused := sets.NewString()
	for _, dim := range []utils.Dimension{utils.Kind, utils.Area} {
		for _, m := range env.taxonomy.Mappings(dim) {
			if _, ok := labelIssues[m.Label]; !ok {
				unused.Insert(m.Label)
			}
		}
	}
	if unused.Len() > 0 {
		fmt.Printf("\n\n>>>>> Taxonomy labels without issues: %d\n", unused.Len())
		for _, label := range unused.List() {
			fmt.Printf("\t%s\n", label)
		}
	}

	fmt.Printf("\n\n>>>>> generating %s\n", labelsFile)
	f, err := os.Create(labelsFile)
	if err != nil {
		return err
	}
	writer := csv.NewWriter(f)
	for _, label := range labels {
		dim, category := describe(label)
		for _, number := range labelIssues[label].List() {
			if err = writer.Write([]string{label, dim, category, strconv.Itoa(number)}); err != nil {
				break
			}
		}
		if err != nil {
			break
		}
	}
	writer.Flush()
	if err == nil {
		err = writer.Error()
	}
	closeFile(f, &err)
	return err
}
