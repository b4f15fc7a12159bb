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
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kubernetes-sigs/issue-analytics/pkg/utils"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "export the loaded issues and their events as a flat csv file",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}
		return exportIssuesAndEvents(env.dataset.Issues)
	},
}

var exportFile string

func init() {
	exportCmd.Flags().StringVar(&exportFile, "csv-file", "export.csv", "output file path")
	rootCmd.AddCommand(exportCmd)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func exportIssuesAndEvents(issues []utils.Issue) error {
	type Row struct {
		number int
		date   time.Time
		fields []string
	}
	var rows []Row

	for i := range issues {
		issue := &issues[i]
		closed, _ := issue.ClosedDate()
		prefix := []string{
			strconv.Itoa(issue.Number),
			issue.Title,
			string(issue.Creator),
			string(issue.State),
			strings.Join(issue.Labels(), ";"),
			formatTime(issue.CreatedDate),
			formatTime(closed),
		}
		rows = append(rows, Row{issue.Number, issue.CreatedDate,
			append(append([]string{}, prefix...), "", "", formatTime(issue.CreatedDate), "")})
		for _, e := range issue.Events() {
			rows = append(rows, Row{issue.Number, e.Date,
				append(append([]string{}, prefix...), string(e.Type), string(e.Author), formatTime(e.Date), e.Label)})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].number != rows[j].number {
			return rows[i].number < rows[j].number
		}
		return rows[i].date.Before(rows[j].date)
	})

	fmt.Printf("\n\n>>>>> generating %s\n", exportFile)
	f, err := os.Create(exportFile)
	if err != nil {
		return err
	}
	writer := csv.NewWriter(f)
	err = writer.Write([]string{"number", "title", "creator", "state", "labels", "created", "closed",
		"event_type", "author", "event_date", "label"})
	for _, row := range rows {
		if err != nil {
			break
		}
		err = writer.Write(row.fields)
	}
	writer.Flush()
	if err == nil {
		err = writer.Error()
	}
	closeFile(f, &err)
	return err
}
