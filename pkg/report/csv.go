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

package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/kubernetes-sigs/issue-analytics/pkg/analysis"
	"github.com/kubernetes-sigs/issue-analytics/pkg/utils"
)

func writeCSV(out io.Writer, header []string, rows [][]string) error {
	writer := csv.NewWriter(out)
	if err := writer.Write(header); err != nil {
		return err
	}
	if err := writer.WriteAll(rows); err != nil {
		return err
	}
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func activityCSV(out io.Writer, result *analysis.ActivityResult) error {
	var rows [][]string
	for _, dim := range []struct {
		name   string
		series []analysis.Series
	}{
		{utils.Kind.String(), result.Kind},
		{utils.Area.String(), result.Area},
	} {
		for _, s := range dim.series {
			for i, m := range result.Months {
				rows = append(rows, []string{dim.name, string(s.Category), m.String(), strconv.Itoa(s.Counts[i])})
			}
		}
	}
	return writeCSV(out, []string{"dimension", "category", "month", "count"}, rows)
}

func completionCSV(out io.Writer, result *analysis.CompletionResult) error {
	if result.Empty() && result.Aging != nil {
		return agingCSV(out, result.Aging)
	}
	var rows [][]string
	for _, s := range result.Samples {
		rows = append(rows, []string{
			strconv.Itoa(s.Number),
			s.Title,
			s.URL,
			strings.Join(s.Labels, ";"),
			strconv.FormatBool(s.Assigned),
			s.Created.Format(time.RFC3339),
			s.Closed.Format(time.RFC3339),
			formatFloat(s.Days),
		})
	}
	return writeCSV(out, []string{"number", "title", "url", "labels", "assigned", "created", "closed", "days"}, rows)
}

// agingCSV lists the oldest open issues.
func agingCSV(out io.Writer, aging *analysis.Aging) error {
	var rows [][]string
	for _, a := range aging.Oldest {
		rows = append(rows, []string{
			strconv.Itoa(a.Number),
			a.Title,
			a.URL,
			strings.Join(a.Labels, ";"),
			a.Created.Format(time.RFC3339),
			formatFloat(a.Days),
		})
	}
	return writeCSV(out, []string{"number", "title", "url", "labels", "created", "age_days"}, rows)
}

func triageCSV(out io.Writer, result *analysis.TriageResult) error {
	var rows [][]string
	for _, s := range result.Samples {
		rows = append(rows, []string{
			strconv.Itoa(s.Number),
			string(s.Creator),
			s.Created.Format(time.RFC3339),
			s.Triaged.Format(time.RFC3339),
			string(s.Event),
			string(s.Actor),
			formatFloat(s.Value),
		})
	}
	return writeCSV(out, []string{"number", "creator", "created", "triaged", "event", "actor", string(result.Unit)}, rows)
}

func summaryCSV(out io.Writer, result *analysis.DatasetSummary) error {
	rows := [][]string{
		{"issues", strconv.Itoa(result.Issues)},
		{"events", strconv.Itoa(result.Events)},
		{"open", strconv.Itoa(result.Open)},
		{"closed", strconv.Itoa(result.Closed)},
	}
	return writeCSV(out, []string{"metric", "value"}, rows)
}

func rejectedCSV(out io.Writer, rejected []utils.RejectedRecord) error {
	var rows [][]string
	for _, r := range rejected {
		rows = append(rows, []string{strconv.Itoa(r.Index), strconv.Itoa(r.Number), r.Reason})
	}
	return writeCSV(out, []string{"index", "number", "reason"}, rows)
}
