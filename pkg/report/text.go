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
	"fmt"
	"strings"

	"github.com/kubernetes-sigs/issue-analytics/pkg/analysis"
	"github.com/kubernetes-sigs/issue-analytics/pkg/utils"
)

// NoData is printed instead of a chart when a filter combination matches
// nothing.
const NoData = "no data"

func (p *Printer) activityText(result *analysis.ActivityResult) error {
	fmt.Fprintf(p.out, "Activity of %s\n", result.User)
	if result.Empty() {
		fmt.Fprintf(p.out, "%s: no activity found for %s\n", NoData, result.User)
		return nil
	}
	fmt.Fprintf(p.out, "%d actions between %s and %s\n",
		result.Total, result.Months[0], result.Months[len(result.Months)-1])

	fmt.Fprintf(p.out, "\n>>>>> Activity Area\n")
	p.stackedChart(result.Months, result.Area)
	fmt.Fprintf(p.out, "\n>>>>> Activity Kind\n")
	p.stackedChart(result.Months, result.Kind)
	return nil
}

func (p *Printer) completionText(result *analysis.CompletionResult) error {
	fmt.Fprintf(p.out, ">>>>> Issue completion time (closed issues only)\n")
	fmt.Fprintf(p.out, "Analyzing %d issues\n", result.Considered)
	p.filterText(result.Filter)
	if result.Empty() {
		fmt.Fprintf(p.out, "%s: no closed issues match\n", NoData)
		if result.Aging != nil {
			p.agingText(result.Aging)
		}
		return nil
	}

	s := result.Summary
	fmt.Fprintf(p.out, "Closed issues analyzed: %d\n", s.Count)
	fmt.Fprintf(p.out, "Median time-to-close: %.1f d  |  Mean: %.1f d  |  P90: %.1f d\n", s.Median, s.Mean, s.P90)
	if result.Fastest != nil && result.Slowest != nil {
		fmt.Fprintf(p.out, "Fastest label: %s (%.1f d, n=%d)\n", result.Fastest.Label, result.Fastest.Median, result.Fastest.Count)
		fmt.Fprintf(p.out, "Slowest label: %s (%.1f d, n=%d)\n", result.Slowest.Label, result.Slowest.Median, result.Slowest.Count)
	}
	if a := result.Assignment; a != nil {
		fmt.Fprintf(p.out, "Assigned: %.1f d median (n=%d)  |  Unassigned: %.1f d median (n=%d)\n",
			a.Assigned.Median, a.Assigned.Count, a.Unassigned.Median, a.Unassigned.Count)
	}

	fmt.Fprintf(p.out, "\n>>>>> Monthly median time-to-close in days (overall + top labels)\n")
	columns := []string{"All labels"}
	byLabel := make([]map[utils.Month]float64, len(result.TopLabels))
	for i, trend := range result.TopLabels {
		columns = append(columns, trend.Label)
		byLabel[i] = map[utils.Month]float64{}
		for _, point := range trend.Points {
			byLabel[i][point.Month] = point.Median
		}
	}
	fmt.Fprintf(p.out, "%-8s", "Month")
	for _, c := range columns {
		fmt.Fprintf(p.out, " %14s", truncate(c, 14))
	}
	fmt.Fprintln(p.out)
	for _, point := range result.Overall {
		fmt.Fprintf(p.out, "%-8s %14.1f", point.Month, point.Median)
		for i := range result.TopLabels {
			if median, ok := byLabel[i][point.Month]; ok {
				fmt.Fprintf(p.out, " %14.1f", median)
			} else {
				fmt.Fprintf(p.out, " %14s", "-")
			}
		}
		fmt.Fprintln(p.out)
	}
	return nil
}

func (p *Printer) agingText(aging *analysis.Aging) {
	s := aging.Summary
	fmt.Fprintf(p.out, "\n>>>>> Open issue aging as of %s\n", aging.AsOf.Format("2006-01-02"))
	fmt.Fprintf(p.out, "Open issues: %d\n", s.Count)
	fmt.Fprintf(p.out, "Median age: %.1f d  |  Mean: %.1f d  |  P90: %.1f d\n", s.Median, s.Mean, s.P90)

	b := aging.Buckets
	for _, bucket := range []struct {
		name  string
		count int
	}{
		{"Recent (<=7 d)", b.Recent},
		{"Normal (<=30 d)", b.Normal},
		{"Old (<=90 d)", b.Old},
		{"Stale (>90 d)", b.Stale},
	} {
		fmt.Fprintf(p.out, "  %-16s %d (%.1f%%)\n", bucket.name+":", bucket.count, float64(bucket.count)*100/float64(s.Count))
	}

	if len(aging.StalestLabels) > 0 {
		fmt.Fprintf(p.out, "\n>>>>> Stalest labels by median age\n")
		for _, l := range aging.StalestLabels {
			fmt.Fprintf(p.out, "  %s: %.1f d median (%d issues)\n", l.Label, l.Median, l.Count)
		}
	}

	fmt.Fprintf(p.out, "\n>>>>> Oldest open issues\n")
	for _, issue := range aging.Oldest {
		fmt.Fprintf(p.out, "  #%d: %.0f d - %s\n", issue.Number, issue.Days, truncate(issue.Title, 60))
		if len(issue.URL) > 0 {
			fmt.Fprintf(p.out, "    %s\n", issue.URL)
		}
	}
}

func (p *Printer) triageText(result *analysis.TriageResult) error {
	fmt.Fprintf(p.out, ">>>>> Triage time (creation to first triage event)\n")
	fmt.Fprintf(p.out, "Analyzing %d issues\n", result.Considered)
	p.filterText(result.Filter)
	fmt.Fprintf(p.out, "Excluded (never triaged): %d\n", result.Excluded)
	if result.Empty() {
		fmt.Fprintf(p.out, "%s: no triage events found\n", NoData)
		return nil
	}

	s := result.Summary
	fmt.Fprintf(p.out, "Triage time summary (%s):\n", result.Unit)
	fmt.Fprintf(p.out, "  count: %d\n", s.Count)
	fmt.Fprintf(p.out, "  mean: %.2f\n", s.Mean)
	fmt.Fprintf(p.out, "  median: %.2f\n", s.Median)
	fmt.Fprintf(p.out, "  p90: %.2f\n", s.P90)
	fmt.Fprintf(p.out, "  min: %.2f\n", s.Min)
	fmt.Fprintf(p.out, "  max: %.2f\n", s.Max)
	fmt.Fprintf(p.out, "  std: %.2f\n", s.StdDev)

	fmt.Fprintf(p.out, "\n>>>>> Distribution of triage time (%s)\n", result.Unit)
	p.histogramChart(result.Histogram)
	return nil
}

func (p *Printer) summaryText(result *analysis.DatasetSummary) error {
	output := fmt.Sprintf("Found %d events across %d issues", result.Events, result.Issues)
	if len(result.Author) > 0 {
		output += fmt.Sprintf(" for %s", result.Author)
	}
	fmt.Fprintf(p.out, "%s.\n", output)
	fmt.Fprintf(p.out, "Open issues: %d\n", result.Open)
	fmt.Fprintf(p.out, "Closed issues: %d\n", result.Closed)
	return nil
}

func (p *Printer) rejectedText(rejected []utils.RejectedRecord) error {
	fmt.Fprintf(p.out, ">>>>> Rejected records: %d\n", len(rejected))
	for _, r := range rejected {
		if r.Number > 0 {
			fmt.Fprintf(p.out, "record %d (issue #%d): %s\n", r.Index, r.Number, r.Reason)
		} else {
			fmt.Fprintf(p.out, "record %d: %s\n", r.Index, r.Reason)
		}
	}
	return nil
}

func (p *Printer) filterText(f analysis.Filter) {
	if f.IsEmpty() {
		fmt.Fprintln(p.out, "No filters applied")
		return
	}
	if len(f.User) > 0 {
		fmt.Fprintf(p.out, "Filtered by user:  %s\n", f.User)
	}
	if len(f.Label) > 0 {
		fmt.Fprintf(p.out, "Filtered by label: %s\n", f.Label)
	}
	if !f.Since.IsZero() {
		fmt.Fprintf(p.out, "Since (created >=): %s\n", f.Since.Format("2006-01-02"))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "~"
}

// padRight pads s with spaces to n columns.
func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
