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

package analysis

import (
	"sort"
	"time"

	"github.com/kubernetes-sigs/issue-analytics/pkg/utils"
)

const (
	// minLabelSamples is the sample size a label needs before it is ranked
	// as fastest or slowest.
	minLabelSamples = 3
	// trendLabels is how many of the most frequent labels get a monthly
	// trend line.
	trendLabels = 3
	// unlabeled stands in for the labels of an issue without any.
	unlabeled = string(utils.Unlabeled)
)

type CompletionSample struct {
	Number   int       `json:"number" yaml:"number"`
	Title    string    `json:"title,omitempty" yaml:"title,omitempty"`
	URL      string    `json:"url,omitempty" yaml:"url,omitempty"`
	Labels   []string  `json:"labels" yaml:"labels"`
	Assigned bool      `json:"assigned" yaml:"assigned"`
	Created  time.Time `json:"created" yaml:"created"`
	Closed   time.Time `json:"closed" yaml:"closed"`
	Days     float64   `json:"days" yaml:"days"`
}

type LabelStat struct {
	Label  string  `json:"label" yaml:"label"`
	Median float64 `json:"median" yaml:"median"`
	Count  int     `json:"count" yaml:"count"`
}

type MonthlyMedian struct {
	Month  utils.Month `json:"month" yaml:"month"`
	Median float64     `json:"median" yaml:"median"`
	Count  int         `json:"count" yaml:"count"`
}

// GroupStat is the median completion time of a group of samples.
type GroupStat struct {
	Median float64 `json:"median" yaml:"median"`
	Count  int     `json:"count" yaml:"count"`
}

type AssignmentStats struct {
	Assigned   GroupStat `json:"assigned" yaml:"assigned"`
	Unassigned GroupStat `json:"unassigned" yaml:"unassigned"`
}

type LabelTrend struct {
	Label  string          `json:"label" yaml:"label"`
	Points []MonthlyMedian `json:"points" yaml:"points"`
}

// CompletionResult holds the closed-issue distribution. Aging is only set
// when no matching issue is closed.
type CompletionResult struct {
	Filter     Filter             `json:"filter" yaml:"filter"`
	Considered int                `json:"considered" yaml:"considered"`
	Samples    []CompletionSample `json:"samples" yaml:"samples"`
	Summary    Summary            `json:"summary" yaml:"summary"`
	Fastest    *LabelStat         `json:"fastest,omitempty" yaml:"fastest,omitempty"`
	Slowest    *LabelStat         `json:"slowest,omitempty" yaml:"slowest,omitempty"`
	Overall    []MonthlyMedian    `json:"overall" yaml:"overall"`
	TopLabels  []LabelTrend       `json:"topLabels" yaml:"topLabels"`
	Assignment *AssignmentStats   `json:"assignment,omitempty" yaml:"assignment,omitempty"`
	Aging      *Aging             `json:"aging,omitempty" yaml:"aging,omitempty"`
}

func (r *CompletionResult) Empty() bool {
	return len(r.Samples) == 0
}

// CompletionTime measures creation to close, in days, for every closed issue
// matching the filter. Open issues are skipped, unless none of the matching
// issues is closed, in which case they are aged as of now.
func CompletionTime(issues []utils.Issue, filter Filter) *CompletionResult {
	return CompletionTimeAt(issues, filter, time.Now().UTC())
}

// CompletionTimeAt is CompletionTime with open issues aged at now.
func CompletionTimeAt(issues []utils.Issue, filter Filter, now time.Time) *CompletionResult {
	matched := filter.Apply(issues)
	result := &CompletionResult{
		Filter:     filter,
		Considered: len(matched),
		Samples:    []CompletionSample{},
	}

	var days []float64
	for _, issue := range matched {
		closed, ok := issue.ClosedDate()
		if !ok {
			continue
		}
		labels := issue.Labels()
		if len(labels) == 0 {
			labels = []string{unlabeled}
		}
		d := closed.Sub(issue.CreatedDate).Hours() / 24
		result.Samples = append(result.Samples, CompletionSample{
			Number:   issue.Number,
			Title:    issue.Title,
			URL:      issue.URL,
			Labels:   labels,
			Assigned: issue.IsAssigned(),
			Created:  issue.CreatedDate,
			Closed:   closed,
			Days:     d,
		})
		days = append(days, d)
	}
	if len(days) == 0 {
		result.Aging = OpenIssueAging(matched, now)
		return result
	}

	result.Summary = Summarize(days)
	result.Fastest, result.Slowest = rankLabels(result.Samples)
	result.Assignment = assignmentStats(result.Samples)
	result.Overall = monthlyMedians(result.Samples, func(CompletionSample) bool { return true })
	for _, label := range topLabels(result.Samples, trendLabels) {
		label := label
		result.TopLabels = append(result.TopLabels, LabelTrend{
			Label: label,
			Points: monthlyMedians(result.Samples, func(s CompletionSample) bool {
				for _, l := range s.Labels {
					if l == label {
						return true
					}
				}
				return false
			}),
		})
	}
	return result
}

func assignmentStats(samples []CompletionSample) *AssignmentStats {
	var assigned, unassigned []float64
	for _, s := range samples {
		if s.Assigned {
			assigned = append(assigned, s.Days)
		} else {
			unassigned = append(unassigned, s.Days)
		}
	}
	return &AssignmentStats{
		Assigned:   GroupStat{Median: Median(assigned), Count: len(assigned)},
		Unassigned: GroupStat{Median: Median(unassigned), Count: len(unassigned)},
	}
}

func samplesByLabel(samples []CompletionSample) map[string][]float64 {
	byLabel := map[string][]float64{}
	for _, s := range samples {
		for _, l := range s.Labels {
			byLabel[l] = append(byLabel[l], s.Days)
		}
	}
	return byLabel
}

func rankLabels(samples []CompletionSample) (*LabelStat, *LabelStat) {
	var stats []LabelStat
	for label, days := range samplesByLabel(samples) {
		if len(days) < minLabelSamples {
			continue
		}
		stats = append(stats, LabelStat{Label: label, Median: Median(days), Count: len(days)})
	}
	if len(stats) == 0 {
		return nil, nil
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Median != stats[j].Median {
			return stats[i].Median < stats[j].Median
		}
		return stats[i].Label < stats[j].Label
	})
	fastest, slowest := stats[0], stats[len(stats)-1]
	return &fastest, &slowest
}

// topLabels returns up to n labels with the most samples, ties broken by
// name.
func topLabels(samples []CompletionSample, n int) []string {
	type labelCount struct {
		label string
		count int
	}
	var counts []labelCount
	for label, days := range samplesByLabel(samples) {
		counts = append(counts, labelCount{label, len(days)})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].label < counts[j].label
	})
	var labels []string
	for i := 0; i < len(counts) && i < n; i++ {
		labels = append(labels, counts[i].label)
	}
	return labels
}

// monthlyMedians groups the selected samples by the month they closed in.
func monthlyMedians(samples []CompletionSample, include func(CompletionSample) bool) []MonthlyMedian {
	byMonth := map[utils.Month][]float64{}
	for _, s := range samples {
		if include(s) {
			m := utils.MonthOf(s.Closed)
			byMonth[m] = append(byMonth[m], s.Days)
		}
	}
	var points []MonthlyMedian
	for m, days := range byMonth {
		points = append(points, MonthlyMedian{Month: m, Median: Median(days), Count: len(days)})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Month.Before(points[j].Month)
	})
	return points
}
