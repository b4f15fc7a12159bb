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
	recentAge = 7
	normalAge = 30
	oldAge    = 90

	// stalestLabels and oldestIssues bound the aging listings.
	stalestLabels   = 10
	oldestIssues    = 15
	minStaleSamples = 2
)

// AgeBuckets counts open issues by age in days: recent up to 7, normal up
// to 30, old up to 90 and stale beyond.
type AgeBuckets struct {
	Recent int `json:"recent" yaml:"recent"`
	Normal int `json:"normal" yaml:"normal"`
	Old    int `json:"old" yaml:"old"`
	Stale  int `json:"stale" yaml:"stale"`
}

func (b *AgeBuckets) add(days float64) {
	switch {
	case days <= recentAge:
		b.Recent++
	case days <= normalAge:
		b.Normal++
	case days <= oldAge:
		b.Old++
	default:
		b.Stale++
	}
}

type OpenIssueAge struct {
	Number  int       `json:"number" yaml:"number"`
	Title   string    `json:"title,omitempty" yaml:"title,omitempty"`
	URL     string    `json:"url,omitempty" yaml:"url,omitempty"`
	Labels  []string  `json:"labels" yaml:"labels"`
	Created time.Time `json:"created" yaml:"created"`
	Days    float64   `json:"days" yaml:"days"`
}

// Aging describes how long the open issues have been waiting as of AsOf.
type Aging struct {
	AsOf          time.Time      `json:"asOf" yaml:"asOf"`
	Summary       Summary        `json:"summary" yaml:"summary"`
	Buckets       AgeBuckets     `json:"buckets" yaml:"buckets"`
	StalestLabels []LabelStat    `json:"stalestLabels" yaml:"stalestLabels"`
	Oldest        []OpenIssueAge `json:"oldest" yaml:"oldest"`
}

// OpenIssueAging ages every open issue in issues at now. Issues created
// after now are skipped. It returns nil when no issue qualifies.
func OpenIssueAging(issues []*utils.Issue, now time.Time) *Aging {
	var ages []OpenIssueAge
	var days []float64
	for _, issue := range issues {
		if issue.IsClosed() || issue.CreatedDate.After(now) {
			continue
		}
		labels := issue.Labels()
		if len(labels) == 0 {
			labels = []string{unlabeled}
		}
		d := now.Sub(issue.CreatedDate).Hours() / 24
		ages = append(ages, OpenIssueAge{
			Number:  issue.Number,
			Title:   issue.Title,
			URL:     issue.URL,
			Labels:  labels,
			Created: issue.CreatedDate,
			Days:    d,
		})
		days = append(days, d)
	}
	if len(ages) == 0 {
		return nil
	}

	aging := &Aging{AsOf: now, Summary: Summarize(days), StalestLabels: []LabelStat{}}
	for _, d := range days {
		aging.Buckets.add(d)
	}

	byLabel := map[string][]float64{}
	for _, a := range ages {
		for _, l := range a.Labels {
			byLabel[l] = append(byLabel[l], a.Days)
		}
	}
	for label, labelDays := range byLabel {
		if len(labelDays) >= minStaleSamples {
			aging.StalestLabels = append(aging.StalestLabels, LabelStat{Label: label, Median: Median(labelDays), Count: len(labelDays)})
		}
	}
	sort.Slice(aging.StalestLabels, func(i, j int) bool {
		a, b := aging.StalestLabels[i], aging.StalestLabels[j]
		if a.Median != b.Median {
			return a.Median > b.Median
		}
		return a.Label < b.Label
	})
	if len(aging.StalestLabels) > stalestLabels {
		aging.StalestLabels = aging.StalestLabels[:stalestLabels]
	}

	sort.SliceStable(ages, func(i, j int) bool {
		if ages[i].Days != ages[j].Days {
			return ages[i].Days > ages[j].Days
		}
		return ages[i].Number < ages[j].Number
	})
	if len(ages) > oldestIssues {
		ages = ages[:oldestIssues]
	}
	aging.Oldest = ages
	return aging
}
