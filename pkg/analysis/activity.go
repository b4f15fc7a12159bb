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
	"time"

	"github.com/pkg/errors"

	"github.com/kubernetes-sigs/issue-analytics/pkg/utils"
)

var (
	ErrUserRequired     = errors.New("a user is required for the activity analysis")
	ErrLabelUnsupported = errors.New("the label filter is not supported by the activity analysis")
)

type ActivityOptions struct {
	User utils.User
	// Since drops activity before this time when set.
	Since time.Time
	// Label is rejected; activity is broken down by label instead.
	Label string
}

// Series is a per-month count for one category, aligned with
// ActivityResult.Months.
type Series struct {
	Category utils.Category `json:"category" yaml:"category"`
	Counts   []int          `json:"counts" yaml:"counts"`
}

func (s Series) Total() int {
	total := 0
	for _, c := range s.Counts {
		total += c
	}
	return total
}

type ActivityResult struct {
	User   utils.User    `json:"user" yaml:"user"`
	Months []utils.Month `json:"months" yaml:"months"`
	Kind   []Series      `json:"kind" yaml:"kind"`
	Area   []Series      `json:"area" yaml:"area"`
	Total  int           `json:"total" yaml:"total"`
}

func (r *ActivityResult) Empty() bool {
	return r.Total == 0
}

type activityUnit struct {
	month utils.Month
	kind  utils.Category
	area  utils.Category
}

// UserActivity counts the user's actions per month. Each issue the user
// opened counts once at its creation time and each event the user authored
// counts once at its own time. A unit is attributed to the issue's current
// kind and area categories.
func UserActivity(issues []utils.Issue, taxonomy *utils.Taxonomy, opts ActivityOptions) (*ActivityResult, error) {
	if len(opts.User) == 0 {
		return nil, ErrUserRequired
	}
	if len(opts.Label) > 0 {
		return nil, ErrLabelUnsupported
	}

	var units []activityUnit
	for i := range issues {
		issue := &issues[i]
		labels := issue.LabelSet()
		kind := taxonomy.Classify(utils.Kind, labels)
		area := taxonomy.Classify(utils.Area, labels)
		add := func(at time.Time) {
			if !opts.Since.IsZero() && at.Before(opts.Since) {
				return
			}
			units = append(units, activityUnit{month: utils.MonthOf(at), kind: kind, area: area})
		}

		if issue.Creator == opts.User && !issue.HasOpenedEventBy(issue.Creator) {
			add(issue.CreatedDate)
		}
		for _, e := range issue.Events() {
			if e.Author == opts.User {
				add(e.Date)
			}
		}
	}

	result := &ActivityResult{
		User:   opts.User,
		Months: []utils.Month{},
		Kind:   newSeries(taxonomy.Categories(utils.Kind), 0),
		Area:   newSeries(taxonomy.Categories(utils.Area), 0),
	}
	if len(units) == 0 {
		return result, nil
	}

	first, last := units[0].month, units[0].month
	for _, u := range units {
		if u.month.Before(first) {
			first = u.month
		}
		if last.Before(u.month) {
			last = u.month
		}
	}
	result.Months = utils.MonthRange(first, last)
	result.Kind = newSeries(taxonomy.Categories(utils.Kind), len(result.Months))
	result.Area = newSeries(taxonomy.Categories(utils.Area), len(result.Months))

	column := map[utils.Month]int{}
	for i, m := range result.Months {
		column[m] = i
	}
	kindRow := seriesIndex(result.Kind)
	areaRow := seriesIndex(result.Area)
	for _, u := range units {
		result.Kind[kindRow[u.kind]].Counts[column[u.month]]++
		result.Area[areaRow[u.area]].Counts[column[u.month]]++
	}
	result.Total = len(units)
	return result, nil
}

func newSeries(categories []utils.Category, months int) []Series {
	series := make([]Series, len(categories))
	for i, c := range categories {
		series[i] = Series{Category: c, Counts: make([]int, months)}
	}
	return series
}

func seriesIndex(series []Series) map[utils.Category]int {
	index := make(map[utils.Category]int, len(series))
	for i, s := range series {
		index[s.Category] = i
	}
	return index
}
