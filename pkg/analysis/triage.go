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
	"strings"
	"time"

	"github.com/pkg/errors"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/kubernetes-sigs/issue-analytics/pkg/utils"
)

// DefaultBins is the histogram resolution of the triage distribution.
const DefaultBins = 40

// daysPerMonth is the average Gregorian month length.
const daysPerMonth = 365.25 / 12

type Unit string

const (
	Hours  Unit = "hours"
	Days   Unit = "days"
	Months Unit = "months"
)

func ParseUnit(value string) (Unit, error) {
	switch u := Unit(strings.ToLower(strings.TrimSpace(value))); u {
	case Hours, Days, Months:
		return u, nil
	case "":
		return Days, nil
	}
	return "", errors.Errorf("unknown unit %q, expected one of hours, days, months", value)
}

// Convert expresses d in the unit.
func (u Unit) Convert(d time.Duration) float64 {
	switch u {
	case Hours:
		return d.Hours()
	case Months:
		return d.Hours() / 24 / daysPerMonth
	}
	return d.Hours() / 24
}

// triageEventTypes always count as a maintainer triaging the issue.
var triageEventTypes = sets.NewString(
	string(utils.EventAssigned),
	"assign",
	"assignment",
	string(utils.EventLabeled),
	string(utils.EventMilestoned),
	string(utils.EventStatusChange),
	string(utils.EventStateChange),
)

// IsTriageEvent reports whether e counts as triage of issue: an
// assignment, labeling, milestone or status change, a comment by someone
// other than the creator, or a label or comment mentioning assignment.
func IsTriageEvent(issue *utils.Issue, e utils.Event) bool {
	if triageEventTypes.Has(string(e.Type)) {
		return true
	}
	if e.Type == utils.EventCommented && len(e.Author) > 0 && e.Author != issue.Creator {
		return true
	}
	return strings.Contains(strings.ToLower(e.Label), "assign") ||
		strings.Contains(strings.ToLower(e.Comment), "assign")
}

// FirstTriageEvent returns the earliest triage event at or after creation.
// Events are scanned in source order; ties keep the first one seen.
func FirstTriageEvent(issue *utils.Issue) (utils.Event, bool) {
	var first utils.Event
	found := false
	for _, e := range issue.Events() {
		if e.Date.Before(issue.CreatedDate) || !IsTriageEvent(issue, e) {
			continue
		}
		if !found || e.Date.Before(first.Date) {
			first, found = e, true
		}
	}
	return first, found
}

type TriageOptions struct {
	Filter Filter
	Unit   Unit
	// Bins defaults to DefaultBins.
	Bins int
}

type TriageSample struct {
	Number  int             `json:"number" yaml:"number"`
	Creator utils.User      `json:"creator" yaml:"creator"`
	Created time.Time       `json:"created" yaml:"created"`
	Triaged time.Time       `json:"triaged" yaml:"triaged"`
	Event   utils.EventType `json:"event" yaml:"event"`
	Actor   utils.User      `json:"actor,omitempty" yaml:"actor,omitempty"`
	Value   float64         `json:"value" yaml:"value"`
}

type TriageResult struct {
	Filter     Filter         `json:"filter" yaml:"filter"`
	Unit       Unit           `json:"unit" yaml:"unit"`
	Considered int            `json:"considered" yaml:"considered"`
	Samples    []TriageSample `json:"samples" yaml:"samples"`
	// Excluded counts matching issues that were never triaged.
	Excluded  int     `json:"excluded" yaml:"excluded"`
	Summary   Summary `json:"summary" yaml:"summary"`
	Histogram []Bin   `json:"histogram" yaml:"histogram"`
}

func (r *TriageResult) Empty() bool {
	return len(r.Samples) == 0
}

// TriageTime measures creation to first triage event for the matching
// issues.
func TriageTime(issues []utils.Issue, opts TriageOptions) (*TriageResult, error) {
	unit := opts.Unit
	if len(unit) == 0 {
		unit = Days
	}
	if _, err := ParseUnit(string(unit)); err != nil {
		return nil, err
	}
	bins := opts.Bins
	if bins == 0 {
		bins = DefaultBins
	}
	if bins < 0 {
		return nil, errors.Errorf("invalid number of bins %d", bins)
	}

	matched := opts.Filter.Apply(issues)
	result := &TriageResult{
		Filter:     opts.Filter,
		Unit:       unit,
		Considered: len(matched),
		Samples:    []TriageSample{},
	}
	var values []float64
	for _, issue := range matched {
		e, ok := FirstTriageEvent(issue)
		if !ok {
			result.Excluded++
			continue
		}
		v := unit.Convert(e.Date.Sub(issue.CreatedDate))
		result.Samples = append(result.Samples, TriageSample{
			Number:  issue.Number,
			Creator: issue.Creator,
			Created: issue.CreatedDate,
			Triaged: e.Date,
			Event:   e.Type,
			Actor:   e.Author,
			Value:   v,
		})
		values = append(values, v)
	}
	result.Summary = Summarize(values)
	result.Histogram = Histogram(values, bins)
	return result, nil
}
