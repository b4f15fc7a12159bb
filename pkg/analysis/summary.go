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
	"github.com/kubernetes-sigs/issue-analytics/pkg/utils"
)

// DatasetSummary counts the issues matching a filter and the events on
// them, optionally only the events authored by Author.
type DatasetSummary struct {
	Filter Filter     `json:"filter" yaml:"filter"`
	Author utils.User `json:"author,omitempty" yaml:"author,omitempty"`
	Issues int        `json:"issues" yaml:"issues"`
	Events int        `json:"events" yaml:"events"`
	Open   int        `json:"open" yaml:"open"`
	Closed int        `json:"closed" yaml:"closed"`
}

func SummarizeDataset(issues []utils.Issue, filter Filter, author utils.User) *DatasetSummary {
	matched := filter.Apply(issues)
	result := &DatasetSummary{Filter: filter, Author: author, Issues: len(matched)}
	for _, issue := range matched {
		if issue.IsClosed() {
			result.Closed++
		} else {
			result.Open++
		}
		for _, e := range issue.Events() {
			if len(author) == 0 || e.Author == author {
				result.Events++
			}
		}
	}
	return result
}
