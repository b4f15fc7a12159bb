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

// Package analysis turns a loaded issue list into aggregated datasets. Every
// analysis is a pure function of the issues and its options.
package analysis

import (
	"time"

	"github.com/kubernetes-sigs/issue-analytics/pkg/utils"
)

// Filter selects issues. Zero-valued fields are inactive; active fields must
// all match.
type Filter struct {
	Since time.Time  `json:"since,omitempty" yaml:"since,omitempty"`
	User  utils.User `json:"user,omitempty" yaml:"user,omitempty"`
	Label string     `json:"label,omitempty" yaml:"label,omitempty"`
}

func (f Filter) IsEmpty() bool {
	return f.Since.IsZero() && len(f.User) == 0 && len(f.Label) == 0
}

// Matches reports whether the issue was created on or after Since, by User,
// and carries Label.
func (f Filter) Matches(issue *utils.Issue) bool {
	if !f.Since.IsZero() && issue.CreatedDate.Before(f.Since) {
		return false
	}
	if len(f.User) > 0 && issue.Creator != f.User {
		return false
	}
	if len(f.Label) > 0 && !issue.HasLabel(f.Label) {
		return false
	}
	return true
}

// Apply returns pointers to the matching issues, in input order.
func (f Filter) Apply(issues []utils.Issue) []*utils.Issue {
	var matched []*utils.Issue
	for i := range issues {
		if f.Matches(&issues[i]) {
			matched = append(matched, &issues[i])
		}
	}
	return matched
}
