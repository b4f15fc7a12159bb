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

package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"k8s.io/apimachinery/pkg/util/sets"
)

var validate = validator.New()

// LoadIssues reads an issue export. Records that cannot be turned into an
// Issue are skipped and listed in Dataset.Rejected; an unreadable or
// malformed file is an error.
func LoadIssues(filename string) (*Dataset, error) {
	path, _ := filepath.Abs(filename)
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read issues file")
	}

	dataset, err := LoadIssuesFromBytes(bytes)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to parse issues file %s", path)
	}
	dataset.Source = path
	return dataset, nil
}

func LoadIssuesFromBytes(bytes []byte) (*Dataset, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(bytes, &records); err != nil {
		return nil, err
	}

	dataset := &Dataset{}
	for index, record := range records {
		raw := RawIssue{}
		if err := json.Unmarshal(record, &raw); err != nil {
			dataset.Rejected = append(dataset.Rejected, RejectedRecord{Index: index, Reason: err.Error()})
			continue
		}
		issue, err := NewIssue(raw)
		if err != nil {
			dataset.Rejected = append(dataset.Rejected, RejectedRecord{Index: index, Number: raw.Number, Reason: err.Error()})
			continue
		}
		dataset.Issues = append(dataset.Issues, issue)
	}
	return dataset, nil
}

// NewIssue validates a raw record and resolves it into an Issue.
func NewIssue(raw RawIssue) (Issue, error) {
	if err := validate.Struct(raw); err != nil {
		return Issue{}, describeValidation(err)
	}

	created, err := ParseTimestamp(raw.CreatedDate)
	if err != nil {
		return Issue{}, errors.Wrap(err, "created_date")
	}
	issue := Issue{
		Number:      raw.Number,
		Title:       raw.Title,
		URL:         raw.URL,
		Creator:     User(raw.Creator),
		State:       State(raw.State),
		CreatedDate: created,
		labels:      sets.NewString(),
	}
	if len(raw.UpdatedDate) > 0 {
		if issue.UpdatedDate, err = ParseTimestamp(raw.UpdatedDate); err != nil {
			return Issue{}, errors.Wrap(err, "updated_date")
		}
	}
	for _, label := range raw.Labels {
		if label = strings.TrimSpace(label); len(label) > 0 {
			issue.labels.Insert(label)
		}
	}
	for _, assignee := range raw.Assignees {
		issue.assignees = append(issue.assignees, User(assignee))
	}
	for _, e := range raw.Events {
		// events without a timestamp cannot be placed on a timeline
		date, err := ParseTimestamp(e.EventDate)
		if err != nil {
			continue
		}
		issue.events = append(issue.events, Event{
			Type:    EventType(strings.ToLower(strings.TrimSpace(e.EventType))),
			Author:  User(e.Author),
			Date:    date,
			Label:   e.Label,
			Comment: e.Comment,
		})
	}

	closed, err := resolveClosedDate(raw, issue)
	if err != nil {
		return Issue{}, err
	}
	if !closed.IsZero() {
		if closed.Before(issue.CreatedDate) {
			return Issue{}, errors.Errorf("closed at %s before it was created at %s",
				closed.Format(time.RFC3339), issue.CreatedDate.Format(time.RFC3339))
		}
		issue.closedDate = closed
		issue.State = StateClosed
	} else {
		issue.State = StateOpen
	}
	return issue, nil
}

// resolveClosedDate prefers an explicit closed_date, then the latest closed
// event, then the update time of an issue marked closed. Issues marked open
// are never closed. Without a state, a reopened event after the closing time
// leaves the issue open.
func resolveClosedDate(raw RawIssue, issue Issue) (time.Time, error) {
	if issue.State == StateOpen {
		return time.Time{}, nil
	}
	var closed, reopened time.Time
	for _, e := range issue.events {
		switch {
		case e.Type == EventClosed && e.Date.After(closed):
			closed = e.Date
		case e.Type == EventReopened && e.Date.After(reopened):
			reopened = e.Date
		}
	}
	if len(raw.ClosedDate) > 0 {
		var err error
		if closed, err = ParseTimestamp(raw.ClosedDate); err != nil {
			return time.Time{}, errors.Wrap(err, "closed_date")
		}
	}

	if issue.State != StateClosed {
		if reopened.After(closed) {
			return time.Time{}, nil
		}
		return closed, nil
	}
	if closed.IsZero() {
		closed = issue.UpdatedDate
	}
	if closed.IsZero() {
		return time.Time{}, errors.New("state is closed but no closed_date, closed event or updated_date is set")
	}
	return closed, nil
}

func describeValidation(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}
	var problems []string
	for _, fe := range fieldErrors {
		problems = append(problems, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}
	return errors.Errorf("invalid record: %s", strings.Join(problems, ", "))
}
