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

package utils

import (
	"time"

	"k8s.io/apimachinery/pkg/util/sets"
)

// RawIssue is an issue record as it appears in the exported JSON file.
type RawIssue struct {
	URL         string     `json:"url,omitempty"`
	Number      int        `json:"number" validate:"gt=0"`
	Title       string     `json:"title,omitempty"`
	Text        string     `json:"text,omitempty"`
	Creator     string     `json:"creator,omitempty"`
	State       string     `json:"state,omitempty" validate:"omitempty,oneof=open closed"`
	Labels      []string   `json:"labels,omitempty"`
	Assignees   []string   `json:"assignees,omitempty"`
	CreatedDate string     `json:"created_date" validate:"required"`
	UpdatedDate string     `json:"updated_date,omitempty"`
	ClosedDate  string     `json:"closed_date,omitempty"`
	Events      []RawEvent `json:"events,omitempty"`
}

// RawEvent is an entry of an issue's timeline in the exported JSON file.
type RawEvent struct {
	EventType string `json:"event_type,omitempty"`
	Author    string `json:"author,omitempty"`
	EventDate string `json:"event_date,omitempty"`
	Label     string `json:"label,omitempty"`
	Comment   string `json:"comment,omitempty"`
}

// User is a GitHub login. Users are only ever referenced by name.
type User string

type State string

const (
	StateOpen   State = "open"
	StateClosed State = "closed"
)

type EventType string

const (
	EventOpened       EventType = "opened"
	EventClosed       EventType = "closed"
	EventReopened     EventType = "reopened"
	EventLabeled      EventType = "labeled"
	EventUnlabeled    EventType = "unlabeled"
	EventCommented    EventType = "commented"
	EventAssigned     EventType = "assigned"
	EventMilestoned   EventType = "milestoned"
	EventStatusChange EventType = "status_change"
	EventStateChange  EventType = "state_change"
)

// Event is a single timestamped action on an issue.
type Event struct {
	Type    EventType
	Author  User
	Date    time.Time
	Label   string
	Comment string
}

// Issue is an issue record resolved at load time. State is always open or
// closed and agrees with ClosedDate. Collections are only reachable through
// accessors returning copies.
type Issue struct {
	Number      int
	Title       string
	URL         string
	Creator     User
	State       State
	CreatedDate time.Time
	UpdatedDate time.Time

	assignees  []User
	events     []Event
	labels     sets.String
	closedDate time.Time
}

// Events returns a copy of the issue timeline in export order.
func (i *Issue) Events() []Event {
	return append([]Event(nil), i.events...)
}

// Assignees returns a copy of the assigned users.
func (i *Issue) Assignees() []User {
	return append([]User(nil), i.assignees...)
}

func (i *Issue) IsAssigned() bool {
	return len(i.assignees) > 0
}

// Labels returns the issue labels in sorted order.
func (i *Issue) Labels() []string {
	return i.labels.List()
}

func (i *Issue) HasLabel(label string) bool {
	return i.labels.Has(label)
}

// LabelSet returns a copy of the labels set.
func (i *Issue) LabelSet() sets.String {
	return sets.NewString(i.labels.UnsortedList()...)
}

func (i *Issue) IsClosed() bool {
	return !i.closedDate.IsZero()
}

// ClosedDate returns the closing timestamp, if the issue is closed.
func (i *Issue) ClosedDate() (time.Time, bool) {
	return i.closedDate, !i.closedDate.IsZero()
}

// HasOpenedEventBy reports whether the event history already records the
// issue being opened by user.
func (i *Issue) HasOpenedEventBy(user User) bool {
	for _, e := range i.events {
		if e.Type == EventOpened && e.Author == user {
			return true
		}
	}
	return false
}

// RejectedRecord describes an input record that was left out of a Dataset.
type RejectedRecord struct {
	Index  int    `json:"index"`
	Number int    `json:"number,omitempty"`
	Reason string `json:"reason"`
}

// Dataset is the result of loading an export file.
type Dataset struct {
	Source   string
	Issues   []Issue
	Rejected []RejectedRecord
}

// EventCount returns the number of events across all issues.
func (d *Dataset) EventCount() int {
	count := 0
	for i := range d.Issues {
		count += len(d.Issues[i].events)
	}
	return count
}
