package utils

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func utilJoinPath(t *testing.T, path string) (string, string) {
	utilsDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("error while get root dir %v", err)
	}
	pkgDir := filepath.Dir(utilsDir)
	root := filepath.Dir(pkgDir)
	testDir := filepath.Join(root, "testdata")
	file := filepath.Join(testDir, path)
	return file, testDir
}

func date(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestLoadIssues(t *testing.T) {
	file, _ := utilJoinPath(t, "issues.json")
	result, err := LoadIssues(file)
	if err != nil {
		t.Fatalf("error while loading issues: %v", err)
	}
	if result.Source != file {
		t.Errorf("unexpected source, expected: %s, got: %s", file, result.Source)
	}

	var numbers []int
	for _, issue := range result.Issues {
		numbers = append(numbers, issue.Number)
	}
	if !reflect.DeepEqual([]int{101, 102, 103}, numbers) {
		t.Errorf("unexpected issues loaded, expected: %#v, got: %#v", []int{101, 102, 103}, numbers)
	}

	var rejected []int
	for _, r := range result.Rejected {
		rejected = append(rejected, r.Index)
		if len(r.Reason) == 0 {
			t.Errorf("rejected record %d has no reason", r.Index)
		}
	}
	if !reflect.DeepEqual([]int{3, 4, 5}, rejected) {
		t.Errorf("unexpected rejected records, expected: %#v, got: %#v", []int{3, 4, 5}, rejected)
	}
	if result.EventCount() != 4 {
		t.Errorf("unexpected event count, expected: 4, got: %d", result.EventCount())
	}
}

func TestLoadIssuesMissingFile(t *testing.T) {
	file, _ := utilJoinPath(t, "does-not-exist.json")
	if _, err := LoadIssues(file); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}

func TestLoadIssuesFromBytesMalformed(t *testing.T) {
	testCases := []struct {
		desc  string
		input string
	}{
		{desc: "not json", input: "issues:"},
		{desc: "object instead of array", input: `{"number": 1}`},
		{desc: "truncated", input: `[{"number": 1,`},
	}
	for _, testCase := range testCases {
		if _, err := LoadIssuesFromBytes([]byte(testCase.input)); err == nil {
			t.Errorf("expected an error for '%s'", testCase.desc)
		}
	}
}

func TestNewIssueClosedDate(t *testing.T) {
	testCases := []struct {
		desc       string
		raw        RawIssue
		closed     bool
		closedDate time.Time
	}{
		{
			desc: "explicit closed_date",
			raw: RawIssue{Number: 1, State: "closed", CreatedDate: "2024-01-01T00:00:00Z",
				ClosedDate: "2024-01-10T00:00:00Z", UpdatedDate: "2024-02-01T00:00:00Z"},
			closed:     true,
			closedDate: date("2024-01-10T00:00:00Z"),
		},
		{
			desc: "latest closed event",
			raw: RawIssue{Number: 1, State: "closed", CreatedDate: "2024-01-01T00:00:00Z",
				Events: []RawEvent{
					{EventType: "closed", EventDate: "2024-01-05T00:00:00Z"},
					{EventType: "reopened", EventDate: "2024-01-06T00:00:00Z"},
					{EventType: "Closed", EventDate: "2024-01-08T00:00:00Z"},
				}},
			closed:     true,
			closedDate: date("2024-01-08T00:00:00Z"),
		},
		{
			desc: "closed state falls back to updated_date",
			raw: RawIssue{Number: 1, State: "closed", CreatedDate: "2024-01-01T00:00:00Z",
				UpdatedDate: "2024-01-04T00:00:00Z"},
			closed:     true,
			closedDate: date("2024-01-04T00:00:00Z"),
		},
		{
			desc: "open issue ignores closed events",
			raw: RawIssue{Number: 1, State: "open", CreatedDate: "2024-01-01T00:00:00Z",
				Events: []RawEvent{{EventType: "closed", EventDate: "2024-01-05T00:00:00Z"}}},
			closed: false,
		},
		{
			desc: "missing state reopened after the last close",
			raw: RawIssue{Number: 2, CreatedDate: "2024-01-01T00:00:00Z",
				Events: []RawEvent{
					{EventType: "closed", EventDate: "2024-01-05T00:00:00Z"},
					{EventType: "reopened", EventDate: "2024-01-06T00:00:00Z"},
				}},
			closed: false,
		},
		{
			desc: "missing state closed again after a reopen",
			raw: RawIssue{Number: 2, CreatedDate: "2024-01-01T00:00:00Z",
				Events: []RawEvent{
					{EventType: "reopened", EventDate: "2024-01-06T00:00:00Z"},
					{EventType: "closed", EventDate: "2024-01-09T00:00:00Z"},
					{EventType: "closed", EventDate: "2024-01-05T00:00:00Z"},
				}},
			closed:     true,
			closedDate: date("2024-01-09T00:00:00Z"),
		},
		{
			desc: "missing state with closed_date before a reopen",
			raw: RawIssue{Number: 2, CreatedDate: "2024-01-01T00:00:00Z", ClosedDate: "2024-01-05T00:00:00Z",
				Events: []RawEvent{{EventType: "reopened", EventDate: "2024-01-06T00:00:00Z"}}},
			closed: false,
		},
		{
			desc: "missing state with closed_date",
			raw: RawIssue{Number: 1, CreatedDate: "2024-01-01T00:00:00Z",
				ClosedDate: "2024-01-02T00:00:00Z"},
			closed:     true,
			closedDate: date("2024-01-02T00:00:00Z"),
		},
	}
	for _, testCase := range testCases {
		issue, err := NewIssue(testCase.raw)
		if err != nil {
			t.Fatalf("error while creating issue for case %s: %v", testCase.desc, err)
		}
		closedDate, closed := issue.ClosedDate()
		if closed != testCase.closed || !closedDate.Equal(testCase.closedDate) {
			t.Errorf("unexpected closing for '%s', expected: %v %v, got: %v %v",
				testCase.desc, testCase.closed, testCase.closedDate, closed, closedDate)
		}
		expectedState := StateOpen
		if testCase.closed {
			expectedState = StateClosed
		}
		if issue.State != expectedState {
			t.Errorf("unexpected state for '%s', expected: %q, got: %q", testCase.desc, expectedState, issue.State)
		}
		if closed && closedDate.Before(issue.CreatedDate) {
			t.Errorf("closed before created for '%s'", testCase.desc)
		}
	}
}

func TestNewIssueRejects(t *testing.T) {
	testCases := []struct {
		desc string
		raw  RawIssue
	}{
		{desc: "missing number", raw: RawIssue{CreatedDate: "2024-01-01"}},
		{desc: "missing created_date", raw: RawIssue{Number: 3}},
		{desc: "unknown state", raw: RawIssue{Number: 3, State: "merged", CreatedDate: "2024-01-01"}},
		{desc: "bad created_date", raw: RawIssue{Number: 3, CreatedDate: "yesterday"}},
		{desc: "closed before created", raw: RawIssue{Number: 3, CreatedDate: "2024-01-02", ClosedDate: "2024-01-01"}},
		{desc: "closed without any closing time", raw: RawIssue{Number: 3, State: "closed", CreatedDate: "2024-01-02"}},
	}
	for _, testCase := range testCases {
		if _, err := NewIssue(testCase.raw); err == nil {
			t.Errorf("expected '%s' to be rejected", testCase.desc)
		}
	}
}

func TestNewIssueEvents(t *testing.T) {
	issue, err := NewIssue(RawIssue{
		Number:      7,
		Creator:     "alice",
		CreatedDate: "2024-03-01T10:00:00Z",
		Labels:      []string{"area/core", " kind/bug ", ""},
		Events: []RawEvent{
			{EventType: "Commented", Author: "bob", EventDate: "2024-03-02T10:00:00Z"},
			{EventType: "labeled", Author: "bob"},
			{EventType: "opened", Author: "alice", EventDate: "2024-03-01T10:00:00Z"},
		},
	})
	if err != nil {
		t.Fatalf("error while creating issue: %v", err)
	}
	expected := []Event{
		{Type: EventCommented, Author: "bob", Date: date("2024-03-02T10:00:00Z")},
		{Type: EventOpened, Author: "alice", Date: date("2024-03-01T10:00:00Z")},
	}
	if !reflect.DeepEqual(expected, issue.Events()) {
		t.Errorf("unexpected events, expected: %#v, got: %#v", expected, issue.Events())
	}
	events := issue.Events()
	events[0].Author = "mallory"
	if issue.Events()[0].Author != "bob" {
		t.Errorf("events accessor exposes the issue timeline")
	}
	if !reflect.DeepEqual([]string{"area/core", "kind/bug"}, issue.Labels()) {
		t.Errorf("unexpected labels: %#v", issue.Labels())
	}
	if !issue.HasOpenedEventBy("alice") || issue.HasOpenedEventBy("bob") {
		t.Errorf("unexpected opened event detection")
	}
	labels := issue.LabelSet()
	labels.Insert("kind/feature")
	if issue.HasLabel("kind/feature") {
		t.Errorf("label set copy leaked into the issue")
	}
}

func TestNewIssueAssignees(t *testing.T) {
	issue, err := NewIssue(RawIssue{Number: 8, CreatedDate: "2024-03-01", Assignees: []string{"bob", "carol"}})
	if err != nil {
		t.Fatalf("error while creating issue: %v", err)
	}
	if !issue.IsAssigned() {
		t.Errorf("expected issue to be assigned")
	}
	assignees := issue.Assignees()
	assignees[0] = "mallory"
	if !reflect.DeepEqual([]User{"bob", "carol"}, issue.Assignees()) {
		t.Errorf("unexpected assignees: %#v", issue.Assignees())
	}

	unassigned, err := NewIssue(RawIssue{Number: 9, CreatedDate: "2024-03-01"})
	if err != nil {
		t.Fatalf("error while creating issue: %v", err)
	}
	if unassigned.IsAssigned() || len(unassigned.Assignees()) != 0 {
		t.Errorf("expected issue without assignees")
	}
}
