package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kubernetes-sigs/issue-analytics/pkg/utils"
)

func newIssues(t testing.TB, raws ...utils.RawIssue) []utils.Issue {
	t.Helper()
	var issues []utils.Issue
	for _, raw := range raws {
		issue, err := utils.NewIssue(raw)
		require.NoError(t, err, "issue %d", raw.Number)
		issues = append(issues, issue)
	}
	return issues
}

func day(value string) time.Time {
	t, err := utils.ParseTimestamp(value)
	if err != nil {
		panic(err)
	}
	return t
}

func month(value string) utils.Month {
	m, err := utils.ParseMonth(value)
	if err != nil {
		panic(err)
	}
	return m
}
