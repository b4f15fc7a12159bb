package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kubernetes-sigs/issue-analytics/pkg/utils"
)

func TestSummarize(t *testing.T) {
	testCases := []struct {
		desc     string
		values   []float64
		expected Summary
	}{
		{desc: "empty", expected: Summary{}},
		{desc: "single", values: []float64{4}, expected: Summary{Count: 1, Mean: 4, Median: 4, P90: 4, Min: 4, Max: 4}},
		{
			desc:     "interpolated quantiles",
			values:   []float64{4, 1, 3, 2},
			expected: Summary{Count: 4, Mean: 2.5, Median: 2.5, P90: 3.7, Min: 1, Max: 4, StdDev: 1.2909944487358056},
		},
	}
	for _, testCase := range testCases {
		got := Summarize(testCase.values)
		require.Equal(t, testCase.expected.Count, got.Count, testCase.desc)
		require.InDelta(t, testCase.expected.Mean, got.Mean, 1e-9, testCase.desc)
		require.InDelta(t, testCase.expected.Median, got.Median, 1e-9, testCase.desc)
		require.InDelta(t, testCase.expected.P90, got.P90, 1e-9, testCase.desc)
		require.InDelta(t, testCase.expected.Min, got.Min, 1e-9, testCase.desc)
		require.InDelta(t, testCase.expected.Max, got.Max, 1e-9, testCase.desc)
		require.InDelta(t, testCase.expected.StdDev, got.StdDev, 1e-9, testCase.desc)
	}
}

func TestHistogram(t *testing.T) {
	bins := Histogram([]float64{0, 1, 2, 3, 4}, 2)
	require.Equal(t, []Bin{{Lower: 0, Upper: 2, Count: 2}, {Lower: 2, Upper: 4, Count: 3}}, bins)

	single := Histogram([]float64{5, 5}, 4)
	require.Len(t, single, 4)
	require.InDelta(t, 4.5, single[0].Lower, 1e-9)
	require.InDelta(t, 5.5, single[3].Upper, 1e-9)
	total := 0
	for _, b := range single {
		total += b.Count
	}
	require.Equal(t, 2, total)

	require.Nil(t, Histogram(nil, 10))
}

func TestSummarizeDataset(t *testing.T) {
	issues := newIssues(t,
		utils.RawIssue{Number: 1, Creator: "alice", CreatedDate: "2024-01-01", ClosedDate: "2024-01-02",
			Events: []utils.RawEvent{
				{EventType: "commented", Author: "bob", EventDate: "2024-01-01"},
				{EventType: "closed", Author: "alice", EventDate: "2024-01-02"},
			}},
		utils.RawIssue{Number: 2, Creator: "bob", CreatedDate: "2024-01-01",
			Events: []utils.RawEvent{{EventType: "commented", Author: "bob", EventDate: "2024-01-03"}}},
	)

	all := SummarizeDataset(issues, Filter{}, "")
	require.Equal(t, &DatasetSummary{Issues: 2, Events: 3, Open: 1, Closed: 1}, all)

	bob := SummarizeDataset(issues, Filter{}, "bob")
	require.Equal(t, 2, bob.Events)
}
