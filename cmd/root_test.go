package cmd

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kubernetes-sigs/issue-analytics/pkg/analysis"
	"github.com/kubernetes-sigs/issue-analytics/pkg/utils"
)

var testConfig = filepath.Join("..", "testdata", "config.json")

// executeCommand runs the command line with the test config, writing the
// report as json to a temporary file whose content is returned.
func executeCommand(t *testing.T, args ...string) ([]byte, error) {
	t.Helper()
	t.Setenv("ISSUES_DATA_PATH", "")
	t.Setenv("ISSUES_LABEL_TAXONOMY", "")
	out := filepath.Join(t.TempDir(), "report.json")
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append([]string{"-c", testConfig, "-o", "json", "--output", out}, args...))
	err := rootCmd.Execute()
	data, readErr := os.ReadFile(out)
	if readErr != nil && !os.IsNotExist(readErr) {
		t.Fatalf("error while reading report: %v", readErr)
	}
	return data, err
}

func runCommand(t *testing.T, args ...string) []byte {
	t.Helper()
	data, err := executeCommand(t, args...)
	require.NoError(t, err)
	return data
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestFilterFlags(t *testing.T) {
	filter, err := filterFlags{user: "alice", label: "kind/bug", since: "2024-02-01"}.filter()
	require.NoError(t, err)
	require.EqualValues(t, "alice", filter.User)
	require.Equal(t, "kind/bug", filter.Label)
	require.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), filter.Since)

	_, err = filterFlags{since: "last week"}.filter()
	require.Error(t, err)
}

func TestFeatureSelection(t *testing.T) {
	defer func() {
		feature = 0
		featureFilters = filterFlags{unit: string(analysis.Days), bins: analysis.DefaultBins}
	}()

	_, err := executeCommand(t)
	require.ErrorContains(t, err, "--feature")

	_, err = executeCommand(t, "-f", "9")
	require.ErrorContains(t, err, "unknown feature 9")

	_, err = executeCommand(t, "-f", "1")
	require.True(t, errors.Is(err, analysis.ErrUserRequired), "unexpected error: %v", err)

	var completion struct {
		Considered int `json:"considered"`
		Samples    []struct {
			Number int     `json:"number"`
			Days   float64 `json:"days"`
		} `json:"samples"`
		Aging *struct{} `json:"aging"`
	}
	require.NoError(t, json.Unmarshal(runCommand(t, "-f", "2"), &completion))
	require.Equal(t, 3, completion.Considered)
	require.Len(t, completion.Samples, 2)
	require.Nil(t, completion.Aging)

	var activity struct {
		User   string   `json:"user"`
		Months []string `json:"months"`
		Total  int      `json:"total"`
	}
	require.NoError(t, json.Unmarshal(runCommand(t, "-f", "1", "-u", "alice"), &activity))
	require.Equal(t, "alice", activity.User)
	require.Equal(t, []string{"2024-01", "2024-02"}, activity.Months)
	require.Equal(t, 3, activity.Total)

	var triage struct {
		Unit       string `json:"unit"`
		Considered int    `json:"considered"`
		Excluded   int    `json:"excluded"`
		Samples    []struct {
			Number int     `json:"number"`
			Event  string  `json:"event"`
			Value  float64 `json:"value"`
		} `json:"samples"`
	}
	require.NoError(t, json.Unmarshal(runCommand(t, "-f", "3", "-u", "alice", "--unit", "hours"), &triage))
	require.Equal(t, "hours", triage.Unit)
	require.Equal(t, 1, triage.Considered)
	require.Zero(t, triage.Excluded)
	require.Len(t, triage.Samples, 1)
	require.Equal(t, 101, triage.Samples[0].Number)
	require.Equal(t, "labeled", triage.Samples[0].Event)
	require.InDelta(t, 24.0, triage.Samples[0].Value, 1e-9)
}

func TestSummaryCommand(t *testing.T) {
	var summary struct {
		Author string `json:"author"`
		Issues int    `json:"issues"`
		Events int    `json:"events"`
		Open   int    `json:"open"`
		Closed int    `json:"closed"`
	}
	require.NoError(t, json.Unmarshal(runCommand(t, "summary", "-u", "alice"), &summary))
	require.Equal(t, "alice", summary.Author)
	require.Equal(t, 3, summary.Issues)
	require.Equal(t, 2, summary.Events)
	require.Equal(t, 1, summary.Open)
	require.Equal(t, 2, summary.Closed)
}

func TestValidateCommand(t *testing.T) {
	data, err := executeCommand(t, "validate")
	require.ErrorContains(t, err, "3 of 6 records")

	var rejected []struct {
		Index  int    `json:"index"`
		Number int    `json:"number"`
		Reason string `json:"reason"`
	}
	require.NoError(t, json.Unmarshal(data, &rejected))
	require.Len(t, rejected, 3)
	require.Equal(t, 3, rejected[0].Index)
	require.Equal(t, 105, rejected[1].Number)
	require.Contains(t, rejected[1].Reason, "before it was created")
}

func TestLabelsCommand(t *testing.T) {
	file := filepath.Join(t.TempDir(), "labels.csv")
	runCommand(t, "labels", "--csv-file", file)
	require.Equal(t, [][]string{
		{"area/core", "area", "core", "101"},
		{"kind/bug", "kind", "bug", "101"},
		{"kind/feature", "kind", "feature", "102"},
	}, readCSV(t, file))
}

func TestLabelsCSVQuoting(t *testing.T) {
	dataset, err := utils.LoadIssuesFromBytes([]byte(`[
		{"number": 7, "created_date": "2024-01-01", "labels": ["needs \"triage\", maybe"]}
	]`))
	require.NoError(t, err)
	env := &environment{dataset: dataset, taxonomy: utils.DefaultTaxonomy()}

	previous := labelsFile
	defer func() { labelsFile = previous }()
	labelsFile = filepath.Join(t.TempDir(), "labels.csv")
	require.NoError(t, printIssuesForLabels(env))
	require.Equal(t, [][]string{{`needs "triage", maybe`, "-", "-", "7"}}, readCSV(t, labelsFile))
}

func TestExportCommand(t *testing.T) {
	file := filepath.Join(t.TempDir(), "export.csv")
	runCommand(t, "export", "--csv-file", file)
	records := readCSV(t, file)
	require.Len(t, records, 1+7)
	require.Equal(t, []string{"number", "title", "creator", "state", "labels", "created", "closed",
		"event_type", "author", "event_date", "label"}, records[0])
	require.Equal(t, []string{"101", "Lock file not updated", "alice", "closed", "area/core;kind/bug",
		"2024-01-01T00:00:00Z", "2024-01-10T00:00:00Z", "", "", "2024-01-01T00:00:00Z", ""}, records[1])
	require.Equal(t, []string{"labeled", "bob", "2024-01-02T00:00:00Z", "kind/bug"}, records[2][7:])
	require.Equal(t, []string{"102", "commented", "alice"}, []string{records[6][0], records[6][7], records[6][8]})
	require.Equal(t, []string{"103", "Docs typo", "dave", "closed", "", "2024-03-01T00:00:00Z",
		"2024-03-03T00:00:00Z", "", "", "2024-03-01T00:00:00Z", ""}, records[7])
}

type failingCloser struct{}

func (failingCloser) Close() error {
	return errors.New("disk full")
}

func TestCloseFile(t *testing.T) {
	write := func(writeErr error) (err error) {
		defer closeFile(failingCloser{}, &err)
		return writeErr
	}
	require.EqualError(t, write(nil), "disk full")
	require.EqualError(t, write(errors.New("short write")), "short write")
}
