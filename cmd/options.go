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

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/kubernetes-sigs/issue-analytics/pkg/analysis"
	"github.com/kubernetes-sigs/issue-analytics/pkg/report"
	"github.com/kubernetes-sigs/issue-analytics/pkg/utils"
)

type filterFlags struct {
	user, label, since string
	unit               string
	bins               int
}

func addFilterFlags(fs *pflag.FlagSet, f *filterFlags) {
	fs.StringVarP(&f.user, "user", "u", "", "only consider this user")
	fs.StringVarP(&f.label, "label", "l", "", "only consider issues with this label")
	fs.StringVarP(&f.since, "since", "s", "", "only consider issues created on or after this date (yyyy-mm-dd)")
}

func addTriageFlags(fs *pflag.FlagSet, f *filterFlags) {
	fs.StringVar(&f.unit, "unit", string(analysis.Days), "triage time unit, one of \"hours\" \"days\" \"months\"")
	fs.IntVar(&f.bins, "bins", analysis.DefaultBins, "number of triage histogram bins")
}

func (f filterFlags) filter() (analysis.Filter, error) {
	filter := analysis.Filter{User: utils.User(f.user), Label: f.label}
	if len(f.since) > 0 {
		since, err := utils.ParseTimestamp(f.since)
		if err != nil {
			return filter, errors.Wrap(err, "invalid --since")
		}
		filter.Since = since
	}
	return filter, nil
}

type environment struct {
	config   *utils.Config
	dataset  *utils.Dataset
	taxonomy *utils.Taxonomy
}

// loadEnvironment resolves the configuration and loads the data file.
func loadEnvironment() (*environment, error) {
	config, err := utils.LoadConfig(root.configFile, os.LookupEnv)
	if err != nil {
		return nil, err
	}
	taxonomy, err := config.Taxonomy()
	if err != nil {
		return nil, err
	}

	slog.Info("loading issues", "path", config.DataPath)
	dataset, err := utils.LoadIssues(config.DataPath)
	if err != nil {
		return nil, err
	}
	if len(dataset.Rejected) > 0 {
		slog.Warn("skipped invalid issue records, run validate for details", "count", len(dataset.Rejected))
	}
	slog.Info("loaded issues", "issues", len(dataset.Issues), "events", dataset.EventCount())
	return &environment{config: config, dataset: dataset, taxonomy: taxonomy}, nil
}

// withPrinter hands a printer for the configured output to fn.
func withPrinter(fn func(p *report.Printer) error) (err error) {
	format, err := report.ParseFormat(root.outputFormat)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	width := report.TerminalWidth(os.Stdout)
	if len(root.outputFile) > 0 {
		var f *os.File
		if f, err = os.Create(root.outputFile); err != nil {
			return err
		}
		defer closeFile(f, &err)
		out, width = f, report.DefaultWidth
		fmt.Fprintf(os.Stderr, ">>>>> generating %s\n", root.outputFile)
	}
	return fn(report.NewPrinter(out, format, width))
}

// closeFile closes c, reporting its error through err unless err is
// already set.
func closeFile(c io.Closer, err *error) {
	if cerr := c.Close(); *err == nil {
		*err = cerr
	}
}

func logNoData(empty bool) {
	if empty {
		slog.Info("no data for the given filters")
	}
}
