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

// Package report renders analysis results as terminal charts or as
// machine readable documents.
package report

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/kubernetes-sigs/issue-analytics/pkg/analysis"
	"github.com/kubernetes-sigs/issue-analytics/pkg/utils"
)

type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
	CSV  Format = "csv"
)

// DefaultWidth is used when the output is not a terminal.
const DefaultWidth = 80

func ParseFormat(value string) (Format, error) {
	switch f := Format(strings.ToLower(value)); f {
	case Text, JSON, YAML, CSV:
		return f, nil
	}
	return "", errors.Errorf("unknown output format %q, expected one of text, json, yaml, csv", value)
}

// TerminalWidth returns the column count of f, or DefaultWidth when f is not
// a terminal.
func TerminalWidth(f *os.File) int {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return DefaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}

// Printer writes results in one format.
type Printer struct {
	out    io.Writer
	format Format
	width  int
}

func NewPrinter(out io.Writer, format Format, width int) *Printer {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Printer{out: out, format: format, width: width}
}

func (p *Printer) Activity(result *analysis.ActivityResult) error {
	switch p.format {
	case Text:
		return p.activityText(result)
	case CSV:
		return activityCSV(p.out, result)
	}
	return p.encode(result)
}

func (p *Printer) Completion(result *analysis.CompletionResult) error {
	switch p.format {
	case Text:
		return p.completionText(result)
	case CSV:
		return completionCSV(p.out, result)
	}
	return p.encode(result)
}

func (p *Printer) Triage(result *analysis.TriageResult) error {
	switch p.format {
	case Text:
		return p.triageText(result)
	case CSV:
		return triageCSV(p.out, result)
	}
	return p.encode(result)
}

func (p *Printer) Summary(result *analysis.DatasetSummary) error {
	switch p.format {
	case Text:
		return p.summaryText(result)
	case CSV:
		return summaryCSV(p.out, result)
	}
	return p.encode(result)
}

// Rejected lists the records the loader left out.
func (p *Printer) Rejected(rejected []utils.RejectedRecord) error {
	switch p.format {
	case Text:
		return p.rejectedText(rejected)
	case CSV:
		return rejectedCSV(p.out, rejected)
	}
	if rejected == nil {
		rejected = []utils.RejectedRecord{}
	}
	return p.encode(rejected)
}

func (p *Printer) encode(v interface{}) error {
	switch p.format {
	case JSON:
		encoder := json.NewEncoder(p.out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case YAML:
		return streamYaml(p.out, 2, v)
	}
	return errors.Errorf("format %q cannot encode %T", p.format, v)
}

func streamYaml(writer io.Writer, indent int, in interface{}) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(indent)
	err := encoder.Encode(in)
	if err != nil {
		return err
	}
	return encoder.Close()
}
