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
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"k8s.io/apimachinery/pkg/util/sets"
)

// Dimension is a way of categorizing issues by label.
type Dimension int

const (
	Kind Dimension = iota
	Area
)

func (d Dimension) String() string {
	switch d {
	case Kind:
		return "kind"
	case Area:
		return "area"
	}
	return fmt.Sprintf("Dimension(%d)", int(d))
}

// Category is a bucket within a Dimension.
type Category string

// Unlabeled collects issues that carry no label of a dimension.
const Unlabeled Category = "unlabeled"

// LabelMapping maps a label string onto a category.
type LabelMapping struct {
	Label    string   `json:"label"`
	Category Category `json:"category"`
}

// Taxonomy is the ordered label to category table for both dimensions. When
// an issue carries several labels of a dimension, the one listed first in
// the table wins.
type Taxonomy struct {
	tables [2][]LabelMapping
	index  [2]map[string]Category
}

// DefaultKindLabels are the kind labels used by the analysed project.
var DefaultKindLabels = []LabelMapping{
	{"kind/bug", "bug"},
	{"kind/regression", "regression"},
	{"kind/feature", "feature"},
	{"kind/enhancement", "enhancement"},
	{"kind/documentation", "documentation"},
	{"kind/docs", "documentation"},
	{"kind/question", "question"},
	{"kind/task", "task"},
	{"kind/cleanup", "cleanup"},
	{"kind/support", "support"},
}

// DefaultAreaLabels are the area labels used by the analysed project.
var DefaultAreaLabels = []LabelMapping{
	{"area/core", "core"},
	{"area/cli", "cli"},
	{"area/config", "config"},
	{"area/deps", "deps"},
	{"area/docs", "docs"},
	{"area/error-handling", "error-handling"},
	{"area/installer", "installer"},
	{"area/plugin-api", "plugin-api"},
	{"area/project", "project"},
	{"area/publishing", "publishing"},
	{"area/repo", "repo"},
	{"area/resolver", "resolver"},
	{"area/solver", "solver"},
	{"area/sources", "sources"},
	{"area/testing", "testing"},
	{"area/venv", "venv"},
	{"area/build-system", "build-system"},
	{"area/windows", "windows"},
	{"area/external", "external"},
	{"area/ci", "ci"},
}

// DefaultTaxonomy returns the built-in taxonomy.
func DefaultTaxonomy() *Taxonomy {
	t, err := NewTaxonomy(DefaultKindLabels, DefaultAreaLabels)
	if err != nil {
		panic(err)
	}
	return t
}

// NewTaxonomy builds a Taxonomy from explicit tables. A label may only be
// listed once across both tables.
func NewTaxonomy(kind, area []LabelMapping) (*Taxonomy, error) {
	t := &Taxonomy{}
	seen := sets.String{}
	for dim, table := range [2][]LabelMapping{kind, area} {
		t.index[dim] = map[string]Category{}
		for _, m := range table {
			label := strings.TrimSpace(m.Label)
			if len(label) == 0 || len(m.Category) == 0 {
				return nil, errors.Errorf("%s label mapping %+v needs both label and category", Dimension(dim), m)
			}
			if m.Category == Unlabeled {
				return nil, errors.Errorf("category %q is reserved", Unlabeled)
			}
			if seen.Has(label) {
				return nil, errors.Errorf("label %q is mapped more than once", label)
			}
			seen.Insert(label)
			t.index[dim][label] = m.Category
			t.tables[dim] = append(t.tables[dim], LabelMapping{Label: label, Category: m.Category})
		}
	}
	return t, nil
}

// Classify returns the category of the issue labels in dimension dim.
func (t *Taxonomy) Classify(dim Dimension, labels sets.String) Category {
	for _, m := range t.tables[dim] {
		if labels.Has(m.Label) {
			return m.Category
		}
	}
	return Unlabeled
}

// Categories lists the categories of dim in table order, followed by
// Unlabeled.
func (t *Taxonomy) Categories(dim Dimension) []Category {
	seen := map[Category]bool{}
	var categories []Category
	for _, m := range t.tables[dim] {
		if !seen[m.Category] {
			seen[m.Category] = true
			categories = append(categories, m.Category)
		}
	}
	return append(categories, Unlabeled)
}

// Lookup finds the dimension and category of a single label.
func (t *Taxonomy) Lookup(label string) (Dimension, Category, bool) {
	for dim := range t.index {
		if c, ok := t.index[dim][label]; ok {
			return Dimension(dim), c, true
		}
	}
	return 0, "", false
}

// Mappings returns a copy of the table for dim.
func (t *Taxonomy) Mappings(dim Dimension) []LabelMapping {
	return append([]LabelMapping(nil), t.tables[dim]...)
}
