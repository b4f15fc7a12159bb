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
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

// Config keys. The environment variable with the same name overrides the
// value from the config file.
const (
	DataPathKey     = "ISSUES_DATA_PATH"
	TaxonomyPathKey = "ISSUES_LABEL_TAXONOMY"
)

// Config is the resolved run configuration.
type Config struct {
	DataPath     string         `json:"ISSUES_DATA_PATH,omitempty" validate:"required"`
	TaxonomyPath string         `json:"ISSUES_LABEL_TAXONOMY,omitempty"`
	KindLabels   []LabelMapping `json:"kind_labels,omitempty"`
	AreaLabels   []LabelMapping `json:"area_labels,omitempty"`
}

// TaxonomyFile is the layout of a standalone taxonomy file.
type TaxonomyFile struct {
	KindLabels []LabelMapping `json:"kind_labels,omitempty"`
	AreaLabels []LabelMapping `json:"area_labels,omitempty"`
}

// ConfigError is a configuration problem the user has to fix.
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string {
	return e.msg
}

// LookupEnvFunc matches os.LookupEnv.
type LookupEnvFunc func(key string) (string, bool)

// LoadConfig reads filename, if it exists, and applies environment
// overrides. Relative paths in the file are resolved against the file's
// directory.
func LoadConfig(filename string, lookupEnv LookupEnvFunc) (*Config, error) {
	config := &Config{}
	if len(filename) > 0 {
		path, _ := filepath.Abs(filename)
		bytes, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.UnmarshalStrict(bytes, config); err != nil {
				return nil, &ConfigError{fmt.Sprintf("error parsing config file %s: %v", path, err)}
			}
			config.DataPath = resolveRelative(path, config.DataPath)
			config.TaxonomyPath = resolveRelative(path, config.TaxonomyPath)
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, errors.Wrapf(err, "unable to read config file %s", path)
		}
	}

	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	if val, ok := lookupEnv(DataPathKey); ok && len(val) > 0 {
		config.DataPath = val
	}
	if val, ok := lookupEnv(TaxonomyPathKey); ok && len(val) > 0 {
		config.TaxonomyPath = val
	}

	if err := validate.Struct(config); err != nil {
		return nil, &ConfigError{fmt.Sprintf(
			"no data path configured: set %q in the config file (%s) or export the %s environment variable",
			DataPathKey, filename, DataPathKey)}
	}
	return config, nil
}

// Taxonomy builds the label taxonomy from, in order of preference, the
// taxonomy file, the inline tables, or the built-in defaults.
func (c *Config) Taxonomy() (*Taxonomy, error) {
	if len(c.TaxonomyPath) > 0 {
		bytes, err := os.ReadFile(c.TaxonomyPath)
		if err != nil {
			return nil, errors.Wrap(err, "unable to read taxonomy file")
		}
		file := &TaxonomyFile{}
		if err := yaml.UnmarshalStrict(bytes, file); err != nil {
			return nil, &ConfigError{fmt.Sprintf("error parsing taxonomy file %s: %v", c.TaxonomyPath, err)}
		}
		return NewTaxonomy(file.KindLabels, file.AreaLabels)
	}
	if len(c.KindLabels) > 0 || len(c.AreaLabels) > 0 {
		kind, area := c.KindLabels, c.AreaLabels
		if len(kind) == 0 {
			kind = DefaultKindLabels
		}
		if len(area) == 0 {
			area = DefaultAreaLabels
		}
		return NewTaxonomy(kind, area)
	}
	return DefaultTaxonomy(), nil
}

func resolveRelative(configPath, value string) string {
	if len(value) == 0 || filepath.IsAbs(value) {
		return value
	}
	return filepath.Join(filepath.Dir(configPath), value)
}
