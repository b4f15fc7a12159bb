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

package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/kubernetes-sigs/issue-analytics/pkg/report"
	"github.com/kubernetes-sigs/issue-analytics/pkg/utils"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "ensure the config, label taxonomy and issue export can be loaded",
	Long: `validate resolves the configuration, builds the label taxonomy and
loads the issue export, listing every record that had to be skipped. It exits
non-zero when any record was rejected.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}
		slog.Info("taxonomy", "kind", len(env.taxonomy.Mappings(utils.Kind)), "area", len(env.taxonomy.Mappings(utils.Area)))
		err = withPrinter(func(p *report.Printer) error {
			return p.Rejected(env.dataset.Rejected)
		})
		if err != nil {
			return err
		}
		if len(env.dataset.Rejected) > 0 {
			return fmt.Errorf("%d of %d records in %s are invalid",
				len(env.dataset.Rejected), len(env.dataset.Rejected)+len(env.dataset.Issues), env.dataset.Source)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
