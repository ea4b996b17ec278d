// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package commands

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"github.com/walteh/sitefix/cmd/sitefix/opts"
	"github.com/walteh/sitefix/pkg/operation"
	"github.com/walteh/sitefix/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// assetsJob selects the assets block when job names are given to run
const assetsJob = "assets"

// NewRunCmd creates the command that runs every job in the config file
func NewRunCmd(o *opts.RootOpts) *cobra.Command {
	var (
		dryRun bool
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "run [job...]",
		Short: "Run the jobs in a config file",
		Long: `Run loads the config file and runs its jobs in order.
Each job lists its documents, applies its rules and writes only the files whose
content changed. When the config has an assets block the assets are generated
last. Pass job names to run a subset ("assets" selects the assets block).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig(ctx, cmd, o, true)
			if err != nil {
				return err
			}

			known := make([]string, 0, len(cfg.Jobs)+1)
			for _, job := range cfg.Jobs {
				known = append(known, job.Name)
			}
			if cfg.Assets != nil {
				known = append(known, assetsJob)
			}
			for _, name := range args {
				if !slices.Contains(known, name) {
					return errors.Errorf("unknown job %q (have %v)", name, known)
				}
			}
			selected := func(name string) bool {
				return len(args) == 0 || slices.Contains(args, name)
			}

			o.Logger.Header(fmt.Sprintf("running %s", o.ConfigFile))

			total := &status.Summary{Name: "total", DryRun: dryRun}
			ran := 0
			var failed error
			for _, job := range cfg.Jobs {
				if !selected(job.Name) {
					continue
				}
				job.DryRun = job.DryRun || dryRun
				job.FailOnError = job.FailOnError || strict

				summary, err := runJob(ctx, o, job, cfg.SiteHost)
				total.Merge(summary)
				ran++
				if err != nil {
					if !errors.Is(err, operation.ErrFilesFailed) {
						return err
					}
					if failed == nil {
						failed = err
					}
				}
				o.Logger.LogNewline()
			}

			if cfg.Assets != nil && selected(assetsJob) {
				summary, err := generateAssets(ctx, o, cfg.Assets, dryRun, strict)
				total.Merge(summary)
				ran++
				if err != nil {
					if !errors.Is(err, operation.ErrFilesFailed) {
						return err
					}
					if failed == nil {
						failed = err
					}
				}
			}

			if ran > 1 {
				o.Logger.Info(status.NewDefaultFileFormatter().FormatSummary(total))
			}
			return failed
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report changes without writing")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit nonzero when any file fails")

	return cmd
}
