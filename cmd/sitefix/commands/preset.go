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

	"github.com/spf13/cobra"
	"github.com/walteh/sitefix/cmd/sitefix/opts"
	"github.com/walteh/sitefix/pkg/config"
	"gitlab.com/tozd/go/errors"
)

var presetShort = map[string]string{
	config.PresetFavicons:  "Remove repeated favicon, manifest and theme-color lines",
	config.PresetCleanURLs: "Strip .html from internal links",
	config.PresetHead:      "Insert the favicon suite and cookie notice",
	config.PresetFooter:    "Replace the page footer with the current navigation",
}

// NewPresetCmd creates the command for one built-in preset. Payloads and the
// site host come from the config file when one is present.
func NewPresetCmd(o *opts.RootOpts, name string) *cobra.Command {
	var (
		root      string
		recursive bool
		exclude   []string
		workers   int
		dryRun    bool
		strict    bool
		siteHost  string
	)

	cmd := &cobra.Command{
		Use:   name,
		Short: presetShort[name],
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig(ctx, cmd, o, false)
			if err != nil {
				return err
			}

			payloads := config.DefaultPayloads()
			host := siteHost
			if cfg != nil {
				payloads = payloads.Merge(cfg.Payloads)
				if host == "" {
					host = cfg.SiteHost
				}
			}
			if host == "" {
				host = config.DefaultSiteHost
			}

			job, err := config.Preset(name, host, payloads)
			if err != nil {
				return err
			}
			if root != "" {
				job.Root = root
			}
			if cmd.Flags().Changed("recursive") {
				job.Recursive = &recursive
			}
			job.Exclude = exclude
			job.Workers = workers
			job.DryRun = dryRun
			job.FailOnError = strict

			if err := job.Validate(); err != nil {
				return errors.Errorf("preset %s: %w", name, err)
			}

			o.Logger.Header(fmt.Sprintf("%s preset", name))
			_, err = runJob(ctx, o, job, host)
			return err
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "directory to rewrite (defaults to the preset's root)")
	cmd.Flags().BoolVar(&recursive, "recursive", false, "walk subdirectories")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "glob or file name to skip (repeatable)")
	cmd.Flags().IntVar(&workers, "workers", 1, "documents processed in parallel")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report changes without writing")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit nonzero when any file fails")
	if name == config.PresetCleanURLs {
		cmd.Flags().StringVar(&siteHost, "site-host", "", "absolute links on this host are cleaned too")
	}

	return cmd
}
