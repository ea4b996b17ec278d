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
	"github.com/spf13/cobra"
	"github.com/walteh/sitefix/cmd/sitefix/opts"
	"github.com/walteh/sitefix/pkg/config"
)

// NewAssetsCmd creates the command that generates icons, images and the web manifest
func NewAssetsCmd(o *opts.RootOpts) *cobra.Command {
	var (
		out    string
		dryRun bool
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "assets",
		Short: "Generate favicons, the social image, the logo and manifest.json",
		Long: `Assets renders the delta triangle icon set, favicon.ico, og-default.png,
logo.png and manifest.json. Files whose bytes are already identical are left alone,
so running it twice writes nothing the second time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig(ctx, cmd, o, false)
			if err != nil {
				return err
			}

			settings := config.DefaultAssets()
			if cfg != nil && cfg.Assets != nil {
				settings = cfg.Assets
			}
			if out != "" {
				settings.Out = out
			}

			o.Logger.Header("assets")
			_, err = generateAssets(ctx, o, settings, dryRun, strict)
			return err
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output directory (defaults to img)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report changes without writing")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit nonzero when any file fails")

	return cmd
}
