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
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/sitefix/cmd/sitefix/opts"
	"github.com/walteh/sitefix/pkg/assets"
	"github.com/walteh/sitefix/pkg/config"
	"github.com/walteh/sitefix/pkg/log"
	"github.com/walteh/sitefix/pkg/operation"
	"github.com/walteh/sitefix/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// loadConfig reads the config file. A missing file is only an error when the
// command needs one or --config was given explicitly.
func loadConfig(ctx context.Context, cmd *cobra.Command, o *opts.RootOpts, required bool) (*config.Config, error) {
	if !required && !cmd.Flags().Changed("config") {
		if _, err := os.Stat(o.ConfigFile); errors.Is(err, os.ErrNotExist) {
			zerolog.Ctx(ctx).Debug().Str("path", o.ConfigFile).Msg("no config file, using defaults")
			return nil, nil
		}
	}

	cfg, err := config.Load(ctx, o.ConfigFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// runJob runs one rewrite job and prints its header, file lines and summary
func runJob(ctx context.Context, o *opts.RootOpts, job config.Job, siteHost string) (*status.Summary, error) {
	op, err := job.Operation(siteHost)
	if err != nil {
		return nil, errors.Errorf("job %q: %w", job.Name, err)
	}

	o.Logger.StartJob(ctx, log.JobOperation{
		Name:   op.Name,
		Root:   op.Root,
		Rules:  op.Pipeline.Len(),
		DryRun: op.DryRun,
	})

	summary, err := operation.NewRunner(o.FS, o.Logger).Run(ctx, op)
	o.Logger.EndJob(ctx, summary)
	if err != nil {
		return summary, errors.Errorf("job %q: %w", job.Name, err)
	}

	if err := operation.Enforce(summary, job.FailOnError); err != nil {
		return summary, errors.Errorf("job %q: %w", job.Name, err)
	}
	return summary, nil
}

// generateAssets renders the icon set and manifest into cfg.Out
func generateAssets(ctx context.Context, o *opts.RootOpts, cfg *config.AssetsConfig, dryRun, strict bool) (*status.Summary, error) {
	g, err := assets.NewGenerator(o.FS, cfg, dryRun)
	if err != nil {
		return nil, errors.Errorf("assets: %w", err)
	}

	o.Logger.Infof("generating assets in %s", cfg.Out)

	summary, err := g.Write(ctx, status.NewReporter(o.Logger, status.WithDryRun(dryRun)))
	if summary != nil {
		o.Logger.LogNewline()
		if perr := status.PrintSummary(o.Logger, summary); perr != nil {
			zerolog.Ctx(ctx).Error().Err(perr).Msg("printing summary")
		}
	}
	if err != nil {
		return summary, errors.Errorf("assets: %w", err)
	}

	if err := operation.Enforce(summary, strict); err != nil {
		return summary, errors.Errorf("assets: %w", err)
	}
	return summary, nil
}
