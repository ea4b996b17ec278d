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

package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/sitefix/cmd/sitefix/commands"
	"github.com/walteh/sitefix/cmd/sitefix/opts"
	"github.com/walteh/sitefix/pkg/config"
	"github.com/walteh/sitefix/pkg/log"
	"github.com/walteh/sitefix/pkg/provider"
	"gitlab.com/tozd/go/errors"
)

// NewCommand creates the root command with every subcommand attached
func NewCommand(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sitefix",
		Short: "Idempotent maintenance rewrites for a static website",
		Long: `sitefix rewrites the HTML pages of a static site in place. Every rule is
safe to run again: pages that already have the change are left untouched.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd, o)
		},
	}

	addRootFlags(cmd, o)

	cmd.AddCommand(commands.NewRunCmd(o))
	for _, name := range config.PresetNames() {
		cmd.AddCommand(commands.NewPresetCmd(o, name))
	}
	cmd.AddCommand(commands.NewAssetsCmd(o))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", opts.DefaultConfigFile, "config file path")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
}

// setupLogging attaches the console logger to the command context and picks the file system
func setupLogging(cmd *cobra.Command, o *opts.RootOpts) error {
	level := zerolog.WarnLevel
	if o.Debug {
		level = zerolog.DebugLevel
	}
	o.Logger = log.New(cmd.OutOrStdout(), level)
	ctx := log.NewContext(cmd.Context(), o.Logger)

	if o.FS == nil {
		fs, err := provider.Get(ctx, "os")
		if err != nil {
			return errors.Errorf("creating provider: %w", err)
		}
		o.FS = fs
	}

	cmd.SetContext(ctx)
	return nil
}
