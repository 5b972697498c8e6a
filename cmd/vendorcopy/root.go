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
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/vendorcopy/cmd/vendorcopy/commands"
	"github.com/walteh/vendorcopy/cmd/vendorcopy/opts"
	"github.com/walteh/vendorcopy/pkg/config"
	"github.com/walteh/vendorcopy/pkg/log"
	"gitlab.com/tozd/go/errors"
)

type rootFlags struct {
	configFile string
	dir        string
	debug      bool
}

// newRootCmd wires the command tree. Running the root without a subcommand
// performs a copy.
func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	rootOpts := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:           "vendorcopy",
		Short:         "Copy files and directories into place, dereferencing symlinks",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch cmd.Name() {
			case "version", "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
				return nil
			}

			ctx := setupLogging(cmd.Context(), flags.debug)
			ctx = log.NewContext(ctx, log.NewWithZerolog(cmd.OutOrStdout(), *zerolog.Ctx(ctx)))
			cmd.SetContext(ctx)

			loaded, err := newRootOpts(ctx, flags)
			if err != nil {
				return err
			}
			*rootOpts = *loaded
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunCopy(cmd.Context(), rootOpts)
		},
	}

	addRootFlags(cmd, flags)

	cmd.AddCommand(
		commands.NewCopyCmd(rootOpts),
		commands.NewPlanCmd(rootOpts),
		newVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "manifest path (default: discovered in --dir)")
	cmd.PersistentFlags().StringVarP(&flags.dir, "dir", "C", ".", "directory to search for a manifest")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
}

// setupLogging attaches a zerolog logger to ctx based on flags
func setupLogging(ctx context.Context, debug bool) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	return logger.WithContext(ctx)
}

// newRootOpts loads the manifest named by flags, or the one found in the
// search directory
func newRootOpts(ctx context.Context, flags *rootFlags) (*opts.RootOpts, error) {
	path := flags.configFile
	if path == "" {
		found, err := config.Find(ctx, flags.dir)
		if err != nil {
			return nil, errors.Errorf("finding manifest: %w", err)
		}
		path = found[0]

		if len(found) > 1 {
			log.FromContext(ctx).Warningf("found %d manifests in %s, using %s", len(found), flags.dir, filepath.Base(path))
		}
	}

	cfg, err := config.Load(ctx, path)
	if err != nil {
		return nil, errors.Errorf("loading manifest: %w", err)
	}

	return &opts.RootOpts{Config: cfg}, nil
}
