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
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/vendorcopy/cmd/vendorcopy/opts"
	"github.com/walteh/vendorcopy/pkg/copier"
	"github.com/walteh/vendorcopy/pkg/copyspec"
	"github.com/walteh/vendorcopy/pkg/log"
	"github.com/walteh/vendorcopy/pkg/vendorcopy"
	"gitlab.com/tozd/go/errors"
)

// NewCopyCmd creates the copy command
func NewCopyCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy every entry of the manifest",
		Long: `Copy runs every entry of the manifest at once.
It will:
1. Resolve each from/to pair against base_dir
2. Create missing destination directories
3. Copy files and directories, replacing symlinks with their content
4. Report the first error once every started copy has finished`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunCopy(cmd.Context(), opts)
		},
	}

	return cmd
}

// RunCopy executes the manifest held by opts
func RunCopy(ctx context.Context, opts *opts.RootOpts) error {
	cfg := opts.Config
	console := log.FromContext(ctx)

	ctx = zerolog.Ctx(ctx).With().Str("command", "copy").Logger().WithContext(ctx)

	console.Header("copying " + pluralize(len(cfg.Copies), "entry", "entries"))

	c := vendorcopy.New(vendorcopy.Options{
		MaxConcurrency: cfg.MaxConcurrency,
		AllowOverlap:   cfg.AllowOverlap,
		OnCopied: func(rc copyspec.ResolvedCopy, stats copier.Stats) {
			console.LogCopyOperation(ctx, log.CopyOperation{
				From:  display(cfg.BaseDir, rc.From),
				To:    display(cfg.BaseDir, rc.To),
				IsDir: stats.Dirs > 0,
				Files: stats.Files,
				Bytes: stats.Bytes,
			})
		},
	})

	if _, err := c.CopyAll(ctx, cfg.BaseDir, cfg.Copies); err != nil {
		var copyErr *copier.CopyError
		if errors.As(err, &copyErr) {
			console.LogCopyOperation(ctx, log.CopyOperation{
				From: display(cfg.BaseDir, copyErr.From),
				To:   display(cfg.BaseDir, copyErr.To),
				Err:  err,
			})
		}
		copies, _, _ := console.Totals()
		console.Errorf("copy failed after copying %s", pluralize(copies, "entry", "entries"))
		return errors.Errorf("copying files: %w", err)
	}

	copies, files, bytes := console.Totals()
	console.Successf("copied %s (%s, %d bytes)", pluralize(copies, "entry", "entries"), pluralize(files, "file", "files"), bytes)

	return nil
}

// display shows path relative to base, falling back to the absolute path
func display(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return rel
}
