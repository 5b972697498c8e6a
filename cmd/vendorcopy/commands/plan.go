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
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/vendorcopy/cmd/vendorcopy/opts"
	"github.com/walteh/vendorcopy/pkg/config"
	"github.com/walteh/vendorcopy/pkg/copier"
	"github.com/walteh/vendorcopy/pkg/copyspec"
	"github.com/walteh/vendorcopy/pkg/log"
	"github.com/walteh/vendorcopy/pkg/vendorcopy"
	"gitlab.com/tozd/go/errors"
)

// 🗺️ PlanEntry describes what copying one manifest entry would read
type PlanEntry struct {
	Resolved copyspec.ResolvedCopy
	Source   string // file, dir, symlink -> file, symlink -> dir, missing
	Problem  error
}

// NewPlanCmd creates the plan command
func NewPlanCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show what copy would do without writing anything",
		Long: `Plan resolves every entry of the manifest and inspects its source.
It will:
1. Resolve each from/to pair against base_dir
2. Reject overlapping destinations
3. Report whether each source is a file, a directory or a symlink to one
4. Fail if any source is missing`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunPlan(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	return cmd
}

// RunPlan prints the plan table to w
func RunPlan(ctx context.Context, opts *opts.RootOpts, w io.Writer) error {
	cfg := opts.Config
	console := log.FromContext(ctx)

	entries, err := Plan(ctx, cfg)
	if err != nil {
		return err
	}

	data := pterm.TableData{{"#", "from", "to", "source"}}
	var problems []error
	for i, e := range entries {
		if e.Problem != nil {
			problems = append(problems, e.Problem)
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			display(cfg.BaseDir, e.Resolved.From),
			display(cfg.BaseDir, e.Resolved.To),
			e.Source,
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Errorf("rendering plan: %w", err)
	}
	fmt.Fprintln(w, table)

	if len(problems) > 0 {
		console.Warningf("%s cannot be copied", pluralize(len(problems), "entry", "entries"))
		return errors.Errorf("%d of %d entries cannot be copied: %w", len(problems), len(entries), errors.Join(problems...))
	}

	console.Infof("%s from %s", pluralize(len(entries), "entry", "entries"), cfg.BaseDir)
	return nil
}

// 🔍 Plan resolves and inspects every entry of cfg without writing anything.
func Plan(ctx context.Context, cfg *config.Config) ([]PlanEntry, error) {
	resolved := copyspec.ResolveAll(cfg.BaseDir, cfg.Copies)

	if !cfg.AllowOverlap {
		if i, j, found := copyspec.FindOverlap(resolved); found {
			return nil, errors.Errorf("entry %d (%s) and entry %d (%s): %w",
				i, resolved[i].To, j, resolved[j].To, vendorcopy.ErrOverlappingDestinations)
		}
	}

	logger := zerolog.Ctx(ctx)

	entries := make([]PlanEntry, len(resolved))
	for i, rc := range resolved {
		source, problem := describeSource(rc.From)
		entries[i] = PlanEntry{Resolved: rc, Source: source, Problem: problem}

		if problem != nil {
			logger.Warn().Err(problem).Str("from", rc.From).Msg("source cannot be copied")
		}
	}

	return entries, nil
}

func describeSource(path string) (string, error) {
	linkInfo, err := os.Lstat(path)
	if err != nil {
		return "missing", errors.Errorf("%s: %w", path, copier.ErrNotFound)
	}

	info := linkInfo
	prefix := ""
	if linkInfo.Mode()&fs.ModeSymlink != 0 {
		prefix = "symlink -> "
		info, err = os.Stat(path)
		if err != nil {
			return "dangling symlink", errors.Errorf("%s: %w", path, copier.ErrNotFound)
		}
	}

	switch {
	case info.IsDir():
		return prefix + "dir", nil
	case info.Mode().IsRegular():
		return prefix + "file", nil
	default:
		return prefix + info.Mode().Type().String(), errors.Errorf("%s is not a file or directory: %w", path, copier.ErrIOFailure)
	}
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}
