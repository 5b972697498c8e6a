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

package vendorcopy

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/vendorcopy/pkg/copier"
	"github.com/walteh/vendorcopy/pkg/copyspec"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// ErrOverlappingDestinations is returned when two entries of one batch would
// write to the same place.
var ErrOverlappingDestinations = errors.Base("overlapping destinations")

// 🔔 CopiedFunc is told about every copy that finished. It is called from the
// copying goroutines and must be safe for concurrent use.
type CopiedFunc func(rc copyspec.ResolvedCopy, stats copier.Stats)

type Options struct {
	// MaxConcurrency bounds how many copies run at once; zero means unbounded
	MaxConcurrency int
	// AllowOverlap skips the destination overlap check
	AllowOverlap bool
	// OnCopied is optional
	OnCopied CopiedFunc
}

// 📦 Copier runs batches of copies
type Copier struct {
	opts Options
}

func New(opts Options) *Copier {
	return &Copier{opts: opts}
}

// 🚀 Copy runs one batch with default options.
func Copy(ctx context.Context, baseDir string, specs []copyspec.CopySpec) ([]copyspec.ResolvedCopy, error) {
	return New(Options{}).CopyAll(ctx, baseDir, specs)
}

// 🏃 CopyAll resolves every spec against baseDir and copies them all
// concurrently. It returns the resolved pairs in input order once every copy
// has finished, or the first error any copy produced.
//
// A failing copy does not stop its siblings: every launched copy runs to
// completion and stays on disk. The error is therefore only returned after
// all copies have settled, which for large trees can be well after the
// failure itself. Cancelling ctx stops copies that have not started and
// halts running ones between directory entries.
func (c *Copier) CopyAll(ctx context.Context, baseDir string, specs []copyspec.CopySpec) ([]copyspec.ResolvedCopy, error) {
	if len(specs) == 0 {
		return []copyspec.ResolvedCopy{}, nil
	}

	if !filepath.IsAbs(baseDir) {
		return nil, errors.Errorf("base directory %q is not absolute: %w", baseDir, copier.ErrInvalidPath)
	}

	resolved := copyspec.ResolveAll(baseDir, specs)

	if !c.opts.AllowOverlap {
		if i, j, found := copyspec.FindOverlap(resolved); found {
			return nil, errors.Errorf("entry %d (%s) and entry %d (%s): %w",
				i, resolved[i].To, j, resolved[j].To, ErrOverlappingDestinations)
		}
	}

	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("base_dir", baseDir).Int("copies", len(resolved)).Msg("starting copy batch")

	var g errgroup.Group
	if c.opts.MaxConcurrency > 0 {
		g.SetLimit(c.opts.MaxConcurrency)
	}

	stats := make([]copier.Stats, len(resolved))

	for i, rc := range resolved {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return errors.Errorf("skipping %s: %w", rc, err)
			}

			s, err := copyOne(ctx, rc)
			if err != nil {
				logger.Error().Err(err).Str("from", rc.From).Str("to", rc.To).Msg("copy failed")
				return err
			}

			stats[i] = s
			if c.opts.OnCopied != nil {
				c.opts.OnCopied(rc, s)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total copier.Stats
	for _, s := range stats {
		total.Files += s.Files
		total.Dirs += s.Dirs
		total.Bytes += s.Bytes
	}

	logger.Debug().
		Int("copies", len(resolved)).
		Int("files", total.Files).
		Int("dirs", total.Dirs).
		Int64("bytes", total.Bytes).
		Msg("copy batch complete")

	return resolved, nil
}

// copyOne creates the destination parent, then copies the content
func copyOne(ctx context.Context, rc copyspec.ResolvedCopy) (copier.Stats, error) {
	if err := copier.EnsureDir(ctx, rc); err != nil {
		return copier.Stats{}, err
	}

	return copier.CopyContent(ctx, rc)
}
