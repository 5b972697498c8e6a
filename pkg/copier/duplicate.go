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

package copier

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"github.com/karrick/godirwalk"
	"github.com/rs/zerolog"
	"github.com/walteh/vendorcopy/pkg/copyspec"
	"gitlab.com/tozd/go/errors"
)

// 📊 Stats counts what a single CopyContent call wrote
type Stats struct {
	Files int   `json:"files"`
	Dirs  int   `json:"dirs"`
	Bytes int64 `json:"bytes"`
}

// 📄 CopyContent duplicates rc.From to rc.To.
//
// Directories are copied recursively. Symbolic links are followed wherever
// they appear, so the destination only ever holds regular files and
// directories. Existing files at the destination are replaced. The parent of
// rc.To must already exist (see EnsureDir).
//
// The context is checked between entries; cancelling it stops the walk but
// does not undo anything already written.
func CopyContent(ctx context.Context, rc copyspec.ResolvedCopy) (Stats, error) {
	d := &duplicator{ctx: ctx, logger: zerolog.Ctx(ctx)}

	if err := d.copyEntry(rc.From, rc.To, nil); err != nil {
		return d.stats, newCopyError(rc, err)
	}

	return d.stats, nil
}

type duplicator struct {
	ctx    context.Context
	logger *zerolog.Logger
	stats  Stats
}

// copyEntry dispatches on the dereferenced type of src. chain holds the real
// paths of the directories above src on the current branch.
func (d *duplicator) copyEntry(src, dst string, chain []string) error {
	if err := d.ctx.Err(); err != nil {
		return errors.Errorf("copying %s: %w", src, err)
	}

	// os.Stat follows links all the way down
	info, err := os.Stat(src)
	if err != nil {
		return errors.Errorf("reading source: %w", err)
	}

	switch {
	case info.IsDir():
		return d.copyDir(src, dst, info.Mode(), chain)
	case info.Mode().IsRegular():
		return d.copyFile(src, dst, info)
	default:
		return errors.Errorf("%s has unsupported type %s: %w", src, info.Mode().Type(), ErrIOFailure)
	}
}

func (d *duplicator) copyDir(src, dst string, mode fs.FileMode, chain []string) error {
	realSrc, err := filepath.EvalSymlinks(src)
	if err != nil {
		return errors.Errorf("resolving %s: %w", src, err)
	}

	if slices.Contains(chain, realSrc) {
		return errors.Errorf("%s leads back to %s: %w", src, realSrc, ErrSymlinkCycle)
	}

	if len(chain) == 0 {
		if err := checkNotInside(realSrc, dst); err != nil {
			return err
		}
	}

	// clip so siblings never share the appended slot
	chain = append(slices.Clip(chain), realSrc)

	// keep the owner bits so the tree stays writable on the next run
	if err := os.MkdirAll(dst, mode.Perm()|0o700); err != nil {
		return errors.Errorf("creating directory %s: %w", dst, err)
	}
	d.stats.Dirs++

	dirents, err := godirwalk.ReadDirents(src, nil)
	if err != nil {
		return errors.Errorf("listing %s: %w", src, err)
	}
	sort.Sort(dirents)

	for _, de := range dirents {
		name := de.Name()
		if err := d.copyEntry(filepath.Join(src, name), filepath.Join(dst, name), chain); err != nil {
			return err
		}
	}

	return nil
}

func (d *duplicator) copyFile(src, dst string, info fs.FileInfo) error {
	if err := checkDestination(dst, info); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source: %w", err)
	}
	defer in.Close()

	n, err := writeFileAtomic(dst, in, info.Mode().Perm())
	if err != nil {
		return err
	}

	d.stats.Files++
	d.stats.Bytes += n

	d.logger.Trace().Str("from", src).Str("to", dst).Int64("bytes", n).Msg("copied file")

	return nil
}

// 💾 writeFileAtomic streams r into a temp file next to dst and renames it
// into place. The rename replaces whatever file or link was at dst, so a
// link there is never written through and read-only files are not a problem.
func writeFileAtomic(dst string, r io.Reader, perm fs.FileMode) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return 0, errors.Errorf("creating temp file for %s: %w", dst, err)
	}
	tmpPath := tmp.Name()

	n, err := io.Copy(tmp, r)
	if err == nil {
		err = tmp.Chmod(perm)
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpPath)
		return 0, errors.Errorf("writing %s: %w", dst, err)
	}

	if err := os.Rename(tmpPath, dst); err != nil {
		os.Remove(tmpPath)
		return 0, errors.Errorf("renaming temp file to %s: %w", dst, err)
	}

	return n, nil
}

// 🧹 checkDestination refuses destinations a file cannot replace
func checkDestination(dst string, srcInfo fs.FileInfo) error {
	existing, err := os.Lstat(dst)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return errors.Errorf("inspecting %s: %w", dst, err)
	}

	if existing.IsDir() {
		return errors.Errorf("destination %s is a directory: %w", dst, ErrInvalidPath)
	}

	if existing.Mode().IsRegular() && os.SameFile(existing, srcInfo) {
		return errors.Errorf("source and destination are the same file %s: %w", dst, ErrInvalidPath)
	}

	return nil
}

// checkNotInside rejects copying a directory into its own subtree, which
// would otherwise keep feeding the walk with the copy it is producing.
func checkNotInside(realSrc, dst string) error {
	realParent, err := filepath.EvalSymlinks(filepath.Dir(dst))
	if err != nil {
		return errors.Errorf("resolving %s: %w", filepath.Dir(dst), err)
	}

	realDst := filepath.Join(realParent, filepath.Base(dst))
	if realDst == realSrc || copyspec.IsWithin(realSrc, realDst) {
		return errors.Errorf("cannot copy %s into itself at %s: %w", realSrc, dst, ErrInvalidPath)
	}

	return nil
}
