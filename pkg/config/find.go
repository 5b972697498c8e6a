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

package config

import (
	"context"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrNoManifest is returned by Find when a directory holds no manifest.
var ErrNoManifest = errors.Base("no manifest found")

// 🗂️ ManifestNames lists the manifest file names Find looks for, most
// preferred first.
var ManifestNames = []string{
	".vendorcopy.yaml",
	".vendorcopy.yml",
	".vendorcopy.hcl",
	".vendorcopy.json",
}

const manifestPattern = ".vendorcopy.{yaml,yml,hcl,json}"

// 🔎 Find returns the paths of the manifests in dir, ordered as in
// ManifestNames. Callers use the first one.
func Find(ctx context.Context, dir string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), manifestPattern)
	if err != nil {
		return nil, errors.Errorf("searching %s for a manifest: %w", dir, err)
	}

	if len(matches) == 0 {
		return nil, errors.Errorf("%s: %w", dir, ErrNoManifest)
	}

	slices.SortFunc(matches, func(a, b string) int {
		return slices.Index(ManifestNames, a) - slices.Index(ManifestNames, b)
	})

	zerolog.Ctx(ctx).Debug().Str("dir", dir).Strs("found", matches).Msg("found manifests")

	paths := make([]string, len(matches))
	for i, m := range matches {
		paths[i] = filepath.Join(dir, m)
	}
	return paths, nil
}
