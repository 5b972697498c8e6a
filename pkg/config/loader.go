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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📂 Load reads, parses and validates the manifest at path. The parser is
// picked by file extension.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading manifest")

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Errorf("getting absolute manifest path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, errors.Errorf("reading manifest: %w", err)
	}

	p := GetParser(absPath)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing manifest: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating manifest: %w", err)
	}

	cfg.location = absPath
	cfg.resolveBaseDir(filepath.Dir(absPath))

	logger.Debug().
		Str("base_dir", cfg.BaseDir).
		Int("copies", len(cfg.Copies)).
		Msg("manifest loaded")

	return cfg, nil
}
