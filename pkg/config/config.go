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
	"path/filepath"
	"slices"
	"strings"

	"github.com/walteh/vendorcopy/pkg/copyspec"
	"gitlab.com/tozd/go/errors"
)

// 🔍 Parser defines the interface for manifest parsers
type Parser interface {
	// 📝 Parse parses the manifest from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// Register adds a parser; called from init.
func Register(p Parser) {
	parsers = append(parsers, p)
}

// GetParser returns the first registered parser that accepts filename, or nil.
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// hasExtension reports whether filename ends in one of exts, ignoring case
func hasExtension(filename string, exts ...string) bool {
	return slices.Contains(exts, strings.ToLower(filepath.Ext(strings.TrimSpace(filename))))
}

// 📦 Config is a copy manifest
type Config struct {
	// BaseDir is what every copy is resolved against. Relative values are
	// taken from the manifest's directory, and empty means that directory.
	BaseDir string `json:"base_dir,omitempty" yaml:"base_dir,omitempty"`
	// MaxConcurrency bounds concurrent copies; zero is unbounded
	MaxConcurrency int `json:"max_concurrency,omitempty" yaml:"max_concurrency,omitempty"`
	// AllowOverlap disables the destination overlap check
	AllowOverlap bool `json:"allow_overlap,omitempty" yaml:"allow_overlap,omitempty"`
	// Copies run in one batch
	Copies []copyspec.CopySpec `json:"copies" yaml:"copies"`

	location string
}

// Location is the absolute path the manifest was loaded from, if any.
func (cfg *Config) Location() string {
	return cfg.location
}

// ✅ Validate checks required fields
func (cfg *Config) Validate() error {
	if len(cfg.Copies) == 0 {
		return errors.Errorf("at least one copy is required")
	}

	for i, c := range cfg.Copies {
		if strings.TrimSpace(c.From) == "" {
			return errors.Errorf("copies[%d].from is required", i)
		}
		if strings.TrimSpace(c.To) == "" {
			return errors.Errorf("copies[%d].to is required", i)
		}
	}

	if cfg.MaxConcurrency < 0 {
		return errors.Errorf("max_concurrency must not be negative, got %d", cfg.MaxConcurrency)
	}

	return nil
}

// resolveBaseDir anchors BaseDir to the manifest's directory
func (cfg *Config) resolveBaseDir(manifestDir string) {
	switch {
	case cfg.BaseDir == "":
		cfg.BaseDir = manifestDir
	case !filepath.IsAbs(cfg.BaseDir):
		cfg.BaseDir = filepath.Join(manifestDir, cfg.BaseDir)
	default:
		cfg.BaseDir = filepath.Clean(cfg.BaseDir)
	}
}
