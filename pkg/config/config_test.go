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
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/vendorcopy/pkg/copyspec"
	"gitlab.com/tozd/go/errors"
)

func testCtx(t *testing.T) context.Context {
	t.Helper()
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		config      string
		errContains string
		check       func(t *testing.T, dir string, cfg *Config)
	}{
		{
			name:     "yaml_manifest",
			filename: ".vendorcopy.yaml",
			config: `
base_dir: web
max_concurrency: 4
copies:
  - from: node_modules/foo/dist/foo.js
    to: vendor/foo.js
  - from: node_modules/bar/dist
    to: vendor/bar
`,
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, filepath.Join(dir, "web"), cfg.BaseDir, "base dir should be anchored to the manifest")
				assert.Equal(t, 4, cfg.MaxConcurrency)
				assert.False(t, cfg.AllowOverlap)
				assert.Equal(t, []copyspec.CopySpec{
					{From: "node_modules/foo/dist/foo.js", To: "vendor/foo.js"},
					{From: "node_modules/bar/dist", To: "vendor/bar"},
				}, cfg.Copies)
				assert.Equal(t, filepath.Join(dir, ".vendorcopy.yaml"), cfg.Location())
			},
		},
		{
			name:     "yml_without_base_dir",
			filename: "copies.yml",
			config: `
copies:
  - from: a.txt
    to: b.txt
`,
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, dir, cfg.BaseDir, "base dir should default to the manifest directory")
				assert.Zero(t, cfg.MaxConcurrency)
			},
		},
		{
			name:     "hcl_manifest",
			filename: ".vendorcopy.hcl",
			config: `
base_dir      = "/srv/site"
allow_overlap = true

copy {
  from = "node_modules/foo/dist/foo.js"
  to   = "vendor/foo.js"
}

copy {
  from = "${env.VENDORCOPY_TEST_SOURCE}/fonts"
  to   = "vendor/fonts"
}
`,
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, filepath.Clean("/srv/site"), cfg.BaseDir)
				assert.True(t, cfg.AllowOverlap)
				assert.Equal(t, []copyspec.CopySpec{
					{From: "node_modules/foo/dist/foo.js", To: "vendor/foo.js"},
					{From: "shared/fonts", To: "vendor/fonts"},
				}, cfg.Copies)
			},
		},
		{
			name:     "json_manifest",
			filename: ".vendorcopy.json",
			config:   `{"base_dir": "..", "copies": [{"from": "x", "to": "y"}]}`,
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, filepath.Dir(dir), cfg.BaseDir)
				assert.Equal(t, []copyspec.CopySpec{{From: "x", To: "y"}}, cfg.Copies)
			},
		},
		{
			name:        "yaml_unknown_field",
			filename:    ".vendorcopy.yaml",
			config:      "copies:\n  - from: a\n    to: b\ndestination: nope\n",
			errContains: "parsing YAML",
		},
		{
			name:        "json_unknown_field",
			filename:    ".vendorcopy.json",
			config:      `{"copies": [{"from": "a", "to": "b", "glob": true}]}`,
			errContains: "parsing JSON",
		},
		{
			name:        "hcl_missing_to",
			filename:    ".vendorcopy.hcl",
			config:      "copy {\n  from = \"a\"\n}\n",
			errContains: "decoding HCL",
		},
		{
			name:        "hcl_syntax_error",
			filename:    ".vendorcopy.hcl",
			config:      "copy {\n",
			errContains: "parsing HCL",
		},
		{
			name:        "no_copies",
			filename:    ".vendorcopy.yaml",
			config:      "base_dir: .\n",
			errContains: "at least one copy is required",
		},
		{
			name:        "empty_from",
			filename:    ".vendorcopy.yaml",
			config:      "copies:\n  - from: a\n    to: b\n  - from: ' '\n    to: c\n",
			errContains: "copies[1].from is required",
		},
		{
			name:        "empty_to",
			filename:    ".vendorcopy.json",
			config:      `{"copies": [{"from": "a"}]}`,
			errContains: "copies[0].to is required",
		},
		{
			name:        "negative_concurrency",
			filename:    ".vendorcopy.yaml",
			config:      "max_concurrency: -1\ncopies:\n  - from: a\n    to: b\n",
			errContains: "max_concurrency must not be negative",
		},
		{
			name:        "unsupported_extension",
			filename:    "manifest.toml",
			config:      "copies = []\n",
			errContains: "no parser found",
		},
	}

	t.Setenv("VENDORCOPY_TEST_SOURCE", "shared")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, tt.filename)
			require.NoError(t, os.WriteFile(path, []byte(tt.config), 0o644))

			cfg, err := Load(testCtx(t), path)

			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			tt.check(t, dir, cfg)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(testCtx(t), filepath.Join(t.TempDir(), ".vendorcopy.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading manifest")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGetParser(t *testing.T) {
	assert.IsType(t, &YAMLParser{}, GetParser(".vendorcopy.yaml"))
	assert.IsType(t, &YAMLParser{}, GetParser("a.yml"))
	assert.IsType(t, &HCLParser{}, GetParser("a.hcl"))
	assert.IsType(t, &JSONParser{}, GetParser("A.JSON"))
	assert.Nil(t, GetParser("a.toml"))
	assert.Nil(t, GetParser("yaml"))

	for _, name := range []string{".VENDORCOPY.YAML", "a.Yml", ".VENDORCOPY.HCL", ".VENDORCOPY.JSON", " a.hcl "} {
		assert.NotNil(t, GetParser(name), "%q should have a parser regardless of case", name)
	}
}

func TestFind(t *testing.T) {
	tests := []struct {
		name    string
		files   []string
		want    []string
		wantErr error
	}{
		{
			name:  "single_yaml",
			files: []string{".vendorcopy.yaml", "package.json"},
			want:  []string{".vendorcopy.yaml"},
		},
		{
			name:  "hcl_only",
			files: []string{".vendorcopy.hcl"},
			want:  []string{".vendorcopy.hcl"},
		},
		{
			name:  "preference_order",
			files: []string{".vendorcopy.json", ".vendorcopy.hcl", ".vendorcopy.yml"},
			want:  []string{".vendorcopy.yml", ".vendorcopy.hcl", ".vendorcopy.json"},
		},
		{
			name:    "none",
			files:   []string{"vendorcopy.yaml", ".vendorcopy.toml"},
			wantErr: ErrNoManifest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.files {
				require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("{}"), 0o644))
			}

			got, err := Find(testCtx(t), dir)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}

			require.NoError(t, err)
			want := make([]string, len(tt.want))
			for i, name := range tt.want {
				want[i] = filepath.Join(dir, name)
			}
			assert.Equal(t, want, got)
		})
	}
}
