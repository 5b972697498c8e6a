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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/vendorcopy/pkg/config"
	"github.com/walteh/vendorcopy/pkg/copier"
	"github.com/walteh/vendorcopy/pkg/copyspec"
	"github.com/walteh/vendorcopy/pkg/vendorcopy"
)

func TestDescribeSource(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.Symlink(file, filepath.Join(dir, "file-link")))
	require.NoError(t, os.Symlink(sub, filepath.Join(dir, "sub-link")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "dangling")))

	tests := []struct {
		name     string
		path     string
		want     string
		wantKind error
	}{
		{name: "file", path: "file.txt", want: "file"},
		{name: "dir", path: "sub", want: "dir"},
		{name: "link_to_file", path: "file-link", want: "symlink -> file"},
		{name: "link_to_dir", path: "sub-link", want: "symlink -> dir"},
		{name: "dangling_link", path: "dangling", want: "dangling symlink", wantKind: copier.ErrNotFound},
		{name: "missing", path: "nope", want: "missing", wantKind: copier.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := describeSource(filepath.Join(dir, tt.path))
			assert.Equal(t, tt.want, got)
			if tt.wantKind != nil {
				assert.ErrorIs(t, err, tt.wantKind)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPlanOverlap(t *testing.T) {
	cfg := &config.Config{
		BaseDir: t.TempDir(),
		Copies: []copyspec.CopySpec{
			{From: "a", To: "out/a"},
			{From: "b", To: "out/a"},
		},
	}

	_, err := Plan(context.Background(), cfg)
	assert.ErrorIs(t, err, vendorcopy.ErrOverlappingDestinations)

	cfg.AllowOverlap = true
	entries, err := Plan(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "missing", entries[0].Source)
	assert.ErrorIs(t, entries[1].Problem, copier.ErrNotFound)
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "1 entry", pluralize(1, "entry", "entries"))
	assert.Equal(t, "0 entries", pluralize(0, "entry", "entries"))
	assert.Equal(t, "3 files", pluralize(3, "file", "files"))
}
