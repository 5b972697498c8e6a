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
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/vendorcopy/pkg/copyspec"
	"gitlab.com/tozd/go/errors"
)

const dirMode = 0o755

// 📁 EnsureDir creates the parent directory of rc.To and any missing ancestors.
// An existing directory chain is not an error; a non-directory in the way is.
func EnsureDir(ctx context.Context, rc copyspec.ResolvedCopy) error {
	dir := filepath.Dir(rc.To)

	zerolog.Ctx(ctx).Trace().Str("dir", dir).Msg("ensuring destination directory")

	if err := os.MkdirAll(dir, dirMode); err != nil {
		return newCopyError(rc, errors.Errorf("creating directory %s: %w", dir, err))
	}

	return nil
}
