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
	"fmt"
	"io/fs"
	"syscall"

	"github.com/walteh/vendorcopy/pkg/copyspec"
	"gitlab.com/tozd/go/errors"
)

// ❌ Failure kinds. Every error returned by this package matches exactly one of
// them with errors.Is.
var (
	ErrNotFound         = errors.Base("not found")
	ErrPermissionDenied = errors.Base("permission denied")
	ErrIOFailure        = errors.Base("i/o failure")
	ErrInvalidPath      = errors.Base("invalid path")
	ErrSymlinkCycle     = errors.Base("symlink cycle")
)

var kinds = []error{ErrNotFound, ErrPermissionDenied, ErrIOFailure, ErrInvalidPath, ErrSymlinkCycle}

// 📦 CopyError ties a failure to the resolved pair being copied
type CopyError struct {
	From string
	To   string
	Kind error // one of the Err* kinds above
	Err  error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("copying %s to %s: %v", e.From, e.To, e.Err)
}

// Unwrap exposes both the kind and the cause so errors.Is matches either.
func (e *CopyError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func newCopyError(rc copyspec.ResolvedCopy, err error) *CopyError {
	return &CopyError{
		From: rc.From,
		To:   rc.To,
		Kind: Classify(err),
		Err:  err,
	}
}

// 🏷️ Classify maps a filesystem error onto one of the failure kinds.
func Classify(err error) error {
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		return ErrPermissionDenied
	case errors.Is(err, syscall.ENOTDIR), errors.Is(err, fs.ErrExist):
		return ErrInvalidPath
	default:
		return ErrIOFailure
	}
}
