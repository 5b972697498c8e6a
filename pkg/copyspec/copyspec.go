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

// Package copyspec holds the copy instructions handled by vendorcopy: the
// relative pairs a caller asks for and their absolute, resolved form.
package copyspec

import (
	"fmt"
	"path/filepath"
	"strings"
)

// 📋 CopySpec is a single requested copy, both paths relative to a base directory
type CopySpec struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

func (s CopySpec) String() string {
	return fmt.Sprintf("%s -> %s", s.From, s.To)
}

// 📍 ResolvedCopy is a CopySpec joined onto its base directory
type ResolvedCopy struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

func (r ResolvedCopy) String() string {
	return fmt.Sprintf("%s -> %s", r.From, r.To)
}

// 🔗 Resolve joins both paths of spec onto baseDir.
// Paths are not checked for traversal; ".." segments are cleaned like any other.
func Resolve(baseDir string, spec CopySpec) ResolvedCopy {
	return ResolvedCopy{
		From: filepath.Join(baseDir, spec.From),
		To:   filepath.Join(baseDir, spec.To),
	}
}

// ResolveAll resolves every spec, keeping input order.
func ResolveAll(baseDir string, specs []CopySpec) []ResolvedCopy {
	resolved := make([]ResolvedCopy, len(specs))
	for i, spec := range specs {
		resolved[i] = Resolve(baseDir, spec)
	}
	return resolved
}

// 🔍 FindOverlap reports the first pair of entries whose destinations are equal
// or where one destination lies inside the other. i is always less than j.
func FindOverlap(resolved []ResolvedCopy) (i, j int, found bool) {
	for i = 0; i < len(resolved); i++ {
		for j = i + 1; j < len(resolved); j++ {
			if overlaps(resolved[i].To, resolved[j].To) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

func overlaps(a, b string) bool {
	a, b = filepath.Clean(a), filepath.Clean(b)
	if a == b {
		return true
	}
	return IsWithin(a, b) || IsWithin(b, a)
}

// IsWithin reports whether child lies strictly below parent. Both paths must be clean.
func IsWithin(parent, child string) bool {
	if parent == string(filepath.Separator) {
		return strings.HasPrefix(child, parent)
	}
	return strings.HasPrefix(child, parent+string(filepath.Separator))
}
