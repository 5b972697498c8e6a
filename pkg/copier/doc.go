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

/*
Package copier performs the filesystem work for a single resolved copy.

	+-------------+      +--------------+
	|  EnsureDir  | ---> | CopyContent  |
	| (mkdir -p)  |      | (dereference)|
	+-------------+      +------+-------+
	                            |
	                  +---------+---------+
	                  |                   |
	            +-----+-----+       +-----+-----+
	            |   file    |       | directory |
	            | (io.Copy) |       | (recurse) |
	            +-----------+       +-----------+

🎯 Purpose:
- Create the destination's parent directory chain
- Duplicate a file or a whole tree, following every symlink on the way

⚡ Key Responsibilities:
- Destinations never contain links, only the content they point at
- Symlink cycles fail with ErrSymlinkCycle instead of recursing forever
- Every failure is a *CopyError carrying the resolved pair and one of
  ErrNotFound, ErrPermissionDenied, ErrIOFailure, ErrInvalidPath or
  ErrSymlinkCycle

🔍 Example:

	rc := copyspec.Resolve(root, copyspec.CopySpec{From: "node_modules/x/dist", To: "vendor/x"})
	if err := copier.EnsureDir(ctx, rc); err != nil {
		return err
	}
	stats, err := copier.CopyContent(ctx, rc)
*/
package copier
