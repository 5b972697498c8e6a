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
Package vendorcopy copies a batch of files and directories into place.

	+---------------+
	|  CopySpec[]   |
	|  (relative)   |
	+-------+-------+
	        | Resolve(baseDir)
	+-------+-------+
	| ResolvedCopy[]|
	+-------+-------+
	        | one goroutine each
	+-------+-------+      +-------------+
	|   EnsureDir   | ---> | CopyContent |
	+---------------+      +-------------+

🎯 Purpose:
- Run every copy of a batch at the same time
- Report success only when all copies landed, or the first failure otherwise

⚡ Key Responsibilities:
- Path resolution against the base directory
- Upfront rejection of overlapping destinations
- Fan-out/fan-in with errgroup, optionally bounded

📝 Failure model:
A batch is all-or-first-failure. Running copies are never cancelled by a
sibling's failure, and nothing is rolled back, so some destinations may be
complete when an error is returned.

🔍 Example:

	resolved, err := vendorcopy.Copy(ctx, "/repo", []copyspec.CopySpec{
		{From: "node_modules/foo/dist/foo.js", To: "vendor/foo.js"},
		{From: "node_modules/bar/dist", To: "vendor/bar"},
	})
*/
package vendorcopy
