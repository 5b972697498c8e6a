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
Package config loads vendorcopy manifests.

	            +-------------+
	            |   Config    |
	            | (manifest)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+-----+ +----+----+ +-----+-----+
	|   YAML    | |   HCL   | |   JSON    |
	|  Parser   | | Parser  | |  Parser   |
	+-----------+ +---------+ +-----------+

🎯 Purpose:
- Read a list of copies plus batch options from a file
- Pick the parser from the file extension
- Anchor base_dir to the manifest's own directory

🔍 Example (.vendorcopy.yaml):

	base_dir: .
	max_concurrency: 0
	copies:
	  - from: node_modules/foo/dist/foo.min.js
	    to: public/vendor/foo.min.js
	  - from: node_modules/bar/dist
	    to: public/vendor/bar

🔍 Example (.vendorcopy.hcl):

	base_dir = "."

	copy {
	  from = "node_modules/foo/dist/foo.min.js"
	  to   = "public/vendor/foo.min.js"
	}

	copy {
	  from = "${env.HOME}/shared/fonts"
	  to   = "public/fonts"
	}
*/
package config
