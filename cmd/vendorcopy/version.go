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

package main

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	"github.com/walteh/vendorcopy/pkg/config"
)

// 📦 buildInfo is what the version command reports about the binary
type buildInfo struct {
	version   string
	revision  string
	modified  bool
	goVersion string
	platform  string
}

func readBuildInfo() buildInfo {
	info := buildInfo{
		version:   "dev",
		goVersion: runtime.Version(),
		platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}

	if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.version = bi.Main.Version
	}
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			info.revision = setting.Value
			if len(info.revision) > 12 {
				info.revision = info.revision[:12]
			}
		case "vcs.modified":
			info.modified = setting.Value == "true"
		}
	}

	return info
}

// label is the version plus the short revision, e.g. "v1.2.0 (3f2a9c1b0d4e, modified)"
func (b buildInfo) label() string {
	if b.revision == "" {
		return b.version
	}
	if b.modified {
		return fmt.Sprintf("%s (%s, modified)", b.version, b.revision)
	}
	return fmt.Sprintf("%s (%s)", b.version, b.revision)
}

func formatVersion(b buildInfo, short bool) string {
	if short {
		return b.label() + "\n"
	}

	return fmt.Sprintf(`🚀 vendorcopy %s
Go:        %s
Platform:  %s
Manifests: %s
`, b.label(), b.goVersion, b.platform, strings.Join(config.ManifestNames, ", "))
}

func newVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), formatVersion(readBuildInfo(), short))
			return err
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "print only the version")

	return cmd
}
