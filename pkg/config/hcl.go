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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/walteh/vendorcopy/pkg/copyspec"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

// HCLParser parses .hcl manifests. Copies are repeated "copy" blocks and the
// process environment is available as env.NAME.
type HCLParser struct{}

func init() {
	Register(&HCLParser{})
}

func (p *HCLParser) CanParse(filename string) bool {
	return hasExtension(filename, ".hcl")
}

func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "manifest.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": environment(),
		},
	}

	// Define HCL schema
	type hclConfig struct {
		BaseDir        string `hcl:"base_dir,optional"`
		MaxConcurrency int    `hcl:"max_concurrency,optional"`
		AllowOverlap   bool   `hcl:"allow_overlap,optional"`
		Copies         []struct {
			From string `hcl:"from"`
			To   string `hcl:"to"`
		} `hcl:"copy,block"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{
		BaseDir:        hclCfg.BaseDir,
		MaxConcurrency: hclCfg.MaxConcurrency,
		AllowOverlap:   hclCfg.AllowOverlap,
	}
	for _, c := range hclCfg.Copies {
		cfg.Copies = append(cfg.Copies, copyspec.CopySpec{From: c.From, To: c.To})
	}

	return cfg, nil
}

// environment exposes os.Environ as a cty object
func environment() cty.Value {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	return cty.ObjectVal(vars)
}
