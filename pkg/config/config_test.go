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
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config, dir string)
	}{
		{
			name: "yaml_config",
			file: "sitefix.yaml",
			config: `
site_host: example.com
jobs:
  - name: clean
    root: Website
    recursive: true
    exclude: ["drafts/**"]
    workers: 4
    fail_on_error: true
    rules:
      - type: strip_suffix
      - type: substitute
        until_stable: true
        patterns:
          - find: 'http://example\.com'
            replace: 'https://example.com'
`,
			check: func(t *testing.T, cfg *Config, dir string) {
				assert.Equal(t, "example.com", cfg.SiteHost)
				require.Len(t, cfg.Jobs, 1)
				job := cfg.Jobs[0]
				assert.Equal(t, "clean", job.Name)
				assert.Equal(t, filepath.Join(dir, "Website"), job.Root, "root should resolve against the config dir")
				assert.Equal(t, []string{".html"}, job.Extensions, "extensions should default")
				assert.True(t, job.IsRecursive())
				assert.Equal(t, []string{"drafts/**"}, job.Exclude)
				assert.Equal(t, 4, job.Workers)
				assert.True(t, job.FailOnError)
				require.Len(t, job.Rules, 2)
				assert.True(t, job.Rules[1].UntilStable)
			},
		},
		{
			name: "json_config",
			file: "sitefix.json",
			config: `{
				"jobs": [
					{
						"name": "dupes",
						"root": "/abs/site",
						"rules": [{"type": "dedupe_lines", "markers": ["<link rel=\"icon\""]}]
					}
				]
			}`,
			check: func(t *testing.T, cfg *Config, dir string) {
				assert.Equal(t, DefaultSiteHost, cfg.SiteHost)
				require.Len(t, cfg.Jobs, 1)
				assert.Equal(t, "/abs/site", cfg.Jobs[0].Root)
				assert.Equal(t, 1, cfg.Jobs[0].Workers, "workers should default to 1")
				assert.Equal(t, []string{`<link rel="icon"`}, cfg.Jobs[0].Rules[0].Markers)
			},
		},
		{
			name: "hcl_config",
			file: "sitefix.hcl",
			config: `
site_host = "example.org"

job "footer" {
  root      = "."
  recursive = true

  rule "replace_block" {
    start       = "<footer class=\"page-footer\">"
    replacement = "<footer class=\"page-footer\">new</footer>"
  }
}

job "canonical" {
  rule "substitute" {
    pattern {
      find    = "http://${site_host}"
      replace = "https://${site_host}"
    }
  }
}

job "head" {
  preset = "head"
}
`,
			check: func(t *testing.T, cfg *Config, dir string) {
				assert.Equal(t, "example.org", cfg.SiteHost)
				require.Len(t, cfg.Jobs, 3)
				assert.Equal(t, "footer", cfg.Jobs[0].Name)
				assert.Equal(t, dir, cfg.Jobs[0].Root)
				assert.True(t, cfg.Jobs[0].IsRecursive())

				sub := cfg.Jobs[1].Rules[0]
				require.Len(t, sub.Patterns, 1)
				assert.Equal(t, "http://example.org", sub.Patterns[0].Find, "site_host should be interpolated")
				assert.Equal(t, "https://example.org", sub.Patterns[0].Replace)

				assert.Empty(t, cfg.Jobs[2].Preset, "preset should be expanded")
				assert.Len(t, cfg.Jobs[2].Rules, 3)
			},
		},
		{
			name: "hcl_default_site_host",
			file: "sitefix.hcl",
			config: `
job "canonical" {
  rule "strip_suffix" {
    host = site_host
  }
}
`,
			check: func(t *testing.T, cfg *Config, dir string) {
				assert.Equal(t, DefaultSiteHost, cfg.Jobs[0].Rules[0].Host)
			},
		},
		{
			name: "preset_fills_unset_fields",
			file: "sitefix.yaml",
			config: `
jobs:
  - name: urls
    preset: clean-urls
  - name: footer
    preset: footer
    root: pages
    recursive: false
  - name: footer-deep
    preset: footer
    rules:
      - type: dedupe_lines
`,
			check: func(t *testing.T, cfg *Config, dir string) {
				require.Len(t, cfg.Jobs, 3)

				urls := cfg.Jobs[0]
				assert.Equal(t, filepath.Join(dir, "Website"), urls.Root, "preset root resolves against the config dir")
				assert.True(t, urls.IsRecursive(), "preset walk is kept when the job leaves it unset")
				assert.Equal(t, []string{".html"}, urls.Extensions)

				footer := cfg.Jobs[1]
				assert.Equal(t, filepath.Join(dir, "pages"), footer.Root)
				assert.False(t, footer.IsRecursive(), "an explicit recursive: false wins over the preset")

				deep := cfg.Jobs[2]
				assert.Equal(t, dir, deep.Root)
				assert.True(t, deep.IsRecursive())
				require.Len(t, deep.Rules, 2)
				assert.Equal(t, RuleReplaceBlock, deep.Rules[0].Type, "preset rules run first")
				assert.Equal(t, RuleDedupeLines, deep.Rules[1].Type)

				op, err := urls.Operation(cfg.SiteHost)
				require.NoError(t, err)
				assert.True(t, op.List.Recursive)
			},
		},
		{
			name: "assets_only",
			file: "assets.yaml",
			config: `
assets:
  name: Example
  icons:
    - file: icon.png
      size: 64
`,
			check: func(t *testing.T, cfg *Config, dir string) {
				require.NotNil(t, cfg.Assets)
				assert.Equal(t, "Example", cfg.Assets.Name)
				assert.Equal(t, filepath.Join(dir, "img"), cfg.Assets.Out, "out resolves against the config directory")
				assert.Equal(t, []IconConfig{{File: "icon.png", Size: 64}}, cfg.Assets.Icons)
				assert.Equal(t, []int{16, 32, 48}, cfg.Assets.ICOSizes)
			},
		},
		{
			name:        "unknown_yaml_field",
			file:        "sitefix.yaml",
			config:      "jobs:\n  - name: x\n    colour: blue\n",
			wantErr:     true,
			errContains: "field colour not found",
		},
		{
			name:        "unknown_json_field",
			file:        "sitefix.json",
			config:      `{"jobs": [], "extra": true}`,
			wantErr:     true,
			errContains: `unknown field "extra"`,
		},
		{
			name:        "unknown_rule_type",
			file:        "sitefix.yaml",
			config:      "jobs:\n  - name: x\n    rules:\n      - type: teleport\n",
			wantErr:     true,
			errContains: `unknown rule type "teleport"`,
		},
		{
			name:        "invalid_regexp",
			file:        "sitefix.yaml",
			config:      "jobs:\n  - name: x\n    rules:\n      - type: substitute\n        patterns:\n          - find: '('\n            replace: ''\n",
			wantErr:     true,
			errContains: "compiling pattern",
		},
		{
			name:        "unknown_preset",
			file:        "sitefix.yaml",
			config:      "jobs:\n  - name: x\n    preset: sidebar\n",
			wantErr:     true,
			errContains: `unknown preset "sidebar"`,
		},
		{
			name:        "duplicate_job",
			file:        "sitefix.yaml",
			config:      "jobs:\n  - name: x\n    preset: footer\n  - name: x\n    preset: footer\n",
			wantErr:     true,
			errContains: `duplicate job name "x"`,
		},
		{
			name:        "no_rules",
			file:        "sitefix.yaml",
			config:      "jobs:\n  - name: x\n",
			wantErr:     true,
			errContains: "at least one rule is required",
		},
		{
			name:        "empty_config",
			file:        "sitefix.json",
			config:      `{"jobs": []}`,
			wantErr:     true,
			errContains: "at least one job or an assets block is required",
		},
		{
			name:        "bad_ico_size",
			file:        "sitefix.yaml",
			config:      "assets:\n  ico_sizes: [512]\n",
			wantErr:     true,
			errContains: "ico size 512 out of range",
		},
		{
			name:        "no_parser",
			file:        "sitefix.toml",
			config:      "",
			wantErr:     true,
			errContains: "no parser found for file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file, tt.config)
			cfg, err := Load(testContext(t), path)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg, filepath.Dir(path))
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(testContext(t), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestGetParser(t *testing.T) {
	assert.IsType(t, &YAMLParser{}, GetParser("a.yml"))
	assert.IsType(t, &YAMLParser{}, GetParser("A.YAML"))
	assert.IsType(t, &JSONParser{}, GetParser("a.json"))
	assert.IsType(t, &HCLParser{}, GetParser("a.hcl"))
	assert.IsType(t, &HCLParser{}, GetParser(".sitefix"))
	assert.Nil(t, GetParser("a.ini"))
}

func TestJob_Operation(t *testing.T) {
	job, err := Preset(PresetCleanURLs, "", DefaultPayloads())
	require.NoError(t, err)
	job.Exclude = []string{"drafts/**"}
	job.Workers = 3
	job.DryRun = true

	op, err := job.Operation(DefaultSiteHost)
	require.NoError(t, err)
	assert.Equal(t, "clean-urls", op.Name)
	assert.Equal(t, "Website", op.Root)
	assert.True(t, op.List.Recursive)
	assert.Equal(t, []string{".html"}, op.List.Extensions)
	assert.Equal(t, []string{"drafts/**"}, op.List.Exclude)
	assert.Equal(t, 3, op.Workers)
	assert.True(t, op.DryRun)
	assert.Equal(t, 1, op.Pipeline.Len())

	job.Exclude = []string{"[broken"}
	_, err = job.Operation(DefaultSiteHost)
	assert.Error(t, err)
}

func TestRuleConfig_Build(t *testing.T) {
	tests := []struct {
		name        string
		rule        RuleConfig
		wantName    string
		errContains string
	}{
		{name: "dedupe_default_name", rule: RuleConfig{Type: RuleDedupeLines}, wantName: "dedupe_lines"},
		{name: "strip_suffix_custom_name", rule: RuleConfig{Type: RuleStripSuffix, Name: "clean"}, wantName: "clean"},
		{name: "substitute", rule: RuleConfig{Type: RuleSubstitute, Patterns: []PatternConfig{{Find: "a", Replace: "b"}}}, wantName: "substitute"},
		{name: "substitute_without_patterns", rule: RuleConfig{Type: RuleSubstitute}, errContains: "at least one pattern is required"},
		{name: "insert", rule: RuleConfig{Type: RuleInsert, Anchors: []AnchorConfig{{Pattern: "</body>", Placement: "before", Payload: "x"}}}, wantName: "insert"},
		{name: "insert_without_anchors", rule: RuleConfig{Type: RuleInsert}, errContains: "at least one anchor is required"},
		{name: "insert_bad_placement", rule: RuleConfig{Type: RuleInsert, Anchors: []AnchorConfig{{Pattern: "a", Placement: "beside", Payload: "x"}}}, errContains: `unknown placement "beside"`},
		{name: "insert_bad_occurrence", rule: RuleConfig{Type: RuleInsert, Anchors: []AnchorConfig{{Pattern: "a", Occurrence: "middle", Payload: "x"}}}, errContains: `unknown occurrence "middle"`},
		{name: "replace_block", rule: RuleConfig{Type: RuleReplaceBlock, Start: "<footer>", Replacement: "<footer></footer>"}, wantName: "replace_block"},
		{name: "replace_block_without_start", rule: RuleConfig{Type: RuleReplaceBlock}, errContains: "start marker is required"},
		{name: "missing_type", rule: RuleConfig{}, errContains: "rule type is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := tt.rule.Build(DefaultSiteHost)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Nil(t, rule)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, rule.Name())
		})
	}
}

func TestJob_String(t *testing.T) {
	job := Job{Name: "x", Root: "site", Extensions: []string{".html", ".htm"}, Recursive: walk(true), Rules: make([]RuleConfig, 2)}
	assert.Equal(t, "x: site (.html,.htm, recursive) 2 rules", job.String())

	job.Recursive = nil
	assert.Equal(t, "x: site (.html,.htm, flat) 2 rules", job.String())
}
