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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultSiteHost is the host whose absolute links are cleaned by strip_suffix rules
const DefaultSiteHost = "deltacapitaltrading.com"

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config represents the complete configuration
type Config struct {
	SiteHost string        `json:"site_host,omitempty" yaml:"site_host,omitempty" hcl:"site_host,optional"`
	Payloads *Payloads     `json:"payloads,omitempty" yaml:"payloads,omitempty" hcl:"payloads,block"`
	Assets   *AssetsConfig `json:"assets,omitempty" yaml:"assets,omitempty" hcl:"assets,block"`
	Jobs     []Job         `json:"jobs" yaml:"jobs" hcl:"job,block"`
}

// 📋 Job is one rewrite pass over a document tree
type Job struct {
	Name        string       `json:"name" yaml:"name" hcl:"name,label"`
	Preset      string       `json:"preset,omitempty" yaml:"preset,omitempty" hcl:"preset,optional"`
	Root        string       `json:"root,omitempty" yaml:"root,omitempty" hcl:"root,optional"`
	Extensions  []string     `json:"extensions,omitempty" yaml:"extensions,omitempty" hcl:"extensions,optional"`
	Recursive   *bool        `json:"recursive,omitempty" yaml:"recursive,omitempty" hcl:"recursive,optional"`
	Exclude     []string     `json:"exclude,omitempty" yaml:"exclude,omitempty" hcl:"exclude,optional"`
	Workers     int          `json:"workers,omitempty" yaml:"workers,omitempty" hcl:"workers,optional"`
	DryRun      bool         `json:"dry_run,omitempty" yaml:"dry_run,omitempty" hcl:"dry_run,optional"`
	FailOnError bool         `json:"fail_on_error,omitempty" yaml:"fail_on_error,omitempty" hcl:"fail_on_error,optional"`
	Rules       []RuleConfig `json:"rules,omitempty" yaml:"rules,omitempty" hcl:"rule,block"`
}

// 🔧 RuleConfig describes one rewrite rule. Which fields apply depends on Type.
type RuleConfig struct {
	Type string `json:"type" yaml:"type" hcl:"type,label"`
	Name string `json:"name,omitempty" yaml:"name,omitempty" hcl:"name,optional"`

	// dedupe_lines
	Markers []string `json:"markers,omitempty" yaml:"markers,omitempty" hcl:"markers,optional"`

	// substitute
	Patterns    []PatternConfig `json:"patterns,omitempty" yaml:"patterns,omitempty" hcl:"pattern,block"`
	UntilStable bool            `json:"until_stable,omitempty" yaml:"until_stable,omitempty" hcl:"until_stable,optional"`

	// strip_suffix
	Host   string `json:"host,omitempty" yaml:"host,omitempty" hcl:"host,optional"`
	Suffix string `json:"suffix,omitempty" yaml:"suffix,omitempty" hcl:"suffix,optional"`

	// insert
	Guard   string         `json:"guard,omitempty" yaml:"guard,omitempty" hcl:"guard,optional"`
	Anchors []AnchorConfig `json:"anchors,omitempty" yaml:"anchors,omitempty" hcl:"anchor,block"`

	// replace_block
	Start       string `json:"start,omitempty" yaml:"start,omitempty" hcl:"start,optional"`
	End         string `json:"end,omitempty" yaml:"end,omitempty" hcl:"end,optional"`
	Replacement string `json:"replacement,omitempty" yaml:"replacement,omitempty" hcl:"replacement,optional"`
}

// 🔄 PatternConfig is one find/replace pair
type PatternConfig struct {
	Find    string `json:"find" yaml:"find" hcl:"find"`
	Replace string `json:"replace" yaml:"replace" hcl:"replace"`
}

// ⚓ AnchorConfig is one insertion point
type AnchorConfig struct {
	Pattern    string `json:"pattern" yaml:"pattern" hcl:"pattern"`
	Placement  string `json:"placement,omitempty" yaml:"placement,omitempty" hcl:"placement,optional"`
	Occurrence string `json:"occurrence,omitempty" yaml:"occurrence,omitempty" hcl:"occurrence,optional"`
	Payload    string `json:"payload" yaml:"payload" hcl:"payload"`
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	// Validate expands presets and fills default roots
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	// Relative roots are resolved against the config file's directory
	base := filepath.Dir(path)
	for i := range cfg.Jobs {
		if !filepath.IsAbs(cfg.Jobs[i].Root) {
			cfg.Jobs[i].Root = filepath.Join(base, cfg.Jobs[i].Root)
		}
	}
	if cfg.Assets != nil && !filepath.IsAbs(cfg.Assets.Out) {
		cfg.Assets.Out = filepath.Join(base, cfg.Assets.Out)
	}

	logger.Debug().Int("jobs", len(cfg.Jobs)).Msg("configuration loaded")
	return cfg, nil
}

// 🔍 Validate fills defaults and checks that every job builds
func (cfg *Config) Validate() error {
	if cfg.SiteHost == "" {
		cfg.SiteHost = DefaultSiteHost
	}
	if len(cfg.Jobs) == 0 && cfg.Assets == nil {
		return errors.Errorf("at least one job or an assets block is required")
	}

	payloads := DefaultPayloads().Merge(cfg.Payloads)

	seen := map[string]bool{}
	for i := range cfg.Jobs {
		job := &cfg.Jobs[i]
		if job.Name == "" {
			job.Name = fmt.Sprintf("job-%d", i+1)
		}
		if seen[job.Name] {
			return errors.Errorf("duplicate job name %q", job.Name)
		}
		seen[job.Name] = true

		if job.Preset != "" {
			preset, err := Preset(job.Preset, cfg.SiteHost, payloads)
			if err != nil {
				return errors.Errorf("job %q: %w", job.Name, err)
			}
			job.applyPreset(preset)
		}

		if err := job.Validate(); err != nil {
			return errors.Errorf("job %q: %w", job.Name, err)
		}
		if _, err := job.Build(cfg.SiteHost); err != nil {
			return errors.Errorf("job %q: %w", job.Name, err)
		}
	}

	if cfg.Assets != nil {
		cfg.Assets.Defaults()
		if err := cfg.Assets.Validate(); err != nil {
			return errors.Errorf("assets: %w", err)
		}
	}

	return nil
}

// applyPreset fills the fields the job left unset from p. The preset's rules run
// before the job's own.
func (j *Job) applyPreset(p Job) {
	if j.Root == "" {
		j.Root = p.Root
	}
	if j.Recursive == nil {
		j.Recursive = p.Recursive
	}
	if len(j.Extensions) == 0 {
		j.Extensions = p.Extensions
	}
	j.Rules = append(append([]RuleConfig(nil), p.Rules...), j.Rules...)
	j.Preset = ""
}

// IsRecursive reports whether the job walks subdirectories. Unset means flat.
func (j Job) IsRecursive() bool {
	return j.Recursive != nil && *j.Recursive
}

// 🔍 Validate fills a job's defaults
func (j *Job) Validate() error {
	if j.Root == "" {
		j.Root = "."
	}
	j.Root = filepath.Clean(j.Root)
	if len(j.Extensions) == 0 {
		j.Extensions = []string{".html"}
	}
	for i, ext := range j.Extensions {
		if ext = strings.TrimSpace(ext); ext == "" {
			return errors.Errorf("extension %d is empty", i)
		}
	}
	if j.Workers < 1 {
		j.Workers = 1
	}
	if len(j.Rules) == 0 {
		return errors.Errorf("at least one rule is required")
	}
	return nil
}

// 📝 String returns a string representation of the job
func (j Job) String() string {
	mode := "flat"
	if j.IsRecursive() {
		mode = "recursive"
	}
	return fmt.Sprintf("%s: %s (%s, %s) %d rules", j.Name, j.Root, strings.Join(j.Extensions, ","), mode, len(j.Rules))
}
