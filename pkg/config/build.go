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
	"github.com/walteh/sitefix/pkg/operation"
	"github.com/walteh/sitefix/pkg/provider"
	"github.com/walteh/sitefix/pkg/rewrite"
	"gitlab.com/tozd/go/errors"
)

// Rule types understood by RuleConfig.Build
const (
	RuleDedupeLines  = "dedupe_lines"
	RuleSubstitute   = "substitute"
	RuleStripSuffix  = "strip_suffix"
	RuleInsert       = "insert"
	RuleReplaceBlock = "replace_block"
)

// 🏗️ Build compiles the job's rules, in order, into a pipeline
func (j Job) Build(siteHost string) (*rewrite.Pipeline, error) {
	rules := make([]rewrite.Rule, 0, len(j.Rules))
	for i, rc := range j.Rules {
		rule, err := rc.Build(siteHost)
		if err != nil {
			return nil, errors.Errorf("rule %d (%s): %w", i+1, rc.Type, err)
		}
		rules = append(rules, rule)
	}
	return rewrite.NewPipeline(rules...), nil
}

// ListOptions returns the enumeration settings for the job
func (j Job) ListOptions() provider.ListOptions {
	return provider.ListOptions{
		Extensions: j.Extensions,
		Recursive:  j.IsRecursive(),
		Exclude:    j.Exclude,
	}
}

// 🏃 Operation converts the job into something the runner can execute
func (j Job) Operation(siteHost string) (operation.Job, error) {
	pipeline, err := j.Build(siteHost)
	if err != nil {
		return operation.Job{}, err
	}
	opts := j.ListOptions()
	if err := opts.Validate(); err != nil {
		return operation.Job{}, err
	}
	return operation.Job{
		Name:     j.Name,
		Root:     j.Root,
		List:     opts,
		Pipeline: pipeline,
		Workers:  j.Workers,
		DryRun:   j.DryRun,
	}, nil
}

// 🔧 Build compiles one rule. strip_suffix rules without a host use siteHost.
func (rc RuleConfig) Build(siteHost string) (rewrite.Rule, error) {
	switch rc.Type {
	case RuleDedupeLines:
		return rewrite.NewDedupeLines(rc.Name, rc.Markers...), nil

	case RuleSubstitute:
		if len(rc.Patterns) == 0 {
			return nil, errors.Errorf("at least one pattern is required")
		}
		patterns := make([]rewrite.Pattern, 0, len(rc.Patterns))
		for _, p := range rc.Patterns {
			compiled, err := rewrite.CompilePattern(p.Find, p.Replace)
			if err != nil {
				return nil, err
			}
			patterns = append(patterns, compiled)
		}
		return rewrite.NewSubstitution(rc.Name, rc.UntilStable, patterns...), nil

	case RuleStripSuffix:
		host := rc.Host
		if host == "" {
			host = siteHost
		}
		suffix := rc.Suffix
		if suffix == "" {
			suffix = ".html"
		}
		rule, err := rewrite.NewStripSuffix(rc.Name, host, suffix)
		if err != nil {
			return nil, err
		}
		return rule, nil

	case RuleInsert:
		if len(rc.Anchors) == 0 {
			return nil, errors.Errorf("at least one anchor is required")
		}
		anchors := make([]rewrite.Anchor, 0, len(rc.Anchors))
		for _, a := range rc.Anchors {
			placement, err := rewrite.ParsePlacement(a.Placement)
			if err != nil {
				return nil, err
			}
			occurrence, err := rewrite.ParseOccurrence(a.Occurrence)
			if err != nil {
				return nil, err
			}
			anchor, err := rewrite.CompileAnchor(a.Pattern, placement, occurrence, a.Payload)
			if err != nil {
				return nil, err
			}
			anchors = append(anchors, anchor)
		}
		return rewrite.NewInsertion(rc.Name, rc.Guard, anchors...), nil

	case RuleReplaceBlock:
		rule, err := rewrite.NewBlockReplace(rc.Name, rc.Start, rc.End, rc.Replacement)
		if err != nil {
			return nil, err
		}
		return rule, nil

	case "":
		return nil, errors.Errorf("rule type is required")

	default:
		return nil, errors.Errorf("unknown rule type %q", rc.Type)
	}
}
