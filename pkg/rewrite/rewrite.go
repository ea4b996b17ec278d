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

package rewrite

import (
	"context"
	"io"

	"gitlab.com/tozd/go/errors"
)

// 🔧 Rule is a single text rewrite. Apply must be idempotent on its own output:
// Apply(Apply(x)) == Apply(x).
type Rule interface {
	// Name identifies the rule in reports and logs
	Name() string

	// Apply returns the rewritten text and the number of edits made.
	// A rule that does not match returns the input unchanged and zero edits.
	Apply(text string) (string, int)
}

// 📦 Result holds the outcome of running a pipeline over one document
type Result struct {
	Original    string   // Text before any rule ran
	Modified    string   // Text after every rule ran
	Edits       int      // Total edits across all rules
	Applied     []string // Names of the rules that changed the text, in order
	WasModified bool     // Whether Modified differs from Original
}

// 🔄 Pipeline applies an ordered list of rules left to right
type Pipeline struct {
	rules []Rule
}

// 🏭 NewPipeline creates a pipeline; nil rules are skipped
func NewPipeline(rules ...Rule) *Pipeline {
	p := &Pipeline{}
	for _, r := range rules {
		if r != nil {
			p.rules = append(p.rules, r)
		}
	}
	return p
}

// Rules returns the pipeline's rules in application order
func (p *Pipeline) Rules() []Rule {
	out := make([]Rule, len(p.rules))
	copy(out, p.rules)
	return out
}

// Len returns the number of rules
func (p *Pipeline) Len() int {
	return len(p.rules)
}

// 🎯 Transform runs every rule over text. Later rules see the output of earlier ones.
func (p *Pipeline) Transform(text string) *Result {
	result := &Result{
		Original: text,
		Modified: text,
	}

	current := text
	for _, rule := range p.rules {
		next, edits := rule.Apply(current)
		if next != current {
			result.Applied = append(result.Applied, rule.Name())
			result.Edits += edits
		}
		current = next
	}

	result.Modified = current
	result.WasModified = current != text
	return result
}

// TransformReader reads all of content and runs Transform over it
func (p *Pipeline) TransformReader(ctx context.Context, content io.Reader) (*Result, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Errorf("transforming content: %w", err)
	}
	return p.Transform(string(data)), nil
}
