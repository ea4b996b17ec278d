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
	"regexp"

	"gitlab.com/tozd/go/errors"
)

// maxStablePasses bounds UntilStable substitution
const maxStablePasses = 8

// 🔄 Pattern is one find/replace pair. Replace uses regexp.Expand syntax ($1, ${name}).
type Pattern struct {
	Find    *regexp.Regexp
	Replace string
}

// CompilePattern compiles find into a Pattern
func CompilePattern(find, replace string) (Pattern, error) {
	if find == "" {
		return Pattern{}, errors.Errorf("pattern is required")
	}
	re, err := regexp.Compile(find)
	if err != nil {
		return Pattern{}, errors.Errorf("compiling pattern %q: %w", find, err)
	}
	return Pattern{Find: re, Replace: replace}, nil
}

// 🔁 Substitution applies its patterns in the given priority order.
// Put the most specific pattern first so a general one never half-matches it.
type Substitution struct {
	name        string
	patterns    []Pattern
	untilStable bool
}

// NewSubstitution creates a substitution rule. With untilStable the ordered list is
// repeated until the text stops changing, bounded by maxStablePasses.
func NewSubstitution(name string, untilStable bool, patterns ...Pattern) *Substitution {
	if name == "" {
		name = "substitute"
	}
	return &Substitution{
		name:        name,
		patterns:    append([]Pattern(nil), patterns...),
		untilStable: untilStable,
	}
}

func (r *Substitution) Name() string { return r.name }

// Patterns returns the patterns in priority order
func (r *Substitution) Patterns() []Pattern {
	return append([]Pattern(nil), r.patterns...)
}

func (r *Substitution) pass(text string) (string, int) {
	edits := 0
	for _, p := range r.patterns {
		if p.Find == nil {
			continue
		}
		n := len(p.Find.FindAllStringIndex(text, -1))
		if n == 0 {
			continue
		}
		next := p.Find.ReplaceAllString(text, p.Replace)
		if next != text {
			edits += n
		}
		text = next
	}
	return text, edits
}

func (r *Substitution) Apply(text string) (string, int) {
	out, edits := r.pass(text)
	if !r.untilStable {
		return out, edits
	}
	for i := 1; i < maxStablePasses; i++ {
		next, n := r.pass(out)
		if next == out {
			break
		}
		out = next
		edits += n
	}
	return out, edits
}
