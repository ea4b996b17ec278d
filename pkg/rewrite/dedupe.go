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
	"strings"
)

// DefaultHeadMarkers classify favicon, manifest and theme-color declarations
var DefaultHeadMarkers = []string{
	`<link rel="icon"`,
	`<link rel="apple-touch-icon"`,
	`<link rel="manifest"`,
	`<meta name="theme-color"`,
}

// 🧹 DedupeLines drops repeated lines among those containing one of its markers.
// The first occurrence of each trimmed line is kept; unmarked lines always pass through.
type DedupeLines struct {
	name    string
	markers []string
}

// NewDedupeLines creates a duplicate-line suppressor. With no markers, DefaultHeadMarkers is used.
func NewDedupeLines(name string, markers ...string) *DedupeLines {
	if len(markers) == 0 {
		markers = DefaultHeadMarkers
	}
	if name == "" {
		name = "dedupe_lines"
	}
	return &DedupeLines{
		name:    name,
		markers: append([]string(nil), markers...),
	}
}

func (r *DedupeLines) Name() string { return r.name }

func (r *DedupeLines) classify(line string) bool {
	for _, m := range r.markers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}

func (r *DedupeLines) Apply(text string) (string, int) {
	lines := strings.Split(text, "\n")
	seen := make(map[string]struct{})
	kept := lines[:0:0]
	dropped := 0

	for _, line := range lines {
		if r.classify(line) {
			key := strings.TrimSpace(line)
			if _, ok := seen[key]; ok {
				dropped++
				continue
			}
			seen[key] = struct{}{}
		}
		kept = append(kept, line)
	}

	if dropped == 0 {
		return text, 0
	}
	return strings.Join(kept, "\n"), dropped
}
