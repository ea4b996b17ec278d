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
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Placement says which side of an anchor match a payload goes
type Placement int

const (
	After Placement = iota
	Before
)

// ParsePlacement parses "after" or "before"; empty means After
func ParsePlacement(s string) (Placement, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "after":
		return After, nil
	case "before":
		return Before, nil
	default:
		return After, errors.Errorf("unknown placement %q", s)
	}
}

func (p Placement) String() string {
	if p == Before {
		return "before"
	}
	return "after"
}

// Occurrence picks which anchor match is used
type Occurrence int

const (
	First Occurrence = iota
	Last
)

// ParseOccurrence parses "first" or "last"; empty means First
func ParseOccurrence(s string) (Occurrence, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first":
		return First, nil
	case "last":
		return Last, nil
	default:
		return First, errors.Errorf("unknown occurrence %q", s)
	}
}

// ⚓ Anchor locates an insertion point and carries the payload inserted there
type Anchor struct {
	Pattern    *regexp.Regexp
	Placement  Placement
	Occurrence Occurrence
	Payload    string
}

// CompileAnchor compiles pattern into an Anchor
func CompileAnchor(pattern string, placement Placement, occurrence Occurrence, payload string) (Anchor, error) {
	if pattern == "" {
		return Anchor{}, errors.Errorf("anchor pattern is required")
	}
	if payload == "" {
		return Anchor{}, errors.Errorf("anchor payload is required")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Anchor{}, errors.Errorf("compiling anchor %q: %w", pattern, err)
	}
	return Anchor{Pattern: re, Placement: placement, Occurrence: occurrence, Payload: payload}, nil
}

func (a Anchor) locate(text string) (int, bool) {
	var loc []int
	if a.Occurrence == Last {
		all := a.Pattern.FindAllStringIndex(text, -1)
		if len(all) > 0 {
			loc = all[len(all)-1]
		}
	} else {
		loc = a.Pattern.FindStringIndex(text)
	}
	if loc == nil {
		return 0, false
	}
	if a.Placement == Before {
		return loc[0], true
	}
	return loc[1], true
}

// 📌 Insertion places a payload next to the first anchor that matches, at most once.
// Anchors are tried in order, so later ones act as fallbacks. If the guard text is
// already present the document is left alone.
type Insertion struct {
	name    string
	guard   string
	anchors []Anchor
}

// NewInsertion creates an insertion rule. An empty guard falls back to the trimmed
// payload of whichever anchor would fire.
func NewInsertion(name, guard string, anchors ...Anchor) *Insertion {
	if name == "" {
		name = "insert"
	}
	return &Insertion{
		name:    name,
		guard:   guard,
		anchors: append([]Anchor(nil), anchors...),
	}
}

func (r *Insertion) Name() string { return r.name }

func (r *Insertion) Apply(text string) (string, int) {
	if r.guard != "" && strings.Contains(text, r.guard) {
		return text, 0
	}

	for _, a := range r.anchors {
		if a.Pattern == nil {
			continue
		}
		at, ok := a.locate(text)
		if !ok {
			continue
		}
		if r.guard == "" && strings.Contains(text, strings.TrimSpace(a.Payload)) {
			return text, 0
		}
		return text[:at] + a.Payload + text[at:], 1
	}

	return text, 0
}
