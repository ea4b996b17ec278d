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

	"gitlab.com/tozd/go/errors"
	"golang.org/x/net/html"
)

// 🧱 BlockReplace swaps the first delimited region that begins with a start marker.
//
// With an end marker the region stops at the nearest following end marker. Without
// one the start marker must be an HTML start tag and the region stops at the close
// tag that balances it, so nested elements of the same name stay inside the block.
type BlockReplace struct {
	name        string
	start       string
	end         string
	tag         string
	replacement string
}

// NewBlockReplace creates a block replacement rule
func NewBlockReplace(name, start, end, replacement string) (*BlockReplace, error) {
	if start == "" {
		return nil, errors.Errorf("start marker is required")
	}
	if name == "" {
		name = "replace_block"
	}

	r := &BlockReplace{
		name:        name,
		start:       start,
		end:         end,
		replacement: replacement,
	}

	if end == "" {
		tag, ok := startTagName(start)
		if !ok {
			return nil, errors.Errorf("start marker %q is not an html start tag and no end marker is set", start)
		}
		r.tag = tag
	}

	return r, nil
}

func (r *BlockReplace) Name() string { return r.name }

// Balanced reports whether the rule uses the tag-aware scanner
func (r *BlockReplace) Balanced() bool { return r.end == "" }

func (r *BlockReplace) Apply(text string) (string, int) {
	begin := strings.Index(text, r.start)
	if begin < 0 {
		return text, 0
	}

	var stop int
	var ok bool
	if r.Balanced() {
		stop, ok = balancedEnd(text, begin, r.tag)
	} else {
		stop, ok = nearestEnd(text, begin+len(r.start), r.end)
	}
	if !ok {
		return text, 0
	}

	if text[begin:stop] == r.replacement {
		return text, 0
	}
	return text[:begin] + r.replacement + text[stop:], 1
}

func nearestEnd(text string, from int, end string) (int, bool) {
	i := strings.Index(text[from:], end)
	if i < 0 {
		return 0, false
	}
	return from + i + len(end), true
}

// balancedEnd walks tokens from begin and returns the offset just past the close tag
// that brings the depth of tag back to zero.
func balancedEnd(text string, begin int, tag string) (int, bool) {
	z := html.NewTokenizer(strings.NewReader(text[begin:]))
	offset := 0
	depth := 0

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return 0, false
		}
		offset += len(z.Raw())

		switch tt {
		case html.StartTagToken:
			name, _ := z.TagName()
			if string(name) == tag {
				depth++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == tag {
				depth--
				if depth == 0 {
					return begin + offset, true
				}
			}
		}
	}
}

func startTagName(marker string) (string, bool) {
	z := html.NewTokenizer(strings.NewReader(marker))
	if z.Next() != html.StartTagToken {
		return "", false
	}
	name, _ := z.TagName()
	return string(name), len(name) > 0
}
