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
	"fmt"
	"regexp"

	"gitlab.com/tozd/go/errors"
)

// 🔗 StripSuffixPatterns builds the ordered patterns that drop suffix (e.g. ".html")
// from href/src attribute values.
//
// Order, most specific first:
//  1. absolute URL on host ending in "/"+suffix
//  2. absolute URL on host ending in suffix, the host root included
//  3. root-relative path ending in "/"+suffix
//  4. root-relative path ending in suffix
//  5. the site root itself ("/"+suffix becomes "/")
//  6. relative path ending in "/"+suffix
//  7. relative path ending in suffix
//
// Only the suffix is removed. URLs on other hosts, protocol-relative URLs and anything
// carrying a scheme are never matched. With an empty host the absolute patterns are omitted.
func StripSuffixPatterns(host, suffix string) ([]Pattern, error) {
	if suffix == "" {
		return nil, errors.Errorf("suffix is required")
	}

	s := regexp.QuoteMeta(suffix)
	var exprs []string
	if host != "" {
		h := regexp.QuoteMeta(host)
		exprs = append(exprs,
			fmt.Sprintf(`(href|src)="(https?://%s/[^\s"]*/)%s"`, h, s),
			fmt.Sprintf(`(href|src)="(https?://%s/[^\s"]*)%s"`, h, s),
		)
	}
	exprs = append(exprs,
		fmt.Sprintf(`(href|src)="(/[^/\s"][^\s"]*/)%s"`, s),
		fmt.Sprintf(`(href|src)="(/[^/\s"][^\s"]*)%s"`, s),
		fmt.Sprintf(`(href|src)="(/)%s"`, s),
		fmt.Sprintf(`(href|src)="([^/\s":#?][^\s":]*/)%s"`, s),
		fmt.Sprintf(`(href|src)="([^/\s":#?][^\s":]*)%s"`, s),
	)

	patterns := make([]Pattern, 0, len(exprs))
	for _, expr := range exprs {
		p, err := CompilePattern(expr, `${1}="${2}"`)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

// NewStripSuffix creates the clean-URL substitution rule for host and suffix
func NewStripSuffix(name, host, suffix string) (*Substitution, error) {
	patterns, err := StripSuffixPatterns(host, suffix)
	if err != nil {
		return nil, errors.Errorf("building strip suffix patterns: %w", err)
	}
	if name == "" {
		name = "strip_suffix"
	}
	return NewSubstitution(name, true, patterns...), nil
}
