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

package operation

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// 🔍 Preview renders a line diff between original and modified. Unchanged lines are
// collapsed to a single "@@" marker so large documents stay readable.
func Preview(path, original, modified string) string {
	if original == modified {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(original, modified)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var buf strings.Builder
	fmt.Fprintf(&buf, "--- %s\n+++ %s", path, path)
	lastWasEqual := true
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			lastWasEqual = true
			continue
		case diffmatchpatch.DiffDelete:
			if lastWasEqual {
				buf.WriteString("\n@@")
			}
			writeLines(&buf, "-", d.Text)
		case diffmatchpatch.DiffInsert:
			if lastWasEqual {
				buf.WriteString("\n@@")
			}
			writeLines(&buf, "+", d.Text)
		}
		lastWasEqual = false
	}
	return buf.String()
}

func writeLines(buf *strings.Builder, prefix, text string) {
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		buf.WriteString("\n")
		buf.WriteString(prefix)
		buf.WriteString(strings.TrimSuffix(line, "\n"))
	}
}
