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

package status

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestFormatOutcomeLine(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name      string
		outcome   Outcome
		prefix    string
		contains  []string
		notSuffix string
	}{
		{
			name:     "changed",
			outcome:  Changed("index.html", 3, []string{"strip_suffix", "dedupe_lines"}),
			prefix:   "    ⟳ index.html",
			contains: []string{"changed", "3 edits (strip_suffix, dedupe_lines)"},
		},
		{
			name:     "dry_run",
			outcome:  Outcome{Path: "a.html", Status: StatusChanged, DryRun: true, Edits: 1, Rules: []string{"footer"}},
			prefix:   "    ⟳ a.html",
			contains: []string{"would change", "1 edits (footer)"},
		},
		{
			name:      "unchanged_has_no_trailing_space",
			outcome:   Unchanged("b.html"),
			prefix:    "    - b.html",
			contains:  []string{"unchanged"},
			notSuffix: " ",
		},
		{
			name:     "failed",
			outcome:  Failed("c.html", errors.New("disk full")),
			prefix:   "    ✗ c.html",
			contains: []string{"failed", "disk full"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatOutcomeLine(tt.outcome)
			assert.True(t, strings.HasPrefix(got, tt.prefix), "got %q", got)
			for _, c := range tt.contains {
				assert.Contains(t, got, c)
			}
			if tt.notSuffix != "" {
				assert.False(t, strings.HasSuffix(got, tt.notSuffix), "got %q", got)
			}
		})
	}
}

func TestPrintSummary(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	t.Run("nil_summary", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, PrintSummary(&buf, nil))
		assert.Empty(t, buf.String())
	})

	t.Run("clean_run", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, PrintSummary(&buf, &Summary{Name: "footer", Processed: 3, Changed: 1, Unchanged: 2}))

		out := buf.String()
		assert.Contains(t, out, "footer")
		assert.Contains(t, out, "processed")
		assert.Contains(t, out, "Done: 1 files changed, 2 files unchanged, 0 files failed (3 processed)")
	})

	t.Run("failures_listed_by_path", func(t *testing.T) {
		var buf bytes.Buffer
		s := &Summary{Processed: 2, Failed: 2, Failures: []Failure{
			{Path: "a.html", Err: errors.New("first")},
			{Path: "b.html", Err: errors.New("second")},
		}}
		require.NoError(t, PrintSummary(&buf, s))

		out := buf.String()
		assert.Contains(t, out, "sitefix")
		assert.Contains(t, out, "a.html: first")
		assert.Contains(t, out, "b.html: second")
		assert.Less(t, strings.Index(out, "a.html"), strings.Index(out, "b.html"))
	})
}
