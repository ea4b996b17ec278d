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
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	statusWidth = 13 // Width for status text
)

// 🎯 FormatOutcomeLine formats an outcome as an aligned console row
func FormatOutcomeLine(o Outcome) string {
	// Determine prefix symbol
	var prefix string
	switch o.Status {
	case StatusChanged:
		prefix = color.YellowString("⟳")
	case StatusFailed:
		prefix = color.RedString("✗")
	default:
		prefix = color.HiBlackString("-")
	}

	label := o.Status.String()
	if o.DryRun && o.Status == StatusChanged {
		label = "would change"
	}

	var detail string
	switch {
	case o.Status == StatusFailed && o.Err != nil:
		detail = color.RedString(o.Err.Error())
	case len(o.Rules) > 0:
		detail = fmt.Sprintf("%d edits (%s)", o.Edits, strings.Join(o.Rules, ", "))
	}

	// Format parts with padding
	namePart := fmt.Sprintf("%-*s", nameWidth, o.Path)
	statusPart := fmt.Sprintf("%-*s", statusWidth, label)

	return strings.TrimRight(fmt.Sprintf("%s%s %s %s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		namePart,
		statusPart,
		detail,
	), " ")
}

// 📊 PrintSummary renders the run counts as a table followed by one line per failure
func PrintSummary(w io.Writer, s *Summary) error {
	if s == nil {
		return nil
	}

	title := "sitefix"
	if s.Name != "" {
		title = s.Name
	}
	changedLabel := "changed"
	if s.DryRun {
		changedLabel = "would change"
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{title, "count"},
		{"processed", strconv.Itoa(s.Processed)},
		{changedLabel, strconv.Itoa(s.Changed)},
		{"unchanged", strconv.Itoa(s.Unchanged)},
		{"failed", strconv.Itoa(s.Failed)},
	}).Srender()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, table); err != nil {
		return err
	}

	if !s.HasFailures() {
		_, err := fmt.Fprint(w, pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Sprintln(NewDefaultFileFormatter().FormatSummary(s)))
		return err
	}

	printer := pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"})
	for _, f := range s.Failures {
		if _, err := fmt.Fprint(w, printer.Sprintf("%s: %v\n", f.Path, f.Err)); err != nil {
			return err
		}
	}
	_, err = fmt.Fprint(w, pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Sprintln(NewDefaultFileFormatter().FormatSummary(s)))
	return err
}
