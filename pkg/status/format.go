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
)

// FileFormatter defines how outcomes, progress and summaries are rendered
type FileFormatter interface {
	// FormatOutcome formats the result for one document
	FormatOutcome(o Outcome) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatSummary formats the end of run counts
	FormatSummary(s *Summary) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatOutcome formats a document outcome with emojis
func (f *DefaultFileFormatter) FormatOutcome(o Outcome) string {
	switch o.Status {
	case StatusChanged:
		if o.DryRun {
			return fmt.Sprintf("🔍 Would update %s", o.Path)
		}
		return fmt.Sprintf("📝 Updated %s", o.Path)
	case StatusFailed:
		if o.Err != nil {
			return fmt.Sprintf("❌ Failed %s: %v", o.Path, o.Err)
		}
		return fmt.Sprintf("❌ Failed %s", o.Path)
	default:
		return fmt.Sprintf("👍 Unchanged %s", o.Path)
	}
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFileFormatter) FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

// FormatSummary formats the run counts on one line
func (f *DefaultFileFormatter) FormatSummary(s *Summary) string {
	if s == nil {
		return ""
	}
	verb := "changed"
	if s.DryRun {
		verb = "would change"
	}
	return fmt.Sprintf("Done: %d files %s, %d files unchanged, %d files failed (%d processed)",
		s.Changed, verb, s.Unchanged, s.Failed, s.Processed)
}

// FormatError formats an error message with emoji
func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}
