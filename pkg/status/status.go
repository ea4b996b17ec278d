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
	"sort"
)

// 📊 FileStatus is the outcome of processing one document
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusChanged              // Content differed and was written (or would be, in a dry run)
	StatusUnchanged            // Content already converged, nothing written
	StatusFailed               // Read, transform or write failed
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusChanged:
		return "changed"
	case StatusUnchanged:
		return "unchanged"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 Outcome describes what happened to one document
type Outcome struct {
	Path   string     // Document path as listed by the provider
	Status FileStatus // Final status
	Edits  int        // Number of edits made by the rules
	Rules  []string   // Rules that changed the document, in order
	Diff   string     // Patch preview, only set for dry runs
	DryRun bool       // Whether the write was skipped on purpose
	Err    error      // Cause of a failure
}

// Changed creates a changed outcome
func Changed(path string, edits int, rules []string) Outcome {
	return Outcome{Path: path, Status: StatusChanged, Edits: edits, Rules: rules}
}

// Unchanged creates an unchanged outcome
func Unchanged(path string) Outcome {
	return Outcome{Path: path, Status: StatusUnchanged}
}

// Failed creates a failed outcome
func Failed(path string, err error) Outcome {
	return Outcome{Path: path, Status: StatusFailed, Err: err}
}

// ❌ Failure pairs a path with the error that stopped it
type Failure struct {
	Path string
	Err  error
}

// 📦 Summary aggregates the outcomes of a run
type Summary struct {
	Name      string    // Job name
	Processed int       // Documents looked at
	Changed   int       // Documents written (or that would be written)
	Unchanged int       // Documents already converged
	Failed    int       // Documents that failed
	Failures  []Failure // Failed documents sorted by path
	DryRun    bool      // Whether the run skipped writes
}

// HasFailures reports whether any document failed
func (s *Summary) HasFailures() bool {
	return s != nil && s.Failed > 0
}

// Add folds one outcome into the summary
func (s *Summary) Add(o Outcome) {
	s.Processed++
	switch o.Status {
	case StatusChanged:
		s.Changed++
	case StatusUnchanged:
		s.Unchanged++
	case StatusFailed:
		s.Failed++
		s.Failures = append(s.Failures, Failure{Path: o.Path, Err: o.Err})
	}
}

// Merge adds other's counts and failures to s
func (s *Summary) Merge(other *Summary) {
	if other == nil {
		return
	}
	s.Processed += other.Processed
	s.Changed += other.Changed
	s.Unchanged += other.Unchanged
	s.Failed += other.Failed
	s.Failures = append(s.Failures, other.Failures...)
	sortFailures(s.Failures)
}

func sortFailures(failures []Failure) {
	sort.SliceStable(failures, func(i, j int) bool {
		return failures[i].Path < failures[j].Path
	})
}
