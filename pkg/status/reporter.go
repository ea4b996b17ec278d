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
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// 📈 StatusReporter tracks outcomes and reports progress
type StatusReporter interface {
	// Outcome tracking
	Track(ctx context.Context, o Outcome)
	Outcomes() []Outcome
	Summary() *Summary

	// Progress reporting
	StartOperation(ctx context.Context, name string, paths []string)
	UpdateProgress(ctx context.Context, processed int)
	FinishOperation(ctx context.Context)
}

var _ StatusReporter = (*Reporter)(nil)

// 🔧 Reporter accumulates outcomes keyed by path. Console lines are released in the
// order given to StartOperation, so parallel runs print the same output as sequential ones.
type Reporter struct {
	out       io.Writer     // Console output, nil for silent
	formatter FileFormatter // Formatter for progress messages
	dryRun    bool

	mu       sync.Mutex
	name     string
	outcomes map[string]Outcome
	order    []string
	next     int

	total     int
	processed int
}

// ReporterOption configures a Reporter
type ReporterOption func(*Reporter)

// WithFormatter replaces the default formatter
func WithFormatter(f FileFormatter) ReporterOption {
	return func(r *Reporter) {
		r.formatter = f
	}
}

// WithDryRun marks the summary as a dry run
func WithDryRun(dryRun bool) ReporterOption {
	return func(r *Reporter) {
		r.dryRun = dryRun
	}
}

// 🏭 NewReporter creates a reporter writing console lines to out
func NewReporter(out io.Writer, opts ...ReporterOption) *Reporter {
	r := &Reporter{
		out:       out,
		formatter: NewDefaultFileFormatter(),
		outcomes:  make(map[string]Outcome),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// StartOperation resets progress and records the order in which lines are printed
func (r *Reporter) StartOperation(ctx context.Context, name string, paths []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.name = name
	r.order = append([]string(nil), paths...)
	r.next = 0
	r.total = len(paths)
	r.processed = 0

	zerolog.Ctx(ctx).Debug().Str("job", name).Int("total", r.total).Msg(r.formatter.FormatProgress(0, r.total))
}

// Track records one outcome and prints every line that is now ready
func (r *Reporter) Track(ctx context.Context, o Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.outcomes[o.Path] = o

	event := zerolog.Ctx(ctx).Debug()
	if o.Status == StatusFailed {
		event = zerolog.Ctx(ctx).Error().Err(o.Err)
	}
	event.Str("path", o.Path).
		Str("status", o.Status.String()).
		Int("edits", o.Edits).
		Strs("rules", o.Rules).
		Msg(r.formatter.FormatOutcome(o))

	if len(r.order) == 0 {
		r.print(o)
		return
	}
	for r.next < len(r.order) {
		ready, ok := r.outcomes[r.order[r.next]]
		if !ok {
			break
		}
		r.print(ready)
		r.next++
	}
}

func (r *Reporter) print(o Outcome) {
	if r.out == nil {
		return
	}
	fmt.Fprintln(r.out, FormatOutcomeLine(o))
	if o.Diff != "" {
		fmt.Fprintln(r.out, o.Diff)
	}
}

// UpdateProgress logs how many documents are done
func (r *Reporter) UpdateProgress(ctx context.Context, processed int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.processed = processed
	zerolog.Ctx(ctx).Trace().
		Int("processed", processed).
		Int("total", r.total).
		Msg(r.formatter.FormatProgress(processed, r.total))
}

// FinishOperation logs the final progress line
func (r *Reporter) FinishOperation(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	zerolog.Ctx(ctx).Debug().
		Int("processed", len(r.outcomes)).
		Int("total", r.total).
		Msg(r.formatter.FormatProgress(len(r.outcomes), r.total))
}

// Outcomes returns every tracked outcome sorted by path
func (r *Reporter) Outcomes() []Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Outcome, 0, len(r.outcomes))
	for _, o := range r.outcomes {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})
	return out
}

// Summary aggregates the tracked outcomes
func (r *Reporter) Summary() *Summary {
	outcomes := r.Outcomes()

	r.mu.Lock()
	s := &Summary{Name: r.name, DryRun: r.dryRun}
	r.mu.Unlock()

	for _, o := range outcomes {
		s.Add(o)
	}
	return s
}
