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
	"context"
	"io"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/walteh/sitefix/pkg/provider"
	"github.com/walteh/sitefix/pkg/rewrite"
	"github.com/walteh/sitefix/pkg/status"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 📋 Job is one rewrite pass over a document tree
type Job struct {
	Name     string               // Label used in logs and the summary
	Root     string               // Directory to enumerate
	List     provider.ListOptions // Extension filter, recursion and exclusions
	Pipeline *rewrite.Pipeline    // Rules applied to every document
	Workers  int                  // More than one enables the parallel runner
	DryRun   bool                 // Report changes without writing
}

// 🏃 Runner executes jobs against a file system
type Runner struct {
	fs  provider.FileSystem
	out io.Writer
}

// 🏗️ NewRunner creates a new runner printing per-file lines to out (nil for silent)
func NewRunner(fs provider.FileSystem, out io.Writer) *Runner {
	return &Runner{
		fs:  fs,
		out: out,
	}
}

// 🏃 Run enumerates the job's root and processes every document. A missing root is fatal
// and nothing is processed. Per-file failures are recorded in the summary, never returned.
// A cancelled run returns the partial summary together with the context error.
func (r *Runner) Run(ctx context.Context, job Job) (*status.Summary, error) {
	if job.Pipeline == nil {
		return nil, errors.Errorf("job %q has no pipeline", job.Name)
	}

	logger := zerolog.Ctx(ctx).With().Str("job", job.Name).Logger()
	ctx = logger.WithContext(ctx)

	paths, err := r.fs.ListFiles(ctx, job.Root, job.List)
	if err != nil {
		return nil, errors.Errorf("enumerating documents: %w", err)
	}

	logger.Debug().
		Str("root", job.Root).
		Int("documents", len(paths)).
		Int("rules", job.Pipeline.Len()).
		Bool("dry_run", job.DryRun).
		Msg("starting job")

	reporter := status.NewReporter(r.out, status.WithDryRun(job.DryRun))
	reporter.StartOperation(ctx, job.Name, paths)
	defer reporter.FinishOperation(ctx)

	writer := NewWriter(r.fs, job.Pipeline, job.DryRun)

	if job.Workers > 1 {
		err = r.runParallel(ctx, job.Workers, paths, writer, reporter)
	} else {
		err = r.runSequential(ctx, paths, writer, reporter)
	}

	summary := reporter.Summary()
	if err != nil {
		return summary, errors.Errorf("run cancelled: %w", err)
	}
	return summary, nil
}

// 🔄 runSequential processes documents one at a time in path order
func (r *Runner) runSequential(ctx context.Context, paths []string, w *Writer, reporter status.StatusReporter) error {
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		reporter.Track(ctx, w.WriteIfChanged(ctx, path))
		reporter.UpdateProgress(ctx, i+1)
	}
	return nil
}

// ⚡ runParallel processes documents with at most workers in flight
func (r *Runner) runParallel(ctx context.Context, workers int, paths []string, w *Writer, reporter status.StatusReporter) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var done atomic.Int64
	for _, path := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reporter.Track(gctx, w.WriteIfChanged(gctx, path))
			reporter.UpdateProgress(gctx, int(done.Add(1)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
