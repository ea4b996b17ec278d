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

	"github.com/rs/zerolog"
	"github.com/walteh/sitefix/pkg/provider"
	"github.com/walteh/sitefix/pkg/rewrite"
	"github.com/walteh/sitefix/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// ErrFilesFailed is returned when the exit policy is strict and at least one document failed
var ErrFilesFailed = errors.New("one or more files failed")

// 🔄 Transformer turns document text into a transform result
type Transformer interface {
	Transform(text string) *rewrite.Result
}

var _ Transformer = (*rewrite.Pipeline)(nil)

// 📄 Document is one file after it has been read and transformed. It lives for a
// single run and is persisted at most once, only when Changed is set.
type Document struct {
	Path     string   // Path as listed by the provider
	Original string   // Text as read
	Current  string   // Text after every rule ran
	Changed  bool     // Current differs from Original
	Edits    int      // Edits made by the rules
	Applied  []string // Rules that edited the text, in order
}

func newDocument(path string, res *rewrite.Result) *Document {
	return &Document{
		Path:     path,
		Original: res.Original,
		Current:  res.Modified,
		Changed:  res.Modified != res.Original,
		Edits:    res.Edits,
		Applied:  res.Applied,
	}
}

// ✍️ Writer reads, transforms and writes back documents only when they differ
type Writer struct {
	fs          provider.FileSystem
	transformer Transformer
	dryRun      bool
}

// 🏭 NewWriter creates a change-gated writer
func NewWriter(fs provider.FileSystem, transformer Transformer, dryRun bool) *Writer {
	return &Writer{
		fs:          fs,
		transformer: transformer,
		dryRun:      dryRun,
	}
}

// Load reads path and runs it through the transformer without writing anything
func (w *Writer) Load(ctx context.Context, path string) (*Document, error) {
	text, err := w.fs.ReadText(ctx, path)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", path, err)
	}
	return newDocument(path, w.transformer.Transform(text)), nil
}

// WriteIfChanged processes one document. Errors never escape: they come back as a failed outcome.
func (w *Writer) WriteIfChanged(ctx context.Context, path string) status.Outcome {
	logger := zerolog.Ctx(ctx).With().Str("path", path).Logger()

	doc, err := w.Load(ctx, path)
	if err != nil {
		return status.Failed(path, err)
	}

	if !doc.Changed {
		logger.Trace().Msg("content already converged")
		return status.Unchanged(path)
	}

	outcome := status.Changed(path, doc.Edits, doc.Applied)
	if w.dryRun {
		outcome.DryRun = true
		outcome.Diff = Preview(path, doc.Original, doc.Current)
		logger.Debug().Int("edits", doc.Edits).Msg("dry run, skipping write")
		return outcome
	}

	if err := w.fs.WriteText(ctx, path, doc.Current); err != nil {
		return status.Failed(path, errors.Errorf("writing %s: %w", path, err))
	}

	logger.Debug().Int("edits", doc.Edits).Strs("rules", doc.Applied).Msg("document updated")
	return outcome
}

// 🚦 Enforce applies the exit policy to a finished run
func Enforce(summary *status.Summary, failOnError bool) error {
	if failOnError && summary.HasFailures() {
		return errors.Errorf("%w: %d of %d", ErrFilesFailed, summary.Failed, summary.Processed)
	}
	return nil
}
