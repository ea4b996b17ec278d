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

package provider

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// 🔍 ListOptions filters the files returned by ListFiles
type ListOptions struct {
	Extensions []string // File suffixes to keep (".html"); empty keeps everything
	Recursive  bool     // Walk subdirectories
	Exclude    []string // Doublestar globs matched against the root-relative path and the base name
}

// Validate checks exclusion patterns
func (o ListOptions) Validate() error {
	for _, pattern := range o.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	return nil
}

func (o ListOptions) matchesExtension(name string) bool {
	if len(o.Extensions) == 0 {
		return true
	}
	for _, ext := range o.Extensions {
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func (o ListOptions) excluded(rel string) (string, bool) {
	base := filepath.Base(rel)
	for _, pattern := range o.Exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return pattern, true
		}
		if ok, _ := doublestar.Match(pattern, base); ok {
			return pattern, true
		}
	}
	return "", false
}

// ListFiles implements FileSystem.ListFiles
func (p *Provider) ListFiles(ctx context.Context, root string, opts ListOptions) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	info, err := p.fs.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf("%w: %s", ErrNotFound, root)
		}
		return nil, errors.Errorf("checking root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("%w: %s", ErrNotDirectory, root)
	}

	var files []string
	consider := func(path string, fi os.FileInfo) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if fi.IsDir() || !opts.matchesExtension(fi.Name()) {
			return nil
		}
		if !p.isRegular(path, fi) {
			logger.Debug().Str("path", path).Msg("skipping non-regular file")
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return errors.Errorf("relative path for %s: %w", path, err)
		}
		if pattern, ok := opts.excluded(filepath.ToSlash(rel)); ok {
			logger.Debug().Str("path", path).Str("pattern", pattern).Msg("file excluded by pattern")
			return nil
		}
		files = append(files, path)
		return nil
	}

	if opts.Recursive {
		err = afero.Walk(p.fs, root, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			return consider(path, fi)
		})
	} else {
		var entries []os.FileInfo
		entries, err = afero.ReadDir(p.fs, root)
		if err == nil {
			for _, fi := range entries {
				if err = consider(filepath.Join(root, fi.Name()), fi); err != nil {
					break
				}
			}
		}
	}
	if err != nil {
		return nil, errors.Errorf("listing %s: %w", root, err)
	}

	sort.Strings(files)
	logger.Debug().Str("root", root).Int("files", len(files)).Bool("recursive", opts.Recursive).Msg("listed files")
	return files, nil
}

// isRegular follows symlinks; a link whose target is missing or not a regular file is skipped
func (p *Provider) isRegular(path string, fi os.FileInfo) bool {
	if fi.Mode().IsRegular() {
		return true
	}
	if fi.Mode()&os.ModeSymlink == 0 {
		return false
	}
	target, err := p.fs.Stat(path)
	if err != nil {
		return false
	}
	return target.Mode().IsRegular()
}
