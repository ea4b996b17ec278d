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
	"unicode/utf8"

	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

const defaultFileMode os.FileMode = 0644

// ReadFile implements FileSystem.ReadFile
func (p *Provider) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	content, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

// ReadText implements FileSystem.ReadText
func (p *Provider) ReadText(ctx context.Context, path string) (string, error) {
	content, err := p.ReadFile(ctx, path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(content) {
		return "", errors.Errorf("%w: %s", ErrNotUTF8, path)
	}
	return string(content), nil
}

// WriteText implements FileSystem.WriteText
func (p *Provider) WriteText(ctx context.Context, path string, text string) error {
	return p.WriteFile(ctx, path, []byte(text))
}

// WriteFile implements FileSystem.WriteFile. Content goes to a temp file in the same
// directory which is then renamed over path, so readers never see a partial file.
// An existing file keeps its permissions.
func (p *Provider) WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	perm := defaultFileMode
	if info, err := p.fs.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	if err := p.fs.MkdirAll(dir, 0755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}

	tmp, err := afero.TempFile(p.fs, dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		p.fs.Remove(tmpPath)
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		p.fs.Remove(tmpPath)
		return errors.Errorf("closing temp file: %w", err)
	}
	if err := p.fs.Chmod(tmpPath, perm); err != nil {
		p.fs.Remove(tmpPath)
		return errors.Errorf("setting file mode: %w", err)
	}

	// Rename temp file to target (atomic operation)
	if err := p.fs.Rename(tmpPath, path); err != nil {
		p.fs.Remove(tmpPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}
