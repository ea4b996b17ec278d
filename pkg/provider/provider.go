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
	"sort"

	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrNotFound is returned when a scan root does not exist
	ErrNotFound = errors.New("root not found")
	// ErrNotDirectory is returned when a scan root is not a directory
	ErrNotDirectory = errors.New("root is not a directory")
	// ErrNotUTF8 is returned when a text file is not valid UTF-8
	ErrNotUTF8 = errors.New("file is not valid utf-8")
)

// 🔌 FileSystem is everything sitefix needs from a file tree
type FileSystem interface {
	// 📂 ListFiles returns matching regular files under root, sorted by path
	ListFiles(ctx context.Context, root string, opts ListOptions) ([]string, error)

	// 📄 ReadText reads a UTF-8 file
	ReadText(ctx context.Context, path string) (string, error)

	// 📝 WriteText replaces the whole file in one atomic step
	WriteText(ctx context.Context, path string, text string) error

	// ReadFile reads raw bytes
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// WriteFile replaces the whole file with raw bytes in one atomic step
	WriteFile(ctx context.Context, path string, data []byte) error
}

// Factory builds a FileSystem
type Factory func(ctx context.Context) (FileSystem, error)

var (
	// 🗺️ providers is a map of provider names to factories
	providers = make(map[string]Factory)
)

func init() {
	Register("os", func(ctx context.Context) (FileSystem, error) {
		return NewOS(), nil
	})
	Register("memory", func(ctx context.Context) (FileSystem, error) {
		return NewMemory(), nil
	})
}

// Register adds a named factory, replacing any existing one
func Register(name string, factory Factory) {
	providers[name] = factory
}

// Get builds the named provider
func Get(ctx context.Context, name string) (FileSystem, error) {
	factory, ok := providers[name]
	if !ok {
		return nil, errors.Errorf("unknown provider: %s", name)
	}
	return factory(ctx)
}

// Names lists registered providers in sorted order
func Names() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// 💾 Provider implements FileSystem on top of an afero.Fs
type Provider struct {
	fs afero.Fs
}

var _ FileSystem = (*Provider)(nil)

// 🏭 New wraps an afero filesystem
func New(fs afero.Fs) *Provider {
	return &Provider{fs: fs}
}

// NewOS uses the real filesystem
func NewOS() *Provider {
	return New(afero.NewOsFs())
}

// NewMemory uses an empty in-memory filesystem
func NewMemory() *Provider {
	return New(afero.NewMemMapFs())
}

// Fs exposes the underlying afero filesystem
func (p *Provider) Fs() afero.Fs {
	return p.fs
}
