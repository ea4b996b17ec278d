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

package assets

import (
	"bytes"
	"context"
	"image"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/sitefix/pkg/config"
	"github.com/walteh/sitefix/pkg/provider"
	"github.com/walteh/sitefix/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// Fixed file names
const (
	FaviconFile  = "favicon.ico"
	OGImageFile  = "og-default.png"
	LogoFile     = "logo.png"
	ManifestFile = "manifest.json"
)

// 📦 Asset is one rendered file
type Asset struct {
	Name string
	Data []byte
}

// 🎨 Generator renders the site's icons, images and manifest and writes them through a provider
type Generator struct {
	fs     provider.FileSystem
	cfg    *config.AssetsConfig
	dryRun bool
}

// 🏭 NewGenerator creates a generator. A nil cfg uses the defaults.
func NewGenerator(fs provider.FileSystem, cfg *config.AssetsConfig, dryRun bool) (*Generator, error) {
	if cfg == nil {
		cfg = config.DefaultAssets()
	} else {
		cfg.Defaults()
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating assets config: %w", err)
	}
	return &Generator{fs: fs, cfg: cfg, dryRun: dryRun}, nil
}

// Render produces every asset in a fixed order
func (g *Generator) Render() ([]Asset, error) {
	fill, err := ParseHex(g.cfg.Theme)
	if err != nil {
		return nil, err
	}
	bg, err := ParseHex(g.cfg.Background)
	if err != nil {
		return nil, err
	}
	muted, err := ParseHex("#555555")
	if err != nil {
		return nil, err
	}

	var out []Asset
	add := func(name string, img image.Image) error {
		data, err := EncodePNG(img)
		if err != nil {
			return errors.Errorf("%s: %w", name, err)
		}
		out = append(out, Asset{Name: name, Data: data})
		return nil
	}

	for _, icon := range g.cfg.Icons {
		if err := add(icon.File, Icon(icon.Size, fill)); err != nil {
			return nil, err
		}
	}

	icoImages := make([]image.Image, 0, len(g.cfg.ICOSizes))
	for _, size := range g.cfg.ICOSizes {
		icoImages = append(icoImages, Flatten(Icon(size, fill), image.White))
	}
	ico, err := EncodeICO(icoImages...)
	if err != nil {
		return nil, errors.Errorf("%s: %w", FaviconFile, err)
	}
	out = append(out, Asset{Name: FaviconFile, Data: ico})

	if err := add(OGImageFile, OpenGraph(strings.ToUpper(g.cfg.Name), g.cfg.Tagline, bg, fill, muted)); err != nil {
		return nil, err
	}
	if err := add(LogoFile, Logo(fill)); err != nil {
		return nil, err
	}

	manifest, err := NewManifest(g.cfg).Encode()
	if err != nil {
		return nil, err
	}
	out = append(out, Asset{Name: ManifestFile, Data: manifest})

	return out, nil
}

// 💾 Write renders every asset and writes the ones whose bytes differ from what is on disk
func (g *Generator) Write(ctx context.Context, reporter status.StatusReporter) (*status.Summary, error) {
	assets, err := g.Render()
	if err != nil {
		return nil, err
	}

	paths := make([]string, len(assets))
	for i, a := range assets {
		paths[i] = filepath.Join(g.cfg.Out, a.Name)
	}

	reporter.StartOperation(ctx, "assets", paths)
	defer reporter.FinishOperation(ctx)

	for i, a := range assets {
		if err := ctx.Err(); err != nil {
			return reporter.Summary(), errors.Errorf("writing assets: %w", err)
		}
		reporter.Track(ctx, g.writeIfChanged(ctx, paths[i], a.Data))
		reporter.UpdateProgress(ctx, i+1)
	}

	return reporter.Summary(), nil
}

func (g *Generator) writeIfChanged(ctx context.Context, path string, data []byte) status.Outcome {
	if existing, err := g.fs.ReadFile(ctx, path); err == nil && bytes.Equal(existing, data) {
		return status.Unchanged(path)
	}

	outcome := status.Changed(path, 1, []string{"assets"})
	if g.dryRun {
		outcome.DryRun = true
		return outcome
	}
	if err := g.fs.WriteFile(ctx, path, data); err != nil {
		return status.Failed(path, errors.Errorf("writing %s: %w", path, err))
	}
	zerolog.Ctx(ctx).Debug().Str("path", path).Int("bytes", len(data)).Msg("asset written")
	return outcome
}
