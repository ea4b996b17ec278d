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
	"encoding/json"
	"fmt"
	"path"

	"github.com/walteh/sitefix/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// 📱 Manifest is a web app manifest
type Manifest struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	Description     string         `json:"description"`
	StartURL        string         `json:"start_url"`
	Display         string         `json:"display"`
	BackgroundColor string         `json:"background_color"`
	ThemeColor      string         `json:"theme_color"`
	Orientation     string         `json:"orientation"`
	Icons           []ManifestIcon `json:"icons"`
}

// ManifestIcon is one icon entry in a manifest
type ManifestIcon struct {
	Src     string `json:"src"`
	Sizes   string `json:"sizes"`
	Type    string `json:"type"`
	Purpose string `json:"purpose"`
}

// manifestIconSizes are the icon sizes listed in the manifest
var manifestIconSizes = map[int]bool{192: true, 512: true}

// NewManifest builds the manifest for cfg. Only the configured 192px and 512px icons are listed.
func NewManifest(cfg *config.AssetsConfig) Manifest {
	m := Manifest{
		Name:            cfg.Name,
		ShortName:       cfg.ShortName,
		Description:     cfg.Description,
		StartURL:        "/",
		Display:         "standalone",
		BackgroundColor: cfg.Background,
		ThemeColor:      cfg.Theme,
		Orientation:     "portrait-primary",
		Icons:           []ManifestIcon{},
	}
	for _, icon := range cfg.Icons {
		if !manifestIconSizes[icon.Size] {
			continue
		}
		m.Icons = append(m.Icons, ManifestIcon{
			Src:     path.Join(cfg.URLPrefix, icon.File),
			Sizes:   fmt.Sprintf("%dx%d", icon.Size, icon.Size),
			Type:    "image/png",
			Purpose: "any",
		})
	}
	return m
}

// Encode renders the manifest as JSON indented by two spaces
func (m Manifest) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, errors.Errorf("encoding manifest: %w", err)
	}
	return data, nil
}
