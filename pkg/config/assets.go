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

package config

import (
	"gitlab.com/tozd/go/errors"
)

// 🖼️ IconConfig is one square PNG icon to render
type IconConfig struct {
	File string `json:"file" yaml:"file" hcl:"file,label"`
	Size int    `json:"size" yaml:"size" hcl:"size"`
}

// 🎨 AssetsConfig holds the settings for generated icons, images and the web manifest
type AssetsConfig struct {
	Out         string       `json:"out,omitempty" yaml:"out,omitempty" hcl:"out,optional"`
	URLPrefix   string       `json:"url_prefix,omitempty" yaml:"url_prefix,omitempty" hcl:"url_prefix,optional"`
	Name        string       `json:"name,omitempty" yaml:"name,omitempty" hcl:"name,optional"`
	ShortName   string       `json:"short_name,omitempty" yaml:"short_name,omitempty" hcl:"short_name,optional"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty" hcl:"description,optional"`
	Tagline     string       `json:"tagline,omitempty" yaml:"tagline,omitempty" hcl:"tagline,optional"`
	Background  string       `json:"background,omitempty" yaml:"background,omitempty" hcl:"background,optional"`
	Theme       string       `json:"theme,omitempty" yaml:"theme,omitempty" hcl:"theme,optional"`
	Icons       []IconConfig `json:"icons,omitempty" yaml:"icons,omitempty" hcl:"icon,block"`
	ICOSizes    []int        `json:"ico_sizes,omitempty" yaml:"ico_sizes,omitempty" hcl:"ico_sizes,optional"`
}

// DefaultIcons are the PNG icons generated when none are configured
var DefaultIcons = []IconConfig{
	{File: "apple-touch-icon.png", Size: 180},
	{File: "apple-touch-icon-152x152.png", Size: 152},
	{File: "apple-touch-icon-120x120.png", Size: 120},
	{File: "android-chrome-192x192.png", Size: 192},
	{File: "android-chrome-512x512.png", Size: 512},
}

// DefaultAssets returns the settings used by the Delta Capital site
func DefaultAssets() *AssetsConfig {
	a := &AssetsConfig{}
	a.Defaults()
	return a
}

// Defaults fills every unset field
func (a *AssetsConfig) Defaults() {
	if a.Out == "" {
		a.Out = "img"
	}
	if a.URLPrefix == "" {
		a.URLPrefix = "/img/"
	}
	if a.Name == "" {
		a.Name = "Delta Capital"
	}
	if a.ShortName == "" {
		a.ShortName = "Delta"
	}
	if a.Description == "" {
		a.Description = "Delta Capital - Quantitative Investment Management"
	}
	if a.Tagline == "" {
		a.Tagline = "Systematic conviction through mathematical discipline"
	}
	if a.Background == "" {
		a.Background = "#fafafa"
	}
	if a.Theme == "" {
		a.Theme = "#111111"
	}
	if len(a.Icons) == 0 {
		a.Icons = append([]IconConfig(nil), DefaultIcons...)
	}
	if len(a.ICOSizes) == 0 {
		a.ICOSizes = []int{16, 32, 48}
	}
}

// Validate checks sizes are usable
func (a *AssetsConfig) Validate() error {
	for _, icon := range a.Icons {
		if icon.File == "" {
			return errors.Errorf("icon file name is required")
		}
		if icon.Size <= 0 {
			return errors.Errorf("icon %s: size must be positive", icon.File)
		}
	}
	for _, size := range a.ICOSizes {
		if size <= 0 || size > 256 {
			return errors.Errorf("ico size %d out of range (1-256)", size)
		}
	}
	return nil
}
