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
	"sort"

	"gitlab.com/tozd/go/errors"
)

// Preset names
const (
	PresetFavicons  = "favicons"
	PresetCleanURLs = "clean-urls"
	PresetHead      = "head"
	PresetFooter    = "footer"
)

// 📦 Payloads are the snippets inserted or swapped in by the presets
type Payloads struct {
	FaviconLinks string `json:"favicon_links,omitempty" yaml:"favicon_links,omitempty" hcl:"favicon_links,optional"`
	FaviconSVG   string `json:"favicon_svg,omitempty" yaml:"favicon_svg,omitempty" hcl:"favicon_svg,optional"`
	FaviconGuard string `json:"favicon_guard,omitempty" yaml:"favicon_guard,omitempty" hcl:"favicon_guard,optional"`
	CookieScript string `json:"cookie_script,omitempty" yaml:"cookie_script,omitempty" hcl:"cookie_script,optional"`
	FooterStart  string `json:"footer_start,omitempty" yaml:"footer_start,omitempty" hcl:"footer_start,optional"`
	FooterNav    string `json:"footer_nav,omitempty" yaml:"footer_nav,omitempty" hcl:"footer_nav,optional"`
}

const defaultFaviconLinks = `  <link rel="icon" type="image/x-icon" href="/img/favicon.ico">
  <link rel="apple-touch-icon" sizes="180x180" href="/img/apple-touch-icon.png">
  <link rel="apple-touch-icon" sizes="152x152" href="/img/apple-touch-icon-152x152.png">
  <link rel="apple-touch-icon" sizes="120x120" href="/img/apple-touch-icon-120x120.png">
  <link rel="manifest" href="/img/manifest.json">
  <meta name="theme-color" content="#111111">`

const defaultFooterNav = `<footer class="page-footer">
      <nav class="footer-nav">
        <a href="/" class="active">Home</a>
        <a href="/principles">Principles</a>
        <a href="/mission">Mission</a>
        <a href="/screener">Screener</a>
        <a href="/tools">Tools</a>
        <a href="/blog">Blog</a>
        <a href="/glossary">Glossary</a>
        <a href="/calculators">Calculators</a>
        <a href="/simulator">Strategy Simulator</a>
        <a href="/visualizations">Visualizations</a>
        <a href="/disclosures">Disclosures</a>
        <a href="/faq">Questions</a>
        <a href="/careers">Careers</a>
        <a href="/newsletter">Updates</a>
        <a href="/contact">Contact</a>
      </nav>
      <div class="footer-bottom">
        <span>&Delta; Capital &copy; 2026</span>
        <span>All rights reserved</span>
      </div>
    </footer>`

// DefaultPayloads returns the snippets used by the Delta Capital site
func DefaultPayloads() Payloads {
	return Payloads{
		FaviconLinks: defaultFaviconLinks,
		FaviconSVG:   `  <link rel="icon" type="image/svg+xml" href="/img/favicon.svg">`,
		FaviconGuard: `<link rel="icon" type="image/x-icon" href="/img/favicon.ico">`,
		CookieScript: `  <script src="/js/cookie-notice.js"></script>`,
		FooterStart:  `<footer class="page-footer">`,
		FooterNav:    defaultFooterNav,
	}
}

// Merge returns p with every non-empty field of override applied
func (p Payloads) Merge(override *Payloads) Payloads {
	if override == nil {
		return p
	}
	set := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	set(&p.FaviconLinks, override.FaviconLinks)
	set(&p.FaviconSVG, override.FaviconSVG)
	set(&p.FaviconGuard, override.FaviconGuard)
	set(&p.CookieScript, override.CookieScript)
	set(&p.FooterStart, override.FooterStart)
	set(&p.FooterNav, override.FooterNav)
	return p
}

type presetFunc func(siteHost string, p Payloads) Job

func walk(recursive bool) *bool { return &recursive }

var presets = map[string]presetFunc{
	// Drops repeated favicon, manifest and theme-color lines
	PresetFavicons: func(_ string, _ Payloads) Job {
		return Job{
			Name:  PresetFavicons,
			Root:  ".",
			Rules: []RuleConfig{{Type: RuleDedupeLines}},
		}
	},

	// Removes .html from internal links
	PresetCleanURLs: func(siteHost string, _ Payloads) Job {
		return Job{
			Name:      PresetCleanURLs,
			Root:      "Website",
			Recursive: walk(true),
			Rules: []RuleConfig{{
				Type:   RuleStripSuffix,
				Host:   siteHost,
				Suffix: ".html",
			}},
		}
	},

	// Adds the favicon suite and cookie notice, then cleans up duplicate icon lines
	PresetHead: func(_ string, p Payloads) Job {
		return Job{
			Name: PresetHead,
			Root: ".",
			Rules: []RuleConfig{
				{
					Type:  RuleInsert,
					Name:  "favicon_links",
					Guard: p.FaviconGuard,
					Anchors: []AnchorConfig{
						{
							Pattern: `<link rel="icon" type="image/svg\+xml"[^>]*>`,
							Payload: "\n" + p.FaviconLinks,
						},
						{
							Pattern: `  <title>[^<]*</title>`,
							Payload: "\n" + p.FaviconSVG + "\n" + p.FaviconLinks,
						},
					},
				},
				{
					Type:  RuleInsert,
					Name:  "cookie_notice",
					Guard: p.CookieScript,
					Anchors: []AnchorConfig{{
						Pattern:    `</body>`,
						Placement:  "before",
						Occurrence: "last",
						Payload:    "\n" + p.CookieScript + "\n",
					}},
				},
				{Type: RuleDedupeLines},
			},
		}
	},

	// Swaps the page footer for the current navigation block
	PresetFooter: func(_ string, p Payloads) Job {
		return Job{
			Name:      PresetFooter,
			Root:      ".",
			Recursive: walk(true),
			Rules: []RuleConfig{{
				Type:        RuleReplaceBlock,
				Name:        "footer",
				Start:       p.FooterStart,
				Replacement: p.FooterNav,
			}},
		}
	},
}

// 🎛️ Preset returns the job for a named preset. Callers may override any field.
func Preset(name, siteHost string, p Payloads) (Job, error) {
	fn, ok := presets[name]
	if !ok {
		return Job{}, errors.Errorf("unknown preset %q", name)
	}
	if siteHost == "" {
		siteHost = DefaultSiteHost
	}
	job := fn(siteHost, p)
	job.Extensions = []string{".html"}
	job.Workers = 1
	return job, nil
}

// PresetNames lists the available presets
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
