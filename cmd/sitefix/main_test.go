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

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/sitefix/cmd/sitefix/opts"
	"github.com/walteh/sitefix/pkg/operation"
	"github.com/walteh/sitefix/pkg/provider"
	"gitlab.com/tozd/go/errors"
)

func plainOutput(t *testing.T) {
	t.Helper()
	noColor := color.NoColor
	color.NoColor = true
	pterm.DisableStyling()
	t.Cleanup(func() {
		color.NoColor = noColor
		pterm.EnableStyling()
	})
}

func execute(t *testing.T, o *opts.RootOpts, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewCommand(o)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func memSite(t *testing.T, files map[string]string) *provider.Provider {
	t.Helper()
	p := provider.NewMemory()
	for path, content := range files {
		require.NoError(t, p.Fs().MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, afero.WriteFile(p.Fs(), path, []byte(content), 0644))
	}
	return p
}

func read(t *testing.T, p *provider.Provider, path string) string {
	t.Helper()
	data, err := afero.ReadFile(p.Fs(), path)
	require.NoError(t, err)
	return string(data)
}

func TestNewCommand(t *testing.T) {
	cmd := NewCommand(&opts.RootOpts{})
	require.NotNil(t, cmd, "command should not be nil")
	assert.Equal(t, "sitefix", cmd.Use, "command name should match")
	assert.NotEmpty(t, cmd.Short, "should have short description")

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"run", "favicons", "clean-urls", "head", "footer", "assets", "version"}, names)

	cleanURLs, _, err := cmd.Find([]string{"clean-urls"})
	require.NoError(t, err)
	assert.NotNil(t, cleanURLs.Flags().Lookup("site-host"))

	head, _, err := cmd.Find([]string{"head"})
	require.NoError(t, err)
	assert.Nil(t, head.Flags().Lookup("site-host"), "only clean-urls takes a site host")
}

func TestPresetCommands(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		args     []string
		validate func(t *testing.T, p *provider.Provider, out string)
	}{
		{
			name: "favicons_dedupes_head_lines",
			files: map[string]string{
				"/site/index.html": "<head>\n  <link rel=\"icon\" href=\"/favicon.ico\">\n  <link rel=\"icon\" href=\"/favicon.ico\">\n</head>\n",
			},
			args: []string{"favicons", "--root", "/site"},
			validate: func(t *testing.T, p *provider.Provider, out string) {
				assert.Equal(t, "<head>\n  <link rel=\"icon\" href=\"/favicon.ico\">\n</head>\n", read(t, p, "/site/index.html"))
				assert.Contains(t, out, "Done: 1 files changed, 0 files unchanged, 0 files failed (1 processed)")
			},
		},
		{
			name: "clean_urls_is_recursive_by_default",
			files: map[string]string{
				"/site/index.html":     `<a href="/about.html">About</a>`,
				"/site/blog/post.html": `<a href="https://example.com/x.html">x</a>`,
			},
			args: []string{"clean-urls", "--root", "/site", "--site-host", "example.com"},
			validate: func(t *testing.T, p *provider.Provider, out string) {
				assert.Equal(t, `<a href="/about">About</a>`, read(t, p, "/site/index.html"))
				assert.Equal(t, `<a href="https://example.com/x">x</a>`, read(t, p, "/site/blog/post.html"))
				assert.Contains(t, out, "2 files changed")
			},
		},
		{
			name: "clean_urls_flat",
			files: map[string]string{
				"/site/index.html":     `<a href="/about.html">About</a>`,
				"/site/blog/post.html": `<a href="/x.html">x</a>`,
			},
			args: []string{"clean-urls", "--root", "/site", "--recursive=false"},
			validate: func(t *testing.T, p *provider.Provider, out string) {
				assert.Equal(t, `<a href="/about">About</a>`, read(t, p, "/site/index.html"))
				assert.Equal(t, `<a href="/x.html">x</a>`, read(t, p, "/site/blog/post.html"))
			},
		},
		{
			name: "footer_replaces_block",
			files: map[string]string{
				"/site/index.html": "<body>\n    <footer class=\"page-footer\"><p>old</p></footer>\n</body>\n",
				"/site/plain.html": "<body></body>\n",
			},
			args: []string{"footer", "--root", "/site", "--workers", "4"},
			validate: func(t *testing.T, p *provider.Provider, out string) {
				got := read(t, p, "/site/index.html")
				assert.NotContains(t, got, "<p>old</p>")
				assert.Contains(t, got, `<a href="/careers">Careers</a>`)
				assert.Equal(t, "<body></body>\n", read(t, p, "/site/plain.html"))
				assert.Contains(t, out, "1 files changed, 1 files unchanged")
			},
		},
		{
			name: "head_inserts_once",
			files: map[string]string{
				"/site/index.html": "<head>\n  <title>Home</title>\n</head>\n<body>\n</body>\n",
			},
			args: []string{"head", "--root", "/site"},
			validate: func(t *testing.T, p *provider.Provider, out string) {
				got := read(t, p, "/site/index.html")
				assert.Equal(t, 1, strings.Count(got, `href="/img/favicon.ico"`))
				assert.Equal(t, 1, strings.Count(got, `/js/cookie-notice.js`))
			},
		},
		{
			name: "dry_run_writes_nothing",
			files: map[string]string{
				"/site/index.html": `<a href="/about.html">About</a>`,
			},
			args: []string{"clean-urls", "--root", "/site", "--dry-run"},
			validate: func(t *testing.T, p *provider.Provider, out string) {
				assert.Equal(t, `<a href="/about.html">About</a>`, read(t, p, "/site/index.html"))
				assert.Contains(t, out, "would change")
				assert.Contains(t, out, "--- /site/index.html")
				assert.Contains(t, out, `+<a href="/about">About</a>`)
			},
		},
		{
			name: "exclude",
			files: map[string]string{
				"/site/index.html": `<a href="/about.html">About</a>`,
				"/site/keep.html":  `<a href="/about.html">About</a>`,
			},
			args: []string{"clean-urls", "--root", "/site", "--exclude", "keep.html"},
			validate: func(t *testing.T, p *provider.Provider, out string) {
				assert.Equal(t, `<a href="/about">About</a>`, read(t, p, "/site/index.html"))
				assert.Equal(t, `<a href="/about.html">About</a>`, read(t, p, "/site/keep.html"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plainOutput(t)
			p := memSite(t, tt.files)

			out, err := execute(t, &opts.RootOpts{FS: p}, tt.args...)
			require.NoError(t, err, out)
			tt.validate(t, p, out)

			again, err := execute(t, &opts.RootOpts{FS: p}, tt.args...)
			require.NoError(t, err, again)
			if !strings.Contains(strings.Join(tt.args, " "), "--dry-run") {
				assert.Contains(t, again, "0 files changed", "second run should be a no-op")
			}
		})
	}
}

func TestPresetCommand_MissingRoot(t *testing.T) {
	plainOutput(t)
	_, err := execute(t, &opts.RootOpts{FS: provider.NewMemory()}, "favicons", "--root", "/missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, provider.ErrNotFound), "missing root should be fatal: %v", err)
}

func TestPresetCommand_Strict(t *testing.T) {
	files := map[string]string{
		"/site/bad.html":  "\xff\xfe",
		"/site/good.html": `<a href="/about.html">About</a>`,
	}

	t.Run("lenient", func(t *testing.T) {
		plainOutput(t)
		p := memSite(t, files)
		out, err := execute(t, &opts.RootOpts{FS: p}, "clean-urls", "--root", "/site")
		require.NoError(t, err)
		assert.Contains(t, out, "/site/bad.html")
		assert.Contains(t, out, "1 files failed")
		assert.Equal(t, `<a href="/about">About</a>`, read(t, p, "/site/good.html"), "one failure does not stop the others")
	})

	t.Run("strict", func(t *testing.T) {
		plainOutput(t)
		p := memSite(t, files)
		_, err := execute(t, &opts.RootOpts{FS: p}, "clean-urls", "--root", "/site", "--strict")
		require.Error(t, err)
		assert.True(t, errors.Is(err, operation.ErrFilesFailed))
		assert.Equal(t, `<a href="/about">About</a>`, read(t, p, "/site/good.html"))
	})
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestRunCommand(t *testing.T) {
	plainOutput(t)
	dir := t.TempDir()
	configPath := filepath.Join(dir, "sitefix.yaml")
	writeFile(t, configPath, `
jobs:
  - name: urls
    preset: clean-urls
    root: site
  - name: dedupe
    root: site
    rules:
      - type: dedupe_lines
assets:
  out: img
  icons:
    - file: icon.png
      size: 32
`)
	page := filepath.Join(dir, "site", "index.html")
	writeFile(t, page, "<link rel=\"icon\" href=\"/a.ico\">\n<link rel=\"icon\" href=\"/a.ico\">\n<a href=\"/about.html\">About</a>\n")

	nested := filepath.Join(dir, "site", "blog", "post.html")
	writeFile(t, nested, "<a href=\"/about.html\">About</a>\n")

	out, err := execute(t, &opts.RootOpts{}, "run", "--config", configPath)
	require.NoError(t, err, out)

	got, err := os.ReadFile(page)
	require.NoError(t, err)
	assert.Equal(t, "<link rel=\"icon\" href=\"/a.ico\">\n<a href=\"/about\">About</a>\n", string(got))

	got, err = os.ReadFile(nested)
	require.NoError(t, err)
	assert.Equal(t, "<a href=\"/about\">About</a>\n", string(got), "the clean-urls preset walks subdirectories")

	for _, name := range []string{"icon.png", "favicon.ico", "og-default.png", "logo.png", "manifest.json"} {
		_, err := os.Stat(filepath.Join(dir, "img", name))
		assert.NoError(t, err, name)
	}
	assert.Contains(t, out, "Done: 8 files changed, 0 files unchanged, 0 files failed (8 processed)", "total over both jobs and the assets")

	again, err := execute(t, &opts.RootOpts{}, "run", "--config", configPath)
	require.NoError(t, err, again)
	assert.Contains(t, again, "Done: 0 files changed, 8 files unchanged")
}

func TestRunCommand_SelectJobs(t *testing.T) {
	plainOutput(t)
	dir := t.TempDir()
	configPath := filepath.Join(dir, "sitefix.hcl")
	writeFile(t, configPath, `
site_host = "example.com"

job "urls" {
  root = "site"
  rule "strip_suffix" {}
}

job "dedupe" {
  root = "site"
  rule "dedupe_lines" {}
}
`)
	page := filepath.Join(dir, "site", "index.html")
	writeFile(t, page, "<link rel=\"icon\" href=\"/a.ico\">\n<link rel=\"icon\" href=\"/a.ico\">\n<a href=\"https://example.com/x.html\">x</a>\n")

	_, err := execute(t, &opts.RootOpts{}, "run", "-c", configPath, "urls")
	require.NoError(t, err)

	got, err := os.ReadFile(page)
	require.NoError(t, err)
	assert.Equal(t, "<link rel=\"icon\" href=\"/a.ico\">\n<link rel=\"icon\" href=\"/a.ico\">\n<a href=\"https://example.com/x\">x</a>\n", string(got),
		"only the selected job runs")

	_, err = execute(t, &opts.RootOpts{}, "run", "-c", configPath, "nope")
	assert.ErrorContains(t, err, `unknown job "nope"`)
}

func TestRunCommand_Errors(t *testing.T) {
	plainOutput(t)
	dir := t.TempDir()

	_, err := execute(t, &opts.RootOpts{}, "run", "--config", filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "reading config file")

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "jobs:\n  - name: x\n    rules:\n      - type: teleport\n")
	_, err = execute(t, &opts.RootOpts{}, "run", "--config", bad)
	assert.ErrorContains(t, err, `unknown rule type "teleport"`)

	missingRoot := filepath.Join(dir, "root.yaml")
	writeFile(t, missingRoot, "jobs:\n  - name: x\n    root: nowhere\n    rules:\n      - type: dedupe_lines\n")
	_, err = execute(t, &opts.RootOpts{}, "run", "--config", missingRoot)
	require.Error(t, err)
	assert.True(t, errors.Is(err, provider.ErrNotFound))
}

func TestAssetsCommand(t *testing.T) {
	plainOutput(t)
	p := provider.NewMemory()

	out, err := execute(t, &opts.RootOpts{FS: p}, "assets", "--out", "/img")
	require.NoError(t, err, out)
	assert.Contains(t, out, "generating assets in /img")

	for _, name := range []string{"apple-touch-icon.png", "android-chrome-512x512.png", "favicon.ico", "og-default.png", "logo.png", "manifest.json"} {
		exists, err := afero.Exists(p.Fs(), filepath.Join("/img", name))
		require.NoError(t, err)
		assert.True(t, exists, name)
	}

	again, err := execute(t, &opts.RootOpts{FS: p}, "assets", "--out", "/img")
	require.NoError(t, err)
	assert.Contains(t, again, "0 files changed, 9 files unchanged")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, &opts.RootOpts{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sitefix version info")
	assert.Contains(t, out, runtime.Version())

	out, err = execute(t, &opts.RootOpts{}, "version", "--json")
	require.NoError(t, err)

	var info VersionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}
