// Copyright 2025 Agentic World, LLC (Sherin Thomas)
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

// Package saver writes captured pages and resources to disk and builds
// the URL map the rewriter consumes.
package saver

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/agentberlin/smippo/internal/urlcanon"
)

// equivalentExtensions groups file extensions that are interchangeable
// when reconciling a URL's existing extension against a resource's
// declared mime type.
var equivalentExtensions = map[string]string{
	".jpeg": ".jpg", ".htm": ".html", ".mjs": ".js", ".cjs": ".js",
}

var mimeExtension = map[string]string{
	"text/html":       ".html",
	"text/css":        ".css",
	"application/javascript": ".js",
	"text/javascript": ".js",
	"image/png":       ".png",
	"image/jpeg":       ".jpg",
	"image/gif":        ".gif",
	"image/webp":       ".webp",
	"image/svg+xml":    ".svg",
	"application/json": ".json",
	"application/pdf":  ".pdf",
}

// URLMap records the relative on-disk path assigned to each normalized
// URL that was saved during a run.
type URLMap struct {
	mu    sync.RWMutex
	paths map[string]string // normalized url -> relative path
	taken map[string]bool
}

// NewURLMap returns an empty URLMap.
func NewURLMap() *URLMap {
	return &URLMap{paths: make(map[string]string), taken: make(map[string]bool)}
}

// Lookup returns the relative path previously assigned to url, if any.
func (m *URLMap) Lookup(url string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.paths[url]
	return p, ok
}

func (m *URLMap) assign(url, relative string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	relative = urlcanon.Deduplicate(relative, m.taken)
	m.taken[relative] = true
	m.paths[url] = relative
	return relative
}

// Saver writes resources under Root, sanitizing and deduplicating their
// paths, and tracks what it wrote in a URLMap.
type Saver struct {
	Root   string
	Layout urlcanon.Layout
	Map    *URLMap

	mu      sync.Mutex
	counter int
}

// New returns a Saver rooted at root.
func New(root string, layout urlcanon.Layout) *Saver {
	return &Saver{Root: root, Layout: layout, Map: NewURLMap()}
}

// Save writes bytes for url, fixing the derived path's extension against
// mime when they disagree, and returns the relative path it wrote to.
// One resource's write failure is returned to the caller to record as a
// manifest error; it never panics.
func (s *Saver) Save(url string, data []byte, mime string) (string, error) {
	relative := urlcanon.ToPath(url, s.Layout)
	relative = fixExtension(relative, mime)
	relative = s.Map.assign(url, relative)

	full := filepath.Join(s.Root, filepath.FromSlash(relative))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", err
	}

	s.mu.Lock()
	s.counter++
	s.mu.Unlock()
	return relative, nil
}

// SaveHTML writes html (always as UTF-8 text) for url.
func (s *Saver) SaveHTML(url string, html string) (string, error) {
	return s.Save(url, []byte(html), "text/html")
}

// SaveScreenshot writes png next to url's saved HTML path, replacing its
// extension with .png.
func (s *Saver) SaveScreenshot(url string, png []byte) (string, error) {
	return s.saveSibling(url, png, ".png")
}

// SavePDF writes pdf next to url's saved HTML path, replacing its
// extension with .pdf.
func (s *Saver) SavePDF(url string, pdf []byte) (string, error) {
	return s.saveSibling(url, pdf, ".pdf")
}

func (s *Saver) saveSibling(url string, data []byte, ext string) (string, error) {
	htmlPath, ok := s.Map.Lookup(url)
	if !ok {
		htmlPath = urlcanon.ToPath(url, s.Layout)
	}
	relative := strings.TrimSuffix(htmlPath, filepath.Ext(htmlPath)) + ext
	full := filepath.Join(s.Root, filepath.FromSlash(relative))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", err
	}
	return relative, nil
}

func fixExtension(relative, mime string) string {
	want, ok := mimeExtension[primaryMime(mime)]
	if !ok {
		return relative
	}
	got := strings.ToLower(filepath.Ext(relative))
	if got == want {
		return relative
	}
	if canon(got) == canon(want) {
		return relative
	}
	return strings.TrimSuffix(relative, filepath.Ext(relative)) + want
}

func canon(ext string) string {
	if c, ok := equivalentExtensions[ext]; ok {
		return c
	}
	return ext
}

func primaryMime(mime string) string {
	mime = strings.ToLower(strings.TrimSpace(mime))
	if idx := strings.IndexByte(mime, ';'); idx >= 0 {
		mime = mime[:idx]
	}
	return strings.TrimSpace(mime)
}
