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

package manifest

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".smippo", "manifest.json")

	m := New(time.Now())
	m.RecordPage("https://example.com/", PageEntry{URL: "https://example.com/", Path: "index.html"})
	m.RecordResource("https://example.com/a.png", ResourceEntry{URL: "https://example.com/a.png", Path: "a.png", Size: 10})
	m.RecordError("https://example.com/bad", errors.New("boom"), time.Now())

	require.NoError(t, m.Save(path, time.Now()))

	loaded, err := Load(path, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Stats.Pages)
	assert.Equal(t, 1, loaded.Stats.Resources)
	assert.Equal(t, 1, loaded.Stats.Errors)
	assert.True(t, loaded.HasPage("https://example.com/"))
}

func TestLoadMissingFileReturnsEmptyManifest(t *testing.T) {
	m, err := Load("/nonexistent/path/manifest.json", time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, m.Stats.Pages)
}

func TestSaveHARWritesEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".smippo", "network.har")

	entries := []HAREntry{
		{URL: "https://example.com/app.js", Status: 200, Mime: "application/javascript", Size: 42,
			Headers: map[string]string{"Content-Type": "application/javascript"}},
	}
	require.NoError(t, SaveHAR(path, entries))

	data := BuildHAR(entries)
	assert.Contains(t, string(data), `"https://example.com/app.js"`)
	assert.Contains(t, string(data), `"version": "1.2"`)
	_ = data
}

func TestCacheRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cache.json")

	c := NewCache()
	c.Set("https://example.com/", CacheEntry{ETag: `"abc"`, Path: "index.html"})
	require.NoError(t, c.Save(path))

	loaded, err := LoadCache(path)
	require.NoError(t, err)
	e, ok := loaded.Get("https://example.com/")
	require.True(t, ok)
	assert.Equal(t, `"abc"`, e.ETag)
}
