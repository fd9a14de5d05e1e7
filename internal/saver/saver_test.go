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

package saver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentberlin/smippo/internal/urlcanon"
)

func TestSaveWritesFileAndRecordsURLMap(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, urlcanon.LayoutOriginal)

	rel, err := s.Save("https://example.com/a/b", []byte("hello"), "text/html")
	require.NoError(t, err)
	assert.Equal(t, "example.com/a/b.html", rel)

	data, err := os.ReadFile(filepath.Join(dir, rel))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	got, ok := s.Map.Lookup("https://example.com/a/b")
	require.True(t, ok)
	assert.Equal(t, rel, got)
}

func TestSaveFixesMismatchedExtension(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, urlcanon.LayoutOriginal)
	rel, err := s.Save("https://example.com/logo", []byte{0xff}, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "example.com/logo.png", rel)
}

func TestSaveTreatsJpgJpegAsEquivalent(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, urlcanon.LayoutOriginal)
	rel, err := s.Save("https://example.com/photo.jpeg", []byte{0xff}, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "example.com/photo.jpeg", rel)
}

func TestSaveDeduplicatesCollisions(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, urlcanon.LayoutOriginal)
	rel1, err := s.Save("https://example.com/a", []byte("1"), "text/html")
	require.NoError(t, err)
	rel2, err := s.Save("https://example.com/a.html", []byte("2"), "text/html")
	require.NoError(t, err)
	assert.NotEqual(t, rel1, rel2)
}

func TestSaveScreenshotUsesSiblingPath(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, urlcanon.LayoutOriginal)
	_, err := s.SaveHTML("https://example.com/page", "<html></html>")
	require.NoError(t, err)

	rel, err := s.SaveScreenshot("https://example.com/page", []byte{0x89, 'P', 'N', 'G'})
	require.NoError(t, err)
	assert.Equal(t, "example.com/page.png", rel)
}
