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

package smippo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentberlin/smippo/internal/manifest"
)

func TestCheckUnmodifiedReturnsTrueOnMatchingValidator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("If-None-Match") == `"v1"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		w.Write([]byte("page"))
	}))
	defer srv.Close()

	c := &Crawler{
		job:   CaptureJob{Job: NewDefaultJobConfig(srv.URL, "./out")},
		cache: manifest.NewCache(),
	}
	c.cache.Set(srv.URL, manifest.CacheEntry{ETag: `"v1"`, Path: "pages/index.html"})

	assert.True(t, c.checkUnmodified(context.Background(), srv.URL))
}

func TestCheckUnmodifiedReturnsFalseAndRefreshesValidatorsWhenChanged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("ETag", `"v2"`)
		w.Write([]byte("page"))
	}))
	defer srv.Close()

	c := &Crawler{
		job:   CaptureJob{Job: NewDefaultJobConfig(srv.URL, "./out")},
		cache: manifest.NewCache(),
	}
	c.cache.Set(srv.URL, manifest.CacheEntry{ETag: `"v1"`, Path: "pages/index.html"})

	assert.False(t, c.checkUnmodified(context.Background(), srv.URL))
	entry, ok := c.cache.Get(srv.URL)
	assert.True(t, ok)
	assert.Equal(t, `"v2"`, entry.ETag)
	assert.Equal(t, "pages/index.html", entry.Path, "path survives a validator refresh")
}

func TestCheckUnmodifiedReturnsFalseWithNoPriorEntry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("page"))
	}))
	defer srv.Close()

	c := &Crawler{
		job:   CaptureJob{Job: NewDefaultJobConfig(srv.URL, "./out")},
		cache: manifest.NewCache(),
	}

	assert.False(t, c.checkUnmodified(context.Background(), srv.URL))
}

func TestNewFetchClientUsesPlainTransportByDefault(t *testing.T) {
	job := CaptureJob{Job: NewDefaultJobConfig("https://example.com/", "./out")}
	client := newFetchClient(context.Background(), job)
	assert.NotNil(t, client.HTTP)
}
