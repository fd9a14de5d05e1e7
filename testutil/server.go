// Copyright 2025 Agentic World, LLC (Sherin Thomas)
//
// This file includes modifications to code originally developed by Adam Tauber,
// licensed under the Apache License, Version 2.0.
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

// Package testutil provides shared HTTP test fixtures for smippo tests:
// a small site with links, assets, a robots.txt, and a sitemap.
package testutil

import (
	"net/http"
	"net/http/httptest"
)

// Fixture HTML/CSS/robots bodies shared across package tests.
var (
	IndexHTML = []byte(`<!DOCTYPE html>
<html><head><link rel="stylesheet" href="/style.css"></head>
<body>
<h1>Home</h1>
<a href="/about">About</a>
<a href="/disallowed">Secret</a>
<img src="/logo.png">
</body></html>`)

	AboutHTML = []byte(`<!DOCTYPE html>
<html><body><h1>About</h1><a href="/">Home</a></body></html>`)

	StyleCSS = []byte(`body { background: url("bg.png"); }`)

	RobotsTxt = []byte("User-agent: *\nDisallow: /disallowed\nSitemap: /sitemap.xml\n")

	SitemapXML = []byte(`<?xml version="1.0"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>%s/about</loc></url>
</urlset>`)
)

// NewUnstartedTestServer returns an unstarted httptest.Server serving the
// fixture site above. Callers start it and substitute its URL into
// SitemapXML's %s placeholder as needed.
func NewUnstartedTestServer() *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write(IndexHTML)
	})
	mux.HandleFunc("/about", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write(AboutHTML)
	})
	mux.HandleFunc("/style.css", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/css")
		w.Write(StyleCSS)
	})
	mux.HandleFunc("/logo.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte{0x89, 'P', 'N', 'G'})
	})
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Write(RobotsTxt)
	})
	mux.HandleFunc("/disallowed", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body>should not be followed</body></html>`))
	})

	return httptest.NewUnstartedServer(mux)
}
