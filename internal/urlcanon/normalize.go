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

// Package urlcanon normalizes crawl URLs, decides scope membership, and
// maps URLs onto local filesystem paths.
package urlcanon

import (
	"sort"
	"strings"

	whatwgUrl "github.com/nlnwa/whatwg-url/url"
)

var parser = whatwgUrl.NewParser()

// Normalize returns the canonical form of raw: absolute, default port
// stripped, query parameters sorted by name (duplicates preserved),
// fragment dropped, trailing slash stripped from any non-root path.
// A raw value that fails to parse is returned unchanged.
func Normalize(raw string) string {
	u, err := parser.Parse(raw)
	if err != nil {
		return raw
	}

	host := u.Hostname()
	port := u.Port()
	scheme := u.Scheme()
	if isDefaultPort(scheme, port) {
		port = ""
	}

	path := u.Pathname()
	if path != "/" {
		path = strings.TrimSuffix(path, "/")
	}
	if path == "" {
		path = "/"
	}

	query := sortQuery(u.Search())

	var b strings.Builder
	b.WriteString(scheme)
	b.WriteString("://")
	b.WriteString(host)
	if port != "" {
		b.WriteString(":")
		b.WriteString(port)
	}
	b.WriteString(path)
	if query != "" {
		b.WriteString("?")
		b.WriteString(query)
	}
	return b.String()
}

func isDefaultPort(scheme, port string) bool {
	switch scheme {
	case "http":
		return port == "80"
	case "https":
		return port == "443"
	}
	return false
}

// sortQuery sorts the query string (without its leading '?') by parameter
// name, preserving duplicate keys and their relative order within a key.
func sortQuery(search string) string {
	search = strings.TrimPrefix(search, "?")
	if search == "" {
		return ""
	}
	pairs := strings.Split(search, "&")
	sort.SliceStable(pairs, func(i, j int) bool {
		return queryName(pairs[i]) < queryName(pairs[j])
	})
	return strings.Join(pairs, "&")
}

func queryName(pair string) string {
	if idx := strings.IndexByte(pair, '='); idx >= 0 {
		return pair[:idx]
	}
	return pair
}

// Resolve resolves ref against base and returns its normalized form. If
// ref cannot be resolved against base, ok is false.
func Resolve(base, ref string) (resolved string, ok bool) {
	baseURL, err := parser.Parse(base)
	if err != nil {
		return "", false
	}
	target, err := parser.ParseRef(baseURL, ref)
	if err != nil {
		return "", false
	}
	return Normalize(target.Href(false)), true
}
