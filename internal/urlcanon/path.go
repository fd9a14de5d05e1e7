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

package urlcanon

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/kennygrant/sanitize"
)

// Layout controls how a host's pages are arranged on disk.
type Layout string

const (
	LayoutOriginal Layout = "original" // host/path/to/page.html
	LayoutFlat     Layout = "flat"     // everything under one directory
	LayoutDomain   Layout = "domain"   // host/path/to/page.html, keeping a leading "www."
)

// ToPath maps raw onto a relative, sanitized filesystem path under the
// given layout. It does not resolve collisions; callers that need
// collision-free paths call Deduplicate.
func ToPath(raw string, layout Layout) string {
	u, err := url.Parse(raw)
	if err != nil {
		return sanitizeComponents(strings.TrimPrefix(raw, "/"))
	}

	p := u.Path
	if p == "" || p == "/" {
		p = "/index.html"
	} else if strings.HasSuffix(p, "/") {
		p = p + "index.html"
	} else if path.Ext(p) == "" {
		p = p + ".html"
	}

	if u.RawQuery != "" {
		ext := path.Ext(p)
		base := strings.TrimSuffix(p, ext)
		p = fmt.Sprintf("%s-h%08x%s", base, uint32(xxhash.Sum64String(u.RawQuery)), ext)
	}

	switch layout {
	case LayoutFlat:
		flat := strings.ReplaceAll(strings.TrimPrefix(p, "/"), "/", "-")
		return sanitizeComponents(flat)
	case LayoutOriginal:
		full := path.Join(stripWWW(u.Hostname()), p)
		return sanitizeComponents(full)
	default: // domain
		full := path.Join(u.Hostname(), p)
		return sanitizeComponents(full)
	}
}

// stripWWW removes a leading "www." label, per the original layout's
// host_without_leading_www/ requirement.
func stripWWW(host string) string {
	return strings.TrimPrefix(host, "www.")
}

// sanitizeComponents sanitizes each path component independently and
// rejoins them, collapsing repeated separators and disallowing traversal.
func sanitizeComponents(p string) string {
	parts := strings.Split(p, "/")
	clean := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" || part == "." {
			continue
		}
		if part == ".." {
			part = "_"
		}
		s := sanitize.Path(part)
		s = strings.ReplaceAll(s, "/", "_")
		if len(s) > 200 {
			s = s[:200]
		}
		if s == "" {
			s = "_"
		}
		clean = append(clean, s)
	}
	return strings.Join(clean, "/")
}

// Deduplicate returns a collision-free variant of p given the set of
// already-assigned paths, appending "-N" before the extension as needed.
func Deduplicate(p string, taken map[string]bool) string {
	if !taken[p] {
		return p
	}
	ext := path.Ext(p)
	base := strings.TrimSuffix(p, ext)
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s-%d%s", base, n, ext)
		if !taken[candidate] {
			return candidate
		}
	}
}
