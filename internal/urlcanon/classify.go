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

import "strings"

// assetExtensions is the extension table shared by the filter and capture
// packages so "what counts as an asset" is decided in exactly one place.
var assetExtensions = map[string]bool{
	".css": true, ".js": true, ".mjs": true, ".cjs": true, ".map": true,
	".json": true, ".xml": true, ".txt": true,
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
	".svg": true, ".ico": true, ".bmp": true, ".avif": true,
	".woff": true, ".woff2": true, ".ttf": true, ".otf": true, ".eot": true,
	".mp4": true, ".webm": true, ".ogg": true, ".mp3": true, ".wav": true,
	".pdf": true, ".zip": true, ".gz": true, ".tar": true,
}

// Classify reports whether raw's path looks like an asset (true) or a page
// (false), based on its extension. Extensionless paths and .html/.htm are
// pages.
func Classify(raw string) (isAsset bool) {
	path := pathOf(raw)
	ext := extOf(path)
	if ext == "" || ext == ".html" || ext == ".htm" {
		return false
	}
	return assetExtensions[ext]
}

func pathOf(raw string) string {
	s := raw
	if idx := strings.IndexAny(s, "?#"); idx >= 0 {
		s = s[:idx]
	}
	if idx := strings.Index(s, "://"); idx >= 0 {
		s = s[idx+3:]
		if slash := strings.IndexByte(s, '/'); slash >= 0 {
			s = s[slash:]
		} else {
			s = "/"
		}
	}
	return s
}

func extOf(path string) string {
	last := path
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		last = path[idx+1:]
	}
	dot := strings.LastIndexByte(last, '.')
	if dot < 0 {
		return ""
	}
	return strings.ToLower(last[dot:])
}
