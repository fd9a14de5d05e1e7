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

package rewrite

import (
	"regexp"
)

var (
	urlFuncRe = regexp.MustCompile(`url\(\s*(['"]?)([^'")]+)\1\s*\)`)
	importRe  = regexp.MustCompile(`@import\s+(['"])([^'"]+)\1`)
)

// rewriteCSSURLs substitutes every url(...) and @import "..." target in
// css that resolves to a saved resource, rewriting it relative to
// pagePath (the file css itself will live at, once saved).
func rewriteCSSURLs(css, pageURL, pagePath string, m URLMap) string {
	css = urlFuncRe.ReplaceAllStringFunc(css, func(match string) string {
		sub := urlFuncRe.FindStringSubmatch(match)
		target := sub[2]
		if isSkippable(target) {
			return match
		}
		if rel, ok := resolveTarget(target, pageURL, pagePath, m); ok {
			return `url("` + rel + `")`
		}
		return match
	})
	css = importRe.ReplaceAllStringFunc(css, func(match string) string {
		sub := importRe.FindStringSubmatch(match)
		target := sub[2]
		if isSkippable(target) {
			return match
		}
		if rel, ok := resolveTarget(target, pageURL, pagePath, m); ok {
			return `@import "` + rel + `"`
		}
		return match
	})
	return css
}

// RewriteCSSFile re-processes a previously saved CSS file's contents,
// using its own saved path as the "page" path for relativizing targets.
func RewriteCSSFile(css, sourceURL, savedPath string, m URLMap) string {
	return rewriteCSSURLs(css, sourceURL, savedPath, m)
}
