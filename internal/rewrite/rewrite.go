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

// Package rewrite rewrites a saved page's references so that they point
// at the relative locations of whatever was actually saved.
package rewrite

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/agentberlin/smippo/internal/urlcanon"
)

// URLMap is the subset of saver.URLMap the rewriter needs.
type URLMap interface {
	Lookup(url string) (string, bool)
}

var skipPrefixes = []string{"javascript:", "mailto:", "tel:", "data:", "blob:", "about:", "#"}

func isSkippable(raw string) bool {
	lower := strings.ToLower(strings.TrimSpace(raw))
	for _, p := range skipPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

var eventHandlerAttrs = []string{
	"onclick", "onload", "onerror", "onmouseover", "onmouseout",
	"onkeydown", "onkeyup", "onsubmit", "onchange", "onfocus", "onblur",
}

// Options controls optional rewrite behavior.
type Options struct {
	StripScripts bool

	// InlineCSS, when true, replaces <link rel="stylesheet"> tags whose
	// target LoadCSS can resolve with an inline <style> holding that
	// target's (already-rewritten) content, instead of leaving a
	// separate saved .css file referenced by href.
	InlineCSS bool
	LoadCSS   func(absoluteURL string) (string, bool)
}

// Rewrite rewrites html's references, resolved against the document's
// <base href> (or pageURL when it has none), using m to find each
// target's saved relative path. References with no saved target are left
// untouched.
func Rewrite(html, pageURL string, m URLMap, opts Options) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html, err
	}

	pagePath, _ := m.Lookup(pageURL)
	base := ResolveBaseHref(html, pageURL)

	if opts.InlineCSS && opts.LoadCSS != nil {
		doc.Find(`link[rel~="stylesheet"][href]`).Each(func(_ int, s *goquery.Selection) {
			href, ok := s.Attr("href")
			if !ok || isSkippable(href) {
				return
			}
			abs, ok := urlcanon.Resolve(base, href)
			if !ok {
				return
			}
			css, ok := opts.LoadCSS(abs)
			if !ok {
				return
			}
			s.ReplaceWithHtml("<style>" + css + "</style>")
		})
	}

	rewriteAttr := func(sel *goquery.Selection, attr string) {
		v, ok := sel.Attr(attr)
		if !ok || isSkippable(v) {
			return
		}
		if rel, ok := resolveTarget(v, base, pagePath, m); ok {
			sel.SetAttr(attr, rel)
		}
	}

	doc.Find("a[href], link[href]").Each(func(_ int, s *goquery.Selection) { rewriteAttr(s, "href") })
	doc.Find("script[src], img[src], iframe[src], audio[src], source[src]").Each(func(_ int, s *goquery.Selection) { rewriteAttr(s, "src") })
	doc.Find("object[data]").Each(func(_ int, s *goquery.Selection) { rewriteAttr(s, "data") })
	doc.Find("video[src], video[poster]").Each(func(_ int, s *goquery.Selection) {
		rewriteAttr(s, "src")
		rewriteAttr(s, "poster")
	})
	doc.Find("image, use, feImage").Each(func(_ int, s *goquery.Selection) {
		rewriteAttr(s, "href")
		rewriteAttr(s, "xlink:href")
	})
	doc.Find("img[srcset], source[srcset]").Each(func(_ int, s *goquery.Selection) {
		v, ok := s.Attr("srcset")
		if !ok {
			return
		}
		s.SetAttr("srcset", rewriteSrcset(v, base, pagePath, m))
	})
	doc.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		v, _ := s.Attr("style")
		s.SetAttr("style", rewriteCSSURLs(v, base, pagePath, m))
	})
	doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		s.SetText(rewriteCSSURLs(s.Text(), base, pagePath, m))
	})

	if opts.StripScripts {
		doc.Find("script").Remove()
		doc.Find(`link[rel="modulepreload"]`).Remove()
		for _, attr := range eventHandlerAttrs {
			doc.Find("[" + attr + "]").RemoveAttr(attr)
		}
	}

	return goquery.OuterHtml(doc.Selection)
}

// resolveTarget resolves raw against pageURL and, if it names something
// in m, returns a relative path from pagePath's directory to it.
func resolveTarget(raw, pageURL, pagePath string, m URLMap) (string, bool) {
	abs, ok := urlcanon.Resolve(pageURL, raw)
	if !ok {
		return "", false
	}

	candidates := []string{abs, strings.TrimSuffix(abs, "/")}
	if strings.HasSuffix(abs, "/") {
		candidates = append(candidates, abs+"index.html")
	}
	if idx := strings.IndexByte(abs, '?'); idx >= 0 {
		candidates = append(candidates, abs[:idx])
	}

	for _, c := range candidates {
		if target, ok := m.Lookup(c); ok {
			return relativize(pagePath, target), true
		}
	}
	return "", false
}

func relativize(fromFile, toFile string) string {
	rel, err := filepath.Rel(path.Dir(fromFile), toFile)
	if err != nil {
		rel = toFile
	}
	rel = filepathToSlash(rel)
	if !strings.HasPrefix(rel, ".") && !strings.HasPrefix(rel, "/") {
		rel = "./" + rel
	}
	return rel
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

func rewriteSrcset(value, pageURL, pagePath string, m URLMap) string {
	entries := strings.Split(value, ",")
	for i, entry := range entries {
		entry = strings.TrimSpace(entry)
		parts := strings.SplitN(entry, " ", 2)
		url := parts[0]
		if isSkippable(url) {
			continue
		}
		if rel, ok := resolveTarget(url, pageURL, pagePath, m); ok {
			if len(parts) == 2 {
				entries[i] = rel + " " + parts[1]
			} else {
				entries[i] = rel
			}
		} else {
			entries[i] = entry
		}
	}
	return strings.Join(entries, ", ")
}
