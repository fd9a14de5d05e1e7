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

package capture

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/agentberlin/smippo/internal/urlcanon"
)

// Links holds the page and asset URLs discovered in a captured document.
type Links struct {
	Pages  []string
	Assets []string
	All    []string
}

var skipSchemePrefixes = []string{"javascript:", "mailto:", "tel:", "data:", "blob:", "about:"}

func skippable(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "#" {
		return true
	}
	lower := strings.ToLower(raw)
	for _, p := range skipSchemePrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

// ExtractLinks parses html and resolves every candidate reference
// against pageURL, classifying each as a page or an asset and
// deduplicating by normalized URL.
func ExtractLinks(html, pageURL string) Links {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Links{}
	}

	seen := make(map[string]bool)
	var pages, assets []string
	add := func(raw string, forceAsset bool) {
		if skippable(raw) {
			return
		}
		abs, ok := urlcanon.Resolve(pageURL, raw)
		if !ok || !strings.HasPrefix(abs, "http") {
			return
		}
		if seen[abs] {
			return
		}
		seen[abs] = true
		if forceAsset || urlcanon.Classify(abs) {
			assets = append(assets, abs)
		} else {
			pages = append(pages, abs)
		}
	}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		add(href, false)
	})
	doc.Find(`link[href]`).Each(func(_ int, s *goquery.Selection) {
		rel, _ := s.Attr("rel")
		href, _ := s.Attr("href")
		relLower := strings.ToLower(rel)
		if strings.Contains(relLower, "stylesheet") || strings.Contains(relLower, "icon") ||
			strings.Contains(relLower, "preload") || strings.Contains(relLower, "prefetch") {
			add(href, true)
		} else if strings.Contains(relLower, "canonical") {
			add(href, false)
		}
	})
	doc.Find("script[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		add(src, true)
	})
	doc.Find("img[src], img[data-src]").Each(func(_ int, s *goquery.Selection) {
		if v, ok := s.Attr("src"); ok {
			add(v, true)
		}
		if v, ok := s.Attr("data-src"); ok {
			add(v, true)
		}
	})
	doc.Find("iframe[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		add(src, false) // iframes may point at pages worth capturing too
	})
	doc.Find("object[data]").Each(func(_ int, s *goquery.Selection) {
		v, _ := s.Attr("data")
		add(v, true)
	})
	doc.Find("img[srcset], source[srcset]").Each(func(_ int, s *goquery.Selection) {
		v, _ := s.Attr("srcset")
		for _, entry := range strings.Split(v, ",") {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			url := strings.SplitN(entry, " ", 2)[0]
			add(url, true)
		}
	})
	doc.Find("video[src], video[poster], audio[src], source[src]").Each(func(_ int, s *goquery.Selection) {
		if v, ok := s.Attr("src"); ok {
			add(v, true)
		}
		if v, ok := s.Attr("poster"); ok {
			add(v, true)
		}
	})
	doc.Find("image, use, feImage").Each(func(_ int, s *goquery.Selection) {
		if v, ok := s.Attr("href"); ok {
			add(v, true)
		}
		if v, ok := s.Attr("xlink:href"); ok {
			add(v, true)
		}
	})
	doc.Find(`meta[http-equiv]`).Each(func(_ int, s *goquery.Selection) {
		equiv, _ := s.Attr("http-equiv")
		if !strings.EqualFold(equiv, "refresh") {
			return
		}
		content, _ := s.Attr("content")
		if idx := strings.Index(strings.ToLower(content), "url="); idx >= 0 {
			add(strings.TrimSpace(content[idx+4:]), false)
		}
	})
	doc.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		v, _ := s.Attr("style")
		extractCSSURLs(v, add)
	})
	doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		extractCSSURLs(s.Text(), add)
	})

	all := make([]string, 0, len(pages)+len(assets))
	all = append(all, pages...)
	all = append(all, assets...)
	return Links{Pages: pages, Assets: assets, All: all}
}

func extractCSSURLs(css string, add func(string, bool)) {
	for _, token := range strings.Split(css, "url(") {
		if !strings.Contains(token, ")") {
			continue
		}
		inner := token[:strings.IndexByte(token, ')')]
		inner = strings.Trim(inner, ` '"`)
		if inner != "" {
			add(inner, true)
		}
	}
	for _, token := range strings.Split(css, "@import")[1:] {
		token = strings.TrimSpace(token)
		if token == "" || (token[0] != '"' && token[0] != '\'') {
			continue // the url(...) form is handled above
		}
		if end := strings.IndexByte(token[1:], token[0]); end >= 0 {
			add(token[1:1+end], true)
		}
	}
}
