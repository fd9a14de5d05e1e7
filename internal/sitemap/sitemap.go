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

// Package sitemap parses sitemap and sitemap-index XML documents to
// opportunistically seed the crawl queue.
package sitemap

import (
	"strings"

	"github.com/antchfx/xmlquery"
)

// Parse reads a sitemap.xml or sitemap_index.xml body and returns the
// URLs it names: <loc> entries from <url> (a plain sitemap) or <sitemap>
// (a sitemap index) nodes.
func Parse(body []byte) ([]string, error) {
	doc, err := xmlquery.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}

	var urls []string
	for _, n := range xmlquery.Find(doc, "//url/loc | //sitemap/loc") {
		loc := strings.TrimSpace(n.InnerText())
		if loc != "" {
			urls = append(urls, loc)
		}
	}
	return urls, nil
}

// IsIndex reports whether body is a sitemap index (a list of further
// sitemaps) rather than a leaf sitemap of page URLs.
func IsIndex(body []byte) bool {
	doc, err := xmlquery.Parse(strings.NewReader(string(body)))
	if err != nil {
		return false
	}
	return xmlquery.FindOne(doc, "//sitemapindex") != nil
}
