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
	"net/url"
	"strings"

	"github.com/antchfx/htmlquery"
)

// ResolveBaseHref looks up html's <base href> via an XPath query (rather
// than a goquery selector, since this is the one lookup that reads more
// naturally in XPath form) and resolves it against pageURL. The result is
// not normalized, so a directory base keeps its trailing slash. It returns
// pageURL unchanged when no <base> is present or it fails to resolve.
func ResolveBaseHref(html, pageURL string) string {
	doc, err := htmlquery.Parse(strings.NewReader(html))
	if err != nil {
		return pageURL
	}
	node := htmlquery.FindOne(doc, "//base/@href")
	if node == nil {
		return pageURL
	}
	href := htmlquery.SelectAttr(node, "href")
	if href == "" {
		href = htmlquery.InnerText(node)
	}
	if href == "" {
		return pageURL
	}
	page, err := url.Parse(pageURL)
	if err != nil {
		return pageURL
	}
	resolved, err := page.Parse(href)
	if err != nil {
		return pageURL
	}
	return resolved.String()
}
