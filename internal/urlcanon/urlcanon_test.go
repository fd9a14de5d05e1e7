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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStripsDefaultPortAndTrailingSlash(t *testing.T) {
	assert.Equal(t, "http://example.com/a", Normalize("http://example.com:80/a/"))
	assert.Equal(t, "https://example.com/a", Normalize("https://example.com:443/a/"))
	assert.Equal(t, "https://example.com/", Normalize("https://example.com/"))
}

func TestNormalizeSortsQueryPreservingDuplicates(t *testing.T) {
	got := Normalize("https://example.com/p?b=2&a=1&a=3")
	assert.Equal(t, "https://example.com/p?a=1&a=3&b=2", got)
}

func TestNormalizeDropsFragment(t *testing.T) {
	assert.Equal(t, "https://example.com/p", Normalize("https://example.com/p#section"))
}

func TestNormalizeUnparseableReturnsInput(t *testing.T) {
	assert.Equal(t, "::not a url::", Normalize("::not a url::"))
}

func TestInScopeSubdomain(t *testing.T) {
	assert.True(t, InScope("https://a.example.com/x", "https://a.example.com/", ScopeSubdomain, false))
	assert.False(t, InScope("https://b.example.com/x", "https://a.example.com/", ScopeSubdomain, false))
}

func TestInScopeDomainGeneralizesAcrossSubdomains(t *testing.T) {
	assert.True(t, InScope("https://b.example.com/x", "https://a.example.com/", ScopeDomain, false))
	assert.False(t, InScope("https://other.org/x", "https://a.example.com/", ScopeDomain, false))
}

func TestInScopeDomainHandlesFixedSecondLevelSuffixes(t *testing.T) {
	assert.True(t, InScope("https://shop.example.co.uk/x", "https://www.example.co.uk/", ScopeDomain, false))
	assert.False(t, InScope("https://example.co.uk/x", "https://other.co.uk/", ScopeDomain, false))
}

func TestInScopeStayInDir(t *testing.T) {
	assert.True(t, InScope("https://example.com/blog/post", "https://example.com/blog/", ScopeSubdomain, true))
	assert.False(t, InScope("https://example.com/other/post", "https://example.com/blog/", ScopeSubdomain, true))
}

func TestInScopeStayInDirTreatsFileBaseAsDirectory(t *testing.T) {
	// base path "/a/b" (no trailing slash) has directory prefix "/a/"
	assert.True(t, InScope("https://example.com/a/c", "https://example.com/a/b", ScopeSubdomain, true))
	assert.False(t, InScope("https://example.com/z/c", "https://example.com/a/b", ScopeSubdomain, true))
}

func TestClassifyAssetVsPage(t *testing.T) {
	assert.True(t, Classify("https://example.com/app.js"))
	assert.True(t, Classify("https://example.com/img/logo.png"))
	assert.True(t, Classify("https://example.com/app.js.map"))
	assert.False(t, Classify("https://example.com/about"))
	assert.False(t, Classify("https://example.com/about.html"))
}

func TestToPathRoot(t *testing.T) {
	assert.Equal(t, "example.com/index.html", ToPath("https://example.com/", LayoutOriginal))
}

func TestToPathExtensionless(t *testing.T) {
	assert.Equal(t, "example.com/about.html", ToPath("https://example.com/about", LayoutOriginal))
}

func TestToPathQueryGetsHashSuffix(t *testing.T) {
	p := ToPath("https://example.com/search?q=go", LayoutOriginal)
	assert.Regexp(t, `^example\.com/search-h[0-9a-f]{8}\.html$`, p)
}

func TestDeduplicateAppendsCounter(t *testing.T) {
	taken := map[string]bool{"a/b.html": true, "a/b-1.html": true}
	assert.Equal(t, "a/b-2.html", Deduplicate("a/b.html", taken))
}

func TestToPathFlatJoinsDirectoriesWithDashes(t *testing.T) {
	p := ToPath("https://example.com/blog/posts/my-post.html", LayoutFlat)
	assert.Equal(t, "blog-posts-my-post.html", p)
}

func TestToPathOriginalStripsLeadingWWW(t *testing.T) {
	assert.Equal(t, "example.com/about.html", ToPath("https://www.example.com/about", LayoutOriginal))
}

func TestToPathOriginalAndDomainDifferOnWWWHost(t *testing.T) {
	original := ToPath("https://www.example.com/about", LayoutOriginal)
	domain := ToPath("https://www.example.com/about", LayoutDomain)
	assert.NotEqual(t, original, domain)
	assert.Equal(t, "www.example.com/about.html", domain)
}
