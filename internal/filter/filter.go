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

// Package filter gates which discovered URLs are followed, downloaded,
// and saved.
package filter

import (
	"strings"

	"github.com/gobwas/glob"

	"github.com/agentberlin/smippo/internal/urlcanon"
)

// Config mirrors the enumerated URL/mime/size filtering options. Every
// option is a named field; there is no dynamic option bag.
type Config struct {
	Scope           urlcanon.Scope
	StayInDir       bool
	ExternalAssets  bool
	Include         []string
	Exclude         []string
	MimeInclude     []string
	MimeExclude     []string
	MaxSize         int64 // 0 = unbounded
	MinSize         int64
}

// Filter evaluates Config against candidate URLs. It is immutable and
// compiled after construction, so it is safe for concurrent use without
// its own lock.
type Filter struct {
	base string
	cfg  Config

	include []matcher
	exclude []matcher

	mimeInclude []mimeMatcher
	mimeExclude []mimeMatcher
}

type matcher struct {
	prefix string // used when the pattern has no '*'
	g      glob.Glob
}

func (m matcher) match(s string) bool {
	s = strings.ToLower(s)
	if m.g != nil {
		return m.g.Match(s)
	}
	return strings.HasPrefix(s, m.prefix)
}

type mimeMatcher struct {
	prefix string // "image/" for "image/*"
	exact  string // "application/json"
}

func (m mimeMatcher) match(primary string) bool {
	if m.prefix != "" {
		return strings.HasPrefix(primary, m.prefix)
	}
	return primary == m.exact
}

// New compiles cfg (HTTrack-style patterns: a pattern with no '*' matches
// as a case-insensitive prefix, otherwise as a glob) relative to the
// crawl's starting URL, base.
func New(base string, cfg Config) *Filter {
	f := &Filter{base: base, cfg: cfg}
	for _, p := range cfg.Include {
		f.include = append(f.include, compile(p))
	}
	for _, p := range cfg.Exclude {
		f.exclude = append(f.exclude, compile(p))
	}
	for _, p := range cfg.MimeInclude {
		f.mimeInclude = append(f.mimeInclude, compileMime(p))
	}
	for _, p := range cfg.MimeExclude {
		f.mimeExclude = append(f.mimeExclude, compileMime(p))
	}
	return f
}

func compile(pattern string) matcher {
	lower := strings.ToLower(pattern)
	if !strings.Contains(lower, "*") {
		return matcher{prefix: lower}
	}
	g, err := glob.Compile(lower)
	if err != nil {
		return matcher{prefix: lower}
	}
	return matcher{g: g}
}

func compileMime(pattern string) mimeMatcher {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if strings.HasSuffix(pattern, "/*") {
		return mimeMatcher{prefix: strings.TrimSuffix(pattern, "*")}
	}
	return mimeMatcher{exact: pattern}
}

func mimePrimary(mime string) string {
	mime = strings.ToLower(strings.TrimSpace(mime))
	if idx := strings.IndexByte(mime, ';'); idx >= 0 {
		mime = mime[:idx]
	}
	return strings.TrimSpace(mime)
}

// isExcluded reports whether raw matches any exclude pattern. Exclude
// always wins over include.
func (f *Filter) isExcluded(raw string) bool {
	for _, m := range f.exclude {
		if m.match(raw) {
			return true
		}
	}
	return false
}

func (f *Filter) isIncluded(raw string) bool {
	if len(f.include) == 0 {
		return true
	}
	for _, m := range f.include {
		if m.match(raw) {
			return true
		}
	}
	return false
}

// ShouldFollow reports whether a page link should be enqueued for
// crawling.
func (f *Filter) ShouldFollow(raw string) bool {
	if !urlcanon.InScope(raw, f.base, f.cfg.Scope, f.cfg.StayInDir) {
		return false
	}
	if f.isExcluded(raw) {
		return false
	}
	return f.isIncluded(raw)
}

// ShouldDownloadAsset reports whether an asset reference should be
// fetched at all, prior to any mime/size check.
func (f *Filter) ShouldDownloadAsset(raw string) bool {
	if f.cfg.ExternalAssets {
		return !f.isExcluded(raw)
	}
	return f.ShouldFollow(raw)
}

// ShouldSave reports whether a fetched resource should be written to
// disk, given its declared mime type and byte size.
func (f *Filter) ShouldSave(raw, mime string, size int64) bool {
	if !f.ShouldDownloadAsset(raw) {
		return false
	}
	if !f.mimePasses(mime) {
		return false
	}
	if f.cfg.MaxSize > 0 && size > f.cfg.MaxSize {
		return false
	}
	if size < f.cfg.MinSize {
		return false
	}
	return true
}

func (f *Filter) mimePasses(mime string) bool {
	primary := mimePrimary(mime)
	if primary == "" {
		return true
	}
	for _, m := range f.mimeExclude {
		if m.match(primary) {
			return false
		}
	}
	if len(f.mimeInclude) == 0 {
		return true
	}
	for _, m := range f.mimeInclude {
		if m.match(primary) {
			return true
		}
	}
	return false
}
