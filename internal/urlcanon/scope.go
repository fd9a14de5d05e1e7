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
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Scope names the set of URLs a crawl is allowed to follow, relative to
// its starting URL.
type Scope string

const (
	ScopeSubdomain Scope = "subdomain"
	ScopeDomain    Scope = "domain"
	ScopeTLD       Scope = "tld"
	ScopeAll       Scope = "all"
)

// fixedSecondLevelSuffixes pins the four two-label public suffixes §4.1
// calls out explicitly; golang.org/x/net/publicsuffix covers the general
// case, including these, but tests pin these specific ones.
var fixedSecondLevelSuffixes = map[string]bool{
	"co.uk": true, "com.au": true, "co.nz": true, "org.uk": true,
}

// InScope reports whether candidate is within scope of base, honoring
// stayInDir when set.
func InScope(candidate, base string, scope Scope, stayInDir bool) bool {
	c, err1 := url.Parse(candidate)
	b, err2 := url.Parse(base)
	if err1 != nil || err2 != nil {
		return false
	}

	var ok bool
	switch scope {
	case ScopeAll:
		ok = true
	case ScopeTLD:
		ok = lastLabel(c.Hostname()) == lastLabel(b.Hostname())
	case ScopeDomain:
		ok = registrableDomain(c.Hostname()) == registrableDomain(b.Hostname())
	case ScopeSubdomain:
		fallthrough
	default:
		ok = c.Scheme == b.Scheme && c.Host == b.Host
	}
	if !ok {
		return false
	}

	if stayInDir {
		return strings.HasPrefix(c.Path, dirPrefix(b.Path))
	}
	return true
}

// dirPrefix returns the directory portion of p: everything up to and
// including its final '/'.
func dirPrefix(p string) string {
	if idx := strings.LastIndexByte(p, '/'); idx >= 0 {
		return p[:idx+1]
	}
	return "/"
}

func lastLabel(host string) string {
	host = strings.TrimSuffix(host, ".")
	if idx := strings.LastIndexByte(host, '.'); idx >= 0 {
		return host[idx+1:]
	}
	return host
}

// registrableDomain returns the host's registrable domain (eTLD+1),
// generalizing the fixed two-vs-three label rule via the public suffix
// list, with the four suffixes above pinned by test.
func registrableDomain(host string) string {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if dom, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return dom
	}
	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return host
	}
	last2 := strings.Join(labels[len(labels)-2:], ".")
	if fixedSecondLevelSuffixes[last2] && len(labels) >= 3 {
		return strings.Join(labels[len(labels)-3:], ".")
	}
	return last2
}
