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
	"regexp"
	"strings"
)

// excludeRule names a category of noise resource sniffed responses skip
// saving, along with the reason recorded for diagnostics.
type excludeRule struct {
	category string
	reason   string
	pattern  *regexp.Regexp
}

func rule(category, reason, pattern string) excludeRule {
	return excludeRule{category: category, reason: reason, pattern: regexp.MustCompile("(?i)" + pattern)}
}

// excludeRules is the fixed table of noise resources omitted from
// saving: source maps, well-known probes, CDN telemetry, analytics and
// tag managers, social pixels, chat widgets, and generic
// beacon/collect/track endpoints.
var excludeRules = []excludeRule{
	rule("sourcemap", "source map", `\.map(\?|$)`),
	rule("wellknown", "well-known probe", `/\.well-known/`),
	rule("cdn-telemetry", "CDN telemetry", `cloudflareinsights\.com|cdn-cgi/(rum|trace)`),
	rule("analytics", "analytics/tag manager", `google-analytics\.com|googletagmanager\.com|gtag/js|segment\.(io|com)|mixpanel\.com|amplitude\.com|hotjar\.com|clarity\.ms|matomo\.(cloud|org)`),
	rule("social-pixel", "social pixel", `facebook\.com/tr|connect\.facebook\.net|ads-twitter\.com|analytics\.twitter\.com|linkedin\.com/px|pinterest\.com/ct|tiktok\.com/i18n/pixel`),
	rule("chat-widget", "chat widget", `intercom\.io|intercomcdn\.com|crisp\.chat|zdassets\.com|drift\.com|tawk\.to`),
	rule("ad-consent", "ad/consent/push", `doubleclick\.net|googlesyndication\.com|adservice\.google|onesignal\.com|cookiebot\.com|onetrust\.com|optimizely\.com`),
	rule("beacon", "generic beacon/collect/track endpoint", `/(beacon|collect|pixel|track|event|log)(/|\?|$)`),
	rule("api-noise", "api/graphql/webhook/socket endpoint", `/(graphql|webhook|socket\.io)(/|\?|$)`),
}

// ExcludeMatch reports whether raw matches the fixed exclude table and,
// if so, the category and human-readable reason.
func ExcludeMatch(raw string) (matched bool, category, reason string) {
	lower := strings.ToLower(raw)
	for _, r := range excludeRules {
		if r.pattern.MatchString(lower) {
			return true, r.category, r.reason
		}
	}
	return false, "", ""
}
