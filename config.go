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

package smippo

import (
	"time"

	"github.com/chromedp/cdproto/network"

	"github.com/agentberlin/smippo/internal/urlcanon"
)

// WaitStrategy names when the browser considers a navigation settled
// before the capture pipeline's own reveal/scroll passes begin.
type WaitStrategy string

const (
	WaitNetworkIdle       WaitStrategy = "networkidle"
	WaitLoad              WaitStrategy = "load"
	WaitDOMContentLoaded  WaitStrategy = "domcontentloaded"
)

// Viewport is the emulated browser viewport size.
type Viewport struct {
	Width  int
	Height int
}

// JobConfig is the crawl-scoped configuration for one run: every option
// named in the engine's accepted config list is a plain field, not an
// entry in a dynamic option bag.
type JobConfig struct {
	URL            string
	Output         string
	Depth          int // >= 0; 0 means only the start URL
	Scope          urlcanon.Scope
	StayInDir      bool
	ExternalAssets bool

	Include     []string
	Exclude     []string
	MimeInclude []string
	MimeExclude []string
	MaxSize     int64
	MinSize     int64

	Structure urlcanon.Layout

	Concurrency int
	MaxPages    int
	MaxTime     time.Duration
	RateLimit   time.Duration

	IgnoreRobots bool
	UseCache     bool

	// Update re-runs a previous mirror, issuing conditional requests
	// from the prior run's cache.json and reusing saved artifacts for
	// any URL the origin reports unchanged (304).
	Update bool

	// AppEngine routes robots.txt, sitemap, and conditional-GET requests
	// through App Engine's urlfetch service instead of a plain
	// net/http transport, for deployments where outbound sockets are
	// only permitted via that service.
	AppEngine bool
}

// BrowserConfig is the render-scoped configuration passed to
// internal/capture for every page.
type BrowserConfig struct {
	Wait      WaitStrategy
	WaitTime  time.Duration
	Timeout   time.Duration
	UserAgent string
	Viewport  Viewport
	Device    string
	Proxy     string
	Cookies   []*network.CookieParam
	Headers   map[string]string

	HAR          bool
	Screenshot   bool
	PDF          bool
	StripScripts bool
	InlineCSS    bool
}

// NewDefaultJobConfig returns the baseline JobConfig for url, matching
// the engine's documented defaults.
func NewDefaultJobConfig(url, output string) JobConfig {
	return JobConfig{
		URL:         url,
		Output:      output,
		Depth:       2,
		Scope:       urlcanon.ScopeSubdomain,
		Structure:   urlcanon.LayoutOriginal,
		Concurrency: 8,
		MaxPages:    0, // unbounded
		MaxTime:     0, // unbounded
	}
}

// NewDefaultBrowserConfig returns the baseline BrowserConfig.
func NewDefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		Wait:     WaitNetworkIdle,
		WaitTime: 500 * time.Millisecond,
		Timeout:  30 * time.Second,
		Viewport: Viewport{Width: 1366, Height: 768},
	}
}
