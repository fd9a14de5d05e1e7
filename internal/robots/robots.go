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

// Package robots implements the per-origin robots.txt discipline: fetch
// once, memoize, answer IsAllowed/CrawlDelay/Sitemaps for the run's
// lifetime.
package robots

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// Fetcher retrieves a URL's body and status code. internal/fetch.Client
// satisfies this.
type Fetcher func(ctx context.Context, url string) ([]byte, int, error)

type state int

// The state machine per origin is Unseen -> Fetching -> {Parsed, Empty}.
// Unseen has no stored representation (absence from the map); the first
// caller to observe an origin inserts it as Fetching and is the only
// goroutine allowed to mutate it, until it closes ready and the origin
// becomes immutable.
const (
	stateFetching state = iota
	stateParsed
	stateEmpty
)

type origin struct {
	state state
	data  *robotstxt.RobotsData
	ready chan struct{} // closed once state leaves stateFetching
}

// Discipline answers robots.txt questions for a run, fetching each
// origin's robots.txt at most once.
type Discipline struct {
	userAgent string
	fetch     Fetcher
	enabled   bool

	mu      sync.Mutex
	origins map[string]*origin
}

// New returns a Discipline that fetches through fetch on first use of
// each origin. When enabled is false, IsAllowed always returns true and
// no fetch is ever issued.
func New(userAgent string, enabled bool, fetch Fetcher) *Discipline {
	return &Discipline{
		userAgent: userAgent,
		fetch:     fetch,
		enabled:   enabled,
		origins:   make(map[string]*origin),
	}
}

func originOf(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}
	return u.Scheme + "://" + u.Host, true
}

// load returns the origin's robotstxt state, fetching it at most once. A
// second caller that arrives while a fetch is already in flight blocks on
// the first caller's result rather than observing (and racing) a
// half-fetched origin.
func (d *Discipline) load(ctx context.Context, raw string) *origin {
	key, ok := originOf(raw)
	if !ok {
		empty := &origin{state: stateEmpty, ready: closedChan}
		return empty
	}

	d.mu.Lock()
	if o, found := d.origins[key]; found {
		d.mu.Unlock()
		<-o.ready
		return o
	}
	o := &origin{state: stateFetching, ready: make(chan struct{})}
	d.origins[key] = o
	d.mu.Unlock()

	body, status, err := d.fetch(ctx, key+"/robots.txt")
	if err != nil || status < 200 || status >= 300 {
		o.state = stateEmpty
		close(o.ready)
		return o
	}
	data, err := robotstxt.FromBytes(body)
	if err != nil {
		o.state = stateEmpty
		close(o.ready)
		return o
	}
	o.state = stateParsed
	o.data = data
	close(o.ready)
	return o
}

var closedChan = func() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}()

// IsAllowed reports whether raw may be fetched under this discipline's
// user agent.
func (d *Discipline) IsAllowed(ctx context.Context, raw string) bool {
	if !d.enabled {
		return true
	}
	o := d.load(ctx, raw)
	if o.state != stateParsed || o.data == nil {
		return true
	}
	group := o.data.FindGroup(d.userAgent)
	u, err := url.Parse(raw)
	if err != nil {
		return true
	}
	path := u.Path
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return group.Test(path)
}

// CrawlDelay returns the rule-provided crawl delay for raw's origin, or 0
// when none is specified.
func (d *Discipline) CrawlDelay(ctx context.Context, raw string) time.Duration {
	if !d.enabled {
		return 0
	}
	o := d.load(ctx, raw)
	if o.state != stateParsed || o.data == nil {
		return 0
	}
	group := o.data.FindGroup(d.userAgent)
	return group.CrawlDelay
}

// Sitemaps returns the sitemap URLs declared for raw's origin, if any.
func (d *Discipline) Sitemaps(ctx context.Context, raw string) []string {
	if !d.enabled {
		return nil
	}
	o := d.load(ctx, raw)
	if o.state != stateParsed || o.data == nil {
		return nil
	}
	return o.data.Sitemaps
}
