// Copyright 2025 Agentic World, LLC (Sherin Thomas)
//
// This file includes modifications to code originally developed by Adam Tauber,
// licensed under the Apache License, Version 2.0.
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
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/agentberlin/smippo/internal/capture"
	"github.com/agentberlin/smippo/internal/fetch"
	"github.com/agentberlin/smippo/internal/filter"
	"github.com/agentberlin/smippo/internal/manifest"
	"github.com/agentberlin/smippo/internal/robots"
	"github.com/agentberlin/smippo/internal/rewrite"
	"github.com/agentberlin/smippo/internal/saver"
	"github.com/agentberlin/smippo/internal/sitemap"
	"github.com/agentberlin/smippo/internal/urlcanon"
)

const manifestDir = ".smippo"

// Crawler is the mirror engine's orchestrator: it owns the shared
// browser, the bounded worker pool, the visited set, the manifest, and
// the cache for one run.
type Crawler struct {
	job CaptureJob
	log Logger
	obs Observer

	filter   *filter.Filter
	robots   *robots.Discipline
	saver    *saver.Saver
	manifest *manifest.Manifest
	cache    *manifest.Cache
	visited  *visitedSet

	queue chan queueItem
	pool  *WorkerPool

	startedAt time.Time
	pageCount int64

	browserCtx    context.Context
	browserCancel context.CancelFunc

	harMu sync.Mutex
	har   []manifest.HAREntry

	wg sync.WaitGroup
}

// New builds a Crawler for job. It does not start capturing until Start
// is called.
func New(job CaptureJob, obs Observer, log Logger) (*Crawler, error) {
	if log == nil {
		log = defaultLogger()
	}
	if obs == nil {
		obs = NoopObserver{}
	}

	fetcher := newFetchClient(context.Background(), job)
	robotsDiscipline := robots.New(userAgentOrDefault(job.Browser.UserAgent), !job.Job.IgnoreRobots,
		func(ctx context.Context, url string) ([]byte, int, error) { return fetcher.Get(ctx, url) })

	c := &Crawler{
		job:     job,
		log:     log,
		obs:     obs,
		filter:  filter.New(job.Job.URL, filterConfig(job.Job)),
		robots:  robotsDiscipline,
		saver:   saver.New(job.Job.Output, job.Job.Structure),
		visited: newVisitedSet(),
		queue:   make(chan queueItem, 4096),
	}

	manifestPath := filepath.Join(job.Job.Output, manifestDir, "manifest.json")
	m, err := manifest.Load(manifestPath, time.Now())
	if err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}
	c.manifest = m

	if job.Job.UseCache || job.Job.Update {
		cachePath := filepath.Join(job.Job.Output, manifestDir, "cache.json")
		cache, err := manifest.LoadCache(cachePath)
		if err != nil {
			return nil, fmt.Errorf("load cache: %w", err)
		}
		c.cache = cache
	} else {
		c.cache = manifest.NewCache()
	}

	// An update run revisits prior pages to revalidate them, so only a
	// plain resume marks them as already visited.
	if !job.Job.Update {
		for url := range m.Pages {
			c.visited.Seed(url)
		}
	}

	return c, nil
}

// newFetchClient builds the plain-HTTP client used for robots.txt,
// sitemap, and conditional-GET requests, routing through App Engine's
// urlfetch transport when the job asks for it.
func newFetchClient(ctx context.Context, job CaptureJob) *fetch.Client {
	if job.Job.AppEngine {
		return fetch.NewAppengine(ctx, job.Browser.UserAgent)
	}
	return fetch.New(job.Browser.UserAgent)
}

func userAgentOrDefault(ua string) string {
	if ua == "" {
		return "smippo"
	}
	return ua
}

func filterConfig(j JobConfig) filter.Config {
	return filter.Config{
		Scope:          j.Scope,
		StayInDir:      j.StayInDir,
		ExternalAssets: j.ExternalAssets,
		Include:        j.Include,
		Exclude:        j.Exclude,
		MimeInclude:    j.MimeInclude,
		MimeExclude:    j.MimeExclude,
		MaxSize:        j.MaxSize,
		MinSize:        j.MinSize,
	}
}

// Start launches the worker pool, seeds the queue with the job's start
// URL (and, when robots discipline is enabled, any sitemap URLs it
// declares), then blocks until the crawl drains or ctx is canceled.
func (c *Crawler) Start(ctx context.Context) error {
	c.startedAt = time.Now()

	browserCtx, cancel := newBrowserAllocator(ctx, c.job.Browser)
	c.browserCtx = browserCtx
	c.browserCancel = cancel
	defer c.flush()
	defer cancel()

	concurrency := c.job.Job.Concurrency
	if concurrency <= 0 {
		concurrency = 8
	}
	c.pool = NewWorkerPool(ctx, concurrency, concurrency*4)

	var deadline <-chan time.Time
	if c.job.Job.MaxTime > 0 {
		timer := time.NewTimer(c.job.Job.MaxTime)
		defer timer.Stop()
		deadline = timer.C
	}

	start := urlcanon.Normalize(c.job.Job.URL)
	c.enqueue(start, c.job.Job.Depth)
	c.seedSitemaps(ctx, start)

	done := make(chan struct{})
	go func() {
		c.drain(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-deadline:
		c.log.Printf("max crawl time reached, draining")
	case <-ctx.Done():
	}

	c.pool.Close()
	c.wg.Wait()
	return ctx.Err()
}

func (c *Crawler) seedSitemaps(ctx context.Context, start string) {
	fetcher := newFetchClient(ctx, c.job)
	for _, sm := range c.robots.Sitemaps(ctx, start) {
		body, status, err := fetcher.Get(ctx, sm)
		if err != nil || status < 200 || status >= 300 {
			continue
		}
		urls, err := sitemap.Parse(body)
		if err != nil {
			continue
		}
		for _, u := range urls {
			c.enqueue(urlcanon.Normalize(u), c.job.Job.Depth)
		}
	}
}

// enqueue submits url at the given remaining depth budget to the queue
// and reports whether it was queued (false when the queue is full).
// Enqueue is idempotent: a worker rechecks the visited set at claim
// time, so the same URL may be enqueued more than once safely.
func (c *Crawler) enqueue(url string, depth int) bool {
	select {
	case c.queue <- queueItem{url: url, depth: depth}:
		return true
	default:
		c.log.Printf("queue full, dropping %s", url)
		return false
	}
}

// drain pulls items off the queue and submits them to the worker pool
// until every seeded and discovered item has been accounted for.
func (c *Crawler) drain(ctx context.Context) {
	pending := int64(len(c.queue)) // the start URL plus any sitemap seeds
	results := make(chan int, 4096)

	for pending > 0 {
		select {
		case item := <-c.queue:
			c.wg.Add(1)
			if err := c.pool.Submit(func() {
				defer c.wg.Done()
				n := c.processItem(ctx, item)
				results <- n
			}); err != nil {
				c.wg.Done()
				return
			}
		case n := <-results:
			pending += int64(n) - 1
		case <-ctx.Done():
			return
		}
	}
}

// processItem captures one queue item and returns how many new items it
// enqueued (so drain's pending counter stays accurate).
func (c *Crawler) processItem(ctx context.Context, item queueItem) int {
	url := urlcanon.Normalize(item.url)

	if c.job.Job.MaxPages > 0 && int(atomic.LoadInt64(&c.pageCount)) >= c.job.Job.MaxPages {
		return 0
	}
	if !c.visited.Claim(url) {
		return 0
	}
	if !c.filter.ShouldFollow(url) {
		return 0
	}
	if !c.robots.IsAllowed(ctx, url) {
		c.obs.OnError(url, ErrRobotsTxtBlocked)
		return 0
	}

	if delay := c.rateLimitDelay(ctx, url); delay > 0 {
		time.Sleep(delay)
	}

	if c.job.Job.Update && c.checkUnmodified(ctx, url) {
		c.manifest.Touch(url, time.Now())
		atomic.AddInt64(&c.pageCount, 1)
		c.obs.OnPageComplete(url, 0, 0)
		return 0
	}

	c.obs.OnPageStart(url)

	result, err := capture.Page(c.browserCtx, url, captureConfig(c.job.Browser))
	if err != nil {
		c.manifest.RecordError(url, err, time.Now())
		c.obs.OnError(url, err)
		return 0
	}

	c.saveResult(url, result)
	atomic.AddInt64(&c.pageCount, 1)
	c.obs.OnPageComplete(url, len(result.HTML), len(result.Links.All))

	newItems := 0
	if item.depth > 0 {
		for _, link := range result.Links.Pages {
			if c.enqueue(urlcanon.Normalize(link), item.depth-1) {
				newItems++
			}
		}
	}
	return newItems
}

// checkUnmodified issues a conditional GET against url's cached
// validators (if any) and reports whether the origin confirmed the
// prior capture is still current (304). It also refreshes the cache
// entry's validators from whatever response it got, so a later,
// non-cached call has something to condition on.
func (c *Crawler) checkUnmodified(ctx context.Context, url string) bool {
	prior, hadEntry := c.cache.Get(url)
	fetcher := newFetchClient(ctx, c.job)
	_, status, headers, err := fetcher.GetConditional(ctx, url, prior.ETag, prior.LastModified)
	if err != nil {
		return false
	}
	if status == http.StatusNotModified && hadEntry {
		return true
	}
	if headers != nil {
		c.cache.Set(url, manifest.CacheEntry{
			ETag: headers.Get("ETag"), LastModified: headers.Get("Last-Modified"), Path: prior.Path,
		})
	}
	return false
}

func (c *Crawler) rateLimitDelay(ctx context.Context, url string) time.Duration {
	delay := c.job.Job.RateLimit
	if d := c.robots.CrawlDelay(ctx, url); d > 0 {
		delay += d
	}
	return delay
}

// saveResult saves every sniffed resource that passes the filter, then
// the page's own rewritten HTML, recording everything in the manifest.
// One resource's save failure is recorded as an error and never aborts
// the page.
func (c *Crawler) saveResult(pageURL string, result *capture.Result) int {
	saved := 0
	var cssFiles []string

	if c.job.Browser.HAR {
		c.recordHAR(result.Resources)
	}

	for _, res := range result.Resources {
		if !c.filter.ShouldSave(res.URL, res.Mime, res.Size) {
			continue
		}
		rel, err := c.saver.Save(res.URL, res.Body, res.Mime)
		if err != nil {
			c.manifest.RecordError(res.URL, err, time.Now())
			c.obs.OnError(res.URL, err)
			continue
		}
		c.manifest.RecordResource(res.URL, manifest.ResourceEntry{
			URL: res.URL, Path: rel, Mime: res.Mime, Size: res.Size,
		})
		c.obs.OnAssetSave(res.URL, int(res.Size))
		saved++
		if filepath.Ext(rel) == ".css" {
			cssFiles = append(cssFiles, res.URL)
		}
	}

	for _, cssURL := range cssFiles {
		c.rewriteSavedCSS(cssURL)
	}

	opts := rewrite.Options{StripScripts: c.job.Browser.StripScripts}
	if c.job.Browser.InlineCSS {
		opts.InlineCSS = true
		opts.LoadCSS = func(absoluteURL string) (string, bool) {
			rel, ok := c.saver.Map.Lookup(absoluteURL)
			if !ok {
				return "", false
			}
			data, err := readFile(filepath.Join(c.job.Job.Output, filepath.FromSlash(rel)))
			if err != nil {
				return "", false
			}
			return string(data), true
		}
	}
	html, err := rewrite.Rewrite(result.HTML, result.FinalURL, c.saver.Map, opts)
	if err != nil {
		html = result.HTML
	}

	rel, err := c.saver.SaveHTML(pageURL, html)
	if err != nil {
		c.manifest.RecordError(pageURL, err, time.Now())
		c.obs.OnError(pageURL, err)
		return saved
	}
	c.manifest.RecordPage(pageURL, manifest.PageEntry{
		URL: pageURL, Path: rel, Title: result.Title,
		SavedAt: time.Now(), LinksFound: len(result.Links.All),
	})
	if c.job.Job.Update {
		entry, _ := c.cache.Get(pageURL)
		entry.Path = rel
		c.cache.Set(pageURL, entry)
	}

	if c.job.Browser.Screenshot && len(result.Screenshot) > 0 {
		c.saver.SaveScreenshot(pageURL, result.Screenshot)
	}
	if c.job.Browser.PDF && len(result.PDF) > 0 {
		c.saver.SavePDF(pageURL, result.PDF)
	}

	return saved + 1
}

// recordHAR appends one HAR entry per sniffed resource, for the run-wide
// network.har artifact written at flush.
func (c *Crawler) recordHAR(resources []capture.Resource) {
	c.harMu.Lock()
	defer c.harMu.Unlock()
	for _, res := range resources {
		c.har = append(c.har, manifest.HAREntry{
			URL: res.URL, Status: res.Status, Mime: res.Mime, Size: res.Size, Headers: res.Headers,
		})
	}
}

func (c *Crawler) rewriteSavedCSS(cssURL string) {
	rel, ok := c.saver.Map.Lookup(cssURL)
	if !ok {
		return
	}
	full := filepath.Join(c.job.Job.Output, filepath.FromSlash(rel))
	data, err := readFile(full)
	if err != nil {
		return
	}
	rewritten := rewrite.RewriteCSSFile(string(data), cssURL, rel, c.saver.Map)
	if rewritten != string(data) {
		_ = writeFile(full, []byte(rewritten))
	}
}

func captureConfig(b BrowserConfig) capture.Config {
	cfg := capture.DefaultConfig()
	if b.Timeout > 0 {
		cfg.Timeout = b.Timeout
	}
	if b.WaitTime > 0 {
		cfg.InitialWait = b.WaitTime
	}
	if b.Wait != "" {
		cfg.Wait = string(b.Wait)
	}
	cfg.UserAgent = b.UserAgent
	cfg.Device = b.Device
	cfg.ExtraHeaders = b.Headers
	cfg.Cookies = b.Cookies
	cfg.Screenshot = b.Screenshot
	cfg.PDF = b.PDF
	return cfg
}

// flush writes the final manifest and cache to disk.
func (c *Crawler) flush() {
	manifestPath := filepath.Join(c.job.Job.Output, manifestDir, "manifest.json")
	now := time.Now()
	c.manifest.Duration = now.Sub(c.startedAt)
	if err := c.manifest.Save(manifestPath, now); err != nil {
		c.log.Printf("save manifest: %v", err)
	}
	if c.job.Job.UseCache || c.job.Job.Update {
		cachePath := filepath.Join(c.job.Job.Output, manifestDir, "cache.json")
		if err := c.cache.Save(cachePath); err != nil {
			c.log.Printf("save cache: %v", err)
		}
	}
	if c.job.Browser.HAR {
		harPath := filepath.Join(c.job.Job.Output, manifestDir, "network.har")
		c.harMu.Lock()
		entries := c.har
		c.harMu.Unlock()
		if err := manifest.SaveHAR(harPath, entries); err != nil {
			c.log.Printf("save har: %v", err)
		}
	}
}
