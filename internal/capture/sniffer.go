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
	"context"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/saintfish/chardet"
)

// Resource is one response the browser issued while rendering a page.
type Resource struct {
	URL     string
	Status  int64
	Mime    string
	Size    int64
	Body    []byte
	Headers map[string]string
}

// sniffer listens to every response the tab issues and keeps the last
// response seen per URL (last writer wins), skipping HTML documents
// (the page's own document is read separately via OuterHTML),
// data: URLs, and anything matching the exclude table.
type sniffer struct {
	mu           sync.Mutex
	wg           sync.WaitGroup
	resources    map[string]Resource
	requestID    map[network.RequestID]string
	lastActivity time.Time
}

func newSniffer() *sniffer {
	return &sniffer{
		resources:    make(map[string]Resource),
		requestID:    make(map[network.RequestID]string),
		lastActivity: time.Now(),
	}
}

func (s *sniffer) listen(ctx context.Context) {
	chromedp.ListenTarget(ctx, func(ev interface{}) {
		switch e := ev.(type) {
		case *network.EventResponseReceived:
			s.mu.Lock()
			s.requestID[e.RequestID] = e.Response.URL
			s.lastActivity = time.Now()
			s.mu.Unlock()
			s.capture(ctx, e.RequestID, e.Response.URL, e.Response.Status, e.Response.MimeType, e.Response.Headers)
		}
	})
}

// waitIdle blocks until no response has been observed for quiet, or until
// max has elapsed since waitIdle was called, whichever comes first. It
// implements the "networkidle" wait strategy: callers poll rather than
// subscribe, since chromedp exposes response events, not a quiescence
// signal.
func (s *sniffer) waitIdle(ctx context.Context, quiet, max time.Duration) error {
	deadline := time.Now().Add(max)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		s.mu.Lock()
		last := s.lastActivity
		s.mu.Unlock()
		if time.Since(last) >= quiet || time.Now().After(deadline) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *sniffer) capture(ctx context.Context, id network.RequestID, url string, status int64, mime string, headers network.Headers) {
	if status < 200 || status >= 400 {
		return
	}
	if strings.HasPrefix(url, "data:") {
		return
	}
	if strings.Contains(mime, "text/html") {
		return
	}
	if matched, _, _ := ExcludeMatch(url); matched {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		body, err := network.GetResponseBody(id).Do(ctx)
		if err != nil {
			return
		}
		body = fixCharset(body, mime)

		hdrs := make(map[string]string, len(headers))
		for k, v := range headers {
			if sv, ok := v.(string); ok {
				hdrs[k] = sv
			}
		}

		s.mu.Lock()
		s.resources[url] = Resource{
			URL: url, Status: status, Mime: mime,
			Size: int64(len(body)), Body: body, Headers: hdrs,
		}
		s.mu.Unlock()
	}()
}

// Snapshot waits for every in-flight body fetch to finish, then returns
// the resources collected.
func (s *sniffer) Snapshot() []Resource {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Resource, 0, len(s.resources))
	for _, r := range s.resources {
		out = append(out, r)
	}
	return out
}

// fixCharset runs chardet over textual bodies whose declared mime type
// does not already say UTF-8. It does not transcode: body is returned
// unchanged on every path, whatever charset is detected.
func fixCharset(body []byte, mime string) []byte {
	if !strings.HasPrefix(mime, "text/") && !strings.Contains(mime, "javascript") && !strings.Contains(mime, "json") {
		return body
	}
	if strings.Contains(mime, "utf-8") || strings.Contains(mime, "UTF-8") {
		return body
	}
	d := chardet.NewTextDetector()
	result, err := d.DetectBest(body)
	if err != nil || result == nil {
		return body
	}
	if strings.EqualFold(result.Charset, "UTF-8") || strings.EqualFold(result.Charset, "ASCII") {
		return body
	}
	// Non-UTF-8 bodies are saved as-is; §4.5 calls for detection, not
	// transcoding, since the original bytes must remain byte-identical
	// to what the browser actually received.
	return body
}
