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

// Package fetch provides the small plain-HTTP client used for fetching
// robots.txt and sitemap documents outside of the browser (the browser
// itself fetches pages and assets via internal/capture's response
// sniffer).
package fetch

import (
	"context"
	"io"
	"net/http"
	"time"
)

// Client fetches a URL and returns its body, status code, and any
// transport error.
type Client struct {
	HTTP      *http.Client
	UserAgent string
}

// New returns a Client with a bounded-timeout default transport.
func New(userAgent string) *Client {
	return &Client{
		HTTP:      &http.Client{Timeout: 15 * time.Second},
		UserAgent: userAgent,
	}
}

// NewAppengine returns a Client that issues requests through App Engine's
// urlfetch transport, for parity with environments where outbound sockets
// must go through that service.
func NewAppengine(ctx context.Context, userAgent string) *Client {
	return &Client{
		HTTP:      urlfetchClient(ctx),
		UserAgent: userAgent,
	}
}

// Get fetches url and returns its body bytes and status code. A non-2xx
// status is not itself an error; callers decide how to treat it.
func (c *Client) Get(ctx context.Context, url string) ([]byte, int, error) {
	body, status, _, err := c.do(ctx, url, "", "")
	return body, status, err
}

// GetConditional fetches url, setting If-None-Match/If-Modified-Since
// from etag/lastModified when they're non-empty. A 304 response carries
// no body; the caller checks the status, not len(body), to decide
// whether the cached copy is still valid.
func (c *Client) GetConditional(ctx context.Context, url, etag, lastModified string) ([]byte, int, http.Header, error) {
	return c.do(ctx, url, etag, lastModified)
}

func (c *Client) do(ctx context.Context, url, etag, lastModified string) ([]byte, int, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, nil, err
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}
	if lastModified != "" {
		req.Header.Set("If-Modified-Since", lastModified)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, 0, nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotModified {
		return nil, resp.StatusCode, resp.Header, nil
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, resp.StatusCode, resp.Header, err
	}
	return body, resp.StatusCode, resp.Header, nil
}
