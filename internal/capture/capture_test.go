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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtractLinksClassifiesPagesAndAssets(t *testing.T) {
	html := `<html><body>
		<a href="/about">about</a>
		<img src="/logo.png">
		<script src="/app.js"></script>
		<a href="javascript:void(0)">noop</a>
		<a href="mailto:a@b.com">mail</a>
	</body></html>`

	links := ExtractLinks(html, "https://example.com/")

	assert.Contains(t, links.Pages, "https://example.com/about")
	assert.Contains(t, links.Assets, "https://example.com/logo.png")
	assert.Contains(t, links.Assets, "https://example.com/app.js")
	assert.NotContains(t, links.All, "javascript:void(0)")
}

func TestExtractLinksDeduplicates(t *testing.T) {
	html := `<a href="/x">1</a><a href="/x">2</a>`
	links := ExtractLinks(html, "https://example.com/")
	assert.Len(t, links.Pages, 1)
}

func TestExtractLinksSrcset(t *testing.T) {
	html := `<img srcset="/a.png 1x, /b.png 2x">`
	links := ExtractLinks(html, "https://example.com/")
	assert.Contains(t, links.Assets, "https://example.com/a.png")
	assert.Contains(t, links.Assets, "https://example.com/b.png")
}

func TestExcludeMatchFlagsAnalytics(t *testing.T) {
	matched, category, _ := ExcludeMatch("https://www.google-analytics.com/collect")
	assert.True(t, matched)
	assert.Equal(t, "analytics", category)
}

func TestExcludeMatchLeavesOrdinaryAssetsAlone(t *testing.T) {
	matched, _, _ := ExcludeMatch("https://example.com/app.js")
	assert.False(t, matched)
}

func TestDefaultConfigHasSaneDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "networkidle", cfg.Wait)
	assert.Equal(t, "body", cfg.WaitReady)
	assert.Greater(t, cfg.ScrollStep, 0)
}

func TestDeviceByNameResolvesKnownProfile(t *testing.T) {
	d, ok := deviceByName("iphone-x")
	assert.True(t, ok)
	assert.NotEmpty(t, d.UserAgent)
}

func TestDeviceByNameRejectsUnknownProfile(t *testing.T) {
	_, ok := deviceByName("not-a-real-device")
	assert.False(t, ok)
}

func TestSnifferWaitIdleReturnsOnceQuiet(t *testing.T) {
	s := newSniffer()
	start := time.Now()
	err := s.waitIdle(context.Background(), 50*time.Millisecond, time.Second)
	assert.NoError(t, err)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestSnifferWaitIdleRespectsMaxWhenActivityNeverStops(t *testing.T) {
	s := newSniffer()
	stop := make(chan struct{})
	go func() {
		for {
			select {
			case <-stop:
				return
			default:
				s.mu.Lock()
				s.lastActivity = time.Now()
				s.mu.Unlock()
				time.Sleep(10 * time.Millisecond)
			}
		}
	}()
	defer close(stop)

	start := time.Now()
	err := s.waitIdle(context.Background(), 200*time.Millisecond, 100*time.Millisecond)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}
