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

package robots

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = "User-agent: *\nDisallow: /private\nCrawl-delay: 2\nSitemap: https://example.com/sitemap.xml\n"

func TestIsAllowedHonorsDisallow(t *testing.T) {
	calls := 0
	d := New("smippo", true, func(ctx context.Context, url string) ([]byte, int, error) {
		calls++
		return []byte(fixture), 200, nil
	})

	assert.True(t, d.IsAllowed(context.Background(), "https://example.com/public"))
	assert.False(t, d.IsAllowed(context.Background(), "https://example.com/private/x"))
	// second call for the same origin must not refetch
	d.IsAllowed(context.Background(), "https://example.com/other")
	require.Equal(t, 1, calls)
}

func TestMissingRobotsAllowsAll(t *testing.T) {
	d := New("smippo", true, func(ctx context.Context, url string) ([]byte, int, error) {
		return nil, 404, nil
	})
	assert.True(t, d.IsAllowed(context.Background(), "https://example.com/anything"))
}

func TestDisabledSkipsFetch(t *testing.T) {
	d := New("smippo", false, func(ctx context.Context, url string) ([]byte, int, error) {
		t.Fatal("fetch should not be called when disabled")
		return nil, 0, nil
	})
	assert.True(t, d.IsAllowed(context.Background(), "https://example.com/private"))
}

func TestConcurrentCallersOnNewOriginBlockUntilFetchCompletesAndFetchOnce(t *testing.T) {
	var calls int64
	var wg sync.WaitGroup
	d := New("smippo", true, func(ctx context.Context, url string) ([]byte, int, error) {
		atomic.AddInt64(&calls, 1)
		time.Sleep(20 * time.Millisecond) // simulate a slow fetch
		return []byte(fixture), 200, nil
	})

	results := make([]bool, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = d.IsAllowed(context.Background(), "https://example.com/private/x")
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, 1, calls)
	for _, allowed := range results {
		assert.False(t, allowed, "disallowed path must never be let through during the fetch window")
	}
}

func TestCrawlDelayAndSitemaps(t *testing.T) {
	d := New("smippo", true, func(ctx context.Context, url string) ([]byte, int, error) {
		return []byte(fixture), 200, nil
	})
	assert.Equal(t, 2, int(d.CrawlDelay(context.Background(), "https://example.com/").Seconds()))
	assert.Equal(t, []string{"https://example.com/sitemap.xml"}, d.Sitemaps(context.Background(), "https://example.com/"))
}
