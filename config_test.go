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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentberlin/smippo/internal/urlcanon"
)

func TestNewDefaultJobConfig(t *testing.T) {
	job := NewDefaultJobConfig("https://example.com/", "./out")
	assert.Equal(t, "https://example.com/", job.URL)
	assert.Equal(t, urlcanon.ScopeSubdomain, job.Scope)
	assert.Equal(t, urlcanon.LayoutOriginal, job.Structure)
	assert.Equal(t, 8, job.Concurrency)
}

func TestNewDefaultBrowserConfig(t *testing.T) {
	b := NewDefaultBrowserConfig()
	assert.Equal(t, WaitNetworkIdle, b.Wait)
	assert.Equal(t, 1366, b.Viewport.Width)
}

func TestFilterConfigMapsJobConfig(t *testing.T) {
	job := NewDefaultJobConfig("https://example.com/", "./out")
	job.Include = []string{"https://example.com/blog"}
	cfg := filterConfig(job)
	assert.Equal(t, job.Scope, cfg.Scope)
	assert.Equal(t, job.Include, cfg.Include)
}

func TestCaptureConfigMapsWaitStrategy(t *testing.T) {
	for _, strategy := range []WaitStrategy{WaitLoad, WaitDOMContentLoaded, WaitNetworkIdle} {
		b := NewDefaultBrowserConfig()
		b.Wait = strategy
		cfg := captureConfig(b)
		assert.Equal(t, string(strategy), cfg.Wait)
	}
}
