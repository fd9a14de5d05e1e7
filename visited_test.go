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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisitedSetClaimIsAtMostOnce(t *testing.T) {
	v := newVisitedSet()
	assert.True(t, v.Claim("https://example.com/"))
	assert.False(t, v.Claim("https://example.com/"))
}

func TestVisitedSetClaimIsRaceSafe(t *testing.T) {
	v := newVisitedSet()
	var wg sync.WaitGroup
	wins := make(chan bool, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wins <- v.Claim("https://example.com/race")
		}()
	}
	wg.Wait()
	close(wins)

	trueCount := 0
	for w := range wins {
		if w {
			trueCount++
		}
	}
	assert.Equal(t, 1, trueCount)
}

func TestVisitedSetSeedMarksAsClaimed(t *testing.T) {
	v := newVisitedSet()
	v.Seed("https://example.com/")
	assert.False(t, v.Claim("https://example.com/"))
	assert.Equal(t, 1, v.Count())
}
