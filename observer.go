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

// Observer receives progress events from a running Crawler. It is a
// narrow, fixed interface rather than a dynamic event emitter: a progress
// UI implements these four methods, and callers that need no events (the
// CLI passes nil) get NoopObserver.
type Observer interface {
	OnPageStart(url string)
	OnPageComplete(url string, size int, linksFound int)
	OnAssetSave(url string, size int)
	OnError(url string, err error)
}

// NoopObserver implements Observer with no-ops, for callers that don't
// need progress events.
type NoopObserver struct{}

func (NoopObserver) OnPageStart(string)                  {}
func (NoopObserver) OnPageComplete(string, int, int) {}
func (NoopObserver) OnAssetSave(string, int)             {}
func (NoopObserver) OnError(string, error)               {}
