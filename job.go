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

// CaptureJob is the immutable description of one mirror run.
type CaptureJob struct {
	Job     JobConfig
	Browser BrowserConfig
}

// queueItem is one URL waiting to be claimed and captured.
type queueItem struct {
	url   string
	depth int // remaining depth budget; 0 means do not follow further links
}
