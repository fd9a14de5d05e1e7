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

import "errors"

// Fixed error taxonomy. Per-resource and per-page errors are wrapped
// around these with fmt.Errorf("...: %w", ...) and folded into the
// manifest rather than aborting a run.
var (
	ErrForbiddenURL     = errors.New("smippo: url out of scope")
	ErrRobotsTxtBlocked = errors.New("smippo: blocked by robots.txt")
	ErrMaxDepth         = errors.New("smippo: max depth reached")
	ErrMaxPages         = errors.New("smippo: max pages reached")
	ErrMaxTime          = errors.New("smippo: max crawl time reached")
	ErrAlreadyVisited   = errors.New("smippo: url already visited")
	ErrCaptureTimeout   = errors.New("smippo: page capture timed out")
	ErrFilteredOut      = errors.New("smippo: resource filtered out")
)
