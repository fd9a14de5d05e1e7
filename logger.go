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
	"log"
)

// Logger is the minimal logging surface the Crawler writes through.
// *log.Logger satisfies it, so callers can redirect or silence output
// with the standard library alone.
type Logger interface {
	Printf(format string, v ...interface{})
}

// defaultLogger returns a Logger writing to the standard library's
// default destination (os.Stderr), prefixed for this package.
func defaultLogger() Logger {
	return log.New(log.Writer(), "smippo: ", log.LstdFlags)
}
