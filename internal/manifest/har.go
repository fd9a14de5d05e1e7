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

package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// HAREntry is one response recorded during a run, in the shape the HAR
// writer needs. It deliberately omits response bodies: those are already
// on disk as saved resources, and a HAR file meant for network-panel
// inspection doesn't need to duplicate them.
type HAREntry struct {
	URL     string
	Status  int64
	Mime    string
	Size    int64
	Headers map[string]string
}

type harHeader struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type harRequest struct {
	Method  string      `json:"method"`
	URL     string      `json:"url"`
	Headers []harHeader `json:"headers"`
}

type harContent struct {
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
}

type harResponse struct {
	Status  int64       `json:"status"`
	Headers []harHeader `json:"headers"`
	Content harContent  `json:"content"`
}

type harEntryDoc struct {
	StartedDateTime string      `json:"startedDateTime"`
	Request         harRequest  `json:"request"`
	Response        harResponse `json:"response"`
}

type harCreator struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type harLog struct {
	Version string        `json:"version"`
	Creator harCreator    `json:"creator"`
	Entries []harEntryDoc `json:"entries"`
}

type harDoc struct {
	Log harLog `json:"log"`
}

// BuildHAR renders entries as a HAR 1.2 document. Timestamps are left
// blank (the format requires the field, but this run has no reliable
// per-request clock to stamp it with) rather than fabricated.
func BuildHAR(entries []HAREntry) []byte {
	doc := harDoc{Log: harLog{
		Version: "1.2",
		Creator: harCreator{Name: "smippo", Version: "0.1.0"},
	}}
	for _, e := range entries {
		headers := make([]harHeader, 0, len(e.Headers))
		for k, v := range e.Headers {
			headers = append(headers, harHeader{Name: k, Value: v})
		}
		doc.Log.Entries = append(doc.Log.Entries, harEntryDoc{
			Request:  harRequest{Method: "GET", URL: e.URL, Headers: headers},
			Response: harResponse{Status: e.Status, Headers: headers, Content: harContent{Size: e.Size, MimeType: e.Mime}},
		})
	}
	data, _ := json.MarshalIndent(doc, "", "  ")
	return data
}

// SaveHAR writes entries to path as a HAR document.
func SaveHAR(path string, entries []HAREntry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, BuildHAR(entries), 0o644)
}
