/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package httpd

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"dirpx.dev/cfx"
	"dirpx.dev/cfx/apis"
	"dirpx.dev/cfx/artifact"
)

func cfxSchema(r *http.Request) apis.Document {
	return cfx.GetSchema(r.Context())
}

func (s *Server) serveMeta(w http.ResponseWriter, r *http.Request, key string) {
	p := filepath.Join(s.root, key)
	if isFile(p) {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, artifact.ReadMeta(p))
}

func (s *Server) serveEntryNames(w http.ResponseWriter, r *http.Request, key string) {
	p := filepath.Join(s.root, key)
	if isFile(p) {
		http.NotFound(w, r)
		return
	}

	names := []string{}
	for _, e := range publicEntries(p) {
		name := strings.TrimSuffix(e.Name(), ".json")
		if e.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	sort.Strings(names)
	writeJSON(w, names)
}

func (s *Server) serveEntries(w http.ResponseWriter, r *http.Request, key string) {
	p := filepath.Join(s.root, key)
	if isFile(p) {
		http.NotFound(w, r)
		return
	}

	entries := []map[string]any{}
	for _, e := range publicEntries(p) {
		switch {
		case e.IsDir():
			entries = append(entries, map[string]any{
				"type":     "artifact",
				"name":     e.Name(),
				"nEntries": len(publicEntries(filepath.Join(p, e.Name()))),
			})
		case strings.HasSuffix(e.Name(), ".json"):
			entries = append(entries, map[string]any{
				"type": "value",
				"name": strings.TrimSuffix(e.Name(), ".json"),
			})
		default:
			var size int64
			if fi, err := e.Info(); err == nil {
				size = fi.Size()
			}
			entries = append(entries, map[string]any{
				"type": "file",
				"name": e.Name(),
				"size": size,
			})
		}
	}
	writeJSON(w, entries)
}

// serveFetch returns the entry at key in full: decoded JSON values, raw file
// bytes, or the whole tree for directories.
func (s *Server) serveFetch(w http.ResponseWriter, r *http.Request, key string) {
	p := filepath.Join(s.root, key)

	if v, ok := readValue(p); ok {
		writeJSON(w, map[string]any{"type": "value", "content": v})
		return
	}
	if isFile(p) {
		http.ServeFile(w, r, p)
		return
	}
	writeJSON(w, s.readTree(p))
}

// readTree renders a directory as a nested artifact document.
func (s *Server) readTree(p string) map[string]any {
	content := map[string]any{"_meta": artifact.ReadMeta(p)}
	for _, e := range publicEntries(p) {
		child := filepath.Join(p, e.Name())
		switch {
		case e.IsDir():
			content[e.Name()] = s.readTree(child)
		case strings.HasSuffix(e.Name(), ".json"):
			v, _ := readValue(strings.TrimSuffix(child, ".json"))
			content[strings.TrimSuffix(e.Name(), ".json")] = map[string]any{
				"type": "value", "content": v,
			}
		default:
			var size int64
			if fi, err := e.Info(); err == nil {
				size = fi.Size()
			}
			content[e.Name()] = map[string]any{
				"type": "file", "name": e.Name(), "size": size,
			}
		}
	}
	return map[string]any{"type": "artifact", "content": content}
}

// readValue decodes the JSON value file backing key p, if there is one.
func readValue(p string) (any, bool) {
	raw, err := os.ReadFile(p + ".json")
	if err != nil {
		return nil, false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false
	}
	return v, true
}

func publicEntries(p string) []os.DirEntry {
	ents, err := os.ReadDir(p)
	if err != nil {
		return nil
	}
	public := ents[:0]
	for _, e := range ents {
		if !strings.HasPrefix(e.Name(), "_") {
			public = append(public, e)
		}
	}
	return public
}

func isFile(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && !fi.IsDir()
}
