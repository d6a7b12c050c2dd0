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

// Package httpd serves a read-only JSON API over an artifact root directory,
// for dashboards and other tooling that watch computed assets.
//
// Endpoints:
//
//	/_schema              the schema document for the visible scope
//	/_meta                {"spec": null, "schema": <document>}
//	<path>/_meta          the tree's metadata record
//	<path>/_entry-names   sorted public entry names ("/"-suffixed for trees)
//	<path>/_entries       entry descriptors (kind, name, size)
//	<path>                a full fetch: value, raw file bytes, or tree
//
// Every response allows cross-origin access, so a dashboard served from
// anywhere can query a local daemon.
package httpd

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"
)

// Server handles artifact queries against a fixed root directory.
type Server struct {
	root string
	log  *slog.Logger
}

// New returns a server over the artifact root directory. A nil logger falls
// back to slog's default.
func New(root string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{root: root, log: log}
}

// Handler returns the server's handler chain: CORS, then request logging,
// then routing.
func (s *Server) Handler() http.Handler {
	return s.cors(s.logged(http.HandlerFunc(s.route)))
}

func (s *Server) route(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	key, ok := cleanKey(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	switch {
	case key == "_schema":
		writeJSON(w, cfxSchema(r))

	case key == "_meta":
		writeJSON(w, map[string]any{"spec": nil, "schema": cfxSchema(r)})

	case strings.HasSuffix(key, "/_meta"):
		s.serveMeta(w, r, strings.TrimSuffix(key, "/_meta"))

	case strings.HasSuffix(key, "/_entry-names"):
		s.serveEntryNames(w, r, strings.TrimSuffix(key, "/_entry-names"))

	case strings.HasSuffix(key, "/_entries"):
		s.serveEntries(w, r, strings.TrimSuffix(key, "/_entries"))

	default:
		s.serveFetch(w, r, key)
	}
}

// cors applies a permissive cross-origin policy and short-circuits
// preflight requests.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "*")
		h.Set("Access-Control-Allow-Headers", "*")
		h.Set("Access-Control-Max-Age", "600")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// logged records one line per request.
func (s *Server) logged(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// cleanKey turns a request path into a root-relative key, refusing paths
// that escape the root.
func cleanKey(p string) (string, bool) {
	key := strings.Trim(path.Clean("/"+p), "/")
	if key == ".." || strings.HasPrefix(key, "../") {
		return "", false
	}
	if key == "." {
		key = ""
	}
	return key, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	_ = enc.Encode(v)
}
