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

package schema

import (
	"dirpx.dev/cfx/apis"
)

// New constructs an apis.Emitter using fn to derive per-type fragments.
// A nil fn falls back to ConfFragment.
func New(cfg apis.Config, fn apis.FragmentFunc) apis.Emitter {
	if fn == nil {
		fn = ConfFragment
	}
	return &emitter{cfg: cfg, fn: fn}
}

// emitter walks a scope and produces one definition per registered name.
type emitter struct {
	cfg apis.Config
	fn  apis.FragmentFunc
}

// Ensure emitter implements apis.Emitter.
var _ apis.Emitter = (*emitter)(nil)

// Emit recomputes the document from scratch on every call; the scope may
// have changed since the previous one. No caching.
func (e *emitter) Emit(scope apis.Scope) apis.Document {
	defs := make(map[string]apis.Fragment, len(scope))
	for name, entry := range scope {
		defs[name] = e.fn(name, entry, scope)
	}
	return apis.Document{
		Schema:      e.cfg.SchemaDialect,
		Definitions: defs,
		Ref:         "#/definitions/" + e.cfg.RootDefinition,
	}
}
