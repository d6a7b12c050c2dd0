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

package apis

// Fragment is a JSON-Schema-compatible fragment describing one registered
// type's accepted configuration shape.
type Fragment map[string]any

// Document is the emitted schema document: a dialect identifier, one
// definition per name in the emitting scope, and a root reference pointing
// at the root constructible type's definition.
type Document struct {
	Schema      string              `json:"$schema"`
	Definitions map[string]Fragment `json:"definitions"`
	Ref         string              `json:"$ref"`
}

// Emitter produces a schema document for a scope. Emit recomputes the
// document on every call; the scope may have changed since the last one.
type Emitter interface {
	Emit(scope Scope) Document
}

// FragmentFunc derives the schema fragment for a single entry. The full
// scope is supplied so cross-references between registered types resolve.
// Implementations must be pure functions of their inputs.
type FragmentFunc func(name string, e Entry, scope Scope) Fragment
