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

import "reflect"

// Registry is the scope store: it owns the default scope and applies the
// registration protocol. Registration is expected to run during a
// single-threaded load phase; reads may be concurrent once loading is done.
type Registry interface {
	// Register inserts t into the default scope under the qualified name.
	// A second registration of a distinct type under an already-used name
	// replaces the binding with a conflict record; re-registering the same
	// type under the same name is idempotent. Collisions are not errors:
	// their cost is deferred to construction time.
	Register(t reflect.Type, name string) error
	// Lookup returns the entry bound to name, if any.
	Lookup(name string) (Entry, bool)
	// Scope returns a snapshot copy of the default scope.
	Scope() Scope
	// Count returns the number of bindings, conflict records included.
	Count() int
	// Reset clears all bindings.
	Reset()
}
