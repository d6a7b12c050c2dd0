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

// Scope maps qualified type names to registry entries. A scope is the set of
// names that name-based construction can resolve; an override scope installed
// on an execution context fully replaces lookup, it is never merged with the
// default scope.
type Scope map[string]Entry

// Entry is a single scope binding: either a constructible type together with
// its configuration-shape descriptor, or a conflict record left behind when
// two distinct types claimed the same qualified name.
type Entry struct {
	// Name is the qualified name the entry is registered under.
	Name string
	// Type is the registered base type. Nil for conflict records.
	Type reflect.Type
	// Conf describes the accepted configuration shape of Type.
	Conf Conf
	// Conflict lists the identities of the types that claimed Name.
	// A non-empty slice marks the name unusable for name-based resolution;
	// the colliding types remain constructible by direct type reference.
	Conflict []string
}

// Conflicted reports whether the entry is a conflict record.
func (e Entry) Conflicted() bool {
	return len(e.Conflict) > 0
}

// IsZero reports whether the entry is the zero value (no binding).
func (e Entry) IsZero() bool {
	return e.Name == "" && e.Type == nil && len(e.Conflict) == 0
}

// Clone returns a shallow copy of the scope. Entries are value types, so the
// copy can be handed out without exposing registry internals.
func (s Scope) Clone() Scope {
	out := make(Scope, len(s))
	for name, e := range s {
		out[name] = e
	}
	return out
}
