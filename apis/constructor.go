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

// Constructor resolves a raw configuration value into a typed instance.
// Implementations normalize the configuration, apply the type override
// against the supplied scope, allocate the effective type bare, and attach
// the remaining configuration as a read-only namespace.
type Constructor interface {
	// Construct builds an instance of requested (or of the type the
	// configuration's override forwards to) from conf. The returned value
	// is a pointer to the effective type.
	Construct(scope Scope, requested reflect.Type, conf any) (any, error)
}

// OverrideStrategy is a pluggable resolution step for the type-override
// value. A Constructor chains strategies in order (type value first, then
// name lookup); a value no strategy handles is treated as an absent override.
type OverrideStrategy interface {
	// TryResolve attempts to resolve the override value v against scope.
	// It returns (entry, true, nil) if handled, ("", false, nil) to fall
	// through, or an error to abort construction.
	TryResolve(v any, scope Scope) (Entry, bool, error)
}
