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

package registry

import (
	"context"

	"dirpx.dev/cfx/apis"
)

// key is an unexported type to prevent collisions with context keys from
// other packages.
type key struct{}

// scopeKey is the key for the scope override in a context.Context.
var scopeKey = key{}

// WithScope returns a context carrying s as the scope override. The override
// fully replaces name resolution for work derived from the returned context
// and has no effect on any other execution context. Passing nil installs a
// cleared override: lookups revert to the default scope.
func WithScope(ctx context.Context, s apis.Scope) context.Context {
	return context.WithValue(ctx, scopeKey, s)
}

// FromContext returns the scope override installed on ctx, or def when no
// override is installed (or it was cleared). Never fails.
func FromContext(ctx context.Context, def apis.Scope) apis.Scope {
	if ctx == nil {
		return def
	}
	if s, ok := ctx.Value(scopeKey).(apis.Scope); ok && s != nil {
		return s
	}
	return def
}
