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

package artifact

import (
	"context"
)

// rootKey is the context key carrying the artifact root directory.
// Unexported so only WithRoot can install a value.
type rootKey struct{}

// DefaultRoot is the artifact search directory used when none is installed.
const DefaultRoot = "."

// WithRoot returns a context carrying dir as the artifact root directory for
// work derived from it. An empty dir clears the setting, reverting RootFrom
// to DefaultRoot.
func WithRoot(ctx context.Context, dir string) context.Context {
	if dir == "" {
		return context.WithValue(ctx, rootKey{}, nil)
	}
	return context.WithValue(ctx, rootKey{}, dir)
}

// RootFrom returns the artifact root directory visible to ctx. Never fails.
func RootFrom(ctx context.Context) string {
	if ctx == nil {
		return DefaultRoot
	}
	if dir, ok := ctx.Value(rootKey{}).(string); ok && dir != "" {
		return dir
	}
	return DefaultRoot
}
