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

package builder

import (
	"dirpx.dev/cfx/apis"
	"dirpx.dev/cfx/construct"
	"dirpx.dev/cfx/registry"
	"dirpx.dev/cfx/schema"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRegistry builds and returns a new apis.Registry based on the provided
// configuration and pre-existing registry. If a pre-existing registry is
// provided, its bindings are carried over verbatim, conflict records
// included: a rebuild must not resurrect names that collisions already
// poisoned.
func (b *builder) BuildRegistry(cfg apis.Config, prev apis.Registry) apis.Registry {
	if prev == nil {
		return registry.New(cfg)
	}
	return registry.NewWithScope(cfg, prev.Scope())
}

// BuildConstructor builds and returns a new apis.Constructor based on the
// provided configuration. Overrides given as direct type references are
// tried before name lookup.
func (b *builder) BuildConstructor(cfg apis.Config) apis.Constructor {
	return construct.New(
		cfg,
		construct.NewTypeValueStrategy(cfg),
		construct.NewNameStrategy(),
	)
}

// BuildEmitter builds and returns a new apis.Emitter based on the provided
// configuration, using the default configuration-shape fragment derivation.
func (b *builder) BuildEmitter(cfg apis.Config) apis.Emitter {
	return schema.New(cfg, nil)
}
