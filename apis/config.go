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

// Config carries read-only construction and emission knobs.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// TypeKey is the configuration key whose value selects the effective
	// type during construction (the "type" override).
	TypeKey string

	// RootDefinition is the qualified name of the root constructible type.
	// The emitted schema document's "$ref" points at this definition.
	RootDefinition string

	// SchemaDialect is the fixed schema-dialect identifier emitted as the
	// document's "$schema" field.
	SchemaDialect string

	// MaxUnwrap limits pointer unwrapping depth when normalizing a
	// registered or requested type to its named base type.
	MaxUnwrap int
}
