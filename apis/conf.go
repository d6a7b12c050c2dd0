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

// Conf is a configuration-shape descriptor. It declares the fields a
// constructible type accepts in its configuration, purely for documentation
// and schema emission; it carries no runtime behavior. Descriptors are
// created once at registration time and are immutable thereafter.
type Conf struct {
	// Doc documents the type as a whole.
	Doc string
	// Fields maps accepted configuration field names to their specs.
	Fields map[string]Field
}

// Field describes a single accepted configuration field.
type Field struct {
	// Type is the JSON-Schema primitive type of the field
	// ("string", "integer", "number", "boolean", "array", "object").
	Type string
	// Doc documents the field.
	Doc string
	// Ref names another registered type the field's value must conform to.
	// When set it takes precedence over Type.
	Ref string
}

// ConfDeclarer is implemented by constructible types that declare their own
// configuration shape. Types that do not implement it get an empty descriptor
// synthesized at registration time.
type ConfDeclarer interface {
	// DeclareConf returns the type's configuration-shape descriptor.
	DeclareConf() Conf
}
