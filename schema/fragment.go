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
	"fmt"
	"strings"

	"dirpx.dev/cfx/apis"
)

// ConfFragment is the default apis.FragmentFunc. It derives an object schema
// from the entry's configuration-shape descriptor. Fields with a Ref emit a
// "$ref" into the supplied scope's definitions; a Ref naming nothing in the
// scope degrades to a description, it never dangles.
//
// Conflicted entries still get a definition (the document's keys mirror the
// scope exactly) but one nothing validates against, mirroring the
// construction-time failure.
func ConfFragment(name string, e apis.Entry, scope apis.Scope) apis.Fragment {
	if e.Conflicted() {
		return apis.Fragment{
			"not": map[string]any{},
			"description": fmt.Sprintf(
				"%q was registered by multiple types: %s",
				name, strings.Join(e.Conflict, ", "),
			),
		}
	}

	props := map[string]any{}
	for fname, f := range e.Conf.Fields {
		props[fname] = fieldSchema(f, scope)
	}

	frag := apis.Fragment{
		"type":       "object",
		"properties": props,
	}
	if e.Conf.Doc != "" {
		frag["description"] = e.Conf.Doc
	}
	return frag
}

// fieldSchema derives the schema of a single declared field.
func fieldSchema(f apis.Field, scope apis.Scope) map[string]any {
	out := map[string]any{}
	switch {
	case f.Ref != "":
		if _, ok := scope[f.Ref]; ok {
			out["$ref"] = "#/definitions/" + f.Ref
		} else {
			out["description"] = fmt.Sprintf("reference to unregistered type %q", f.Ref)
		}
	case f.Type != "":
		out["type"] = f.Type
	}
	if f.Doc != "" {
		out["description"] = f.Doc
	}
	return out
}
