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

package conf

import (
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Normalize converts a raw top-level configuration value into the canonical
// mutable mapping form.
//
// Normalization policy:
//   - string-keyed mappings -> shallow copy into a fresh map[string]any
//   - resolved namespaces (anything exposing Map() map[string]any) -> their
//     Map view, so a previously attached configuration round-trips
//   - attribute bags (structs, pointers to structs) -> field-by-field decode
//   - anything else -> empty map
//
// Only the outermost value is normalized; nested values are passed through
// unchanged. Malformed top-level values do not fail, they degrade to an
// empty configuration.
func Normalize(v any) map[string]any {
	if m, ok := Mapping(v); ok {
		return m
	}
	if m, ok := Bag(v); ok {
		return m
	}
	return map[string]any{}
}

// Mapping copies a string-keyed map value into a fresh map[string]any.
// The second return reports whether v was a string-keyed map. Values that
// expose a Map() view (resolved namespaces; this package cannot name the
// type without an import cycle) count as mappings.
func Mapping(v any) (map[string]any, bool) {
	if m, ok := v.(interface{ Map() map[string]any }); ok {
		return m.Map(), true
	}
	if m, ok := v.(map[string]any); ok {
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[k] = val
		}
		return out, true
	}

	// Other string-keyed map types (map[string]int, map[string]string, ...).
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// Bag decodes an attribute bag (a struct or pointer to struct) into a fresh
// map[string]any, one entry per exported field. Field names follow
// mapstructure tags when present. The second return reports whether v was an
// attribute bag.
func Bag(v any) (map[string]any, bool) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	out := map[string]any{}
	if err := mapstructure.Decode(v, &out); err != nil {
		return nil, false
	}
	return out, true
}
