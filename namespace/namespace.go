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

// Package namespace provides Namespace, a read-only, attribute-accessible
// view of a string-keyed mapping, and Namespacify, which recursively converts
// mappings and attribute bags inside JSON-like values to Namespaces.
package namespace

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	uconf "dirpx.dev/cfx/utils/conf"
)

// Namespace is an immutable string-keyed value container. It exposes no
// mutation: readers get values out, writers build a new one via New.
type Namespace struct {
	m map[string]any
}

// New builds a Namespace from a mapping, recursively converting nested
// mappings and attribute bags via Namespacify.
func New(m map[string]any) *Namespace {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = Namespacify(v)
	}
	return &Namespace{m: out}
}

// Namespacify recursively converts string-keyed mappings and attribute bags
// within v to *Namespace values. Sequences are rebuilt with converted
// elements; scalars (and any other leaf) are returned unchanged.
func Namespacify(v any) any {
	switch v.(type) {
	case nil, bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, string, reflect.Type, *Namespace:
		return v
	}

	if m, ok := uconf.Mapping(v); ok {
		return New(m)
	}
	if m, ok := uconf.Bag(v); ok {
		return New(m)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = Namespacify(rv.Index(i).Interface())
		}
		return out
	}

	return v
}

// Get returns the value bound to key.
func (n *Namespace) Get(key string) (any, bool) {
	v, ok := n.m[key]
	return v, ok
}

// Has reports whether key is present.
func (n *Namespace) Has(key string) bool {
	_, ok := n.m[key]
	return ok
}

// Keys returns the namespace's keys in sorted order.
func (n *Namespace) Keys() []string {
	keys := make([]string, 0, len(n.m))
	for k := range n.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of entries.
func (n *Namespace) Len() int {
	return len(n.m)
}

// String returns the string bound to key, if any.
func (n *Namespace) String(key string) (string, bool) {
	s, ok := n.m[key].(string)
	return s, ok
}

// Int returns the integer bound to key, if any. Values decoded from JSON
// arrive as float64 and are accepted when integral.
func (n *Namespace) Int(key string) (int64, bool) {
	switch v := n.m[key].(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	case float64:
		if v == float64(int64(v)) {
			return int64(v), true
		}
	}
	return 0, false
}

// Float returns the float bound to key, if any. Integer values widen.
func (n *Namespace) Float(key string) (float64, bool) {
	switch v := n.m[key].(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	if i, ok := n.Int(key); ok {
		return float64(i), true
	}
	return 0, false
}

// Bool returns the boolean bound to key, if any.
func (n *Namespace) Bool(key string) (bool, bool) {
	b, ok := n.m[key].(bool)
	return b, ok
}

// Slice returns the sequence bound to key, if any.
func (n *Namespace) Slice(key string) ([]any, bool) {
	s, ok := n.m[key].([]any)
	return s, ok
}

// Child returns the nested namespace bound to key, if any.
func (n *Namespace) Child(key string) (*Namespace, bool) {
	c, ok := n.m[key].(*Namespace)
	return c, ok
}

// Map returns a deep copy of the namespace as plain mappings. Mutating the
// result does not affect the namespace.
func (n *Namespace) Map() map[string]any {
	out := make(map[string]any, len(n.m))
	for k, v := range n.m {
		out[k] = denamespacify(v)
	}
	return out
}

// Equal reports deep equality of two namespaces.
func (n *Namespace) Equal(o *Namespace) bool {
	if n == nil || o == nil {
		return n == o
	}
	return reflect.DeepEqual(n.m, o.m)
}

// GoString renders the namespace as "Namespace(k=v, ...)" with sorted keys.
func (n *Namespace) GoString() string {
	var b strings.Builder
	b.WriteString("Namespace(")
	for i, k := range n.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", k, n.m[k])
	}
	b.WriteString(")")
	return b.String()
}

// denamespacify reverses Namespacify for Map.
func denamespacify(v any) any {
	switch t := v.(type) {
	case *Namespace:
		return t.Map()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = denamespacify(e)
		}
		return out
	default:
		return v
	}
}
