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

package schema_test

import (
	"reflect"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/cfx/apis"
	"dirpx.dev/cfx/config"
	"dirpx.dev/cfx/registry"
	"dirpx.dev/cfx/schema"
)

type Widget struct{ apis.Configurable }

func (Widget) DeclareConf() apis.Conf {
	return apis.Conf{
		Doc: "a widget",
		Fields: map[string]apis.Field{
			"size":  {Type: "integer", Doc: "widget size"},
			"inner": {Ref: "Gadget"},
		},
	}
}

type Gadget struct{ apis.Configurable }

func TestEmit_DocumentShape(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := registry.New(cfg)
	require.NoError(t, reg.Register(reflect.TypeOf(apis.Configurable{}), cfg.RootDefinition))
	require.NoError(t, reg.Register(reflect.TypeOf(Widget{}), "Widget"))
	require.NoError(t, reg.Register(reflect.TypeOf(Gadget{}), "Gadget"))

	emt := schema.New(cfg, nil)
	doc := emt.Emit(reg.Scope())

	assert.Equal(t, config.DefaultSchemaDialect, doc.Schema)
	assert.Equal(t, "#/definitions/Configurable", doc.Ref)

	// The definitions keys mirror the scope's names exactly.
	var got []string
	for name := range doc.Definitions {
		got = append(got, name)
	}
	sort.Strings(got)
	assert.Equal(t, []string{"Configurable", "Gadget", "Widget"}, got)
}

func TestEmit_RecomputesPerCall(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := registry.New(cfg)
	emt := schema.New(cfg, nil)

	doc := emt.Emit(reg.Scope())
	assert.Empty(t, doc.Definitions)

	// A registration after the first emission shows up in the next one.
	require.NoError(t, reg.Register(reflect.TypeOf(Gadget{}), "Gadget"))
	doc = emt.Emit(reg.Scope())
	assert.Contains(t, doc.Definitions, "Gadget")
}

func TestConfFragment_Fields(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := registry.New(cfg)
	require.NoError(t, reg.Register(reflect.TypeOf(Widget{}), "Widget"))
	require.NoError(t, reg.Register(reflect.TypeOf(Gadget{}), "Gadget"))
	scope := reg.Scope()

	frag := schema.ConfFragment("Widget", scope["Widget"], scope)
	assert.Equal(t, "object", frag["type"])
	assert.Equal(t, "a widget", frag["description"])

	props := frag["properties"].(map[string]any)
	size := props["size"].(map[string]any)
	assert.Equal(t, "integer", size["type"])
	assert.Equal(t, "widget size", size["description"])

	// Cross-references resolve through the supplied scope.
	inner := props["inner"].(map[string]any)
	assert.Equal(t, "#/definitions/Gadget", inner["$ref"])
}

func TestConfFragment_DanglingRefDegrades(t *testing.T) {
	scope := apis.Scope{}
	e := apis.Entry{
		Name: "W",
		Type: reflect.TypeOf(Widget{}),
		Conf: apis.Conf{Fields: map[string]apis.Field{"inner": {Ref: "Nope"}}},
	}

	frag := schema.ConfFragment("W", e, scope)
	inner := frag["properties"].(map[string]any)["inner"].(map[string]any)
	assert.NotContains(t, inner, "$ref")
	assert.Contains(t, inner["description"], "Nope")
}

func TestConfFragment_Conflict(t *testing.T) {
	e := apis.Entry{Name: "Widget", Conflict: []string{"a.Widget", "b.Widget"}}

	frag := schema.ConfFragment("Widget", e, apis.Scope{})
	assert.Contains(t, frag, "not")
	assert.Contains(t, frag["description"], "a.Widget")
	assert.Contains(t, frag["description"], "b.Widget")
}

func TestEmit_CustomFragmentFunc(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := registry.New(cfg)
	require.NoError(t, reg.Register(reflect.TypeOf(Gadget{}), "Gadget"))

	calls := 0
	emt := schema.New(cfg, func(name string, e apis.Entry, scope apis.Scope) apis.Fragment {
		calls++
		return apis.Fragment{"title": name}
	})

	doc := emt.Emit(reg.Scope())
	assert.Equal(t, 1, calls)
	assert.Equal(t, apis.Fragment{"title": "Gadget"}, doc.Definitions["Gadget"])
}
