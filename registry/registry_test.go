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

package registry_test

import (
	"reflect"
	"testing"

	"dirpx.dev/cfx/apis"
	"dirpx.dev/cfx/config"
	"dirpx.dev/cfx/registry"
)

type T1 struct{ apis.Configurable }
type T2 struct{ apis.Configurable }

// declared declares its own configuration shape.
type declared struct{ apis.Configurable }

func (declared) DeclareConf() apis.Conf {
	return apis.Conf{
		Doc: "a declared type",
		Fields: map[string]apis.Field{
			"x": {Type: "integer", Doc: "the x"},
		},
	}
}

func TestRegister_InsertAndLookup(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := registry.New(cfg)

	// pointer -> named base = T1
	if err := reg.Register(reflect.TypeOf(&T1{}), "domain.T1"); err != nil {
		t.Fatalf("Register(&T1{}): unexpected error: %v", err)
	}

	e, ok := reg.Lookup("domain.T1")
	if !ok {
		t.Fatalf("Lookup(domain.T1): not found")
	}
	if e.Type != reflect.TypeOf(T1{}) {
		t.Fatalf("Lookup(domain.T1): type = %v, want T1", e.Type)
	}
	if e.Name != "domain.T1" {
		t.Fatalf("Lookup(domain.T1): name = %q, want domain.T1", e.Name)
	}
	if e.Conflicted() {
		t.Fatalf("Lookup(domain.T1): unexpectedly conflicted")
	}
	if reg.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", reg.Count())
	}
}

func TestRegister_SynthesizedEmptyConf(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := registry.New(cfg)

	_ = reg.Register(reflect.TypeOf(T1{}), "T1")
	e, _ := reg.Lookup("T1")
	if e.Conf.Doc != "" || len(e.Conf.Fields) != 0 {
		t.Fatalf("Conf not empty: %+v", e.Conf)
	}
}

func TestRegister_DeclaredConf(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := registry.New(cfg)

	_ = reg.Register(reflect.TypeOf(declared{}), "declared")
	e, _ := reg.Lookup("declared")
	if e.Conf.Doc != "a declared type" {
		t.Fatalf("Conf.Doc = %q, want declared doc", e.Conf.Doc)
	}
	if f, ok := e.Conf.Fields["x"]; !ok || f.Type != "integer" {
		t.Fatalf("Conf.Fields[x] = %+v, want integer field", e.Conf.Fields["x"])
	}
}

func TestRegister_CollisionProtocol(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := registry.New(cfg)

	// Same type, same name: idempotent, still resolvable.
	_ = reg.Register(reflect.TypeOf(T1{}), "Widget")
	_ = reg.Register(reflect.TypeOf(&T1{}), "Widget")
	if e, _ := reg.Lookup("Widget"); e.Conflicted() {
		t.Fatalf("same-type re-registration must not conflict")
	}

	// Distinct type, same name: the binding becomes a conflict record.
	// Neither the first nor the second type wins.
	if err := reg.Register(reflect.TypeOf(T2{}), "Widget"); err != nil {
		t.Fatalf("colliding Register must not fail, got: %v", err)
	}
	e, ok := reg.Lookup("Widget")
	if !ok || !e.Conflicted() {
		t.Fatalf("Lookup(Widget) after collision: got %+v, want conflict record", e)
	}
	if e.Type != nil {
		t.Fatalf("conflict record must not carry a type, got %v", e.Type)
	}
	if len(e.Conflict) != 2 {
		t.Fatalf("conflict claimants = %v, want both identities", e.Conflict)
	}

	// Third registration under a conflicted name: sentinel stays.
	_ = reg.Register(reflect.TypeOf(T1{}), "Widget")
	if e, _ := reg.Lookup("Widget"); !e.Conflicted() {
		t.Fatalf("conflict record must be sticky")
	}

	// Count includes the conflict record.
	if reg.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", reg.Count())
	}
}

func TestRegister_Errors(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := registry.New(cfg)

	if err := reg.Register(nil, "x"); err != registry.ErrNilType {
		t.Fatalf("nil type: want ErrNilType, got %v", err)
	}
	if err := reg.Register(reflect.TypeOf(T1{}), ""); err != registry.ErrEmptyName {
		t.Fatalf("empty name: want ErrEmptyName, got %v", err)
	}
	// Anonymous struct: no name to normalize to.
	if err := reg.Register(reflect.TypeOf(struct{}{}), "anon"); err == nil {
		t.Fatalf("anonymous type: expected error")
	}
}

func TestScope_SnapshotIsolation(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := registry.New(cfg)

	_ = reg.Register(reflect.TypeOf(T1{}), "T1")
	snap := reg.Scope()
	delete(snap, "T1")
	snap["T2"] = apis.Entry{Name: "T2", Type: reflect.TypeOf(T2{})}

	if _, ok := reg.Lookup("T1"); !ok {
		t.Fatalf("mutating a snapshot must not affect the registry")
	}
	if _, ok := reg.Lookup("T2"); ok {
		t.Fatalf("mutating a snapshot must not affect the registry")
	}
}

func TestNewWithScope_CarriesConflicts(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := registry.New(cfg)
	_ = reg.Register(reflect.TypeOf(T1{}), "Widget")
	_ = reg.Register(reflect.TypeOf(T2{}), "Widget")
	_ = reg.Register(reflect.TypeOf(T1{}), "T1")

	moved := registry.NewWithScope(cfg, reg.Scope())
	if e, ok := moved.Lookup("Widget"); !ok || !e.Conflicted() {
		t.Fatalf("migration must carry conflict records, got %+v", e)
	}
	if e, ok := moved.Lookup("T1"); !ok || e.Type != reflect.TypeOf(T1{}) {
		t.Fatalf("migration must carry bindings, got %+v", e)
	}
}

func TestReset(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := registry.New(cfg)

	_ = reg.Register(reflect.TypeOf(T1{}), "T1")
	_ = reg.Register(reflect.TypeOf(T2{}), "T2")
	if reg.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", reg.Count())
	}

	reg.Reset()

	if reg.Count() != 0 {
		t.Fatalf("after Reset, Count() = %d, want 0", reg.Count())
	}
	if _, ok := reg.Lookup("T1"); ok {
		t.Fatalf("Lookup after Reset: want not found")
	}
}
