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

package cfx

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"

	"dirpx.dev/cfx/apis"
	"dirpx.dev/cfx/builder"
	"dirpx.dev/cfx/config"
	"dirpx.dev/cfx/registry"
	uref "dirpx.dev/cfx/utils/reflect"
)

// init initializes the global cfx state.
func init() {
	// Initialize state with default cfg, reg, con, and emt.
	s := &state{cfg: config.DefaultConfig()}
	b := builder.New()
	s.reg = b.BuildRegistry(s.cfg, nil)
	s.con = b.BuildConstructor(s.cfg)
	s.emt = b.BuildEmitter(s.cfg)
	s.bld = b
	// Store the initial state atomically.
	st.Store(s)
	// The root constructible type anchors the schema document's "$ref".
	_ = s.reg.Register(reflect.TypeOf(apis.Configurable{}), s.cfg.RootDefinition)
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("cfx: builder returned nil registry")
	// ErrNilConstructor is returned when a builder returns a nil constructor.
	ErrNilConstructor = errors.New("cfx: builder returned nil constructor")
	// ErrNilEmitter is returned when a builder returns a nil emitter.
	ErrNilEmitter = errors.New("cfx: builder returned nil emitter")
)

// Register adds T to the default scope. When name is omitted, the qualified
// name is derived from T's declared type name. Registration is meant to run
// from the declaring package's load phase (an init function or a package
// level var), once per type definition.
//
// This is a convenience wrapper around the global reg.
func Register[T any](name ...string) error {
	t := reflect.TypeOf((*T)(nil)).Elem()
	n := ""
	if len(name) > 0 {
		n = name[0]
	}
	return RegisterType(t, n)
}

// RegisterType adds a type to the default scope under name, deriving the
// qualified name from t when name is empty.
// This is a convenience wrapper around the global reg.
func RegisterType(t reflect.Type, name string) error {
	s := st.Load()
	if name == "" {
		derived, err := QualifiedName(t)
		if err != nil {
			return err
		}
		name = derived
	}
	return s.reg.Register(t, name)
}

// QualifiedName derives the registry key for t: the declared type name with
// any generic instantiation suffix stripped.
func QualifiedName(t reflect.Type) (string, error) {
	s := st.Load()
	b, err := uref.Normalize(t, s.cfg)
	if err != nil {
		return "", err
	}
	return stripTypeParams(b.Name()), nil
}

// Construct resolves conf into an instance of requested, or of whatever type
// conf's "type" override forwards to. The scope consulted for name-based
// forwarding is the override installed on ctx, if any, else the default
// scope.
// This is a convenience wrapper around the global con.
func Construct(ctx context.Context, requested reflect.Type, conf any) (any, error) {
	s := st.Load()
	return s.con.Construct(registry.FromContext(ctx, s.reg.Scope()), requested, conf)
}

// As constructs from conf as Construct does, with T as the requested type,
// and asserts the result back to *T. Forwarding may select a type other than
// T; in that case As fails, since Go offers no subtype relation to fall back
// on. Callers expecting forwarding across types should use Construct.
func As[T any](ctx context.Context, conf any) (*T, error) {
	v, err := Construct(ctx, reflect.TypeOf((*T)(nil)).Elem(), conf)
	if err != nil {
		return nil, err
	}
	out, ok := v.(*T)
	if !ok {
		return nil, fmt.Errorf("cfx: conf forwarded construction to %T, which is not the requested type", v)
	}
	return out, nil
}

// GetSchema produces the schema document for the scope visible to ctx: one
// definition per registered name, recomputed on every call.
// This is a convenience wrapper around the global emt.
func GetSchema(ctx context.Context) apis.Document {
	s := st.Load()
	return s.emt.Emit(registry.FromContext(ctx, s.reg.Scope()))
}

// WithScope returns a context carrying scope as the override visible to work
// derived from it. Passing nil clears the override, reverting lookups to the
// default scope. Other execution contexts are unaffected.
func WithScope(ctx context.Context, scope apis.Scope) context.Context {
	return registry.WithScope(ctx, scope)
}

// ScopeFrom returns the scope visible to ctx: its override if one is
// installed, else a snapshot of the default scope. Never fails.
func ScopeFrom(ctx context.Context) apis.Scope {
	return registry.FromContext(ctx, st.Load().reg.Scope())
}

// Config returns the global cfx configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global cfx configuration to cfg.
// It rebuilds the global reg (migrating bindings), con, and emt using the
// new configuration.
// This is a convenience wrapper around the global state.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new reg, con, and emt based on the new cfg and old state.
	nreg := b.BuildRegistry(cfg, old.reg)
	ncon := b.BuildConstructor(cfg)
	nemt := b.BuildEmitter(cfg)

	// Ensure non-nil components.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if ncon == nil {
		panic(ErrNilConstructor)
	}
	if nemt == nil {
		panic(ErrNilEmitter)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg: cfg,
			reg: nreg,
			con: ncon,
			emt: nemt,
			bld: b,
		},
	)
}

// Registry returns the global cfx reg.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry sets the global cfx reg to reg. The con and emt are kept;
// they read the scope per call and need no rebuild.
// This is a convenience wrapper around the global state.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg: old.cfg,
			reg: reg,
			con: old.con,
			emt: old.emt,
			bld: old.bld,
		},
	)
}

// Constructor returns the global cfx con.
func Constructor() apis.Constructor {
	return st.Load().con
}

// Emitter returns the global cfx emt.
func Emitter() apis.Emitter {
	return st.Load().emt
}

// Builder returns the global cfx bld.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global cfx bld to b and rebuilds reg (migrating
// bindings), con, and emt with it.
// This is a convenience wrapper around the global state.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Build new reg, con, and emt based on the new bld and old state.
	nreg := b.BuildRegistry(old.cfg, old.reg)
	ncon := b.BuildConstructor(old.cfg)
	nemt := b.BuildEmitter(old.cfg)

	// Ensure non-nil components.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if ncon == nil {
		panic(ErrNilConstructor)
	}
	if nemt == nil {
		panic(ErrNilEmitter)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg: old.cfg,
			reg: nreg,
			con: ncon,
			emt: nemt,
			bld: b,
		},
	)
}

// SetAll explicitly sets all global cfx state components.
//
// Nil arguments leave the corresponding component to be rebuilt (reg, con,
// emt) or kept (cfg, bld). This is mainly used by tests to get a clean
// deterministic state between test cases.
func SetAll(cfg *apis.Config, reg apis.Registry, con apis.Constructor, emt apis.Emitter, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Configuration
	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}

	// Builder
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	// Registry
	nreg := reg
	if nreg == nil {
		nreg = nbld.BuildRegistry(ncfg, old.reg)
	}

	// Constructor
	ncon := con
	if ncon == nil {
		ncon = nbld.BuildConstructor(ncfg)
	}

	// Emitter
	nemt := emt
	if nemt == nil {
		nemt = nbld.BuildEmitter(ncfg)
	}

	// Ensure non-nil components.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if ncon == nil {
		panic(ErrNilConstructor)
	}
	if nemt == nil {
		panic(ErrNilEmitter)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg: ncfg,
			reg: nreg,
			con: ncon,
			emt: nemt,
			bld: nbld,
		},
	)
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global cfx state.
var st atomic.Pointer[state]

// state is the global cfx state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global cfx configuration.
	cfg apis.Config
	// reg is the global cfx reg (the default scope store).
	reg apis.Registry
	// con is the global cfx con.
	con apis.Constructor
	// emt is the global cfx emt.
	emt apis.Emitter
	// bld is the global cfx bld.
	bld apis.Builder
}
