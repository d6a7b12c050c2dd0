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

package registry

import (
	"errors"
	"reflect"
	"sync"

	"dirpx.dev/cfx/apis"
	uref "dirpx.dev/cfx/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("cfx(registry): nil reflect.Type provided")
	// ErrEmptyName is returned when an empty name is provided.
	ErrEmptyName = errors.New("cfx(registry): empty name provided")
)

// New constructs a Registry holding an empty default scope.
// Only MaxUnwrap of cfg is used here.
func New(cfg apis.Config) apis.Registry {
	return &registry{cfg: cfg, m: apis.Scope{}}
}

// NewWithScope constructs a Registry pre-populated with the bindings of s,
// conflict records included. Used by builders migrating a previous registry.
func NewWithScope(cfg apis.Config, s apis.Scope) apis.Registry {
	return &registry{cfg: cfg, m: s.Clone()}
}

// registry is the default scope store. Writes happen during the
// single-threaded load phase; the mutex keeps snapshots consistent when
// reads and late registrations interleave anyway.
type registry struct {
	// cfg is the configuration used for type normalization.
	cfg apis.Config
	// mu guards m.
	mu sync.RWMutex
	// m is the default scope.
	m apis.Scope
}

// Register inserts the named base type of t into the default scope under
// name, applying the collision protocol:
//
//   - name absent           -> insert
//   - bound to same type    -> leave (idempotent)
//   - conflict record       -> leave (idempotent)
//   - bound to distinct type-> replace with a conflict record; both the
//     prior and the new type become unreachable by name
//
// A collision is not an error: its cost is paid at construction time, and
// only by callers that resolve the conflicted name. If t declares no
// configuration shape, an empty descriptor is synthesized.
func (r *registry) Register(t reflect.Type, name string) error {
	// Validate inputs early.
	if t == nil {
		return ErrNilType
	}
	if name == "" {
		return ErrEmptyName
	}

	// Normalize to the named base type according to r.cfg.
	b, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return err // ErrReflectTypeNotNamed (or nil sneaking past the guard)
	}

	conf := declaredConf(b)

	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.m[name]
	switch {
	case !ok:
		r.m[name] = apis.Entry{Name: name, Type: b, Conf: conf}
	case old.Conflicted():
		// Sentinel stays in place.
	case old.Type == b:
		// Same type re-registered under the same name.
	default:
		r.m[name] = apis.Entry{
			Name:     name,
			Conflict: []string{uref.Identity(old.Type), uref.Identity(b)},
		}
	}
	return nil
}

// Lookup returns the entry bound to name, if any.
func (r *registry) Lookup(name string) (apis.Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.m[name]
	return e, ok
}

// Scope returns a snapshot copy of the default scope. Mutating the returned
// scope does not affect the registry.
func (r *registry) Scope() apis.Scope {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.m.Clone()
}

// Count returns the number of bindings, conflict records included.
func (r *registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.m)
}

// Reset clears all bindings.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m = apis.Scope{}
}

// declaredConf returns the type's declared configuration shape, or a
// synthesized empty descriptor when it declares none. Checked on the pointer
// type so both receiver kinds are honored.
func declaredConf(t reflect.Type) apis.Conf {
	if d, ok := reflect.New(t).Interface().(apis.ConfDeclarer); ok {
		return d.DeclareConf()
	}
	return apis.Conf{}
}
