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

// Package cfx provides configuration-driven polymorphic construction.
//
// cfx resolves a nested, JSON-like configuration value into a concrete,
// typed instance, selecting the instance's runtime type dynamically from a
// "type" field embedded in the configuration itself. It underlies artifact
// construction (see the artifact package), where declarative configurations
// describe typed, file-backed computation results.
//
// # Design
//
// The core of cfx is a read-mostly global snapshot (state). The snapshot
// holds four things:
//
//   - Config: knobs that control construction and schema emission (the
//     override key, the root definition name, the schema dialect, pointer
//     unwrap depth).
//
//   - Registry: the default scope, a process-wide mapping from qualified
//     type names to constructible types. Types register as a side effect of
//     their own definition (an init-time Register call); registering two
//     distinct types under one name poisons that name with a conflict
//     record rather than letting either win.
//
//   - Constructor: a read-only object that answers "turn this configuration
//     into an instance". It normalizes the configuration (mapping or
//     attribute bag), applies the "type" override through a strategy chain
//     (direct type reference first, then name lookup in the current scope),
//     allocates the effective type bare, and attaches the remaining fields
//     as a read-only namespace. Ordinary initializers of the target type
//     never run; construction is the only path that produces instances.
//
//   - Emitter: produces a JSON-Schema document describing every registered
//     type's accepted configuration shape, one definition per name in the
//     current scope, recomputed on every call.
//
// All of these live inside a single immutable struct called state. The
// package holds an atomic pointer to the current state. Readers load that
// pointer, use it, and never mutate it. Writers build a brand-new state and
// atomically swap it in.
//
// # Scopes
//
// The default scope is process-wide and written during the single-threaded
// load phase. Independent execution contexts can each select a distinct
// universe of resolvable names without a lock:
//
//	ctx := cfx.WithScope(ctx, apis.Scope{...})
//	v, err := cfx.Construct(ctx, reflect.TypeOf(Widget{}), conf)
//
// The override fully replaces name resolution for that context (no merging)
// and has no effect on concurrently running contexts. Passing a nil scope
// clears the override.
//
// # Errors
//
// Name collisions never fail registration; they surface at construction
// time, and only for callers that resolve the conflicted name:
//
//   - construct.ErrNotResolvable: a string override names no scope entry.
//   - construct.ErrNameConflict: the resolved name was claimed by multiple
//     type definitions. Constructing either claimant by direct type
//     reference still works.
//
// Malformed top-level configuration values do not fail: they degrade to an
// empty configuration. This layer performs no schema validation; the
// emitted schema document exists for documentation and for external
// validators.
//
// # Concurrency model
//
// Reads (Construct, GetSchema, ScopeFrom, Registry, ...) are wait-free on
// the global state: they load the current *state atomically and never take
// locks. Registration mutates the default scope and is expected to run
// before concurrent construction begins. Writers (SetConfig, SetBuilder,
// SetRegistry, SetAll) take a short build mutex, assemble a brand-new state,
// and publish it via an atomic pointer swap.
//
// No operation in this package suspends, blocks, or performs I/O; every
// call is a pure, terminating computation over in-memory state.
package cfx
