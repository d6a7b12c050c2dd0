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

package construct

import (
	"fmt"
	"reflect"

	"dirpx.dev/cfx/apis"
	"dirpx.dev/cfx/namespace"
	uconf "dirpx.dev/cfx/utils/conf"
	uref "dirpx.dev/cfx/utils/reflect"
)

// New constructs an apis.Constructor that tries the given override
// strategies in order. Nil strategies are ignored. The returned constructor
// is safe for concurrent use provided strategies themselves are safe for
// concurrent TryResolve calls.
func New(cfg apis.Config, strategies ...apis.OverrideStrategy) apis.Constructor {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.OverrideStrategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return &constructor{cfg: cfg, strats: out}
}

// constructor is an immutable, order-preserving resolver over a set of
// override strategies.
type constructor struct {
	cfg    apis.Config
	strats []apis.OverrideStrategy
}

// Ensure constructor implements apis.Constructor.
var _ apis.Constructor = (*constructor)(nil)

// Construct resolves conf into an instance of requested, or of the type the
// configuration's override forwards to.
//
// The steps are:
//
//  1. Normalize conf into a canonical mapping (mapping copied, attribute bag
//     decoded, anything else treated as empty).
//  2. Remove the override value under cfg.TypeKey and run the strategies on
//     it in order. A value no strategy handles (bool, number, nil, nested
//     mapping, ...) leaves the requested type effective.
//  3. Allocate the effective type bare: no initializer of the target type
//     runs. Allocating a conflicted name fails.
//  4. Attach the remaining fields as a read-only namespace.
//
// Construction has no other side effects.
func (c *constructor) Construct(scope apis.Scope, requested reflect.Type, conf any) (any, error) {
	if requested == nil {
		return nil, ErrNilType
	}
	base, err := uref.Normalize(requested, c.cfg)
	if err != nil {
		return nil, err
	}
	effective := apis.Entry{Type: base}

	fields := uconf.Normalize(conf)
	override, present := fields[c.cfg.TypeKey]
	delete(fields, c.cfg.TypeKey)

	if present {
		for _, s := range c.strats {
			e, handled, err := s.TryResolve(override, scope)
			if err != nil {
				return nil, err
			}
			if handled {
				effective = e
				break
			}
		}
	}

	if effective.Conflicted() {
		return nil, &NameConflictError{Name: effective.Name, Claimants: effective.Conflict}
	}
	if effective.Type == nil {
		return nil, ErrNilType
	}

	inst := reflect.New(effective.Type).Interface()
	carrier, ok := inst.(apis.ConfCarrier)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotConfigurable, uref.Identity(effective.Type))
	}
	carrier.AttachConf(namespace.New(fields))
	return inst, nil
}
