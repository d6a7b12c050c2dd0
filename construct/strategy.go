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
	"reflect"

	"dirpx.dev/cfx/apis"
	uref "dirpx.dev/cfx/utils/reflect"
)

// NewTypeValueStrategy creates an apis.OverrideStrategy handling overrides
// given as direct type references.
func NewTypeValueStrategy(cfg apis.Config) apis.OverrideStrategy {
	return &typeValueStrategy{cfg: cfg}
}

// typeValueStrategy is a fast path: an override that already is a
// reflect.Type (or a scope entry) needs no name resolution. Direct type
// references bypass the scope entirely, so they keep working for types whose
// name is conflicted.
type typeValueStrategy struct {
	cfg apis.Config
}

// Ensure typeValueStrategy implements apis.OverrideStrategy.
var _ apis.OverrideStrategy = (*typeValueStrategy)(nil)

// TryResolve handles reflect.Type and apis.Entry override values.
func (s *typeValueStrategy) TryResolve(v any, _ apis.Scope) (apis.Entry, bool, error) {
	switch t := v.(type) {
	case reflect.Type:
		b, err := uref.Normalize(t, s.cfg)
		if err != nil {
			return apis.Entry{}, false, err
		}
		return apis.Entry{Type: b}, true, nil
	case apis.Entry:
		return t, true, nil
	}
	return apis.Entry{}, false, nil
}

// NewNameStrategy creates an apis.OverrideStrategy resolving string
// overrides against the current scope.
func NewNameStrategy() apis.OverrideStrategy {
	return nameStrategy{}
}

// nameStrategy resolves qualified names. A missing name fails with
// NotResolvableError; a conflict record is handed back as-is, deferring the
// failure to allocation.
type nameStrategy struct{}

// Ensure nameStrategy implements apis.OverrideStrategy.
var _ apis.OverrideStrategy = nameStrategy{}

// TryResolve handles string override values.
func (nameStrategy) TryResolve(v any, scope apis.Scope) (apis.Entry, bool, error) {
	name, ok := v.(string)
	if !ok {
		return apis.Entry{}, false, nil
	}
	e, found := scope[name]
	if !found {
		return apis.Entry{}, false, &NotResolvableError{Name: name}
	}
	return e, true, nil
}
