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
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotResolvable is returned when a string type override names no
	// entry in the current scope.
	ErrNotResolvable = errors.New("cfx(construct): type name not resolvable in current scope")
	// ErrNameConflict is returned when construction targets a name that two
	// or more type definitions have claimed.
	ErrNameConflict = errors.New("cfx(construct): type name claimed by conflicting registrations")
	// ErrNotConfigurable is returned when the effective type does not embed
	// apis.Configurable and therefore cannot carry a configuration.
	ErrNotConfigurable = errors.New("cfx(construct): type does not embed apis.Configurable")
	// ErrNilType is returned when a nil requested type is provided.
	ErrNilType = errors.New("cfx(construct): nil requested type provided")
)

// NotResolvableError identifies the type name that resolved to nothing.
type NotResolvableError struct {
	// Name is the unresolved qualified name.
	Name string
}

func (e *NotResolvableError) Error() string {
	return fmt.Sprintf("cfx(construct): %q names no entry in the current scope", e.Name)
}

func (e *NotResolvableError) Is(target error) bool {
	return target == ErrNotResolvable
}

// NameConflictError identifies a qualified name claimed by multiple type
// definitions. Name-based resolution of the name is broken; the claimant
// types remain constructible by direct type reference.
type NameConflictError struct {
	// Name is the conflicted qualified name.
	Name string
	// Claimants are the identities of the types that claimed Name.
	Claimants []string
}

func (e *NameConflictError) Error() string {
	return fmt.Sprintf(
		"cfx(construct): %q was registered by multiple types (%s); construct by direct type reference instead",
		e.Name, strings.Join(e.Claimants, ", "),
	)
}

func (e *NameConflictError) Is(target error) bool {
	return target == ErrNameConflict
}
