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

package apis

import (
	"dirpx.dev/cfx/namespace"
)

// Configurable is the embeddable base of every constructible type. It carries
// the instance's sole attribute: the resolved, read-only configuration
// namespace. The configuration-driven constructor is the only path that
// produces instances; it allocates the bare value and attaches Conf, no other
// initialization runs.
//
// Configurable itself is registered under Config.RootDefinition and anchors
// the emitted schema document's root reference.
type Configurable struct {
	// Conf is the resolved configuration, with the type-override key removed.
	Conf *namespace.Namespace
}

// AttachConf assigns the resolved configuration namespace. It is called
// exactly once per instance, by the constructor.
func (c *Configurable) AttachConf(ns *namespace.Namespace) {
	c.Conf = ns
}

// ConfCarrier is satisfied by pointers to types embedding Configurable.
// The constructor rejects target types that do not carry it.
type ConfCarrier interface {
	AttachConf(ns *namespace.Namespace)
}
