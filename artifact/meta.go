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

package artifact

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// MetaFile is the name of the metadata record inside an artifact directory.
const MetaFile = "_meta.yaml"

// Build statuses recorded in the metadata file.
const (
	StatusRunning = "running"
	StatusDone    = "done"
	StatusStopped = "stopped"
)

// Meta is the per-artifact metadata record: the spec the tree was built from
// and the state its build ended in.
type Meta struct {
	// Spec is the build configuration plus the registered name of the type
	// that built the tree, under the type-override key.
	Spec map[string]any `yaml:"spec" json:"spec"`
	// Status is one of StatusRunning, StatusDone, or StatusStopped.
	Status string `yaml:"status" json:"status"`
}

// ReadMeta loads the metadata record of the artifact directory at dir.
// A missing or malformed record degrades to {Spec: nil, Status: done}: a tree
// without readable metadata is treated as a finished foreign tree, never an
// error.
func ReadMeta(dir string) Meta {
	raw, err := os.ReadFile(filepath.Join(dir, MetaFile))
	if err != nil {
		return Meta{Status: StatusDone}
	}
	var m Meta
	if err := yaml.Unmarshal(raw, &m); err != nil || m.Status == "" {
		return Meta{Status: StatusDone}
	}
	return m
}

// writeMeta stores the metadata record of the artifact directory at dir.
func writeMeta(dir string, m Meta) error {
	raw, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, MetaFile), raw, 0o644)
}
