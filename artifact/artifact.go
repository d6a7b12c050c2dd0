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

// Package artifact provides Artifact, a value- and metadata-friendly view of
// a directory, built through the configuration-driven constructor.
//
// An artifact is a file tree plus a metadata record describing the spec it
// was built from. Types embedding Artifact become findable, buildable
// computed assets: Find locates (or builds) a tree matching a configuration,
// Ensure does the same at a fixed path, and Open views an existing tree.
//
// Entries inside an artifact come in three shapes: JSON value files
// ("<key>.json", read and written as decoded values), opaque files (read as
// paths, written by copying), and subdirectories (read and written as nested
// artifacts). Names starting with "_" are private and never listed.
package artifact

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"dirpx.dev/cfx/apis"
)

var (
	// ErrWantExtension is returned when a file copy targets a key without an
	// extension.
	ErrWantExtension = errors.New("artifact: copying a file requires a key with an extension")
	// ErrUnwantedExtension is returned when a value or subartifact write
	// targets a key with an extension.
	ErrUnwantedExtension = errors.New("artifact: value and subartifact keys must not carry an extension")
)

// File is the path of an opaque file inside or outside an artifact. Putting
// a File copies its bytes; getting a non-JSON file returns a File.
type File string

// Artifact is the embeddable base of every computed asset type. It carries
// the tree's location alongside the configuration inherited from
// apis.Configurable.
type Artifact struct {
	apis.Configurable

	// Path is the root of the file tree backing this artifact.
	Path string
}

// setPath and base are promoted into embedding types, which is what lets the
// construction helpers attach a location to any asset type and read its
// configuration back.
func (a *Artifact) setPath(p string) { a.Path = p }

func (a *Artifact) base() *Artifact { return a }

// Meta returns the tree's metadata record.
func (a *Artifact) Meta() Meta {
	return ReadMeta(a.Path)
}

// Keys lists the public entries of the tree in sorted order. JSON value
// files are listed without their extension. Private names (leading "_") and
// nonexistent trees yield nothing.
func (a *Artifact) Keys() []string {
	ents, err := os.ReadDir(a.Path)
	if err != nil {
		return nil
	}
	var keys []string
	for _, e := range ents {
		name := e.Name()
		if strings.HasPrefix(name, "_") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(keys)
	return keys
}

// Get returns the entry at key: the decoded value of "<key>.json" if it
// exists, the File path of an opaque file, or a (possibly empty) subartifact
// for anything else.
func (a *Artifact) Get(key string) (any, error) {
	p := filepath.Join(a.Path, key)

	if raw, err := os.ReadFile(p + ".json"); err == nil {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return v, nil
	}

	if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
		return File(p), nil
	}

	return &Artifact{Path: p}, nil
}

// Put writes the entry at key. Files copy, string-keyed mappings and
// artifacts become subartifacts, and any other value is stored as JSON.
func (a *Artifact) Put(key string, val any) error {
	p := filepath.Join(a.Path, key)

	switch v := val.(type) {
	case File:
		if filepath.Ext(key) == "" {
			return ErrWantExtension
		}
		return copyFile(p, string(v))

	case map[string]any:
		if filepath.Ext(key) != "" {
			return ErrUnwantedExtension
		}
		sub := &Artifact{Path: p}
		for k, e := range v {
			if err := sub.Put(k, e); err != nil {
				return err
			}
		}
		return nil

	case *Artifact:
		if filepath.Ext(key) != "" {
			return ErrUnwantedExtension
		}
		sub := &Artifact{Path: p}
		for _, k := range v.Keys() {
			e, err := v.Get(k)
			if err != nil {
				return err
			}
			if err := sub.Put(k, e); err != nil {
				return err
			}
		}
		return nil

	default:
		if filepath.Ext(key) != "" {
			return ErrUnwantedExtension
		}
		raw, err := json.Marshal(val)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(a.Path, 0o755); err != nil {
			return err
		}
		return os.WriteFile(p+".json", raw, 0o644)
	}
}

// Delete removes the entry at key, whichever shape it has. Deleting a
// missing entry is a no-op.
func (a *Artifact) Delete(key string) error {
	p := filepath.Join(a.Path, key)

	if err := os.Remove(p + ".json"); err == nil || !errors.Is(err, os.ErrNotExist) {
		return ignoreNotExist(err)
	}
	if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
		return os.Remove(p)
	}
	return os.RemoveAll(p)
}

func copyFile(dst, src string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func ignoreNotExist(err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
