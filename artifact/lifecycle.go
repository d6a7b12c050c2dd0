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
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"time"

	"github.com/google/go-cmp/cmp"

	"dirpx.dev/cfx"
	"dirpx.dev/cfx/apis"
)

var (
	// ErrIsFile is returned when an artifact path points at a regular file.
	ErrIsFile = errors.New("artifact: path is a file")
	// ErrIncompatible is returned when a fixed path holds a tree built from a
	// different spec.
	ErrIncompatible = errors.New("artifact: existing tree has an incompatible spec")
	// ErrStopped is returned when a fixed path holds a tree whose build was
	// stopped before finishing.
	ErrStopped = errors.New("artifact: existing tree was stopped mid-build")
	// ErrNotArtifact is returned when construction yields a type that does
	// not embed Artifact.
	ErrNotArtifact = errors.New("artifact: constructed type does not embed Artifact")
	// ErrUnidentified is returned when a type has no name in the visible
	// scope.
	ErrUnidentified = errors.New("artifact: type has no name in scope")
)

// Builder is implemented by asset types whose trees are computed. Build runs
// once, after the tree's directory and running metadata exist; its error
// stops the build and is recorded in the metadata.
type Builder interface {
	Build(ctx context.Context) error
}

// carrier is the promoted method set every type embedding Artifact has.
type carrier interface {
	setPath(string)
	base() *Artifact
}

// Ensure Artifact itself carries the full method set construction relies on.
var _ carrier = (*Artifact)(nil)

// statusPoll is how often a running tree's metadata is re-read while waiting
// for another process's build to settle.
const statusPoll = 10 * time.Millisecond

// Open returns an artifact view of the tree at path, constructing the type
// its metadata records (or a plain Artifact when there is none). The tree
// need not exist; a missing path is an empty artifact.
func Open(ctx context.Context, path string) (any, error) {
	if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsFile, path)
	}

	var conf any
	if m := ReadMeta(path); m.Spec != nil {
		conf = m.Spec
	}
	v, err := construct(ctx, conf)
	if err != nil {
		return nil, err
	}
	v.setPath(path)
	return v, nil
}

// Find returns an artifact of the type and configuration described by conf,
// searching the root directory for a finished tree built from the same spec
// and building a new tree at a fresh path when none exists.
func Find(ctx context.Context, conf any) (any, error) {
	v, err := construct(ctx, conf)
	if err != nil {
		return nil, err
	}
	sp, err := buildSpec(ctx, v)
	if err != nil {
		return nil, err
	}

	root := RootFrom(ctx)
	ents, _ := os.ReadDir(root)
	for _, e := range ents {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(root, e.Name())
		m := ReadMeta(dir)
		if !specEqual(m.Spec, sp) {
			continue
		}
		m, err = awaitSettled(ctx, dir, m)
		if err != nil {
			return nil, err
		}
		if m.Status == StatusDone {
			v.setPath(dir)
			return v, nil
		}
	}

	dst, err := freshPath(root, fmt.Sprint(sp[cfx.Config().TypeKey]))
	if err != nil {
		return nil, err
	}
	v.setPath(dst)
	if err := build(ctx, v, sp); err != nil {
		return nil, err
	}
	return v, nil
}

// Ensure returns the artifact at path, building it from conf when the path
// does not exist. An existing tree must have been built from the same spec
// and must have finished.
func Ensure(ctx context.Context, path string, conf any) (any, error) {
	v, err := construct(ctx, conf)
	if err != nil {
		return nil, err
	}
	sp, err := buildSpec(ctx, v)
	if err != nil {
		return nil, err
	}
	v.setPath(path)

	if _, err := os.Stat(path); err == nil {
		m := ReadMeta(path)
		if !specEqual(m.Spec, sp) {
			return nil, fmt.Errorf("%w: %s", ErrIncompatible, path)
		}
		m, err = awaitSettled(ctx, path, m)
		if err != nil {
			return nil, err
		}
		if m.Status == StatusStopped {
			return nil, fmt.Errorf("%w: %s", ErrStopped, path)
		}
		return v, nil
	}

	if err := build(ctx, v, sp); err != nil {
		return nil, err
	}
	return v, nil
}

// Identify returns the name t is registered under in scope. When a type
// holds several names the lexicographically first one wins, so specs are
// deterministic.
func Identify(scope apis.Scope, t reflect.Type) (string, error) {
	names := make([]string, 0, len(scope))
	for name := range scope {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if e := scope[name]; !e.Conflicted() && e.Type == t {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnidentified, t)
}

// construct resolves conf into an asset instance through the
// configuration-driven constructor.
func construct(ctx context.Context, conf any) (carrier, error) {
	v, err := cfx.Construct(ctx, reflect.TypeOf(Artifact{}), conf)
	if err != nil {
		return nil, err
	}
	c, ok := v.(carrier)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotArtifact, v)
	}
	return c, nil
}

// buildSpec derives the spec identifying v's tree: its configuration plus
// its scope name under the type-override key.
func buildSpec(ctx context.Context, v carrier) (map[string]any, error) {
	t := reflect.TypeOf(v).Elem()
	name, err := Identify(cfx.ScopeFrom(ctx), t)
	if err != nil {
		return nil, err
	}

	sp := map[string]any{}
	if conf := v.base().Conf; conf != nil {
		sp = conf.Map()
	}
	sp[cfx.Config().TypeKey] = name
	return sp, nil
}

// build creates the tree's directory, records a running build, invokes the
// asset's Build method when it has one, and records the outcome.
func build(ctx context.Context, v carrier, sp map[string]any) error {
	dir := v.base().Path
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := writeMeta(dir, Meta{Spec: sp, Status: StatusRunning}); err != nil {
		return err
	}

	if b, ok := v.(Builder); ok {
		if err := b.Build(ctx); err != nil {
			_ = writeMeta(dir, Meta{Spec: sp, Status: StatusStopped})
			return err
		}
	}
	return writeMeta(dir, Meta{Spec: sp, Status: StatusDone})
}

// awaitSettled re-reads dir's metadata until its status leaves running.
func awaitSettled(ctx context.Context, dir string, m Meta) (Meta, error) {
	for m.Status == StatusRunning {
		select {
		case <-ctx.Done():
			return m, ctx.Err()
		case <-time.After(statusPoll):
		}
		m = ReadMeta(dir)
	}
	return m, nil
}

// freshPath returns an unused "<name>_<counter>" path under root.
func freshPath(root, name string) (string, error) {
	for i := 0; ; i++ {
		dst := filepath.Join(root, fmt.Sprintf("%s_%04x", name, i))
		if _, err := os.Stat(dst); errors.Is(err, os.ErrNotExist) {
			return dst, nil
		} else if err != nil {
			return "", err
		}
	}
}

// specEqual compares specs with numeric representation smoothed out, since
// YAML round-trips integers while in-memory confs may carry floats.
func specEqual(a, b map[string]any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return cmp.Equal(canon(a), canon(b))
}

func canon(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = canon(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = canon(e)
		}
		return out
	case int:
		return float64(t)
	case int8:
		return float64(t)
	case int16:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case uint:
		return float64(t)
	case uint8:
		return float64(t)
	case uint16:
		return float64(t)
	case uint32:
		return float64(t)
	case uint64:
		return float64(t)
	case float32:
		return float64(t)
	default:
		return v
	}
}
