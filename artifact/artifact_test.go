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

package artifact_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/cfx/artifact"
)

func scratch(t *testing.T) *artifact.Artifact {
	t.Helper()
	return &artifact.Artifact{Path: filepath.Join(t.TempDir(), "a")}
}

func TestPutGet_Values(t *testing.T) {
	a := scratch(t)

	require.NoError(t, a.Put("xs", []any{1, 4, 9}))

	got, err := a.Get("xs")
	require.NoError(t, err)
	// Values round-trip through JSON, so numbers come back as float64.
	assert.Equal(t, []any{1.0, 4.0, 9.0}, got)

	// Value keys must not look like file names.
	assert.ErrorIs(t, a.Put("xs.json", []any{1}), artifact.ErrUnwantedExtension)
}

func TestPutGet_FileCopy(t *testing.T) {
	a := scratch(t)

	src := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(src, []byte("hello"), 0o644))

	require.NoError(t, a.Put("notes.txt", artifact.File(src)))

	got, err := a.Get("notes.txt")
	require.NoError(t, err)
	f, ok := got.(artifact.File)
	require.True(t, ok, "Get returned %T", got)

	raw, err := os.ReadFile(string(f))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(raw))

	// Copies are independent of the source.
	require.NoError(t, os.WriteFile(src, []byte("changed"), 0o644))
	raw, err = os.ReadFile(string(f))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(raw))

	assert.ErrorIs(t, a.Put("notes", artifact.File(src)), artifact.ErrWantExtension)
}

func TestPut_Subartifacts(t *testing.T) {
	a := scratch(t)

	require.NoError(t, a.Put("sub", map[string]any{"v": 7, "deep": map[string]any{"w": 8}}))

	got, err := a.Get("sub")
	require.NoError(t, err)
	sub, ok := got.(*artifact.Artifact)
	require.True(t, ok, "Get returned %T", got)

	v, err := sub.Get("v")
	require.NoError(t, err)
	assert.Equal(t, 7.0, v)

	deep, err := sub.Get("deep")
	require.NoError(t, err)
	assert.Equal(t, []string{"w"}, deep.(*artifact.Artifact).Keys())

	// Copying a whole artifact clones its entries.
	require.NoError(t, a.Put("copy", sub))
	cp, err := a.Get("copy")
	require.NoError(t, err)
	v, err = cp.(*artifact.Artifact).Get("v")
	require.NoError(t, err)
	assert.Equal(t, 7.0, v)
}

func TestKeys(t *testing.T) {
	a := scratch(t)

	// A nonexistent tree is an empty artifact.
	assert.Empty(t, a.Keys())

	require.NoError(t, a.Put("b", 1))
	require.NoError(t, a.Put("sub", map[string]any{"v": 1}))
	require.NoError(t, os.WriteFile(filepath.Join(a.Path, "_meta.yaml"), []byte("status: done\n"), 0o644))

	// Sorted, extension-stripped, private names hidden.
	assert.Equal(t, []string{"b", "sub"}, a.Keys())
}

func TestDelete(t *testing.T) {
	a := scratch(t)

	require.NoError(t, a.Put("v", 1))
	require.NoError(t, a.Put("sub", map[string]any{"w": 2}))

	require.NoError(t, a.Delete("v"))
	require.NoError(t, a.Delete("sub"))
	assert.Empty(t, a.Keys())

	// Deleting a missing entry is a no-op.
	require.NoError(t, a.Delete("v"))
}

func TestReadMeta_Degrades(t *testing.T) {
	// Missing record.
	m := artifact.ReadMeta(t.TempDir())
	require.Equalf(t, artifact.StatusDone, m.Status, "meta = %s", spew.Sdump(m))
	assert.Nil(t, m.Spec)

	// Malformed record.
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, artifact.MetaFile), []byte(":::"), 0o644))
	m = artifact.ReadMeta(dir)
	require.Equalf(t, artifact.StatusDone, m.Status, "meta = %s", spew.Sdump(m))
	assert.Nil(t, m.Spec)
}

func TestMeta_RoundTrip(t *testing.T) {
	a := scratch(t)
	require.NoError(t, os.MkdirAll(a.Path, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(a.Path, artifact.MetaFile),
		[]byte("spec:\n  type: Squares\n  n: 3\nstatus: done\n"),
		0o644,
	))

	m := a.Meta()
	assert.Equal(t, artifact.StatusDone, m.Status)
	assert.Equal(t, map[string]any{"type": "Squares", "n": 3}, m.Spec)
}
