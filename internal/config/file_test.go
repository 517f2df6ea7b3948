// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "fillmore-labs.com/minver/internal/config"
)

func writeFile(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, `
max_version = "1.21"
ignore = ["range_over_func", "slices.Values"]
include_generated = true
api_dir = "api"
`)

	f, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "1.21", f.MaxVersion)
	assert.Equal(t, []string{"range_over_func", "slices.Values"}, f.Ignore)
	require.NotNil(t, f.IncludeGenerated)
	assert.True(t, *f.IncludeGenerated)
	assert.Nil(t, f.VersionGuards)
	assert.Equal(t, filepath.Join(dir, "api"), f.APIDir)
}

func TestLoadUnknownKey(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), `max_versoin = "1.21"`)

	_, err := Load(path)
	require.ErrorIs(t, err, ErrUnknownKey)
	assert.Contains(t, err.Error(), "max_versoin")
}

func TestLoadMalformed(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), `max_version = `)

	_, err := Load(path)
	require.Error(t, err)
}

func TestFind(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := writeFile(t, root, "")

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got := Find(nested)

	want, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)

	gotResolved, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)

	assert.Equal(t, want, gotResolved)
}

func TestBehavior(t *testing.T) {
	t.Parallel()

	b := DefaultBehavior()
	assert.True(t, b.Enabled(VersionGuards))
	assert.False(t, b.Enabled(IncludeGenerated))

	b.Set(IncludeGenerated, true)
	b.Set(VersionGuards, false)
	assert.Equal(t, IncludeGenerated, b.Value())
}
