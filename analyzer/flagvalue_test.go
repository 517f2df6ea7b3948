// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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

package analyzer_test

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "fillmore-labs.com/minver/analyzer"
	"fillmore-labs.com/minver/internal/config"
)

func TestFlagValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		initial config.Config
		args    []string
		want    bool
	}{
		{
			name:    "Enable",
			initial: config.VersionGuards,
			args:    []string{"-generated"},
			want:    true,
		},
		{
			name:    "Disable",
			initial: config.IncludeGenerated,
			args:    []string{"-generated=false"},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var flags config.Behavior
			flags.Set(tt.initial, true)

			fs := flag.NewFlagSet("test", flag.ContinueOnError)

			const value = config.IncludeGenerated
			fv := NewBehaviorValue(&flags, value)
			fs.Var(fv, "generated", "report usages in generated files")

			require.NoError(t, fs.Parse(tt.args))

			assert.Equal(t, tt.want, fv.Get())
			assert.Equal(t, tt.want, flags.Enabled(value))
		})
	}
}

func TestUsage(t *testing.T) {
	t.Parallel()

	var flags config.Behavior
	flags.Set(config.VersionGuards, true)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)

	fv := NewBehaviorValue(&flags, config.VersionGuards)
	fs.Var(fv, "version-guards", "honor version guards")

	const expectedUsage = `
  -version-guards
    	honor version guards (default true)
`

	var out strings.Builder
	fs.SetOutput(&out)
	fs.Usage()

	assert.True(t, strings.HasSuffix(out.String(), expectedUsage), "Usage() = %q, want suffix %q", out.String(), expectedUsage)
}

func TestAnalyzerFlags(t *testing.T) {
	t.Parallel()

	a := New()

	require.NoError(t, a.Flags.Parse([]string{
		"-max-version=go1.21",
		"-ignore=range_over_func, slices.Values",
		"-ignore=clear_builtin",
		"-version-guards=false",
	}))

	assert.Equal(t, "1.21.0", a.Flags.Lookup("max-version").Value.String())
	assert.Equal(t, "range_over_func,slices.Values,clear_builtin", a.Flags.Lookup("ignore").Value.String())
	assert.Equal(t, "false", a.Flags.Lookup("version-guards").Value.String())

	require.Error(t, a.Flags.Parse([]string{"-max-version=latest"}))
}

func TestConfigFlag(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`
max_version = "1.22"
ignore = ["slices"]
include_generated = true
api_dir = "api"
`), 0o600))

	a := New()
	require.NoError(t, a.Flags.Parse([]string{"-config", path, "-ignore=clear_builtin"}))

	assert.Equal(t, path, a.Flags.Lookup("config").Value.String())
	assert.Equal(t, "1.22.0", a.Flags.Lookup("max-version").Value.String())
	assert.Equal(t, "slices,clear_builtin", a.Flags.Lookup("ignore").Value.String())
	assert.Equal(t, "true", a.Flags.Lookup("generated").Value.String())
	assert.Equal(t, filepath.Join(dir, "api"), a.Flags.Lookup("api-dir").Value.String())
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.toml")
	require.NoError(t, os.WriteFile(valid, []byte("max_version = \"1.21\"\nversion_guards = false\n"), 0o600))

	opts, err := LoadConfig(valid)
	require.NoError(t, err)
	assert.Len(t, opts, 2)

	invalid := filepath.Join(dir, "invalid.toml")
	require.NoError(t, os.WriteFile(invalid, []byte(`max_version = "latest"`), 0o600))

	_, err = LoadConfig(invalid)
	require.Error(t, err)

	_, err = LoadConfig(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
}
