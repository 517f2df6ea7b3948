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

package driver_test

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/analysis/unitchecker"

	"fillmore-labs.com/minver/internal/capability"
	. "fillmore-labs.com/minver/internal/driver"
)

// TestMain turns the test binary into the vet tool when started by [Driver.Run].
func TestMain(m *testing.M) {
	if os.Getenv(EnvVettool) != "" {
		a, err := VetAnalyzer(os.Getenv, nil)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		unitchecker.Main(a) // does not return
	}

	os.Exit(m.Run())
}

func TestArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{"default", nil, []string{"vet", "-vettool=/bin/minver", "./..."}},
		{"patterns", []string{"./a", "./b/..."}, []string{"vet", "-vettool=/bin/minver", "./a", "./b/..."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := Driver{Patterns: tt.patterns}
			assert.Equal(t, tt.want, d.Args("/bin/minver"))
		})
	}
}

func TestEnviron(t *testing.T) {
	t.Parallel()

	parent := []string{"HOME=/home/user", EnvServer + "=stale:1", "MINVER_SERVERX=keep", EnvDebug + "=1"}

	d := Driver{ConfigFile: "/src/.minver.toml"}
	env := d.Environ(parent, "127.0.0.1:4711")

	assert.Equal(t, []string{
		"HOME=/home/user",
		"MINVER_SERVERX=keep",
		EnvVettool + "=1",
		EnvServer + "=127.0.0.1:4711",
		EnvConfig + "=/src/.minver.toml",
	}, env)

	assert.Len(t, parent, 4, "parent environment modified")

	env = (&Driver{Verbose: true}).Environ(nil, "127.0.0.1:1")
	assert.Equal(t, []string{EnvVettool + "=1", EnvServer + "=127.0.0.1:1", EnvDebug + "=1"}, env)
}

func TestVetAnalyzer(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ".minver.toml")
	require.NoError(t, os.WriteFile(path, []byte(`max_version = "1.21"`), 0o600))

	env := map[string]string{EnvConfig: path, EnvServer: "127.0.0.1:4711"}

	a, err := VetAnalyzer(func(k string) string { return env[k] }, nil)
	require.NoError(t, err)

	assert.Equal(t, "minver", a.Name)
	assert.Equal(t, "1.21.0", a.Flags.Lookup("max-version").Value.String())
	assert.Equal(t, "127.0.0.1:4711", a.Flags.Lookup("server").Value.String())

	env[EnvConfig] = filepath.Join(dir, "missing.toml")

	_, err = VetAnalyzer(func(k string) string { return env[k] }, nil)
	require.Error(t, err)
}

// vetDriver returns a [Driver] analyzing the testdata module with the test binary,
// configured by the given TOML lines.
func vetDriver(t *testing.T, config ...string) *Driver {
	t.Helper()

	if testing.Short() {
		t.Skip("runs go vet")
	}

	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go command not available")
	}

	exe, err := filepath.Abs(os.Args[0])
	require.NoError(t, err)

	api, err := filepath.Abs(filepath.Join("testdata", "api"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), ".minver.toml")
	content := fmt.Sprintf("api_dir = %q\n", api)

	for _, line := range config {
		content += line + "\n"
	}

	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return &Driver{
		Dir:        filepath.Join("testdata", "mod"),
		ConfigFile: path,
		Executable: exe,
		Stderr:     io.Discard,
		Logger:     slog.New(slog.DiscardHandler),
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	agg, err := vetDriver(t).Run(t.Context())
	require.NoError(t, err)

	units := agg.Units()
	require.Len(t, units, 2)
	assert.Equal(t, "example.com/mod/a", units[0].Unit)
	assert.Equal(t, "example.com/mod/b", units[1].Unit)
	assert.Empty(t, agg.Incomplete())

	names := make([]string, 0, len(agg.AllCapabilities()))
	for _, c := range agg.AllCapabilities() {
		names = append(names, c.Name)
	}

	assert.ElementsMatch(t, []string{
		capability.RangeOverInt,
		capability.MinMaxBuiltins,
		capability.ClearBuiltin,
		"slices",
		"slices.Contains",
	}, names)

	v, err := agg.MinimumVersion()
	require.NoError(t, err)
	assert.Equal(t, capability.Version("1.22.0"), v)
}

func TestRunDiagnostics(t *testing.T) {
	t.Parallel()

	agg, err := vetDriver(t, `max_version = "1.21"`).Run(t.Context())
	require.ErrorIs(t, err, ErrVetFailed)

	// reports are delivered even though go vet failed
	require.NotNil(t, agg)
	assert.Len(t, agg.Units(), 2)

	v, err := agg.MinimumVersion()
	require.NoError(t, err)
	assert.Equal(t, capability.Version("1.22.0"), v)
}
