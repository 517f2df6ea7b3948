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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/analysis/analysistest"

	. "fillmore-labs.com/minver/analyzer"
	"fillmore-labs.com/minver/internal/capability"
	"fillmore-labs.com/minver/internal/report"
)

func TestAnalyzer(t *testing.T) {
	t.Parallel()

	testdata := analysistest.TestData()
	api := WithAPIDir(filepath.Join(testdata, "api"))

	tests := []struct {
		name    string
		dir     string
		options Option
	}{
		{
			name:    "Default",
			dir:     "./basic",
			options: Options{api, WithMaxVersion("1.20"), WithIgnore("slices.Index")},
		},
		{
			name:    "Guarded",
			dir:     "./guarded",
			options: Options{api, WithMaxVersion("go1.20")},
		},
		{
			name:    "NoDiagnostics",
			dir:     "./result",
			options: api,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := New(tt.options)
			analysistest.Run(t, testdata, a, tt.dir)
		})
	}
}

func unitReport(t *testing.T, dir string, opts ...Option) *report.UnitReport {
	t.Helper()

	testdata := analysistest.TestData()
	opts = append(opts, WithAPIDir(filepath.Join(testdata, "api")))

	results := analysistest.Run(t, testdata, New(opts...), dir)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)

	r, ok := results[0].Result.(*report.UnitReport)
	require.True(t, ok, "unexpected result type %T", results[0].Result)

	return r
}

func names(r *report.UnitReport) []string {
	ns := make([]string, 0, len(r.Capabilities))
	for _, c := range r.Capabilities {
		ns = append(ns, c.Name)
	}

	return ns
}

func TestResult(t *testing.T) {
	t.Parallel()

	r := unitReport(t, "./result")

	assert.Equal(t, "test/result", r.Unit)
	assert.Equal(t, []string{
		capability.RangeOverFunc,
		"slices.Values",
		"slices",
		capability.RangeWithoutVars,
	}, names(r))

	assert.NotContains(t, names(r), "test/result.Contains")

	locs := r.Usages["slices.Values"]
	require.Len(t, locs, 1)
	assert.Equal(t, "result.go", filepath.Base(locs[0].File))
	assert.EqualValues(t, 6, locs[0].StartLine)

	v, err := report.MinimumVersion([]report.UnitReport{*r})
	require.NoError(t, err)
	assert.Equal(t, capability.Version("1.23.0"), v)
}

func TestResultVersionGuards(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		guards bool
		want   capability.Version
	}{
		{"honored", true, "1.21.0"},
		{"ignored", false, "1.22.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := unitReport(t, "./versions", WithVersionGuards(tt.guards))

			v, err := report.MinimumVersion([]report.UnitReport{*r})
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestResultOnlyGuarded(t *testing.T) {
	t.Parallel()

	r := unitReport(t, "./onlyguarded")

	// releases before Go 1.17 ignore the //go:build line and compile the file
	assert.Equal(t, []string{capability.GoBuildConstraint}, names(r))

	v, err := report.MinimumVersion([]report.UnitReport{*r})
	require.NoError(t, err)
	assert.Equal(t, capability.Version("1.17.0"), v)
}
